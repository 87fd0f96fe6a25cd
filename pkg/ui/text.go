package ui

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// TextRenderer renders plain, unstyled text suitable for pipes and logs.
type TextRenderer struct {
	out io.Writer
}

// NewTextRenderer creates a plain text renderer.
func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{out: w}
}

// RenderResult renders one of the view types.
func (r *TextRenderer) RenderResult(result interface{}) error {
	tw := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	switch v := result.(type) {
	case *VersionList:
		for _, row := range v.Versions {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", row.ID, dash(row.Type), dash(row.ReleaseTime), row.Parent)
		}
		for _, w := range v.Warnings {
			fmt.Fprintf(tw, "warning: %s: %s\n", w.VersionID, w.Message)
		}
	case *VersionDetail:
		fmt.Fprintf(tw, "id:\t%s\n", v.ID)
		if v.Resolved {
			fmt.Fprintf(tw, "chain:\t%s\n", strings.Join(v.Chain, " -> "))
		}
		pairs := [][2]string{
			{"inherits", v.Parent}, {"type", v.Type}, {"released", v.ReleaseTime},
			{"main class", v.MainClass}, {"jar", v.Jar}, {"assets", v.AssetID},
			{"libraries", fmt.Sprint(v.Libraries)}, {"logging", v.Logging},
		}
		for _, p := range pairs {
			if p[1] != "" {
				fmt.Fprintf(tw, "%s:\t%s\n", p[0], p[1])
			}
		}
	case *LibraryList:
		for _, lib := range v.Libraries {
			state := "present"
			if !lib.Present {
				state = "missing"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", state, lib.Name, lib.Path)
		}
	case *PathList:
		for _, e := range v.Entries {
			fmt.Fprintf(tw, "%s:\t%s\n", e.Name, e.Path)
		}
	case *AssetView:
		fmt.Fprintln(tw, v.Path)
	case *AuditView:
		if v.OK {
			fmt.Fprintf(tw, "%s: ok\n", v.VersionID)
		}
		for _, p := range v.Problems {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Kind, p.Subject, p.Detail)
		}
	default:
		fmt.Fprintf(tw, "%+v\n", result)
	}
	return tw.Flush()
}

// RenderError renders an error as plain text
func (r *TextRenderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.out, "Error: %v\n", err)
	return werr
}

// RenderMessage renders a simple message
func (r *TextRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.out, msg)
	return err
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
