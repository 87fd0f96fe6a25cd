package ui

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"

	"github.com/arthur-debert/gamerepo/pkg/errors"
	"github.com/arthur-debert/gamerepo/pkg/logging"
)

// TerminalRenderer renders rich output with lipgloss styles and pterm tables.
type TerminalRenderer struct {
	out io.Writer
	st  styles
}

// NewTerminalRenderer creates a terminal renderer. Color support is
// detected on w.
func NewTerminalRenderer(w io.Writer) *TerminalRenderer {
	r := lipgloss.NewRenderer(w)
	logger := logging.GetLogger("ui.terminal")
	logger.Debug().
		Str("colorProfile", fmt.Sprintf("%v", r.ColorProfile())).
		Msg("Lipgloss renderer created")
	return &TerminalRenderer{out: w, st: newStyles(r)}
}

// RenderResult renders one of the view types.
func (r *TerminalRenderer) RenderResult(result interface{}) error {
	var out string
	switch v := result.(type) {
	case *VersionList:
		out = r.versionList(v)
	case *VersionDetail:
		out = r.versionDetail(v)
	case *LibraryList:
		out = r.libraryList(v)
	case *PathList:
		out = r.pathList(v)
	case *AssetView:
		out = r.assetView(v)
	case *AuditView:
		out = r.auditView(v)
	default:
		out = fmt.Sprintf("%+v", result)
	}
	_, err := fmt.Fprintln(r.out, out)
	return err
}

// RenderError renders err with its code and details.
func (r *TerminalRenderer) RenderError(err error) error {
	var b strings.Builder
	b.WriteString(r.st.Error.Render(errorMark+" Error:") + " " + err.Error())
	details := errors.GetErrorDetails(err)
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString("\n  " + r.st.Muted.Render(fmt.Sprintf("%s: %v", k, details[k])))
	}
	_, werr := fmt.Fprintln(r.out, b.String())
	return werr
}

// RenderMessage renders a simple informational line.
func (r *TerminalRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.out, r.st.Success.Render(successMark)+" "+msg)
	return err
}

func (r *TerminalRenderer) table(data pterm.TableData) string {
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		// pterm only fails on malformed data; fall back to raw rows
		var b strings.Builder
		for _, row := range data {
			b.WriteString(strings.Join(row, "  ") + "\n")
		}
		return strings.TrimRight(b.String(), "\n")
	}
	return out
}

func (r *TerminalRenderer) versionList(v *VersionList) string {
	var b strings.Builder
	b.WriteString(r.st.Title.Render("Versions") + " " + r.st.Path.Render(v.Root) + "\n\n")

	if len(v.Versions) == 0 {
		b.WriteString(r.st.Muted.Render("No versions installed"))
	} else {
		data := pterm.TableData{{"ID", "TYPE", "RELEASED", "INHERITS"}}
		for _, row := range v.Versions {
			data = append(data, []string{row.ID, r.st.versionType(row.Type), row.ReleaseTime, row.Parent})
		}
		b.WriteString(r.table(data))
	}

	if len(v.Warnings) > 0 {
		b.WriteString("\n\n")
		for _, w := range v.Warnings {
			b.WriteString(r.st.Warning.Render(warningMark) + " " + w.VersionID + ": " + r.st.Muted.Render(w.Message) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *TerminalRenderer) versionDetail(v *VersionDetail) string {
	var b strings.Builder
	b.WriteString(r.st.Title.Render(v.ID))
	if v.Resolved {
		b.WriteString(" " + r.st.Muted.Render("(resolved)"))
	}
	b.WriteString("\n\n")

	field := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(r.st.Label.Render(fmt.Sprintf("%-12s", label)) + " " + value + "\n")
	}
	field("chain", strings.Join(v.Chain, " → "))
	field("inherits", v.Parent)
	if v.Type != "" {
		field("type", r.st.versionType(v.Type))
	}
	field("released", v.ReleaseTime)
	field("main class", v.MainClass)
	field("jar", v.Jar)
	field("assets", v.AssetID)
	field("libraries", fmt.Sprint(v.Libraries))
	field("logging", v.Logging)
	return strings.TrimRight(b.String(), "\n")
}

func (r *TerminalRenderer) libraryList(v *LibraryList) string {
	if len(v.Libraries) == 0 {
		return r.st.Muted.Render("No libraries apply on " + v.Platform)
	}
	data := pterm.TableData{{"", "LIBRARY", "PATH"}}
	for _, lib := range v.Libraries {
		mark := r.st.Success.Render(successMark)
		if !lib.Present {
			mark = r.st.Error.Render(errorMark)
		}
		name := lib.Name
		if lib.Native {
			name += " " + r.st.Muted.Render("(native)")
		}
		data = append(data, []string{mark, name, r.st.Path.Render(lib.Path)})
	}
	return r.st.Title.Render(v.VersionID+" libraries") + " " + r.st.Muted.Render(v.Platform) + "\n\n" + r.table(data)
}

func (r *TerminalRenderer) pathList(v *PathList) string {
	var b strings.Builder
	b.WriteString(r.st.Title.Render(v.VersionID) + "\n\n")
	for _, e := range v.Entries {
		b.WriteString(r.st.Label.Render(fmt.Sprintf("%-12s", e.Name)) + " " + r.st.Path.Render(e.Path) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *TerminalRenderer) assetView(v *AssetView) string {
	if v.Name == "" {
		return r.st.Success.Render(successMark) + " " + v.AssetID + " → " + r.st.Path.Render(v.Path)
	}
	line := r.st.Path.Render(v.Path)
	if v.Verified {
		line = r.st.Success.Render(successMark) + " " + line + " " + r.st.Muted.Render("(verified)")
	}
	return line
}

func (r *TerminalRenderer) auditView(v *AuditView) string {
	var b strings.Builder
	head := r.st.Success.Render(successMark + " " + v.VersionID + " is complete")
	if !v.OK {
		head = r.st.Error.Render(fmt.Sprintf("%s %s has %d problem(s)", errorMark, v.VersionID, len(v.Problems)))
	}
	b.WriteString(head + "\n")
	b.WriteString(r.st.Muted.Render(fmt.Sprintf("chain %s, %d libraries, %d objects", strings.Join(v.Chain, " → "), v.Libraries, v.Objects)))

	if len(v.Problems) > 0 {
		data := pterm.TableData{{"KIND", "FILE", "DETAIL"}}
		for _, p := range v.Problems {
			data = append(data, []string{r.st.Warning.Render(p.Kind), p.Subject, p.Detail})
		}
		b.WriteString("\n\n" + r.table(data))
	}
	return b.String()
}
