package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color definitions using AdaptiveColor for automatic light/dark mode switching
var (
	PrimaryColor = lipgloss.AdaptiveColor{
		Light: "#007ACC", // Blue
		Dark:  "#3D9EFF",
	}

	SecondaryColor = lipgloss.AdaptiveColor{
		Light: "#6C757D", // Gray
		Dark:  "#A0A8B0",
	}

	SuccessColor = lipgloss.AdaptiveColor{
		Light: "#28A745", // Green
		Dark:  "#4CDD76",
	}

	ErrorColor = lipgloss.AdaptiveColor{
		Light: "#DC3545", // Red
		Dark:  "#FF6B7D",
	}

	WarningColor = lipgloss.AdaptiveColor{
		Light: "#FFC107", // Amber
		Dark:  "#FFD54F",
	}

	HeadingColor = lipgloss.AdaptiveColor{
		Light: "#212529",
		Dark:  "#F8F9FA",
	}

	MutedColor = lipgloss.AdaptiveColor{
		Light: "#6C757D",
		Dark:  "#ADB5BD",
	}
)

// Version type colors
var (
	ReleaseColor = lipgloss.AdaptiveColor{
		Light: "#10B981", // Emerald
		Dark:  "#34D399",
	}

	SnapshotColor = lipgloss.AdaptiveColor{
		Light: "#F59E0B", // Orange
		Dark:  "#FBBF24",
	}

	ModdedColor = lipgloss.AdaptiveColor{
		Light: "#8B5CF6", // Purple
		Dark:  "#A78BFA",
	}
)

// styles are bound to one lipgloss renderer so color detection follows the
// writer being rendered to, not os.Stdout.
type styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Muted   lipgloss.Style
	Path    lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style

	Release  lipgloss.Style
	Snapshot lipgloss.Style
	Modded   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		Title:   r.NewStyle().Foreground(HeadingColor).Bold(true),
		Label:   r.NewStyle().Foreground(PrimaryColor).Bold(true),
		Muted:   r.NewStyle().Foreground(MutedColor),
		Path:    r.NewStyle().Foreground(SecondaryColor).Italic(true),
		Success: r.NewStyle().Foreground(SuccessColor).Bold(true),
		Error:   r.NewStyle().Foreground(ErrorColor).Bold(true),
		Warning: r.NewStyle().Foreground(WarningColor).Bold(true),

		Release:  r.NewStyle().Foreground(ReleaseColor),
		Snapshot: r.NewStyle().Foreground(SnapshotColor),
		Modded:   r.NewStyle().Foreground(ModdedColor),
	}
}

// versionType colors a manifest "type" field. Anything that is neither a
// release nor a snapshot is treated as modded.
func (s styles) versionType(t string) string {
	switch t {
	case "release":
		return s.Release.Render(t)
	case "snapshot", "old_alpha", "old_beta":
		return s.Snapshot.Render(t)
	case "":
		return s.Muted.Render("-")
	default:
		return s.Modded.Render(t)
	}
}

// Indicators
const (
	successMark = "✓"
	errorMark   = "✗"
	warningMark = "!"
)
