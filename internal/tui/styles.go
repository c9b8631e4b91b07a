package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/fentz26/missionctl/internal/models"
	"github.com/fentz26/missionctl/internal/session"
)

type palette struct {
	accent  lipgloss.Color
	fg      lipgloss.Color
	muted   lipgloss.Color
	border  lipgloss.Color
	bar     lipgloss.Color
	success lipgloss.Color
	warning lipgloss.Color
	danger  lipgloss.Color
	info    lipgloss.Color
}

var (
	darkPalette = palette{
		accent:  lipgloss.Color("#F97316"),
		fg:      lipgloss.Color("#F9FAFB"),
		muted:   lipgloss.Color("#6B7280"),
		border:  lipgloss.Color("#374151"),
		bar:     lipgloss.Color("#1F2937"),
		success: lipgloss.Color("#10B981"),
		warning: lipgloss.Color("#F59E0B"),
		danger:  lipgloss.Color("#EF4444"),
		info:    lipgloss.Color("#3B82F6"),
	}
	lightPalette = palette{
		accent:  lipgloss.Color("#EA580C"),
		fg:      lipgloss.Color("#111827"),
		muted:   lipgloss.Color("#9CA3AF"),
		border:  lipgloss.Color("#D1D5DB"),
		bar:     lipgloss.Color("#E5E7EB"),
		success: lipgloss.Color("#059669"),
		warning: lipgloss.Color("#D97706"),
		danger:  lipgloss.Color("#DC2626"),
		info:    lipgloss.Color("#2563EB"),
	}
)

// styles is rebuilt whenever the theme changes.
type styles struct {
	p palette

	title     lipgloss.Style
	statusBar lipgloss.Style
	banner    lipgloss.Style
	pane      lipgloss.Style
	paneFocus lipgloss.Style
	column    lipgloss.Style
	dropZone  lipgloss.Style
	selected  lipgloss.Style
	dragging  lipgloss.Style
	muted     lipgloss.Style
	help      lipgloss.Style
	tabActive lipgloss.Style
	tab       lipgloss.Style
	modal     lipgloss.Style
	errorText lipgloss.Style
	okText    lipgloss.Style
}

func newStyles(theme session.Theme) styles {
	p := darkPalette
	if theme == session.ThemeLight {
		p = lightPalette
	}
	return styles{
		p:         p,
		title:     lipgloss.NewStyle().Bold(true).Foreground(p.accent).Padding(0, 1),
		statusBar: lipgloss.NewStyle().Background(p.bar).Foreground(p.fg).Padding(0, 1),
		banner:    lipgloss.NewStyle().Foreground(p.fg).Italic(true).Padding(0, 1),
		pane:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.border).Padding(0, 1),
		paneFocus: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.accent).Padding(0, 1),
		column:    lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(p.border).Padding(0, 1),
		dropZone:  lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(p.accent).Padding(0, 1),
		selected:  lipgloss.NewStyle().Foreground(p.fg).Background(p.accent).Bold(true),
		dragging:  lipgloss.NewStyle().Foreground(p.accent).Bold(true).Underline(true),
		muted:     lipgloss.NewStyle().Foreground(p.muted),
		help:      lipgloss.NewStyle().Foreground(p.muted).Italic(true),
		tabActive: lipgloss.NewStyle().Foreground(p.accent).Bold(true).Underline(true),
		tab:       lipgloss.NewStyle().Foreground(p.muted),
		modal:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.accent).Padding(1, 2),
		errorText: lipgloss.NewStyle().Foreground(p.danger),
		okText:    lipgloss.NewStyle().Foreground(p.success),
	}
}

func (s styles) badge(c models.BadgeColor) lipgloss.Style {
	var bg lipgloss.Color
	switch c {
	case models.BadgeOrange:
		bg = s.p.accent
	case models.BadgeBlue:
		bg = s.p.info
	default:
		bg = s.p.muted
	}
	return lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color("#FFFFFF")).Bold(true).Padding(0, 1)
}

func (s styles) status(st models.AgentStatus) string {
	if st == models.AgentStatusWorking {
		return lipgloss.NewStyle().Foreground(s.p.success).Render("● WORKING")
	}
	return s.muted.Render("○ IDLE")
}

func (s styles) priority(p models.Priority) string {
	switch p {
	case models.PriorityHigh:
		return lipgloss.NewStyle().Foreground(s.p.danger).Render("▲")
	case models.PriorityMedium:
		return lipgloss.NewStyle().Foreground(s.p.warning).Render("■")
	default:
		return s.muted.Render("▼")
	}
}

func (s styles) dot(hex string) string {
	if hex == "" {
		return s.muted.Render("●")
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("●")
}
