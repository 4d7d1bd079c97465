package style

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"teamboard/internal/infrastructure/config"
)

var (
	ListStyle         lipgloss.Style
	FocusedListStyle  lipgloss.Style
	ListTitleStyle    lipgloss.Style
	CardStyle         lipgloss.Style
	SelectedCardStyle lipgloss.Style
	PendingCardStyle  lipgloss.Style
	DropTargetStyle   lipgloss.Style
	HelpStyle         lipgloss.Style
	StatusStyle       lipgloss.Style
	ErrorStyle        lipgloss.Style

	priorityColors config.PriorityColors
)

func init() {
	// Usable defaults for code that renders before InitStyles, e.g. tests.
	if cfg, err := config.Default(); err == nil {
		InitStyles(cfg)
	}
}

// InitStyles initializes the styles from config
func InitStyles(cfg *config.Config) {
	styles := cfg.TUI.Styles

	ListStyle = listStyle(styles.List)
	FocusedListStyle = listStyle(styles.FocusedList)

	ListTitleStyle = textStyle(styles.ListTitle)
	CardStyle = textStyle(styles.Card)
	SelectedCardStyle = textStyle(styles.SelectedCard)
	PendingCardStyle = textStyle(styles.PendingCard)
	HelpStyle = textStyle(styles.Help)
	StatusStyle = textStyle(styles.Status)
	ErrorStyle = textStyle(styles.Error)

	DropTargetStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(styles.FocusedList.BorderColor)).
		Bold(true)

	priorityColors = styles.Priority
}

// PriorityStyle returns the foreground for a card priority
func PriorityStyle(priority string) lipgloss.Style {
	var color string
	switch strings.ToLower(priority) {
	case "critical":
		color = priorityColors.Critical
	case "high":
		color = priorityColors.High
	case "medium":
		color = priorityColors.Medium
	case "low":
		color = priorityColors.Low
	default:
		color = priorityColors.Default
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

func listStyle(s config.ListStyle) lipgloss.Style {
	return lipgloss.NewStyle().
		Padding(s.PaddingVertical, s.PaddingHorizontal).
		Border(getBorder(s.BorderStyle)).
		BorderForeground(lipgloss.Color(s.BorderColor))
}

func textStyle(s config.TextStyle) lipgloss.Style {
	st := lipgloss.NewStyle().Padding(s.PaddingVertical, s.PaddingHorizontal)
	if s.Foreground != "" {
		st = st.Foreground(lipgloss.Color(s.Foreground))
	}
	if s.Background != "" {
		st = st.Background(lipgloss.Color(s.Background))
	}
	if s.Bold {
		st = st.Bold(true)
	}
	if s.Italic {
		st = st.Italic(true)
	}
	if s.Align != "" {
		st = st.Align(getAlign(s.Align))
	}
	return st
}

// getBorder returns the border style based on the name
func getBorder(name string) lipgloss.Border {
	switch name {
	case "normal":
		return lipgloss.NormalBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}

// getAlign returns the alignment based on the name
func getAlign(name string) lipgloss.Position {
	switch name {
	case "left":
		return lipgloss.Left
	case "right":
		return lipgloss.Right
	default:
		return lipgloss.Center
	}
}
