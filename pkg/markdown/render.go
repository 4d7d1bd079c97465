package markdown

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

// StyleEnv forces the markdown palette to "dark" or "light"
const StyleEnv = "TEAMBOARD_MD_STYLE"

var (
	mdMu sync.Mutex
	// Renderers are cached by style and width. Building one with an auto
	// style queries the terminal, which can block.
	mdRenderers = map[string]*glamour.TermRenderer{}
)

// Render renders card descriptions for the terminal. On any
// renderer error the source text is returned unchanged.
func Render(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	style := markdownStyle()
	key := style + ":" + strconv.Itoa(width)

	mdMu.Lock()
	r := mdRenderers[key]
	mdMu.Unlock()

	if r == nil {
		cfg := styleConfig(style)
		zero := uint(0)
		cfg.Document.Margin = &zero
		rr, err := glamour.NewTermRenderer(
			glamour.WithStyles(cfg),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		mdMu.Lock()
		if existing := mdRenderers[key]; existing != nil {
			r = existing
		} else {
			mdRenderers[key] = rr
			r = rr
		}
		mdMu.Unlock()
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

func styleConfig(style string) ansi.StyleConfig {
	if style == "light" {
		return styles.LightStyleConfig
	}
	return styles.DarkStyleConfig
}

func markdownStyle() string {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(StyleEnv))) {
	case "light":
		return "light"
	case "dark":
		return "dark"
	}
	// COLORFGBG is "fg;bg"; xterm colors 7-15 are light.
	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
			if bg >= 7 {
				return "light"
			}
			return "dark"
		}
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}
