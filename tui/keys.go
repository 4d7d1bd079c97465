package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"teamboard/internal/infrastructure/config"
)

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Move      key.Binding
	ListLeft  key.Binding
	ListRight key.Binding
	Add       key.Binding
	AddList   key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Detail    key.Binding
	Refresh   key.Binding
	Quit      key.Binding

	// Fixed keys for prompts and move mode
	Confirm key.Binding
	Cancel  key.Binding
	Yes     key.Binding
}

var keys keyMap

func init() {
	if cfg, err := config.Default(); err == nil {
		InitKeybindings(cfg)
	}
}

// InitKeybindings builds the key map from config
func InitKeybindings(cfg *config.Config) {
	kb := cfg.Keybindings
	keys = keyMap{
		Up:        binding(kb.Up, "↑/k", "up"),
		Down:      binding(kb.Down, "↓/j", "down"),
		Left:      binding(kb.Left, "←/h", "left"),
		Right:     binding(kb.Right, "→/l", "right"),
		Move:      binding(kb.Move, "m", "move card"),
		ListLeft:  binding(kb.ListLeft, "<", "list left"),
		ListRight: binding(kb.ListRight, ">", "list right"),
		Add:       binding(kb.Add, "a", "add card"),
		AddList:   binding(kb.AddList, "A", "add list"),
		Edit:      binding(kb.Edit, "e", "edit"),
		Delete:    binding(kb.Delete, "d", "delete"),
		Detail:    binding(kb.Detail, "enter", "details"),
		Refresh:   binding(kb.Refresh, "r", "refresh"),
		Quit:      binding(kb.Quit, "q", "quit"),

		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Yes:     key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
	}
}

func binding(keysList []string, helpKey, desc string) key.Binding {
	if len(keysList) > 0 {
		helpKey = keysList[0]
		if helpKey == " " {
			helpKey = "space"
		}
	}
	return key.NewBinding(key.WithKeys(keysList...), key.WithHelp(helpKey, desc))
}

// help lists the bindings shown in the footer for each mode
func (k keyMap) help(m mode) []key.Binding {
	switch m {
	case modeMove:
		return []key.Binding{k.Left, k.Right, k.Up, k.Down, k.Confirm, k.Cancel}
	case modeInput:
		return []key.Binding{k.Confirm, k.Cancel}
	case modeConfirm:
		return []key.Binding{k.Yes, k.Cancel}
	case modeDetail:
		return []key.Binding{k.Edit, k.Cancel}
	default:
		return []key.Binding{k.Left, k.Down, k.Move, k.ListLeft, k.ListRight, k.Add, k.AddList, k.Edit, k.Delete, k.Detail, k.Refresh, k.Quit}
	}
}
