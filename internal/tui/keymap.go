package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"headlesselect/internal/config"
	"headlesselect/internal/selectctl"
)

// KeyMap holds the key bindings for the select UI
type KeyMap struct {
	Down   key.Binding
	Up     key.Binding
	Select key.Binding
	Close  key.Binding
	Toggle key.Binding
	Quit   key.Binding
	Help   key.Binding
}

// NewKeyMap builds bindings from configured key names
func NewKeyMap(cfg config.KeyConfig) KeyMap {
	bind := func(keys []string, desc string) key.Binding {
		return key.NewBinding(key.WithKeys(keys...), key.WithHelp(helpLabel(keys), desc))
	}
	return KeyMap{
		Down:   bind(cfg.Down, "next"),
		Up:     bind(cfg.Up, "previous"),
		Select: bind(cfg.Select, "choose"),
		Close:  bind(cfg.Close, "close"),
		Toggle: bind(cfg.Toggle, "open"),
		Quit:   bind(cfg.Quit, "quit"),
		Help:   bind(cfg.Help, "help"),
	}
}

// navigationKey translates a key press into the controller's key vocabulary
func (k KeyMap) navigationKey(msg tea.KeyMsg) (selectctl.Key, bool) {
	switch {
	case key.Matches(msg, k.Down):
		return selectctl.KeyDown, true
	case key.Matches(msg, k.Up):
		return selectctl.KeyUp, true
	case key.Matches(msg, k.Select):
		return selectctl.KeyEnter, true
	case key.Matches(msg, k.Close):
		return selectctl.KeyEscape, true
	}
	return "", false
}

// stateKeys exposes the bindings relevant to the current open state to
// the bubbles help view
type stateKeys struct {
	keys KeyMap
	open bool
}

func (s stateKeys) ShortHelp() []key.Binding {
	if s.open {
		return []key.Binding{s.keys.Up, s.keys.Down, s.keys.Select, s.keys.Close}
	}
	return []key.Binding{s.keys.Toggle, s.keys.Help, s.keys.Quit}
}

func (s stateKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{s.keys.Up, s.keys.Down, s.keys.Select, s.keys.Close},
		{s.keys.Toggle, s.keys.Help, s.keys.Quit},
	}
}

var keyGlyphs = map[string]string{
	"up":    "↑",
	"down":  "↓",
	"left":  "←",
	"right": "→",
	" ":     "space",
}

func helpLabel(keys []string) string {
	labels := make([]string, 0, len(keys))
	for _, k := range keys {
		if g, ok := keyGlyphs[k]; ok {
			k = g
		}
		labels = append(labels, k)
	}
	return strings.Join(labels, "/")
}
