package tui

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"headlesselect/internal/config"
	"headlesselect/internal/eventbus"
	"headlesselect/internal/selectctl"
)

// Screen rows: the trigger sits on row 0, the search input on row 1 and
// options start on row 2. Mouse hit-testing relies on this layout.
const (
	triggerRow     = 0
	firstOptionRow = 2
)

// Option configures a Model
type Option[T any] func(*Model[T])

// WithItemRenderer sets the text shown for an item. Defaults to the
// controller's label.
func WithItemRenderer[T any](fn func(T) string) Option[T] {
	return func(m *Model[T]) {
		m.render = fn
	}
}

// Model is a terminal front-end for a select controller. It owns no
// selection state of its own; everything is read from the controller and
// changed through its prop bundles.
type Model[T any] struct {
	ctrl   *selectctl.Controller[T]
	config *config.Config
	keys   KeyMap
	styles *Styles

	input        textinput.Model
	help         help.Model
	helpRenderer *HelpRenderer
	helpOps      *HelpOps
	render       func(T) string

	width        int
	showFullHelp bool
	status       string
	committed    bool
	quitting     bool

	unsubscribe []func()
}

// New creates a model bound to ctrl
func New[T any](ctrl *selectctl.Controller[T], cfg *config.Config, opts ...Option[T]) *Model[T] {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	input := textinput.New()
	input.Placeholder = cfg.Placeholder
	input.Prompt = "> "
	input.SetValue(ctrl.Search())

	m := &Model[T]{
		ctrl:         ctrl,
		config:       cfg,
		keys:         NewKeyMap(cfg.Keys),
		styles:       NewStyles(),
		input:        input,
		help:         help.New(),
		helpRenderer: NewHelpRenderer(),
		render:       ctrl.Label,
		width:        cfg.UISettings.Width,
	}
	for _, opt := range opts {
		opt(m)
	}

	if ctrl.IsOpen() {
		m.input.Focus()
	}
	m.subscribe()
	return m
}

// SetProgram attaches the running program so help can open in a pager
func (m *Model[T]) SetProgram(p *tea.Program) {
	m.helpOps = NewHelpOps(p)
}

// Chosen returns the item committed during this session, if any
func (m *Model[T]) Chosen() (T, bool) {
	if !m.committed {
		var zero T
		return zero, false
	}
	return m.ctrl.SelectedItem()
}

// Detach removes the model's controller subscriptions
func (m *Model[T]) Detach() {
	for _, unsub := range m.unsubscribe {
		unsub()
	}
	m.unsubscribe = nil
}

func (m *Model[T]) subscribe() {
	bus := m.ctrl.Bus()
	m.unsubscribe = append(m.unsubscribe,
		bus.Subscribe(eventbus.EventOpened, func(eventbus.DomainEvent) {
			m.input.SetValue(m.ctrl.Search())
			m.input.CursorEnd()
			m.input.Focus()
		}),
		bus.Subscribe(eventbus.EventClosed, func(eventbus.DomainEvent) {
			m.input.Blur()
		}),
		bus.Subscribe(eventbus.EventSearchChanged, func(e eventbus.DomainEvent) {
			ev := e.(eventbus.SearchChangedEvent)
			m.status = fmt.Sprintf("%d/%d", ev.MatchCount, len(m.ctrl.Items()))
		}),
		bus.Subscribe(eventbus.EventItemSelected, func(e eventbus.DomainEvent) {
			ev := e.(eventbus.ItemSelectedEvent)
			m.committed = true
			m.status = "Selected: " + ev.Label
			log.Printf("Selected %q", ev.Label)
		}),
	)
}

// Init implements tea.Model
func (m *Model[T]) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m *Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if m.config.UISettings.Width > 0 && m.config.UISettings.Width < msg.Width {
			m.width = m.config.UISettings.Width
		}
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case helpPagerMsg:
		if msg.err != nil {
			log.Printf("Help pager failed: %v", msg.err)
			m.showFullHelp = !m.showFullHelp
		}
		return m, nil
	}

	if m.ctrl.IsOpen() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model[T]) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}

	if !m.ctrl.IsOpen() {
		switch {
		case key.Matches(msg, m.keys.Toggle):
			m.ctrl.TriggerProps().OnClick()
			return m, textinput.Blink
		case key.Matches(msg, m.keys.Help):
			return m, m.toggleHelp()
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		}
		return m, nil
	}

	props := m.ctrl.InputProps()
	if navKey, ok := m.keys.navigationKey(msg); ok {
		props.OnKeyDown(selectctl.NewKeyEvent(navKey))
		return m.afterTransition()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != props.Value {
		props.OnChange(value)
	}
	return m, cmd
}

func (m *Model[T]) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	index := msg.Y - firstOptionRow

	switch msg.Action {
	case tea.MouseActionMotion:
		if m.ctrl.IsOpen() && index >= 0 && index < len(m.ctrl.FilteredItems()) {
			m.ctrl.OptionProps(m.ctrl.FilteredItems()[index], index).OnPointerEnter()
		}
		return m, nil

	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if msg.Y == triggerRow {
			m.ctrl.TriggerProps().OnClick()
			return m, nil
		}
		if m.ctrl.IsOpen() && index >= 0 && index < len(m.ctrl.FilteredItems()) {
			m.ctrl.OptionProps(m.ctrl.FilteredItems()[index], index).OnClick()
			return m.afterTransition()
		}
	}
	return m, nil
}

func (m *Model[T]) afterTransition() (tea.Model, tea.Cmd) {
	if m.committed && !m.ctrl.IsOpen() && m.config.ExitOnSelect {
		return m.quit()
	}
	return m, nil
}

func (m *Model[T]) toggleHelp() tea.Cmd {
	if m.helpOps != nil {
		return m.helpOps.showHelpPager(m.helpRenderer.RenderHelpContent(m.config.Title, m.keys))
	}
	m.showFullHelp = !m.showFullHelp
	return nil
}

func (m *Model[T]) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

// View implements tea.Model
func (m *Model[T]) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderTrigger())
	b.WriteString("\n")

	if m.ctrl.IsOpen() {
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(m.renderOptions())
	}

	if m.status != "" {
		b.WriteString(m.styles.Status.Render(m.status))
		b.WriteString("\n")
	}

	if m.config.UISettings.ShowHelp {
		m.help.ShowAll = m.showFullHelp
		b.WriteString(m.styles.Help.Render(m.help.View(stateKeys{keys: m.keys, open: m.ctrl.IsOpen()})))
	}
	return b.String()
}

func (m *Model[T]) renderTrigger() string {
	props := m.ctrl.TriggerProps()

	marker := "▸"
	if props.AriaExpanded {
		marker = "▾"
	}

	label := m.styles.Placeholder.Render(m.config.Title)
	if item, ok := m.ctrl.SelectedItem(); ok {
		label = m.styles.Trigger.Render(m.truncate(m.render(item)))
	}
	return m.styles.Marker.Render(marker) + " " + label
}

func (m *Model[T]) renderOptions() string {
	filtered := m.ctrl.FilteredItems()
	if len(filtered) == 0 {
		return m.styles.Dim.Render("  No matches") + "\n"
	}

	var b strings.Builder
	for i, item := range filtered {
		props := m.ctrl.OptionProps(item, i)

		cursor := "  "
		if props.Highlighted {
			cursor = "› "
		}
		check := "  "
		if props.AriaSelected {
			check = "✓ "
		}

		text := m.truncate(m.render(item))
		style := m.styles.Option
		switch {
		case props.Highlighted:
			style = m.styles.Highlight
		case props.AriaSelected:
			style = m.styles.Selected
		}
		b.WriteString(cursor + check + style.Render(text))
		b.WriteString("\n")
	}
	return b.String()
}

// truncate keeps option text to the configured width, leaving room for
// the cursor and check columns
func (m *Model[T]) truncate(s string) string {
	if m.width <= 0 {
		return s
	}
	limit := m.width - 4
	if limit < 1 {
		limit = 1
	}
	return ansi.Truncate(s, limit, "…")
}
