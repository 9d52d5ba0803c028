package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// HelpRenderer handles help content rendering
type HelpRenderer struct{}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{}
}

// RenderHelpContent generates the full help text for keys
func (r *HelpRenderer) RenderHelpContent(title string, keys KeyMap) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder
	line := func(b key.Binding, desc string) {
		help.WriteString(fmt.Sprintf("  %-14s %s\n", keyStyle.Render(b.Help().Key), descStyle.Render(desc)))
	}

	help.WriteString(titleStyle.Render(title + " Help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("List closed"))
	help.WriteString("\n")
	line(keys.Toggle, "Open the list")
	line(keys.Help, "Show this help")
	line(keys.Quit, "Quit")
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("List open"))
	help.WriteString("\n")
	line(keys.Down, "Highlight next match")
	line(keys.Up, "Highlight previous match")
	line(keys.Select, "Choose the highlighted match")
	line(keys.Close, "Close the list")
	help.WriteString(fmt.Sprintf("  %-14s %s\n", keyStyle.Render("any text"), descStyle.Render("Filter the list (case-insensitive)")))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Mouse"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %-14s %s\n", keyStyle.Render("hover"), descStyle.Render("Highlight an option")))
	help.WriteString(fmt.Sprintf("  %-14s %s", keyStyle.Render("click"), descStyle.Render("Toggle the list or choose an option")))

	return help.String()
}

// HelpOps shows help in an external pager
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps(program *tea.Program) *HelpOps {
	return &HelpOps{
		program: program,
	}
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// Give ov time to exit before taking the terminal back
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(helpContent))
	if err != nil {
		return err
	}

	// Don't write on exit, it would land on our screen
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// showHelpPager returns a command that runs the pager off the update loop
func (h *HelpOps) showHelpPager(helpContent string) tea.Cmd {
	return func() tea.Msg {
		return helpPagerMsg{err: h.ShowHelpInPager(helpContent)}
	}
}
