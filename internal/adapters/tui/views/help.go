package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"launchtree/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, switchTo(SwitchToBrowserMsg{})
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Launchtree Help"))
	b.WriteString("\n\n")

	// Navigation section
	b.WriteString(styles.InputLabel.Render("Navigation"))
	b.WriteString("\n")
	b.WriteString(helpLine("j / k / ↑ / ↓", "Move up/down"))
	b.WriteString(helpLine("pgup / pgdn", "Page up/down"))
	b.WriteString(helpLine("h / ←", "Collapse / go to parent"))
	b.WriteString(helpLine("l / →", "Expand group"))
	b.WriteString(helpLine("/", "Search names and targets"))
	b.WriteString(helpLine("v", "Cycle view: all, favorites, recent"))
	b.WriteString(helpLine("esc", "Clear search or cut"))
	b.WriteString("\n")

	// Actions section
	b.WriteString(styles.InputLabel.Render("Actions"))
	b.WriteString("\n")
	b.WriteString(helpLine("enter", "Launch entry / toggle group"))
	b.WriteString(helpLine("n", "New entry next to selection"))
	b.WriteString(helpLine("e", "Edit selected entry"))
	b.WriteString(helpLine("d", "Delete selected entry"))
	b.WriteString(helpLine("f", "Toggle favorite"))
	b.WriteString(helpLine("m / p", "Cut / paste to move"))
	b.WriteString(helpLine("K / J", "Move up/down among siblings"))
	b.WriteString(helpLine("y", "Copy target to clipboard"))
	b.WriteString(helpLine("i", "Import paths and URLs from clipboard"))
	b.WriteString(helpLine("E", "Edit the tree file in $EDITOR"))
	b.WriteString("\n")

	// General section
	b.WriteString(styles.InputLabel.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpLine("?", "Toggle help"))
	b.WriteString(helpLine("q / Ctrl+C", "Quit"))
	b.WriteString("\n")

	// Entry types
	b.WriteString(styles.InputLabel.Render("Entry Types"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  group     : holds other entries"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  path      : file, folder or program opened by the OS"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  url       : http, https or file link"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  separator : visual divider"))
	b.WriteString("\n\n")

	// Close hint
	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
