package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"launchtree/internal/adapters/tui/views"
	"launchtree/internal/application"
	"launchtree/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewForm
	ViewDelete
	ViewHelp
)

// Options wires the collaborators of the TUI
type Options struct {
	Launcher ports.Launcher
	History  ports.LaunchHistory
	Importer ports.DropImporter
	Editor   ports.EditorOpener
	TreePath string
}

// App is the main TUI application model
type App struct {
	editor ports.EditorOpener

	state   ViewState
	browser *views.BrowserModel
	form    *views.NodeFormModel
	delete  *views.DeleteModel
	help    *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(session *application.Session, opts Options) *App {
	return &App{
		editor: opts.Editor,
		state:  ViewBrowser,
		browser: views.NewBrowserModel(session, views.BrowserOptions{
			Launcher: opts.Launcher,
			History:  opts.History,
			Importer: opts.Importer,
			TreePath: opts.TreePath,
		}),
		form:   views.NewNodeFormModel(session),
		delete: views.NewDeleteModel(session),
		help:   views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.browser.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.browser.SetSize(msg.Width, msg.Height)
		a.form.SetSize(msg.Width, msg.Height)
		a.delete.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToFormMsg:
		a.state = ViewForm
		a.form.Open(msg.Node, msg.SelectedID)
		return a, a.form.Init()

	case views.SwitchToDeleteMsg:
		a.state = ViewDelete
		a.delete.SetTarget(msg.Node)
		return a, nil

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToBrowserMsg:
		a.state = ViewBrowser
		return a, nil

	case views.ActionDoneMsg:
		a.state = ViewBrowser
		a.browser.Done(msg)
		return a, nil

	case views.OpenEditorMsg:
		a.state = ViewBrowser
		return a, a.openEditor(msg.Path)

	case editorFinishedMsg:
		// The file may have changed under us
		a.browser.Reload()
		if msg.err != nil {
			a.browser.SetMessage(fmt.Sprintf("Editor: %v", msg.err), true)
		} else {
			a.browser.SetMessage("Reloaded tree from disk", false)
		}
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewBrowser:
		_, cmd = a.browser.Update(msg)
	case ViewForm:
		_, cmd = a.form.Update(msg)
	case ViewDelete:
		_, cmd = a.delete.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

type editorFinishedMsg struct{ err error }

func (a *App) openEditor(path string) tea.Cmd {
	if a.editor == nil {
		return nil
	}

	cmd, err := a.editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewForm:
		return a.form.View()
	case ViewDelete:
		return a.delete.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.browser.View()
	}
}

// State returns the active view
func (a *App) State() ViewState {
	return a.state
}
