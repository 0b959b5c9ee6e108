package views

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"launchtree/internal/adapters/tui/styles"
	"launchtree/internal/application"
	"launchtree/internal/application/commands"
	"launchtree/internal/domain"
)

// DeleteModel is the model for the delete confirmation view
type DeleteModel struct {
	ConfirmationModel
	session *application.Session
}

// NewDeleteModel creates a new delete view model
func NewDeleteModel(session *application.Session) *DeleteModel {
	return &DeleteModel{
		ConfirmationModel: NewConfirmationModel(),
		session:           session,
	}
}

// Init initializes the delete view
func (m *DeleteModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the delete view
func (m *DeleteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg,
			func() tea.Msg { return m.doDelete() },
			func() tea.Msg { return SwitchToBrowserMsg{} },
		)
		if handled {
			return m, cmd
		}
	}

	return m, nil
}

func (m *DeleteModel) doDelete() tea.Msg {
	if m.TargetNode == nil {
		return ActionDoneMsg{Err: fmt.Errorf("no target selected")}
	}

	res, err := commands.NewDeleteCommand(m.session, m.TargetNode.ID).Execute(context.Background())
	if err != nil {
		return ActionDoneMsg{Err: err}
	}
	return ActionDoneMsg{Message: res.Message}
}

// View renders the delete confirmation view
func (m *DeleteModel) View() string {
	var b strings.Builder

	// Title
	b.WriteString(styles.Title.Render("Delete Confirmation"))
	b.WriteString("\n\n")

	// Warning
	b.WriteString(styles.ErrorMsg.Render("This action cannot be undone!"))
	b.WriteString("\n\n")

	// Target info
	b.WriteString(RenderTargetInfo(m.TargetNode, "Delete"))
	b.WriteString("\n\n")

	// Groups take their whole subtree with them
	if m.TargetNode != nil && len(m.TargetNode.Children) > 0 {
		count := domain.Count(m.TargetNode) - 1
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("  %d nested entries will be deleted too.", count)))
		b.WriteString("\n\n")
	}

	// Confirmation prompt
	b.WriteString(RenderConfirmPrompt("Are you sure?"))

	return styles.App.Render(b.String())
}
