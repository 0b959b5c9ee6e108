package views

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"launchtree/internal/adapters/tui/styles"
	"launchtree/internal/application"
	"launchtree/internal/application/commands"
	"launchtree/internal/domain"
)

const (
	fieldName = iota
	fieldType
	fieldTarget
)

// FormKeyMap defines the extra key bindings of the node form
type FormKeyMap struct {
	PrevType key.Binding
	NextType key.Binding
}

var FormKeys = FormKeyMap{
	PrevType: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous type"),
	),
	NextType: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next type"),
	),
}

// NodeFormModel adds a node next to the selection or edits an existing one
type NodeFormModel struct {
	ViewState
	session *application.Session
	form    *InputForm

	// node is nil when adding
	node       *domain.Node
	selectedID string
}

// NewNodeFormModel creates a new node form
func NewNodeFormModel(session *application.Session) *NodeFormModel {
	return &NodeFormModel{
		session: session,
		form: NewInputForm(
			NewInputField("Name", "Display name", 200),
			NewInputField("Type", "group, path, url or separator", 20),
			NewInputField("Target", "/path/to/file or https://...", 0),
		),
	}
}

// Open prepares the form. A nil node starts an add anchored at selectedID.
func (m *NodeFormModel) Open(node *domain.Node, selectedID string) {
	m.node = node
	m.selectedID = selectedID
	m.ClearMessage()
	m.form.Reset()

	if node == nil {
		m.form.SetValue(fieldType, string(domain.NodeTypePath))
		return
	}
	m.form.SetValue(fieldName, node.Name)
	m.form.SetValue(fieldType, string(node.Type))
	m.form.SetValue(fieldTarget, node.Target)
}

// Editing reports whether the form edits an existing node
func (m *NodeFormModel) Editing() bool {
	return m.node != nil
}

// Init initializes the form
func (m *NodeFormModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the form
func (m *NodeFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.form.Keys.Cancel):
			return m, switchTo(SwitchToBrowserMsg{})

		case key.Matches(msg, m.form.Keys.Submit):
			return m, m.submit()

		case m.form.Focused(fieldType) && key.Matches(msg, FormKeys.PrevType):
			m.cycleType(-1)
			return m, nil

		case m.form.Focused(fieldType) && key.Matches(msg, FormKeys.NextType):
			m.cycleType(1)
			return m, nil
		}
	}

	_, cmd := m.form.Update(msg)
	return m, cmd
}

// cycleType steps the type field through the allowed node types
func (m *NodeFormModel) cycleType(delta int) {
	current, _ := domain.ParseNodeType(m.form.Value(fieldType))
	i := slices.Index(domain.NodeTypes, current)
	n := len(domain.NodeTypes)
	next := domain.NodeTypes[((i+delta)%n+n)%n]
	m.form.SetValue(fieldType, string(next))
}

func (m *NodeFormModel) submit() tea.Cmd {
	name := m.form.Value(fieldName)
	nodeType := m.form.Value(fieldType)
	target := m.form.Value(fieldTarget)

	var message string
	if m.node == nil {
		res, err := commands.NewAddNodeCommand(m.session, m.selectedID, nodeType, name, target).Execute(context.Background())
		if err != nil {
			m.SetMessage(err.Error(), true)
			return nil
		}
		message = res.Message
	} else {
		update := application.NodeUpdate{Name: &name, Type: &nodeType, Target: &target}
		res, err := commands.NewEditNodeCommand(m.session, m.node.ID, update).Execute(context.Background())
		if err != nil {
			m.SetMessage(err.Error(), true)
			return nil
		}
		message = res.Message
	}

	return switchTo(ActionDoneMsg{Message: message})
}

// View renders the form
func (m *NodeFormModel) View() string {
	title := "New entry"
	if m.node != nil {
		title = fmt.Sprintf("Edit %s", domain.DisplayName(m.node))
	}

	v := NewViewBuilder().Title(title)
	if m.node == nil {
		v.Subtitle(m.anchorText())
	}

	for i := range m.form.Fields {
		v.Line(m.form.RenderField(i))
		if i == fieldType && m.form.Focused(fieldType) {
			v.Muted(m.typeChoices())
		}
		v.BlankLine()
	}

	return v.Message(m.Message, m.MessageErr).
		Raw(m.form.RenderHelp("save")).
		String()
}

func (m *NodeFormModel) anchorText() string {
	parent, _ := domain.ResolveInsertAnchor(m.session.Root(), m.selectedID)
	return fmt.Sprintf("Adding into %s", domain.DisplayName(parent))
}

func (m *NodeFormModel) typeChoices() string {
	current, _ := domain.ParseNodeType(m.form.Value(fieldType))
	parts := make([]string, 0, len(domain.NodeTypes))
	for _, t := range domain.NodeTypes {
		if t == current {
			parts = append(parts, styles.HelpKey.Render(string(t)))
			continue
		}
		parts = append(parts, string(t))
	}
	return "  " + strings.Join(parts, " / ") + "  (↑/↓ to change)"
}
