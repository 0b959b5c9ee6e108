package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"launchtree/internal/adapters/tui/styles"
	"launchtree/internal/application"
	"launchtree/internal/application/commands"
	"launchtree/internal/domain"
	"launchtree/internal/ports"
)

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Left     key.Binding
	Right    key.Binding
	Enter    key.Binding
	Favorite key.Binding
	ViewMode key.Binding
	New      key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Cut      key.Binding
	Paste    key.Binding
	RowUp    key.Binding
	RowDown  key.Binding
	Copy     key.Binding
	Import   key.Binding
	RawEdit  key.Binding
	Search   key.Binding
	Clear    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("pgdn", "page down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "collapse"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "expand"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "launch/toggle"),
	),
	Favorite: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "favorite"),
	),
	ViewMode: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "view"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Cut: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "cut"),
	),
	Paste: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "paste"),
	),
	RowUp: key.NewBinding(
		key.WithKeys("K"),
		key.WithHelp("K", "move up"),
	),
	RowDown: key.NewBinding(
		key.WithKeys("J"),
		key.WithHelp("J", "move down"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy target"),
	),
	Import: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "import clipboard"),
	),
	RawEdit: key.NewBinding(
		key.WithKeys("E"),
		key.WithHelp("E", "edit file"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Clear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// BrowserOptions carries the collaborators of the browser besides the session
type BrowserOptions struct {
	Launcher ports.Launcher
	History  ports.LaunchHistory
	Importer ports.DropImporter
	TreePath string
}

// row is one rendered line of the browser
type row struct {
	Node  *domain.Node
	Depth int
}

// BrowserModel is the model for the tree browser view
type BrowserModel struct {
	ViewState
	session *application.Session
	opts    BrowserOptions

	mode      domain.ViewMode
	collapsed domain.IDSet
	rows      []row
	scroller  *Scroller
	search    textinput.Model
	searching bool
	cutID     string
}

// NewBrowserModel creates a new browser model
func NewBrowserModel(session *application.Session, opts BrowserOptions) *BrowserModel {
	search := textinput.New()
	search.Placeholder = "Search..."
	search.Prompt = "/ "

	m := &BrowserModel{
		session:   session,
		opts:      opts,
		collapsed: domain.IDSet{},
		scroller:  NewScroller(20),
		search:    search,
	}
	m.refresh()
	return m
}

// Init initializes the browser
func (m *BrowserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m, m.updateSearch(msg)
		}
		m.ClearMessage()
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *BrowserModel) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.refresh()
		return nil
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refresh()
	return cmd
}

func (m *BrowserModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	node := m.Selected()

	switch {
	case key.Matches(msg, BrowserKeys.Quit):
		return tea.Quit

	case key.Matches(msg, BrowserKeys.Up):
		m.scroller.Move(-1)

	case key.Matches(msg, BrowserKeys.Down):
		m.scroller.Move(1)

	case key.Matches(msg, BrowserKeys.PageUp):
		m.scroller.PageUp()

	case key.Matches(msg, BrowserKeys.PageDown):
		m.scroller.PageDown()

	case key.Matches(msg, BrowserKeys.Left):
		m.collapseOrParent(node)

	case key.Matches(msg, BrowserKeys.Right):
		if node != nil && node.Type == domain.NodeTypeGroup {
			delete(m.collapsed, node.ID)
			m.refresh()
		}

	case key.Matches(msg, BrowserKeys.Enter):
		m.activate(node)

	case key.Matches(msg, BrowserKeys.Favorite):
		if node != nil {
			res, err := commands.NewToggleFavoriteCommand(m.session, node.ID).Execute(context.Background())
			m.finish(err, func() string { return res.Message })
		}

	case key.Matches(msg, BrowserKeys.ViewMode):
		mode, err := commands.NewSetViewModeCommand(m.session, string(m.mode.Next())).Execute(context.Background())
		if err != nil {
			m.SetMessage(err.Error(), true)
		} else {
			m.SetMessage(fmt.Sprintf("View: %s", mode), false)
		}
		m.refresh()

	case key.Matches(msg, BrowserKeys.New):
		return switchTo(SwitchToFormMsg{SelectedID: m.selectedID()})

	case key.Matches(msg, BrowserKeys.Edit):
		if node != nil {
			return switchTo(SwitchToFormMsg{Node: node})
		}

	case key.Matches(msg, BrowserKeys.Delete):
		if node != nil {
			return switchTo(SwitchToDeleteMsg{Node: node})
		}

	case key.Matches(msg, BrowserKeys.Cut):
		if node != nil {
			m.cutID = node.ID
			m.SetMessage(fmt.Sprintf("Cut %s, select a destination and press p", domain.DisplayName(node)), false)
		}

	case key.Matches(msg, BrowserKeys.Paste):
		m.paste()

	case key.Matches(msg, BrowserKeys.RowUp), key.Matches(msg, BrowserKeys.RowDown):
		if node != nil && m.mode == domain.ViewAll {
			delta := 1
			if key.Matches(msg, BrowserKeys.RowUp) {
				delta = -1
			}
			res, err := commands.NewReorderCommand(m.session, node.ID, delta).Execute(context.Background())
			m.finish(err, func() string { return res.Message })
		}

	case key.Matches(msg, BrowserKeys.Copy):
		m.copyTarget(node)

	case key.Matches(msg, BrowserKeys.Import):
		m.importClipboard()

	case key.Matches(msg, BrowserKeys.RawEdit):
		if m.opts.TreePath != "" {
			return switchTo(OpenEditorMsg{Path: m.opts.TreePath})
		}

	case key.Matches(msg, BrowserKeys.Search):
		m.searching = true
		return m.search.Focus()

	case key.Matches(msg, BrowserKeys.Clear):
		if m.cutID != "" {
			m.cutID = ""
		} else if m.Query() != "" {
			m.search.SetValue("")
			m.refresh()
		}

	case key.Matches(msg, BrowserKeys.Help):
		return switchTo(SwitchToHelpMsg{})
	}

	return nil
}

func switchTo(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// activate launches leaves and toggles groups
func (m *BrowserModel) activate(node *domain.Node) {
	if node == nil {
		return
	}
	switch {
	case node.Type == domain.NodeTypeGroup:
		if m.collapsed.Has(node.ID) {
			delete(m.collapsed, node.ID)
		} else {
			m.collapsed.Add(node.ID)
		}
		m.refresh()
	case node.Type.IsLaunchable():
		cmd := commands.NewLaunchCommand(m.session, m.opts.Launcher, m.opts.History, node.ID)
		res, err := cmd.Execute(context.Background())
		m.finish(err, func() string { return res.Message })
	}
}

func (m *BrowserModel) collapseOrParent(node *domain.Node) {
	if node == nil || m.mode != domain.ViewAll {
		return
	}
	if node.Type == domain.NodeTypeGroup && !m.collapsed.Has(node.ID) && len(node.Children) > 0 {
		m.collapsed.Add(node.ID)
		m.refresh()
		return
	}
	ref, ok := domain.FindNodeRef(m.session.Root(), node.ID)
	if !ok || ref.Parent == nil {
		return
	}
	m.selectID(ref.Parent.ID)
}

// paste moves the cut node next to the selection, or into it for groups
func (m *BrowserModel) paste() {
	if m.cutID == "" {
		m.SetMessage("Nothing to paste, press m on a node first", true)
		return
	}
	parent, at := domain.ResolveInsertAnchor(m.session.Root(), m.selectedID())
	res, err := commands.NewMoveNodeCommand(m.session, m.cutID, parent.ID, at).Execute(context.Background())
	if err != nil {
		m.SetMessage(err.Error(), true)
		return
	}
	m.cutID = ""
	delete(m.collapsed, parent.ID)
	m.SetMessage(res.Message, false)
	m.refresh()
	m.selectID(res.Node.ID)
}

func (m *BrowserModel) copyTarget(node *domain.Node) {
	if node == nil {
		return
	}
	value := node.Target
	if value == "" {
		value = node.Name
	}
	if err := clipboard.WriteAll(value); err != nil {
		m.SetMessage(fmt.Sprintf("Clipboard unavailable: %v", err), true)
		return
	}
	m.SetMessage(fmt.Sprintf("Copied %s", value), false)
}

// importClipboard adds one node per clipboard line, like a drop onto the selection
func (m *BrowserModel) importClipboard() {
	if m.opts.Importer == nil {
		return
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		m.SetMessage(fmt.Sprintf("Clipboard unavailable: %v", err), true)
		return
	}
	values := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	cmd := commands.NewImportDropCommand(m.session, m.opts.Importer, m.selectedID(), values)
	res, err := cmd.Execute(context.Background())
	m.finish(err, func() string { return res.Message })
}

// finish reports a command outcome and redraws. message is only called on success.
func (m *BrowserModel) finish(err error, message func() string) {
	if err != nil {
		m.SetMessage(err.Error(), true)
	} else {
		m.SetMessage(message(), false)
	}
	m.refresh()
}

// Done shows the outcome of a sub-view action and redraws
func (m *BrowserModel) Done(msg ActionDoneMsg) {
	if msg.Err != nil {
		m.SetMessage(msg.Err.Error(), true)
	} else {
		m.SetMessage(msg.Message, false)
	}
	m.refresh()
}

// Reload rereads the tree and state from storage
func (m *BrowserModel) Reload() {
	m.session.Reload()
	m.cutID = ""
	m.refresh()
}

// refresh rebuilds the rows for the current mode and query, keeping the
// selection on the same node when it is still listed
func (m *BrowserModel) refresh() {
	keep := m.selectedID()

	res, err := commands.NewListViewCommand(m.session, "", m.Query()).Execute(context.Background())
	if err != nil {
		m.SetMessage(err.Error(), true)
		return
	}
	m.mode = res.Mode

	m.rows = m.rows[:0]
	if res.Mode == domain.ViewAll {
		m.appendTreeRows(m.session.Root(), 0, res.Visible)
	} else {
		for _, n := range res.Nodes {
			m.rows = append(m.rows, row{Node: n})
		}
	}

	m.scroller.SetTotal(len(m.rows))
	m.selectID(keep)
}

// appendTreeRows lists the visible children of parent. Collapsed groups
// are only honored without a query so that matches always show.
func (m *BrowserModel) appendTreeRows(parent *domain.Node, depth int, visible domain.IDSet) {
	for _, child := range parent.Children {
		if !visible.Has(child.ID) {
			continue
		}
		m.rows = append(m.rows, row{Node: child, Depth: depth})
		if child.Type == domain.NodeTypeGroup && (m.Query() != "" || !m.collapsed.Has(child.ID)) {
			m.appendTreeRows(child, depth+1, visible)
		}
	}
}

func (m *BrowserModel) selectID(id string) {
	for i, r := range m.rows {
		if r.Node.ID == id {
			m.scroller.SetCursor(i)
			return
		}
	}
	m.scroller.SetCursor(m.scroller.Cursor())
}

// Selected returns the node under the cursor, nil when the list is empty
func (m *BrowserModel) Selected() *domain.Node {
	if c := m.scroller.Cursor(); c >= 0 && c < len(m.rows) {
		return m.rows[c].Node
	}
	return nil
}

func (m *BrowserModel) selectedID() string {
	if node := m.Selected(); node != nil {
		return node.ID
	}
	return ""
}

// Query returns the active search text
func (m *BrowserModel) Query() string {
	return strings.TrimSpace(m.search.Value())
}

// Mode returns the view mode being shown
func (m *BrowserModel) Mode() domain.ViewMode {
	return m.mode
}

// View renders the browser
func (m *BrowserModel) View() string {
	v := NewViewBuilder().
		Raw(RenderTitle("Launchtree")).
		Line("").
		Line(m.renderStatus()).
		BlankLine()

	if m.searching || m.Query() != "" {
		v.Line(m.search.View()).BlankLine()
	}

	if len(m.rows) == 0 {
		v.Muted(m.emptyText())
	}
	start, end := m.scroller.VisibleRange()
	for i := start; i < end; i++ {
		v.Line(m.renderRow(m.rows[i], i == m.scroller.Cursor()))
	}

	if m.Message != "" {
		v.BlankLine().Raw(RenderMessage(m.Message, m.MessageErr)).BlankLine()
	}

	return v.BlankLine().
		Help(BrowserKeys.Enter, BrowserKeys.New, BrowserKeys.Edit, BrowserKeys.Delete,
			BrowserKeys.Favorite, BrowserKeys.ViewMode, BrowserKeys.Search, BrowserKeys.Help, BrowserKeys.Quit).
		String()
}

func (m *BrowserModel) renderStatus() string {
	status := styles.StatusKey.Render(string(m.mode)) +
		styles.StatusText.Render(fmt.Sprintf("%d shown", len(m.rows)))
	if m.cutID != "" {
		if n := domain.FindNode(m.session.Root(), m.cutID); n != nil {
			status += styles.StatusText.Render(fmt.Sprintf("  cut: %s", domain.DisplayName(n)))
		}
	}
	return status
}

func (m *BrowserModel) emptyText() string {
	switch {
	case m.Query() != "":
		return "No matches."
	case m.mode == domain.ViewFavorites:
		return "No favorites yet, press f on an entry."
	case m.mode == domain.ViewRecent:
		return "Nothing launched yet."
	default:
		return "The tree is empty, press n to add an entry."
	}
}

func (m *BrowserModel) renderRow(r row, selected bool) string {
	node := r.Node
	indent := strings.Repeat("  ", r.Depth)

	prefix := styles.TreeLeaf
	if node.Type == domain.NodeTypeGroup {
		if m.collapsed.Has(node.ID) && m.Query() == "" {
			prefix = styles.TreeCollapsed
		} else {
			prefix = styles.TreeExpanded
		}
	}

	text := fmt.Sprintf("%s %s", styles.Icon(node), domain.DisplayName(node))

	var styled string
	switch {
	case selected:
		styled = styles.NodeSelected.Render(text)
	case node.ID == m.cutID:
		styled = styles.NodeCut.Render(text)
	default:
		styled = styles.NodeStyle(node.Type).Render(text)
	}

	if m.session.State().IsFavorite(node.ID) {
		styled += " " + styles.Favorite.String()
	}
	if node.Type.IsLaunchable() && (selected || m.mode != domain.ViewAll) {
		styled += "  " + styles.TargetText.Render(node.Target)
	}

	return fmt.Sprintf("%s%s%s", indent, styles.TreeBranch.Render(prefix), styled)
}

// SetSize updates the view dimensions and the number of rows shown
func (m *BrowserModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	// title, status, search, message and help lines
	m.scroller.SetHeight(height - 12)
}
