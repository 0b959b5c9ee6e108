package views

import "launchtree/internal/domain"

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// Messages for view switching
type SwitchToBrowserMsg struct{}

type SwitchToHelpMsg struct{}

// SwitchToFormMsg opens the node form. Node is nil when adding.
type SwitchToFormMsg struct {
	Node       *domain.Node
	SelectedID string
}

type SwitchToDeleteMsg struct {
	Node *domain.Node
}

// OpenEditorMsg asks the app to open a file in the external editor
type OpenEditorMsg struct {
	Path string
}

// ActionDoneMsg reports the outcome of a mutation performed by a sub-view
type ActionDoneMsg struct {
	Message string
	Err     error
}
