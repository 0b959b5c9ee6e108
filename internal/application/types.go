package application

import "launchtree/internal/domain"

// Re-export node types for use by adapters
type NodeType = domain.NodeType

const (
	NodeTypeGroup     = domain.NodeTypeGroup
	NodeTypePath      = domain.NodeTypePath
	NodeTypeURL       = domain.NodeTypeURL
	NodeTypeSeparator = domain.NodeTypeSeparator
)

// Re-export domain types for use by adapters
type (
	Node        = domain.Node
	NodeRef     = domain.NodeRef
	UserState   = domain.UserState
	ViewMode    = domain.ViewMode
	IDSet       = domain.IDSet
	RecentEntry = domain.RecentEntry
)

// ParseNodeType converts a string into a NodeType
func ParseNodeType(s string) (NodeType, bool) {
	return domain.ParseNodeType(s)
}

// ParseViewMode validates a view mode string
func ParseViewMode(s string) (ViewMode, bool) {
	return domain.ParseViewMode(s)
}
