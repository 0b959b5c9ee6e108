package ports

import "launchtree/internal/domain"

// TreeRepository defines durable storage for the launcher tree.
// LoadTree never fails: implementations recover from corruption internally
// and fall back to an empty default tree.
type TreeRepository interface {
	LoadTree() *domain.Node
	SaveTree(root *domain.Node) error
}

// UserStateRepository defines durable storage for favorites, recency and view mode
type UserStateRepository interface {
	LoadUserState() domain.UserState
	SaveUserState(state domain.UserState) error
}

// DropImporter turns raw dropped values (paths, URLs, shortcut files) into entries
type DropImporter interface {
	BuildDropEntries(values []string) []domain.DropEntry
}
