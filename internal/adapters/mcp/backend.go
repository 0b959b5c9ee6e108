package mcp

import (
	"sync"

	"github.com/mark3labs/mcp-go/mcp"

	"launchtree/internal/application"
	"launchtree/internal/ports"
)

// Backend serializes tool calls onto one session. The server may dispatch
// requests concurrently; the tree and user state are single-owner.
type Backend struct {
	mu       sync.Mutex
	session  *application.Session
	launcher ports.Launcher
	history  ports.LaunchHistory
}

// NewBackend creates a backend. history may be nil.
func NewBackend(session *application.Session, launcher ports.Launcher, history ports.LaunchHistory) *Backend {
	return &Backend{
		session:  session,
		launcher: launcher,
		history:  history,
	}
}

func (b *Backend) locked(fn func() (*mcp.CallToolResult, error)) (*mcp.CallToolResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return fn()
}
