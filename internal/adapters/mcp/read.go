package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"launchtree/internal/application/commands"
	"launchtree/internal/domain"
)

// RegisterReadTools adds all read-only launcher tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, b *Backend) {
	s.AddTool(treeTool(), treeHandler(b))
	s.AddTool(searchTool(), searchHandler(b))
	s.AddTool(favoritesTool(), favoritesHandler(b))
	s.AddTool(recentTool(), recentHandler(b))
}

// --- tree ---

func treeTool() mcp.Tool {
	return mcp.NewTool("tree",
		mcp.WithDescription("Display the launcher tree with node IDs. With a query, only nodes that stay visible in the filtered view are shown."),
		mcp.WithString("query",
			mcp.Description("Case-insensitive filter on name, target and type"),
		),
	)
}

func treeHandler(b *Backend) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return b.locked(func() (*mcp.CallToolResult, error) {
			result, err := commands.NewListViewCommand(b.session, domain.ViewAll, req.GetString("query", "")).Execute(ctx)
			if err != nil {
				return toolError(err)
			}
			var sb strings.Builder
			renderTree(&sb, b.session.Root(), result.Visible, b.session.State(), "")
			if sb.Len() == 0 {
				return mcp.NewToolResultText("No results."), nil
			}
			return mcp.NewToolResultText(sb.String()), nil
		})
	}
}

func renderTree(sb *strings.Builder, node *domain.Node, visible domain.IDSet, state domain.UserState, prefix string) {
	if !visible.Has(node.ID) {
		return
	}
	if node.ID != domain.RootID {
		sb.WriteString(prefix)
		sb.WriteString(formatNode(node, state))
		sb.WriteByte('\n')
		prefix += "  "
	}
	for _, child := range node.Children {
		renderTree(sb, child, visible, state, prefix)
	}
}

// --- search ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search",
		mcp.WithDescription("Search the launcher tree by keyword. Returns matching nodes ranked by relevance."),
		mcp.WithString("query",
			mcp.Description("Search query"),
			mcp.Required(),
		),
	)
}

func searchHandler(b *Backend) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if strings.TrimSpace(query) == "" {
			return toolError(fmt.Errorf("query is required"))
		}

		return b.locked(func() (*mcp.CallToolResult, error) {
			result, err := commands.NewSearchCommand(b.session, query).Execute(ctx)
			if err != nil {
				return toolError(err)
			}
			if len(result.Matches) == 0 {
				return mcp.NewToolResultText("No results found."), nil
			}

			state := b.session.State()
			var sb strings.Builder
			for _, m := range result.Matches {
				sb.WriteString(formatNode(m.Node, state))
				sb.WriteByte('\n')
			}
			return mcp.NewToolResultText(sb.String()), nil
		})
	}
}

// --- favorites / recent ---

func favoritesTool() mcp.Tool {
	return mcp.NewTool("favorites",
		mcp.WithDescription("List favorite launchers in tree order."),
		mcp.WithString("query",
			mcp.Description("Optional filter"),
		),
	)
}

func favoritesHandler(b *Backend) server.ToolHandlerFunc {
	return listHandler(b, domain.ViewFavorites)
}

func recentTool() mcp.Tool {
	return mcp.NewTool("recent",
		mcp.WithDescription("List recently launched nodes, newest first."),
		mcp.WithString("query",
			mcp.Description("Optional filter"),
		),
	)
}

func recentHandler(b *Backend) server.ToolHandlerFunc {
	return listHandler(b, domain.ViewRecent)
}

func listHandler(b *Backend, mode domain.ViewMode) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return b.locked(func() (*mcp.CallToolResult, error) {
			result, err := commands.NewListViewCommand(b.session, mode, req.GetString("query", "")).Execute(ctx)
			if err != nil {
				return toolError(err)
			}
			return formatNodes(result.Nodes, b.session.State())
		})
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatNodes(nodes []*domain.Node, state domain.UserState) (*mcp.CallToolResult, error) {
	if len(nodes) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, n := range nodes {
		sb.WriteString(formatNode(n, state))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatNode(n *domain.Node, state domain.UserState) string {
	star := ""
	if state.IsFavorite(n.ID) {
		star = " *"
	}
	if n.Target == "" {
		return fmt.Sprintf("%s  [%s] %s%s", n.ID, n.Type, domain.DisplayName(n), star)
	}
	return fmt.Sprintf("%s  [%s] %s -> %s%s", n.ID, n.Type, domain.DisplayName(n), n.Target, star)
}
