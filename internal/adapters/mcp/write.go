package mcp

import (
	"context"
	"math"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"launchtree/internal/application"
	"launchtree/internal/application/commands"
)

// RegisterWriteTools adds all mutating launcher tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, b *Backend) {
	s.AddTool(addTool(), addHandler(b))
	s.AddTool(editTool(), editHandler(b))
	s.AddTool(moveTool(), moveHandler(b))
	s.AddTool(deleteTool(), deleteHandler(b))
	s.AddTool(favoriteTool(), favoriteHandler(b))
	s.AddTool(launchTool(), launchHandler(b))
}

// --- add ---

func addTool() mcp.Tool {
	return mcp.NewTool("add",
		mcp.WithDescription("Add a node. With a group selected it is appended inside the group; with a leaf selected it is inserted right after it; otherwise it goes to the end of the root."),
		mcp.WithString("type",
			mcp.Description("Node type"),
			mcp.Required(),
			mcp.Enum("group", "path", "url", "separator"),
		),
		mcp.WithString("name",
			mcp.Description("Display name"),
			mcp.Required(),
		),
		mcp.WithString("target",
			mcp.Description("Filesystem path or URL; required for path and url"),
		),
		mcp.WithString("selected_id",
			mcp.Description("ID of the node the insertion is relative to"),
		),
	)
}

func addHandler(b *Backend) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return b.locked(func() (*mcp.CallToolResult, error) {
			cmd := commands.NewAddNodeCommand(b.session,
				req.GetString("selected_id", ""),
				req.GetString("type", ""),
				req.GetString("name", ""),
				req.GetString("target", ""),
			)
			result, err := cmd.Execute(ctx)
			if err != nil {
				return toolError(err)
			}
			return mcp.NewToolResultText(result.Message + " (id " + result.Node.ID + ")"), nil
		})
	}
}

// --- edit ---

func editTool() mcp.Tool {
	return mcp.NewTool("edit",
		mcp.WithDescription("Change a node's name, type or target. Omitted fields keep their value."),
		mcp.WithString("id",
			mcp.Description("ID of the node to edit"),
			mcp.Required(),
		),
		mcp.WithString("name", mcp.Description("New name")),
		mcp.WithString("type",
			mcp.Description("New type"),
			mcp.Enum("group", "path", "url", "separator"),
		),
		mcp.WithString("target", mcp.Description("New target")),
	)
}

func editHandler(b *Backend) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()
		var update application.NodeUpdate
		if v, ok := args["name"].(string); ok {
			update.Name = &v
		}
		if v, ok := args["type"].(string); ok {
			update.Type = &v
		}
		if v, ok := args["target"].(string); ok {
			update.Target = &v
		}

		return b.locked(func() (*mcp.CallToolResult, error) {
			result, err := commands.NewEditNodeCommand(b.session, req.GetString("id", ""), update).Execute(ctx)
			if err != nil {
				return toolError(err)
			}
			return mcp.NewToolResultText(result.Message), nil
		})
	}
}

// --- move ---

func moveTool() mcp.Tool {
	return mcp.NewTool("move",
		mcp.WithDescription("Move a node under a group. Rejected when the destination is not a group or lies inside the node."),
		mcp.WithString("source_id",
			mcp.Description("ID of the node to move"),
			mcp.Required(),
		),
		mcp.WithString("destination_id",
			mcp.Description("ID of the destination group"),
			mcp.Required(),
		),
		mcp.WithNumber("row",
			mcp.Description("Position among the destination's children, counted before the move. Omit to append."),
		),
	)
}

func moveHandler(b *Backend) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		row := req.GetInt("row", -1)
		if row < 0 {
			row = math.MaxInt32
		}

		return b.locked(func() (*mcp.CallToolResult, error) {
			cmd := commands.NewMoveNodeCommand(b.session, req.GetString("source_id", ""), req.GetString("destination_id", ""), row)
			result, err := cmd.Execute(ctx)
			if err != nil {
				return toolError(err)
			}
			return mcp.NewToolResultText(result.Message), nil
		})
	}
}

// --- delete ---

func deleteTool() mcp.Tool {
	return mcp.NewTool("delete",
		mcp.WithDescription("Delete a node and everything under it."),
		mcp.WithString("id",
			mcp.Description("ID of the node to delete"),
			mcp.Required(),
		),
	)
}

func deleteHandler(b *Backend) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return b.locked(func() (*mcp.CallToolResult, error) {
			result, err := commands.NewDeleteCommand(b.session, req.GetString("id", "")).Execute(ctx)
			if err != nil {
				return toolError(err)
			}
			return mcp.NewToolResultText(result.Message), nil
		})
	}
}

// --- favorite ---

func favoriteTool() mcp.Tool {
	return mcp.NewTool("favorite",
		mcp.WithDescription("Mark or unmark a path or url node as a favorite. Without a value the flag is toggled."),
		mcp.WithString("id",
			mcp.Description("ID of the node"),
			mcp.Required(),
		),
		mcp.WithBoolean("value",
			mcp.Description("true to add, false to remove"),
		),
	)
}

func favoriteHandler(b *Backend) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("id", "")

		return b.locked(func() (*mcp.CallToolResult, error) {
			cmd := commands.NewToggleFavoriteCommand(b.session, id)
			if v, ok := req.GetArguments()["value"].(bool); ok {
				cmd = commands.NewSetFavoriteCommand(b.session, id, v)
			}
			result, err := cmd.Execute(ctx)
			if err != nil {
				return toolError(err)
			}
			return mcp.NewToolResultText(result.Message), nil
		})
	}
}

// --- launch ---

func launchTool() mcp.Tool {
	return mcp.NewTool("launch",
		mcp.WithDescription("Open a path or url node with the system's default handler. The attempt is added to the recent list even if it fails."),
		mcp.WithString("id",
			mcp.Description("ID of the node to open"),
			mcp.Required(),
		),
	)
}

func launchHandler(b *Backend) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return b.locked(func() (*mcp.CallToolResult, error) {
			result, err := commands.NewLaunchCommand(b.session, b.launcher, b.history, req.GetString("id", "")).Execute(ctx)
			if err != nil {
				return toolError(err)
			}
			return mcp.NewToolResultText(result.Message), nil
		})
	}
}
