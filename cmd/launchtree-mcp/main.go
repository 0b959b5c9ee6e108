package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"launchtree/internal/adapters/filesystem"
	"launchtree/internal/adapters/launcher"
	mcpadapter "launchtree/internal/adapters/mcp"
	"launchtree/internal/adapters/sqlite"
	"launchtree/internal/application"
	"launchtree/internal/config"
	"launchtree/internal/logging"
	"launchtree/internal/ports"
)

func main() {
	cfgFlag := flag.String("config", "", "config file (default ~/.config/launchtree/config.yaml)")
	flag.Parse()

	cfg, err := config.Load(*cfgFlag)
	if err != nil {
		log.Fatalf("launchtree-mcp: %v", err)
	}

	// stdout carries the protocol, so only the log file gets records
	logger, closer, err := logging.New(logging.Options{File: cfg.LogPath(), Level: cfg.SlogLevel()})
	if err != nil {
		log.Fatalf("launchtree-mcp: %v", err)
	}
	defer closer.Close()

	repo := filesystem.NewRepository(cfg.TreePath(), cfg.UserStatePath(),
		filesystem.WithBackupKeep(cfg.BackupKeep),
		filesystem.WithLogger(logger),
	)
	session := application.NewSession(repo, repo, application.WithLogger(logger))

	var history ports.LaunchHistory
	if path := cfg.HistoryPath(); path != "" {
		h, err := sqlite.OpenHistory(path)
		if err != nil {
			logger.Warn("launch history disabled", "path", path, "error", err)
		} else {
			defer h.Close()
			history = h
		}
	}

	backend := mcpadapter.NewBackend(session, launcher.NewOpener(), history)

	mcpServer := server.NewMCPServer(
		"launchtree-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, backend)
	mcpadapter.RegisterWriteTools(mcpServer, backend)

	logger.Info("serving mcp over stdio", "tree", repo.Path())
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Error("mcp server stopped", "error", err)
		log.Fatalf("launchtree-mcp: %v", err)
	}
}
