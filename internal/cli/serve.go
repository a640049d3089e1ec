package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcliao/shadow-journal/internal/mcptools"
)

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the journal as MCP tools over stdio",
		Long:  "Run a Model Context Protocol server on stdin/stdout exposing assessment, journal, profile and analysis tools. Logs go to stderr.",
		Args:  cobra.NoArgs,
		Run:   runServe,
	}

	RootCmd.AddCommand(cmd)
}

func runServe(cmd *cobra.Command, args []string) {
	st, done := openState(cmd)
	defer done()

	gw := newGateway()
	logger.Info("serving mcp over stdio",
		zap.String("db", cfg.DBPath),
		zap.Bool("gateway", gw.Configured()))

	s := mcptools.NewServer(st, gw, Version)
	if err := server.ServeStdio(s); err != nil {
		logger.Error("mcp server stopped", zap.Error(err))
	}
}
