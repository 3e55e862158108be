package main

import (
	"fmt"
	"os"

	"github.com/autograph-dev/autograph"
	"github.com/autograph-dev/autograph/internal/logging"
	"github.com/autograph-dev/autograph/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the compiler as an MCP server on stdio",
	Long: `Starts a Model Context Protocol server over stdin/stdout, exposing
compile_flow, validate_flow, decompile_rule and get_catalog tools.`,
	Run: func(cmd *cobra.Command, args []string) {
		level, _ := cmd.Flags().GetString("log-level")

		compiler := autograph.New(
			autograph.WithLogger(logging.New(logging.ParseLevel(level))),
		)

		if err := mcp.NewServer(compiler).ServeStdio(); err != nil {
			fmt.Fprintf(os.Stderr, "MCP server error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
