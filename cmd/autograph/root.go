package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "autograph",
	Short: "Autograph compiles visual automation flows into executable rules",
	Long: `Autograph transforms node-graph flows (triggers, conditions, logic
gates, actions) into automation rules, and decompiles existing rules back
into editable graphs.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
}
