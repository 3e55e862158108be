package main

import (
	"fmt"
	"strings"

	"github.com/autograph-dev/autograph"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of autograph",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("autograph version %s\n", strings.TrimSpace(autograph.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
