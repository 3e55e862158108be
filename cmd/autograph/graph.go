package main

import (
	"fmt"
	"os"

	"github.com/autograph-dev/autograph/internal/presentation/graph"
	"github.com/autograph-dev/autograph/pkg/flowfile"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <flow-file>",
	Short: "Export the flow graph visualization",
	Long:  `Reads a flow document and outputs a Mermaid diagram representing its wiring.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		flow, err := flowfile.Load(args[0])
		if err != nil {
			fmt.Printf("Error loading flow: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(graph.GenerateMermaid(flow))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
