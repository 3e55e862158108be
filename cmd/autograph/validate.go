package main

import (
	"fmt"
	"os"

	"github.com/autograph-dev/autograph"
	"github.com/autograph-dev/autograph/pkg/flowfile"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <flow-file>",
	Short: "Check a flow document for structural problems",
	Long: `Runs the structural pre-checks (triggers present, actions wired,
gates fed) without compiling. Exits non-zero when problems are found.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		flow, err := flowfile.Load(args[0])
		if err != nil {
			fmt.Printf("Error loading flow: %v\n", err)
			os.Exit(1)
		}

		diags := autograph.New().Validate(flow)
		if len(diags) > 0 {
			for _, d := range diags {
				fmt.Println(d)
			}
			os.Exit(1)
		}
		fmt.Println("Flow is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
