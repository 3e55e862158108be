package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/autograph-dev/autograph"
	"github.com/autograph-dev/autograph/pkg/domain"
	"github.com/autograph-dev/autograph/pkg/flowfile"
	"github.com/spf13/cobra"
)

var decompileCmd = &cobra.Command{
	Use:   "decompile <rule-file>",
	Short: "Lay an automation rule back out as an editable flow",
	Long: `Reads an automation rule (JSON) and prints the equivalent flow
document with grid-aligned layout. By default the flow is printed as YAML;
--json emits the raw graph description with coordinates.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		asJSON, _ := cmd.Flags().GetBool("json")

		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Printf("Error reading rule: %v\n", err)
			os.Exit(1)
		}
		var rule domain.Automation
		if err := json.Unmarshal(data, &rule); err != nil {
			fmt.Printf("Error parsing rule: %v\n", err)
			os.Exit(1)
		}

		desc := autograph.New().Decompile(rule)

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			_ = enc.Encode(desc)
			return
		}

		out, err := flowfile.Marshal(domain.Flow{Name: rule.Name, Nodes: desc.Graph()})
		if err != nil {
			fmt.Printf("Error rendering flow: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(string(out))
	},
}

func init() {
	rootCmd.AddCommand(decompileCmd)
	decompileCmd.Flags().Bool("json", false, "Emit the graph description with layout coordinates as JSON")
}
