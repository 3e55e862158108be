package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/autograph-dev/autograph"
	"github.com/autograph-dev/autograph/internal/logging"
	"github.com/autograph-dev/autograph/internal/presentation/tui"
	"github.com/autograph-dev/autograph/pkg/domain"
	"github.com/autograph-dev/autograph/pkg/flowfile"
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile <flow-file>",
	Short: "Compile a flow document into automation rules",
	Long: `Reads a YAML flow document, compiles it, and prints the resulting
automations with any diagnostics. Output is JSON by default; use --pretty
for a rendered report.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		level, _ := cmd.Flags().GetString("log-level")
		pretty, _ := cmd.Flags().GetBool("pretty")
		maxPaths, _ := cmd.Flags().GetInt("max-paths")

		flow, err := flowfile.Load(args[0])
		if err != nil {
			fmt.Printf("Error loading flow: %v\n", err)
			os.Exit(1)
		}

		compiler := autograph.New(
			autograph.WithLogger(logging.New(logging.ParseLevel(level))),
			autograph.WithMaxPaths(maxPaths),
		)
		result := compiler.Compile(flow)

		if pretty {
			render := tui.NewRenderer()
			out, err := render(reportMarkdown(flow.Name, result))
			if err != nil {
				fmt.Println(reportMarkdown(flow.Name, result))
			} else {
				fmt.Print(out)
			}
		} else {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			_ = enc.Encode(result)
		}

		if !result.IsSuccess() {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().Bool("pretty", false, "Render a human-readable report instead of JSON")
	compileCmd.Flags().Int("max-paths", 0, "Override the per-gate path fan-out limit (0 = default)")
}

// reportMarkdown builds the --pretty compile report.
func reportMarkdown(flowName string, result *domain.CompilationResult) string {
	var sb strings.Builder

	if flowName == "" {
		flowName = "(unnamed flow)"
	}
	fmt.Fprintf(&sb, "# Compile report: %s\n\n", flowName)

	if result.IsEmpty() {
		sb.WriteString("No automations were produced.\n\n")
	}
	for _, a := range result.Automations {
		fmt.Fprintf(&sb, "## %s\n\n", a.Name)
		fmt.Fprintf(&sb, "%s\n\n", a.Description)
	}

	if len(result.Errors) > 0 {
		sb.WriteString("## Errors\n\n")
		for _, d := range result.Errors {
			fmt.Fprintf(&sb, "- %s\n", d)
		}
		sb.WriteString("\n")
	}
	if len(result.Warnings) > 0 {
		sb.WriteString("## Warnings\n\n")
		for _, d := range result.Warnings {
			fmt.Fprintf(&sb, "- %s\n", d)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
