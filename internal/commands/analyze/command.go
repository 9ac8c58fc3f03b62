// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package analyze

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tombee/baton/internal/commands/shared"
	"github.com/tombee/baton/internal/metrics"
	"github.com/tombee/baton/internal/output"
	"github.com/tombee/baton/pkg/analysis"
	"github.com/tombee/baton/pkg/shortcut"
)

// NewCommand creates the analyze command
func NewCommand() *cobra.Command {
	var skipValidation bool

	cmd := &cobra.Command{
		Use:   "analyze <shortcut>",
		Short: "Analyze the structure of a shortcut definition",
		Long: `Analyze runs the static analysis passes over a shortcut definition:
action-frequency patterns, a best-effort data dependency graph, a
weighted complexity score, per-action security findings, and a
decomposition into structural components.

The shortcut is validated first; analysis of a rejected shortcut would
report on a tree that can never run. Pass --force to analyze anyway.`,
		Example: `  # Analyze a shortcut
  baton analyze shortcut.json

  # Full report as JSON
  baton analyze shortcut.json --json

  # Analyze a shortcut that fails validation
  baton analyze shortcut.json --force`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, skipValidation)
		},
	}

	cmd.Flags().BoolVar(&skipValidation, "force", false, "Analyze even when validation rejects the shortcut")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string, skipValidation bool) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return shared.NewInternalError("failed to read shortcut file", err)
	}

	s, parseErr := shortcut.Parse(data)
	if parseErr != nil {
		return shared.NewParseFailedError("shortcut is not valid JSON", parseErr)
	}

	reg, err := shared.LoadRegistry()
	if err != nil {
		return shared.NewInternalError("failed to load action registry", err)
	}

	if !skipValidation {
		result := shortcut.NewValidator(reg).Validate(s)
		metrics.RecordValidation(result.Accepted)
		if !result.Accepted {
			return shared.NewRejectedError(
				fmt.Sprintf("shortcut rejected with %d problem(s); use --force to analyze anyway", len(result.Errors)),
				nil)
		}
	}

	start := time.Now()
	report := analysis.NewAnalyzer(reg).Analyze(s)
	metrics.ObservePass("analyze", time.Since(start))

	if shared.GetJSON() {
		return output.EmitJSONSuccess(cmd.OutOrStdout(), "analyze", report)
	}
	renderReport(cmd, report)
	return nil
}

func renderReport(cmd *cobra.Command, report *analysis.Report) {
	cmd.Println(shared.Header.Render(report.Name))
	cmd.Printf("  %s %d\n", shared.RenderLabel("actions:"), report.ActionCount)
	cmd.Printf("  %s %s\n", shared.RenderLabel("complexity:"), report.Complexity.String())

	if len(report.Patterns) > 0 {
		cmd.Println(shared.Bold.Render("Patterns"))
		for _, p := range report.Patterns {
			cmd.Printf("  %s ×%d\n", p.Type, p.Count)
		}
	}

	if len(report.Suggestions) > 0 {
		cmd.Println(shared.Bold.Render("Suggestions"))
		for _, s := range report.Suggestions {
			cmd.Printf("  %s %s\n", shared.StatusInfo.Render(shared.SymbolInfo), s)
		}
	}

	if len(report.Security) > 0 {
		cmd.Println(shared.Bold.Render("Security"))
		for _, f := range report.Security {
			cmd.Printf("  [%s] %s (action %d, %s): %s\n",
				shared.RenderRisk(string(f.Risk)), f.ActionType, f.ActionIndex, f.Weakness, f.Message)
		}
	}

	if len(report.Components) > 0 {
		cmd.Println(shared.Bold.Render("Components"))
		for _, c := range report.Components {
			reusable := ""
			if c.Reusable {
				reusable = " " + shared.Muted.Render("(reusable)")
			}
			cmd.Printf("  #%d %s: %s%s\n", c.ID, c.Kind, c.Purpose, reusable)
		}
	}

	for _, flow := range report.DataFlows {
		cmd.Printf("  %s #%d -> #%d via %q\n", shared.RenderLabel("flow:"), flow.From, flow.To, flow.Token)
	}
}
