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

package validate

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tombee/baton/internal/commands/shared"
	"github.com/tombee/baton/internal/metrics"
	"github.com/tombee/baton/internal/output"
	"github.com/tombee/baton/pkg/shortcut"
	"github.com/tombee/baton/pkg/shortcut/schema"
)

// NewCommand creates the validate command
func NewCommand() *cobra.Command {
	var skipSchema bool

	cmd := &cobra.Command{
		Use:   "validate <shortcut>",
		Short: "Validate a shortcut definition",
		Long: `Validate parses a shortcut definition and checks it against the action
registry: structural rules, per-level action limits, circular nesting,
action types, and parameter schemas. All problems are reported in one
pass; parameter values are sanitized as part of validation.

The aggregated permission set the shortcut would require is reported
alongside the result.`,
		Example: `  # Basic validation
  baton validate shortcut.json

  # Validation with JSON output for parsing
  baton validate shortcut.json --json

  # Validate against a custom action registry
  baton validate shortcut.json --registry ./actions.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args, skipSchema)
		},
	}

	cmd.Flags().BoolVar(&skipSchema, "skip-schema", false, "Skip the interchange schema shape check")

	return cmd
}

func runValidate(cmd *cobra.Command, args []string, skipSchema bool) error {
	useJSON := shared.GetJSON()

	data, err := os.ReadFile(args[0])
	if err != nil {
		if useJSON {
			output.EmitJSONError(cmd.OutOrStdout(), "validate", []output.JSONError{{
				Code:       shared.ErrorCodeNotFound,
				Message:    fmt.Sprintf("failed to read shortcut file: %v", err),
				Suggestion: "Check that the file path is correct and the file exists",
			}})
		}
		return shared.NewInternalError("failed to read shortcut file", err)
	}

	s, parseErr := shortcut.Parse(data)
	if parseErr != nil {
		if useJSON {
			output.EmitJSONError(cmd.OutOrStdout(), "validate", []output.JSONError{{
				Code:    shared.ErrorCodeInvalidJSON,
				Message: parseErr.Message,
				Offset:  parseErr.Offset,
			}})
			return &shared.ExitError{Code: shared.ExitParseFailed, Message: "parse failed"}
		}
		return shared.NewParseFailedError("shortcut is not valid JSON", parseErr)
	}

	if !skipSchema {
		if err := schema.ValidateBytes(data); err != nil {
			if useJSON {
				output.EmitJSONError(cmd.OutOrStdout(), "validate", []output.JSONError{{
					Code:    shared.ErrorCodeStructure,
					Message: err.Error(),
				}})
				return &shared.ExitError{Code: shared.ExitRejected, Message: "schema check failed"}
			}
			return shared.NewRejectedError("input does not match the interchange schema", err)
		}
	}

	reg, err := shared.LoadRegistry()
	if err != nil {
		return shared.NewInternalError("failed to load action registry", err)
	}

	start := time.Now()
	result := shortcut.NewValidator(reg).Validate(s)
	metrics.ObservePass("validate", time.Since(start))
	metrics.RecordValidation(result.Accepted)

	if useJSON {
		return emitJSONResult(cmd, s, result)
	}
	return emitTextResult(cmd, s, result)
}

type validateReport struct {
	Name        string `json:"name"`
	ActionCount int    `json:"action_count"`
	*shortcut.Result
}

func emitJSONResult(cmd *cobra.Command, s *shortcut.Shortcut, result *shortcut.Result) error {
	report := validateReport{
		Name:        s.Name,
		ActionCount: len(s.Actions),
		Result:      result,
	}
	if result.Accepted {
		if err := output.EmitJSONSuccess(cmd.OutOrStdout(), "validate", report); err != nil {
			return err
		}
		return nil
	}

	errs := make([]output.JSONError, 0, len(result.Errors))
	for i := range result.Errors {
		e := &result.Errors[i]
		errs = append(errs, output.JSONError{
			Code:        shared.CodeForValidation(e.Kind),
			Message:     e.Error(),
			ActionIndex: e.ActionIndex,
			Path:        e.Path,
		})
	}
	if err := output.EmitJSONError(cmd.OutOrStdout(), "validate", errs); err != nil {
		return err
	}
	return &shared.ExitError{Code: shared.ExitRejected, Message: "shortcut rejected"}
}

func emitTextResult(cmd *cobra.Command, s *shortcut.Shortcut, result *shortcut.Result) error {
	if result.Accepted {
		if !shared.GetQuiet() {
			cmd.Println(shared.RenderOK(fmt.Sprintf("%q is valid (%d top-level actions)", s.Name, len(s.Actions))))
			if len(result.Permissions) > 0 {
				cmd.Println(shared.RenderLabel("permissions:"), permissionList(result))
			}
		}
		return nil
	}

	cmd.Println(shared.RenderError(fmt.Sprintf("%q rejected with %d problem(s)", s.Name, len(result.Errors))))
	for i := range result.Errors {
		e := &result.Errors[i]
		location := ""
		if e.Path != "" {
			location = shared.RenderLabel(" at "+e.Path)
		}
		cmd.Printf("  %s %s%s\n", shared.StatusError.Render(shared.SymbolError), e.Error(), location)
	}
	return shared.NewRejectedError("shortcut rejected", nil)
}

func permissionList(result *shortcut.Result) string {
	out := ""
	for i, p := range result.Permissions {
		if i > 0 {
			out += ", "
		}
		out += string(p)
	}
	return out
}
