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

// Package compilecmd implements the compile and decompile commands.
package compilecmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tombee/baton/internal/commands/shared"
	"github.com/tombee/baton/internal/metrics"
	"github.com/tombee/baton/pkg/compile"
	"github.com/tombee/baton/pkg/errors"
	"github.com/tombee/baton/pkg/shortcut"
)

// NewCompileCommand creates the compile command
func NewCompileCommand() *cobra.Command {
	var (
		outPath string
		binary  bool
	)

	cmd := &cobra.Command{
		Use:   "compile <shortcut>",
		Short: "Compile a shortcut to the flat document format",
		Long: `Compile validates a shortcut definition and lowers it to the flat
action-record document the runner consumes. Compilation is fail-fast:
the first action that cannot be mapped aborts with its position.

With --binary the JSON document is additionally converted to a binary
plist through the plutil tool. When plutil is unavailable the JSON form
is written instead and a warning is printed.`,
		Example: `  # Compile to stdout
  baton compile shortcut.json

  # Compile to a file
  baton compile shortcut.json -o shortcut.out.json

  # Compile to a binary plist
  baton compile shortcut.json -o shortcut.plist --binary`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, args, outPath, binary)
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Write the document to a file instead of stdout")
	cmd.Flags().BoolVar(&binary, "binary", false, "Convert the document to a binary plist")

	return cmd
}

func runCompile(cmd *cobra.Command, args []string, outPath string, binary bool) error {
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

	result := shortcut.NewValidator(reg).Validate(s)
	metrics.RecordValidation(result.Accepted)
	if !result.Accepted {
		return shared.NewRejectedError(
			fmt.Sprintf("shortcut rejected with %d problem(s); fix validation errors before compiling", len(result.Errors)),
			nil)
	}

	start := time.Now()
	doc, err := compile.NewCompiler(reg).Compile(s)
	metrics.ObservePass("compile", time.Since(start))
	metrics.RecordCompilation(err == nil)
	if err != nil {
		return shared.NewCompileFailedError("compilation failed", err)
	}

	out, err := doc.Marshal()
	if err != nil {
		return shared.NewInternalError("failed to encode document", err)
	}

	if binary {
		converter := &compile.PlistConverter{}
		converted, err := converter.Convert(cmd.Context(), out)
		switch {
		case errors.IsConversionUnavailable(err):
			cmd.PrintErrln(shared.RenderWarn("binary conversion unavailable, writing JSON instead"))
		case err != nil:
			return shared.NewInternalError("binary conversion failed", err)
		default:
			out = converted
		}
	}

	if outPath == "" {
		cmd.OutOrStdout().Write(out)
		return nil
	}
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return shared.NewInternalError("failed to write output file", err)
	}
	if !shared.GetQuiet() {
		cmd.Println(shared.RenderOK(fmt.Sprintf("compiled %q to %s (%d actions)", s.Name, outPath, len(doc.Actions))))
	}
	return nil
}

// NewDecompileCommand creates the decompile command
func NewDecompileCommand() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "decompile <document>",
		Short: "Decompile a flat document back to a shortcut definition",
		Long: `Decompile lifts a flat action-record document back into the shortcut
tree form. Decompilation is best-effort and never fails: identifiers
missing from the registry are inferred from their reverse-DNS name and
unrecognized parameters are kept as-is.

Grouping metadata in the flat form does not carry branch membership, so
nested bodies come back as top-level actions in record order.`,
		Example: `  # Decompile to stdout
  baton decompile shortcut.out.json

  # Decompile to a file
  baton decompile shortcut.out.json -o shortcut.json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecompile(cmd, args, outPath)
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Write the shortcut to a file instead of stdout")

	return cmd
}

func runDecompile(cmd *cobra.Command, args []string, outPath string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return shared.NewInternalError("failed to read document file", err)
	}

	doc, parseErr := compile.ParseDocument(data)
	if parseErr != nil {
		return shared.NewParseFailedError("document is not valid JSON", parseErr)
	}

	reg, err := shared.LoadRegistry()
	if err != nil {
		return shared.NewInternalError("failed to load action registry", err)
	}

	start := time.Now()
	s := compile.NewDecompiler(reg).Decompile(doc)
	metrics.ObservePass("decompile", time.Since(start))

	// Decompilation never fails, so surface validation problems in the
	// recovered tree as warnings rather than errors.
	if result := shortcut.NewValidator(reg).Validate(s); !result.Accepted && !shared.GetQuiet() {
		for i := range result.Errors {
			cmd.PrintErrln(shared.RenderWarn(result.Errors[i].Error()))
		}
	}

	out, err := s.MarshalJSON()
	if err != nil {
		return shared.NewInternalError("failed to encode shortcut", err)
	}

	if outPath == "" {
		cmd.OutOrStdout().Write(out)
		cmd.Println()
		return nil
	}
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return shared.NewInternalError("failed to write output file", err)
	}
	if !shared.GetQuiet() {
		cmd.Println(shared.RenderOK(fmt.Sprintf("decompiled %q to %s (%d actions)", s.Name, outPath, len(s.Actions))))
	}
	return nil
}
