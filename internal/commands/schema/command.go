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

package schema

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tombee/baton/internal/commands/shared"
	"github.com/tombee/baton/pkg/shortcut/schema"
)

// NewCommand creates the schema command
func NewCommand() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the shortcut interchange JSON Schema",
		Long: `Schema prints the JSON Schema describing the shortcut interchange
format, for use with external editors and validators.`,
		Example: `  # Print the schema
  baton schema

  # Write the schema to a file
  baton schema -o shortcut.schema.json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchema(cmd, outPath)
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Write the schema to a file instead of stdout")

	return cmd
}

func runSchema(cmd *cobra.Command, outPath string) error {
	data := schema.GetEmbeddedSchema()

	if outPath == "" {
		cmd.OutOrStdout().Write(data)
		return nil
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return shared.NewInternalError("failed to write schema file", err)
	}
	return nil
}
