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

package actions

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tombee/baton/internal/commands/shared"
	"github.com/tombee/baton/internal/log"
	"github.com/tombee/baton/internal/metrics"
	"github.com/tombee/baton/internal/output"
	"github.com/tombee/baton/pkg/registry"
)

// NewCommand creates the actions command
func NewCommand() *cobra.Command {
	var (
		category string
		watch    bool
	)

	cmd := &cobra.Command{
		Use:   "actions",
		Short: "List the known action types",
		Long: `Actions lists every action type in the registry with its identifier,
category, required permission, and parameter schema.

With --watch and a --registry file, the command keeps running and
reloads the registry whenever the file changes on disk. A reload that
fails to parse keeps the previous catalog.`,
		Example: `  # List all actions
  baton actions

  # List actions in one category
  baton actions --category network

  # Watch a registry file for changes
  baton actions --registry ./actions.yaml --watch`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runActions(cmd, category, watch)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only list actions in this category")
	cmd.Flags().BoolVar(&watch, "watch", false, "Reload the registry when the --registry file changes")

	return cmd
}

func runActions(cmd *cobra.Command, category string, watch bool) error {
	reg, err := shared.LoadRegistry()
	if err != nil {
		return shared.NewInternalError("failed to load action registry", err)
	}

	if watch {
		return runWatch(cmd, reg)
	}

	if shared.GetJSON() {
		return output.EmitJSONSuccess(cmd.OutOrStdout(), "actions", listDescriptors(reg, category))
	}

	renderList(cmd, reg, category)
	return nil
}

func listDescriptors(reg *registry.Registry, category string) []*registry.ActionTypeDescriptor {
	if category == "" {
		return reg.All()
	}
	return reg.AllByCategory(registry.Category(category))
}

func renderList(cmd *cobra.Command, reg *registry.Registry, category string) {
	for _, cat := range reg.Categories() {
		if category != "" && string(cat) != category {
			continue
		}
		cmd.Println(shared.Header.Render(string(cat)))
		for _, desc := range reg.AllByCategory(cat) {
			perm := ""
			if desc.RequiredPermission != registry.PermissionNone {
				perm = " " + shared.RenderWarn(string(desc.RequiredPermission))
			}
			cmd.Printf("  %s %s%s\n", shared.Bold.Render(desc.Type), shared.RenderLabel(desc.Identifier), perm)
			for _, p := range desc.Parameters {
				required := ""
				if p.Required {
					required = " (required)"
				}
				cmd.Printf("      %s: %s%s\n", p.Key, p.Kind, shared.Muted.Render(required))
			}
		}
	}
}

// runWatch blocks on the registry watcher, printing each reload until the
// command is interrupted.
func runWatch(cmd *cobra.Command, initial *registry.Registry) error {
	path := shared.GetRegistryPath()
	if path == "" {
		return shared.NewInternalError("--watch requires --registry pointing at a file", nil)
	}

	handle := registry.NewHandle(initial)
	logger := log.New(log.FromEnv())

	cmd.Println(shared.RenderOK(fmt.Sprintf("watching %s (%d actions loaded)", path, initial.Len())))

	err := registry.Watch(cmd.Context(), path, handle, logger,
		registry.WithReloadHook(func(ok bool) {
			metrics.RecordRegistryReload(ok)
			if ok {
				cmd.Println(shared.RenderOK(fmt.Sprintf("registry reloaded (%d actions)", handle.Current().Len())))
			} else {
				cmd.Println(shared.RenderWarn("registry reload failed, keeping previous catalog"))
			}
		}))
	if err != nil && cmd.Context().Err() == nil {
		return shared.NewInternalError("registry watch failed", err)
	}
	return nil
}
