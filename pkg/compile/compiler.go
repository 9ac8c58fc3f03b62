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

package compile

import (
	"github.com/google/uuid"

	"github.com/tombee/baton/pkg/errors"
	"github.com/tombee/baton/pkg/registry"
	"github.com/tombee/baton/pkg/shortcut"
)

// Compiler lowers a shortcut tree into a flat Document. Compilation is
// fail-fast: the first unmappable action aborts with a CompilationError.
type Compiler struct {
	registry *registry.Registry

	// newID mints record UUIDs and grouping tokens. Replaceable in tests
	// for deterministic output.
	newID func() string
}

// NewCompiler creates a Compiler bound to the given registry snapshot.
func NewCompiler(reg *registry.Registry) *Compiler {
	return &Compiler{registry: reg, newID: uuid.NewString}
}

// Compile lowers the tree into a flat record list. Each control-flow action
// becomes one record holding a fresh grouping token; its nested actions
// follow immediately after, carrying the same token. Branch membership
// (then versus else) is not encoded in the flat form, so nested control
// flow does not survive a round trip; see Decompile.
func (c *Compiler) Compile(s *shortcut.Shortcut) (*Document, error) {
	doc := newDocument(s.Name)
	if err := c.compileList(doc, s.Actions, ""); err != nil {
		return nil, err
	}
	return doc, nil
}

// compileList appends records for each action in order. group is the
// enclosing grouping token, empty at top level.
func (c *Compiler) compileList(doc *Document, actions []shortcut.Action, group string) error {
	for i := range actions {
		if err := c.compileAction(doc, &actions[i], i, group); err != nil {
			return err
		}
	}
	return nil
}

func (c *Compiler) compileAction(doc *Document, a *shortcut.Action, index int, group string) error {
	desc, ok := c.registry.Lookup(a.Type)
	if !ok {
		return &errors.CompilationError{
			ActionType:  a.Type,
			ActionIndex: index,
			Reason:      "unknown action type",
		}
	}

	record := Record{
		Identifier: desc.Identifier,
		Parameters: map[string]any{keyUUID: c.newID()},
	}
	if group != "" {
		record.Parameters[keyGroupingIdentifier] = group
	}

	for _, entry := range a.Parameters {
		switch entry.Value.Kind() {
		case shortcut.KindActionList, shortcut.KindBranches:
			continue
		default:
			record.Parameters[targetKey(a.Type, entry.Key)] = entry.Value.Raw()
		}
	}

	if nested := a.NestedLists(); len(nested) > 0 {
		token := c.newID()
		record.Parameters[keyGroupingIdentifier] = token
		record.Parameters[keyControlFlowMode] = controlFlowBegin
		doc.Actions = append(doc.Actions, record)
		for _, list := range nested {
			if err := c.compileList(doc, list.Actions, token); err != nil {
				return err
			}
		}
		return nil
	}

	doc.Actions = append(doc.Actions, record)
	return nil
}
