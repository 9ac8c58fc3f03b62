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
	"encoding/json"
	"sort"
	"strings"

	"github.com/tombee/baton/pkg/registry"
	"github.com/tombee/baton/pkg/shortcut"
)

// Decompiler lifts a flat Document back into a shortcut tree. Decompilation
// is best-effort and never fails: unknown identifiers fall back to inference
// and unrecognized parameter values are kept as opaque data.
type Decompiler struct {
	registry *registry.Registry
}

// NewDecompiler creates a Decompiler bound to the given registry snapshot.
func NewDecompiler(reg *registry.Registry) *Decompiler {
	return &Decompiler{registry: reg}
}

// Decompile converts the record list into a tree. Grouping tokens and
// control-flow modes are structural metadata of the flat form and are
// dropped, so nested bodies come back as top-level actions in record order.
func (d *Decompiler) Decompile(doc *Document) *shortcut.Shortcut {
	s := &shortcut.Shortcut{
		Name:    doc.Name,
		Actions: make([]shortcut.Action, 0, len(doc.Actions)),
	}
	for _, record := range doc.Actions {
		s.Actions = append(s.Actions, d.liftRecord(record))
	}
	return s
}

func (d *Decompiler) liftRecord(record Record) shortcut.Action {
	action := shortcut.Action{Type: d.typeFor(record.Identifier)}

	keys := make([]string, 0, len(record.Parameters))
	for key := range record.Parameters {
		switch key {
		case keyUUID, keyGroupingIdentifier, keyControlFlowMode:
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		action.Parameters = append(action.Parameters, shortcut.Param{
			Key:   internalKey(action.Type, key),
			Value: liftValue(record.Parameters[key]),
		})
	}
	return action
}

// typeFor resolves a record identifier to an internal action type, falling
// back to inference for identifiers the registry does not know.
func (d *Decompiler) typeFor(identifier string) string {
	if desc, ok := d.registry.LookupIdentifier(identifier); ok {
		return desc.Type
	}
	inf := registry.Infer(identifier)
	if inf.Descriptor.Type != "" {
		return inf.Descriptor.Type
	}
	return strings.ToLower(identifier)
}

// liftValue converts a decoded JSON value into a typed parameter value.
func liftValue(v any) shortcut.Value {
	switch value := v.(type) {
	case string:
		return shortcut.StringValue(value)
	case bool:
		return shortcut.BoolValue(value)
	case float64:
		return shortcut.NumberValue(value)
	case json.Number:
		if n, err := value.Float64(); err == nil {
			return shortcut.NumberValue(n)
		}
		return shortcut.StringValue(value.String())
	default:
		return shortcut.OpaqueValue(v)
	}
}
