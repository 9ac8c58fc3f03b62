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

// Package shortcut defines the tree IR for automation shortcuts, the JSON
// interchange boundary, and the recursive validator.
package shortcut

// Size limits enforced by the validator.
const (
	// MaxActions is the ceiling on actions per list, applied at every
	// nesting level independently.
	MaxActions = 50

	// MaxNameLength is the ceiling on the shortcut name in characters.
	MaxNameLength = 255
)

// Shortcut is the IR root: a named, ordered list of actions. A Shortcut is
// mutable while being built or parsed; once the validator accepts it the
// tree must be treated as immutable (the analyzer and compiler only read).
type Shortcut struct {
	Name    string
	Actions []Action
}

// Action is one IR node. Type must resolve in the registry at validation
// time. Nesting is structural only through ActionList/Branches parameter
// values, so the tree has no back-references by construction; cross-action
// references are expressed through {name} placeholder strings.
type Action struct {
	Type       string
	Parameters Parameters
}

// Param is a single key/value parameter entry.
type Param struct {
	Key   string
	Value Value
}

// Parameters is an ordered parameter mapping. Order is preserved from the
// interchange JSON and re-emitted on marshal.
type Parameters []Param

// Get returns the value for key.
func (p Parameters) Get(key string) (Value, bool) {
	for _, entry := range p {
		if entry.Key == key {
			return entry.Value, true
		}
	}
	return Value{}, false
}

// Has reports whether key is present.
func (p Parameters) Has(key string) bool {
	_, ok := p.Get(key)
	return ok
}

// Set replaces the value for key, or appends a new entry when absent.
func (p *Parameters) Set(key string, v Value) {
	for i := range *p {
		if (*p)[i].Key == key {
			(*p)[i].Value = v
			return
		}
	}
	*p = append(*p, Param{Key: key, Value: v})
}

// Keys returns the parameter keys in order.
func (p Parameters) Keys() []string {
	keys := make([]string, len(p))
	for i, entry := range p {
		keys[i] = entry.Key
	}
	return keys
}

// GetString returns the string value for key, or "" when absent or not a
// string.
func (p Parameters) GetString(key string) string {
	v, ok := p.Get(key)
	if !ok {
		return ""
	}
	s, _ := v.AsString()
	return s
}

// NestedLists returns every nested action list reachable from this action's
// parameters, labelled with the branch name used in error paths and in the
// interchange form ("actions", "then", "else").
func (a *Action) NestedLists() []NestedList {
	var out []NestedList
	for _, entry := range a.Parameters {
		switch entry.Value.Kind() {
		case KindActionList:
			list, _ := entry.Value.AsActionList()
			out = append(out, NestedList{Branch: entry.Key, Actions: list})
		case KindBranches:
			then, els, _ := entry.Value.AsBranches()
			out = append(out, NestedList{Branch: "then", Actions: then})
			if els != nil {
				out = append(out, NestedList{Branch: "else", Actions: els})
			}
		}
	}
	return out
}

// NestedList is one nested branch of a control-flow action.
type NestedList struct {
	Branch  string
	Actions []Action
}
