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

package registry

import (
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/tombee/baton/pkg/errors"
)

// Registry is an immutable lookup from action type (or external identifier)
// to ActionTypeDescriptor. Build one with New or the loader functions and
// share it freely; all methods are safe for concurrent use because nothing
// mutates after construction.
type Registry struct {
	byType       map[string]*ActionTypeDescriptor
	byIdentifier map[string]*ActionTypeDescriptor
	ordered      []string
}

// New builds a Registry from the given descriptors. Descriptor order is
// preserved for iteration. Duplicate types or identifiers are a ConfigError.
func New(descriptors []ActionTypeDescriptor) (*Registry, error) {
	r := &Registry{
		byType:       make(map[string]*ActionTypeDescriptor, len(descriptors)),
		byIdentifier: make(map[string]*ActionTypeDescriptor, len(descriptors)),
		ordered:      make([]string, 0, len(descriptors)),
	}

	for i := range descriptors {
		d := descriptors[i]
		if err := checkDescriptor(&d, i); err != nil {
			return nil, err
		}
		if _, exists := r.byType[d.Type]; exists {
			return nil, &errors.ConfigError{
				Key:    fmt.Sprintf("actions[%d].type", i),
				Reason: fmt.Sprintf("duplicate action type %q", d.Type),
			}
		}
		if _, exists := r.byIdentifier[d.Identifier]; exists {
			return nil, &errors.ConfigError{
				Key:    fmt.Sprintf("actions[%d].identifier", i),
				Reason: fmt.Sprintf("duplicate identifier %q", d.Identifier),
			}
		}
		r.byType[d.Type] = &d
		r.byIdentifier[d.Identifier] = &d
		r.ordered = append(r.ordered, d.Type)
	}

	return r, nil
}

// checkDescriptor validates one registry entry at load time so that lookups
// never hand out malformed metadata.
func checkDescriptor(d *ActionTypeDescriptor, index int) error {
	key := func(field string) string { return fmt.Sprintf("actions[%d].%s", index, field) }

	if d.Type == "" {
		return &errors.ConfigError{Key: key("type"), Reason: "action type must not be empty"}
	}
	if d.Identifier == "" {
		return &errors.ConfigError{Key: key("identifier"), Reason: "identifier must not be empty"}
	}
	if d.RequiredPermission == "" {
		d.RequiredPermission = PermissionNone
	}
	if !validPermissions[d.RequiredPermission] {
		return &errors.ConfigError{
			Key:    key("permission"),
			Reason: fmt.Sprintf("unknown permission %q", d.RequiredPermission),
		}
	}
	for pi, p := range d.Parameters {
		if p.Key == "" {
			return &errors.ConfigError{
				Key:    key(fmt.Sprintf("parameters[%d].key", pi)),
				Reason: "parameter key must not be empty",
			}
		}
		if !validValueKinds[p.Kind] {
			return &errors.ConfigError{
				Key:    key(fmt.Sprintf("parameters[%d].kind", pi)),
				Reason: fmt.Sprintf("unknown value kind %q", p.Kind),
			}
		}
	}
	return nil
}

// Lookup resolves an internal action type. The second return value is false
// when the type is unknown; callers that support inference treat that as a
// fallback trigger, the validator treats it as an invalid action.
func (r *Registry) Lookup(actionType string) (*ActionTypeDescriptor, bool) {
	d, ok := r.byType[actionType]
	return d, ok
}

// LookupIdentifier resolves an external namespaced identifier.
func (r *Registry) LookupIdentifier(identifier string) (*ActionTypeDescriptor, bool) {
	d, ok := r.byIdentifier[identifier]
	return d, ok
}

// AllByCategory returns the descriptors in the given category, in load order.
// Used for alternative-action suggestions.
func (r *Registry) AllByCategory(category Category) []*ActionTypeDescriptor {
	var out []*ActionTypeDescriptor
	for _, t := range r.ordered {
		if d := r.byType[t]; d.Category == category {
			out = append(out, d)
		}
	}
	return out
}

// All returns every descriptor in load order.
func (r *Registry) All() []*ActionTypeDescriptor {
	out := make([]*ActionTypeDescriptor, 0, len(r.ordered))
	for _, t := range r.ordered {
		out = append(out, r.byType[t])
	}
	return out
}

// Types returns all registered internal action types, sorted.
func (r *Registry) Types() []string {
	out := make([]string, len(r.ordered))
	copy(out, r.ordered)
	sort.Strings(out)
	return out
}

// Categories returns the distinct categories present in the registry, sorted.
func (r *Registry) Categories() []Category {
	seen := make(map[Category]bool)
	var out []Category
	for _, t := range r.ordered {
		c := r.byType[t].Category
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Len returns the number of registered action types.
func (r *Registry) Len() int {
	return len(r.ordered)
}

// Handle is an atomically swappable reference to the current Registry
// snapshot. Reload is an explicit Swap, never in-place mutation, so in-flight
// validations always see a consistent snapshot.
type Handle struct {
	current atomic.Pointer[Registry]
}

// NewHandle creates a Handle pointing at the given registry.
func NewHandle(r *Registry) *Handle {
	h := &Handle{}
	h.current.Store(r)
	return h
}

// Current returns the current registry snapshot.
func (h *Handle) Current() *Registry {
	return h.current.Load()
}

// Swap atomically replaces the registry snapshot and returns the previous one.
func (h *Handle) Swap(r *Registry) *Registry {
	return h.current.Swap(r)
}
