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

package shortcut

import (
	"fmt"
	"maps"
	"sort"
	"unicode/utf8"

	"github.com/expr-lang/expr"

	"github.com/tombee/baton/pkg/registry"
)

// Validator checks a candidate Shortcut tree against a registry snapshot.
// A Validator is stateless and safe for concurrent use; each Validate call
// works only on its own input.
type Validator struct {
	registry *registry.Registry
}

// NewValidator creates a Validator bound to the given registry snapshot.
func NewValidator(reg *registry.Registry) *Validator {
	return &Validator{registry: reg}
}

// Result is the outcome of one validation pass. Permissions is populated
// even when the tree is rejected so callers can render the full report from
// a single round trip.
type Result struct {
	// Accepted is true when no errors were found
	Accepted bool `json:"accepted"`

	// Errors lists every problem found in one pass (never fail-fast)
	Errors []ValidationError `json:"errors,omitempty"`

	// Permissions is the aggregated required-permission set, sorted
	Permissions []registry.Permission `json:"permissions,omitempty"`
}

// HasKind reports whether any error's innermost kind matches kind,
// unwrapping nested wrappers.
func (r *Result) HasKind(kind ErrorKind) bool {
	for i := range r.Errors {
		if r.Errors[i].Root().Kind == kind {
			return true
		}
	}
	return false
}

// frame is one pending branch list in the explicit traversal stack. The
// stack bounds work independent of host call-stack limits.
type frame struct {
	actions   []Action
	path      string
	ancestors map[string]struct{}
}

// Validate checks the tree top-down and returns every error found.
// Parameter values are sanitized in place (numbers rounded to two decimal
// places, strings trimmed, scalar coercion against the schema); after an
// accepted result the tree must be treated as immutable. Validate is
// idempotent: re-validating an accepted tree yields an accepted result.
func (v *Validator) Validate(s *Shortcut) *Result {
	result := &Result{}
	perms := make(map[registry.Permission]struct{})

	v.checkRoot(s, result)
	if s.Actions != nil {
		stack := []frame{{actions: s.Actions, ancestors: map[string]struct{}{}}}
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			children := v.checkList(f, result, perms)
			// Reversed so the first branch is processed next (pre-order).
			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, children[i])
			}
		}
	}

	for p := range perms {
		result.Permissions = append(result.Permissions, p)
	}
	sort.Slice(result.Permissions, func(i, j int) bool {
		return result.Permissions[i] < result.Permissions[j]
	})

	result.Accepted = len(result.Errors) == 0
	return result
}

// checkRoot enforces the structural contract on the shortcut root.
func (v *Validator) checkRoot(s *Shortcut, result *Result) {
	if s.Name == "" {
		addError(result, "", ValidationError{
			Kind:        ErrStructure,
			Message:     "shortcut name must not be empty",
			ActionIndex: -1,
		})
	} else if utf8.RuneCountInString(s.Name) > MaxNameLength {
		addError(result, "", ValidationError{
			Kind:        ErrStructure,
			Message:     fmt.Sprintf("shortcut name exceeds %d characters", MaxNameLength),
			ActionIndex: -1,
		})
	}
	if s.Actions == nil {
		addError(result, "", ValidationError{
			Kind:        ErrStructure,
			Message:     "shortcut must have an action list",
			ActionIndex: -1,
		})
	}
}

// checkList validates one branch list and returns the nested branch frames
// to visit. When the list exceeds MaxActions the branch is reported once and
// not descended into, so valid actions inside an oversized branch do not
// produce secondary errors.
func (v *Validator) checkList(f frame, result *Result, perms map[registry.Permission]struct{}) []frame {
	if len(f.actions) > MaxActions {
		addError(result, f.path, ValidationError{
			Kind:        ErrLimit,
			Message:     fmt.Sprintf("action list has %d actions, limit is %d", len(f.actions), MaxActions),
			ActionIndex: -1,
		})
		return nil
	}

	var children []frame
	for i := range f.actions {
		action := &f.actions[i]
		token := fmt.Sprintf("%s:%d", action.Type, i)

		if _, seen := f.ancestors[token]; seen {
			addError(result, f.path, ValidationError{
				Kind:        ErrCircular,
				Message:     fmt.Sprintf("action %q revisits its own ancestor path", token),
				ActionIndex: i,
			})
			continue
		}

		desc, ok := v.registry.Lookup(action.Type)
		if !ok {
			addError(result, f.path, ValidationError{
				Kind:        ErrInvalidAction,
				Message:     fmt.Sprintf("unknown action type %q", action.Type),
				ActionIndex: i,
			})
			continue
		}

		v.checkParameters(action, i, desc, f.path, result)

		if desc.RequiredPermission != registry.PermissionNone {
			perms[desc.RequiredPermission] = struct{}{}
		}

		nested := action.NestedLists()
		if len(nested) == 0 {
			continue
		}
		ancestors := maps.Clone(f.ancestors)
		ancestors[token] = struct{}{}
		for _, n := range nested {
			children = append(children, frame{
				actions:   n.Actions,
				path:      joinPath(f.path, token, n.Branch),
				ancestors: ancestors,
			})
		}
	}
	return children
}

// checkParameters sanitizes values and enforces the descriptor's schema.
func (v *Validator) checkParameters(action *Action, index int, desc *registry.ActionTypeDescriptor, path string, result *Result) {
	for pi := range action.Parameters {
		entry := &action.Parameters[pi]
		spec := desc.Parameter(entry.Key)
		if spec == nil {
			addError(result, path, ValidationError{
				Kind:        ErrParameter,
				Message:     fmt.Sprintf("unknown parameter %q for action %q", entry.Key, action.Type),
				ActionIndex: index,
			})
			continue
		}
		sanitized, ok := sanitizeValue(entry.Value, spec.Kind)
		if !ok {
			addError(result, path, ValidationError{
				Kind: ErrParameter,
				Message: fmt.Sprintf("parameter %q of action %q must be a %s value, got %s",
					entry.Key, action.Type, spec.Kind, entry.Value.Kind()),
				ActionIndex: index,
			})
			continue
		}
		entry.Value = sanitized
	}

	for _, spec := range desc.Parameters {
		if spec.Required && !action.Parameters.Has(spec.Key) {
			addError(result, path, ValidationError{
				Kind:        ErrParameter,
				Message:     fmt.Sprintf("missing required parameter %q for action %q", spec.Key, action.Type),
				ActionIndex: index,
			})
		}
	}

	// Conditional expressions must at least parse; evaluation happens on
	// the target platform.
	if desc.IsControlFlow() {
		if cond := action.Parameters.GetString("condition"); cond != "" {
			if _, err := expr.Compile(cond); err != nil {
				addError(result, path, ValidationError{
					Kind:        ErrParameter,
					Message:     fmt.Sprintf("invalid condition expression: %v", err),
					ActionIndex: index,
				})
			}
		}
	}
}

// addError appends an error, wrapping it as ErrNested with the branch
// breadcrumb when it was found below the top level.
func addError(result *Result, path string, inner ValidationError) {
	if path == "" {
		result.Errors = append(result.Errors, inner)
		return
	}
	cause := inner
	result.Errors = append(result.Errors, ValidationError{
		Kind:        ErrNested,
		Message:     fmt.Sprintf("error in nested branch %s", path),
		ActionIndex: -1,
		Path:        path,
		Cause:       &cause,
	})
}

func joinPath(parent, token, branch string) string {
	if parent == "" {
		return token + "/" + branch
	}
	return parent + "/" + token + "/" + branch
}
