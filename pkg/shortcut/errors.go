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
)

// ErrorKind classifies validation failures.
type ErrorKind string

// Validation error kinds.
const (
	// ErrStructure marks a malformed root (missing name, oversized name,
	// missing action list).
	ErrStructure ErrorKind = "structure"

	// ErrLimit marks a size ceiling violation (MaxActions per nesting level).
	ErrLimit ErrorKind = "limit"

	// ErrCircular marks a type:index path token repeated along the current
	// root-to-node path.
	ErrCircular ErrorKind = "circular"

	// ErrInvalidAction marks an action type the registry does not know.
	ErrInvalidAction ErrorKind = "invalid_action"

	// ErrParameter marks a missing, unknown, or invalid-typed parameter.
	ErrParameter ErrorKind = "parameter"

	// ErrNested wraps an error found inside a nested branch, carrying the
	// branch path breadcrumb.
	ErrNested ErrorKind = "nested"
)

// ValidationError is one finding from the validator. Validation is not
// fail-fast: a rejected shortcut carries every error found in one pass.
type ValidationError struct {
	// Kind classifies the failure
	Kind ErrorKind `json:"kind"`

	// Message is the human-readable description
	Message string `json:"message"`

	// ActionIndex is the offending action's position in its list
	// (-1 when not applicable)
	ActionIndex int `json:"action_index"`

	// Path is the breadcrumb through nested branches
	// (e.g., "if:0/then/repeat:2/actions"), empty at top level
	Path string `json:"path,omitempty"`

	// Cause is the wrapped inner error when Kind is ErrNested
	Cause *ValidationError `json:"cause,omitempty"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.ActionIndex >= 0 {
		msg = fmt.Sprintf("%s (action %d)", msg, e.ActionIndex)
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s at %s", msg, e.Path)
	}
	return msg
}

// Root returns the innermost error, unwrapping ErrNested layers. For a
// non-nested error it returns the receiver.
func (e *ValidationError) Root() *ValidationError {
	cur := e
	for cur.Kind == ErrNested && cur.Cause != nil {
		cur = cur.Cause
	}
	return cur
}
