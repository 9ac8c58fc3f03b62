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

package shared

import "github.com/tombee/baton/pkg/shortcut"

// Error codes for structured JSON output
const (
	// Parse errors (E001-E099)
	ErrorCodeInvalidJSON = "E001" // Malformed JSON input
	ErrorCodeInvalidYAML = "E002" // Malformed YAML registry file

	// Validation errors (E100-E199)
	ErrorCodeStructure     = "E101" // Structural rule violation
	ErrorCodeLimit         = "E102" // Action count ceiling exceeded
	ErrorCodeCircular      = "E103" // Circular nesting reference
	ErrorCodeInvalidAction = "E104" // Unknown action type
	ErrorCodeParameter     = "E105" // Parameter rule violation
	ErrorCodeNested        = "E106" // Error inside a nested branch

	// Compilation errors (E200-E299)
	ErrorCodeCompileFailed = "E201" // Unmappable action during compilation

	// Resource errors (E400-E499)
	ErrorCodeNotFound = "E401" // Resource not found
	ErrorCodeInternal = "E402" // Internal error
)

// CodeForValidation maps a validation error kind to a JSON error code
func CodeForValidation(kind shortcut.ErrorKind) string {
	switch kind {
	case shortcut.ErrStructure:
		return ErrorCodeStructure
	case shortcut.ErrLimit:
		return ErrorCodeLimit
	case shortcut.ErrCircular:
		return ErrorCodeCircular
	case shortcut.ErrInvalidAction:
		return ErrorCodeInvalidAction
	case shortcut.ErrParameter:
		return ErrorCodeParameter
	case shortcut.ErrNested:
		return ErrorCodeNested
	default:
		return ErrorCodeInternal
	}
}
