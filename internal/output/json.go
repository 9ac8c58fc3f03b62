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

package output

import (
	"encoding/json"
	"io"
	"os"
)

// JSONResponse is the base envelope for all JSON output
type JSONResponse struct {
	Version string `json:"@version"`
	Command string `json:"command"`
	Success bool   `json:"success"`
}

// JSONError represents a structured error with code, message, position, and suggestion
type JSONError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`

	// ActionIndex locates the offending action where known; -1 means
	// the error is not tied to one action
	ActionIndex int `json:"action_index,omitempty"`

	// Path is the nesting path of the offending action, empty at top level
	Path string `json:"path,omitempty"`

	// Offset is the byte offset for parse errors
	Offset int64 `json:"offset,omitempty"`
}

// EmitJSON marshals a response to JSON and outputs it to the writer.
// This ensures consistent formatting across all commands.
func EmitJSON(w io.Writer, response interface{}) error {
	if w == nil {
		w = os.Stdout
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(response)
}

// EmitJSONError creates and emits a JSON error response
func EmitJSONError(w io.Writer, command string, errors []JSONError) error {
	type errorResponse struct {
		JSONResponse
		Errors []JSONError `json:"errors"`
	}

	resp := errorResponse{
		JSONResponse: JSONResponse{
			Version: "1.0",
			Command: command,
			Success: false,
		},
		Errors: errors,
	}

	return EmitJSON(w, resp)
}

// EmitJSONSuccess wraps command data in the success envelope and emits it.
func EmitJSONSuccess(w io.Writer, command string, data any) error {
	type successResponse struct {
		JSONResponse
		Data any `json:"data,omitempty"`
	}

	resp := successResponse{
		JSONResponse: JSONResponse{
			Version: "1.0",
			Command: command,
			Success: true,
		},
		Data: data,
	}

	return EmitJSON(w, resp)
}
