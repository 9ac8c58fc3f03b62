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

package errors

import (
	"fmt"
)

// ParseError represents a failure to parse shortcut interchange JSON.
// Use this at the JSON boundary instead of propagating raw decoder errors.
type ParseError struct {
	// Message is the human-readable error description
	Message string

	// Offset is the byte offset in the input where parsing failed (0 if unknown)
	Offset int64

	// Cause is the underlying decoder error
	Cause error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("parse error at offset %d: %s", e.Offset, e.Message)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// CompilationError represents a failure to translate a validated shortcut
// into the target platform's document format. Compilation is fail-fast:
// the first CompilationError aborts the whole operation.
type CompilationError struct {
	// ActionType is the internal action type that could not be compiled
	ActionType string

	// ActionIndex is the position of the failing action in its list
	ActionIndex int

	// Reason explains why compilation failed
	Reason string
}

// Error implements the error interface.
func (e *CompilationError) Error() string {
	if e.ActionType != "" {
		return fmt.Sprintf("cannot compile action %q at index %d: %s", e.ActionType, e.ActionIndex, e.Reason)
	}
	return fmt.Sprintf("compilation failed: %s", e.Reason)
}

// NotFoundError represents a resource not found error.
// Use this when a requested resource does not exist.
type NotFoundError struct {
	// Resource is the type of resource (e.g., "action type", "registry file")
	Resource string

	// ID is the identifier that was not found
	ID string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ConfigError represents configuration problems.
// Use this for registry data file errors, missing settings, or invalid values.
type ConfigError struct {
	// Key is the configuration key that has the problem (e.g., "actions[3].kind")
	Key string

	// Reason explains what's wrong with the configuration
	Reason string

	// Cause is the underlying error (e.g., file read error, parse error)
	Cause error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("config error at %s: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("config error: %s", e.Reason)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// ConversionUnavailableError indicates that the native binary format
// converter is not present on this host. Callers fall back to text framing;
// this error is never fatal on its own.
type ConversionUnavailableError struct {
	// Tool is the converter binary that was looked for
	Tool string

	// Cause is the underlying lookup or exec error
	Cause error
}

// Error implements the error interface.
func (e *ConversionUnavailableError) Error() string {
	if e.Tool != "" {
		return fmt.Sprintf("binary format conversion unavailable: %s not usable", e.Tool)
	}
	return "binary format conversion unavailable"
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ConversionUnavailableError) Unwrap() error {
	return e.Cause
}

// SigningError represents a failure in the external signing collaborator.
type SigningError struct {
	// Mode is the signing mode that was requested
	Mode string

	// Cause is the underlying error from the signer
	Cause error
}

// Error implements the error interface.
func (e *SigningError) Error() string {
	return fmt.Sprintf("signing failed (mode %s): %v", e.Mode, e.Cause)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *SigningError) Unwrap() error {
	return e.Cause
}
