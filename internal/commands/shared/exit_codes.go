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

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for baton commands
const (
	ExitSuccess       = 0
	ExitInternalError = 1
	ExitRejected      = 2 // validation rejected the shortcut
	ExitParseFailed   = 3 // input could not be parsed
	ExitCompileFailed = 4 // compilation aborted on an unmappable action
)

// ExitError is an error that carries an exit code
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

func (e *ExitError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewRejectedError creates an error for shortcuts the validator rejected
func NewRejectedError(msg string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitRejected,
		Message: msg,
		Cause:   cause,
	}
}

// NewParseFailedError creates an error for unparseable input
func NewParseFailedError(msg string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitParseFailed,
		Message: msg,
		Cause:   cause,
	}
}

// NewCompileFailedError creates an error for compilation failures
func NewCompileFailedError(msg string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitCompileFailed,
		Message: msg,
		Cause:   cause,
	}
}

// NewInternalError creates an error for unexpected failures
func NewInternalError(msg string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitInternalError,
		Message: msg,
		Cause:   cause,
	}
}

// HandleExitError checks if an error is an ExitError and exits with the appropriate code
func HandleExitError(err error) {
	if err == nil {
		return
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		msg := exitErr.Error()
		if len(msg) > 0 {
			fmt.Fprintln(os.Stderr, "Error:", msg)
		}
		os.Exit(exitErr.Code)
	}

	// Default to internal error
	fmt.Fprintln(os.Stderr, "Error:", err.Error())
	os.Exit(ExitInternalError)
}
