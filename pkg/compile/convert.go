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
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/tombee/baton/pkg/errors"
)

// Converter turns a JSON document into the binary container format the
// runner installs. Implementations shell out to platform tooling, so
// conversion is optional and callers must handle its absence.
type Converter interface {
	Convert(ctx context.Context, data []byte) ([]byte, error)
}

// Signer signs a converted document for distribution.
type Signer interface {
	Sign(ctx context.Context, data []byte) ([]byte, error)
}

// NopConverter returns its input unchanged. Used where the JSON form is the
// final artifact.
type NopConverter struct{}

// Convert implements Converter.
func (NopConverter) Convert(_ context.Context, data []byte) ([]byte, error) {
	return data, nil
}

// PlistConverter converts JSON documents to binary plists through the
// plutil tool. The zero value uses "plutil" from PATH.
type PlistConverter struct {
	// Path overrides the plutil binary location.
	Path string
}

// Convert implements Converter by piping the document through
// "plutil -convert binary1".
func (c *PlistConverter) Convert(ctx context.Context, data []byte) ([]byte, error) {
	path := c.Path
	if path == "" {
		path = "plutil"
	}
	resolved, err := exec.LookPath(path)
	if err != nil {
		return nil, &errors.ConversionUnavailableError{Tool: path, Cause: err}
	}

	cmd := exec.CommandContext(ctx, resolved, "-convert", "binary1", "-o", "-", "-")
	cmd.Stdin = bytes.NewReader(data)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("plist conversion failed: %w: %s", err, stderr.String())
	}
	return out.Bytes(), nil
}

// ExecSigner signs a converted document through an external signing tool.
type ExecSigner struct {
	// Path is the signing binary. Required.
	Path string

	// Args are passed before the document on stdin.
	Args []string
}

// Sign implements Signer.
func (s *ExecSigner) Sign(ctx context.Context, data []byte) ([]byte, error) {
	resolved, err := exec.LookPath(s.Path)
	if err != nil {
		return nil, &errors.ConversionUnavailableError{Tool: s.Path, Cause: err}
	}

	cmd := exec.CommandContext(ctx, resolved, s.Args...)
	cmd.Stdin = bytes.NewReader(data)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, &errors.SigningError{
			Mode:  "external",
			Cause: fmt.Errorf("%w: %s", err, stderr.String()),
		}
	}
	return out.Bytes(), nil
}
