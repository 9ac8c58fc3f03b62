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

package version

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tombee/baton/internal/commands/shared"
)

func TestVersionTextOutput(t *testing.T) {
	shared.SetVersion("1.2.3", "abc1234", "2026-01-01")

	cmd := NewVersionCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())

	out := buf.String()
	assert.True(t, strings.Contains(out, "baton version 1.2.3"), "got %q", out)
	assert.True(t, strings.Contains(out, "abc1234"), "got %q", out)
	assert.True(t, strings.Contains(out, "2026-01-01"), "got %q", out)
}
