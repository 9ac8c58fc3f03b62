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
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tombee/baton/pkg/errors"
)

func TestNopConverter(t *testing.T) {
	data := []byte(`{"WFWorkflowName":"x"}`)
	out, err := NopConverter{}.Convert(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestPlistConverterMissingTool(t *testing.T) {
	c := &PlistConverter{Path: "definitely-not-a-real-binary"}
	_, err := c.Convert(context.Background(), []byte("{}"))
	require.Error(t, err)
	assert.True(t, errors.IsConversionUnavailable(err))
}

func TestExecSignerMissingTool(t *testing.T) {
	s := &ExecSigner{Path: "definitely-not-a-real-binary"}
	_, err := s.Sign(context.Background(), []byte("{}"))
	require.Error(t, err)
	assert.True(t, errors.IsConversionUnavailable(err))
}
