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
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimple(t *testing.T) {
	input := `{
		"name": "Good Morning",
		"actions": [
			{"type": "notification", "parameters": {"title": "Hi", "body": "Morning", "sound": true}}
		]
	}`

	s, perr := Parse([]byte(input))
	require.Nil(t, perr)
	assert.Equal(t, "Good Morning", s.Name)
	require.Len(t, s.Actions, 1)

	a := s.Actions[0]
	assert.Equal(t, "notification", a.Type)
	assert.Equal(t, []string{"title", "body", "sound"}, a.Parameters.Keys())

	v, ok := a.Parameters.Get("sound")
	require.True(t, ok)
	b, ok := v.AsBool()
	require.True(t, ok)
	assert.True(t, b)
}

func TestParsePreservesParameterOrder(t *testing.T) {
	input := `{"name":"x","actions":[{"type":"notification","parameters":{"sound":false,"title":"a","body":"b"}}]}`

	s, perr := Parse([]byte(input))
	require.Nil(t, perr)
	assert.Equal(t, []string{"sound", "title", "body"}, s.Actions[0].Parameters.Keys())
}

func TestParseConditionalBranches(t *testing.T) {
	input := `{
		"name": "Branchy",
		"actions": [
			{"type": "if", "parameters": {
				"condition": "answer == \"yes\"",
				"then": [{"type": "text", "parameters": {"text": "picked yes"}}],
				"else": [{"type": "text", "parameters": {"text": "picked no"}}]
			}}
		]
	}`

	s, perr := Parse([]byte(input))
	require.Nil(t, perr)
	require.Len(t, s.Actions, 1)

	v, ok := s.Actions[0].Parameters.Get("branches")
	require.True(t, ok)
	then, els, ok := v.AsBranches()
	require.True(t, ok)
	require.Len(t, then, 1)
	require.Len(t, els, 1)
	assert.Equal(t, "text", then[0].Type)
	assert.Equal(t, "picked no", els[0].Parameters.GetString("text"))
}

func TestParseLoopBody(t *testing.T) {
	input := `{
		"name": "Loopy",
		"actions": [
			{"type": "repeat", "parameters": {
				"count": 3,
				"actions": [{"type": "vibrate", "parameters": {}}]
			}}
		]
	}`

	s, perr := Parse([]byte(input))
	require.Nil(t, perr)

	v, ok := s.Actions[0].Parameters.Get("actions")
	require.True(t, ok)
	body, ok := v.AsActionList()
	require.True(t, ok)
	require.Len(t, body, 1)
	assert.Equal(t, "vibrate", body[0].Type)

	count, ok := s.Actions[0].Parameters.Get("count")
	require.True(t, ok)
	n, ok := count.AsNumber()
	require.True(t, ok)
	assert.Equal(t, 3.0, n)
}

func TestParseOpaqueValues(t *testing.T) {
	input := `{"name":"x","actions":[{"type":"date","parameters":{"date":null,"extra":{"a":[1,2]}}}]}`

	s, perr := Parse([]byte(input))
	require.Nil(t, perr)

	v, ok := s.Actions[0].Parameters.Get("extra")
	require.True(t, ok)
	assert.Equal(t, KindOpaque, v.Kind())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"not an object", `[1,2]`},
		{"truncated", `{"name": "x", "actions": [{"type":`},
		{"name not a string", `{"name": 7, "actions": []}`},
		{"type not a string", `{"name": "x", "actions": [{"type": 1}]}`},
		{"actions not a list", `{"name": "x", "actions": {"type": "text"}}`},
		{"then not a list", `{"name":"x","actions":[{"type":"if","parameters":{"then": "oops"}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, perr := Parse([]byte(tt.input))
			assert.Nil(t, s)
			require.NotNil(t, perr)
			assert.NotEmpty(t, perr.Message)
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	inputs := []string{
		`{"name":"Good Morning","actions":[{"type":"notification","parameters":{"title":"Hi","body":"Morning","sound":true}}]}`,
		`{"name":"Branchy","actions":[{"type":"if","parameters":{"condition":"x > 1","then":[{"type":"vibrate","parameters":{}}],"else":[{"type":"wait","parameters":{"seconds":1}}]}}]}`,
		`{"name":"Loopy","actions":[{"type":"repeat","parameters":{"count":3,"actions":[{"type":"vibrate","parameters":{}}]}}]}`,
	}

	for _, input := range inputs {
		s, perr := Parse([]byte(input))
		require.Nil(t, perr)

		out, err := json.Marshal(s)
		require.NoError(t, err)
		assert.JSONEq(t, input, string(out))
	}
}

func TestMarshalOmitsMissingElse(t *testing.T) {
	input := `{"name":"x","actions":[{"type":"if","parameters":{"condition":"true","then":[{"type":"vibrate","parameters":{}}]}}]}`

	s, perr := Parse([]byte(input))
	require.Nil(t, perr)

	out, err := json.Marshal(s)
	require.NoError(t, err)
	assert.NotContains(t, string(out), `"else"`)
	assert.JSONEq(t, input, string(out))
}
