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
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tombee/baton/pkg/errors"
	"github.com/tombee/baton/pkg/registry"
	"github.com/tombee/baton/pkg/shortcut"
)

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg, err := registry.LoadDefault()
	require.NoError(t, err)
	return reg
}

// sequentialIDs replaces UUID minting with a deterministic counter.
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func action(typ string, params ...shortcut.Param) shortcut.Action {
	return shortcut.Action{Type: typ, Parameters: params}
}

func strParam(key, value string) shortcut.Param {
	return shortcut.Param{Key: key, Value: shortcut.StringValue(value)}
}

func TestCompileSimpleShortcut(t *testing.T) {
	c := NewCompiler(testRegistry(t))
	c.newID = sequentialIDs()

	doc, err := c.Compile(&shortcut.Shortcut{
		Name: "Good Morning",
		Actions: []shortcut.Action{
			action("notification",
				strParam("title", "Greeting"),
				strParam("body", "Good morning!"),
			),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Good Morning", doc.Name)
	assert.Equal(t, ClientVersion, doc.ClientVersion)
	assert.Equal(t, MinimumClientVersion, doc.MinimumClientVersion)
	require.Len(t, doc.Actions, 1)

	record := doc.Actions[0]
	assert.Equal(t, "is.workflow.actions.notification", record.Identifier)
	assert.Equal(t, "id-1", record.Parameters["UUID"])
	assert.Equal(t, "Greeting", record.Parameters["WFNotificationActionTitle"])
	assert.Equal(t, "Good morning!", record.Parameters["WFNotificationActionBody"])
}

func TestCompileUnknownTypeFailsFast(t *testing.T) {
	c := NewCompiler(testRegistry(t))

	_, err := c.Compile(&shortcut.Shortcut{
		Name: "Broken",
		Actions: []shortcut.Action{
			action("text", strParam("text", "ok")),
			action("not_a_real_action"),
		},
	})
	require.Error(t, err)

	var compErr *errors.CompilationError
	require.ErrorAs(t, err, &compErr)
	assert.Equal(t, "not_a_real_action", compErr.ActionType)
	assert.Equal(t, 1, compErr.ActionIndex)
}

func TestCompileControlFlowGrouping(t *testing.T) {
	c := NewCompiler(testRegistry(t))
	c.newID = sequentialIDs()

	doc, err := c.Compile(&shortcut.Shortcut{
		Name: "Branching",
		Actions: []shortcut.Action{
			action("if",
				strParam("condition", "answer == 'yes'"),
				shortcut.Param{Key: "branches", Value: shortcut.BranchesValue(
					[]shortcut.Action{action("text", strParam("text", "agreed"))},
					[]shortcut.Action{action("text", strParam("text", "declined"))},
				)},
			),
		},
	})
	require.NoError(t, err)
	require.Len(t, doc.Actions, 3)

	head := doc.Actions[0]
	token, ok := head.Parameters["GroupingIdentifier"].(string)
	require.True(t, ok)
	assert.Equal(t, 0, head.Parameters["WFControlFlowMode"])
	assert.Equal(t, "answer == 'yes'", head.Parameters["WFCondition"])

	// Both branch bodies follow the head and share its grouping token.
	for _, record := range doc.Actions[1:] {
		assert.Equal(t, "is.workflow.actions.gettext", record.Identifier)
		assert.Equal(t, token, record.Parameters["GroupingIdentifier"])
	}
}

func TestCompileGolden(t *testing.T) {
	c := NewCompiler(testRegistry(t))
	c.newID = sequentialIDs()

	doc, err := c.Compile(&shortcut.Shortcut{
		Name: "Morning Briefing",
		Actions: []shortcut.Action{
			action("notification",
				strParam("title", "Greeting"),
				strParam("body", "Good morning!"),
			),
			action("if",
				strParam("condition", "ready == 'yes'"),
				shortcut.Param{Key: "branches", Value: shortcut.BranchesValue(
					[]shortcut.Action{action("text", strParam("text", "Let's go"))},
					nil,
				)},
			),
		},
	})
	require.NoError(t, err)

	data, err := doc.Marshal()
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "morning_briefing", data)
}

func TestDecompileRoundTrip(t *testing.T) {
	// Top-level-only trees survive a full round trip: compile, decompile,
	// and re-validate.
	reg := testRegistry(t)
	original := &shortcut.Shortcut{
		Name: "Round Trip",
		Actions: []shortcut.Action{
			action("ask", strParam("prompt", "Enter your name")),
			action("text", strParam("text", "Hello {name}!")),
			action("notification",
				strParam("title", "Done"),
				strParam("body", "All set"),
			),
		},
	}

	doc, err := NewCompiler(reg).Compile(original)
	require.NoError(t, err)

	restored := NewDecompiler(reg).Decompile(doc)
	assert.Equal(t, original.Name, restored.Name)
	require.Len(t, restored.Actions, len(original.Actions))
	for i, want := range original.Actions {
		got := restored.Actions[i]
		assert.Equal(t, want.Type, got.Type)
		for _, entry := range want.Parameters {
			value, ok := got.Parameters.Get(entry.Key)
			require.True(t, ok, "parameter %q missing after round trip", entry.Key)
			assert.Equal(t, entry.Value.Raw(), value.Raw())
		}
	}

	result := shortcut.NewValidator(reg).Validate(restored)
	assert.True(t, result.Accepted)
}

func TestDecompileUnknownIdentifier(t *testing.T) {
	d := NewDecompiler(testRegistry(t))

	s := d.Decompile(&Document{
		Name: "Mystery",
		Actions: []Record{
			{
				Identifier: "is.workflow.actions.frobnicate",
				Parameters: map[string]any{
					"UUID":    "ignored",
					"WFInput": "value",
				},
			},
		},
	})

	require.Len(t, s.Actions, 1)
	assert.Equal(t, "frobnicate", s.Actions[0].Type)
	assert.False(t, s.Actions[0].Parameters.Has("UUID"))
	assert.Equal(t, "value", s.Actions[0].Parameters.GetString("WFInput"))
}

func TestDecompileStripsStructuralKeys(t *testing.T) {
	d := NewDecompiler(testRegistry(t))

	s := d.Decompile(&Document{
		Name: "Structured",
		Actions: []Record{
			{
				Identifier: "is.workflow.actions.gettext",
				Parameters: map[string]any{
					"UUID":               "u",
					"GroupingIdentifier": "g",
					"WFControlFlowMode":  0,
					"WFTextActionText":   "hello",
				},
			},
		},
	})

	require.Len(t, s.Actions, 1)
	got := s.Actions[0]
	assert.Equal(t, "text", got.Type)
	assert.Equal(t, []string{"text"}, got.Parameters.Keys())
	assert.Equal(t, "hello", got.Parameters.GetString("text"))
}

func TestParseDocumentInvalid(t *testing.T) {
	_, err := ParseDocument([]byte("{not json"))
	require.NotNil(t, err)
	assert.Positive(t, err.Offset)
}
