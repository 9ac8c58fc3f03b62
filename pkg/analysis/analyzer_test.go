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

package analysis

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tombee/baton/pkg/registry"
	"github.com/tombee/baton/pkg/shortcut"
)

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg, err := registry.LoadDefault()
	require.NoError(t, err)
	return reg
}

func action(typ string, params ...shortcut.Param) shortcut.Action {
	return shortcut.Action{Type: typ, Parameters: params}
}

func strParam(key, value string) shortcut.Param {
	return shortcut.Param{Key: key, Value: shortcut.StringValue(value)}
}

func TestAnalyzeGreetingDependency(t *testing.T) {
	// An ask prompt that names a value, followed by a text action that
	// consumes it through a placeholder, must yield exactly one edge.
	s := &shortcut.Shortcut{
		Name: "Greeting",
		Actions: []shortcut.Action{
			action("ask", strParam("prompt", "Enter your name")),
			action("text", strParam("text", "Hello {name}!")),
		},
	}

	report := NewAnalyzer(testRegistry(t)).Analyze(s)

	require.Len(t, report.Dependencies, 2)
	consumer := report.Dependencies[1]
	want := []Dependency{{Index: 0, Type: "ask", Token: "name"}}
	if diff := cmp.Diff(want, consumer.Dependencies); diff != "" {
		t.Errorf("dependency mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"text"}, report.Dependencies[0].Dependents)
	assert.Equal(t, 1, report.Complexity.DataFlowComplexity)
}

func TestAnalyzeNestingAndConditionals(t *testing.T) {
	// if > then > if > repeat: depth 3, two conditionals.
	inner := action("if",
		strParam("condition", "x == 2"),
		shortcut.Param{Key: "branches", Value: shortcut.BranchesValue(
			[]shortcut.Action{action("repeat",
				shortcut.Param{Key: "count", Value: shortcut.NumberValue(3)},
				shortcut.Param{Key: "actions", Value: shortcut.ActionListValue(
					[]shortcut.Action{action("comment", strParam("text", "tick"))},
				)},
			)},
			nil,
		)},
	)
	s := &shortcut.Shortcut{
		Name: "Nested",
		Actions: []shortcut.Action{
			action("if",
				strParam("condition", "x == 1"),
				shortcut.Param{Key: "branches", Value: shortcut.BranchesValue(
					[]shortcut.Action{inner}, nil,
				)},
			),
		},
	}

	report := NewAnalyzer(testRegistry(t)).Analyze(s)

	assert.Equal(t, 4, report.ActionCount)
	assert.Equal(t, 3, report.Complexity.NestingDepth)
	assert.Equal(t, 2, report.Complexity.ConditionalComplexity)
	assert.Equal(t, 0, report.Complexity.DataFlowComplexity)
}

func TestComplexityScoreWeights(t *testing.T) {
	s := &shortcut.Shortcut{
		Name: "Flat",
		Actions: []shortcut.Action{
			action("comment", strParam("text", "a")),
			action("comment", strParam("text", "b")),
		},
	}

	report := NewAnalyzer(testRegistry(t)).Analyze(s)

	// 0.2*2 actions, nothing else contributes.
	assert.InDelta(t, 0.4, report.Complexity.Score, 1e-9)
	assert.Equal(t, "low", report.Complexity.Level())
}

func TestDetectPatternsFrequencyAndContext(t *testing.T) {
	s := &shortcut.Shortcut{
		Name: "Noisy",
		Actions: []shortcut.Action{
			action("notification", strParam("body", "1")),
			action("wait", shortcut.Param{Key: "seconds", Value: shortcut.NumberValue(1)}),
			action("notification", strParam("body", "2")),
			action("notification", strParam("body", "3")),
			action("notification", strParam("body", "4")),
		},
	}

	report := NewAnalyzer(testRegistry(t)).Analyze(s)

	require.NotEmpty(t, report.Patterns)
	top := report.Patterns[0]
	assert.Equal(t, "notification", top.Type)
	assert.Equal(t, 4, top.Count)
	assert.Contains(t, top.Contexts, "start -> notification -> wait")
	assert.Contains(t, top.Contexts, "notification -> notification -> end")
	require.NotEmpty(t, report.Suggestions)
	assert.Contains(t, report.Suggestions[0], "notification")
}

func TestSecurityFindings(t *testing.T) {
	s := &shortcut.Shortcut{
		Name: "Risky",
		Actions: []shortcut.Action{
			action("get_url_contents", strParam("url", "http://example.com/data")),
			action("get_location"),
			action("notification", strParam("body", "at {location}")),
		},
	}

	report := NewAnalyzer(testRegistry(t)).Analyze(s)

	byType := make(map[string]SecurityFinding)
	for _, f := range report.Security {
		byType[f.ActionType] = f
	}

	insecure, ok := byType["get_url_contents"]
	require.True(t, ok)
	assert.Equal(t, RiskHigh, insecure.Risk)
	assert.Equal(t, "CWE-319", insecure.Weakness)

	loc, ok := byType["get_location"]
	require.True(t, ok)
	assert.Equal(t, RiskMedium, loc.Risk)
	assert.Equal(t, "CWE-359", loc.Weakness)

	notif, ok := byType["notification"]
	require.True(t, ok)
	assert.Equal(t, RiskMedium, notif.Risk)
	assert.Equal(t, "CWE-74", notif.Weakness)
}

func TestDecomposeComponentsAndFlows(t *testing.T) {
	s := &shortcut.Shortcut{
		Name: "Pipeline",
		Actions: []shortcut.Action{
			action("ask", strParam("prompt", "Enter your city")),
			action("if",
				strParam("condition", "city != ''"),
				shortcut.Param{Key: "branches", Value: shortcut.BranchesValue(
					[]shortcut.Action{action("text", strParam("text", "Hi {city}"))},
					nil,
				)},
			),
			action("notification", strParam("body", "done")),
		},
	}

	report := NewAnalyzer(testRegistry(t)).Analyze(s)

	require.Len(t, report.Components, 3)
	assert.Equal(t, ComponentInput, report.Components[0].Kind)
	assert.Equal(t, ComponentConditional, report.Components[1].Kind)
	assert.Equal(t, ComponentOutput, report.Components[2].Kind)
	assert.Equal(t, "branch on a condition", report.Components[1].Purpose)

	// The nested text action consumes {city} produced by the ask in the
	// input component, so the conditional component is not reusable.
	require.Len(t, report.DataFlows, 1)
	assert.Equal(t, DataFlow{From: 0, To: 1, Token: "city"}, report.DataFlows[0])
	assert.True(t, report.Components[0].Reusable)
	assert.False(t, report.Components[1].Reusable)
}

func TestFindEndpoints(t *testing.T) {
	s := &shortcut.Shortcut{
		Name: "IO",
		Actions: []shortcut.Action{
			action("get_clipboard"),
			action("repeat",
				shortcut.Param{Key: "count", Value: shortcut.NumberValue(2)},
				shortcut.Param{Key: "actions", Value: shortcut.ActionListValue(
					[]shortcut.Action{action("speak", strParam("text", "hello"))},
				)},
			),
			action("show_result", strParam("text", "done")),
		},
	}

	report := NewAnalyzer(testRegistry(t)).Analyze(s)

	assert.Equal(t, []ActionRef{{Index: 0, Type: "get_clipboard"}}, report.EntryPoints)
	assert.Equal(t, []ActionRef{
		{Index: 2, Type: "speak"},
		{Index: 3, Type: "show_result"},
	}, report.ExitPoints)
}

func TestAnalyzeDoesNotMutateInput(t *testing.T) {
	s := &shortcut.Shortcut{
		Name: "Stable",
		Actions: []shortcut.Action{
			action("ask", strParam("prompt", "Enter your name")),
			action("text", strParam("text", "Hello {name}!")),
		},
	}
	before, err := s.MarshalJSON()
	require.NoError(t, err)

	NewAnalyzer(testRegistry(t)).Analyze(s)

	after, err := s.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}
