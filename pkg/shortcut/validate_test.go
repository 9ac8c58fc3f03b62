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
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tombee/baton/pkg/registry"
)

func testValidator(t *testing.T) *Validator {
	t.Helper()
	reg, err := registry.LoadDefault()
	require.NoError(t, err)
	return NewValidator(reg)
}

func notificationAction(title, body string) Action {
	return Action{
		Type: "notification",
		Parameters: Parameters{
			{Key: "title", Value: StringValue(title)},
			{Key: "body", Value: StringValue(body)},
			{Key: "sound", Value: BoolValue(true)},
		},
	}
}

func TestValidateAccepted(t *testing.T) {
	v := testValidator(t)

	s := &Shortcut{
		Name:    "Good Morning",
		Actions: []Action{notificationAction("Hi", "Morning")},
	}

	result := v.Validate(s)
	assert.True(t, result.Accepted)
	assert.Empty(t, result.Errors)
	assert.Equal(t, []registry.Permission{registry.PermissionNotifications}, result.Permissions)
}

func TestValidateIdempotent(t *testing.T) {
	v := testValidator(t)

	s := &Shortcut{
		Name: "Trim Me",
		Actions: []Action{
			{Type: "text", Parameters: Parameters{{Key: "text", Value: StringValue("  padded  ")}}},
			{Type: "wait", Parameters: Parameters{{Key: "seconds", Value: NumberValue(1.2345)}}},
		},
	}

	first := v.Validate(s)
	require.True(t, first.Accepted)

	// Sanitization happened in place.
	assert.Equal(t, "padded", s.Actions[0].Parameters.GetString("text"))
	secs, _ := s.Actions[1].Parameters.Get("seconds")
	n, _ := secs.AsNumber()
	assert.Equal(t, 1.23, n)

	second := v.Validate(s)
	assert.True(t, second.Accepted)
	assert.Empty(t, second.Errors)
}

func TestValidateStructure(t *testing.T) {
	v := testValidator(t)

	tests := []struct {
		name     string
		shortcut *Shortcut
	}{
		{"empty name", &Shortcut{Name: "", Actions: []Action{}}},
		{"oversized name", &Shortcut{Name: strings.Repeat("x", MaxNameLength+1), Actions: []Action{}}},
		{"nil actions", &Shortcut{Name: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.Validate(tt.shortcut)
			assert.False(t, result.Accepted)
			assert.True(t, result.HasKind(ErrStructure))
		})
	}
}

func TestValidateLimitExactlyOneError(t *testing.T) {
	v := testValidator(t)

	actions := make([]Action, MaxActions+1)
	for i := range actions {
		actions[i] = notificationAction("t", "b")
	}
	s := &Shortcut{Name: "Too Big", Actions: actions}

	result := v.Validate(s)
	assert.False(t, result.Accepted)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, ErrLimit, result.Errors[0].Kind)
}

func TestValidateLimitAtExactCeiling(t *testing.T) {
	v := testValidator(t)

	actions := make([]Action, MaxActions)
	for i := range actions {
		actions[i] = notificationAction("t", "b")
	}

	result := v.Validate(&Shortcut{Name: "At Limit", Actions: actions})
	assert.True(t, result.Accepted)
}

func TestValidateNestedLimit(t *testing.T) {
	v := testValidator(t)

	body := make([]Action, MaxActions+1)
	for i := range body {
		body[i] = notificationAction("t", "b")
	}
	s := &Shortcut{
		Name: "Nested Too Big",
		Actions: []Action{{
			Type: "repeat",
			Parameters: Parameters{
				{Key: "count", Value: NumberValue(2)},
				{Key: "actions", Value: ActionListValue(body)},
			},
		}},
	}

	result := v.Validate(s)
	assert.False(t, result.Accepted)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, ErrNested, result.Errors[0].Kind)
	assert.Equal(t, ErrLimit, result.Errors[0].Root().Kind)
	assert.Equal(t, "repeat:0/actions", result.Errors[0].Path)
}

func TestValidateInvalidActionIndex(t *testing.T) {
	v := testValidator(t)

	s := &Shortcut{
		Name: "Has Bad Action",
		Actions: []Action{
			notificationAction("a", "b"),
			notificationAction("c", "d"),
			{Type: "not_a_real_action", Parameters: Parameters{}},
		},
	}

	result := v.Validate(s)
	assert.False(t, result.Accepted)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, ErrInvalidAction, result.Errors[0].Kind)
	assert.Equal(t, 2, result.Errors[0].ActionIndex)
}

func TestValidateParameterErrors(t *testing.T) {
	v := testValidator(t)

	tests := []struct {
		name    string
		action  Action
		wantMsg string
	}{
		{
			name:    "missing required",
			action:  Action{Type: "notification", Parameters: Parameters{{Key: "title", Value: StringValue("x")}}},
			wantMsg: `missing required parameter "body"`,
		},
		{
			name: "unknown key",
			action: Action{Type: "text", Parameters: Parameters{
				{Key: "text", Value: StringValue("x")},
				{Key: "volume", Value: NumberValue(11)},
			}},
			wantMsg: `unknown parameter "volume"`,
		},
		{
			name: "wrong type",
			action: Action{Type: "wait", Parameters: Parameters{
				{Key: "seconds", Value: StringValue("soon")},
			}},
			wantMsg: "must be a number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.Validate(&Shortcut{Name: "x", Actions: []Action{tt.action}})
			assert.False(t, result.Accepted)
			require.NotEmpty(t, result.Errors)
			assert.Equal(t, ErrParameter, result.Errors[0].Kind)
			assert.Contains(t, result.Errors[0].Message, tt.wantMsg)
		})
	}
}

func TestValidateAggregatesAllErrors(t *testing.T) {
	v := testValidator(t)

	s := &Shortcut{
		Name: "Many Problems",
		Actions: []Action{
			{Type: "bogus_one", Parameters: Parameters{}},
			{Type: "notification", Parameters: Parameters{}},
			{Type: "bogus_two", Parameters: Parameters{}},
		},
	}

	result := v.Validate(s)
	assert.False(t, result.Accepted)
	// Two unknown types plus two missing notification parameters.
	assert.Len(t, result.Errors, 4)
}

func TestValidateCircularPathToken(t *testing.T) {
	v := testValidator(t)

	// An if at index 0 whose then branch holds another if at index 0:
	// the repeated if:0 path token is flagged as circular.
	inner := Action{
		Type: "if",
		Parameters: Parameters{
			{Key: "condition", Value: StringValue("x > 1")},
			{Key: "branches", Value: BranchesValue([]Action{notificationAction("a", "b")}, nil)},
		},
	}
	outer := Action{
		Type: "if",
		Parameters: Parameters{
			{Key: "condition", Value: StringValue("x > 0")},
			{Key: "branches", Value: BranchesValue([]Action{inner}, nil)},
		},
	}

	result := v.Validate(&Shortcut{Name: "Cycle", Actions: []Action{outer}})
	assert.False(t, result.Accepted)
	assert.True(t, result.HasKind(ErrCircular))
}

func TestValidateNestedBranchesAtDistinctIndexes(t *testing.T) {
	v := testValidator(t)

	// Same structure but the inner if sits at index 1 in its branch, so no
	// path token repeats.
	inner := Action{
		Type: "if",
		Parameters: Parameters{
			{Key: "condition", Value: StringValue("x > 1")},
			{Key: "branches", Value: BranchesValue([]Action{notificationAction("a", "b")}, nil)},
		},
	}
	outer := Action{
		Type: "if",
		Parameters: Parameters{
			{Key: "condition", Value: StringValue("x > 0")},
			{Key: "branches", Value: BranchesValue([]Action{notificationAction("c", "d"), inner}, nil)},
		},
	}

	result := v.Validate(&Shortcut{Name: "Fine", Actions: []Action{outer}})
	assert.True(t, result.Accepted, "errors: %v", result.Errors)
}

func TestValidateNestedErrorPath(t *testing.T) {
	v := testValidator(t)

	s := &Shortcut{
		Name: "Nested Bad",
		Actions: []Action{{
			Type: "if",
			Parameters: Parameters{
				{Key: "condition", Value: StringValue("true")},
				{Key: "branches", Value: BranchesValue(
					[]Action{{Type: "mystery", Parameters: Parameters{}}},
					[]Action{notificationAction("a", "b")},
				)},
			},
		}},
	}

	result := v.Validate(s)
	assert.False(t, result.Accepted)
	require.Len(t, result.Errors, 1)

	wrapper := result.Errors[0]
	assert.Equal(t, ErrNested, wrapper.Kind)
	assert.Equal(t, "if:0/then", wrapper.Path)
	require.NotNil(t, wrapper.Cause)
	assert.Equal(t, ErrInvalidAction, wrapper.Cause.Kind)
	assert.Equal(t, 0, wrapper.Cause.ActionIndex)
}

func TestValidateInvalidConditionExpression(t *testing.T) {
	v := testValidator(t)

	s := &Shortcut{
		Name: "Bad Condition",
		Actions: []Action{{
			Type: "if",
			Parameters: Parameters{
				{Key: "condition", Value: StringValue("answer ==")},
				{Key: "branches", Value: BranchesValue([]Action{notificationAction("a", "b")}, nil)},
			},
		}},
	}

	result := v.Validate(s)
	assert.False(t, result.Accepted)
	assert.True(t, result.HasKind(ErrParameter))
}

func TestValidatePermissionAggregation(t *testing.T) {
	v := testValidator(t)

	s := &Shortcut{
		Name: "Permissions",
		Actions: []Action{
			notificationAction("a", "b"),
			{Type: "get_location", Parameters: Parameters{}},
			{Type: "get_url_contents", Parameters: Parameters{{Key: "url", Value: StringValue("https://example.com")}}},
			{Type: "vibrate", Parameters: Parameters{}},
		},
	}

	result := v.Validate(s)
	require.True(t, result.Accepted, "errors: %v", result.Errors)
	assert.Equal(t, []registry.Permission{
		registry.PermissionDevice,
		registry.PermissionLocation,
		registry.PermissionNetwork,
		registry.PermissionNotifications,
	}, result.Permissions)
}

func TestValidateDeeplyNestedViaWorkStack(t *testing.T) {
	v := testValidator(t)

	// Build a 30-deep repeat chain; the explicit traversal stack must
	// handle this without recursion depth issues. Each level pads with a
	// different number of comments so no repeat shares a path token with
	// an ancestor.
	leaf := []Action{notificationAction("deep", "leaf")}
	for depth := 30; depth >= 1; depth-- {
		level := make([]Action, 0, depth+1)
		for i := 0; i < depth; i++ {
			level = append(level, Action{
				Type:       "comment",
				Parameters: Parameters{{Key: "text", Value: StringValue(fmt.Sprintf("level %d pad %d", depth, i))}},
			})
		}
		level = append(level, Action{Type: "repeat", Parameters: Parameters{
			{Key: "count", Value: NumberValue(2)},
			{Key: "actions", Value: ActionListValue(leaf)},
		}})
		leaf = level
	}

	result := v.Validate(&Shortcut{Name: "Deep", Actions: leaf})
	assert.True(t, result.Accepted, "errors: %v", result.Errors)
}
