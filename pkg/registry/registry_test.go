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

package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tombee/baton/pkg/errors"
)

func testDescriptors() []ActionTypeDescriptor {
	return []ActionTypeDescriptor{
		{
			Type:        "notification",
			Identifier:  "is.workflow.actions.notification",
			DisplayName: "Show Notification",
			Category:    CategoryNotifications,
			Parameters: []ParameterSpec{
				{Key: "title", Kind: KindText, Required: true},
				{Key: "body", Kind: KindText, Required: true},
				{Key: "sound", Kind: KindBoolean, Default: true},
			},
			RequiredPermission: PermissionNotifications,
		},
		{
			Type:          "text",
			Identifier:    "is.workflow.actions.gettext",
			DisplayName:   "Text",
			Category:      CategoryText,
			Parameters:    []ParameterSpec{{Key: "text", Kind: KindText, Required: true}},
			ProducedKinds: []ValueKind{KindText},
		},
		{
			Type:        "if",
			Identifier:  "is.workflow.actions.conditional",
			DisplayName: "If",
			Category:    CategoryControlFlow,
			Parameters: []ParameterSpec{
				{Key: "condition", Kind: KindText, Required: true},
				{Key: "branches", Kind: KindActionList, Required: true},
			},
		},
	}
}

func TestNewRegistry(t *testing.T) {
	r, err := New(testDescriptors())
	require.NoError(t, err)
	assert.Equal(t, 3, r.Len())

	d, ok := r.Lookup("notification")
	require.True(t, ok)
	assert.Equal(t, "is.workflow.actions.notification", d.Identifier)
	assert.Equal(t, PermissionNotifications, d.RequiredPermission)

	d, ok = r.LookupIdentifier("is.workflow.actions.gettext")
	require.True(t, ok)
	assert.Equal(t, "text", d.Type)

	_, ok = r.Lookup("not_a_real_action")
	assert.False(t, ok)
}

func TestNewRegistryDuplicateType(t *testing.T) {
	descs := testDescriptors()
	descs = append(descs, descs[0])

	_, err := New(descs)
	require.Error(t, err)

	var cfgErr *errors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Reason, "duplicate action type")
}

func TestNewRegistryInvalidEntries(t *testing.T) {
	tests := []struct {
		name string
		desc ActionTypeDescriptor
	}{
		{
			name: "empty type",
			desc: ActionTypeDescriptor{Identifier: "x.y.z"},
		},
		{
			name: "empty identifier",
			desc: ActionTypeDescriptor{Type: "x"},
		},
		{
			name: "unknown permission",
			desc: ActionTypeDescriptor{Type: "x", Identifier: "x.y", RequiredPermission: "root"},
		},
		{
			name: "unknown parameter kind",
			desc: ActionTypeDescriptor{
				Type: "x", Identifier: "x.y",
				Parameters: []ParameterSpec{{Key: "p", Kind: "blob"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New([]ActionTypeDescriptor{tt.desc})
			var cfgErr *errors.ConfigError
			require.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestPermissionDefaultsToNone(t *testing.T) {
	r, err := New([]ActionTypeDescriptor{{Type: "x", Identifier: "a.b.x"}})
	require.NoError(t, err)

	d, ok := r.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, PermissionNone, d.RequiredPermission)
}

func TestAllByCategory(t *testing.T) {
	r, err := New(testDescriptors())
	require.NoError(t, err)

	flow := r.AllByCategory(CategoryControlFlow)
	require.Len(t, flow, 1)
	assert.Equal(t, "if", flow[0].Type)
	assert.True(t, flow[0].IsControlFlow())

	assert.Empty(t, r.AllByCategory(CategoryMedia))
}

func TestDescriptorParameter(t *testing.T) {
	r, err := New(testDescriptors())
	require.NoError(t, err)

	d, _ := r.Lookup("notification")
	spec := d.Parameter("sound")
	require.NotNil(t, spec)
	assert.Equal(t, KindBoolean, spec.Kind)
	assert.Equal(t, true, spec.Default)

	assert.Nil(t, d.Parameter("volume"))
}

func TestHandleSwap(t *testing.T) {
	first, err := New(testDescriptors())
	require.NoError(t, err)
	second, err := New(testDescriptors()[:1])
	require.NoError(t, err)

	h := NewHandle(first)
	assert.Same(t, first, h.Current())

	prev := h.Swap(second)
	assert.Same(t, first, prev)
	assert.Same(t, second, h.Current())
	assert.Equal(t, 1, h.Current().Len())
}
