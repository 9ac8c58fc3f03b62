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
)

func TestInfer(t *testing.T) {
	tests := []struct {
		name           string
		identifier     string
		wantType       string
		wantCategory   Category
		wantPermission Permission
		wantConfidence Confidence
	}{
		{
			name:           "platform namespace with known fragment",
			identifier:     "is.workflow.actions.shownotification",
			wantType:       "shownotification",
			wantCategory:   CategoryNotifications,
			wantPermission: PermissionNotifications,
			wantConfidence: ConfidenceHigh,
		},
		{
			name:           "foreign namespace with known fragment",
			identifier:     "com.example.getlocation",
			wantType:       "getlocation",
			wantCategory:   CategoryLocation,
			wantPermission: PermissionLocation,
			wantConfidence: ConfidenceMedium,
		},
		{
			name:           "clipboard fragment",
			identifier:     "com.example.readclipboard",
			wantType:       "readclipboard",
			wantCategory:   CategorySharing,
			wantPermission: PermissionClipboard,
			wantConfidence: ConfidenceMedium,
		},
		{
			name:           "nothing matches",
			identifier:     "com.example.frobnicate",
			wantType:       "frobnicate",
			wantCategory:   CategoryScripting,
			wantPermission: PermissionNone,
			wantConfidence: ConfidenceLow,
		},
		{
			name:           "no namespace at all",
			identifier:     "mystery",
			wantType:       "mystery",
			wantCategory:   CategoryScripting,
			wantPermission: PermissionNone,
			wantConfidence: ConfidenceLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inf := Infer(tt.identifier)
			assert.Equal(t, tt.wantType, inf.Descriptor.Type)
			assert.Equal(t, tt.wantCategory, inf.Descriptor.Category)
			assert.Equal(t, tt.wantPermission, inf.Descriptor.RequiredPermission)
			assert.Equal(t, tt.wantConfidence, inf.Confidence)
		})
	}
}

func TestDisplayNameFor(t *testing.T) {
	assert.Equal(t, "Get Url Contents", displayNameFor("get_url_contents"))
	assert.Equal(t, "Notification", displayNameFor("notification"))
}
