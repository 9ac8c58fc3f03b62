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

// Package registry provides the immutable action-type registry: a load-once
// lookup from internal action type (or external namespaced identifier) to
// the metadata the validator, analyzer, compiler, and decompiler depend on.
package registry

// ValueKind classifies the values an action accepts or produces.
type ValueKind string

// Value kinds understood by the target platform.
const (
	KindText       ValueKind = "text"
	KindNumber     ValueKind = "number"
	KindBoolean    ValueKind = "boolean"
	KindURL        ValueKind = "url"
	KindFile       ValueKind = "file"
	KindImage      ValueKind = "image"
	KindLocation   ValueKind = "location"
	KindDate       ValueKind = "date"
	KindDictionary ValueKind = "dictionary"
	KindActionList ValueKind = "action_list"
	KindAny        ValueKind = "any"
)

// validValueKinds is the set accepted by the registry loader.
var validValueKinds = map[ValueKind]bool{
	KindText: true, KindNumber: true, KindBoolean: true, KindURL: true,
	KindFile: true, KindImage: true, KindLocation: true, KindDate: true,
	KindDictionary: true, KindActionList: true, KindAny: true,
}

// Permission identifies an OS-level capability an action needs at run time.
type Permission string

// Permissions aggregated by the validator across a whole shortcut.
const (
	PermissionNone          Permission = "none"
	PermissionNotifications Permission = "notifications"
	PermissionNetwork       Permission = "network"
	PermissionLocation      Permission = "location"
	PermissionClipboard     Permission = "clipboard"
	PermissionFilesystem    Permission = "filesystem"
	PermissionMessaging     Permission = "messaging"
	PermissionMedia         Permission = "media"
	PermissionDevice        Permission = "device"
)

var validPermissions = map[Permission]bool{
	PermissionNone: true, PermissionNotifications: true, PermissionNetwork: true,
	PermissionLocation: true, PermissionClipboard: true, PermissionFilesystem: true,
	PermissionMessaging: true, PermissionMedia: true, PermissionDevice: true,
}

// Category groups related action types for browsing and suggestions.
type Category string

// Action categories.
const (
	CategoryScripting     Category = "scripting"
	CategoryText          Category = "text"
	CategoryNotifications Category = "notifications"
	CategoryNetwork       Category = "network"
	CategoryDevice        Category = "device"
	CategoryLocation      Category = "location"
	CategoryMedia         Category = "media"
	CategoryVariables     Category = "variables"
	CategoryMessaging     Category = "messaging"
	CategoryControlFlow   Category = "control_flow"
	CategorySharing       Category = "sharing"
)

// ParameterSpec describes one parameter in an action's schema.
// The order of specs in a descriptor is the canonical parameter order.
type ParameterSpec struct {
	// Key is the internal parameter name (e.g., "title")
	Key string `yaml:"key"`

	// Kind is the value kind expected for this parameter
	Kind ValueKind `yaml:"kind"`

	// Required indicates the validator must reject actions missing this key
	Required bool `yaml:"required"`

	// Default is substituted when an optional parameter is absent (may be nil)
	Default any `yaml:"default"`
}

// ActionTypeDescriptor is one registry entry. Descriptors are immutable
// once loaded; callers must never mutate a descriptor returned by Lookup.
type ActionTypeDescriptor struct {
	// Type is the internal action type name (e.g., "notification")
	Type string `yaml:"type"`

	// Identifier is the stable external namespaced identifier
	// (e.g., "is.workflow.actions.notification")
	Identifier string `yaml:"identifier"`

	// DisplayName is the human-readable action name
	DisplayName string `yaml:"display_name"`

	// Category groups this action for browsing and alternative suggestions
	Category Category `yaml:"category"`

	// Parameters is the ordered parameter schema
	Parameters []ParameterSpec `yaml:"parameters"`

	// RequiredPermission is the OS capability needed to run this action
	RequiredPermission Permission `yaml:"permission"`

	// AcceptedKinds are the value kinds this action consumes as input
	AcceptedKinds []ValueKind `yaml:"accepts"`

	// ProducedKinds are the value kinds this action emits as output
	ProducedKinds []ValueKind `yaml:"produces"`
}

// Parameter returns the schema entry for the given key, or nil if the schema has no
// such parameter.
func (d *ActionTypeDescriptor) Parameter(key string) *ParameterSpec {
	for i := range d.Parameters {
		if d.Parameters[i].Key == key {
			return &d.Parameters[i]
		}
	}
	return nil
}

// IsControlFlow reports whether this action nests other actions
// (conditional branches or a loop body).
func (d *ActionTypeDescriptor) IsControlFlow() bool {
	return d.Category == CategoryControlFlow
}

// Produces reports whether the action emits the given value kind.
func (d *ActionTypeDescriptor) Produces(kind ValueKind) bool {
	for _, k := range d.ProducedKinds {
		if k == kind {
			return true
		}
	}
	return false
}
