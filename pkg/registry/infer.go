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
	"strings"
)

// Confidence grades how trustworthy an inference result is. Inference is an
// explicitly lowest-priority fallback: a direct registry lookup always wins,
// and callers must surface the confidence tier rather than treat inferred
// metadata as authoritative.
type Confidence string

const (
	// ConfidenceHigh means the identifier matched a well-known namespace pattern.
	ConfidenceHigh Confidence = "high"
	// ConfidenceMedium means a substring heuristic matched.
	ConfidenceMedium Confidence = "medium"
	// ConfidenceLow means nothing matched and defaults were assumed.
	ConfidenceLow Confidence = "low"
)

// Inference is a best-effort descriptor for an identifier the registry does
// not know, produced by substring heuristics on the identifier itself.
type Inference struct {
	Descriptor ActionTypeDescriptor
	Confidence Confidence
}

// substringRule maps an identifier fragment to inferred metadata.
type substringRule struct {
	fragment   string
	category   Category
	permission Permission
	produces   []ValueKind
}

// Heuristic order matters: earlier rules are more specific.
var inferenceRules = []substringRule{
	{"notification", CategoryNotifications, PermissionNotifications, nil},
	{"location", CategoryLocation, PermissionLocation, []ValueKind{KindLocation}},
	{"weather", CategoryLocation, PermissionLocation, []ValueKind{KindDictionary}},
	{"clipboard", CategorySharing, PermissionClipboard, []ValueKind{KindText}},
	{"message", CategoryMessaging, PermissionMessaging, nil},
	{"mail", CategoryMessaging, PermissionMessaging, nil},
	{"url", CategoryNetwork, PermissionNetwork, []ValueKind{KindText}},
	{"download", CategoryNetwork, PermissionNetwork, []ValueKind{KindFile}},
	{"http", CategoryNetwork, PermissionNetwork, []ValueKind{KindText}},
	{"file", CategoryScripting, PermissionFilesystem, []ValueKind{KindFile}},
	{"document", CategoryScripting, PermissionFilesystem, []ValueKind{KindFile}},
	{"sound", CategoryMedia, PermissionMedia, nil},
	{"speak", CategoryMedia, PermissionMedia, nil},
	{"music", CategoryMedia, PermissionMedia, nil},
	{"vibrate", CategoryDevice, PermissionDevice, nil},
	{"flashlight", CategoryDevice, PermissionDevice, nil},
	{"variable", CategoryVariables, PermissionNone, []ValueKind{KindAny}},
	{"text", CategoryText, PermissionNone, []ValueKind{KindText}},
	{"conditional", CategoryControlFlow, PermissionNone, nil},
	{"repeat", CategoryControlFlow, PermissionNone, nil},
}

// Infer builds a best-effort descriptor for an external identifier that is
// not in the registry. The internal type is the last namespace segment;
// category and permission come from substring heuristics. Never returns nil.
func Infer(identifier string) *Inference {
	inf := &Inference{
		Descriptor: ActionTypeDescriptor{
			Type:               lastSegment(identifier),
			Identifier:         identifier,
			DisplayName:        displayNameFor(lastSegment(identifier)),
			Category:           CategoryScripting,
			RequiredPermission: PermissionNone,
			AcceptedKinds:      []ValueKind{KindAny},
			ProducedKinds:      []ValueKind{KindAny},
		},
		Confidence: ConfidenceLow,
	}

	lower := strings.ToLower(identifier)
	for _, rule := range inferenceRules {
		if strings.Contains(lower, rule.fragment) {
			inf.Descriptor.Category = rule.category
			inf.Descriptor.RequiredPermission = rule.permission
			if rule.produces != nil {
				inf.Descriptor.ProducedKinds = rule.produces
			}
			inf.Confidence = ConfidenceMedium
			break
		}
	}

	// The platform's own namespace is a strong signal even when no substring
	// rule matched the action name itself.
	if inf.Confidence == ConfidenceMedium && strings.HasPrefix(lower, "is.workflow.actions.") {
		inf.Confidence = ConfidenceHigh
	}

	return inf
}

// lastSegment returns the final dot-separated segment of an identifier.
func lastSegment(identifier string) string {
	if i := strings.LastIndex(identifier, "."); i >= 0 && i < len(identifier)-1 {
		return identifier[i+1:]
	}
	return identifier
}

// displayNameFor derives a readable name from an internal type.
func displayNameFor(actionType string) string {
	words := strings.FieldsFunc(actionType, func(r rune) bool {
		return r == '_' || r == '-'
	})
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
