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
	"fmt"
	"strings"

	"github.com/tombee/baton/pkg/registry"
	"github.com/tombee/baton/pkg/shortcut"
)

// Risk grades the severity of a security finding.
type Risk string

// Risk levels.
const (
	RiskHigh   Risk = "high"
	RiskMedium Risk = "medium"
	RiskLow    Risk = "low"
)

// SecurityFinding is one per-action risk classification.
type SecurityFinding struct {
	// ActionIndex is the action's document-order position
	ActionIndex int `json:"action_index"`

	// ActionType is the action type
	ActionType string `json:"action_type"`

	// Risk grades the severity
	Risk Risk `json:"risk"`

	// Message describes the concern
	Message string `json:"message"`

	// Mitigation suggests how to address it
	Mitigation string `json:"mitigation"`

	// Weakness is the CWE-style weakness category tag
	Weakness string `json:"weakness"`

	// Confidence is set when the classification came from heuristic
	// inference rather than a registry entry
	Confidence registry.Confidence `json:"confidence,omitempty"`
}

// scanSecurity classifies each action's risk. Classification prefers
// registry metadata; unknown types fall back to identifier inference with
// an explicit confidence tier so heuristic results stay observable.
func (a *Analyzer) scanSecurity(flat []flatAction) []SecurityFinding {
	var findings []SecurityFinding
	for _, fa := range flat {
		desc, confidence := a.describe(fa.action.Type)
		if f := classify(fa, desc); f != nil {
			f.Confidence = confidence
			findings = append(findings, *f)
		}
	}
	return findings
}

// describe resolves an action type, falling back to inference.
func (a *Analyzer) describe(actionType string) (*registry.ActionTypeDescriptor, registry.Confidence) {
	if desc, ok := a.registry.Lookup(actionType); ok {
		return desc, ""
	}
	inf := registry.Infer(actionType)
	return &inf.Descriptor, inf.Confidence
}

func classify(fa flatAction, desc *registry.ActionTypeDescriptor) *SecurityFinding {
	finding := func(risk Risk, message, mitigation, weakness string) *SecurityFinding {
		return &SecurityFinding{
			ActionIndex: fa.index,
			ActionType:  fa.action.Type,
			Risk:        risk,
			Message:     message,
			Mitigation:  mitigation,
			Weakness:    weakness,
		}
	}

	switch {
	case desc.Category == registry.CategoryNetwork:
		if url := insecureURL(fa.action); url != "" {
			return finding(RiskHigh,
				fmt.Sprintf("network request to %q uses cleartext HTTP", url),
				"use an https:// URL so the request cannot be read or altered in transit",
				"CWE-319")
		}
		if desc.RequiredPermission == registry.PermissionNetwork {
			return finding(RiskLow,
				"action performs network requests",
				"confirm the destination host is trusted",
				"CWE-918")
		}

	case desc.RequiredPermission == registry.PermissionFilesystem:
		return finding(RiskMedium,
			"action writes to the filesystem",
			"pin the destination path and avoid overwriting existing files",
			"CWE-73")

	case desc.Category == registry.CategoryNotifications:
		if param := dynamicContentParam(fa.action); param != "" {
			return finding(RiskMedium,
				fmt.Sprintf("notification %s interpolates dynamic content", param),
				"sanitize placeholder values before showing them to the user",
				"CWE-74")
		}

	case desc.RequiredPermission == registry.PermissionLocation:
		return finding(RiskMedium,
			"action reads device location",
			"request location only when the shortcut genuinely needs it",
			"CWE-359")

	case desc.Category == registry.CategoryMessaging:
		if param := dynamicContentParam(fa.action); param != "" {
			return finding(RiskMedium,
				fmt.Sprintf("outgoing message %s interpolates dynamic content", param),
				"review interpolated values before sending on the user's behalf",
				"CWE-74")
		}
		return finding(RiskLow,
			"action sends messages on the user's behalf",
			"confirm the recipient is intended",
			"CWE-284")
	}

	return nil
}

// insecureURL returns the first http:// URL parameter value, if any.
func insecureURL(a *shortcut.Action) string {
	for _, s := range stringParams(a) {
		if strings.HasPrefix(strings.ToLower(s), "http://") {
			return s
		}
	}
	return ""
}

// dynamicContentParam returns the key of the first string parameter
// containing a placeholder token.
func dynamicContentParam(a *shortcut.Action) string {
	for _, entry := range a.Parameters {
		if s, ok := entry.Value.AsString(); ok && placeholderPattern.MatchString(s) {
			return entry.Key
		}
	}
	return ""
}
