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
	"sort"
)

// repeatThreshold is the frequency above which a repeated action type earns
// an optimization suggestion.
const repeatThreshold = 3

// Pattern is the usage profile of one action type.
type Pattern struct {
	// Type is the action type
	Type string `json:"type"`

	// Count is how many times the type occurs in the whole tree
	Count int `json:"count"`

	// Contexts lists "<prev> -> <type> -> <next>" strings built from
	// immediate siblings; "start"/"end" mark list edges
	Contexts []string `json:"contexts,omitempty"`
}

// detectPatterns counts per-type frequency and records sibling context.
// Types occurring more than repeatThreshold times yield a repeatability
// suggestion.
func detectPatterns(flat []flatAction) ([]Pattern, []string) {
	byType := make(map[string]*Pattern)
	var order []string

	for _, fa := range flat {
		p, ok := byType[fa.action.Type]
		if !ok {
			p = &Pattern{Type: fa.action.Type}
			byType[fa.action.Type] = p
			order = append(order, fa.action.Type)
		}
		p.Count++
		p.Contexts = append(p.Contexts, contextString(fa))
	}

	patterns := make([]Pattern, 0, len(order))
	for _, t := range order {
		patterns = append(patterns, *byType[t])
	}
	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].Count > patterns[j].Count
	})

	var suggestions []string
	for _, p := range patterns {
		if p.Count > repeatThreshold {
			suggestions = append(suggestions, fmt.Sprintf(
				"action %q appears %d times; consider a repeat loop or a reusable sub-shortcut",
				p.Type, p.Count))
		}
	}
	return patterns, suggestions
}

func contextString(fa flatAction) string {
	prev, next := fa.prev, fa.next
	if prev == "" {
		prev = "start"
	}
	if next == "" {
		next = "end"
	}
	return fmt.Sprintf("%s -> %s -> %s", prev, fa.action.Type, next)
}
