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

// Package analysis computes static reports over validated shortcut trees:
// action-frequency patterns, a best-effort dependency graph, a complexity
// score, a security report, and a structural decomposition into components.
package analysis

import (
	"github.com/tombee/baton/pkg/registry"
	"github.com/tombee/baton/pkg/shortcut"
)

// Analyzer runs the static analysis passes against a registry snapshot.
// Analyzers are stateless and safe for concurrent use.
type Analyzer struct {
	registry *registry.Registry
}

// NewAnalyzer creates an Analyzer bound to the given registry snapshot.
func NewAnalyzer(reg *registry.Registry) *Analyzer {
	return &Analyzer{registry: reg}
}

// Report is the combined output of all analysis passes.
type Report struct {
	// Name is the analyzed shortcut's name
	Name string `json:"name"`

	// ActionCount is the total number of actions, nested branches included
	ActionCount int `json:"action_count"`

	// Patterns lists per-type frequency and sibling context
	Patterns []Pattern `json:"patterns,omitempty"`

	// Suggestions lists optimization hints derived from the patterns
	Suggestions []string `json:"suggestions,omitempty"`

	// Dependencies is the placeholder-derived dependency graph, one node
	// per action in document order
	Dependencies []DependencyNode `json:"dependencies,omitempty"`

	// Complexity is the weighted complexity score
	Complexity Complexity `json:"complexity"`

	// Security lists per-action risk findings
	Security []SecurityFinding `json:"security,omitempty"`

	// Components is the structural decomposition of the top-level list
	Components []Component `json:"components,omitempty"`

	// DataFlows lists inter-component data-flow edges
	DataFlows []DataFlow `json:"data_flows,omitempty"`

	// EntryPoints are interactive-input actions
	EntryPoints []ActionRef `json:"entry_points,omitempty"`

	// ExitPoints are user-facing-output actions
	ExitPoints []ActionRef `json:"exit_points,omitempty"`
}

// ActionRef identifies one action instance by document-order index.
type ActionRef struct {
	Index int    `json:"index"`
	Type  string `json:"type"`
}

// Analyze runs every pass in one composed traversal over a validated tree.
// The input is only read; Analyze never mutates it.
func (a *Analyzer) Analyze(s *shortcut.Shortcut) *Report {
	flat := flatten(s.Actions)

	report := &Report{
		Name:        s.Name,
		ActionCount: len(flat),
	}

	report.Patterns, report.Suggestions = detectPatterns(flat)
	edges := buildDependencies(a.registry, flat)
	report.Dependencies = dependencyNodes(flat, edges)
	report.Complexity = scoreComplexity(s.Actions, len(flat), edges)
	report.Security = a.scanSecurity(flat)
	report.Components, report.DataFlows = decompose(a.registry, s.Actions, flat, edges)
	report.EntryPoints, report.ExitPoints = findEndpoints(flat)

	return report
}

// flatAction is one action instance in document (pre-order) position,
// annotated with enough context for the sub-passes to share a single scan.
type flatAction struct {
	// index is the document-order position across the whole tree
	index int

	// topIndex is the index of the top-level ancestor action
	topIndex int

	// depth is the control-flow nesting depth (0 at top level)
	depth int

	// prev/next are the immediate sibling types ("" at list edges)
	prev, next string

	action *shortcut.Action
}

// flatten walks the tree pre-order, descending into loop bodies and both
// conditional branches.
func flatten(actions []shortcut.Action) []flatAction {
	var out []flatAction

	var walk func(list []shortcut.Action, topIndex, depth int)
	walk = func(list []shortcut.Action, topIndex, depth int) {
		for i := range list {
			action := &list[i]
			top := topIndex
			if depth == 0 {
				top = i
			}
			fa := flatAction{
				index:    len(out),
				topIndex: top,
				depth:    depth,
				action:   action,
			}
			if i > 0 {
				fa.prev = list[i-1].Type
			}
			if i < len(list)-1 {
				fa.next = list[i+1].Type
			}
			out = append(out, fa)

			for _, nested := range action.NestedLists() {
				walk(nested.Actions, top, depth+1)
			}
		}
	}
	walk(actions, 0, 0)
	return out
}

// stringParams yields the plain string parameter values of an action.
func stringParams(a *shortcut.Action) []string {
	var out []string
	for _, entry := range a.Parameters {
		if s, ok := entry.Value.AsString(); ok {
			out = append(out, s)
		}
	}
	return out
}
