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
	"github.com/tombee/baton/pkg/registry"
	"github.com/tombee/baton/pkg/shortcut"
)

// ComponentKind classifies a structural component.
type ComponentKind string

// Component kinds.
const (
	ComponentSequence    ComponentKind = "sequence"
	ComponentConditional ComponentKind = "conditional"
	ComponentLoop        ComponentKind = "loop"
	ComponentInput       ComponentKind = "input"
	ComponentOutput      ComponentKind = "output"
)

// Fixed type sets for entry/exit point detection.
var (
	interactiveInputTypes = map[string]bool{"ask": true, "get_clipboard": true}
	userFacingOutputTypes = map[string]bool{"notification": true, "show_result": true, "speak": true}
)

// Component is one logical unit of the top-level action list.
type Component struct {
	// ID is the component's position in the decomposition
	ID int `json:"id"`

	// Kind classifies the component
	Kind ComponentKind `json:"kind"`

	// Actions are the member top-level action indexes
	Actions []int `json:"actions"`

	// Types are the member action types, in order
	Types []string `json:"types"`

	// Purpose is the inferred role of the component
	Purpose string `json:"purpose"`

	// Reusable is set when the component consumes no data produced
	// outside itself
	Reusable bool `json:"reusable"`
}

// DataFlow is one inter-component data-flow edge.
type DataFlow struct {
	// From/To are component IDs
	From int `json:"from"`
	To   int `json:"to"`

	// Token is the placeholder name that links them
	Token string `json:"token"`
}

// decompose splits the top-level list into components with a single linear
// scan: maximal runs of non-control-flow actions become sequences (or
// input/output components when dominated by those types), each control-flow
// action becomes its own conditional/loop component. Inter-component edges
// come from the dependency graph; nested actions belong to their top-level
// ancestor's component.
func decompose(reg *registry.Registry, actions []shortcut.Action, flat []flatAction, edges []edge) ([]Component, []DataFlow) {
	var components []Component
	topToComponent := make(map[int]int)

	addComponent := func(kind ComponentKind, members []int) {
		c := Component{ID: len(components), Kind: kind, Actions: members}
		for _, m := range members {
			c.Types = append(c.Types, actions[m].Type)
			topToComponent[m] = c.ID
		}
		c.Kind = refineKind(c)
		c.Purpose = inferPurpose(reg, c)
		components = append(components, c)
	}

	var run []int
	flush := func() {
		if len(run) > 0 {
			addComponent(ComponentSequence, run)
			run = nil
		}
	}

	for i := range actions {
		if isControlFlow(&actions[i]) {
			flush()
			kind := ComponentLoop
			if isConditional(&actions[i]) {
				kind = ComponentConditional
			}
			addComponent(kind, []int{i})
			continue
		}
		run = append(run, i)
	}
	flush()

	flows := componentFlows(flat, edges, topToComponent)
	markReusable(components, flows)
	return components, flows
}

// isControlFlow reports whether the action nests other actions.
func isControlFlow(a *shortcut.Action) bool {
	return len(a.NestedLists()) > 0
}

// refineKind upgrades a sequence dominated by interactive input or
// user-facing output types.
func refineKind(c Component) ComponentKind {
	if c.Kind != ComponentSequence {
		return c.Kind
	}
	inputs, outputs := 0, 0
	for _, t := range c.Types {
		switch {
		case interactiveInputTypes[t]:
			inputs++
		case userFacingOutputTypes[t]:
			outputs++
		}
	}
	switch {
	case inputs > 0 && inputs >= len(c.Types)-inputs:
		return ComponentInput
	case outputs > 0 && outputs >= len(c.Types)-outputs:
		return ComponentOutput
	default:
		return ComponentSequence
	}
}

// inferPurpose derives a short description from the component's kind and
// dominant category.
func inferPurpose(reg *registry.Registry, c Component) string {
	switch c.Kind {
	case ComponentConditional:
		return "branch on a condition"
	case ComponentLoop:
		return "repeat a group of actions"
	case ComponentInput:
		return "collect input from the user"
	case ComponentOutput:
		return "present results to the user"
	}

	counts := make(map[registry.Category]int)
	var best registry.Category
	for _, t := range c.Types {
		if desc, ok := reg.Lookup(t); ok {
			counts[desc.Category]++
			if counts[desc.Category] > counts[best] {
				best = desc.Category
			}
		}
	}
	switch best {
	case registry.CategoryNetwork:
		return "fetch remote data"
	case registry.CategoryVariables:
		return "manage shortcut variables"
	case registry.CategoryMedia:
		return "play or speak media"
	case registry.CategoryLocation:
		return "work with device location"
	default:
		return "process data"
	}
}

// componentFlows lifts action-level dependency edges to component level,
// de-duplicating repeated (from, to, token) triples.
func componentFlows(flat []flatAction, edges []edge, topToComponent map[int]int) []DataFlow {
	seen := make(map[DataFlow]bool)
	var flows []DataFlow
	for _, e := range edges {
		from, okFrom := topToComponent[flat[e.producer].topIndex]
		to, okTo := topToComponent[flat[e.consumer].topIndex]
		if !okFrom || !okTo || from == to {
			continue
		}
		f := DataFlow{From: from, To: to, Token: e.token}
		if !seen[f] {
			seen[f] = true
			flows = append(flows, f)
		}
	}
	return flows
}

// markReusable clears the flag on components that consume external data.
func markReusable(components []Component, flows []DataFlow) {
	consumes := make(map[int]bool)
	for _, f := range flows {
		consumes[f.To] = true
	}
	for i := range components {
		components[i].Reusable = !consumes[components[i].ID]
	}
}

// findEndpoints locates interactive-input and user-facing-output actions
// across the whole tree.
func findEndpoints(flat []flatAction) (entries, exits []ActionRef) {
	for _, fa := range flat {
		ref := ActionRef{Index: fa.index, Type: fa.action.Type}
		switch {
		case interactiveInputTypes[fa.action.Type]:
			entries = append(entries, ref)
		case userFacingOutputTypes[fa.action.Type]:
			exits = append(exits, ref)
		}
	}
	return entries, exits
}
