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
	"regexp"
	"strings"

	"github.com/tombee/baton/pkg/registry"
	"github.com/tombee/baton/pkg/shortcut"
)

// placeholderPattern matches {name}-style references inside parameter values.
var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// edge is one producer-to-consumer data dependency inferred from a
// placeholder token. This is best-effort string matching, not type-checked
// data flow.
type edge struct {
	producer int
	consumer int
	token    string
}

// DependencyNode describes one action's inferred data dependencies.
type DependencyNode struct {
	// Index is the action's document-order position
	Index int `json:"index"`

	// Type is the action type
	Type string `json:"type"`

	// Dependencies are prior actions whose output this action consumes
	Dependencies []Dependency `json:"dependencies,omitempty"`

	// Dependents are the types of later actions consuming this output
	Dependents []string `json:"dependents,omitempty"`
}

// Dependency names one producing action and the token that links it.
type Dependency struct {
	Index int    `json:"index"`
	Type  string `json:"type"`
	Token string `json:"token"`
}

// buildDependencies scans every action's string parameters for placeholder
// tokens and resolves each token to the nearest preceding producer.
func buildDependencies(reg *registry.Registry, flat []flatAction) []edge {
	var edges []edge
	for i := range flat {
		for _, token := range collectTokens(flat[i].action) {
			if p := nearestProducer(reg, flat, i, token); p >= 0 {
				edges = append(edges, edge{producer: p, consumer: i, token: token})
			}
		}
	}
	return edges
}

// collectTokens returns the distinct placeholder tokens referenced by an
// action, in first-occurrence order.
func collectTokens(a *shortcut.Action) []string {
	seen := make(map[string]bool)
	var tokens []string
	for _, s := range stringParams(a) {
		for _, m := range placeholderPattern.FindAllStringSubmatch(s, -1) {
			if !seen[m[1]] {
				seen[m[1]] = true
				tokens = append(tokens, m[1])
			}
		}
	}
	return tokens
}

// nearestProducer finds the closest action before consumer whose output
// plausibly produces the token. Heuristics, in order of trust: an ask whose
// prompt mentions the token name, a text literal containing it, a
// location-producing action for tokens that mention "location", and a
// set_variable with a matching variable name.
func nearestProducer(reg *registry.Registry, flat []flatAction, consumer int, token string) int {
	lowerToken := strings.ToLower(token)
	for i := consumer - 1; i >= 0; i-- {
		a := flat[i].action
		switch a.Type {
		case "ask":
			if containsWord(a.Parameters.GetString("prompt"), lowerToken) {
				return i
			}
		case "text":
			if strings.Contains(strings.ToLower(a.Parameters.GetString("text")), lowerToken) {
				return i
			}
		case "set_variable":
			if strings.EqualFold(a.Parameters.GetString("name"), token) {
				return i
			}
		default:
			if strings.Contains(lowerToken, "location") && producesLocation(reg, a.Type) {
				return i
			}
		}
	}
	return -1
}

func producesLocation(reg *registry.Registry, actionType string) bool {
	if desc, ok := reg.Lookup(actionType); ok {
		return desc.Produces(registry.KindLocation)
	}
	return false
}

// containsWord reports whether text contains token as a lowercase substring
// of one of its words.
func containsWord(text, lowerToken string) bool {
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if strings.Contains(strings.Trim(word, ".,!?:;\"'"), lowerToken) {
			return true
		}
	}
	return false
}

// dependencyNodes folds the edge list into per-action nodes.
func dependencyNodes(flat []flatAction, edges []edge) []DependencyNode {
	nodes := make([]DependencyNode, len(flat))
	for i, fa := range flat {
		nodes[i] = DependencyNode{Index: i, Type: fa.action.Type}
	}
	for _, e := range edges {
		nodes[e.consumer].Dependencies = append(nodes[e.consumer].Dependencies, Dependency{
			Index: e.producer,
			Type:  flat[e.producer].action.Type,
			Token: e.token,
		})
		nodes[e.producer].Dependents = append(nodes[e.producer].Dependents, flat[e.consumer].action.Type)
	}
	return nodes
}
