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

	"github.com/tombee/baton/pkg/shortcut"
)

// Complexity weights. The score is a blend of size, nesting, branching, and
// data-flow coupling.
const (
	weightActions     = 0.2
	weightNesting     = 0.3
	weightConditional = 0.3
	weightDataFlow    = 0.2
)

// Complexity is the weighted complexity breakdown of a shortcut.
type Complexity struct {
	// ActionCount is the total action count, nested branches included
	ActionCount int `json:"action_count"`

	// NestingDepth is the maximum control-flow nesting depth
	NestingDepth int `json:"nesting_depth"`

	// ConditionalComplexity counts conditional actions, recursively
	ConditionalComplexity int `json:"conditional_complexity"`

	// DataFlowComplexity counts distinct placeholder tokens that flow
	// between actions
	DataFlowComplexity int `json:"data_flow_complexity"`

	// Score is the weighted blend of the four dimensions
	Score float64 `json:"score"`
}

// Level buckets the score for human consumption.
func (c Complexity) Level() string {
	switch {
	case c.Score >= 10:
		return "high"
	case c.Score >= 4:
		return "medium"
	default:
		return "low"
	}
}

// String renders the breakdown for logs and text output.
func (c Complexity) String() string {
	return fmt.Sprintf("score %.1f (%s): %d actions, depth %d, %d conditionals, %d data flows",
		c.Score, c.Level(), c.ActionCount, c.NestingDepth, c.ConditionalComplexity, c.DataFlowComplexity)
}

// scoreComplexity computes the weighted score. Nesting depth takes the max
// over conditional branches and loop bodies, not the sum, so depth grows
// monotonically with structural nesting.
func scoreComplexity(actions []shortcut.Action, actionCount int, edges []edge) Complexity {
	c := Complexity{
		ActionCount:           actionCount,
		NestingDepth:          nestingDepth(actions),
		ConditionalComplexity: countConditionals(actions),
		DataFlowComplexity:    distinctFlowTokens(edges),
	}
	c.Score = weightActions*float64(c.ActionCount) +
		weightNesting*float64(c.NestingDepth) +
		weightConditional*float64(c.ConditionalComplexity) +
		weightDataFlow*float64(c.DataFlowComplexity)
	return c
}

// nestingDepth returns the maximum control-flow depth of the list: a flat
// list scores 0, one loop or conditional scores 1, and so on.
func nestingDepth(actions []shortcut.Action) int {
	max := 0
	for i := range actions {
		for _, nested := range actions[i].NestedLists() {
			if d := 1 + nestingDepth(nested.Actions); d > max {
				max = d
			}
		}
	}
	return max
}

// countConditionals counts conditional actions, descending into every
// nested branch.
func countConditionals(actions []shortcut.Action) int {
	count := 0
	for i := range actions {
		if isConditional(&actions[i]) {
			count++
		}
		for _, nested := range actions[i].NestedLists() {
			count += countConditionals(nested.Actions)
		}
	}
	return count
}

// isConditional reports whether the action carries a then/else branch pair.
func isConditional(a *shortcut.Action) bool {
	for _, entry := range a.Parameters {
		if entry.Value.Kind() == shortcut.KindBranches {
			return true
		}
	}
	return false
}

// distinctFlowTokens counts the distinct tokens carried by dependency edges.
func distinctFlowTokens(edges []edge) int {
	seen := make(map[string]bool)
	for _, e := range edges {
		seen[e.token] = true
	}
	return len(seen)
}
