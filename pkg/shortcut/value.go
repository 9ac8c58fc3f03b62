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

package shortcut

// Kind discriminates the variants a parameter value can hold.
type Kind int

// Parameter value kinds. Nested actions appear only as ActionList (loop
// bodies) or Branches (conditional then/else); there is no untyped bag.
const (
	KindInvalid Kind = iota
	KindString
	KindNumber
	KindBool
	KindActionList
	KindBranches
	KindOpaque
)

// String returns the kind name for error messages.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindActionList:
		return "action list"
	case KindBranches:
		return "branches"
	case KindOpaque:
		return "opaque"
	default:
		return "invalid"
	}
}

// Value is a tagged variant holding one parameter value. The zero Value has
// KindInvalid. Values are cheap to copy; the contained action lists share
// backing arrays, which is safe because validated trees are never mutated.
type Value struct {
	kind   Kind
	str    string
	num    float64
	b      bool
	list   []Action
	then   []Action
	els    []Action
	opaque any
}

// StringValue wraps a string.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// NumberValue wraps a number.
func NumberValue(n float64) Value { return Value{kind: KindNumber, num: n} }

// BoolValue wraps a bool.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// ActionListValue wraps a nested action list (a loop body).
func ActionListValue(actions []Action) Value {
	return Value{kind: KindActionList, list: actions}
}

// BranchesValue wraps a conditional's then/else branch pair.
func BranchesValue(then, els []Action) Value {
	return Value{kind: KindBranches, then: then, els: els}
}

// OpaqueValue wraps a structured value the pipeline passes through untouched.
func OpaqueValue(v any) Value { return Value{kind: KindOpaque, opaque: v} }

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// AsString returns the string variant.
func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

// AsNumber returns the number variant.
func (v Value) AsNumber() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// AsBool returns the bool variant.
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// AsActionList returns the nested action list variant.
func (v Value) AsActionList() ([]Action, bool) {
	return v.list, v.kind == KindActionList
}

// AsBranches returns the then/else branch pair variant.
func (v Value) AsBranches() (then, els []Action, ok bool) {
	return v.then, v.els, v.kind == KindBranches
}

// AsOpaque returns the opaque variant.
func (v Value) AsOpaque() (any, bool) {
	return v.opaque, v.kind == KindOpaque
}

// IsNested reports whether the value contains nested actions.
func (v Value) IsNested() bool {
	return v.kind == KindActionList || v.kind == KindBranches
}

// Raw returns the contained value as plain Go data. Nested action lists are
// returned as []Action; callers that need JSON shapes use MarshalJSON.
func (v Value) Raw() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	case KindActionList:
		return v.list
	case KindBranches:
		return [2][]Action{v.then, v.els}
	case KindOpaque:
		return v.opaque
	default:
		return nil
	}
}
