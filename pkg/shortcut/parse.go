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

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/tombee/baton/pkg/errors"
)

// Interchange shape accepted by Parse and re-emitted by MarshalJSON:
//
//	{"name": "...", "actions": [{"type": "...", "parameters": {...}}, ...]}
//
// Control-flow parameters use the keys "then"/"else" (conditional branches,
// folded into one Branches value internally) and "actions" (loop body).
// Parsing is token-level rather than map-based so parameter order survives
// the round trip.

// Parse decodes interchange JSON into an unvalidated Shortcut. Malformed
// input is reported as an explicit ParseError, never a panic. The result
// must be passed through the Validator before it is trusted.
func Parse(data []byte) (*Shortcut, *errors.ParseError) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	s, err := parseRoot(dec)
	if err != nil {
		if pe, ok := err.(*errors.ParseError); ok {
			return nil, pe
		}
		return nil, &errors.ParseError{
			Message: err.Error(),
			Offset:  dec.InputOffset(),
			Cause:   err,
		}
	}
	return s, nil
}

func parseRoot(dec *json.Decoder) (*Shortcut, error) {
	if err := expectDelim(dec, '{', "shortcut"); err != nil {
		return nil, err
	}

	s := &Shortcut{}
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		switch key {
		case "name":
			tok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			name, ok := tok.(string)
			if !ok {
				return nil, parseErrf(dec, "name must be a string, got %v", tok)
			}
			s.Name = name
		case "actions":
			actions, err := parseActionList(dec)
			if err != nil {
				return nil, err
			}
			s.Actions = actions
		default:
			// Unknown root keys are skipped; the validator owns shape
			// complaints so one pass reports everything.
			if _, err := readAny(dec); err != nil {
				return nil, err
			}
		}
	}
	_, err := dec.Token() // closing brace
	return s, err
}

func parseActionList(dec *json.Decoder) ([]Action, error) {
	if err := expectDelim(dec, '[', "actions"); err != nil {
		return nil, err
	}

	actions := []Action{}
	for dec.More() {
		a, err := parseAction(dec)
		if err != nil {
			return nil, err
		}
		actions = append(actions, *a)
	}
	_, err := dec.Token() // closing bracket
	return actions, err
}

func parseAction(dec *json.Decoder) (*Action, error) {
	if err := expectDelim(dec, '{', "action"); err != nil {
		return nil, err
	}

	a := &Action{}
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		switch key {
		case "type":
			tok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			t, ok := tok.(string)
			if !ok {
				return nil, parseErrf(dec, "action type must be a string, got %v", tok)
			}
			a.Type = t
		case "parameters":
			params, err := parseParameters(dec)
			if err != nil {
				return nil, err
			}
			a.Parameters = params
		default:
			if _, err := readAny(dec); err != nil {
				return nil, err
			}
		}
	}
	_, err := dec.Token()
	return a, err
}

func parseParameters(dec *json.Decoder) (Parameters, error) {
	if err := expectDelim(dec, '{', "parameters"); err != nil {
		return nil, err
	}

	var params Parameters
	var then, els []Action
	haveBranches := false

	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		switch key {
		case "then":
			then, err = parseActionList(dec)
			haveBranches = true
		case "else":
			els, err = parseActionList(dec)
			haveBranches = true
		case "actions":
			var body []Action
			body, err = parseActionList(dec)
			if err == nil {
				params.Set("actions", ActionListValue(body))
			}
		default:
			var v Value
			v, err = parseScalar(dec)
			if err == nil {
				params.Set(key, v)
			}
		}
		if err != nil {
			return nil, err
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	// The conditional's two branch lists are one tuple value in the IR.
	if haveBranches {
		params.Set("branches", BranchesValue(then, els))
	}
	return params, nil
}

// parseScalar reads one parameter value: strings, numbers, and booleans map
// to their tagged variants, anything structured stays opaque.
func parseScalar(dec *json.Decoder) (Value, error) {
	raw, err := readAny(dec)
	if err != nil {
		return Value{}, err
	}
	switch v := raw.(type) {
	case string:
		return StringValue(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return Value{}, parseErrf(dec, "invalid number %q", v.String())
		}
		return NumberValue(f), nil
	case bool:
		return BoolValue(v), nil
	default:
		return OpaqueValue(raw), nil
	}
}

// readAny consumes one JSON value of any shape from the decoder.
func readAny(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, parseErrf(dec, "unexpected end of input")
		}
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		m := map[string]any{}
		for dec.More() {
			key, err := readKey(dec)
			if err != nil {
				return nil, err
			}
			v, err := readAny(dec)
			if err != nil {
				return nil, err
			}
			m[key] = v
		}
		_, err := dec.Token()
		return m, err
	case '[':
		var list []any
		for dec.More() {
			v, err := readAny(dec)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		_, err := dec.Token()
		return list, err
	default:
		return nil, parseErrf(dec, "unexpected delimiter %q", delim.String())
	}
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", parseErrf(dec, "expected object key, got %v", tok)
	}
	return key, nil
}

func expectDelim(dec *json.Decoder, want json.Delim, context string) error {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return parseErrf(dec, "unexpected end of input, expected %s", context)
		}
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != want {
		return parseErrf(dec, "expected %q for %s, got %v", want.String(), context, tok)
	}
	return nil
}

func parseErrf(dec *json.Decoder, format string, args ...any) *errors.ParseError {
	return &errors.ParseError{
		Message: fmt.Sprintf(format, args...),
		Offset:  dec.InputOffset(),
	}
}

// MarshalJSON re-emits the interchange shape. A Parse/Marshal round trip of
// conforming input is a no-op up to whitespace.
func (s *Shortcut) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"name":`)
	if err := writeJSON(&buf, s.Name); err != nil {
		return nil, err
	}
	buf.WriteString(`,"actions":`)
	if err := writeActions(&buf, s.Actions); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON emits one action record.
func (a Action) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"type":`)
	if err := writeJSON(&buf, a.Type); err != nil {
		return nil, err
	}
	buf.WriteString(`,"parameters":`)
	if err := writeParameters(&buf, a.Parameters); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeActions(buf *bytes.Buffer, actions []Action) error {
	buf.WriteByte('[')
	for i, a := range actions {
		if i > 0 {
			buf.WriteByte(',')
		}
		data, err := a.MarshalJSON()
		if err != nil {
			return err
		}
		buf.Write(data)
	}
	buf.WriteByte(']')
	return nil
}

func writeParameters(buf *bytes.Buffer, params Parameters) error {
	buf.WriteByte('{')
	first := true
	comma := func() {
		if !first {
			buf.WriteByte(',')
		}
		first = false
	}

	for _, entry := range params {
		switch entry.Value.Kind() {
		case KindBranches:
			then, els, _ := entry.Value.AsBranches()
			comma()
			buf.WriteString(`"then":`)
			if err := writeActions(buf, then); err != nil {
				return err
			}
			if els != nil {
				buf.WriteString(`,"else":`)
				if err := writeActions(buf, els); err != nil {
					return err
				}
			}
		case KindActionList:
			list, _ := entry.Value.AsActionList()
			comma()
			if err := writeJSON(buf, entry.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeActions(buf, list); err != nil {
				return err
			}
		default:
			comma()
			if err := writeJSON(buf, entry.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeJSON(buf, entry.Value.Raw()); err != nil {
				return err
			}
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeJSON(buf *bytes.Buffer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}
