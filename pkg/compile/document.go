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

// Package compile converts between the shortcut tree form and the flat
// action-record document that the target runner consumes, and converts back.
package compile

import (
	"bytes"
	"encoding/json"

	"github.com/tombee/baton/pkg/errors"
)

// Client version constants stamped into every compiled document.
const (
	ClientVersion        = "900"
	MinimumClientVersion = 900
)

// Default icon fields for compiled documents.
const (
	DefaultIconStartColor  = 431817727
	DefaultIconGlyphNumber = 59511
)

// Document is the flat target representation: a name, presentation
// metadata, and an ordered list of action records.
type Document struct {
	Name                 string   `json:"WFWorkflowName"`
	ClientVersion        string   `json:"WFWorkflowClientVersion"`
	MinimumClientVersion int      `json:"WFWorkflowMinimumClientVersion"`
	Icon                 Icon     `json:"WFWorkflowIcon"`
	Actions              []Record `json:"WFWorkflowActions"`
}

// Icon carries the document's presentation metadata.
type Icon struct {
	StartColor  int64 `json:"WFWorkflowIconStartColor"`
	GlyphNumber int64 `json:"WFWorkflowIconGlyphNumber"`
}

// Record is one flat action: a reverse-DNS identifier plus a free-form
// parameter dictionary. Structural keys (UUID, GroupingIdentifier,
// WFControlFlowMode) live inside Parameters alongside the mapped values.
type Record struct {
	Identifier string         `json:"WFWorkflowActionIdentifier"`
	Parameters map[string]any `json:"WFWorkflowActionParameters"`
}

// Structural parameter keys managed by the compiler rather than mapped from
// tree parameters.
const (
	keyUUID               = "UUID"
	keyGroupingIdentifier = "GroupingIdentifier"
	keyControlFlowMode    = "WFControlFlowMode"
)

// Control flow modes used on flattened control-flow records.
const (
	controlFlowBegin = 0
)

// newDocument returns a Document with version and icon defaults applied.
func newDocument(name string) *Document {
	return &Document{
		Name:                 name,
		ClientVersion:        ClientVersion,
		MinimumClientVersion: MinimumClientVersion,
		Icon: Icon{
			StartColor:  DefaultIconStartColor,
			GlyphNumber: DefaultIconGlyphNumber,
		},
	}
}

// Marshal renders the document as indented JSON. Parameter dictionaries
// serialize with sorted keys, so output is deterministic.
func (d *Document) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseDocument decodes a flat document from JSON.
func ParseDocument(data []byte) (*Document, *errors.ParseError) {
	var doc Document
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, &errors.ParseError{
			Message: "invalid document: " + err.Error(),
			Offset:  dec.InputOffset(),
			Cause:   err,
		}
	}
	return &doc, nil
}
