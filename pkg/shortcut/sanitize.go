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
	"math"
	"strconv"
	"strings"

	"github.com/tombee/baton/pkg/registry"
)

// sanitizeValue normalizes a parameter value against its schema kind.
// Strings are trimmed, numbers rounded to two decimal places, and lossless
// scalar coercions applied (number/bool to text, numeric string to number).
// Returns ok=false when the value cannot represent the schema kind.
func sanitizeValue(v Value, kind registry.ValueKind) (Value, bool) {
	switch kind {
	case registry.KindText, registry.KindURL:
		switch v.Kind() {
		case KindString:
			s, _ := v.AsString()
			return StringValue(strings.TrimSpace(s)), true
		case KindNumber:
			n, _ := v.AsNumber()
			return StringValue(formatNumber(roundTwo(n))), true
		case KindBool:
			b, _ := v.AsBool()
			return StringValue(strconv.FormatBool(b)), true
		default:
			return v, false
		}

	case registry.KindNumber:
		switch v.Kind() {
		case KindNumber:
			n, _ := v.AsNumber()
			return NumberValue(roundTwo(n)), true
		case KindString:
			s, _ := v.AsString()
			if n, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
				return NumberValue(roundTwo(n)), true
			}
			return v, false
		default:
			return v, false
		}

	case registry.KindBoolean:
		switch v.Kind() {
		case KindBool:
			return v, true
		case KindString:
			s, _ := v.AsString()
			if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
				return BoolValue(b), true
			}
			return v, false
		default:
			return v, false
		}

	case registry.KindActionList:
		if v.IsNested() {
			return v, true
		}
		return v, false

	default:
		// Structured kinds (dictionary, file, location, date, any) pass
		// through opaque; only trim plain strings.
		if s, ok := v.AsString(); ok {
			return StringValue(strings.TrimSpace(s)), true
		}
		return v, true
	}
}

// roundTwo rounds to two decimal places.
func roundTwo(n float64) float64 {
	return math.Round(n*100) / 100
}

// formatNumber renders a number without a trailing ".00" for integers.
func formatNumber(n float64) string {
	if n == math.Trunc(n) {
		return strconv.FormatFloat(n, 'f', 0, 64)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
