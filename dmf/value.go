/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package dmf

import (
	"fmt"
	"strconv"
	"strings"
)

// keywordValues maps literal keywords to their typed values. Keywords win
// over every other coercion rule.
var keywordValues = map[string]any{
	"none":  nil,
	"false": false,
	"true":  true,
}

// tupleDelimiters maps field names whose values are integer tuples to the
// delimiter that separates the parts. Anchors and positions are
// comma-separated coordinate pairs; sizes and cell addresses use the
// "WxH" convention.
var tupleDelimiters = map[string]string{
	"anchor1":      ",",
	"anchor2":      ",",
	"pos":          ",",
	"size":         "x",
	"cell_span":    "x",
	"cells":        "x",
	"current_cell": "x",
}

// savedParamsField holds its value as a semicolon-separated list.
const savedParamsField = "saved_params"

// CoerceValue converts a raw attribute value into its typed form. The
// precedence is fixed: keyword literal, then field-specific integer tuple,
// then all-digit integer, then the saved_params list split, then the raw
// string. Only tuple parsing can fail.
func CoerceValue(name, raw string) (any, error) {
	if v, ok := keywordValues[raw]; ok {
		return v, nil
	}
	if delim, ok := tupleDelimiters[name]; ok {
		ints, err := ToInts(raw, delim)
		if err != nil {
			return nil, err
		}
		return ints, nil
	}
	if isASCIIDigits(raw) {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %q as an integer: %w", raw, err)
		}
		return n, nil
	}
	if name == savedParamsField {
		return strings.Split(raw, ";"), nil
	}
	return raw, nil
}

// ToInts splits s on delim and parses every part as a base-10 integer.
func ToInts(s, delim string) ([]int, error) {
	parts := strings.Split(s, delim)
	ints := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %q as %q-separated integers: %w", s, delim, err)
		}
		ints[i] = n
	}
	return ints, nil
}

func isASCIIDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// truthy reports whether a coerced value is non-empty: nil, false, zero,
// and empty strings or lists are all falsy.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case int:
		return t != 0
	case string:
		return t != ""
	case []int:
		return len(t) > 0
	case []string:
		return len(t) > 0
	default:
		return true
	}
}
