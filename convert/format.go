/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package convert

import (
	"fmt"
	"strings"
)

// Format represents an output format for interface serialization.
type Format string

const (
	// FormatJSON outputs the three-section JSON array (default).
	FormatJSON Format = "json"

	// FormatYAML outputs the same structure as a YAML document.
	FormatYAML Format = "yaml"
)

// ValidFormats returns all valid format strings.
func ValidFormats() []string {
	return []string{
		string(FormatJSON),
		string(FormatYAML),
	}
}

// ParseFormat converts a string to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format: %s (valid: %s)", s, strings.Join(ValidFormats(), ", "))
	}
}

// Extension returns the conventional file extension for the format,
// without the leading dot.
func (f Format) Extension() string {
	switch f {
	case FormatYAML:
		return "yaml"
	default:
		return "json"
	}
}
