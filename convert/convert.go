/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package convert serializes parsed interface documents to output formats.
package convert

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"bennypowers.dev/mimshak/dmf"
)

// DefaultIndent is the JSON indentation width consumers expect when
// diffing converted output.
const DefaultIndent = 4

// Options configures document serialization.
type Options struct {
	// Indent is the number of spaces per JSON indentation level.
	// Zero or negative means DefaultIndent.
	Indent int
}

// FormatDocument serializes a document to the specified output format.
// The document is expected to be normalized; FormatDocument serializes
// whatever shape it is given.
func FormatDocument(doc *dmf.Document, format Format, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		return formatJSON(doc, opts.indentString())
	case FormatYAML:
		data, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to encode yaml: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func (o Options) indentString() string {
	indent := o.Indent
	if indent <= 0 {
		indent = DefaultIndent
	}
	return strings.Repeat(" ", indent)
}

// formatJSON encodes the document with its insertion-ordered fields intact
// and without HTML escaping. The encoder's trailing newline is kept so
// written files end with one.
func formatJSON(doc *dmf.Document, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode json: %w", err)
	}
	return buf.Bytes(), nil
}
