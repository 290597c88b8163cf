/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package dmf

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Document holds the parsed content of an interface file, bucketed by
// category kind. Section order and record order within each section follow
// the source file.
type Document struct {
	Macrolists []*Record
	Menubars   []*Record
	Windows    []*Record

	// Unknown holds categories of unrecognized kind. They are retained
	// for diagnostics but excluded from serialized output.
	Unknown []*Record

	// IsNormalized indicates whether Normalize has been applied.
	IsNormalized bool
}

// NewDocument creates an empty document with all sections initialized.
func NewDocument() *Document {
	return &Document{
		Macrolists: []*Record{},
		Menubars:   []*Record{},
		Windows:    []*Record{},
		Unknown:    []*Record{},
	}
}

// sections returns the serialized buckets in output order, with empty
// slices substituted for nil so the output always carries three arrays.
func (d *Document) sections() [][]*Record {
	sections := [][]*Record{d.Macrolists, d.Menubars, d.Windows}
	for i, s := range sections {
		if s == nil {
			sections[i] = []*Record{}
		}
	}
	return sections
}

// MarshalJSON writes the document as the fixed three-element array
// [macrolists, menubars, windows].
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(d.sections()); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// MarshalYAML writes the document as a three-element sequence mirroring
// the JSON shape.
func (d *Document) MarshalYAML() (any, error) {
	return d.sections(), nil
}
