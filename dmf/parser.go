/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package dmf parses BYOND interface definition (.dmf) files into ordered,
// typed records.
//
// The format is line-oriented and tab-indented, three levels deep: a line
// with no indentation opens a category (macro, menu, or window), one tab
// opens an element inside the current category, and two tabs set a
// "name = value" attribute on the current element. Parse builds the generic
// forest; Document.Normalize rewrites it into its presentation shape.
package dmf

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"bennypowers.dev/mimshak/fs"
)

// builder tracks the in-progress document and the currently open category
// and element while lines are consumed.
type builder struct {
	doc      *Document
	category *Record
	element  *Record
}

// Parse converts raw interface-file text into a Document. The result is
// the generic forest; call Normalize on it to produce the final shapes.
func Parse(data []byte) (*Document, error) {
	b := &builder{doc: NewDocument()}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for scanner.Scan() {
		line++
		if err := b.addLine(scanner.Text()); err != nil {
			return nil, &ParseError{Line: line, Err: err}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	if err := b.finish(); err != nil {
		return nil, err
	}
	return b.doc, nil
}

// ParseFile reads path from the filesystem and parses its contents.
func ParseFile(filesystem fs.FileSystem, path string) (*Document, error) {
	data, err := filesystem.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}

// addLine classifies one raw line by its leading tabs and applies it.
func (b *builder) addLine(raw string) error {
	line := strings.TrimRight(raw, " \t\r\n")
	if line == "" {
		return nil
	}
	switch {
	case strings.HasPrefix(line, "\t\t"):
		return b.addAttribute(line)
	case strings.HasPrefix(line, "\t"):
		return b.startElement(line)
	default:
		return b.startCategory(line)
	}
}

// startCategory opens a new category and appends it to the bucket for its
// kind. Categories of unrecognized kind land in the Unknown bucket.
func (b *builder) startCategory(line string) error {
	category, err := parseHeader(line)
	if err != nil {
		return err
	}
	category.Set("controls", []*Record{})
	switch category.Type() {
	case "macro":
		b.doc.Macrolists = append(b.doc.Macrolists, category)
	case "menu":
		b.doc.Menubars = append(b.doc.Menubars, category)
	case "window":
		b.doc.Windows = append(b.doc.Windows, category)
	default:
		b.doc.Unknown = append(b.doc.Unknown, category)
	}
	b.category = category
	return nil
}

// startElement opens a new element inside the current category.
func (b *builder) startElement(line string) error {
	if b.category == nil {
		return ErrOrphanElement
	}
	element, err := parseHeader(strings.TrimLeft(line, "\t"))
	if err != nil {
		return err
	}
	b.category.Append("controls", element)
	b.element = element
	return nil
}

// addAttribute parses a "name = value" line into the current element.
// Hyphens in both name and value normalize to underscores before the value
// is coerced. The type attribute is special: it overwrites the element's
// type in place, with the legacy literal MAIN rewritten to WINDOW, and is
// never coerced.
func (b *builder) addAttribute(line string) error {
	if b.element == nil {
		return ErrOrphanAttribute
	}
	trimmed := strings.TrimLeft(line, "\t")
	name, value, ok := strings.Cut(trimmed, " = ")
	if !ok {
		return fmt.Errorf("%w: %q", ErrMalformedAttribute, trimmed)
	}
	name = strings.ReplaceAll(name, "-", "_")
	value = strings.ReplaceAll(strings.Trim(value, `"`), "-", "_")
	if name == "type" {
		if value == "MAIN" {
			value = "WINDOW"
		}
		b.element.Set("type", value)
		return nil
	}
	typed, err := CoerceValue(name, value)
	if err != nil {
		return err
	}
	b.element.Set(name, typed)
	return nil
}

// finish applies the end-of-parse window pass: the first element of every
// window consumes its is_pane flag, retagging itself PANE when the flag is
// set. A window with no elements has nothing to promote later, so it fails
// here rather than producing malformed output.
func (b *builder) finish() error {
	for _, window := range b.doc.Windows {
		controls := window.Children("controls")
		if len(controls) == 0 {
			return fmt.Errorf("window %q: %w", window.ID(), ErrEmptyWindow)
		}
		first := controls[0]
		if flag, ok := first.Delete("is_pane"); ok && truthy(flag) {
			first.Set("type", "PANE")
		}
	}
	return nil
}

// parseHeader splits a header line into a new record carrying its kind and
// optional quote-stripped id. Headers hold at most two whitespace-separated
// fields.
func parseHeader(line string) (*Record, error) {
	fields := strings.Fields(line)
	if len(fields) > 2 {
		return nil, fmt.Errorf("%w: %q", ErrMalformedHeader, line)
	}
	record := NewRecord()
	if len(fields) == 0 {
		record.Set("type", "")
		return record, nil
	}
	record.Set("type", fields[0])
	if len(fields) == 2 {
		// A quoted empty id is the same as no id.
		if id := strings.Trim(fields[1], `"`); id != "" {
			record.Set("id", id)
		}
	}
	return record, nil
}
