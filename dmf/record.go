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

	"gopkg.in/yaml.v3"
)

// Record is an insertion-ordered mapping of field names to typed values.
// Categories, elements, menus, and actions are all Records; field order is
// part of the output format, so plain Go maps (which serialize with sorted
// keys) cannot carry them.
type Record struct {
	keys   []string
	values map[string]any
}

// NewRecord creates an empty record.
func NewRecord() *Record {
	return &Record{values: make(map[string]any)}
}

// Set stores value under key. A new key is appended after all existing
// keys; an existing key keeps its position.
func (r *Record) Set(key string, value any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Has reports whether key is present.
func (r *Record) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Delete removes key and returns the value it held.
func (r *Record) Delete(key string) (any, bool) {
	v, ok := r.values[key]
	if !ok {
		return nil, false
	}
	delete(r.values, key)
	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			break
		}
	}
	return v, true
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return len(r.keys)
}

// Keys returns the field names in insertion order.
func (r *Record) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// Type returns the record's type field, or "" when absent or non-string.
func (r *Record) Type() string {
	return r.stringField("type")
}

// ID returns the record's id field, or "" when absent or non-string.
func (r *Record) ID() string {
	return r.stringField("id")
}

func (r *Record) stringField(key string) string {
	if v, ok := r.values[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Append appends child to the record list stored under key, creating the
// list if necessary.
func (r *Record) Append(key string, child *Record) {
	v, _ := r.Get(key)
	children, _ := v.([]*Record)
	r.Set(key, append(children, child))
}

// Children returns the record list stored under key, or nil when absent.
func (r *Record) Children(key string) []*Record {
	v, _ := r.Get(key)
	children, _ := v.([]*Record)
	return children
}

// MarshalJSON writes the record's fields in insertion order, without HTML
// escaping: interface text routinely carries & accelerators and winset
// command strings.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeJSONValue(&buf, key); err != nil {
			return nil, fmt.Errorf("failed to encode field name %q: %w", key, err)
		}
		buf.WriteByte(':')
		if err := encodeJSONValue(&buf, r.values[key]); err != nil {
			return nil, fmt.Errorf("failed to encode field %q: %w", key, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeJSONValue(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encode terminates every value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}

// MarshalYAML writes the record as a mapping node so field order survives
// YAML encoding.
func (r *Record) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range r.keys {
		keyNode := &yaml.Node{}
		keyNode.SetString(key)
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(r.values[key]); err != nil {
			return nil, fmt.Errorf("failed to encode field %q: %w", key, err)
		}
		node.Content = append(node.Content, keyNode, valueNode)
	}
	return node, nil
}
