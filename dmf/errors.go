/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package dmf

import (
	"errors"
	"fmt"
)

// Sentinel errors for parsing and normalization.
var (
	// ErrMalformedHeader indicates a category or element header with more
	// than two whitespace-separated fields.
	ErrMalformedHeader = errors.New("malformed header line")

	// ErrMalformedAttribute indicates an attribute line without the " = "
	// separator.
	ErrMalformedAttribute = errors.New("malformed attribute line")

	// ErrOrphanElement indicates an element header before any category.
	ErrOrphanElement = errors.New("element outside any category")

	// ErrOrphanAttribute indicates an attribute line before any element.
	ErrOrphanAttribute = errors.New("attribute outside any element")

	// ErrEmptyWindow indicates a window category with no elements.
	ErrEmptyWindow = errors.New("window has no elements")

	// ErrNamelessMenu indicates a top-level menu entry with neither a name
	// nor a category.
	ErrNamelessMenu = errors.New("menu entry has neither name nor category")
)

// ParseError reports a parse failure at a 1-based source line.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
