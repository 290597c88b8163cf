/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package dmf

import (
	"fmt"
	"sort"
)

// Normalize rewrites the parsed forest in place into its presentation
// shape: macro lists become MACROLIST records with MACRO children, menu
// bars become MENUBAR records with entries folded into per-category menus,
// and windows absorb their first element. Normalize is idempotent; records
// are mutated, never recreated.
func (d *Document) Normalize() error {
	if d.IsNormalized {
		return nil
	}
	for _, list := range d.Macrolists {
		normalizeMacrolist(list)
	}
	for _, menubar := range d.Menubars {
		if err := normalizeMenubar(menubar); err != nil {
			return err
		}
	}
	for _, window := range d.Windows {
		if err := normalizeWindow(window); err != nil {
			return err
		}
	}
	d.IsNormalized = true
	return nil
}

// normalizeMacrolist retags the list MACROLIST, renames its controls field
// to macros, and retags every child MACRO.
func normalizeMacrolist(list *Record) {
	list.Set("type", "MACROLIST")
	macros := popControls(list)
	for _, macro := range macros {
		macro.Set("type", "MACRO")
	}
	list.Set("macros", macros)
}

// normalizeMenubar folds a menu bar's flat entry list into per-category
// menus. An entry without a category field is itself a top-level menu,
// keyed by its name; an entry with one becomes an ACTION (or a bare
// SEPARATOR when it has no name) under that category, which is synthesized
// on first reference. Group names accumulate into a deduplicated set.
func normalizeMenubar(menubar *Record) error {
	categories := NewRecord()
	groups := make(map[string]struct{})

	for _, entry := range popControls(menubar) {
		categoryName, hasCategory := entry.Delete("category")
		if !hasCategory {
			name, ok := entry.Get("name")
			if !ok {
				return fmt.Errorf("menubar %q: %w", menubar.ID(), ErrNamelessMenu)
			}
			entry.Set("type", "MENU")
			entry.Delete("command")
			entry.Delete("saved_params")
			entry.Set("actions", []*Record{})
			categories.Set(fmt.Sprint(name), entry)
			continue
		}

		key := fmt.Sprint(categoryName)
		v, ok := categories.Get(key)
		if !ok {
			category := NewRecord()
			category.Set("name", categoryName)
			category.Set("command", "")
			category.Set("saved_params", "is_checked")
			category.Set("actions", []*Record{})
			categories.Set(key, category)
			v = category
		}
		category := v.(*Record)

		if name, ok := entry.Get("name"); ok && truthy(name) {
			entry.Set("type", "ACTION")
			if group, ok := entry.Get("group"); ok && truthy(group) {
				groups[fmt.Sprint(group)] = struct{}{}
			}
			category.Append("actions", entry)
		} else {
			separator := NewRecord()
			separator.Set("type", "SEPARATOR")
			category.Append("actions", separator)
		}
	}

	menubar.Set("type", "MENUBAR")
	menus := make([]*Record, 0, categories.Len())
	for _, key := range categories.Keys() {
		v, _ := categories.Get(key)
		menus = append(menus, v.(*Record))
	}
	menubar.Set("menus", menus)
	menubar.Set("groups", sortedSet(groups))
	return nil
}

// normalizeWindow promotes a window's first element: the element's fields
// merge onto the window record itself (overwriting type and id where the
// element carries them), and the remaining elements become its controls.
func normalizeWindow(window *Record) error {
	controls := popControls(window)
	if len(controls) == 0 {
		return fmt.Errorf("window %q: %w", window.ID(), ErrEmptyWindow)
	}
	main := controls[0]
	for _, key := range main.Keys() {
		v, _ := main.Get(key)
		window.Set(key, v)
	}
	window.Set("controls", controls[1:])
	return nil
}

// popControls removes and returns the record's element list.
func popControls(r *Record) []*Record {
	v, ok := r.Delete("controls")
	if !ok {
		return []*Record{}
	}
	controls, ok := v.([]*Record)
	if !ok || controls == nil {
		return []*Record{}
	}
	return controls
}

func sortedSet(set map[string]struct{}) []string {
	values := make([]string, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
