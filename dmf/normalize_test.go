/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package dmf_test

import (
	"errors"
	"reflect"
	"testing"

	"bennypowers.dev/mimshak/dmf"
)

func mustParse(t *testing.T, input string) *dmf.Document {
	t.Helper()
	doc, err := dmf.Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	return doc
}

func mustNormalize(t *testing.T, input string) *dmf.Document {
	t.Helper()
	doc := mustParse(t, input)
	if err := doc.Normalize(); err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	return doc
}

func TestNormalize_Macrolist(t *testing.T) {
	doc := mustNormalize(t, "macro \"hotkeys\"\n"+
		"\tF1\n"+
		"\t\tcommand = \".quit\"\n"+
		"\tF2\n"+
		"\t\tcommand = \".screenshot\"\n")

	list := doc.Macrolists[0]
	if got := list.Type(); got != "MACROLIST" {
		t.Errorf("Type() = %q, want MACROLIST", got)
	}
	if list.Has("controls") {
		t.Error("controls field should be renamed to macros")
	}
	macros := list.Children("macros")
	if len(macros) != 2 {
		t.Fatalf("len(macros) = %d, want 2", len(macros))
	}
	for i, macro := range macros {
		if got := macro.Type(); got != "MACRO" {
			t.Errorf("macros[%d].Type() = %q, want MACRO", i, got)
		}
	}
}

func TestNormalize_MenubarMenusAndActions(t *testing.T) {
	doc := mustNormalize(t, "menu \"menubar\"\n"+
		"\tFILEMENU\n"+
		"\t\tname = \"File\"\n"+
		"\t\tcommand = \"\"\n"+
		"\t\tsaved_params = \"is_checked\"\n"+
		"\tOPEN\n"+
		"\t\tcategory = \"File\"\n"+
		"\t\tname = \"Open\"\n"+
		"\t\tcommand = \".open\"\n")

	menubar := doc.Menubars[0]
	if got := menubar.Type(); got != "MENUBAR" {
		t.Errorf("Type() = %q, want MENUBAR", got)
	}
	if menubar.Has("controls") {
		t.Error("controls field should be gone after normalization")
	}

	menus := menubar.Children("menus")
	if len(menus) != 1 {
		t.Fatalf("len(menus) = %d, want 1", len(menus))
	}

	menu := menus[0]
	if got := menu.Type(); got != "MENU" {
		t.Errorf("menu.Type() = %q, want MENU", got)
	}
	if v, _ := menu.Get("name"); v != "File" {
		t.Errorf("menu name = %v, want File", v)
	}
	if menu.Has("command") || menu.Has("saved_params") {
		t.Error("menu should drop command and saved_params")
	}

	actions := menu.Children("actions")
	if len(actions) != 1 {
		t.Fatalf("len(actions) = %d, want 1", len(actions))
	}
	action := actions[0]
	if got := action.Type(); got != "ACTION" {
		t.Errorf("action.Type() = %q, want ACTION", got)
	}
	if v, _ := action.Get("name"); v != "Open" {
		t.Errorf("action name = %v, want Open", v)
	}
	if action.Has("category") {
		t.Error("action should not keep a category field")
	}
}

func TestNormalize_MenubarSyntheticCategory(t *testing.T) {
	doc := mustNormalize(t, "menu \"menubar\"\n"+
		"\tSAVELOG\n"+
		"\t\tcategory = \"File\"\n"+
		"\t\tname = \"Save Log\"\n")

	menus := doc.Menubars[0].Children("menus")
	if len(menus) != 1 {
		t.Fatalf("len(menus) = %d, want 1", len(menus))
	}

	category := menus[0]
	if category.Has("type") {
		t.Error("synthesized category should not carry a type field")
	}
	if v, _ := category.Get("name"); v != "File" {
		t.Errorf("category name = %v, want File", v)
	}
	if v, _ := category.Get("command"); v != "" {
		t.Errorf("category command = %v, want empty string", v)
	}
	if v, _ := category.Get("saved_params"); v != "is_checked" {
		t.Errorf("category saved_params = %v, want is_checked", v)
	}
	if got := len(category.Children("actions")); got != 1 {
		t.Errorf("len(actions) = %d, want 1", got)
	}
}

func TestNormalize_MenubarSeparator(t *testing.T) {
	doc := mustNormalize(t, "menu \"menubar\"\n"+
		"\tSEP\n"+
		"\t\tcategory = \"File\"\n"+
		"\t\tcommand = \".noop\"\n"+
		"\t\tis_disabled = true\n")

	actions := doc.Menubars[0].Children("menus")[0].Children("actions")
	if len(actions) != 1 {
		t.Fatalf("len(actions) = %d, want 1", len(actions))
	}

	separator := actions[0]
	if got := separator.Type(); got != "SEPARATOR" {
		t.Errorf("Type() = %q, want SEPARATOR", got)
	}
	if got := separator.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1 (all other fields discarded)", got)
	}
}

func TestNormalize_MenubarGroups(t *testing.T) {
	doc := mustNormalize(t, "menu \"menubar\"\n"+
		"\tA\n"+
		"\t\tcategory = \"Icons\"\n"+
		"\t\tname = \"Stretch\"\n"+
		"\t\tgroup = \"zoom\"\n"+
		"\tB\n"+
		"\t\tcategory = \"Icons\"\n"+
		"\t\tname = \"Actual\"\n"+
		"\t\tgroup = \"zoom\"\n"+
		"\tC\n"+
		"\t\tcategory = \"Icons\"\n"+
		"\t\tname = \"Text\"\n"+
		"\t\tgroup = \"style\"\n")

	menubar := doc.Menubars[0]
	v, ok := menubar.Get("groups")
	if !ok {
		t.Fatal("expected groups field")
	}
	groups, ok := v.([]string)
	if !ok {
		t.Fatalf("groups = %T, want []string", v)
	}
	if !reflect.DeepEqual(groups, []string{"style", "zoom"}) {
		t.Errorf("groups = %v, want [style zoom] (deduplicated, sorted)", groups)
	}
}

func TestNormalize_MenubarInsertionOrder(t *testing.T) {
	doc := mustNormalize(t, "menu \"menubar\"\n"+
		"\tA\n"+
		"\t\tcategory = \"File\"\n"+
		"\t\tname = \"Open\"\n"+
		"\tB\n"+
		"\t\tcategory = \"Help\"\n"+
		"\t\tname = \"About\"\n"+
		"\tC\n"+
		"\t\tcategory = \"File\"\n"+
		"\t\tname = \"Quit\"\n")

	menus := doc.Menubars[0].Children("menus")
	if len(menus) != 2 {
		t.Fatalf("len(menus) = %d, want 2", len(menus))
	}
	if v, _ := menus[0].Get("name"); v != "File" {
		t.Errorf("menus[0] = %v, want File (first seen)", v)
	}
	if v, _ := menus[1].Get("name"); v != "Help" {
		t.Errorf("menus[1] = %v, want Help", v)
	}
	if got := len(menus[0].Children("actions")); got != 2 {
		t.Errorf("File actions = %d, want 2", got)
	}
}

func TestNormalize_EmptyMenubar(t *testing.T) {
	doc := mustNormalize(t, "menu \"empty\"\n")

	menubar := doc.Menubars[0]
	menus := menubar.Children("menus")
	if menus == nil || len(menus) != 0 {
		t.Errorf("menus = %v, want empty non-nil list", menus)
	}
	v, _ := menubar.Get("groups")
	groups, ok := v.([]string)
	if !ok || len(groups) != 0 {
		t.Errorf("groups = %v, want empty list", v)
	}
}

func TestNormalize_NamelessMenuEntry(t *testing.T) {
	doc := mustParse(t, "menu \"menubar\"\n"+
		"\tBAD\n"+
		"\t\tcommand = \".noop\"\n")

	err := doc.Normalize()
	if !errors.Is(err, dmf.ErrNamelessMenu) {
		t.Errorf("Normalize() error = %v, want %v", err, dmf.ErrNamelessMenu)
	}
}

func TestNormalize_WindowPromotion(t *testing.T) {
	t.Run("pane keeps window id", func(t *testing.T) {
		doc := mustNormalize(t, "window \"main\"\n"+
			"\tMAIN\n"+
			"\t\tis_pane = \"true\"\n")

		window := doc.Windows[0]
		if got := window.Type(); got != "PANE" {
			t.Errorf("Type() = %q, want PANE", got)
		}
		if got := window.ID(); got != "main" {
			t.Errorf("ID() = %q, want main", got)
		}
		controls := window.Children("controls")
		if controls == nil || len(controls) != 0 {
			t.Errorf("controls = %v, want empty non-nil list", controls)
		}
	})

	t.Run("element fields land on the window", func(t *testing.T) {
		doc := mustNormalize(t, "window \"mainwindow\"\n"+
			"\tELEM \"mainwindow\"\n"+
			"\t\ttype = MAIN\n"+
			"\t\tsize = 640x440\n"+
			"\tELEM \"status\"\n"+
			"\t\ttype = LABEL\n")

		window := doc.Windows[0]
		if got := window.Type(); got != "WINDOW" {
			t.Errorf("Type() = %q, want WINDOW", got)
		}
		if got := window.ID(); got != "mainwindow" {
			t.Errorf("ID() = %q, want mainwindow", got)
		}
		if v, _ := window.Get("size"); !reflect.DeepEqual(v, []int{640, 440}) {
			t.Errorf("size = %v, want [640 440]", v)
		}
		controls := window.Children("controls")
		if len(controls) != 1 {
			t.Fatalf("len(controls) = %d, want 1", len(controls))
		}
		if got := controls[0].Type(); got != "LABEL" {
			t.Errorf("controls[0].Type() = %q, want LABEL", got)
		}
	})

	t.Run("controls is the final field", func(t *testing.T) {
		doc := mustNormalize(t, "window \"w\"\n"+
			"\tMAIN\n"+
			"\t\tsize = 100x100\n")

		keys := doc.Windows[0].Keys()
		if keys[len(keys)-1] != "controls" {
			t.Errorf("last key = %q, want controls", keys[len(keys)-1])
		}
	})
}

func TestNormalize_Idempotent(t *testing.T) {
	doc := mustNormalize(t, "macro \"m\"\n\tF1\n")

	if err := doc.Normalize(); err != nil {
		t.Fatalf("second Normalize() error: %v", err)
	}
	list := doc.Macrolists[0]
	if !list.Has("macros") || list.Has("controls") {
		t.Error("second Normalize() disturbed the document")
	}
}

func TestNormalize_StructuralInvariants(t *testing.T) {
	doc := mustNormalize(t, "menu \"menubar\"\n"+
		"\tA\n"+
		"\t\tcategory = \"File\"\n"+
		"\t\tname = \"Open\"\n"+
		"\tB\n"+
		"\t\tname = \"Help\"\n"+
		"window \"main\"\n"+
		"\tMAIN\n"+
		"\t\tsize = 640x480\n")

	t.Run("no lingering category fields", func(t *testing.T) {
		for _, menubar := range doc.Menubars {
			for _, menu := range menubar.Children("menus") {
				if menu.Has("category") {
					t.Errorf("menu %v retains category field", menu.Keys())
				}
				for _, action := range menu.Children("actions") {
					if action.Has("category") {
						t.Errorf("action %v retains category field", action.Keys())
					}
				}
			}
		}
	})

	t.Run("no leftover element wrapper", func(t *testing.T) {
		window := doc.Windows[0]
		if v, _ := window.Get("size"); !reflect.DeepEqual(v, []int{640, 480}) {
			t.Errorf("promoted size = %v, want [640 480]", v)
		}
	})
}
