/*
 * Lox
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package scope

import (
	"fmt"
	"testing"
)

func TestEnvironmentLookup(t *testing.T) {

	globals := NewEnvironment()
	globals.Define("a", 1.0)

	if v, err := globals.Get("a"); err != nil || v != 1.0 {
		t.Error("Unexpected result:", v, err)
		return
	}

	if _, err := globals.Get("b"); err == nil ||
		err.Error() != "Undefined variable 'b'." {
		t.Error("Unexpected result:", err)
		return
	}

	// Nested environments see their enclosing bindings

	child := globals.NewChild()
	child.Define("b", 2.0)

	if v, err := child.Get("a"); err != nil || v != 1.0 {
		t.Error("Unexpected result:", v, err)
		return
	}

	if _, err := globals.Get("b"); err == nil {
		t.Error("Enclosing scope should not see child bindings")
		return
	}

	// Shadowing - the innermost binding wins

	child.Define("a", 3.0)

	if v, _ := child.Get("a"); v != 3.0 {
		t.Error("Unexpected result:", v)
		return
	}

	if v, _ := globals.Get("a"); v != 1.0 {
		t.Error("Unexpected result:", v)
		return
	}
}

func TestEnvironmentAssign(t *testing.T) {

	globals := NewEnvironment()
	globals.Define("a", 1.0)

	child := globals.NewChild()

	// Assignment updates the binding in the scope that declares it

	if err := child.Assign("a", 2.0); err != nil {
		t.Error("Unexpected result:", err)
		return
	}

	if v, _ := globals.Get("a"); v != 2.0 {
		t.Error("Unexpected result:", v)
		return
	}

	// Assignment never creates a new binding

	if err := child.Assign("b", 1.0); err == nil ||
		err.Error() != "Undefined variable 'b'." {
		t.Error("Unexpected result:", err)
		return
	}
}

func TestEnvironmentResolvedAccess(t *testing.T) {

	globals := NewEnvironment()
	globals.Define("x", "outer")

	middle := globals.NewChild()
	middle.Define("x", "middle")

	inner := middle.NewChild()

	if v := inner.GetAt(1, "x"); v != "middle" {
		t.Error("Unexpected result:", v)
		return
	}

	if v := inner.GetAt(2, "x"); v != "outer" {
		t.Error("Unexpected result:", v)
		return
	}

	inner.AssignAt(2, "x", "changed")

	if v, _ := globals.Get("x"); v != "changed" {
		t.Error("Unexpected result:", v)
		return
	}
}

func TestEnvironmentNames(t *testing.T) {

	env := NewEnvironment()
	env.Define("zebra", 1.0)
	env.Define("apple", 2.0)
	env.Define("mango", 3.0)

	if res := fmt.Sprint(env.Names()); res != "[apple mango zebra]" {
		t.Error("Unexpected result:", res)
	}
}
