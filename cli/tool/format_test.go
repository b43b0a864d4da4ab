/*
 * Lox
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package tool

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"
)

func TestFormatSource(t *testing.T) {

	res, err := FormatSource("test", "var   x=1+2;print x;")

	if err != nil {
		t.Error("Unexpected result:", err)
		return
	}

	if res != `var x = (1 + 2);
print x;
` {
		t.Error("Unexpected format output:", res)
		return
	}

	// Formatting is idempotent

	res2, err := FormatSource("test", res)

	if err != nil || res2 != res {
		t.Error("Unexpected result:", res2, err)
		return
	}

	// Broken sources are rejected

	if _, err := FormatSource("test", "print ;"); err == nil {
		t.Error("Expected a parse error")
		return
	}

	if _, err := FormatSource("test", `print "unterminated`); err == nil {
		t.Error("Expected a lex error")
	}
}

func TestFormatDirectory(t *testing.T) {
	setupTestDir()
	defer tearDown()

	good := filepath.Join(testDir, "good.lox")
	bad := filepath.Join(testDir, "bad.lox")
	other := filepath.Join(testDir, "notes.txt")

	ioutil.WriteFile(good, []byte("print    1+2;"), 0660)
	ioutil.WriteFile(bad, []byte("print ;"), 0660)
	ioutil.WriteFile(other, []byte("print    1+2;"), 0660)

	var out bytes.Buffer

	if err := Format(testDir, ".lox", &out); err != nil {
		t.Error("Unexpected result:", err)
		return
	}

	// The well-formed file was rewritten

	if res, _ := ioutil.ReadFile(good); string(res) != "print (1 + 2);\n" {
		t.Error("Unexpected file content:", string(res))
		return
	}

	// The broken file was reported and left untouched

	if !strings.Contains(out.String(), "Could not format") {
		t.Error("Unexpected format output:", out.String())
		return
	}

	if res, _ := ioutil.ReadFile(bad); string(res) != "print ;" {
		t.Error("Unexpected file content:", string(res))
		return
	}

	// Files with other extensions are ignored

	if res, _ := ioutil.ReadFile(other); string(res) != "print    1+2;" {
		t.Error("Unexpected file content:", string(res))
	}
}
