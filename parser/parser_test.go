/*
 * Lox
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package parser

import (
	"strings"
	"testing"
)

/*
testParse lexes and parses an input and compares the canonical rendering
of the resulting tree against an expected output.
*/
func testParse(t *testing.T, input string, expectedOutput string) {
	tokens, lexErrors := Lex("mytest", input)

	if len(lexErrors) != 0 {
		t.Error("Unexpected lex errors:", lexErrors)
		return
	}

	stmts, parseErrors := Parse("mytest", tokens)

	if len(parseErrors) != 0 {
		t.Error("Unexpected parse errors:", parseErrors)
		return
	}

	if res := Print(stmts); res != expectedOutput {
		t.Error("Unexpected parser output:\n", res, "expected was:\n", expectedOutput)
	}
}

/*
testParseError lexes and parses an input and checks the reported errors.
*/
func testParseError(t *testing.T, input string, expectedErrors ...string) {
	tokens, _ := Lex("mytest", input)

	_, parseErrors := Parse("mytest", tokens)

	if len(parseErrors) != len(expectedErrors) {
		t.Error("Unexpected parse errors:", parseErrors)
		return
	}

	for i, e := range expectedErrors {
		if parseErrors[i].Error() != e {
			t.Error("Unexpected parse error:", parseErrors[i].Error(), "expected was:", e)
			return
		}
	}
}

func TestExpressionParsing(t *testing.T) {

	testParse(t, "print (1 + 2) * 3 / 2;", `
print (((1 + 2) * 3) / 2);
`[1:])

	testParse(t, "print -1 + 2 < 3 == true;", `
print ((((-1) + 2) < 3) == true);
`[1:])

	testParse(t, "print a or b and !c;", `
print (a or (b and (!c)));
`[1:])

	testParse(t, `var s = "x" + "y";`, `
var s = ("x" + "y");
`[1:])

	testParse(t, "x = y = nil;", `
x = y = nil;
`[1:])
}

func TestStatementParsing(t *testing.T) {

	testParse(t, "var a; var b = 1; a = b;", `
var a;
var b = 1;
a = b;
`[1:])

	testParse(t, "if (a) print 1; else print 2;", `
if (a)
  print 1;
else
  print 2;
`[1:])

	testParse(t, "while (a < 10) { a = a + 1; }", `
while ((a < 10)) {
  a = (a + 1);
}
`[1:])

	testParse(t, "fun add(a, b) { return a + b; } print add(1, 2);", `
fun add(a, b) {
  return (a + b);
}
print add(1, 2);
`[1:])
}

func TestForDesugaring(t *testing.T) {

	// A full for loop becomes a block with the initializer and a while
	// loop whose body ends with the increment

	testParse(t, "for (var i = 0; i < 3; i = i + 1) print i;", `
{
  var i = 0;
  while ((i < 3)) {
    print i;
    i = (i + 1);
  }
}
`[1:])

	// A missing condition defaults to true; missing initializer and
	// increment are simply omitted

	testParse(t, "for (;;) print 1;", `
while (true)
  print 1;
`[1:])
}

func TestClassParsing(t *testing.T) {

	testParse(t, `
class A { greet() { print "A"; } }
class B < A {
  greet() {
    super.greet();
    print "B";
  }
}
B().greet();
`, `
class A {
  greet() {
    print "A";
  }
}
class B < A {
  greet() {
    super.greet();
    print "B";
  }
}
B().greet();
`[1:])

	testParse(t, "class C { init() { this.x = 7; } } print C().x;", `
class C {
  init() {
    this.x = 7;
  }
}
print C().x;
`[1:])
}

func TestParseErrors(t *testing.T) {

	testParseError(t, "print 1",
		"[mytest line 1] Error at end: Expect ';' after value.")

	testParseError(t, "var = 1;",
		"[mytest line 1] Error at '=': Expect variable name.")

	testParseError(t, "print ;",
		"[mytest line 1] Error at ';': Expect expression.")

	testParseError(t, "1 + 2 = 3;",
		"[mytest line 1] Error at '=': Invalid assignment target.")

	testParseError(t, "class {}",
		"[mytest line 1] Error at '{': Expect class name.")
}

func TestPanicModeSynchronization(t *testing.T) {

	// After an error the parser synchronizes to the next statement
	// boundary and keeps going - both errors are reported

	tokens, _ := Lex("mytest", "var = 1; print ; var ok = 2;")
	stmts, parseErrors := Parse("mytest", tokens)

	if len(parseErrors) != 2 {
		t.Error("Unexpected parse errors:", parseErrors)
		return
	}

	// The valid trailing declaration was still parsed

	found := false
	for _, s := range stmts {
		if vs, ok := s.(*VarStmt); ok && vs.Name.Lexeme == "ok" {
			found = true
		}
	}

	if !found {
		t.Error("Parser did not recover to parse the trailing declaration:", stmts)
	}
}

func TestArgumentCap(t *testing.T) {

	var sb strings.Builder

	sb.WriteString("f(")
	for i := 0; i < 256; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("a")
	}
	sb.WriteString(");")

	tokens, _ := Lex("mytest", sb.String())
	_, parseErrors := Parse("mytest", tokens)

	if len(parseErrors) != 1 ||
		parseErrors[0].Error() != "[mytest line 1] Error at 'a': Can't have more than 255 arguments." {
		t.Error("Unexpected parse errors:", parseErrors)
	}
}

func TestInvalidAssignmentKeepsExpression(t *testing.T) {

	// The expression left of the '=' is kept as the statement's
	// expression - parsing continues

	tokens, _ := Lex("mytest", "1 + 2 = 3;")
	stmts, parseErrors := Parse("mytest", tokens)

	if len(parseErrors) != 1 {
		t.Error("Unexpected parse errors:", parseErrors)
		return
	}

	if len(stmts) != 1 {
		t.Error("Unexpected statements:", stmts)
		return
	}

	es, ok := stmts[0].(*ExpressionStmt)
	if !ok {
		t.Error("Unexpected statement:", stmts[0])
		return
	}

	if _, ok := es.Expression.(*BinaryExpr); !ok {
		t.Error("Unexpected expression:", es.Expression)
	}
}
