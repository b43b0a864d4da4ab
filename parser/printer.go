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
	"fmt"
	"strings"

	"devt.de/krotik/common/stringutil"
)

/*
Print renders a program back into Lox source text. It is used by the
`fmt` command and by the pretty-print / re-parse round trip tests:
printing the statements produced by Parse and re-lexing/re-parsing the
result must yield an equivalent tree.
*/
func Print(stmts []Stmt) string {
	var sb strings.Builder
	pp := &printer{sb: &sb}
	for _, s := range stmts {
		pp.printStmt(s, 0)
	}
	return sb.String()
}

/*
PrintExpr renders a single expression, with fully explicit parenthesization
around every operator application - this is deliberately more verbose than
idiomatic Lox source so that precedence is never ambiguous in debug output.
*/
func PrintExpr(e Expr) string {
	var sb strings.Builder
	pp := &printer{sb: &sb}
	pp.printExpr(e)
	return sb.String()
}

type printer struct {
	sb *strings.Builder
}

func (pp *printer) indent(depth int) {
	pp.sb.WriteString(stringutil.GenerateRollingString(" ", depth*2))
}

func (pp *printer) printStmt(s Stmt, depth int) {
	pp.indent(depth)

	switch st := s.(type) {

	case *ExpressionStmt:
		pp.printExpr(st.Expression)
		pp.sb.WriteString(";\n")

	case *PrintStmt:
		pp.sb.WriteString("print ")
		pp.printExpr(st.Expression)
		pp.sb.WriteString(";\n")

	case *VarStmt:
		pp.sb.WriteString("var ")
		pp.sb.WriteString(st.Name.Lexeme)
		if st.Initializer != nil {
			pp.sb.WriteString(" = ")
			pp.printExpr(st.Initializer)
		}
		pp.sb.WriteString(";\n")

	case *BlockStmt:
		pp.sb.WriteString("{\n")
		for _, inner := range st.Statements {
			pp.printStmt(inner, depth+1)
		}
		pp.indent(depth)
		pp.sb.WriteString("}\n")

	case *IfStmt:
		pp.sb.WriteString("if (")
		pp.printExpr(st.Condition)
		pp.sb.WriteString(")")
		pp.printInlineOrBlock(st.Then, depth)
		if st.Else != nil {
			pp.indent(depth)
			pp.sb.WriteString("else")
			pp.printInlineOrBlock(st.Else, depth)
		}

	case *WhileStmt:
		pp.sb.WriteString("while (")
		pp.printExpr(st.Condition)
		pp.sb.WriteString(")")
		pp.printInlineOrBlock(st.Body, depth)

	case *FunctionStmt:
		pp.sb.WriteString("fun ")
		pp.printFunction(st, depth)

	case *ReturnStmt:
		pp.sb.WriteString("return")
		if st.Value != nil {
			pp.sb.WriteString(" ")
			pp.printExpr(st.Value)
		}
		pp.sb.WriteString(";\n")

	case *ClassStmt:
		pp.sb.WriteString("class ")
		pp.sb.WriteString(st.Name.Lexeme)
		if st.Superclass != nil {
			pp.sb.WriteString(" < ")
			pp.sb.WriteString(st.Superclass.Name.Lexeme)
		}
		pp.sb.WriteString(" {\n")
		for _, m := range st.Methods {
			// Methods are written without the fun keyword
			pp.indent(depth + 1)
			pp.printFunction(m, depth+1)
		}
		pp.indent(depth)
		pp.sb.WriteString("}\n")

	default:
		pp.sb.WriteString(fmt.Sprintf("/* unknown statement %T */\n", s))
	}
}

/*
printFunction writes a function or method declaration minus any leading
keyword, starting at the name. The caller has already written the
current line up to this point.
*/
func (pp *printer) printFunction(fn *FunctionStmt, depth int) {
	pp.sb.WriteString(fn.Name.Lexeme)
	pp.printParams(fn.Params)
	pp.sb.WriteString(" {\n")
	for _, inner := range fn.Body {
		pp.printStmt(inner, depth+1)
	}
	pp.indent(depth)
	pp.sb.WriteString("}\n")
}

func (pp *printer) printInlineOrBlock(s Stmt, depth int) {
	if bs, ok := s.(*BlockStmt); ok {
		pp.sb.WriteString(" {\n")
		for _, inner := range bs.Statements {
			pp.printStmt(inner, depth+1)
		}
		pp.indent(depth)
		pp.sb.WriteString("}\n")
		return
	}
	pp.sb.WriteString("\n")
	pp.printStmt(s, depth+1)
}

func (pp *printer) printParams(params []Token) {
	pp.sb.WriteString("(")
	for i, t := range params {
		if i > 0 {
			pp.sb.WriteString(", ")
		}
		pp.sb.WriteString(t.Lexeme)
	}
	pp.sb.WriteString(")")
}

func (pp *printer) printExpr(e Expr) {
	switch ex := e.(type) {

	case *LiteralExpr:
		pp.sb.WriteString(stringifyLiteral(ex.Value))

	case *GroupingExpr:
		switch ex.Expression.(type) {
		case *UnaryExpr, *BinaryExpr, *LogicalExpr:
			// These already write their own parentheses
			pp.printExpr(ex.Expression)
		default:
			pp.sb.WriteString("(")
			pp.printExpr(ex.Expression)
			pp.sb.WriteString(")")
		}

	case *UnaryExpr:
		pp.sb.WriteString("(")
		pp.sb.WriteString(ex.Operator.Lexeme)
		pp.printExpr(ex.Right)
		pp.sb.WriteString(")")

	case *BinaryExpr:
		pp.sb.WriteString("(")
		pp.printExpr(ex.Left)
		pp.sb.WriteString(" " + ex.Operator.Lexeme + " ")
		pp.printExpr(ex.Right)
		pp.sb.WriteString(")")

	case *LogicalExpr:
		pp.sb.WriteString("(")
		pp.printExpr(ex.Left)
		pp.sb.WriteString(" " + ex.Operator.Lexeme + " ")
		pp.printExpr(ex.Right)
		pp.sb.WriteString(")")

	case *VariableExpr:
		pp.sb.WriteString(ex.Name.Lexeme)

	case *AssignExpr:
		pp.sb.WriteString(ex.Name.Lexeme + " = ")
		pp.printExpr(ex.Value)

	case *CallExpr:
		pp.printExpr(ex.Callee)
		pp.sb.WriteString("(")
		for i, a := range ex.Arguments {
			if i > 0 {
				pp.sb.WriteString(", ")
			}
			pp.printExpr(a)
		}
		pp.sb.WriteString(")")

	case *GetExpr:
		pp.printExpr(ex.Object)
		pp.sb.WriteString("." + ex.Name.Lexeme)

	case *SetExpr:
		pp.printExpr(ex.Object)
		pp.sb.WriteString("." + ex.Name.Lexeme + " = ")
		pp.printExpr(ex.Value)

	case *ThisExpr:
		pp.sb.WriteString("this")

	case *SuperExpr:
		pp.sb.WriteString("super." + ex.Method.Lexeme)

	default:
		pp.sb.WriteString(fmt.Sprintf("/* unknown expr %T */", e))
	}
}

/*
stringifyLiteral renders a literal value the way it would appear in
source, not the way the interpreter's print statement renders a runtime
value (e.g. strings keep their quotes here).
*/
func stringifyLiteral(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case bool:
		if val {
			return "true"
		}
		return "false"
	case string:
		return fmt.Sprintf("%q", val)
	case float64:
		return stringutil.ConvertToString(val)
	}
	return fmt.Sprintf("%v", v)
}
