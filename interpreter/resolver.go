/*
 * Lox
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package interpreter

import (
	"fmt"

	"github.com/krotik/lox/parser"
)

/*
ResolveError is a static-analysis error found before any code runs - a
variable used in its own initializer, a
duplicate declaration in one block, `this`/`super`/`return` used outside
their valid context, and so on.
*/
type ResolveError struct {
	Source  string
	Line    int
	Message string
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("[%s line %d] Error: %s", e.Source, e.Line, e.Message)
}

type functionKind int

const (
	fkNone functionKind = iota
	fkFunction
	fkInitializer
	fkMethod
)

type classKind int

const (
	ckNone classKind = iota
	ckClass
	ckSubclass
)

/*
Resolver walks a parsed program once before interpretation, recording for
every variable reference how many enclosing scopes separate it from its
declaration. The interpreter consults this table instead of re-walking
the environment chain at every access.
*/
type Resolver struct {
	source  string
	scopes  []map[string]bool
	locals  map[interface{}]int
	errors  []*ResolveError
	fnKind  functionKind
	clsKind classKind
}

/*
NewResolver creates a resolver for a named source.
*/
func NewResolver(source string) *Resolver {
	return &Resolver{
		source: source,
		locals: make(map[interface{}]int),
	}
}

/*
Resolve runs static analysis over a program and returns the resolved
depth table (keyed by the identity of the Expr node performing the
access) plus any static errors found.
*/
func Resolve(source string, stmts []parser.Stmt) (map[interface{}]int, []*ResolveError) {
	r := NewResolver(source)
	r.resolveStmts(stmts)
	return r.locals, r.errors
}

func (r *Resolver) error(line int, message string) {
	r.errors = append(r.errors, &ResolveError{Source: r.source, Line: line, Message: message})
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name parser.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.error(name.Line, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name parser.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

func (r *Resolver) resolveLocal(expr interface{}, name parser.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
	// Not found in any local scope - treated as global at runtime.
}

func (r *Resolver) resolveStmts(stmts []parser.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(s parser.Stmt) {
	switch st := s.(type) {

	case *parser.BlockStmt:
		r.beginScope()
		r.resolveStmts(st.Statements)
		r.endScope()

	case *parser.VarStmt:
		r.declare(st.Name)
		if st.Initializer != nil {
			r.resolveExpr(st.Initializer)
		}
		r.define(st.Name)

	case *parser.FunctionStmt:
		r.declare(st.Name)
		r.define(st.Name)
		r.resolveFunction(st, fkFunction)

	case *parser.ExpressionStmt:
		r.resolveExpr(st.Expression)

	case *parser.IfStmt:
		r.resolveExpr(st.Condition)
		r.resolveStmt(st.Then)
		if st.Else != nil {
			r.resolveStmt(st.Else)
		}

	case *parser.PrintStmt:
		r.resolveExpr(st.Expression)

	case *parser.ReturnStmt:
		if r.fnKind == fkNone {
			r.error(st.Keyword.Line, "Can't return from top-level code.")
		}
		if st.Value != nil {
			if r.fnKind == fkInitializer {
				r.error(st.Keyword.Line, "Can't return a value from an initializer.")
			}
			r.resolveExpr(st.Value)
		}

	case *parser.WhileStmt:
		r.resolveExpr(st.Condition)
		r.resolveStmt(st.Body)

	case *parser.ClassStmt:
		r.resolveClass(st)

	default:
		panic(fmt.Sprintf("resolver: unhandled statement %T", s))
	}
}

func (r *Resolver) resolveClass(st *parser.ClassStmt) {
	enclosingClass := r.clsKind
	r.clsKind = ckClass

	r.declare(st.Name)
	r.define(st.Name)

	if st.Superclass != nil {
		if st.Superclass.Name.Lexeme == st.Name.Lexeme {
			r.error(st.Superclass.Name.Line, "A class can't inherit from itself.")
		}
		r.clsKind = ckSubclass
		r.resolveExpr(st.Superclass)

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, m := range st.Methods {
		kind := fkMethod
		if m.Name.Lexeme == "init" {
			kind = fkInitializer
		}
		r.resolveFunction(m, kind)
	}

	r.endScope()

	if st.Superclass != nil {
		r.endScope()
	}

	r.clsKind = enclosingClass
}

func (r *Resolver) resolveFunction(fn *parser.FunctionStmt, kind functionKind) {
	enclosingFn := r.fnKind
	r.fnKind = kind

	r.beginScope()
	for _, p := range fn.Params {
		r.declare(p)
		r.define(p)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.fnKind = enclosingFn
}

func (r *Resolver) resolveExpr(e parser.Expr) {
	switch ex := e.(type) {

	case *parser.VariableExpr:
		if len(r.scopes) > 0 {
			if ready, ok := r.scopes[len(r.scopes)-1][ex.Name.Lexeme]; ok && !ready {
				r.error(ex.Name.Line, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(ex, ex.Name)

	case *parser.AssignExpr:
		r.resolveExpr(ex.Value)
		r.resolveLocal(ex, ex.Name)

	case *parser.BinaryExpr:
		r.resolveExpr(ex.Left)
		r.resolveExpr(ex.Right)

	case *parser.LogicalExpr:
		r.resolveExpr(ex.Left)
		r.resolveExpr(ex.Right)

	case *parser.CallExpr:
		r.resolveExpr(ex.Callee)
		for _, a := range ex.Arguments {
			r.resolveExpr(a)
		}

	case *parser.GetExpr:
		r.resolveExpr(ex.Object)

	case *parser.SetExpr:
		r.resolveExpr(ex.Value)
		r.resolveExpr(ex.Object)

	case *parser.GroupingExpr:
		r.resolveExpr(ex.Expression)

	case *parser.LiteralExpr:
		// Nothing to resolve.

	case *parser.UnaryExpr:
		r.resolveExpr(ex.Right)

	case *parser.ThisExpr:
		if r.clsKind == ckNone {
			r.error(ex.Keyword.Line, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(ex, ex.Keyword)

	case *parser.SuperExpr:
		if r.clsKind == ckNone {
			r.error(ex.Keyword.Line, "Can't use 'super' outside of a class.")
		} else if r.clsKind != ckSubclass {
			r.error(ex.Keyword.Line, "Can't use 'super' in a class with no superclass.")
		}
		r.resolveLocal(ex, ex.Keyword)

	default:
		panic(fmt.Sprintf("resolver: unhandled expression %T", e))
	}
}
