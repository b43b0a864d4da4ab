/*
 * Lox
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

/*
Package interpreter resolves variable references statically (Resolver,
resolver.go) and then walks the resulting AST to execute it
(Interpreter, this file), owning the live environment chain, the
callable values (functions, classes, natives) and the runtime value
domain.
*/
package interpreter

import (
	"fmt"
	"io"

	"github.com/krotik/lox/parser"
	"github.com/krotik/lox/scope"
	"github.com/krotik/lox/util"
)

/*
returnSignal carries a `return` statement's value up to the enclosing
function call frame. It is panicked, never returned as an error - a
non-local exit is control flow, not a failure - mirroring the
panic/recover idiom the parser already uses for its own
synchronize-on-error control flow.
*/
type returnSignal struct {
	value interface{}
}

/*
Interpreter walks a resolved program. Globals is the outermost
environment; current is the active one, swapped for the duration of
every block and function call. locals maps AST node
identity to resolved scope distance, as produced by Resolve.
*/
type Interpreter struct {
	Globals *scope.Environment
	current *scope.Environment
	locals  map[interface{}]int
	source  string
	Stdout  io.Writer

	// Interactive, when set, makes expression statements print their
	// value - the only semantic difference between script and REPL
	// execution.
	Interactive bool
}

/*
NewInterpreter creates an interpreter writing `print` output to out and
installs the standard library (`clock`) into its global environment.
*/
func NewInterpreter(out io.Writer) *Interpreter {
	globals := scope.NewEnvironment()
	installGlobals(globals)

	return &Interpreter{
		Globals: globals,
		current: globals,
		Stdout:  out,
	}
}

/*
Interpret executes a resolved program against this interpreter's
environment. It stops at the first runtime error: a runtime error
aborts the current top-level statement batch (a script run, or one
REPL line).
*/
func (in *Interpreter) Interpret(source string, stmts []parser.Stmt, locals map[interface{}]int) error {
	in.source = source
	in.locals = locals

	for _, stmt := range stmts {
		if err := in.execute(stmt); err != nil {
			if rt, ok := err.(*util.RuntimeError); ok && rt.Source == "" {
				rt.Source = in.source
			}
			return err
		}
	}

	return nil
}

func (in *Interpreter) runtimeError(line int, format string, args ...interface{}) error {
	return &util.RuntimeError{Source: in.source, Line: line, Message: fmt.Sprintf(format, args...)}
}

// Statement execution
// ====================

func (in *Interpreter) execute(s parser.Stmt) error {
	switch st := s.(type) {

	case *parser.ExpressionStmt:
		v, err := in.evaluate(st.Expression)
		if err != nil {
			return err
		}
		if in.Interactive {
			fmt.Fprintln(in.Stdout, stringify(v))
		}
		return nil

	case *parser.PrintStmt:
		v, err := in.evaluate(st.Expression)
		if err != nil {
			return err
		}
		fmt.Fprintln(in.Stdout, stringify(v))
		return nil

	case *parser.VarStmt:
		var value interface{}
		if st.Initializer != nil {
			v, err := in.evaluate(st.Initializer)
			if err != nil {
				return err
			}
			value = v
		}
		in.current.Define(st.Name.Lexeme, value)
		return nil

	case *parser.BlockStmt:
		return in.executeBlock(st.Statements, in.current.NewChild())

	case *parser.IfStmt:
		cond, err := in.evaluate(st.Condition)
		if err != nil {
			return err
		}
		if isTruthy(cond) {
			return in.execute(st.Then)
		}
		if st.Else != nil {
			return in.execute(st.Else)
		}
		return nil

	case *parser.WhileStmt:
		for {
			cond, err := in.evaluate(st.Condition)
			if err != nil {
				return err
			}
			if !isTruthy(cond) {
				return nil
			}
			if err := in.execute(st.Body); err != nil {
				return err
			}
		}

	case *parser.FunctionStmt:
		fn := NewLoxFunction(st, in.current, false)
		in.current.Define(st.Name.Lexeme, fn)
		return nil

	case *parser.ReturnStmt:
		var value interface{}
		if st.Value != nil {
			v, err := in.evaluate(st.Value)
			if err != nil {
				return err
			}
			value = v
		}
		panic(returnSignal{value: value})

	case *parser.ClassStmt:
		return in.executeClass(st)

	default:
		return in.runtimeError(0, "Unknown statement %T", s)
	}
}

/*
executeBlock runs stmts with env as the active environment, guaranteeing
current is restored to its prior value on every exit path - normal
completion, an error return, or a panicked non-local return.
*/
func (in *Interpreter) executeBlock(stmts []parser.Stmt, env *scope.Environment) error {
	previous := in.current
	in.current = env
	defer func() { in.current = previous }()

	for _, stmt := range stmts {
		if err := in.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) executeClass(st *parser.ClassStmt) error {
	var superclass *LoxClass

	if st.Superclass != nil {
		v, err := in.evaluate(st.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*LoxClass)
		if !ok {
			return in.runtimeError(st.Superclass.Name.Line, "Superclass must be a class.")
		}
		superclass = sc
	}

	in.current.Define(st.Name.Lexeme, nil)

	methodEnv := in.current
	if st.Superclass != nil {
		methodEnv = in.current.NewChild()
		methodEnv.Define("super", superclass)
	}

	methods := make(map[string]*LoxFunction, len(st.Methods))
	for _, m := range st.Methods {
		methods[m.Name.Lexeme] = NewLoxFunction(m, methodEnv, m.Name.Lexeme == "init")
	}

	class := NewLoxClass(st.Name.Lexeme, superclass, methods)

	return in.current.Assign(st.Name.Lexeme, class)
}

// Expression evaluation
// =====================

func (in *Interpreter) evaluate(e parser.Expr) (interface{}, error) {
	switch ex := e.(type) {

	case *parser.LiteralExpr:
		return ex.Value, nil

	case *parser.GroupingExpr:
		return in.evaluate(ex.Expression)

	case *parser.VariableExpr:
		return in.lookUpVariable(ex.Name, ex)

	case *parser.AssignExpr:
		value, err := in.evaluate(ex.Value)
		if err != nil {
			return nil, err
		}
		if dist, ok := in.locals[ex]; ok {
			in.current.AssignAt(dist, ex.Name.Lexeme, value)
		} else if err := in.Globals.Assign(ex.Name.Lexeme, value); err != nil {
			return nil, in.runtimeError(ex.Name.Line, "Undefined variable '%s'.", ex.Name.Lexeme)
		}
		return value, nil

	case *parser.LogicalExpr:
		left, err := in.evaluate(ex.Left)
		if err != nil {
			return nil, err
		}
		if ex.Operator.Kind == parser.OR {
			if isTruthy(left) {
				return left, nil
			}
		} else if !isTruthy(left) {
			return left, nil
		}
		return in.evaluate(ex.Right)

	case *parser.UnaryExpr:
		return in.evalUnary(ex)

	case *parser.BinaryExpr:
		return in.evalBinary(ex)

	case *parser.CallExpr:
		return in.evalCall(ex)

	case *parser.GetExpr:
		obj, err := in.evaluate(ex.Object)
		if err != nil {
			return nil, err
		}
		instance, ok := obj.(*LoxInstance)
		if !ok {
			return nil, in.runtimeError(ex.Name.Line, "Only instances have properties.")
		}
		return instance.Get(ex.Name)

	case *parser.SetExpr:
		obj, err := in.evaluate(ex.Object)
		if err != nil {
			return nil, err
		}
		instance, ok := obj.(*LoxInstance)
		if !ok {
			return nil, in.runtimeError(ex.Name.Line, "Only instances have fields.")
		}
		value, err := in.evaluate(ex.Value)
		if err != nil {
			return nil, err
		}
		instance.Set(ex.Name, value)
		return value, nil

	case *parser.ThisExpr:
		return in.lookUpVariable(ex.Keyword, ex)

	case *parser.SuperExpr:
		return in.evalSuper(ex)

	default:
		return nil, in.runtimeError(0, "Unknown expression %T", e)
	}
}

func (in *Interpreter) lookUpVariable(name parser.Token, node interface{}) (interface{}, error) {
	if dist, ok := in.locals[node]; ok {
		return in.current.GetAt(dist, name.Lexeme), nil
	}
	v, err := in.Globals.Get(name.Lexeme)
	if err != nil {
		return nil, in.runtimeError(name.Line, "Undefined variable '%s'.", name.Lexeme)
	}
	return v, nil
}

func (in *Interpreter) evalUnary(ex *parser.UnaryExpr) (interface{}, error) {
	right, err := in.evaluate(ex.Right)
	if err != nil {
		return nil, err
	}

	switch ex.Operator.Kind {
	case parser.MINUS:
		n, ok := right.(float64)
		if !ok {
			return nil, in.runtimeError(ex.Operator.Line, "Operand must be a number.")
		}
		return -n, nil
	case parser.BANG:
		return !isTruthy(right), nil
	}

	return nil, in.runtimeError(ex.Operator.Line, "Unknown unary operator '%s'.", ex.Operator.Lexeme)
}

func (in *Interpreter) evalBinary(ex *parser.BinaryExpr) (interface{}, error) {
	left, err := in.evaluate(ex.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evaluate(ex.Right)
	if err != nil {
		return nil, err
	}

	switch ex.Operator.Kind {
	case parser.PLUS:
		if ln, ok := left.(float64); ok {
			if rn, ok := right.(float64); ok {
				return ln + rn, nil
			}
		}
		if ls, ok := left.(string); ok {
			if rs, ok := right.(string); ok {
				return ls + rs, nil
			}
		}
		return nil, in.runtimeError(ex.Operator.Line, "Operands must be two numbers or two strings.")

	case parser.MINUS, parser.STAR, parser.SLASH,
		parser.GREATER, parser.GREATEREQUAL, parser.LESS, parser.LESSEQUAL:

		ln, lok := left.(float64)
		rn, rok := right.(float64)
		if !lok || !rok {
			return nil, in.runtimeError(ex.Operator.Line, "Operands must be numbers.")
		}

		switch ex.Operator.Kind {
		case parser.MINUS:
			return ln - rn, nil
		case parser.STAR:
			return ln * rn, nil
		case parser.SLASH:
			if rn == 0 {
				return nil, in.runtimeError(ex.Operator.Line, "Division by zero.")
			}
			return ln / rn, nil
		case parser.GREATER:
			return ln > rn, nil
		case parser.GREATEREQUAL:
			return ln >= rn, nil
		case parser.LESS:
			return ln < rn, nil
		case parser.LESSEQUAL:
			return ln <= rn, nil
		}

	case parser.EQUALEQUAL:
		return isEqual(left, right), nil
	case parser.BANGEQUAL:
		return !isEqual(left, right), nil
	}

	return nil, in.runtimeError(ex.Operator.Line, "Unknown binary operator '%s'.", ex.Operator.Lexeme)
}

func (in *Interpreter) evalCall(ex *parser.CallExpr) (interface{}, error) {
	callee, err := in.evaluate(ex.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]interface{}, len(ex.Arguments))
	for i, a := range ex.Arguments {
		v, err := in.evaluate(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	callable, ok := callee.(LoxCallable)
	if !ok {
		return nil, in.runtimeError(ex.Paren.Line, "Can only call functions and classes.")
	}

	if len(args) != callable.Arity() {
		return nil, in.runtimeError(ex.Paren.Line, "Expected %d arguments but got %d.", callable.Arity(), len(args))
	}

	return callable.Call(in, args)
}

func (in *Interpreter) evalSuper(ex *parser.SuperExpr) (interface{}, error) {
	dist := in.locals[ex]

	superclass := in.current.GetAt(dist, "super").(*LoxClass)
	receiver := in.current.GetAt(dist-1, "this").(*LoxInstance)

	method, ok := superclass.FindMethod(ex.Method.Lexeme)
	if !ok {
		return nil, in.runtimeError(ex.Method.Line, "Undefined property '%s'.", ex.Method.Lexeme)
	}

	return method.Bind(receiver), nil
}
