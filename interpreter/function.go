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
	"github.com/krotik/lox/scope"
)

/*
LoxFunction is a user-defined function or method value. It captures the
environment in effect at its declaration site (its closure) - a
function returned from an enclosing scope keeps seeing that scope's
bindings even after the scope has otherwise exited.
*/
type LoxFunction struct {
	declaration   *parser.FunctionStmt
	closure       *scope.Environment
	isInitializer bool
}

/*
NewLoxFunction wraps a function declaration with the environment active
when it was declared.
*/
func NewLoxFunction(declaration *parser.FunctionStmt, closure *scope.Environment, isInitializer bool) *LoxFunction {
	return &LoxFunction{declaration: declaration, closure: closure, isInitializer: isInitializer}
}

/*
Bind returns a copy of this function whose closure additionally binds
`this` to the given instance - a bound method.
*/
func (f *LoxFunction) Bind(instance *LoxInstance) *LoxFunction {
	env := f.closure.NewChild()
	env.Define("this", instance)
	return NewLoxFunction(f.declaration, env, f.isInitializer)
}

/*
Arity returns the number of declared parameters.
*/
func (f *LoxFunction) Arity() int {
	return len(f.declaration.Params)
}

/*
Call creates a fresh environment nested inside the function's closure,
binds parameters to the already-evaluated arguments, executes the body
and returns either the explicit return value or, for an initializer,
the bound `this`.
*/
func (f *LoxFunction) Call(interp *Interpreter, args []interface{}) (result interface{}, err error) {
	env := f.closure.NewChild()
	for i, p := range f.declaration.Params {
		env.Define(p.Lexeme, args[i])
	}

	defer func() {
		if r := recover(); r != nil {
			sig, ok := r.(returnSignal)
			if !ok {
				panic(r)
			}
			if f.isInitializer {
				result = f.closure.GetAt(0, "this")
			} else {
				result = sig.value
			}
			err = nil
		}
	}()

	err = interp.executeBlock(f.declaration.Body, env)

	if err != nil {
		return nil, err
	}

	if f.isInitializer {
		return f.closure.GetAt(0, "this"), nil
	}

	return nil, nil
}

/*
String identifies a function value in a debug print.
*/
func (f *LoxFunction) String() string {
	return fmt.Sprintf("<fn %s>", f.declaration.Name.Lexeme)
}
