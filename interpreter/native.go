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
	"time"

	"github.com/krotik/lox/scope"
)

/*
NativeFunction wraps a Go function as a Lox callable of fixed arity.
Lox's only standard library is the single `clock()` native - this type
exists so that natives could grow without touching the AST-walking
dispatch.
*/
type NativeFunction struct {
	name  string
	arity int
	fn    func(args []interface{}) (interface{}, error)
}

/*
NewNativeFunction wraps fn as a callable named name.
*/
func NewNativeFunction(name string, arity int, fn func(args []interface{}) (interface{}, error)) *NativeFunction {
	return &NativeFunction{name: name, arity: arity, fn: fn}
}

/*
Arity returns the native's fixed argument count.
*/
func (n *NativeFunction) Arity() int {
	return n.arity
}

/*
Call runs the wrapped Go function.
*/
func (n *NativeFunction) Call(interp *Interpreter, args []interface{}) (interface{}, error) {
	return n.fn(args)
}

/*
String identifies a native function in a debug print.
*/
func (n *NativeFunction) String() string {
	return "<native fn " + n.name + ">"
}

/*
installGlobals binds the standard library into globals: `clock()`
returns the number of seconds since the Unix epoch as a Lox number.
*/
func installGlobals(globals *scope.Environment) {
	globals.Define("clock", NewNativeFunction("clock", 0, func(args []interface{}) (interface{}, error) {
		return float64(time.Now().UnixNano()) / float64(time.Second), nil
	}))
}
