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
	"devt.de/krotik/common/stringutil"
)

/*
LoxCallable is implemented by every value that can appear on the left of
a call expression: a user-defined function, a class (calling it
constructs an instance) and a native function such as clock().
*/
type LoxCallable interface {

	/*
		Arity returns the number of arguments this callable expects.
	*/
	Arity() int

	/*
		Call invokes the callable with already-evaluated arguments.
	*/
	Call(interp *Interpreter, args []interface{}) (interface{}, error)
}

/*
isTruthy applies Lox's truthiness rule: nil and the boolean false are
falsey, everything else (including 0 and "") is truthy.
*/
func isTruthy(v interface{}) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

/*
isEqual implements Lox's structural equality: same-variant comparison
on primitives, nil equals only nil, and values of different Go types
are never equal.
*/
func isEqual(a, b interface{}) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a == b
}

/*
stringify renders a runtime value the way Lox's `print` statement and
the interactive prompt do: nil, booleans, numbers
with a stripped trailing ".0", strings verbatim, instances as
"<classname> instance", and callables by an identifying tag.
*/
func stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case bool:
		if val {
			return "true"
		}
		return "false"
	case float64:
		return stringutil.ConvertToString(val)
	case string:
		return val
	case *LoxInstance:
		return val.String()
	case *LoxClass:
		return val.String()
	case *LoxFunction:
		return val.String()
	case *NativeFunction:
		return val.String()
	}
	return ""
}
