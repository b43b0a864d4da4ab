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
	"github.com/krotik/lox/util"
)

/*
LoxInstance is a runtime object created by calling a class. Field
lookup shadows method lookup of the same name.
*/
type LoxInstance struct {
	class  *LoxClass
	fields map[string]interface{}
}

/*
NewLoxInstance creates a fresh, field-less instance of class.
*/
func NewLoxInstance(class *LoxClass) *LoxInstance {
	return &LoxInstance{class: class, fields: make(map[string]interface{})}
}

/*
Get reads a property: an instance field if one is set, otherwise a
method on the class (or its superclass chain) bound to this instance.
If neither exists the access is a runtime error.
*/
func (i *LoxInstance) Get(name parser.Token) (interface{}, error) {
	if v, ok := i.fields[name.Lexeme]; ok {
		return v, nil
	}

	if method, ok := i.class.FindMethod(name.Lexeme); ok {
		return method.Bind(i), nil
	}

	return nil, &util.RuntimeError{Line: name.Line, Message: "Undefined property '" + name.Lexeme + "'."}
}

/*
Set stores a field value, creating it if it did not already exist.
*/
func (i *LoxInstance) Set(name parser.Token, value interface{}) {
	i.fields[name.Lexeme] = value
}

/*
String renders an instance the way `print` would.
*/
func (i *LoxInstance) String() string {
	return fmt.Sprintf("%s instance", i.class.Name)
}
