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

import "fmt"

/*
LoxClass is a runtime class value: a name, an optional superclass and
its own methods. Method lookup by name walks the superclass chain.
*/
type LoxClass struct {
	Name       string
	Superclass *LoxClass
	Methods    map[string]*LoxFunction
}

/*
NewLoxClass builds a class value.
*/
func NewLoxClass(name string, superclass *LoxClass, methods map[string]*LoxFunction) *LoxClass {
	return &LoxClass{Name: name, Superclass: superclass, Methods: methods}
}

/*
FindMethod looks up a method by name on this class, falling back to the
superclass chain.
*/
func (c *LoxClass) FindMethod(name string) (*LoxFunction, bool) {
	if m, ok := c.Methods[name]; ok {
		return m, true
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil, false
}

/*
Arity returns the arity of the `init` method, or 0 if the class defines
none.
*/
func (c *LoxClass) Arity() int {
	if init, ok := c.FindMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

/*
Call constructs a new instance and, if the class defines `init`,
invokes it bound to that instance before returning the instance -
calling a class always yields the instance, never the initializer's
own return value.
*/
func (c *LoxClass) Call(interp *Interpreter, args []interface{}) (interface{}, error) {
	instance := NewLoxInstance(c)

	if init, ok := c.FindMethod("init"); ok {
		if _, err := init.Bind(instance).Call(interp, args); err != nil {
			return nil, err
		}
	}

	return instance, nil
}

/*
String identifies a class value in a debug print.
*/
func (c *LoxClass) String() string {
	return fmt.Sprintf("<class %s>", c.Name)
}
