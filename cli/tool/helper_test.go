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
	"fmt"

	"devt.de/krotik/common/termutil"

	"github.com/krotik/lox/util"
)

/*
testConsoleLineTerminal is a testing terminal with canned input lines
which collects all output in a buffer.
*/
type testConsoleLineTerminal struct {
	in  []string
	out bytes.Buffer
}

func (t *testConsoleLineTerminal) StartTerm() error {
	return nil
}

func (t *testConsoleLineTerminal) AddKeyHandler(handler termutil.KeyHandler) {
}

func (t *testConsoleLineTerminal) NextLine() (string, error) {
	var err error
	var ret string

	if len(t.in) > 0 {
		ret = t.in[0]
		t.in = t.in[1:]
	} else {
		err = fmt.Errorf("Input is empty in testConsoleLineTerminal")
	}
	return ret, err
}

func (t *testConsoleLineTerminal) NextLinePrompt(prompt string, echo rune) (string, error) {
	return t.NextLine()
}

func (t *testConsoleLineTerminal) WriteString(s string) {
	t.out.WriteString(s)
}

func (t *testConsoleLineTerminal) Write(p []byte) (n int, err error) {
	return t.out.Write(p)
}

func (t *testConsoleLineTerminal) StopTerm() {
}

/*
testInterpreterBuffers holds the redirected I/O of a test interpreter.
*/
type testInterpreterBuffers struct {
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	logOut *bytes.Buffer
	term   *testConsoleLineTerminal
}

/*
newTestInterpreter creates a CLIInterpreter with all I/O redirected into
internal buffers.
*/
func newTestInterpreter(input ...string) (*CLIInterpreter, *testInterpreterBuffers) {
	bufs := &testInterpreterBuffers{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		logOut: &bytes.Buffer{},
		term:   &testConsoleLineTerminal{in: input},
	}

	tin := NewCLIInterpreter()
	tin.Interp.Stdout = bufs.stdout
	tin.Stderr = bufs.stderr
	tin.LogOut = bufs.logOut
	tin.Term = bufs.term
	tin.Logger = util.NewMemoryLogger(10)

	return tin, bufs
}
