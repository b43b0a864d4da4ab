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
Package tool contains the driver glue around the Lox core: running a
script file, the interactive console and the source formatter. It only
consumes the core's public surface - run a source, flip the interactive
flag, and report to an error stream.
*/
package tool

import (
	"io"
	"os"
)

/*
Process exit codes.
*/
const (
	StatusOk      = 0  // Successful run
	StatusUsage   = 64 // Command line usage error
	StatusCompile = 65 // Lexical, parse or resolution failure
	StatusRuntime = 70 // Runtime failure
)

/*
osStderr is a local copy of os.Stderr (used for unit tests)
*/
var osStderr io.Writer = os.Stderr

/*
osStdout is a local copy of os.Stdout (used for unit tests)
*/
var osStdout io.Writer = os.Stdout

/*
OutputTerminal is a generic output terminal which can write strings.
*/
type OutputTerminal interface {

	/*
	   WriteString write a string on this terminal.
	*/
	WriteString(s string)
}
