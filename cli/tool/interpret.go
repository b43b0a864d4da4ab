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
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"devt.de/krotik/common/datautil"
	"devt.de/krotik/common/fileutil"
	"devt.de/krotik/common/termutil"

	"github.com/krotik/lox/config"
	"github.com/krotik/lox/interpreter"
	"github.com/krotik/lox/parser"
	"github.com/krotik/lox/util"
)

/*
CLIInterpreter is a commandline interpreter for Lox. It owns one core
interpreter instance for its lifetime, so consecutive console lines (or
a script followed by a console session) share one global environment.
*/
type CLIInterpreter struct {
	Interp *interpreter.Interpreter // Core interpreter holding the environment chain

	// Parameter these can either be set programmatically or via CLI args

	LogFile  *string // Logfile (blank for stdout)
	LogLevel *string // Log level string (Debug, Info, Error)

	// User terminal

	Term termutil.ConsoleLineTerminal

	// Log output

	Logger util.Logger
	LogOut io.Writer

	// Error stream for diagnostics

	Stderr io.Writer

	// History of console input lines

	history *datautil.RingBuffer
}

/*
NewCLIInterpreter creates a new commandline interpreter for Lox.
*/
func NewCLIInterpreter() *CLIInterpreter {
	return &CLIInterpreter{
		Interp:  interpreter.NewInterpreter(osStdout),
		LogOut:  osStdout,
		Stderr:  osStderr,
		history: datautil.NewRingBuffer(config.Int(config.ReplHistorySize)),
	}
}

/*
CreateLogger creates the logger of this interpreter if none was set. A
non-empty LogFile directs log output into a size-rolled file, otherwise
the console is used. A non-empty LogLevel wraps the logger with level
based filtering. Setting the LogQuiet config discards all log output.
*/
func (i *CLIInterpreter) CreateLogger() error {
	var logger util.Logger
	var err error

	if i.Logger != nil {
		return nil
	}

	if config.Bool(config.LogQuiet) {
		i.Logger = util.NewNullLogger()
		return nil
	}

	// Check if we should log to a file

	if i.LogFile != nil && *i.LogFile != "" {
		var logWriter io.Writer

		logFileRollover := fileutil.SizeBasedRolloverCondition(1000000) // Each file can be up to a megabyte
		logWriter, err = fileutil.NewMultiFileBuffer(*i.LogFile, fileutil.ConsecutiveNumberIterator(10), logFileRollover)
		logger = util.NewBufferLogger(logWriter)

	} else {

		// Log to the console by default

		logger = util.NewStdOutLogger()
	}

	// Set the log level

	if err == nil {
		if i.LogLevel != nil && *i.LogLevel != "" {
			logger, err = util.NewLogLevelLogger(logger, *i.LogLevel)
		}

		if err == nil {
			i.Logger = logger
		}
	}

	return err
}

/*
CreateTerm creates a new console terminal for stdout.
*/
func (i *CLIInterpreter) CreateTerm() error {
	var err error

	if i.Term == nil {
		i.Term, err = termutil.NewConsoleLineTerminal(os.Stdout)
	}

	return err
}

/*
Run pushes a source text through the full pipeline - lex, parse, resolve,
interpret - and returns the process status for the batch. Each stage
short-circuits the next one: a failed earlier stage suppresses later
stages. All diagnostics go to the error stream.
*/
func (i *CLIInterpreter) Run(name string, src string) int {

	tokens, lexErrors := parser.Lex(name, src)
	if len(lexErrors) > 0 {
		for _, e := range lexErrors {
			fmt.Fprintln(i.Stderr, e.Error())
		}
		return StatusCompile
	}

	stmts, parseErrors := parser.Parse(name, tokens)
	if len(parseErrors) > 0 {
		for _, e := range parseErrors {
			fmt.Fprintln(i.Stderr, e.Error())
		}
		return StatusCompile
	}

	locals, resolveErrors := interpreter.Resolve(name, stmts)
	if len(resolveErrors) > 0 {
		for _, e := range resolveErrors {
			fmt.Fprintln(i.Stderr, e.Error())
		}
		return StatusCompile
	}

	if i.Logger != nil {
		i.Logger.LogDebug(fmt.Sprintf("Resolved %v statements of %v", len(stmts), name))
	}

	if err := i.Interp.Interpret(name, stmts, locals); err != nil {
		fmt.Fprintln(i.Stderr, err.Error())
		return StatusRuntime
	}

	return StatusOk
}

/*
RunFile executes a script file and returns the process status.
*/
func (i *CLIInterpreter) RunFile(path string) int {

	if ok, _ := fileutil.PathExists(path); !ok {
		fmt.Fprintln(i.Stderr, fmt.Sprintf("Could not open %v", path))
		return StatusUsage
	}

	src, err := ioutil.ReadFile(path)
	if err != nil {
		fmt.Fprintln(i.Stderr, fmt.Sprintf("Could not read %v: %v", path, err))
		return StatusUsage
	}

	if err := i.CreateLogger(); err != nil {
		fmt.Fprintln(i.Stderr, err.Error())
		return StatusUsage
	}

	if i.Logger != nil {
		i.Logger.LogDebug(fmt.Sprintf("Running %v", path))
	}

	return i.Run(path, string(src))
}

/*
Interact starts the interactive console in the current tty. Expression
statements echo their value and a runtime error aborts only the current
line, never the session.
*/
func (i *CLIInterpreter) Interact() int {
	var line string

	i.Interp.Interactive = true

	if err := i.CreateLogger(); err != nil {
		fmt.Fprintln(i.Stderr, err.Error())
		return StatusUsage
	}

	if err := i.CreateTerm(); err != nil {
		fmt.Fprintln(i.Stderr, err.Error())
		return StatusUsage
	}

	fmt.Fprintln(i.LogOut, fmt.Sprintf("Lox %v", config.ProductVersion))

	if lll, ok := i.Logger.(*util.LogLevelLogger); ok {
		fmt.Fprintln(i.LogOut, fmt.Sprintf("Log level: %v", lll.Level()))
	}

	// Add history functionality without file persistence

	term, err := termutil.AddHistoryMixin(i.Term, "",
		func(s string) bool {
			return i.isExitLine(s)
		})

	if err == nil {
		i.Term = term

		if err = i.Term.StartTerm(); err == nil {
			defer i.Term.StopTerm()

			fmt.Fprintln(i.LogOut, "Type 'exit!' or 'quit!' to exit the shell and '?' to get help")

			prompt := config.Str(config.ReplPrompt)

			line, err = i.Term.NextLinePrompt(prompt, 0x0)
			for err == nil && !i.isExitLine(line) {
				i.HandleInput(i.Term, strings.TrimSpace(line))

				line, err = i.Term.NextLinePrompt(prompt, 0x0)
			}
		}
	}

	if err != nil && err != io.EOF {
		fmt.Fprintln(i.Stderr, err.Error())
	}

	return StatusOk
}

/*
isExitLine returns if a given input line should exit the interpreter.
*/
func (i *CLIInterpreter) isExitLine(s string) bool {
	return s == "exit!" || s == "quit!" || s == "\x04"
}

/*
HandleInput handles one console input line: the help and introspection
commands, or a batch of Lox statements.
*/
func (i *CLIInterpreter) HandleInput(ot OutputTerminal, line string) {

	// Process the entered line

	if line == "?" {

		// Show help

		ot.WriteString(fmt.Sprintf("Lox %v\n", config.ProductVersion))
		ot.WriteString(fmt.Sprint("\n"))
		ot.WriteString(fmt.Sprint("Console supports all normal Lox statements and the following special commands:\n"))
		ot.WriteString(fmt.Sprint("\n"))
		ot.WriteString(fmt.Sprint("    @env - List all variables bound in the global environment.\n"))
		ot.WriteString(fmt.Sprint("    @hist - Show the console input history.\n"))
		ot.WriteString(fmt.Sprint("\n"))
		ot.WriteString(fmt.Sprint("Type 'exit!' or 'quit!' to leave the console.\n"))

	} else if line == "@env" {

		for _, name := range i.Interp.Globals.Names() {
			ot.WriteString(fmt.Sprintln(name))
		}

	} else if line == "@hist" {

		for _, entry := range i.history.Slice() {
			ot.WriteString(fmt.Sprintln(entry))
		}

	} else if line != "" {
		i.history.Add(line)

		i.Run("console input", line)
	}
}
