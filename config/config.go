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
Package config holds the tunables and product version of the Lox
interpreter as a default map with typed accessors.
*/
package config

import (
	"fmt"
	"strconv"

	"devt.de/krotik/common/errorutil"
)

/*
ProductVersion is the current version of the Lox interpreter.
*/
const ProductVersion = "1.0.0"

/*
Known configuration options.
*/
const (
	// MaxArgs is the cap on function parameters and call arguments.
	MaxArgs = "MaxArgs"

	// ReplHistorySize is the number of lines the interactive prompt
	// keeps in its in-memory history.
	ReplHistorySize = "ReplHistorySize"

	// ReplPrompt is the prompt string of the interactive console.
	ReplPrompt = "ReplPrompt"

	// LogQuiet suppresses all log output when set.
	LogQuiet = "LogQuiet"
)

/*
DefaultConfig is the default configuration.
*/
var DefaultConfig = map[string]interface{}{
	MaxArgs:         255,
	ReplHistorySize: 100,
	ReplPrompt:      "> ",
	LogQuiet:        false,
}

/*
Config is the actual config which is used.
*/
var Config map[string]interface{}

/*
Initialise the config.
*/
func init() {
	data := make(map[string]interface{})
	for k, v := range DefaultConfig {
		data[k] = v
	}

	Config = data
}

// Helper functions
// ================

/*
Str reads a config value as a string value.
*/
func Str(key string) string {
	return fmt.Sprint(Config[key])
}

/*
Int reads a config value as an int value.
*/
func Int(key string) int {
	ret, err := strconv.ParseInt(fmt.Sprint(Config[key]), 10, 64)

	errorutil.AssertTrue(err == nil,
		fmt.Sprintf("Could not parse config key %v: %v", key, err))

	return int(ret)
}

/*
Bool reads a config value as a boolean value.
*/
func Bool(key string) bool {
	ret, err := strconv.ParseBool(fmt.Sprint(Config[key]))

	errorutil.AssertTrue(err == nil,
		fmt.Sprintf("Could not parse config key %v: %v", key, err))

	return ret
}
