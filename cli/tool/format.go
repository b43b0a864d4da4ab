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
	"path/filepath"
	"strings"

	"github.com/krotik/lox/parser"
)

/*
Format reformats all Lox files under dir which have the given file
extension, rewriting each from its own parse tree. Files which do not
lex or parse are reported on out and left untouched.
*/
func Format(dir string, ext string, out io.Writer) error {

	fmt.Fprintln(out, fmt.Sprintf("Formatting all %v files in %v", ext, dir))

	return filepath.Walk(dir,
		func(path string, i os.FileInfo, err error) error {
			if err == nil && !i.IsDir() && strings.HasSuffix(path, ext) {
				var data []byte

				if data, err = ioutil.ReadFile(path); err == nil {

					if srcFormatted, ferr := FormatSource(path, string(data)); ferr == nil {
						err = ioutil.WriteFile(path, []byte(srcFormatted), i.Mode())
					} else {
						fmt.Fprintln(out, fmt.Sprintf("Could not format %v: %v", path, ferr))
					}
				}
			}
			return err
		})
}

/*
FormatSource formats a single Lox source text. The output is the
canonical rendering of the parse tree, which re-parses to an equivalent
tree.
*/
func FormatSource(name string, src string) (string, error) {

	tokens, lexErrors := parser.Lex(name, src)
	if len(lexErrors) > 0 {
		return "", lexErrors[0]
	}

	stmts, parseErrors := parser.Parse(name, tokens)
	if len(parseErrors) > 0 {
		return "", parseErrors[0]
	}

	return parser.Print(stmts), nil
}
