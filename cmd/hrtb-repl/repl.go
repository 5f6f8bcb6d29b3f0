/*
 * Cadence HRTB - Rank-N trait bound analysis
 *
 * Copyright Flow Foundation
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/logrusorgru/aurora/v4"

	"github.com/onflow/hrtb/analysis"
	"github.com/onflow/hrtb/common"
	"github.com/onflow/hrtb/config"
	"github.com/onflow/hrtb/pretty"
)

const replLocation = "repl"

const replHelpMessage = `
Enter a predicate to check it, e.g. F: for<T> Fn(T) -> String
Commands are prefixed with a dot. Valid commands are:

.exit     Exit the checker
.fix      Apply the suggested fixes to the last predicate
.help     Print this help message

Press ^D to exit`

const replAssistanceMessage = `Type '.help' for assistance.`

type command struct {
	name        string
	description string
}

var commands = []command{
	{".exit", "Exit the checker"},
	{".fix", "Apply the suggested fixes to the last predicate"},
	{".help", "Print this help message"},
}

type repl struct {
	analyzer   *analysis.Analyzer
	out        io.Writer
	useColor   bool
	lineNumber int
	last       *analysis.Result
}

func newREPL(conf config.Config, out io.Writer, useColor bool) *repl {
	return &repl{
		analyzer:   analysis.NewAnalyzer(conf.AnalysisConfig()),
		out:        out,
		useColor:   useColor,
		lineNumber: 1,
	}
}

func (r *repl) colorize(message string, color aurora.Color) string {
	if !r.useColor {
		return message
	}
	return aurora.Colorize(message, color).String()
}

func (r *repl) colorizeError(message string) string {
	return r.colorize(message, aurora.RedFg|aurora.BrightFg|aurora.BoldFm)
}

func (r *repl) colorizeResult(message string) string {
	return r.colorize(message, aurora.YellowFg|aurora.BrightFg)
}

func (r *repl) println(message string) {
	_, err := fmt.Fprintln(r.out, message)
	if err != nil {
		panic(err)
	}
}

func (r *repl) printWelcome() {
	r.println("Welcome to the higher-rank trait bound checker!\n" + replAssistanceMessage + "\n")
}

// execute handles one line of input, and returns true if the checker should exit
func (r *repl) execute(line string) (exit bool) {
	defer func() {
		r.lineNumber++
	}()

	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	if strings.HasPrefix(line, ".") {
		return r.handleCommand(line)
	}

	r.check(line)
	return false
}

func (r *repl) handleCommand(command string) (exit bool) {
	switch command {
	case ".exit":
		return true
	case ".help":
		r.println(replHelpMessage)
	case ".fix":
		r.applyFixes()
	default:
		r.println(r.colorizeError(fmt.Sprintf("Unknown command. %s", replAssistanceMessage)))
	}
	return false
}

func (r *repl) check(code string) {
	location := common.NewFileLocation(replLocation, r.lineNumber)

	result := r.analyzer.Analyze(location, code)
	r.last = result

	err := result.Err()
	if err == nil {
		r.println(r.colorizeResult(describe(result)))
		return
	}

	printErr := pretty.NewErrorPrettyPrinter(r.out, r.useColor).
		PrettyPrintError(err, location, map[common.Location]string{location: code})
	if printErr != nil {
		panic(printErr)
	}
}

func (r *repl) applyFixes() {
	if r.last == nil {
		r.println(r.colorizeError("No predicate to fix."))
		return
	}

	if len(r.last.Diagnostics.SuggestedFixes()) == 0 {
		r.println("Nothing to fix.")
		return
	}

	fixed := r.last.Fixed()
	r.println(fixed)

	// check the fixed predicate, so it can be fixed again
	r.check(fixed)
}

// describe returns the rank and the variables of a predicate without diagnostics
func describe(result *analysis.Result) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "rank %d", result.Rank())

	variables := result.Elaboration.Variables
	for i, variable := range variables {
		if i == 0 {
			builder.WriteString(": ")
		} else {
			builder.WriteString(", ")
		}
		fmt.Fprintf(
			&builder,
			"%s (%s, rank %d",
			variable.Identifier.Identifier,
			variable.Kind.Name(),
			variable.Rank,
		)
		if !result.Elaboration.IsUsed(variable) {
			builder.WriteString(", unused")
		}
		builder.WriteString(")")
	}

	return builder.String()
}

func (r *repl) suggest(document prompt.Document) []prompt.Suggest {
	word := document.GetWordBeforeCursor()
	if !strings.HasPrefix(word, ".") {
		return nil
	}

	suggests := make([]prompt.Suggest, 0, len(commands))
	for _, command := range commands {
		suggests = append(suggests, prompt.Suggest{
			Text:        command.name,
			Description: command.description,
		})
	}

	return prompt.FilterHasPrefix(suggests, word, false)
}
