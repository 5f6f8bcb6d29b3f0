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

// Package pretty renders errors with source excerpts,
// in the style of compiler diagnostics.
package pretty

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/logrusorgru/aurora/v4"
	"github.com/rivo/uniseg"

	"github.com/onflow/hrtb/ast"
	"github.com/onflow/hrtb/common"
	"github.com/onflow/hrtb/errors"
)

const errorPrefix = "error"
const excerptArrow = "--> "
const excerptBar = "|"
const notePrefix = "= note: "
const primaryMarker = "^"
const secondaryMarker = "-"

func colorizeError(message string) string {
	return aurora.Colorize(message, aurora.RedFg|aurora.BrightFg|aurora.BoldFm).String()
}

func colorizeMeta(message string) string {
	return aurora.Colorize(message, aurora.BlueFg|aurora.BrightFg|aurora.BoldFm).String()
}

func colorizeMessage(message string) string {
	return aurora.Colorize(message, aurora.BoldFm).String()
}

func colorizeNote(message string) string {
	return aurora.Colorize(message, aurora.CyanFg|aurora.BoldFm).String()
}

// HasLocation is implemented by errors which were reported for a specific location.
type HasLocation interface {
	ImportLocation() common.Location
}

type ErrorPrettyPrinter struct {
	writer   io.Writer
	useColor bool
}

func NewErrorPrettyPrinter(writer io.Writer, useColor bool) ErrorPrettyPrinter {
	return ErrorPrettyPrinter{
		writer:   writer,
		useColor: useColor,
	}
}

type writeError struct {
	err error
}

func (p ErrorPrettyPrinter) writeString(str string) {
	_, err := io.WriteString(p.writer, str)
	if err != nil {
		panic(writeError{err: err})
	}
}

// PrettyPrintError writes the error and all its child errors.
// The codes map each location to the source the error was reported for.
func (p ErrorPrettyPrinter) PrettyPrintError(
	err error,
	location common.Location,
	codes map[common.Location]string,
) (printErr error) {

	defer func() {
		if r := recover(); r != nil {
			if writeErr, ok := r.(writeError); ok {
				printErr = writeErr.err
				return
			}
			panic(r)
		}
	}()

	p.prettyPrintError(err, location, codes, true)

	return nil
}

func (p ErrorPrettyPrinter) prettyPrintError(
	err error,
	location common.Location,
	codes map[common.Location]string,
	first bool,
) bool {
	if hasLocation, ok := err.(HasLocation); ok {
		location = hasLocation.ImportLocation()
	}

	if parentError, ok := err.(errors.ParentError); ok {
		for _, childErr := range parentError.ChildErrors() {
			if !p.prettyPrintError(childErr, location, codes, first) {
				first = false
			}
		}
		return first
	}

	if !first {
		p.writeString("\n")
	}

	code, hasCode := codes[location]
	p.writeError(err, location, code, hasCode)

	return false
}

func (p ErrorPrettyPrinter) writeError(
	err error,
	location common.Location,
	code string,
	hasCode bool,
) {
	header := errorPrefix
	if errorCode, ok := err.(errors.HasErrorCode); ok && errorCode.ErrorCode() != "" {
		header += "[" + errorCode.ErrorCode() + "]"
	}

	message := err.Error()
	if p.useColor {
		p.writeString(colorizeError(header) + colorizeMessage(": "+message))
	} else {
		p.writeString(header + ": " + message)
	}
	p.writeString("\n")

	positioned, ok := err.(ast.HasPosition)
	if !ok {
		return
	}

	startPos := positioned.StartPosition()
	endPos := positioned.EndPosition()

	var lines []string
	if hasCode {
		lines = strings.Split(code, "\n")
	}

	gutterWidth := p.gutterWidth(location, startPos, lines, err)

	p.writeArrow(location, startPos, gutterWidth)

	if startPos.Line < 1 || startPos.Line > len(lines) {
		return
	}

	var secondaryMessage string
	if secondaryError, ok := err.(errors.SecondaryError); ok {
		secondaryMessage = secondaryError.SecondaryError()
	}

	p.writeCodeExcerpt(
		location,
		lines,
		startPos,
		endPos,
		gutterWidth,
		primaryMarker,
		secondaryMessage,
		p.maybeColorizeError,
	)

	if errorNotes, ok := err.(errors.ErrorNotes); ok {
		p.writeNotes(location, lines, errorNotes.ErrorNotes(), gutterWidth)
	}
}

func (p ErrorPrettyPrinter) maybeColorizeError(message string) string {
	if !p.useColor {
		return message
	}
	return colorizeError(message)
}

func (p ErrorPrettyPrinter) maybeColorizeMeta(message string) string {
	if !p.useColor {
		return message
	}
	return colorizeMeta(message)
}

func (p ErrorPrettyPrinter) maybeColorizeNote(message string) string {
	if !p.useColor {
		return message
	}
	return colorizeNote(message)
}

// gutterWidth returns the width of the widest line number shown for the error
func (p ErrorPrettyPrinter) gutterWidth(
	location common.Location,
	startPos ast.Position,
	lines []string,
	err error,
) int {
	maxLine := startPos.Line

	if errorNotes, ok := err.(errors.ErrorNotes); ok {
		for _, note := range errorNotes.ErrorNotes() {
			positioned, ok := note.(ast.HasPosition)
			if !ok {
				continue
			}
			line := positioned.StartPosition().Line
			if line > maxLine && line <= len(lines) {
				maxLine = line
			}
		}
	}

	return len(strconv.Itoa(common.LineNumber(location, maxLine)))
}

func (p ErrorPrettyPrinter) writeArrow(location common.Location, startPos ast.Position, gutterWidth int) {
	p.writeString(strings.Repeat(" ", gutterWidth))
	p.writeString(p.maybeColorizeMeta(excerptArrow))

	if location != nil {
		p.writeString(location.String())
		p.writeString(":")
	}

	p.writeString(fmt.Sprintf(
		"%d:%d\n",
		common.LineNumber(location, startPos.Line),
		startPos.Column,
	))
}

func (p ErrorPrettyPrinter) writeCodeExcerpt(
	location common.Location,
	lines []string,
	startPos ast.Position,
	endPos ast.Position,
	gutterWidth int,
	marker string,
	message string,
	colorize func(string) string,
) {
	gutter := strings.Repeat(" ", gutterWidth+1)
	emptyGutter := p.maybeColorizeMeta(gutter + excerptBar)

	line := lines[startPos.Line-1]

	lineNumber := strconv.Itoa(common.LineNumber(location, startPos.Line))
	lineNumber = strings.Repeat(" ", gutterWidth-len(lineNumber)) + lineNumber

	p.writeString(emptyGutter + "\n")
	p.writeString(p.maybeColorizeMeta(lineNumber+" "+excerptBar) + " " + line + "\n")

	startColumn := startPos.Column
	if startColumn > len(line) {
		startColumn = len(line)
	}

	endColumn := len(line) - 1
	if endPos.Line == startPos.Line && endPos.Column < endColumn {
		endColumn = endPos.Column
	}

	indicator := marker
	if endColumn >= startColumn {
		width := uniseg.StringWidth(line[startColumn : endColumn+1])
		if width > 1 {
			indicator = strings.Repeat(marker, width)
		}
	}

	text := excerptPadding(line[:startColumn]) + indicator
	if message != "" {
		text += " " + message
	}

	p.writeString(emptyGutter + " " + colorize(text) + "\n")
}

// excerptPadding returns whitespace which has the same display width as the given prefix of a line.
// Tabs are kept, so the marker lines up with the code.
func excerptPadding(prefix string) string {
	var builder strings.Builder

	state := -1
	remaining := prefix
	for len(remaining) > 0 {
		var cluster string
		var width int
		cluster, remaining, width, state = uniseg.FirstGraphemeClusterInString(remaining, state)
		if cluster == "\t" {
			builder.WriteString("\t")
			continue
		}
		builder.WriteString(strings.Repeat(" ", width))
	}

	return builder.String()
}

func (p ErrorPrettyPrinter) writeNotes(
	location common.Location,
	lines []string,
	notes []errors.ErrorNote,
	gutterWidth int,
) {
	var unpositioned []string

	for _, note := range notes {
		positioned, ok := note.(ast.HasPosition)
		if !ok {
			unpositioned = append(unpositioned, note.Message())
			continue
		}

		startPos := positioned.StartPosition()
		if startPos.Line < 1 || startPos.Line > len(lines) {
			unpositioned = append(unpositioned, note.Message())
			continue
		}

		p.writeCodeExcerpt(
			location,
			lines,
			startPos,
			positioned.EndPosition(),
			gutterWidth,
			secondaryMarker,
			note.Message(),
			p.maybeColorizeNote,
		)
	}

	if len(unpositioned) == 0 {
		return
	}

	prefix := strings.Repeat(" ", gutterWidth+1) + notePrefix
	continuation := strings.Repeat(" ", len(prefix))

	for i, message := range unpositioned {
		if i == 0 {
			p.writeString(p.maybeColorizeMeta(strings.Repeat(" ", gutterWidth+1)+"=") + " " + p.maybeColorizeNote("note:") + " ")
		} else {
			p.writeString(continuation)
		}
		p.writeString(message + "\n")
	}
}
