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

package pretty

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/onflow/hrtb/ast"
	"github.com/onflow/hrtb/common"
	hrtbErrors "github.com/onflow/hrtb/errors"
)

type testError struct {
	ast.Range
}

func (testError) Error() string {
	return "test error"
}

type testNote struct {
	message string
}

func (n testNote) Message() string {
	return n.message
}

type testPositionedNote struct {
	ast.Range
	message string
}

func (n testPositionedNote) Message() string {
	return n.message
}

type testDiagnostic struct {
	ast.Range
	notes []hrtbErrors.ErrorNote
}

func (testDiagnostic) Error() string {
	return "cannot find type `T` in this scope"
}

func (testDiagnostic) ErrorCode() string {
	return "E0412"
}

func (testDiagnostic) SecondaryError() string {
	return "did you mean a universally quantified type parameter?"
}

func (d testDiagnostic) ErrorNotes() []hrtbErrors.ErrorNote {
	return d.notes
}

type testParentError struct {
	children []error
}

func (testParentError) Error() string {
	return "parent"
}

func (e testParentError) ChildErrors() []error {
	return e.children
}

func singleLineRange(offset, length int) ast.Range {
	return ast.NewRange(
		ast.NewPosition(offset, 1, offset),
		ast.NewPosition(offset+length-1, 1, offset+length-1),
	)
}

func TestPrintBrokenCode(t *testing.T) {

	t.Parallel()

	const code = `for<T> Fn(T)`
	lineCount := len(strings.Split(code, "\n"))

	location := common.StringLocation("test")

	var sb strings.Builder
	printer := NewErrorPrettyPrinter(&sb, false)
	err := printer.PrettyPrintError(
		testError{
			Range: ast.Range{
				StartPos: ast.Position{
					// NOTE: line number is after end of code
					Line:   lineCount + 2,
					Column: 0,
				},
				EndPos: ast.Position{
					Line:   lineCount,
					Column: 2,
				},
			},
		},
		location,
		map[common.Location]string{
			location: code,
		},
	)
	require.NoError(t, err)
	require.Equal(t,
		"error: test error\n"+
			" --> test:3:0\n",
		sb.String(),
	)
}

func TestPrintTabs(t *testing.T) {

	t.Parallel()

	const code = "\t  \t   Fn(T)"

	location := common.StringLocation("test")

	var sb strings.Builder
	printer := NewErrorPrettyPrinter(&sb, false)
	err := printer.PrettyPrintError(
		testError{
			Range: ast.Range{
				StartPos: ast.Position{
					Line:   1,
					Column: 7,
				},
				EndPos: ast.Position{
					Line:   1,
					Column: 8,
				},
			},
		},
		location,
		map[common.Location]string{
			location: code,
		},
	)
	require.NoError(t, err)
	require.Equal(t,
		"error: test error\n"+
			" --> test:1:7\n"+
			"  |\n"+
			"1 | \t  \t   Fn(T)\n"+
			"  | \t  \t   ^^\n",
		sb.String(),
	)
}

func TestPrintWideCharacters(t *testing.T) {

	t.Parallel()

	const code = "Fn(日本) -> T"

	location := common.StringLocation("test")

	// `T` is at byte offset 14, but at display column 12
	var sb strings.Builder
	printer := NewErrorPrettyPrinter(&sb, false)
	err := printer.PrettyPrintError(
		testError{
			Range: singleLineRange(14, 1),
		},
		location,
		map[common.Location]string{
			location: code,
		},
	)
	require.NoError(t, err)
	require.Equal(t,
		"error: test error\n"+
			" --> test:1:14\n"+
			"  |\n"+
			"1 | Fn(日本) -> T\n"+
			"  | "+strings.Repeat(" ", 12)+"^\n",
		sb.String(),
	)
}

func TestPrintDiagnostic(t *testing.T) {

	t.Parallel()

	const code = "F: Fn() -> T"

	location := common.StringLocation("test")

	var sb strings.Builder
	printer := NewErrorPrettyPrinter(&sb, false)
	err := printer.PrettyPrintError(
		testDiagnostic{
			Range: singleLineRange(11, 1),
			notes: []hrtbErrors.ErrorNote{
				testNote{message: "cannot find type `T`"},
				testNote{message: "introduce universal quantification with `for<T>`"},
			},
		},
		location,
		map[common.Location]string{
			location: code,
		},
	)
	require.NoError(t, err)
	require.Equal(t,
		"error[E0412]: cannot find type `T` in this scope\n"+
			" --> test:1:11\n"+
			"  |\n"+
			"1 | F: Fn() -> T\n"+
			"  | "+strings.Repeat(" ", 11)+"^ did you mean a universally quantified type parameter?\n"+
			"  = note: cannot find type `T`\n"+
			"          introduce universal quantification with `for<T>`\n",
		sb.String(),
	)
}

func TestPrintPositionedNote(t *testing.T) {

	t.Parallel()

	const code = "for<F> Fn(F) where F: Fn(F)"

	location := common.NewFileLocation("bounds.txt", 10)

	var sb strings.Builder
	printer := NewErrorPrettyPrinter(&sb, false)
	err := printer.PrettyPrintError(
		testDiagnostic{
			Range: singleLineRange(25, 1),
			notes: []hrtbErrors.ErrorNote{
				testPositionedNote{
					Range:   singleLineRange(4, 1),
					message: "first declared here",
				},
			},
		},
		location,
		map[common.Location]string{
			location: code,
		},
	)
	require.NoError(t, err)
	require.Equal(t,
		"error[E0412]: cannot find type `T` in this scope\n"+
			"  --> bounds.txt:10:25\n"+
			"   |\n"+
			"10 | for<F> Fn(F) where F: Fn(F)\n"+
			"   | "+strings.Repeat(" ", 25)+"^ did you mean a universally quantified type parameter?\n"+
			"   |\n"+
			"10 | for<F> Fn(F) where F: Fn(F)\n"+
			"   |     - first declared here\n",
		sb.String(),
	)
}

func TestPrintParentError(t *testing.T) {

	t.Parallel()

	const code = "Fn(T, U)"

	location := common.StringLocation("test")

	var sb strings.Builder
	printer := NewErrorPrettyPrinter(&sb, false)
	err := printer.PrettyPrintError(
		testParentError{
			children: []error{
				testError{Range: singleLineRange(3, 1)},
				testParentError{
					children: []error{
						testError{Range: singleLineRange(6, 1)},
					},
				},
			},
		},
		location,
		map[common.Location]string{
			location: code,
		},
	)
	require.NoError(t, err)
	require.Equal(t,
		"error: test error\n"+
			" --> test:1:3\n"+
			"  |\n"+
			"1 | Fn(T, U)\n"+
			"  |    ^\n"+
			"\n"+
			"error: test error\n"+
			" --> test:1:6\n"+
			"  |\n"+
			"1 | Fn(T, U)\n"+
			"  |       ^\n",
		sb.String(),
	)
}

type failingWriter struct{}

var errWriteFailed = errors.New("write failed")

func (failingWriter) Write(_ []byte) (int, error) {
	return 0, errWriteFailed
}

func TestPrintWriteFailure(t *testing.T) {

	t.Parallel()

	printer := NewErrorPrettyPrinter(failingWriter{}, false)
	err := printer.PrettyPrintError(
		testError{Range: singleLineRange(0, 1)},
		nil,
		nil,
	)
	require.ErrorIs(t, err, errWriteFailed)
}

func TestPrintColor(t *testing.T) {

	t.Parallel()

	var sb strings.Builder
	printer := NewErrorPrettyPrinter(&sb, true)
	err := printer.PrettyPrintError(
		testError{Range: singleLineRange(0, 1)},
		nil,
		nil,
	)
	require.NoError(t, err)
	require.Contains(t, sb.String(), "\x1b[")
	require.Contains(t, sb.String(), "test error")
}
