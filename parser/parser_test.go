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

package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/onflow/hrtb/ast"
	"github.com/onflow/hrtb/errors"
	"github.com/onflow/hrtb/parser/lexer"
	. "github.com/onflow/hrtb/test_utils/common_utils"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func pos(offset int) ast.Position {
	return ast.Position{
		Offset: offset,
		Line:   1,
		Column: offset,
	}
}

func testParsePredicate(t *testing.T, input string) *ast.Predicate {
	t.Helper()

	predicate, err := ParsePredicate(input, Config{})
	require.NoError(t, err)
	require.NotNil(t, predicate)

	return predicate
}

func testParsePredicateErrors(t *testing.T, input string, count int) []error {
	t.Helper()

	_, err := ParsePredicate(input, Config{})
	return RequireErrors(t, err, count)
}

func TestParseErrors(t *testing.T) {

	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		errs := testParsePredicateErrors(t, "", 1)

		AssertEqualWithDiff(t,
			&UnexpectedTokenError{
				Expected: "trait bound",
				Got:      lexer.TokenEOF,
				Range:    ast.NewRange(pos(0), pos(0)),
			},
			errs[0],
		)
	})

	t.Run("unclosed quantifier", func(t *testing.T) {
		t.Parallel()

		errs := testParsePredicateErrors(t, "for<T Fn(T)", 1)

		var delimiterErr *UnbalancedDelimiterError
		require.ErrorAs(t, errs[0], &delimiterErr)

		assert.Equal(t, lexer.TokenGreater, delimiterErr.Expected)
		assert.Equal(t, lexer.TokenIdentifier, delimiterErr.Got)
		assert.Equal(t, pos(6), delimiterErr.Pos)
		assert.Equal(t, pos(3), delimiterErr.Open.StartPos)

		notes := delimiterErr.ErrorNotes()
		require.Len(t, notes, 1)
		assert.Equal(t, "unclosed delimiter", notes[0].Message())
	})

	t.Run("unclosed function arguments", func(t *testing.T) {
		t.Parallel()

		errs := testParsePredicateErrors(t, "F: Fn(T", 1)

		var delimiterErr *UnbalancedDelimiterError
		require.ErrorAs(t, errs[0], &delimiterErr)

		assert.Equal(t, lexer.TokenParenClose, delimiterErr.Expected)
		assert.Equal(t, lexer.TokenEOF, delimiterErr.Got)
	})

	t.Run("keyword as binder", func(t *testing.T) {
		t.Parallel()

		errs := testParsePredicateErrors(t, "for<where> Fn()", 1)

		AssertEqualWithDiff(t,
			&KeywordAsIdentifierError{
				Keyword: "where",
				Range:   ast.NewRange(pos(4), pos(8)),
			},
			errs[0],
		)
	})

	t.Run("function trait as binder", func(t *testing.T) {
		t.Parallel()

		predicate := testParsePredicate(t, "for<Fn> Clone")

		require.Len(t, predicate.Bounds.Traits, 1)
		quantifier := predicate.Bounds.Traits[0].BoundQuantifier()
		require.NotNil(t, quantifier)
		assert.Equal(t, "Fn", quantifier.TypeParameters[0].Identifier.Identifier)
	})

	t.Run("where clause after constraint bound", func(t *testing.T) {
		t.Parallel()

		const input = "for<F> Fn(F) where F: Fn() where T: Clone"

		errs := testParsePredicateErrors(t, input, 1)

		AssertEqualWithDiff(t,
			&UnparenthesizedWhereClauseError{
				Pos: pos(strings.LastIndex(input, "where")),
			},
			errs[0],
		)
	})

	t.Run("where clause after constraint bound in quantifier", func(t *testing.T) {
		t.Parallel()

		const input = "for<G: Fn(F) where F: Fn() where T: Clone>"

		errs := testParsePredicateErrors(t, input, 1)

		require.IsType(t, &UnparenthesizedWhereClauseError{}, errs[0])
	})

	t.Run("unrecognized character", func(t *testing.T) {
		t.Parallel()

		errs := testParsePredicateErrors(t, "F: Fn() -> $", 1)

		var lexerErr *LexerError
		require.ErrorAs(t, errs[0], &lexerErr)
		assert.IsType(t, lexer.UnrecognizedCharacterError{}, lexerErr.Err)
		assert.Equal(t, ast.NewRange(pos(11), pos(11)), lexerErr.Range)
	})

	t.Run("unterminated block comment", func(t *testing.T) {
		t.Parallel()

		errs := testParsePredicateErrors(t, "F: Clone /* trailing", 1)

		var lexerErr *LexerError
		require.ErrorAs(t, errs[0], &lexerErr)
		assert.Equal(t, "missing `*/`", lexerErr.SecondaryError())
	})

	t.Run("trailing input", func(t *testing.T) {
		t.Parallel()

		errs := testParsePredicateErrors(t, "F: Clone Copy", 1)

		AssertEqualWithDiff(t,
			&UnexpectedTokenError{
				Expected: "end of input",
				Got:      lexer.TokenIdentifier,
				Range:    ast.NewRange(pos(9), pos(12)),
			},
			errs[0],
		)
	})

	t.Run("missing bound after quantifier", func(t *testing.T) {
		t.Parallel()

		errs := testParsePredicateErrors(t, "F: for<T>", 1)

		AssertEqualWithDiff(t,
			&UnexpectedTokenError{
				Expected: "trait bound",
				Got:      lexer.TokenEOF,
				Range:    ast.NewRange(pos(9), pos(9)),
			},
			errs[0],
		)
	})

	t.Run("nesting limit", func(t *testing.T) {
		t.Parallel()

		input := "F: Fn(" + strings.Repeat("&", nestingLimit*2) + "T)"

		errs := testParsePredicateErrors(t, input, 1)

		require.IsType(t, &NestingLimitReachedError{}, errs[0])
	})
}

func TestParseErrorMessage(t *testing.T) {

	t.Parallel()

	_, err := ParsePredicate("for<T Fn(T)", Config{})
	require.Error(t, err)

	var parseErr Error
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "for<T Fn(T)", parseErr.Code)

	assert.True(t, errors.IsUserError(err))
	assert.Equal(t,
		"Parsing failed:\n"+
			"error: unbalanced delimiter: expected '>', got identifier\n"+
			" --> 1:6\n"+
			"  |\n"+
			"1 | for<T Fn(T)\n"+
			"  |       ^\n"+
			"  |\n"+
			"1 | for<T Fn(T)\n"+
			"  |    - unclosed delimiter\n",
		err.Error(),
	)
}
