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
	"fmt"
	"strings"

	"github.com/onflow/hrtb/ast"
	"github.com/onflow/hrtb/common"
	"github.com/onflow/hrtb/errors"
	"github.com/onflow/hrtb/parser/lexer"
	"github.com/onflow/hrtb/pretty"
)

// Error

type Error struct {
	Code   string
	Errors []error
}

var _ errors.UserError = Error{}
var _ errors.ParentError = Error{}

func (Error) IsUserError() {}

func (e Error) Error() string {
	var sb strings.Builder
	sb.WriteString("Parsing failed:\n")
	printErr := pretty.NewErrorPrettyPrinter(&sb, false).
		PrettyPrintError(e, nil, map[common.Location]string{nil: e.Code})
	if printErr != nil {
		panic(printErr)
	}
	return sb.String()
}

func (e Error) ChildErrors() []error {
	return e.Errors
}

func (e Error) Unwrap() []error {
	return e.Errors
}

// ParseError

type ParseError interface {
	errors.UserError
	ast.HasPosition
	isParseError()
}

// SyntaxError

type SyntaxError struct {
	Message string
	Pos     ast.Position
}

func NewSyntaxError(pos ast.Position, message string, params ...any) *SyntaxError {
	return &SyntaxError{
		Pos:     pos,
		Message: fmt.Sprintf(message, params...),
	}
}

var _ ParseError = &SyntaxError{}

func (*SyntaxError) isParseError() {}

func (*SyntaxError) IsUserError() {}

func (e *SyntaxError) StartPosition() ast.Position {
	return e.Pos
}

func (e *SyntaxError) EndPosition() ast.Position {
	return e.Pos
}

func (e *SyntaxError) Error() string {
	return e.Message
}

// LexerError wraps an error reported by the lexer

type LexerError struct {
	Err error
	ast.Range
}

var _ ParseError = &LexerError{}

func (*LexerError) isParseError() {}

func (*LexerError) IsUserError() {}

func (e *LexerError) Error() string {
	return e.Err.Error()
}

func (e *LexerError) Unwrap() error {
	return e.Err
}

func (e *LexerError) SecondaryError() string {
	if secondaryError, ok := e.Err.(errors.SecondaryError); ok {
		return secondaryError.SecondaryError()
	}
	return ""
}

// UnexpectedTokenError

type UnexpectedTokenError struct {
	Expected string
	Got      lexer.TokenType
	ast.Range
}

var _ ParseError = &UnexpectedTokenError{}

func (*UnexpectedTokenError) isParseError() {}

func (*UnexpectedTokenError) IsUserError() {}

func (e *UnexpectedTokenError) Error() string {
	return fmt.Sprintf(
		"expected %s, got %s",
		e.Expected,
		e.Got,
	)
}

// UnbalancedDelimiterError is reported when an opening `<`, `(` or `[` is not closed

type UnbalancedDelimiterError struct {
	Open     lexer.Token
	Expected lexer.TokenType
	Got      lexer.TokenType
	Pos      ast.Position
}

var _ ParseError = &UnbalancedDelimiterError{}
var _ errors.ErrorNotes = &UnbalancedDelimiterError{}

func (*UnbalancedDelimiterError) isParseError() {}

func (*UnbalancedDelimiterError) IsUserError() {}

func (e *UnbalancedDelimiterError) Error() string {
	return fmt.Sprintf(
		"unbalanced delimiter: expected %s, got %s",
		e.Expected,
		e.Got,
	)
}

func (e *UnbalancedDelimiterError) StartPosition() ast.Position {
	return e.Pos
}

func (e *UnbalancedDelimiterError) EndPosition() ast.Position {
	return e.Pos
}

func (e *UnbalancedDelimiterError) ErrorNotes() []errors.ErrorNote {
	return []errors.ErrorNote{
		UnclosedDelimiterNote{
			Range: e.Open.Range,
		},
	}
}

// UnclosedDelimiterNote

type UnclosedDelimiterNote struct {
	ast.Range
}

func (UnclosedDelimiterNote) Message() string {
	return "unclosed delimiter"
}

// KeywordAsIdentifierError is reported when a keyword is used as a name, e.g. `for<where>`

type KeywordAsIdentifierError struct {
	Keyword string
	ast.Range
}

var _ ParseError = &KeywordAsIdentifierError{}

func (*KeywordAsIdentifierError) isParseError() {}

func (*KeywordAsIdentifierError) IsUserError() {}

func (e *KeywordAsIdentifierError) Error() string {
	return fmt.Sprintf(
		"expected identifier, got keyword `%s`",
		e.Keyword,
	)
}

// MissingParenthesizationError is reported for a quantified bound in a `where` constraint
// which is nested deeper than the parenthesization depth, but not wrapped in parentheses.
// Without parentheses, a following `where` clause could attach to the wrong bound.

type MissingParenthesizationError struct {
	Depth int
	Limit int
	ast.Range
}

var _ ParseError = &MissingParenthesizationError{}
var _ errors.SecondaryError = &MissingParenthesizationError{}
var _ errors.HasSuggestedFixes[ast.TextEdit] = &MissingParenthesizationError{}

func (*MissingParenthesizationError) isParseError() {}

func (*MissingParenthesizationError) IsUserError() {}

func (e *MissingParenthesizationError) Error() string {
	return fmt.Sprintf(
		"quantified bound at nesting depth %d must be parenthesized",
		e.Depth,
	)
}

func (e *MissingParenthesizationError) SecondaryError() string {
	return fmt.Sprintf(
		"bounds nested deeper than %d in a `where` clause require parentheses",
		e.Limit,
	)
}

func (e *MissingParenthesizationError) SuggestFixes(_ string) []errors.SuggestedFix[ast.TextEdit] {
	return []errors.SuggestedFix[ast.TextEdit]{
		{
			Message:   "wrap the bound in parentheses",
			TextEdits: WrapInParentheses(e.Range),
		},
	}
}

// WrapInParentheses returns the edits which insert parentheses around the given range
func WrapInParentheses(r ast.Range) []ast.TextEdit {
	closePos := r.EndPos.Shifted(1)
	return []ast.TextEdit{
		{
			Insertion: "(",
			Range:     ast.NewRange(r.StartPos, r.StartPos),
		},
		{
			Insertion: ")",
			Range:     ast.NewRange(closePos, closePos),
		},
	}
}

// UnparenthesizedWhereClauseError is reported for a `where` clause
// that follows a bound in a `where` constraint, e.g. `where F: Fn(T) where T: Clone`

type UnparenthesizedWhereClauseError struct {
	Pos ast.Position
}

var _ ParseError = &UnparenthesizedWhereClauseError{}
var _ errors.SecondaryError = &UnparenthesizedWhereClauseError{}

func (*UnparenthesizedWhereClauseError) isParseError() {}

func (*UnparenthesizedWhereClauseError) IsUserError() {}

func (e *UnparenthesizedWhereClauseError) Error() string {
	return "nested `where` clause must be parenthesized"
}

func (e *UnparenthesizedWhereClauseError) SecondaryError() string {
	return "wrap the constrained bound and its `where` clause in parentheses"
}

func (e *UnparenthesizedWhereClauseError) StartPosition() ast.Position {
	return e.Pos
}

func (e *UnparenthesizedWhereClauseError) EndPosition() ast.Position {
	return e.Pos.Shifted(len(KeywordWhere) - 1)
}

// NestingLimitReachedError

type NestingLimitReachedError struct {
	Pos ast.Position
}

var _ ParseError = &NestingLimitReachedError{}

func (*NestingLimitReachedError) isParseError() {}

func (*NestingLimitReachedError) IsUserError() {}

func (e *NestingLimitReachedError) Error() string {
	return fmt.Sprintf("nesting limit of %d exceeded", nestingLimit)
}

func (e *NestingLimitReachedError) StartPosition() ast.Position {
	return e.Pos
}

func (e *NestingLimitReachedError) EndPosition() ast.Position {
	return e.Pos
}
