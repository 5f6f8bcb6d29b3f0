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

// Package lexer splits the source of a trait-bound predicate into tokens.
package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/onflow/hrtb/ast"
	"github.com/onflow/hrtb/errors"
)

// tokenLimit is a sensible limit for how many tokens may be emitted
const tokenLimit = 1 << 16

type TokenStream interface {
	// Next consumes and returns one Token.
	// If there are no tokens remaining, an EOF token is returned.
	Next() Token
	// Cursor returns the index in the token stream
	Cursor() int
	// Revert resets the index in the token stream to the given cursor
	Revert(cursor int)
	// Input returns the whole input string
	Input() string
}

// cursor is the scanning position in the input
type cursor struct {
	// offset is the offset of the next rune
	offset int
	// line and column are the position of the next rune
	line   int
	column int
	// last is the position of the last byte of the previously scanned rune
	last ast.Position
	// current is the previously scanned rune
	current rune
}

func (c cursor) position() ast.Position {
	return ast.NewPosition(c.offset, c.line, c.column)
}

type lexer struct {
	// input is the entire input string
	input string
	// tokens contains all tokens of the stream
	tokens []Token
	// start is the position at which the current word starts
	start cursor
	// end is the current scanning position
	end cursor
	// prev is the scanning position before the last call of next, used for stepping back
	prev cursor
	// canBackup indicates whether stepping back is allowed
	canBackup bool
	// index is the index in the token stream
	index int
}

var _ TokenStream = &lexer{}

func (l *lexer) Next() Token {
	if l.index >= len(l.tokens) {

		// At the end of the token stream,
		// emit a synthetic EOF token

		pos := l.end.position()

		return Token{
			Type:  TokenEOF,
			Range: ast.NewRange(pos, pos),
		}
	}

	token := l.tokens[l.index]
	l.index++
	return token
}

func (l *lexer) Input() string {
	return l.input
}

func (l *lexer) Cursor() int {
	return l.index
}

func (l *lexer) Revert(cursor int) {
	l.index = cursor
}

// Lex scans the whole input and returns the resulting token stream.
// Scanning stops at the first error, which is emitted as an error token.
func Lex(input string) TokenStream {
	initial := cursor{
		line:    1,
		current: EOF,
	}
	l := &lexer{
		input:  input,
		tokens: make([]Token, 0, len(input)/2+1),
		start:  initial,
		end:    initial,
		prev:   initial,
	}
	l.run(rootState)
	return l
}

// run executes the stateFn, which will scan the runes in the input
// and emit tokens.
//
// stateFn might return another stateFn to indicate further scanning work,
// or nil if there is no scanning work left to be done,
// i.e. run will keep running the returned stateFn until no more
// stateFn is returned, which for example happens when reaching the end of the input.
func (l *lexer) run(state stateFn) {

	defer func() {
		if r := recover(); r != nil {
			var err error
			switch r := r.(type) {
			case errors.InternalError:
				// internal errors percolate up
				panic(r)
			case error:
				err = r
			default:
				err = fmt.Errorf("lexer: %v", r)
			}

			l.emitError(err)
		}
	}()

	for state != nil {
		state = state(l)
	}
}

// next decodes the next rune (UTF8 character) from the input string.
//
// It returns EOF if it reaches the end of the input,
// otherwise returns the scanned rune.
func (l *lexer) next() rune {
	l.canBackup = true

	// save the current position so that we can step back one rune
	l.prev = l.end

	if l.end.offset >= len(l.input) {
		l.end.current = EOF
		return EOF
	}

	r, w := utf8.DecodeRuneInString(l.input[l.end.offset:])

	l.end.last = ast.NewPosition(
		l.end.offset+w-1,
		l.end.line,
		l.end.column+w-1,
	)
	l.end.offset += w
	if r == '\n' {
		l.end.line++
		l.end.column = 0
	} else {
		l.end.column += w
	}
	l.end.current = r

	return r
}

// backupOne steps back one rune.
// Can be called only once per call of next.
func (l *lexer) backupOne() {
	if !l.canBackup {
		panic(errors.NewUnexpectedError("second backup"))
	}
	l.canBackup = false

	l.end = l.prev
}

func (l *lexer) word() string {
	return l.input[l.start.offset:l.end.offset]
}

// acceptOne reads one rune ahead.
// It returns true if the next rune matches with the input rune,
// otherwise it steps back one rune and returns false.
func (l *lexer) acceptOne(r rune) bool {
	if l.next() == r {
		return true
	}
	l.backupOne()
	return false
}

func (l *lexer) acceptWhile(f func(rune) bool) {
	for {
		r := l.next()

		if r != EOF && f(r) {
			continue
		}

		l.backupOne()
		return
	}
}

// currentRange returns the range of the current word
func (l *lexer) currentRange() ast.Range {
	startPos := l.start.position()
	endPos := l.end.last
	if l.end.offset == l.start.offset {
		endPos = startPos
	}
	return ast.NewRange(startPos, endPos)
}

// emit appends a token for the current word, and starts a new word
func (l *lexer) emit(ty TokenType, spaceOrError any) {

	if len(l.tokens) >= tokenLimit {
		panic(TokenLimitReachedError{
			Range: l.currentRange(),
		})
	}

	l.tokens = append(
		l.tokens,
		Token{
			Type:         ty,
			SpaceOrError: spaceOrError,
			Range:        l.currentRange(),
		},
	)

	l.start = l.end
}

func (l *lexer) emitType(ty TokenType) {
	l.emit(ty, nil)
}

func (l *lexer) emitError(err error) {
	l.emit(TokenError, err)
}

func (l *lexer) scanSpace() (containsNewline bool) {
	// lookahead is already lexed.
	// parse more, if any
	l.acceptWhile(func(r rune) bool {
		switch r {
		case ' ', '\t', '\r':
			return true
		case '\n':
			containsNewline = true
			return true
		default:
			return false
		}
	})
	return
}

func isIdentifierStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentifierPart(r rune) bool {
	return r == '_' ||
		unicode.IsLetter(r) ||
		unicode.IsDigit(r) ||
		unicode.Is(unicode.Mn, r)
}

func (l *lexer) scanIdentifier() {
	// lookahead is already lexed.
	// parse more, if any
	l.acceptWhile(isIdentifierPart)
}

func (l *lexer) scanLineComment() {
	// lookahead is already lexed.
	// parse more, if any
	l.acceptWhile(func(r rune) bool {
		return r != '\n'
	})
}

func isDecimalDigitOrUnderscore(r rune) bool {
	return (r >= '0' && r <= '9') || r == '_'
}
