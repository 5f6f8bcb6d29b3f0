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

package lexer

// stateFn uses the input lexer to read runes and emit tokens.
//
// It either returns nil when reaching end of input,
// or returns another stateFn for more scanning work.
type stateFn func(*lexer) stateFn

// rootState returns a stateFn that scans the input and emits tokens until
// reaching the end of the input.
func rootState(l *lexer) stateFn {

	for {
		var ty TokenType

		r := l.next()
		switch r {
		case EOF:
			return nil
		case '+':
			ty = TokenPlus
		case '-':
			if !l.acceptOne('>') {
				return l.unrecognized(r)
			}
			ty = TokenRightArrow
		case '(':
			ty = TokenParenOpen
		case ')':
			ty = TokenParenClose
		case '[':
			ty = TokenBracketOpen
		case ']':
			ty = TokenBracketClose
		case '<':
			ty = TokenLess
		case '>':
			ty = TokenGreater
		case ',':
			ty = TokenComma
		case ';':
			ty = TokenSemicolon
		case ':':
			if l.acceptOne(':') {
				ty = TokenDoubleColon
			} else {
				ty = TokenColon
			}
		case '=':
			ty = TokenEqual
		case '&':
			ty = TokenAmpersand
		case '!':
			ty = TokenExclamationMark
		case '\'':
			return lifetimeState
		case ' ', '\t', '\r':
			return spaceState(false)
		case '\n':
			return spaceState(true)
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			return numberState
		case '/':
			r = l.next()
			switch r {
			case '/':
				return lineCommentState
			case '*':
				return blockCommentState(0)
			default:
				l.backupOne()
				return l.unrecognized('/')
			}
		default:
			if isIdentifierStart(r) {
				return identifierState
			}
			return l.unrecognized(r)
		}

		l.emitType(ty)
	}
}

func (l *lexer) unrecognized(r rune) stateFn {
	l.emitError(UnrecognizedCharacterError{
		Character: r,
		Range:     l.currentRange(),
	})
	return nil
}

func spaceState(startIsNewline bool) stateFn {
	return func(l *lexer) stateFn {
		containsNewline := l.scanSpace()
		containsNewline = containsNewline || startIsNewline

		l.emit(
			TokenSpace,
			Space{
				ContainsNewline: containsNewline,
			},
		)
		return rootState
	}
}

func identifierState(l *lexer) stateFn {
	l.scanIdentifier()
	l.emitType(TokenIdentifier)
	return rootState
}

// lifetimeState scans a lifetime, e.g. `'a` or `'static`.
// The leading quote is already lexed.
func lifetimeState(l *lexer) stateFn {
	r := l.next()
	if r == EOF || !isIdentifierStart(r) {
		if r != EOF {
			l.backupOne()
		}
		l.emitError(MissingLifetimeNameError{
			Range: l.currentRange(),
		})
		return nil
	}
	l.scanIdentifier()
	l.emitType(TokenLifetime)
	return rootState
}

// numberState scans a decimal integer, e.g. the length of an array type.
// The first digit is already lexed.
func numberState(l *lexer) stateFn {
	l.acceptWhile(isDecimalDigitOrUnderscore)
	l.emitType(TokenDecimalIntegerLiteral)
	return rootState
}

func lineCommentState(l *lexer) stateFn {
	l.scanLineComment()
	l.emitType(TokenLineComment)
	return rootState
}

// blockCommentState scans a block comment.
// Block comments may be nested, e.g. `/* a /* b */ c */`
func blockCommentState(nesting int) stateFn {
	return func(l *lexer) stateFn {
		for {
			r := l.next()
			switch r {
			case EOF:
				l.emitError(UnterminatedBlockCommentError{
					Range: l.currentRange(),
				})
				return nil

			case '/':
				if l.acceptOne('*') {
					nesting++
				}

			case '*':
				if l.acceptOne('/') {
					if nesting == 0 {
						l.emitType(TokenBlockComment)
						return rootState
					}
					nesting--
				}
			}
		}
	}
}
