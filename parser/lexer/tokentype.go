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

import (
	"github.com/onflow/hrtb/errors"
)

type TokenType uint8

const EOF rune = -1

const (
	TokenError TokenType = iota
	TokenEOF
	TokenSpace
	TokenIdentifier
	TokenLifetime
	TokenDecimalIntegerLiteral
	TokenLess
	TokenGreater
	TokenParenOpen
	TokenParenClose
	TokenBracketOpen
	TokenBracketClose
	TokenComma
	TokenColon
	TokenDoubleColon
	TokenSemicolon
	TokenPlus
	TokenAmpersand
	TokenEqual
	TokenRightArrow
	TokenExclamationMark
	TokenBlockComment
	TokenLineComment
	// NOTE: not an actual token, must be last item
	TokenMax
)

func init() {
	// ensure all tokens have its string format
	for t := TokenType(0); t < TokenMax; t++ {
		_ = t.String()
	}
}

func (t TokenType) String() string {
	switch t {
	case TokenError:
		return "error"
	case TokenEOF:
		return "EOF"
	case TokenSpace:
		return "space"
	case TokenIdentifier:
		return "identifier"
	case TokenLifetime:
		return "lifetime"
	case TokenDecimalIntegerLiteral:
		return "decimal integer"
	case TokenLess:
		return `'<'`
	case TokenGreater:
		return `'>'`
	case TokenParenOpen:
		return `'('`
	case TokenParenClose:
		return `')'`
	case TokenBracketOpen:
		return `'['`
	case TokenBracketClose:
		return `']'`
	case TokenComma:
		return `','`
	case TokenColon:
		return `':'`
	case TokenDoubleColon:
		return `'::'`
	case TokenSemicolon:
		return `';'`
	case TokenPlus:
		return `'+'`
	case TokenAmpersand:
		return `'&'`
	case TokenEqual:
		return `'='`
	case TokenRightArrow:
		return `'->'`
	case TokenExclamationMark:
		return `'!'`
	case TokenBlockComment:
		return "block comment"
	case TokenLineComment:
		return "line comment"
	default:
		panic(errors.NewUnreachableError())
	}
}

// IsTrivia returns true for tokens which the parser skips, i.e. space and comments
func (t TokenType) IsTrivia() bool {
	switch t {
	case TokenSpace, TokenBlockComment, TokenLineComment:
		return true
	default:
		return false
	}
}
