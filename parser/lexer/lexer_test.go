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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/onflow/hrtb/ast"
	. "github.com/onflow/hrtb/test_utils/common_utils"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func withTokens(tokenStream TokenStream, fn func([]Token)) {
	tokens := make([]Token, 0)
	for {
		token := tokenStream.Next()
		tokens = append(tokens, token)
		if token.Is(TokenEOF) {
			fn(tokens)
			return
		}
	}
}

func testLex(t *testing.T, input string, expected []Token) {

	t.Parallel()

	withTokens(Lex(input), func(tokens []Token) {
		AssertEqualWithDiff(t, expected, tokens)
	})
}

func singleLine(ty TokenType, start, end int) Token {
	return Token{
		Type: ty,
		Range: ast.Range{
			StartPos: ast.Position{Line: 1, Column: start, Offset: start},
			EndPos:   ast.Position{Line: 1, Column: end, Offset: end},
		},
	}
}

func eof(offset int) Token {
	return singleLine(TokenEOF, offset, offset)
}

func space(start, end int) Token {
	token := singleLine(TokenSpace, start, end)
	token.SpaceOrError = Space{ContainsNewline: false}
	return token
}

func TestLexBasic(t *testing.T) {

	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		testLex(t,
			"",
			[]Token{
				eof(0),
			},
		)
	})

	t.Run("quantified function", func(t *testing.T) {
		testLex(t,
			"for<T> Fn(T) -> String",
			[]Token{
				singleLine(TokenIdentifier, 0, 2),
				singleLine(TokenLess, 3, 3),
				singleLine(TokenIdentifier, 4, 4),
				singleLine(TokenGreater, 5, 5),
				space(6, 6),
				singleLine(TokenIdentifier, 7, 8),
				singleLine(TokenParenOpen, 9, 9),
				singleLine(TokenIdentifier, 10, 10),
				singleLine(TokenParenClose, 11, 11),
				space(12, 12),
				singleLine(TokenRightArrow, 13, 14),
				space(15, 15),
				singleLine(TokenIdentifier, 16, 21),
				eof(22),
			},
		)
	})

	t.Run("punctuation", func(t *testing.T) {
		testLex(t,
			"::,:;+&=![]!",
			[]Token{
				singleLine(TokenDoubleColon, 0, 1),
				singleLine(TokenComma, 2, 2),
				singleLine(TokenColon, 3, 3),
				singleLine(TokenSemicolon, 4, 4),
				singleLine(TokenPlus, 5, 5),
				singleLine(TokenAmpersand, 6, 6),
				singleLine(TokenEqual, 7, 7),
				singleLine(TokenExclamationMark, 8, 8),
				singleLine(TokenBracketOpen, 9, 9),
				singleLine(TokenBracketClose, 10, 10),
				singleLine(TokenExclamationMark, 11, 11),
				eof(12),
			},
		)
	})

	t.Run("lifetime reference", func(t *testing.T) {
		testLex(t,
			"&'a mut [u8; 32]",
			[]Token{
				singleLine(TokenAmpersand, 0, 0),
				singleLine(TokenLifetime, 1, 2),
				space(3, 3),
				singleLine(TokenIdentifier, 4, 6),
				space(7, 7),
				singleLine(TokenBracketOpen, 8, 8),
				singleLine(TokenIdentifier, 9, 10),
				singleLine(TokenSemicolon, 11, 11),
				space(12, 12),
				singleLine(TokenDecimalIntegerLiteral, 13, 14),
				singleLine(TokenBracketClose, 15, 15),
				eof(16),
			},
		)
	})

	t.Run("nested angle brackets", func(t *testing.T) {
		testLex(t,
			"Vec<Vec<T>>",
			[]Token{
				singleLine(TokenIdentifier, 0, 2),
				singleLine(TokenLess, 3, 3),
				singleLine(TokenIdentifier, 4, 6),
				singleLine(TokenLess, 7, 7),
				singleLine(TokenIdentifier, 8, 8),
				singleLine(TokenGreater, 9, 9),
				singleLine(TokenGreater, 10, 10),
				eof(11),
			},
		)
	})

	t.Run("newline", func(t *testing.T) {
		testLex(t,
			"A\n  B",
			[]Token{
				singleLine(TokenIdentifier, 0, 0),
				{
					Type:         TokenSpace,
					SpaceOrError: Space{ContainsNewline: true},
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 1, Offset: 1},
						EndPos:   ast.Position{Line: 2, Column: 1, Offset: 3},
					},
				},
				{
					Type: TokenIdentifier,
					Range: ast.Range{
						StartPos: ast.Position{Line: 2, Column: 2, Offset: 4},
						EndPos:   ast.Position{Line: 2, Column: 2, Offset: 4},
					},
				},
				{
					Type: TokenEOF,
					Range: ast.Range{
						StartPos: ast.Position{Line: 2, Column: 3, Offset: 5},
						EndPos:   ast.Position{Line: 2, Column: 3, Offset: 5},
					},
				},
			},
		)
	})
}

func TestLexIdentifier(t *testing.T) {

	t.Parallel()

	t.Run("underscore and digits", func(t *testing.T) {
		testLex(t,
			"_T1",
			[]Token{
				singleLine(TokenIdentifier, 0, 2),
				eof(3),
			},
		)
	})

	t.Run("unicode", func(t *testing.T) {
		// `Ä` is two bytes
		testLex(t,
			"Äb",
			[]Token{
				singleLine(TokenIdentifier, 0, 2),
				eof(3),
			},
		)
	})
}

func TestLexComments(t *testing.T) {

	t.Parallel()

	t.Run("line comment", func(t *testing.T) {
		testLex(t,
			"T // free",
			[]Token{
				singleLine(TokenIdentifier, 0, 0),
				space(1, 1),
				singleLine(TokenLineComment, 2, 8),
				eof(9),
			},
		)
	})

	t.Run("nested block comment", func(t *testing.T) {
		testLex(t,
			"/* a /* b */ c */T",
			[]Token{
				singleLine(TokenBlockComment, 0, 16),
				singleLine(TokenIdentifier, 17, 17),
				eof(18),
			},
		)
	})

	t.Run("unterminated block comment", func(t *testing.T) {
		testLex(t,
			"T /* a",
			[]Token{
				singleLine(TokenIdentifier, 0, 0),
				space(1, 1),
				{
					Type: TokenError,
					SpaceOrError: UnterminatedBlockCommentError{
						Range: ast.Range{
							StartPos: ast.Position{Line: 1, Column: 2, Offset: 2},
							EndPos:   ast.Position{Line: 1, Column: 5, Offset: 5},
						},
					},
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 2, Offset: 2},
						EndPos:   ast.Position{Line: 1, Column: 5, Offset: 5},
					},
				},
				eof(6),
			},
		)
	})
}

func TestLexErrors(t *testing.T) {

	t.Parallel()

	t.Run("unrecognized character", func(t *testing.T) {
		testLex(t,
			"T $ U",
			[]Token{
				singleLine(TokenIdentifier, 0, 0),
				space(1, 1),
				{
					Type: TokenError,
					SpaceOrError: UnrecognizedCharacterError{
						Character: '$',
						Range: ast.Range{
							StartPos: ast.Position{Line: 1, Column: 2, Offset: 2},
							EndPos:   ast.Position{Line: 1, Column: 2, Offset: 2},
						},
					},
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 2, Offset: 2},
						EndPos:   ast.Position{Line: 1, Column: 2, Offset: 2},
					},
				},
				eof(3),
			},
		)
	})

	t.Run("minus without greater", func(t *testing.T) {
		testLex(t,
			"-T",
			[]Token{
				{
					Type: TokenError,
					SpaceOrError: UnrecognizedCharacterError{
						Character: '-',
						Range: ast.Range{
							StartPos: ast.Position{Line: 1, Column: 0, Offset: 0},
							EndPos:   ast.Position{Line: 1, Column: 0, Offset: 0},
						},
					},
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 0, Offset: 0},
						EndPos:   ast.Position{Line: 1, Column: 0, Offset: 0},
					},
				},
				eof(1),
			},
		)
	})

	t.Run("missing lifetime name", func(t *testing.T) {
		testLex(t,
			"&' T",
			[]Token{
				singleLine(TokenAmpersand, 0, 0),
				{
					Type: TokenError,
					SpaceOrError: MissingLifetimeNameError{
						Range: ast.Range{
							StartPos: ast.Position{Line: 1, Column: 1, Offset: 1},
							EndPos:   ast.Position{Line: 1, Column: 1, Offset: 1},
						},
					},
					Range: ast.Range{
						StartPos: ast.Position{Line: 1, Column: 1, Offset: 1},
						EndPos:   ast.Position{Line: 1, Column: 1, Offset: 1},
					},
				},
				eof(2),
			},
		)
	})
}

func TestRevert(t *testing.T) {

	t.Parallel()

	const input = "A<B>"

	tokenStream := Lex(input)
	assert.Equal(t, input, tokenStream.Input())

	first := tokenStream.Next()
	require.Equal(t, TokenIdentifier, first.Type)
	assert.Equal(t, "A", first.Source(input))

	cursor := tokenStream.Cursor()

	assert.Equal(t, TokenLess, tokenStream.Next().Type)
	assert.Equal(t, TokenIdentifier, tokenStream.Next().Type)

	tokenStream.Revert(cursor)

	assert.Equal(t, TokenLess, tokenStream.Next().Type)
	assert.Equal(t, TokenIdentifier, tokenStream.Next().Type)
	assert.Equal(t, TokenGreater, tokenStream.Next().Type)
}

func TestEOFsAfterError(t *testing.T) {

	t.Parallel()

	tokenStream := Lex("$")

	require.Equal(t, TokenError, tokenStream.Next().Type)

	for i := 0; i < 3; i++ {
		assert.Equal(t, TokenEOF, tokenStream.Next().Type)
	}
}

func TestTokenTypeIsTrivia(t *testing.T) {

	t.Parallel()

	for ty := TokenType(0); ty < TokenMax; ty++ {
		switch ty {
		case TokenSpace, TokenBlockComment, TokenLineComment:
			assert.True(t, ty.IsTrivia(), ty.String())
		default:
			assert.False(t, ty.IsTrivia(), ty.String())
		}
	}
}
