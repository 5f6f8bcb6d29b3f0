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

// Package parser parses trait-bound predicates with higher-rank `for<...>` quantifiers.
package parser

import (
	"fmt"

	"github.com/onflow/hrtb/ast"
	"github.com/onflow/hrtb/errors"
	"github.com/onflow/hrtb/parser/lexer"
)

// DefaultParenthesizationDepth is the bound nesting depth
// beyond which quantified bounds in `where` constraints must be parenthesized
const DefaultParenthesizationDepth = 2

// nestingLimit is a sensible limit for how deeply bounds and types may be nested
const nestingLimit = 1 << 6

type Config struct {
	// ParenthesizationDepth is the bound nesting depth beyond which
	// quantified bounds in `where` constraints must be parenthesized.
	// Zero means DefaultParenthesizationDepth.
	ParenthesizationDepth int
}

func (c Config) parenthesizationDepth() int {
	if c.ParenthesizationDepth <= 0 {
		return DefaultParenthesizationDepth
	}
	return c.ParenthesizationDepth
}

// boundContext is the syntactic position a bound is parsed in
type boundContext uint8

const (
	boundContextDefault boundContext = iota
	// boundContextConstraint is the right-hand side of a `where` constraint
	boundContextConstraint
)

type parser struct {
	// tokens is a stream of tokens from the lexer
	tokens lexer.TokenStream
	// current is the current non-trivia token
	current lexer.Token
	// errors are the parsing errors encountered during parsing
	errors []error
	config Config
	// rank is the rank of the innermost enclosing quantifier,
	// zero outside of any quantifier
	rank int
	// depth is the bound nesting depth:
	// it is incremented by each quantifier and by each `where` constraint
	depth int
	// nesting is the current recursion depth of bounds and types
	nesting int
}

// Parse creates a lexer to scan the given input string,
// and uses the given `parse` function to parse tokens into a result.
//
// It can be composed with different parse functions to parse the input string into different results.
// See, for example, ParsePredicate().
func Parse[T any](
	input string,
	parse func(*parser) T,
	config Config,
) (
	result T,
	errs []error,
) {
	tokens := lexer.Lex(input)

	p := &parser{
		tokens: tokens,
		config: config,
	}

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
				err = fmt.Errorf("parser: %v", r)
			}

			p.report(err)

			var zero T
			result = zero
			errs = p.errors
		}
	}()

	// Get the initial token
	p.next()

	result = parse(p)

	if !p.current.Is(lexer.TokenEOF) {
		p.reportUnexpectedToken("end of input")
	}

	return result, p.errors
}

func newError(input string, errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return Error{
		Code:   input,
		Errors: errs,
	}
}

// ParsePredicate parses a trait-bound predicate,
// e.g. `F: for<T> Fn(T) -> String` or `for<F: Clone>`
func ParsePredicate(input string, config Config) (*ast.Predicate, error) {
	predicate, errs := Parse(input, parsePredicate, config)
	return predicate, newError(input, errs)
}

// ParseBound parses a single bound expression, e.g. `for<T> Fn(T) where T: Clone`
func ParseBound(input string, config Config) (ast.BoundExpr, error) {
	bound, errs := Parse(
		input,
		func(p *parser) ast.BoundExpr {
			return p.parseBoundExpr(boundContextDefault)
		},
		config,
	)
	return bound, newError(input, errs)
}

// ParseType parses a type, e.g. `&'a dyn for<'b> Fn(&'b T)`
func ParseType(input string, config Config) (ast.Type, error) {
	ty, errs := Parse(input, parseType, config)
	return ty, newError(input, errs)
}

func (p *parser) report(errs ...error) {
	for _, err := range errs {
		// Wrap lexer errors, so they are positioned parse errors
		if _, ok := err.(ParseError); !ok {
			if positioned, ok := err.(ast.HasPosition); ok {
				err = &LexerError{
					Err:   err,
					Range: ast.NewRangeFromPositioned(positioned),
				}
			}
		}

		p.errors = append(p.errors, err)
	}
}

// next advances to the next non-trivia token.
// Lexer errors abort parsing.
func (p *parser) next() {
	for {
		token := p.tokens.Next()

		if token.Is(lexer.TokenError) {
			err, ok := token.SpaceOrError.(error)
			if !ok {
				panic(errors.NewUnreachableError())
			}
			panic(err)
		}

		if token.Type.IsTrivia() {
			continue
		}

		p.current = token
		return
	}
}

// lookahead returns the type of the token after the current one
func (p *parser) lookahead() lexer.TokenType {
	cursor := p.tokens.Cursor()
	current := p.current

	defer func() {
		p.tokens.Revert(cursor)
		p.current = current
	}()

	p.next()
	return p.current.Type
}

func (p *parser) currentTokenSource() string {
	return p.current.Source(p.tokens.Input())
}

func (p *parser) isToken(token lexer.Token, tokenType lexer.TokenType, expected string) bool {
	return token.Is(tokenType) &&
		token.Source(p.tokens.Input()) == expected
}

// isKeyword returns true if the current token is the given keyword
func (p *parser) isKeyword(keyword string) bool {
	return p.isToken(p.current, lexer.TokenIdentifier, keyword)
}

func (p *parser) syntaxError(message string, params ...any) error {
	return NewSyntaxError(p.current.StartPos, message, params...)
}

func (p *parser) unexpectedTokenError(expected string) error {
	return &UnexpectedTokenError{
		Expected: expected,
		Got:      p.current.Type,
		Range:    p.current.Range,
	}
}

func (p *parser) reportUnexpectedToken(expected string) {
	if p.isKeyword(KeywordWhere) {
		p.report(&UnparenthesizedWhereClauseError{
			Pos: p.current.StartPos,
		})
		return
	}
	p.report(p.unexpectedTokenError(expected))
}

// mustOne consumes the current token, which must be of the given type
func (p *parser) mustOne(tokenType lexer.TokenType) lexer.Token {
	token := p.current
	if !token.Is(tokenType) {
		panic(p.unexpectedTokenError(tokenType.String()))
	}
	p.next()
	return token
}

// mustClose consumes the delimiter closing the given opening token
func (p *parser) mustClose(open lexer.Token, tokenType lexer.TokenType) lexer.Token {
	token := p.current
	if !token.Is(tokenType) {
		// a `where` clause of a constraint's bound can only follow inside parentheses
		if p.isKeyword(KeywordWhere) {
			panic(&UnparenthesizedWhereClauseError{
				Pos: token.StartPos,
			})
		}
		panic(&UnbalancedDelimiterError{
			Open:     open,
			Expected: tokenType,
			Got:      token.Type,
			Pos:      token.StartPos,
		})
	}
	p.next()
	return token
}

// mustIdentifier consumes the current token, which must be an identifier that is not a keyword
func (p *parser) mustIdentifier() ast.Identifier {
	if !p.current.Is(lexer.TokenIdentifier) {
		panic(p.unexpectedTokenError("identifier"))
	}

	identifier := p.tokenToIdentifier(p.current)
	if IsHardKeyword(identifier.Identifier) {
		panic(&KeywordAsIdentifierError{
			Keyword: identifier.Identifier,
			Range:   p.current.Range,
		})
	}

	p.next()
	return identifier
}

func (p *parser) tokenToIdentifier(token lexer.Token) ast.Identifier {
	return ast.NewIdentifier(
		token.Source(p.tokens.Input()),
		token.StartPos,
	)
}

// enter increments the nesting depth of bounds and types,
// and returns a function to decrement it again
func (p *parser) enter() func() {
	p.nesting++
	if p.nesting > nestingLimit {
		panic(&NestingLimitReachedError{
			Pos: p.current.StartPos,
		})
	}
	return func() {
		p.nesting--
	}
}
