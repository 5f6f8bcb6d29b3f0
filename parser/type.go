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

	"github.com/onflow/hrtb/ast"
	"github.com/onflow/hrtb/errors"
	"github.com/onflow/hrtb/parser/lexer"
)

type typeNullDenotationFunc func(parser *parser, token lexer.Token) ast.Type

var typeNullDenotations = map[lexer.TokenType]typeNullDenotationFunc{}

func setTypeNullDenotation(tokenType lexer.TokenType, nullDenotation typeNullDenotationFunc) {
	current := typeNullDenotations[tokenType]
	if current != nil {
		panic(fmt.Errorf(
			"type null denotation for token %q already exists",
			tokenType,
		))
	}
	typeNullDenotations[tokenType] = nullDenotation
}

type literalType struct {
	tokenType      lexer.TokenType
	nullDenotation typeNullDenotationFunc
}

func defineType(def any) {
	switch def := def.(type) {
	case literalType:
		setTypeNullDenotation(def.tokenType, def.nullDenotation)
	default:
		panic(errors.NewUnreachableError())
	}
}

func init() {
	defineNominalOrTraitObjectType()
	defineReferenceType()
	defineTupleType()
	defineSliceType()
	defineLifetimeType()
	defineNeverType()
}

func defineNominalOrTraitObjectType() {
	defineType(literalType{
		tokenType: lexer.TokenIdentifier,
		nullDenotation: func(p *parser, token lexer.Token) ast.Type {
			identifier := p.tokenToIdentifier(token)

			switch identifier.Identifier {
			case KeywordDyn:
				return parseTraitObjectType(p, ast.TraitObjectKindDyn, token)
			case KeywordImpl:
				return parseTraitObjectType(p, ast.TraitObjectKindImpl, token)
			}

			if IsHardKeyword(identifier.Identifier) {
				panic(&KeywordAsIdentifierError{
					Keyword: identifier.Identifier,
					Range:   token.Range,
				})
			}

			nominalType := parseNominalTypeRemainder(p, token)
			if p.current.Is(lexer.TokenLess) {
				p.parseTypeArguments(nominalType)
			}
			return nominalType
		},
	})
}

func parseTraitObjectType(p *parser, kind ast.TraitObjectKind, token lexer.Token) ast.Type {
	return &ast.TraitObjectType{
		Kind:     kind,
		Bounds:   p.parseBounds(boundContextDefault),
		StartPos: token.StartPos,
	}
}

// parseNominalTypeRemainder parses the `::`-separated path segments after the first identifier
func parseNominalTypeRemainder(p *parser, token lexer.Token) *ast.NominalType {
	var nestedIdentifiers []ast.Identifier

	for p.current.Is(lexer.TokenDoubleColon) {
		p.next()

		nestedIdentifiers = append(
			nestedIdentifiers,
			p.mustIdentifier(),
		)
	}

	return &ast.NominalType{
		Identifier:        p.tokenToIdentifier(token),
		NestedIdentifiers: nestedIdentifiers,
	}
}

// parsePath parses a path without type arguments, e.g. `std::ops::Fn`
func (p *parser) parsePath() *ast.NominalType {
	token := p.current
	p.mustIdentifier()
	return parseNominalTypeRemainder(p, token)
}

// parseTypeArguments parses the angle-bracket argument list of the given type,
// e.g. `<'a, T, Item = U>`
func (p *parser) parseTypeArguments(nominalType *ast.NominalType) {
	open := p.mustOne(lexer.TokenLess)

	for !p.current.Is(lexer.TokenGreater) {
		nominalType.TypeArguments = append(
			nominalType.TypeArguments,
			p.parseGenericArgument(),
		)

		if !p.current.Is(lexer.TokenComma) {
			break
		}
		p.next()
	}

	end := p.mustClose(open, lexer.TokenGreater)
	nominalType.EndPos = end.EndPos
}

func (p *parser) parseGenericArgument() *ast.GenericArgument {
	argument := &ast.GenericArgument{}

	if p.current.Is(lexer.TokenIdentifier) &&
		p.lookahead() == lexer.TokenEqual {

		label := p.mustIdentifier()
		argument.Label = &label
		p.mustOne(lexer.TokenEqual)
	}

	argument.Type = parseType(p)

	return argument
}

func defineReferenceType() {
	setTypeNullDenotation(
		lexer.TokenAmpersand,
		func(p *parser, token lexer.Token) ast.Type {
			referenceType := &ast.ReferenceType{
				StartPos: token.StartPos,
			}

			if p.current.Is(lexer.TokenLifetime) {
				referenceType.Lifetime = &ast.LifetimeType{
					Identifier: p.tokenToIdentifier(p.current),
				}
				p.next()
			}

			if p.isKeyword(KeywordMut) {
				referenceType.Mutable = true
				p.next()
			}

			referenceType.Type = parseType(p)

			return referenceType
		},
	)
}

func defineTupleType() {
	setTypeNullDenotation(
		lexer.TokenParenOpen,
		func(p *parser, open lexer.Token) ast.Type {
			var types []ast.Type
			trailingComma := false

			for !p.current.Is(lexer.TokenParenClose) {
				types = append(types, parseType(p))

				trailingComma = p.current.Is(lexer.TokenComma)
				if !trailingComma {
					break
				}
				p.next()
			}

			end := p.mustClose(open, lexer.TokenParenClose)

			// `(T)` is a parenthesized type, not a tuple
			if len(types) == 1 && !trailingComma {
				return types[0]
			}

			return &ast.TupleType{
				Types: types,
				Range: ast.NewRange(open.StartPos, end.EndPos),
			}
		},
	)
}

func defineSliceType() {
	setTypeNullDenotation(
		lexer.TokenBracketOpen,
		func(p *parser, open lexer.Token) ast.Type {
			sliceType := &ast.SliceType{
				Type: parseType(p),
			}

			if p.current.Is(lexer.TokenSemicolon) {
				p.next()

				size := p.mustOne(lexer.TokenDecimalIntegerLiteral)
				sliceType.Size = size.Source(p.tokens.Input())
			}

			end := p.mustClose(open, lexer.TokenBracketClose)
			sliceType.Range = ast.NewRange(open.StartPos, end.EndPos)

			return sliceType
		},
	)
}

func defineLifetimeType() {
	defineType(literalType{
		tokenType: lexer.TokenLifetime,
		nullDenotation: func(p *parser, token lexer.Token) ast.Type {
			return &ast.LifetimeType{
				Identifier: p.tokenToIdentifier(token),
			}
		},
	})
}

func defineNeverType() {
	defineType(literalType{
		tokenType: lexer.TokenExclamationMark,
		nullDenotation: func(_ *parser, token lexer.Token) ast.Type {
			return &ast.NeverType{
				Pos: token.StartPos,
			}
		},
	})
}

func parseType(p *parser) ast.Type {
	defer p.enter()()

	token := p.current

	nullDenotation, ok := typeNullDenotations[token.Type]
	if !ok {
		panic(p.unexpectedTokenError("type"))
	}

	p.next()

	return nullDenotation(p, token)
}
