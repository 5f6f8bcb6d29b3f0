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
	"github.com/onflow/hrtb/ast"
	"github.com/onflow/hrtb/parser/lexer"
)

func parsePredicate(p *parser) *ast.Predicate {
	startPos := p.current.StartPos

	target := p.parsePredicateTarget()

	if target == nil && p.isKeyword(KeywordFor) {
		return p.parseQuantifiedPredicate(startPos)
	}

	bounds := p.parseBounds(boundContextDefault)

	if target != nil {
		startPos = target.StartPosition()
	}

	return ast.NewPredicate(
		target,
		bounds,
		nil,
		ast.NewRange(startPos, bounds.EndPosition()),
	)
}

// parsePredicateTarget parses the optional constrained name of a predicate, e.g. `F:` in `F: Fn()`
func (p *parser) parsePredicateTarget() *ast.Identifier {
	if !p.current.Is(lexer.TokenIdentifier) ||
		IsHardKeyword(p.currentTokenSource()) ||
		p.lookahead() != lexer.TokenColon {

		return nil
	}

	target := p.mustIdentifier()
	p.mustOne(lexer.TokenColon)
	return &target
}

// parseQuantifiedPredicate parses a predicate starting with a quantifier.
// If nothing follows the quantifier, the predicate is a bare binder list, e.g. `for<F: Clone>`.
// Otherwise the quantifier belongs to the first bound.
func (p *parser) parseQuantifiedPredicate(startPos ast.Position) *ast.Predicate {
	rank, depth := p.rank, p.depth

	quantifier := p.parseQuantifier()

	if p.current.Is(lexer.TokenEOF) {
		p.rank, p.depth = rank, depth

		return ast.NewPredicate(
			nil,
			ast.Bounds{},
			quantifier,
			quantifier.Range,
		)
	}

	first := p.parseBoundRemainder(quantifier, boundContextDefault)

	p.rank, p.depth = rank, depth

	bounds := ast.Bounds{
		Traits: []ast.BoundExpr{first},
	}
	if p.current.Is(lexer.TokenPlus) {
		p.next()
		p.parseBoundsInto(&bounds, boundContextDefault)
	}

	return ast.NewPredicate(
		nil,
		bounds,
		nil,
		ast.NewRange(startPos, bounds.EndPosition()),
	)
}

// parseBounds parses a non-empty `+`-separated list of trait and lifetime bounds
func (p *parser) parseBounds(context boundContext) ast.Bounds {
	var bounds ast.Bounds
	p.parseBoundsInto(&bounds, context)
	return bounds
}

func (p *parser) parseBoundsInto(bounds *ast.Bounds, context boundContext) {
	for {
		if p.current.Is(lexer.TokenLifetime) {
			bounds.Lifetimes = append(
				bounds.Lifetimes,
				&ast.LifetimeType{
					Identifier: p.tokenToIdentifier(p.current),
				},
			)
			p.next()
		} else {
			bounds.Traits = append(
				bounds.Traits,
				p.parseBoundExpr(context),
			)
		}

		if !p.current.Is(lexer.TokenPlus) {
			return
		}
		p.next()
	}
}

// parseBoundExpr parses an optionally quantified bound expression
func (p *parser) parseBoundExpr(context boundContext) ast.BoundExpr {
	defer p.enter()()

	var quantifier *ast.Quantifier

	if p.isKeyword(KeywordFor) {
		rank, depth := p.rank, p.depth
		defer func() {
			p.rank, p.depth = rank, depth
		}()

		quantifier = p.parseQuantifier()
	}

	return p.parseBoundRemainder(quantifier, context)
}

// parseBoundRemainder parses the bound after its optional quantifier,
// and the trailing `where` clause, if any.
//
// Bounds on the right-hand side of a `where` constraint never have a `where` clause,
// unless they are parenthesized.
func (p *parser) parseBoundRemainder(quantifier *ast.Quantifier, context boundContext) ast.BoundExpr {
	var bound ast.BoundExpr

	switch p.current.Type {
	case lexer.TokenParenOpen:
		compound := p.parseCompoundBound()
		compound.Quantifier = quantifier
		bound = compound

	case lexer.TokenIdentifier:
		application := p.parseTraitApplication()
		application.Quantifier = quantifier
		bound = application

	default:
		panic(p.unexpectedTokenError("trait bound"))
	}

	if context == boundContextConstraint {
		if quantifier != nil && quantifier.Depth > p.config.parenthesizationDepth() {
			panic(&MissingParenthesizationError{
				Depth: quantifier.Depth,
				Limit: p.config.parenthesizationDepth(),
				Range: ast.NewRangeFromPositioned(bound),
			})
		}

		return bound
	}

	if p.isKeyword(KeywordWhere) {
		whereClause := p.parseWhereClause()

		switch bound := bound.(type) {
		case *ast.TraitApplication:
			bound.WhereClause = whereClause
		case *ast.CompoundBound:
			bound.WhereClause = whereClause
		}
	}

	return bound
}

// parseQuantifier parses a binder list, e.g. `for<'a, T: Clone>`.
// The rank and depth of the parser are incremented,
// so that the inline bounds and the quantified bound are parsed in the new scope.
// The caller is responsible for restoring them.
func (p *parser) parseQuantifier() *ast.Quantifier {
	startPos := p.current.StartPos
	p.next()

	p.rank++
	p.depth++

	quantifier := &ast.Quantifier{
		Rank:  p.rank,
		Depth: p.depth,
	}

	open := p.mustOne(lexer.TokenLess)

	for !p.current.Is(lexer.TokenGreater) {
		quantifier.TypeParameters = append(
			quantifier.TypeParameters,
			p.parseTypeParameter(),
		)

		if !p.current.Is(lexer.TokenComma) {
			break
		}
		p.next()
	}

	end := p.mustClose(open, lexer.TokenGreater)

	quantifier.Range = ast.NewRange(startPos, end.EndPos)

	return quantifier
}

// parseTypeParameter parses a binder, e.g. `T`, `T: Clone + 'a`, or `'a: 'b`
func (p *parser) parseTypeParameter() *ast.TypeParameter {
	var identifier ast.Identifier

	switch p.current.Type {
	case lexer.TokenLifetime:
		identifier = p.tokenToIdentifier(p.current)
		p.next()

	case lexer.TokenIdentifier:
		identifier = p.mustIdentifier()

	default:
		panic(p.unexpectedTokenError("type or lifetime parameter"))
	}

	parameter := &ast.TypeParameter{
		Identifier: identifier,
	}

	if p.current.Is(lexer.TokenColon) {
		p.next()
		parameter.Bounds = p.parseBounds(boundContextDefault)
	}

	return parameter
}

// parseTraitApplication parses a trait path with its arguments,
// e.g. `Iterator<Item = T>` or `Fn(T) -> U`
func (p *parser) parseTraitApplication() *ast.TraitApplication {
	trait := p.parsePath()

	application := &ast.TraitApplication{
		Trait: trait,
	}

	lastIdentifier := trait.Identifier
	if count := len(trait.NestedIdentifiers); count > 0 {
		lastIdentifier = trait.NestedIdentifiers[count-1]
	}

	switch {
	case IsFunctionTrait(lastIdentifier.Identifier) &&
		p.current.Is(lexer.TokenParenOpen):

		application.Function = p.parseFunctionSugar()

	case p.current.Is(lexer.TokenLess):
		p.parseTypeArguments(trait)
	}

	return application
}

// parseFunctionSugar parses the parenthesized parameter types
// and the optional return type of a function trait, e.g. `(A, B) -> C`
func (p *parser) parseFunctionSugar() *ast.FunctionSugar {
	open := p.mustOne(lexer.TokenParenOpen)

	var parameterTypes []ast.Type
	for !p.current.Is(lexer.TokenParenClose) {
		parameterTypes = append(parameterTypes, parseType(p))

		if !p.current.Is(lexer.TokenComma) {
			break
		}
		p.next()
	}

	end := p.mustClose(open, lexer.TokenParenClose)

	function := &ast.FunctionSugar{
		ParameterTypes: parameterTypes,
		Range:          ast.NewRange(open.StartPos, end.EndPos),
	}

	if p.current.Is(lexer.TokenRightArrow) {
		p.next()
		function.ReturnType = parseType(p)
		function.EndPos = function.ReturnType.EndPosition()
	}

	return function
}

// parseCompoundBound parses a parenthesized list of bounds.
// Inside of the parentheses, bounds may have `where` clauses again.
func (p *parser) parseCompoundBound() *ast.CompoundBound {
	open := p.mustOne(lexer.TokenParenOpen)

	bounds := p.parseBounds(boundContextDefault)

	end := p.mustClose(open, lexer.TokenParenClose)

	return &ast.CompoundBound{
		Bounds:     bounds,
		ParenRange: ast.NewRange(open.StartPos, end.EndPos),
	}
}

// parseWhereClause parses a `where` clause.
// Each constraint's bounds are nested one level deeper.
//
// A comma either separates constraints, or ends the clause:
// it only continues the clause if it is followed by a constrained name and a colon,
// e.g. in `for<F: Fn(T) where T: Clone, U>` the clause ends before `U`.
func (p *parser) parseWhereClause() *ast.WhereClause {
	startPos := p.current.StartPos
	p.next()

	depth := p.depth
	p.depth++
	defer func() {
		p.depth = depth
	}()

	whereClause := &ast.WhereClause{}

	for {
		whereClause.Constraints = append(
			whereClause.Constraints,
			p.parseConstraint(),
		)

		if !p.current.Is(lexer.TokenComma) || !p.isConstraintAhead() {
			break
		}
		p.next()
	}

	lastConstraint := whereClause.Constraints[len(whereClause.Constraints)-1]
	whereClause.Range = ast.NewRange(startPos, lastConstraint.EndPosition())

	return whereClause
}

// isConstraintAhead returns true if the current comma is followed by a constraint, e.g. `, T:`
func (p *parser) isConstraintAhead() bool {
	cursor := p.tokens.Cursor()
	current := p.current

	defer func() {
		p.tokens.Revert(cursor)
		p.current = current
	}()

	p.next()

	switch p.current.Type {
	case lexer.TokenIdentifier:
		if IsHardKeyword(p.currentTokenSource()) {
			return false
		}
	case lexer.TokenLifetime:
		break
	default:
		return false
	}

	return p.lookahead() == lexer.TokenColon
}

// parseConstraint parses a single `where` constraint, e.g. `T: Display` or `'a: 'b`
func (p *parser) parseConstraint() *ast.Constraint {
	var target ast.Identifier

	switch p.current.Type {
	case lexer.TokenLifetime:
		target = p.tokenToIdentifier(p.current)
		p.next()

	case lexer.TokenIdentifier:
		target = p.mustIdentifier()

	default:
		panic(p.unexpectedTokenError("constrained type or lifetime"))
	}

	p.mustOne(lexer.TokenColon)

	return &ast.Constraint{
		Target: target,
		Bounds: p.parseBounds(boundContextConstraint),
	}
}
