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

// Package sema resolves the names of a parsed predicate:
// it builds the scope tree of the quantifiers, assigns ranks,
// rejects illegal shadowing, and collects free references.
package sema

import (
	"github.com/hashicorp/go-set/v3"
	"golang.org/x/text/unicode/norm"

	"github.com/onflow/hrtb/ast"
	"github.com/onflow/hrtb/common"
	"github.com/onflow/hrtb/errors"
)

// Resolver resolves predicates.
// It is not modified by resolution, so it may be used concurrently.
type Resolver struct {
	config     Config
	knownTypes *set.Set[string]
}

func NewResolver(config Config) *Resolver {
	knownTypes := set.New[string](len(config.KnownTypes))
	for _, knownType := range config.KnownTypes {
		knownTypes.Insert(canonicalName(knownType))
	}

	return &Resolver{
		config:     config,
		knownTypes: knownTypes,
	}
}

// Resolve resolves the given predicate, which was parsed from the given code.
// Resolution never stops at the first error.
func Resolve(
	location common.Location,
	code string,
	predicate *ast.Predicate,
	config Config,
) *Elaboration {
	return NewResolver(config).Resolve(location, code, predicate)
}

func (r *Resolver) Resolve(
	location common.Location,
	code string,
	predicate *ast.Predicate,
) *Elaboration {
	resolution := &resolution{
		resolver:    r,
		elaboration: newElaboration(location, code, predicate),
	}

	resolution.resolvePredicate(predicate)

	return resolution.elaboration
}

func (r *Resolver) isKnownType(name string) bool {
	if r.knownTypes.Contains(name) {
		return true
	}
	return !r.config.ExcludePrelude && isPreludeType(name)
}

func canonicalName(name string) string {
	return norm.NFC.String(name)
}

func declarationKind(identifier ast.Identifier) common.DeclarationKind {
	if identifier.IsLifetime() {
		return common.DeclarationKindLifetimeParameter
	}
	return common.DeclarationKindTypeParameter
}

// resolution is the state of resolving a single predicate
type resolution struct {
	resolver    *Resolver
	elaboration *Elaboration
}

// boundContext is the position a bound expression is resolved in
type boundContext struct {
	// depth is the bound nesting depth of the enclosing bound
	depth int
	// constraint is true if the bound is on the right-hand side of a `where` constraint
	constraint bool
}

// host is the bound expression enclosing a reference
type host struct {
	bound        ast.BoundExpr
	depth        int
	inConstraint bool
}

func (r *resolution) report(err error) {
	r.elaboration.Errors = append(r.elaboration.Errors, err)
}

func (r *resolution) resolvePredicate(predicate *ast.Predicate) {
	if predicate == nil {
		return
	}

	if predicate.IsBinderList() {
		r.resolveQuantifier(predicate.Quantifier, RootScope, 1)
	} else {
		r.resolveBounds(predicate.Bounds, RootScope, host{}, boundContext{})
	}

	r.elaboration.Scopes.computeMaxRanks()
}

// resolveQuantifier declares the variables of the quantifier in a new scope,
// then resolves their inline bounds, and returns the new scope
func (r *resolution) resolveQuantifier(quantifier *ast.Quantifier, parent int, depth int) int {
	scopes := r.elaboration.Scopes

	scope := scopes.Push(parent, quantifier)
	r.elaboration.quantifierScopes[quantifier] = scope

	for _, parameter := range quantifier.TypeParameters {
		r.declare(parameter, quantifier, scope)
	}

	for _, parameter := range quantifier.TypeParameters {
		r.resolveBounds(
			parameter.Bounds,
			scope,
			host{},
			boundContext{depth: depth},
		)
	}

	return scope
}

func (r *resolution) declare(parameter *ast.TypeParameter, quantifier *ast.Quantifier, scope int) {
	scopes := r.elaboration.Scopes
	current := scopes.Scope(scope)

	identifier := parameter.Identifier

	variable := &Variable{
		Name:       canonicalName(identifier.Identifier),
		Identifier: identifier,
		Kind:       declarationKind(identifier),
		Rank:       current.Rank,
		Parameter:  parameter,
		Quantifier: quantifier,
		Scope:      scope,
		index:      uint(len(r.elaboration.Variables)),
	}

	if previous, ok := current.Variables.Get(variable.Name); ok {
		variable.Rejected = true
		r.report(&IllegalShadowingError{
			ShadowingKind: ShadowingKindBinderList,
			Kind:          variable.Kind,
			Name:          identifier.Identifier,
			Range:         identifier.Range(),
			PreviousRange: previous.Identifier.Range(),
		})
	} else if previous := scopes.Find(current.Parent, variable.Name); previous != nil {
		variable.Rejected = true
		r.report(&IllegalShadowingError{
			ShadowingKind: ShadowingKindEnclosing,
			Kind:          variable.Kind,
			Name:          identifier.Identifier,
			Range:         identifier.Range(),
			PreviousRange: previous.Identifier.Range(),
		})
	}

	scopes.Declare(scope, variable)

	r.elaboration.Variables = append(r.elaboration.Variables, variable)
	r.elaboration.parameters[parameter] = variable
}

// resolveBounds resolves the trait and lifetime bounds in source order.
// The given host encloses the lifetime bounds.
func (r *resolution) resolveBounds(bounds ast.Bounds, scope int, enclosing host, context boundContext) {
	for _, element := range bounds.Elements() {
		switch element := element.(type) {
		case ast.BoundExpr:
			r.resolveBound(element, scope, context)
		case *ast.LifetimeType:
			r.resolveName(element.Identifier, scope, enclosing)
		default:
			panic(errors.NewUnreachableError())
		}
	}
}

func (r *resolution) resolveBound(bound ast.BoundExpr, scope int, context boundContext) {
	depth := context.depth

	enclosing := host{
		bound:        bound,
		depth:        depth + 1,
		inConstraint: context.constraint,
	}

	if quantifier := bound.BoundQuantifier(); quantifier != nil {
		depth++
		scope = r.resolveQuantifier(quantifier, scope, depth)
	}

	inner := boundContext{depth: depth}

	switch bound := bound.(type) {
	case *ast.TraitApplication:
		r.resolveTypeArguments(bound.Trait, scope, enclosing, inner)

		if function := bound.Function; function != nil {
			for _, parameterType := range function.ParameterTypes {
				r.resolveType(parameterType, scope, enclosing, inner)
			}
			if function.ReturnType != nil {
				r.resolveType(function.ReturnType, scope, enclosing, inner)
			}
		}

	case *ast.CompoundBound:
		r.resolveBounds(bound.Bounds, scope, enclosing, inner)

	default:
		panic(errors.NewUnreachableError())
	}

	if whereClause := bound.BoundWhereClause(); whereClause != nil {
		r.resolveWhereClause(whereClause, scope, enclosing, depth)
	}
}

func (r *resolution) resolveWhereClause(
	whereClause *ast.WhereClause,
	scope int,
	enclosing host,
	depth int,
) {
	for _, constraint := range whereClause.Constraints {
		target := r.resolveName(constraint.Target, scope, enclosing)

		firstUse := len(r.elaboration.Uses)

		r.resolveBounds(
			constraint.Bounds,
			scope,
			enclosing,
			boundContext{
				depth:      depth + 1,
				constraint: true,
			},
		)

		if target != nil {
			r.checkSelfReference(constraint, target, r.elaboration.Uses[firstUse:])
		}
	}
}

// checkSelfReference reports the first use of the constrained variable
// in the function bounds of its own constraint, e.g. the second `F` in `where F: Fn(F)`
func (r *resolution) checkSelfReference(constraint *ast.Constraint, target *Variable, uses []*Use) {
	for _, bound := range constraint.Bounds.Traits {
		application, ok := bound.(*ast.TraitApplication)
		if !ok || application.Function == nil {
			continue
		}

		for _, use := range uses {
			if use.Variable != target ||
				!application.Function.Encloses(use.Identifier.Range()) {

				continue
			}

			r.report(&IllegalShadowingError{
				ShadowingKind: ShadowingKindConstraint,
				Kind:          target.Kind,
				Name:          use.Identifier.Identifier,
				Range:         use.Identifier.Range(),
				PreviousRange: target.Identifier.Range(),
			})
			return
		}
	}
}

func (r *resolution) resolveTypeArguments(
	nominalType *ast.NominalType,
	scope int,
	enclosing host,
	context boundContext,
) {
	for _, argument := range nominalType.TypeArguments {
		r.resolveType(argument.Type, scope, enclosing, context)
	}
}

func (r *resolution) resolveType(ty ast.Type, scope int, enclosing host, context boundContext) {
	switch ty := ty.(type) {
	case *ast.NominalType:
		// Only a single name may refer to a variable,
		// paths and parameterized types are concrete
		if ty.IsSimple() {
			r.resolveName(ty.Identifier, scope, enclosing)
		} else {
			r.resolveTypeArguments(ty, scope, enclosing, context)
		}

	case *ast.ReferenceType:
		if ty.Lifetime != nil {
			r.resolveName(ty.Lifetime.Identifier, scope, enclosing)
		}
		r.resolveType(ty.Type, scope, enclosing, context)

	case *ast.TupleType:
		for _, elementType := range ty.Types {
			r.resolveType(elementType, scope, enclosing, context)
		}

	case *ast.SliceType:
		r.resolveType(ty.Type, scope, enclosing, context)

	case *ast.LifetimeType:
		r.resolveName(ty.Identifier, scope, enclosing)

	case *ast.TraitObjectType:
		r.resolveBounds(ty.Bounds, scope, enclosing, context)

	case *ast.NeverType:
		// NO-OP

	default:
		panic(errors.NewUnreachableError())
	}
}

// resolveName binds the identifier to the innermost variable with the same name.
// If there is none, and the name is not known, the reference is free.
func (r *resolution) resolveName(identifier ast.Identifier, scope int, enclosing host) *Variable {
	elaboration := r.elaboration

	name := canonicalName(identifier.Identifier)

	if variable := elaboration.Scopes.Find(scope, name); variable != nil {
		elaboration.used.Set(variable.index)
		elaboration.Uses = append(
			elaboration.Uses,
			&Use{
				Identifier: identifier,
				Variable:   variable,
			},
		)
		return variable
	}

	kind := declarationKind(identifier)

	switch kind {
	case common.DeclarationKindLifetimeParameter:
		if isKnownLifetime(name) {
			return nil
		}
	default:
		if r.resolver.isKnownType(name) {
			return nil
		}
	}

	elaboration.FreeReferences = append(
		elaboration.FreeReferences,
		&FreeReference{
			Name:             name,
			Identifier:       identifier,
			Kind:             kind,
			Host:             enclosing.bound,
			HostDepth:        enclosing.depth,
			HostInConstraint: enclosing.inConstraint,
			Scope:            scope,
		},
	)

	return nil
}
