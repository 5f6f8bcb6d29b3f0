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

package sema

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/onflow/hrtb/ast"
	"github.com/onflow/hrtb/common"
)

// Elaboration is the result of resolving one predicate
type Elaboration struct {
	Location  common.Location
	Code      string
	Predicate *ast.Predicate
	Scopes    *ScopeTable
	// Variables are all declared variables, in declaration order
	Variables []*Variable
	// Uses are all references to declared variables, in source order
	Uses []*Use
	// FreeReferences are all references to unknown names, in source order
	FreeReferences []*FreeReference
	// Errors are the semantic errors, in the order they were found
	Errors []error

	quantifierScopes map[*ast.Quantifier]int
	parameters       map[*ast.TypeParameter]*Variable
	// used has the index of each variable with at least one use
	used bitset.BitSet
}

func newElaboration(location common.Location, code string, predicate *ast.Predicate) *Elaboration {
	return &Elaboration{
		Location:         location,
		Code:             code,
		Predicate:        predicate,
		Scopes:           NewScopeTable(),
		quantifierScopes: map[*ast.Quantifier]int{},
		parameters:       map[*ast.TypeParameter]*Variable{},
	}
}

// Rank returns the overall rank of the predicate,
// i.e. the rank of the deepest quantifier, and 1 if there is no quantifier.
func (e *Elaboration) Rank() int {
	rank := e.Scopes.Scope(RootScope).MaxRank
	if rank < 1 {
		return 1
	}
	return rank
}

// QuantifierScope returns the index of the scope declared by the given quantifier
func (e *Elaboration) QuantifierScope(quantifier *ast.Quantifier) (int, bool) {
	index, ok := e.quantifierScopes[quantifier]
	return index, ok
}

// MaxRank returns the rank of the deepest quantifier in the subtree of the given quantifier
func (e *Elaboration) MaxRank(quantifier *ast.Quantifier) int {
	index, ok := e.quantifierScopes[quantifier]
	if !ok {
		return 0
	}
	return e.Scopes.Scope(index).MaxRank
}

// Variable returns the variable declared by the given type parameter
func (e *Elaboration) Variable(parameter *ast.TypeParameter) *Variable {
	return e.parameters[parameter]
}

// VariablesNamed returns all variables declared with the given name, in declaration order
func (e *Elaboration) VariablesNamed(name string) []*Variable {
	var result []*Variable
	for _, variable := range e.Variables {
		if variable.Name == name {
			result = append(result, variable)
		}
	}
	return result
}

// IsUsed returns true if the variable is referenced at least once,
// including as the target of a `where` constraint
func (e *Elaboration) IsUsed(variable *Variable) bool {
	return e.used.Test(variable.index)
}

// UnusedVariables returns the declared variables which are never referenced, in declaration order
func (e *Elaboration) UnusedVariables() []*Variable {
	if e.used.Count() == uint(len(e.Variables)) {
		return nil
	}

	var unused []*Variable
	for _, variable := range e.Variables {
		if !e.used.Test(variable.index) {
			unused = append(unused, variable)
		}
	}
	return unused
}

// Err returns the semantic errors as a ResolverError, or nil if there are none.
// Free references are not errors, they are reported by the diagnostic engine.
func (e *Elaboration) Err() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return ResolverError{
		Location: e.Location,
		Code:     e.Code,
		Errors:   e.Errors,
	}
}
