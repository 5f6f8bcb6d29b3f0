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
	"github.com/onflow/hrtb/ast"
	"github.com/onflow/hrtb/common"
)

// Variable is a type or lifetime variable declared by a quantifier
type Variable struct {
	// Name is the canonical (NFC) name
	Name       string
	Identifier ast.Identifier
	Kind       common.DeclarationKind
	// Rank is the rank of the declaring quantifier
	Rank       int
	Parameter  *ast.TypeParameter
	Quantifier *ast.Quantifier
	// Scope is the index of the declaring scope
	Scope int
	// Rejected is true if the declaration shadows another variable.
	// Uses still bind to rejected variables.
	Rejected bool

	// index is the position in Elaboration.Variables
	index uint
}

// Use is a reference to a declared variable
type Use struct {
	Identifier ast.Identifier
	Variable   *Variable
}

// FreeReference is a reference to a name which is neither declared nor known
type FreeReference struct {
	// Name is the canonical (NFC) name
	Name       string
	Identifier ast.Identifier
	Kind       common.DeclarationKind
	// Host is the bound expression immediately enclosing the reference.
	// A quantifier on the host would bind the name.
	// It is nil if the reference is not part of any bound expression, e.g. in `T: 'a`.
	Host ast.BoundExpr
	// HostDepth is the bound nesting depth of the host's quantifier,
	// or the depth a new quantifier on the host would get
	HostDepth int
	// HostInConstraint is true if the host is directly on the right-hand side
	// of a `where` constraint, i.e. is not parenthesized
	HostInConstraint bool
	// Scope is the index of the scope the reference occurs in
	Scope int
}
