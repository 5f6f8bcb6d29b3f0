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
	"github.com/onflow/hrtb/common/orderedmap"
)

// RootScope is the index of the scope outside of all quantifiers
const RootScope = 0

// NoScope is the parent index of the root scope
const NoScope = -1

// Scope is the set of variables declared by one quantifier
type Scope struct {
	// Parent is the index of the enclosing scope, NoScope for the root scope
	Parent int
	// Quantifier is the declaring quantifier, nil for the root scope
	Quantifier *ast.Quantifier
	// Rank is the number of quantifiers enclosing the scope, including its own
	Rank int
	// MaxRank is the rank of the deepest quantifier in the subtree of the scope
	MaxRank   int
	Variables *orderedmap.OrderedMap[string, *Variable]
}

// ScopeTable is the tree of the scopes of one predicate,
// stored as an array of scopes with parent indices.
// A parent is always stored before its children.
type ScopeTable struct {
	scopes []*Scope
}

func NewScopeTable() *ScopeTable {
	return &ScopeTable{
		scopes: []*Scope{
			{
				Parent:    NoScope,
				Variables: &orderedmap.OrderedMap[string, *Variable]{},
			},
		},
	}
}

// Push adds a new scope for the given quantifier,
// nested in the given parent scope, and returns its index
func (t *ScopeTable) Push(parent int, quantifier *ast.Quantifier) int {
	rank := t.scopes[parent].Rank + 1

	t.scopes = append(
		t.scopes,
		&Scope{
			Parent:     parent,
			Quantifier: quantifier,
			Rank:       rank,
			MaxRank:    rank,
			Variables:  &orderedmap.OrderedMap[string, *Variable]{},
		},
	)

	return len(t.scopes) - 1
}

func (t *ScopeTable) Scope(index int) *Scope {
	return t.scopes[index]
}

func (t *ScopeTable) Len() int {
	return len(t.scopes)
}

// Declare adds the variable to the given scope.
// An existing variable with the same name is kept.
func (t *ScopeTable) Declare(index int, variable *Variable) {
	variables := t.scopes[index].Variables
	if variables.Contains(variable.Name) {
		return
	}
	variables.Set(variable.Name, variable)
}

// Find returns the variable with the given name
// in the given scope or one of its ancestors,
// searching from the given scope to the root
func (t *ScopeTable) Find(index int, name string) *Variable {
	for index != NoScope {
		scope := t.scopes[index]
		if variable, ok := scope.Variables.Get(name); ok {
			return variable
		}
		index = scope.Parent
	}
	return nil
}

// IsAncestor returns true if the scope at the given ancestor index
// encloses the scope at the given index, or is the same scope
func (t *ScopeTable) IsAncestor(ancestor int, index int) bool {
	for index != NoScope {
		if index == ancestor {
			return true
		}
		index = t.scopes[index].Parent
	}
	return false
}

// computeMaxRanks propagates the ranks of all scopes to their ancestors
func (t *ScopeTable) computeMaxRanks() {
	for i := len(t.scopes) - 1; i > RootScope; i-- {
		scope := t.scopes[i]
		parent := t.scopes[scope.Parent]
		if scope.MaxRank > parent.MaxRank {
			parent.MaxRank = scope.MaxRank
		}
	}
}
