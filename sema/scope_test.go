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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/hrtb/ast"
)

func TestScopeTable(t *testing.T) {

	t.Parallel()

	table := NewScopeTable()
	require.Equal(t, 1, table.Len())

	root := table.Scope(RootScope)
	assert.Equal(t, NoScope, root.Parent)
	assert.Equal(t, 0, root.Rank)

	outer := table.Push(RootScope, &ast.Quantifier{})
	inner := table.Push(outer, &ast.Quantifier{})
	sibling := table.Push(RootScope, &ast.Quantifier{})

	assert.Equal(t, 1, table.Scope(outer).Rank)
	assert.Equal(t, 2, table.Scope(inner).Rank)
	assert.Equal(t, 1, table.Scope(sibling).Rank)

	t.Run("find", func(t *testing.T) {
		table.Declare(outer, &Variable{Name: "T", Scope: outer})
		table.Declare(inner, &Variable{Name: "U", Scope: inner})

		variable := table.Find(inner, "T")
		require.NotNil(t, variable)
		assert.Equal(t, outer, variable.Scope)

		assert.Nil(t, table.Find(outer, "U"))
		assert.Nil(t, table.Find(sibling, "T"))
	})

	t.Run("declare keeps first", func(t *testing.T) {
		first := &Variable{Name: "V", Scope: sibling}
		table.Declare(sibling, first)
		table.Declare(sibling, &Variable{Name: "V", Scope: sibling, Rejected: true})

		assert.Same(t, first, table.Find(sibling, "V"))
	})

	t.Run("ancestors", func(t *testing.T) {
		assert.True(t, table.IsAncestor(RootScope, inner))
		assert.True(t, table.IsAncestor(outer, inner))
		assert.True(t, table.IsAncestor(inner, inner))
		assert.False(t, table.IsAncestor(sibling, inner))
		assert.False(t, table.IsAncestor(inner, outer))
	})

	t.Run("max ranks", func(t *testing.T) {
		table.computeMaxRanks()

		assert.Equal(t, 2, table.Scope(RootScope).MaxRank)
		assert.Equal(t, 2, table.Scope(outer).MaxRank)
		assert.Equal(t, 1, table.Scope(sibling).MaxRank)
	})
}
