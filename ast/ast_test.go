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

package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyTextEdits(t *testing.T) {

	t.Parallel()

	t.Run("insertions", func(t *testing.T) {
		t.Parallel()

		code := "F: Fn() -> T"

		start := NewPosition(3, 1, 3)

		result := ApplyTextEdits(code, []TextEdit{
			{
				Insertion: "for<T> ",
				Range:     NewRange(start, start),
			},
		})
		assert.Equal(t, "F: for<T> Fn() -> T", result)
	})

	t.Run("same offset keeps order", func(t *testing.T) {
		t.Parallel()

		start := NewPosition(0, 1, 0)

		result := ApplyTextEdits("Fn()", []TextEdit{
			{
				Insertion: "(",
				Range:     NewRange(start, start),
			},
			{
				Insertion: "for<T> ",
				Range:     NewRange(start, start),
			},
		})
		assert.Equal(t, "(for<T> Fn()", result)
	})

	t.Run("duplicates", func(t *testing.T) {
		t.Parallel()

		end := NewPosition(4, 1, 4)
		edit := TextEdit{
			Insertion: ")",
			Range:     NewRange(end, end),
		}

		result := ApplyTextEdits("Fn()", []TextEdit{edit, edit})
		assert.Equal(t, "Fn())", result)
	})

	t.Run("replacement", func(t *testing.T) {
		t.Parallel()

		result := ApplyTextEdits("for<T> Fn(T)", []TextEdit{
			{
				Replacement: "U",
				Range:       NewRange(NewPosition(4, 1, 4), NewPosition(4, 1, 4)),
			},
		})
		assert.Equal(t, "for<U> Fn(T)", result)
	})

	t.Run("invalid insertion", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			ApplyTextEdits("Fn()", []TextEdit{
				{
					Insertion: "x",
					Range:     NewRange(NewPosition(0, 1, 0), NewPosition(1, 1, 1)),
				},
			})
		})
	})
}

func TestRange(t *testing.T) {

	t.Parallel()

	r := NewRange(NewPosition(3, 1, 3), NewPosition(6, 1, 6))

	assert.Equal(t, "Fn()", r.Source("F: Fn() -> T"))
	assert.Equal(t, "", r.Source("F:"))
	assert.True(t, r.Contains(NewPosition(6, 1, 6)))
	assert.False(t, r.Contains(NewPosition(7, 1, 7)))
	assert.True(t, r.Encloses(NewRange(NewPosition(4, 1, 4), NewPosition(5, 1, 5))))
	assert.Equal(t, 1, NewPosition(7, 1, 7).Compare(r.EndPos))
}

func TestIdentifier(t *testing.T) {

	t.Parallel()

	identifier := NewIdentifier("'a", NewPosition(1, 1, 1))

	assert.True(t, identifier.IsLifetime())
	assert.Equal(t, NewPosition(2, 1, 2), identifier.EndPosition())
	assert.False(t, NewIdentifier("T", EmptyPosition).IsLifetime())
}

func TestBoundsElements(t *testing.T) {

	t.Parallel()

	trait := func(name string, offset int) BoundExpr {
		return &TraitApplication{
			Trait: &NominalType{
				Identifier: NewIdentifier(name, NewPosition(offset, 1, offset)),
			},
		}
	}
	lifetime := &LifetimeType{
		Identifier: NewIdentifier("'a", NewPosition(8, 1, 8)),
	}

	bounds := Bounds{
		Traits:    []BoundExpr{trait("Clone", 0), trait("Send", 13)},
		Lifetimes: []*LifetimeType{lifetime},
	}

	elements := bounds.Elements()
	require.Len(t, elements, 3)
	assert.Same(t, lifetime, elements[1])

	assert.Equal(t, 0, bounds.StartPosition().Offset)
	assert.Equal(t, 16, bounds.EndPosition().Offset)
	assert.Equal(t, "Clone + 'a + Send", Prettier(bounds))

	assert.Equal(t, EmptyPosition, Bounds{}.EndPosition())
}

func TestInspect(t *testing.T) {

	t.Parallel()

	application := &TraitApplication{
		Trait: &NominalType{
			Identifier: NewIdentifier("Fn", NewPosition(0, 1, 0)),
		},
		Function: &FunctionSugar{
			ParameterTypes: []Type{
				&NominalType{
					Identifier: NewIdentifier("T", NewPosition(3, 1, 3)),
				},
			},
		},
	}

	var types []ElementType
	Preorder(application, func(element Element) {
		types = append(types, element.ElementType())
	})

	assert.Equal(t,
		[]ElementType{
			ElementTypeTraitApplication,
			ElementTypeNominalType,
			ElementTypeNominalType,
		},
		types,
	)
}
