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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/hrtb/ast"
	. "github.com/onflow/hrtb/test_utils/common_utils"
)

func testParseType(t *testing.T, input string) ast.Type {
	t.Helper()

	ty, err := ParseType(input, Config{})
	require.NoError(t, err)
	require.NotNil(t, ty)

	return ty
}

func TestParseNominalType(t *testing.T) {

	t.Parallel()

	t.Run("simple", func(t *testing.T) {
		t.Parallel()

		ty := testParseType(t, "T")

		AssertEqualWithDiff(t,
			&ast.NominalType{
				Identifier: ast.Identifier{
					Identifier: "T",
					Pos:        pos(0),
				},
			},
			ty,
		)
		assert.True(t, ty.(*ast.NominalType).IsSimple())
	})

	t.Run("path with arguments", func(t *testing.T) {
		t.Parallel()

		ty := testParseType(t, "std::vec::Vec<'a, T>")

		nominalType, ok := ty.(*ast.NominalType)
		require.True(t, ok)
		assert.False(t, nominalType.IsSimple())
		assert.Equal(t, "std::vec::Vec", nominalType.Path())
		require.Len(t, nominalType.TypeArguments, 2)
		assert.IsType(t, &ast.LifetimeType{}, nominalType.TypeArguments[0].Type)
		assert.Equal(t, pos(19), nominalType.EndPosition())

		assert.Equal(t, "std::vec::Vec<'a, T>", ty.String())
	})

	t.Run("keyword", func(t *testing.T) {
		t.Parallel()

		_, err := ParseType("where", Config{})
		errs := RequireErrors(t, err, 1)
		require.IsType(t, &KeywordAsIdentifierError{}, errs[0])
	})

	t.Run("missing path segment", func(t *testing.T) {
		t.Parallel()

		_, err := ParseType("std::", Config{})
		errs := RequireErrors(t, err, 1)
		require.IsType(t, &UnexpectedTokenError{}, errs[0])
	})
}

func TestParseReferenceType(t *testing.T) {

	t.Parallel()

	ty := testParseType(t, "&'a mut [T; 4]")

	AssertEqualWithDiff(t,
		&ast.ReferenceType{
			Lifetime: &ast.LifetimeType{
				Identifier: ast.Identifier{
					Identifier: "'a",
					Pos:        pos(1),
				},
			},
			Mutable: true,
			Type: &ast.SliceType{
				Type: &ast.NominalType{
					Identifier: ast.Identifier{
						Identifier: "T",
						Pos:        pos(9),
					},
				},
				Size:  "4",
				Range: ast.NewRange(pos(8), pos(13)),
			},
			StartPos: pos(0),
		},
		ty,
	)

	assert.Equal(t, "&'a mut [T; 4]", ty.String())
}

func TestParseTupleType(t *testing.T) {

	t.Parallel()

	t.Run("unit", func(t *testing.T) {
		t.Parallel()

		ty := testParseType(t, "()")
		assert.IsType(t, &ast.TupleType{}, ty)
		assert.Equal(t, "()", ty.String())
	})

	t.Run("single", func(t *testing.T) {
		t.Parallel()

		ty := testParseType(t, "(A,)")
		assert.IsType(t, &ast.TupleType{}, ty)
		assert.Equal(t, "(A,)", ty.String())
	})

	t.Run("parenthesized", func(t *testing.T) {
		t.Parallel()

		ty := testParseType(t, "(A)")
		assert.IsType(t, &ast.NominalType{}, ty)
	})

	t.Run("pair", func(t *testing.T) {
		t.Parallel()

		ty := testParseType(t, "(A, &B)")
		assert.Equal(t, "(A, &B)", ty.String())
	})
}

func TestParseTraitObjectType(t *testing.T) {

	t.Parallel()

	t.Run("dyn", func(t *testing.T) {
		t.Parallel()

		ty := testParseType(t, "dyn for<'b> Fn(&'b T) + Send")

		traitObject, ok := ty.(*ast.TraitObjectType)
		require.True(t, ok)
		assert.Equal(t, ast.TraitObjectKindDyn, traitObject.Kind)
		require.Len(t, traitObject.Bounds.Traits, 2)

		quantifier := traitObject.Bounds.Traits[0].BoundQuantifier()
		require.NotNil(t, quantifier)
		assert.Equal(t, 1, quantifier.Rank)

		assert.Equal(t, "dyn for<'b> Fn(&'b T) + Send", ty.String())
	})

	t.Run("impl in function argument", func(t *testing.T) {
		t.Parallel()

		predicate := testParsePredicate(t, "for<T> Fn(impl for<U> Fn(U) -> T)")

		application := predicate.Bounds.Traits[0].(*ast.TraitApplication)

		argument, ok := application.Function.ParameterTypes[0].(*ast.TraitObjectType)
		require.True(t, ok)
		assert.Equal(t, ast.TraitObjectKindImpl, argument.Kind)

		inner := argument.Bounds.Traits[0].BoundQuantifier()
		assert.Equal(t, 2, inner.Rank)
	})
}

func TestParseOtherTypes(t *testing.T) {

	t.Parallel()

	t.Run("never", func(t *testing.T) {
		t.Parallel()

		ty := testParseType(t, "!")
		assert.Equal(t, &ast.NeverType{Pos: pos(0)}, ty)
	})

	t.Run("slice", func(t *testing.T) {
		t.Parallel()

		ty := testParseType(t, "[u8]")
		assert.Equal(t, "[u8]", ty.String())
	})

	t.Run("missing type", func(t *testing.T) {
		t.Parallel()

		_, err := ParseType(",", Config{})
		errs := RequireErrors(t, err, 1)

		var tokenErr *UnexpectedTokenError
		require.ErrorAs(t, errs[0], &tokenErr)
		assert.Equal(t, "type", tokenErr.Expected)
	})
}
