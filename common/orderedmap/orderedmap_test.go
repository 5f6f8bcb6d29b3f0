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

package orderedmap

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderedMap(t *testing.T) {

	t.Parallel()

	t.Run("insertion order", func(t *testing.T) {
		t.Parallel()

		om := New[OrderedMap[string, int]](2)

		om.Set("T", 1)
		om.Set("'a", 2)
		om.Set("U", 3)

		assert.Equal(t, []string{"T", "'a", "U"}, om.Keys())
		assert.Equal(t, []int{1, 2, 3}, slices.Collect(om.Values()))
		assert.Equal(t, 3, om.Len())
	})

	t.Run("update keeps position", func(t *testing.T) {
		t.Parallel()

		var om OrderedMap[string, int]

		om.Set("T", 1)
		om.Set("U", 2)

		previous, present := om.Set("T", 3)
		require.True(t, present)
		assert.Equal(t, 1, previous)

		value, present := om.Get("T")
		require.True(t, present)
		assert.Equal(t, 3, value)

		var keys []string
		var values []int
		for key, value := range om.All() {
			keys = append(keys, key)
			values = append(values, value)
		}
		assert.Equal(t, []string{"T", "U"}, keys)
		assert.Equal(t, []int{3, 2}, values)
		assert.Equal(t, map[string]int{"T": 3, "U": 2}, maps.Collect(om.All()))
	})

	t.Run("stop iteration", func(t *testing.T) {
		t.Parallel()

		var om OrderedMap[string, int]
		om.Set("A", 1)
		om.Set("B", 2)

		var visited []string
		for key := range om.All() {
			visited = append(visited, key)
			break
		}
		assert.Equal(t, []string{"A"}, visited)
	})

	t.Run("zero value", func(t *testing.T) {
		t.Parallel()

		var om OrderedMap[string, int]

		_, present := om.Get("T")
		assert.False(t, present)
		assert.False(t, om.Contains("T"))
		assert.Equal(t, 0, om.Len())
		assert.Empty(t, om.Keys())
	})
}
