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

package main

import (
	"bytes"
	"testing"

	"github.com/c-bata/go-prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/hrtb/config"
)

func TestREPL(t *testing.T) {

	t.Parallel()

	var out bytes.Buffer
	repl := newREPL(config.Default(), &out, false)

	t.Run("clean", func(t *testing.T) {
		assert.False(t, repl.execute("for<F: for<T> Fn(T) -> usize>"))
		assert.Equal(t,
			"rank 2: F (type parameter, rank 1, unused), T (type parameter, rank 2)\n",
			out.String(),
		)
		out.Reset()
	})

	t.Run("diagnostics", func(t *testing.T) {
		assert.False(t, repl.execute("F: Fn() -> T"))
		assert.Contains(t, out.String(), "error[E0412]: cannot find type `T` in this scope\n --> repl:2:11\n")
		out.Reset()
	})

	t.Run("fix", func(t *testing.T) {
		assert.False(t, repl.execute(".fix"))
		assert.Equal(t,
			"F: for<T> Fn() -> T\n"+
				"rank 1: T (type parameter, rank 1)\n",
			out.String(),
		)
		out.Reset()

		assert.False(t, repl.execute(".fix"))
		assert.Equal(t, "Nothing to fix.\n", out.String())
		out.Reset()
	})

	t.Run("commands", func(t *testing.T) {
		assert.False(t, repl.execute(".help"))
		assert.Contains(t, out.String(), ".fix")
		out.Reset()

		assert.False(t, repl.execute(".unknown"))
		assert.Contains(t, out.String(), "Unknown command.")
		out.Reset()

		assert.True(t, repl.execute(".exit"))
	})
}

func TestREPLFixWithoutPredicate(t *testing.T) {

	t.Parallel()

	var out bytes.Buffer
	repl := newREPL(config.Default(), &out, false)

	require.False(t, repl.execute(".fix"))
	assert.Equal(t, "No predicate to fix.\n", out.String())
}

func TestREPLSuggest(t *testing.T) {

	t.Parallel()

	repl := newREPL(config.Default(), &bytes.Buffer{}, false)

	buffer := prompt.NewBuffer()
	buffer.InsertText(".f", false, true)

	suggests := repl.suggest(*buffer.Document())
	require.Len(t, suggests, 1)
	assert.Equal(t, ".fix", suggests[0].Text)

	buffer = prompt.NewBuffer()
	buffer.InsertText("for<T>", false, true)
	assert.Empty(t, repl.suggest(*buffer.Document()))
}
