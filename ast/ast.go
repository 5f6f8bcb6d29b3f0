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

// Package ast contains the AST nodes of trait-bound predicates.
// All AST nodes implement the Element interface,
// so have position information,
// can be traversed using Walk and Inspect,
// and can be rendered back to source using Doc.
package ast

import (
	"sort"

	"github.com/onflow/hrtb/errors"
)

type TextEdit struct {
	Replacement string
	Insertion   string
	Range
}

// ApplyTo applies the edit to the given code.
// Offsets are byte offsets into the code.
func (edit TextEdit) ApplyTo(code string) string {
	start := edit.Range.StartPos.Offset
	end := edit.Range.EndPos.Offset

	if edit.Insertion != "" {
		if edit.Replacement != "" {
			panic(errors.NewUnexpectedError("TextEdit with Insertion should not have a Replacement"))
		}
		if start != end {
			panic(errors.NewUnexpectedError("TextEdit with Insertion should have a zero-length range"))
		}

		return code[:start] + edit.Insertion + code[end:]
	}

	return code[:start] + edit.Replacement + code[end+1:]
}

// ApplyTextEdits applies all given edits to the code.
//
// Duplicate edits are applied once.
// Edits are applied from the end of the code to the beginning,
// so the offsets of earlier edits stay valid.
// Insertions at the same offset keep their relative order.
func ApplyTextEdits(code string, edits []TextEdit) string {
	unique := make([]TextEdit, 0, len(edits))
	seen := make(map[TextEdit]struct{}, len(edits))
	for _, edit := range edits {
		if _, ok := seen[edit]; ok {
			continue
		}
		seen[edit] = struct{}{}
		unique = append(unique, edit)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].StartPos.Offset > unique[j].StartPos.Offset
	})

	// Apply same-offset insertions in reverse,
	// so that the first one ends up first in the result
	for i := 0; i < len(unique); {
		j := i + 1
		for j < len(unique) && unique[j].StartPos.Offset == unique[i].StartPos.Offset {
			j++
		}
		for k := j - 1; k >= i; k-- {
			code = unique[k].ApplyTo(code)
		}
		i = j
	}

	return code
}
