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

import "github.com/SaveTheRbtz/mph"

// NOTE: ensure to update allKeywords when adding a new keyword
const (
	KeywordFor    = "for"
	KeywordWhere  = "where"
	KeywordDyn    = "dyn"
	KeywordImpl   = "impl"
	KeywordMut    = "mut"
	KeywordFn     = "Fn"
	KeywordFnMut  = "FnMut"
	KeywordFnOnce = "FnOnce"
	// NOTE: ensure to update allKeywords when adding a new keyword
)

var allKeywords = []string{
	KeywordFor,
	KeywordWhere,
	KeywordDyn,
	KeywordImpl,
	KeywordMut,
	KeywordFn,
	KeywordFnMut,
	KeywordFnOnce,
}

// Function traits, which are applied with parenthesized arguments, e.g. `Fn(T) -> U`.
// They can be used in identifier position.
var functionTraits = []string{
	KeywordFn,
	KeywordFnMut,
	KeywordFnOnce,
}

var functionTraitsTable = mph.Build(functionTraits)

// Keywords that aren't allowed in identifier position.
var hardKeywords = filter(
	allKeywords,
	func(keyword string) bool {
		_, ok := functionTraitsTable.Lookup(keyword)
		return !ok
	},
)

var hardKeywordsTable = mph.Build(hardKeywords)

// IsHardKeyword returns true if the given string is a keyword
// which cannot be used as an identifier
func IsHardKeyword(s string) bool {
	_, ok := hardKeywordsTable.Lookup(s)
	return ok
}

// IsFunctionTrait returns true if the given trait name is applied with function sugar
func IsFunctionTrait(s string) bool {
	_, ok := functionTraitsTable.Lookup(s)
	return ok
}

func filter[T comparable](items []T, f func(T) bool) []T {
	result := make([]T, 0, len(items))
	for _, item := range items {
		if f(item) {
			result = append(result, item)
		}
	}
	return result
}
