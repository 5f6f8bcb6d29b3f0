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

import "github.com/SaveTheRbtz/mph"

// preludeTypes are the concrete types which are always in scope
var preludeTypes = []string{
	"bool",
	"char",
	"str",
	"u8",
	"u16",
	"u32",
	"u64",
	"u128",
	"usize",
	"i8",
	"i16",
	"i32",
	"i64",
	"i128",
	"isize",
	"f32",
	"f64",
	"Self",
	"String",
	"Vec",
	"Box",
	"Option",
	"Result",
	"Clone",
	"Copy",
	"Send",
	"Sync",
	"Sized",
	"Debug",
	"Display",
	"Default",
	"PartialEq",
	"Eq",
	"PartialOrd",
	"Ord",
	"Hash",
	"Iterator",
	"IntoIterator",
	"_",
}

var preludeTypesTable = mph.Build(preludeTypes)

// knownLifetimes never need to be declared
var knownLifetimes = []string{
	"'static",
	"'_",
}

var knownLifetimesTable = mph.Build(knownLifetimes)

func isPreludeType(name string) bool {
	_, ok := preludeTypesTable.Lookup(name)
	return ok
}

func isKnownLifetime(name string) bool {
	_, ok := knownLifetimesTable.Lookup(name)
	return ok
}
