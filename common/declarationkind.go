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

package common

import (
	"github.com/onflow/hrtb/errors"
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=DeclarationKind

type DeclarationKind uint8

const (
	DeclarationKindUnknown DeclarationKind = iota
	DeclarationKindTypeParameter
	DeclarationKindLifetimeParameter
)

func (k DeclarationKind) Name() string {
	switch k {
	case DeclarationKindTypeParameter:
		return "type parameter"
	case DeclarationKindLifetimeParameter:
		return "lifetime parameter"
	}

	panic(errors.NewUnreachableError())
}

// Noun returns the term used in diagnostics for a variable of this kind,
// e.g. "cannot find type"
func (k DeclarationKind) Noun() string {
	switch k {
	case DeclarationKindTypeParameter:
		return "type"
	case DeclarationKindLifetimeParameter:
		return "lifetime"
	}

	panic(errors.NewUnreachableError())
}
