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

package diagnostics

import (
	"fmt"

	"github.com/onflow/hrtb/ast"
	"github.com/onflow/hrtb/common"
	"github.com/onflow/hrtb/errors"
)

const (
	// UnboundTypeErrorCode is the diagnostic code of a free type variable
	UnboundTypeErrorCode = "E0412"
	// UnboundLifetimeErrorCode is the diagnostic code of a free lifetime variable
	UnboundLifetimeErrorCode = "E0261"
)

// UnboundTypeVariableError is reported for a reference to a type or lifetime
// which is not bound by any enclosing quantifier
type UnboundTypeVariableError struct {
	Name string
	Kind common.DeclarationKind
	ast.Range
	// Quantifier is the suggested binder list, e.g. `for<T>`.
	// It is empty if no bound expression can host a quantifier.
	Quantifier string
	// SimilarName is the name of a declared variable with a similar spelling, if any
	SimilarName string
	Fix         *Fix
}

var _ errors.UserError = &UnboundTypeVariableError{}
var _ errors.SecondaryError = &UnboundTypeVariableError{}
var _ errors.ErrorNotes = &UnboundTypeVariableError{}
var _ errors.HasErrorCode = &UnboundTypeVariableError{}
var _ errors.HasSuggestedFixes[ast.TextEdit] = &UnboundTypeVariableError{}

func (*UnboundTypeVariableError) IsUserError() {}

func (e *UnboundTypeVariableError) isLifetime() bool {
	return e.Kind == common.DeclarationKindLifetimeParameter
}

func (e *UnboundTypeVariableError) ErrorCode() string {
	if e.isLifetime() {
		return UnboundLifetimeErrorCode
	}
	return UnboundTypeErrorCode
}

func (e *UnboundTypeVariableError) Error() string {
	if e.isLifetime() {
		return fmt.Sprintf("use of undeclared lifetime name `%s`", e.Name)
	}
	return fmt.Sprintf("cannot find type `%s` in this scope", e.Name)
}

func (e *UnboundTypeVariableError) SecondaryError() string {
	return fmt.Sprintf(
		"did you mean a universally quantified %s?",
		e.Kind.Name(),
	)
}

func (e *UnboundTypeVariableError) ErrorNotes() []errors.ErrorNote {
	notes := []errors.ErrorNote{
		HintNote(fmt.Sprintf(
			"cannot find %s `%s`",
			e.Kind.Noun(),
			e.Name,
		)),
	}

	if e.Quantifier != "" {
		notes = append(
			notes,
			HintNote(fmt.Sprintf(
				"introduce universal quantification with `%s`",
				e.Quantifier,
			)),
		)
	}

	if e.SimilarName != "" {
		notes = append(
			notes,
			HintNote(fmt.Sprintf(
				"a %s with a similar name is bound: `%s`",
				e.Kind.Name(),
				e.SimilarName,
			)),
		)
	}

	return notes
}

func (e *UnboundTypeVariableError) SuggestFixes(_ string) []errors.SuggestedFix[ast.TextEdit] {
	if e.Fix == nil {
		return nil
	}
	return []errors.SuggestedFix[ast.TextEdit]{
		{
			Message:   e.Fix.Message,
			TextEdits: e.Fix.TextEdits,
		},
	}
}

// HintNote is an unpositioned note
type HintNote string

func (n HintNote) Message() string {
	return string(n)
}
