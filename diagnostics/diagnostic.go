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
	"github.com/hashicorp/go-set/v3"

	"github.com/onflow/hrtb/ast"
	"github.com/onflow/hrtb/errors"
	"github.com/onflow/hrtb/parser"
	"github.com/onflow/hrtb/sema"
)

// Fix is a suggested fix: the insertion of text at a target position,
// and all edits required to apply it
type Fix struct {
	Message   string
	Insertion string
	Target    ast.Range
	TextEdits []ast.TextEdit
}

// Diagnostic is a reported issue of a predicate
type Diagnostic struct {
	Kind    Kind
	Code    string `json:",omitempty"`
	Name    string `json:",omitempty"`
	Message string
	ast.Range
	Fix *Fix `json:",omitempty"`
	// Err is the reported error, which renders the diagnostic
	Err error `json:"-"`
}

// NewDiagnostic returns the diagnostic for the given error
func NewDiagnostic(err error) Diagnostic {
	diagnostic := Diagnostic{
		Kind:    KindSyntax,
		Message: err.Error(),
		Err:     err,
	}

	if code, ok := errors.ErrorCode(err); ok {
		diagnostic.Code = code
	}

	if positioned, ok := err.(ast.HasPosition); ok {
		diagnostic.Range = ast.NewRangeFromPositioned(positioned)
	}

	switch err := err.(type) {
	case *UnboundTypeVariableError:
		diagnostic.Kind = KindUnboundTypeVariable
		diagnostic.Name = err.Name
		diagnostic.Fix = err.Fix

	case *sema.IllegalShadowingError:
		diagnostic.Kind = KindIllegalShadowing
		diagnostic.Name = err.Name

	case *parser.MissingParenthesizationError:
		diagnostic.Kind = KindMissingParenthesization
		for _, fix := range err.SuggestFixes("") {
			diagnostic.Fix = &Fix{
				Message:   fix.Message,
				Insertion: "(",
				Target:    ast.NewRange(err.StartPos, err.StartPos),
				TextEdits: fix.TextEdits,
			}
		}
	}

	return diagnostic
}

// Diagnostics is an ordered list of diagnostics
type Diagnostics []Diagnostic

// SuggestedFixes returns the edits of all suggested fixes.
// Identical edits, e.g. of merged quantifier suggestions, are only returned once.
func (d Diagnostics) SuggestedFixes() []ast.TextEdit {
	seen := set.New[ast.TextEdit](len(d))

	var edits []ast.TextEdit
	for _, diagnostic := range d {
		if diagnostic.Fix == nil {
			continue
		}
		for _, edit := range diagnostic.Fix.TextEdits {
			if !seen.Insert(edit) {
				continue
			}
			edits = append(edits, edit)
		}
	}
	return edits
}

// Apply applies all suggested fixes to the given code
func (d Diagnostics) Apply(code string) string {
	return ast.ApplyTextEdits(code, d.SuggestedFixes())
}

// Errors returns the reported errors
func (d Diagnostics) Errors() []error {
	errs := make([]error, 0, len(d))
	for _, diagnostic := range d {
		errs = append(errs, diagnostic.Err)
	}
	return errs
}

// Count returns the number of diagnostics of the given kind
func (d Diagnostics) Count(kind Kind) int {
	count := 0
	for _, diagnostic := range d {
		if diagnostic.Kind == kind {
			count++
		}
	}
	return count
}
