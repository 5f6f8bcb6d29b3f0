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

// Package report encodes analysis results for downstream consumers,
// e.g. type checker front-ends, in CBOR or JSON.
package report

import (
	"github.com/onflow/hrtb/analysis"
	"github.com/onflow/hrtb/ast"
	"github.com/onflow/hrtb/diagnostics"
	"github.com/onflow/hrtb/sema"
)

// Report is the analysis result of one predicate
type Report struct {
	Location    string       `cbor:"1,keyasint" json:"location"`
	Code        string       `cbor:"2,keyasint" json:"code"`
	Rank        int          `cbor:"3,keyasint" json:"rank"`
	Variables   []Variable   `cbor:"4,keyasint,omitempty" json:"variables,omitempty"`
	Uses        []Use        `cbor:"5,keyasint,omitempty" json:"uses,omitempty"`
	Diagnostics []Diagnostic `cbor:"6,keyasint,omitempty" json:"diagnostics,omitempty"`
}

type Position struct {
	Offset int `cbor:"1,keyasint" json:"offset"`
	Line   int `cbor:"2,keyasint" json:"line"`
	Column int `cbor:"3,keyasint" json:"column"`
}

// Range is an inclusive source range
type Range struct {
	Start Position `cbor:"1,keyasint" json:"start"`
	End   Position `cbor:"2,keyasint" json:"end"`
}

type Variable struct {
	Name     string `cbor:"1,keyasint" json:"name"`
	Kind     string `cbor:"2,keyasint" json:"kind"`
	Rank     int    `cbor:"3,keyasint" json:"rank"`
	Range    Range  `cbor:"4,keyasint" json:"range"`
	Rejected bool   `cbor:"5,keyasint,omitempty" json:"rejected,omitempty"`
	Unused   bool   `cbor:"6,keyasint,omitempty" json:"unused,omitempty"`
}

// Use is a reference to a declared variable
type Use struct {
	Name        string `cbor:"1,keyasint" json:"name"`
	Range       Range  `cbor:"2,keyasint" json:"range"`
	Declaration Range  `cbor:"3,keyasint" json:"declaration"`
}

type Diagnostic struct {
	Kind    string `cbor:"1,keyasint" json:"kind"`
	Code    string `cbor:"2,keyasint,omitempty" json:"code,omitempty"`
	Name    string `cbor:"3,keyasint,omitempty" json:"name,omitempty"`
	Message string `cbor:"4,keyasint" json:"message"`
	Range   Range  `cbor:"5,keyasint" json:"range"`
	Fix     *Fix   `cbor:"6,keyasint,omitempty" json:"fix,omitempty"`
}

type Fix struct {
	Message string `cbor:"1,keyasint" json:"message"`
	Edits   []Edit `cbor:"2,keyasint" json:"edits"`
}

// Edit is an insertion before the start of the range,
// or a replacement of the range
type Edit struct {
	Insertion   string `cbor:"1,keyasint,omitempty" json:"insertion,omitempty"`
	Replacement string `cbor:"2,keyasint,omitempty" json:"replacement,omitempty"`
	Range       Range  `cbor:"3,keyasint" json:"range"`
}

// New returns the report of the given analysis result
func New(result *analysis.Result) *Report {
	report := &Report{
		Code: result.Code,
		Rank: result.Rank(),
	}

	if result.Location != nil {
		report.Location = result.Location.String()
	}

	if elaboration := result.Elaboration; elaboration != nil {
		report.Variables = newVariables(elaboration)
		report.Uses = newUses(elaboration.Uses)
	}

	for _, diagnostic := range result.Diagnostics {
		report.Diagnostics = append(report.Diagnostics, newDiagnostic(diagnostic))
	}

	return report
}

// NewAll returns the reports of the given results, in order
func NewAll(results []*analysis.Result) []*Report {
	reports := make([]*Report, 0, len(results))
	for _, result := range results {
		reports = append(reports, New(result))
	}
	return reports
}

func newPosition(position ast.Position) Position {
	return Position{
		Offset: position.Offset,
		Line:   position.Line,
		Column: position.Column,
	}
}

func newRange(r ast.Range) Range {
	return Range{
		Start: newPosition(r.StartPos),
		End:   newPosition(r.EndPos),
	}
}

func newVariables(elaboration *sema.Elaboration) []Variable {
	var result []Variable
	for _, variable := range elaboration.Variables {
		result = append(result, Variable{
			Name:     variable.Identifier.Identifier,
			Kind:     variable.Kind.Name(),
			Rank:     variable.Rank,
			Range:    newRange(variable.Identifier.Range()),
			Rejected: variable.Rejected,
			Unused:   !elaboration.IsUsed(variable),
		})
	}
	return result
}

func newUses(uses []*sema.Use) []Use {
	var result []Use
	for _, use := range uses {
		result = append(result, Use{
			Name:        use.Identifier.Identifier,
			Range:       newRange(use.Identifier.Range()),
			Declaration: newRange(use.Variable.Identifier.Range()),
		})
	}
	return result
}

func newDiagnostic(diagnostic diagnostics.Diagnostic) Diagnostic {
	result := Diagnostic{
		Kind:    diagnostic.Kind.String(),
		Code:    diagnostic.Code,
		Name:    diagnostic.Name,
		Message: diagnostic.Message,
		Range:   newRange(diagnostic.Range),
	}

	if fix := diagnostic.Fix; fix != nil {
		edits := make([]Edit, 0, len(fix.TextEdits))
		for _, edit := range fix.TextEdits {
			edits = append(edits, Edit{
				Insertion:   edit.Insertion,
				Replacement: edit.Replacement,
				Range:       newRange(edit.Range),
			})
		}
		result.Fix = &Fix{
			Message: fix.Message,
			Edits:   edits,
		}
	}

	return result
}
