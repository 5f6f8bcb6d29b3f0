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

// Package diagnostics turns the findings of parsing and resolution into diagnostics,
// and suggests the quantifiers which bind free type variables.
package diagnostics

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"

	"github.com/onflow/hrtb/ast"
	"github.com/onflow/hrtb/common"
	"github.com/onflow/hrtb/common/orderedmap"
	"github.com/onflow/hrtb/parser"
	"github.com/onflow/hrtb/sema"
)

type Config struct {
	// ParenthesizationDepth is the bound nesting depth beyond which
	// quantified bounds in `where` constraints must be parenthesized.
	// Zero means parser.DefaultParenthesizationDepth.
	ParenthesizationDepth int
}

func (c Config) parenthesizationDepth() int {
	if c.ParenthesizationDepth <= 0 {
		return parser.DefaultParenthesizationDepth
	}
	return c.ParenthesizationDepth
}

// Engine produces the diagnostics of resolved predicates.
// It has no mutable state, so it may be used concurrently.
type Engine struct {
	config Config
}

func NewEngine(config Config) *Engine {
	return &Engine{
		config: config,
	}
}

// Diagnose returns the diagnostics for the given elaboration:
// one per distinct free name per host bound expression,
// and one per semantic error.
// The elaboration is not modified, so diagnosing is repeatable.
func (e *Engine) Diagnose(elaboration *sema.Elaboration) Diagnostics {
	var diagnostics Diagnostics

	for _, err := range elaboration.Errors {
		diagnostics = append(diagnostics, NewDiagnostic(err))
	}

	for _, err := range e.unboundTypeVariableErrors(elaboration) {
		diagnostics = append(diagnostics, NewDiagnostic(err))
	}

	SortDiagnostics(diagnostics)

	return diagnostics
}

// FromErrors returns the diagnostics for the given errors, e.g. parse errors
func FromErrors(errs []error) Diagnostics {
	diagnostics := make(Diagnostics, 0, len(errs))
	for _, err := range errs {
		diagnostics = append(diagnostics, NewDiagnostic(err))
	}
	SortDiagnostics(diagnostics)
	return diagnostics
}

// SortDiagnostics sorts the diagnostics by source position, then by name
func SortDiagnostics(diagnostics Diagnostics) {
	sort.SliceStable(diagnostics, func(i, j int) bool {
		a := diagnostics[i]
		b := diagnostics[j]
		if a.StartPos.Offset != b.StartPos.Offset {
			return a.StartPos.Offset < b.StartPos.Offset
		}
		return a.Name < b.Name
	})
}

// hostReferences are the free references of one host,
// the first reference of each name, in first-use order
type hostReferences struct {
	host       ast.BoundExpr
	depth      int
	constraint bool
	references *orderedmap.OrderedMap[string, *sema.FreeReference]
	// ancestors are the hosts enclosing this host, innermost first
	ancestors []*hostReferences
	// binders are the references the fix of this host binds,
	// i.e. those no ancestor binds, lifetimes first
	binders    []*sema.FreeReference
	quantifier string
	fix        *Fix
}

func (h *hostReferences) encloses(element ast.HasPosition) bool {
	if h.host == nil || ast.Element(h.host) == element {
		return false
	}
	return ast.NewRangeFromPositioned(h.host).
		Encloses(ast.NewRangeFromPositioned(element))
}

// inserts returns true if the fix of this host inserts a new quantifier,
// which nests all bounds of the host one level deeper
func (h *hostReferences) inserts() bool {
	return h.host != nil &&
		h.host.BoundQuantifier() == nil &&
		len(h.binders) > 0
}

// bindingAncestor returns the outermost ancestor which has a free reference with the given name.
// Its fix binds the name for all hosts it encloses.
func (h *hostReferences) bindingAncestor(name string) *hostReferences {
	for i := len(h.ancestors) - 1; i >= 0; i-- {
		ancestor := h.ancestors[i]
		if ancestor.references.Contains(name) {
			return ancestor
		}
	}
	return nil
}

func (h *hostReferences) binderNames() []string {
	names := make([]string, 0, len(h.binders))
	for _, reference := range h.binders {
		names = append(names, reference.Identifier.Identifier)
	}
	return names
}

func (e *Engine) unboundTypeVariableErrors(elaboration *sema.Elaboration) []*UnboundTypeVariableError {
	hosts := collectHosts(elaboration.FreeReferences)

	for _, references := range hosts {
		if references.host == nil {
			continue
		}
		for reference := range references.references.Values() {
			if references.bindingAncestor(reference.Name) != nil {
				continue
			}
			references.binders = append(references.binders, reference)
		}
		sortBinders(references.binders)
	}

	plan := fixPlan{
		code:       elaboration.Code,
		hosts:      hosts,
		quantified: constraintQuantifiedBounds(elaboration.Predicate),
		limit:      e.config.parenthesizationDepth(),
	}

	for _, references := range hosts {
		if references.host == nil || len(references.binders) == 0 {
			continue
		}
		names := references.binderNames()
		references.quantifier = "for<" + strings.Join(names, ", ") + ">"
		references.fix = plan.quantifierFix(references, names)
	}

	var errs []*UnboundTypeVariableError

	for _, references := range hosts {
		for reference := range references.references.Values() {
			binding := references
			if ancestor := references.bindingAncestor(reference.Name); ancestor != nil {
				binding = ancestor
			}

			errs = append(errs, &UnboundTypeVariableError{
				Name:        reference.Identifier.Identifier,
				Kind:        reference.Kind,
				Range:       reference.Identifier.Range(),
				Quantifier:  binding.quantifier,
				SimilarName: similarName(elaboration, reference),
				Fix:         binding.fix,
			})
		}
	}

	return errs
}

// collectHosts groups the free references by their host, in first-use order,
// and links each host to the hosts enclosing it
func collectHosts(freeReferences []*sema.FreeReference) []*hostReferences {
	grouped := orderedmap.New[orderedmap.OrderedMap[ast.BoundExpr, *hostReferences]](
		len(freeReferences),
	)

	for _, reference := range freeReferences {
		references, ok := grouped.Get(reference.Host)
		if !ok {
			references = &hostReferences{
				host:       reference.Host,
				depth:      reference.HostDepth,
				constraint: reference.HostInConstraint,
				references: &orderedmap.OrderedMap[string, *sema.FreeReference]{},
			}
			grouped.Set(reference.Host, references)
		}

		if references.references.Contains(reference.Name) {
			continue
		}
		references.references.Set(reference.Name, reference)
	}

	hosts := slices.Collect(grouped.Values())

	for _, references := range hosts {
		if references.host == nil {
			continue
		}
		for _, other := range hosts {
			if other.encloses(references.host) {
				references.ancestors = append(references.ancestors, other)
			}
		}
		sort.SliceStable(references.ancestors, func(i, j int) bool {
			return hostLength(references.ancestors[i]) < hostLength(references.ancestors[j])
		})
	}

	return hosts
}

func hostLength(references *hostReferences) int {
	host := references.host
	return host.EndPosition().Offset - host.StartPosition().Offset
}

// sortBinders orders lifetimes before types, and keeps the first-use order within each kind
func sortBinders(binders []*sema.FreeReference) {
	sort.SliceStable(binders, func(i, j int) bool {
		return binders[i].Kind == common.DeclarationKindLifetimeParameter &&
			binders[j].Kind != common.DeclarationKindLifetimeParameter
	})
}

// constraintQuantifiedBounds returns the quantified bounds on the right-hand side of `where` constraints.
// They must be parenthesized once they are nested too deeply.
func constraintQuantifiedBounds(predicate *ast.Predicate) []ast.BoundExpr {
	if predicate == nil {
		return nil
	}

	var bounds []ast.BoundExpr
	ast.Preorder(predicate, func(element ast.Element) {
		constraint, ok := element.(*ast.Constraint)
		if !ok {
			return
		}
		for _, bound := range constraint.Bounds.Traits {
			if bound.BoundQuantifier() != nil {
				bounds = append(bounds, bound)
			}
		}
	})
	return bounds
}

// fixPlan computes the fixes of all hosts of a predicate together,
// so that applying all of them results in a valid predicate
type fixPlan struct {
	code       string
	hosts      []*hostReferences
	quantified []ast.BoundExpr
	limit      int
}

// insertedDepth returns the number of quantifiers inserted around the given bound
func (p fixPlan) insertedDepth(bound ast.BoundExpr) int {
	depth := 0
	for _, references := range p.hosts {
		if references.inserts() && references.encloses(bound) {
			depth++
		}
	}
	return depth
}

// quantifierFix returns the fix which binds the given names on the host:
// the names are added to the host's quantifier, or a new quantifier is inserted
// before the host's application.
//
// An unparenthesized host in a `where` constraint is wrapped in parentheses,
// if the new quantifier would be nested too deeply,
// including the quantifiers inserted by the fixes of enclosing hosts.
// Likewise, a new quantifier wraps the quantified constraint bounds it nests too deeply.
func (p fixPlan) quantifierFix(references *hostReferences, names []string) *Fix {
	host := references.host
	binders := strings.Join(names, ", ")

	if existing := host.BoundQuantifier(); existing != nil {
		insertion := binders
		switch {
		case len(existing.TypeParameters) == 0:
			break
		case hasTrailingComma(p.code, existing):
			insertion = " " + insertion
		default:
			insertion = ", " + insertion
		}

		target := ast.NewRange(existing.EndPos, existing.EndPos)

		return &Fix{
			Message:   fmt.Sprintf("add `%s` to the quantifier", binders),
			Insertion: insertion,
			Target:    target,
			TextEdits: []ast.TextEdit{
				{
					Insertion: insertion,
					Range:     target,
				},
			},
		}
	}

	insertion := "for<" + binders + "> "
	startPos := host.ApplicationStartPosition()
	target := ast.NewRange(startPos, startPos)

	quantifierEdit := ast.TextEdit{
		Insertion: insertion,
		Range:     target,
	}

	fix := &Fix{
		Message:   fmt.Sprintf("introduce universal quantification with `for<%s>`", binders),
		Insertion: insertion,
		Target:    target,
		TextEdits: []ast.TextEdit{quantifierEdit},
	}

	depth := references.depth + p.insertedDepth(host)
	if references.constraint && depth > p.limit {
		parentheses := parser.WrapInParentheses(ast.NewRangeFromPositioned(host))
		fix.Message += " and parenthesize the bound"
		fix.TextEdits = []ast.TextEdit{
			parentheses[0],
			quantifierEdit,
			parentheses[1],
		}
	}

	var nested []ast.TextEdit
	for _, bound := range p.quantified {
		if !references.encloses(bound) {
			continue
		}
		depth := bound.BoundQuantifier().Depth + p.insertedDepth(bound)
		if depth <= p.limit {
			continue
		}
		nested = append(nested, parser.WrapInParentheses(ast.NewRangeFromPositioned(bound))...)
	}
	if len(nested) > 0 {
		fix.Message += " and parenthesize the nested quantified bounds"
		fix.TextEdits = append(fix.TextEdits, nested...)
	}

	return fix
}

func hasTrailingComma(code string, quantifier *ast.Quantifier) bool {
	end := quantifier.EndPos.Offset
	if end > len(code) {
		return false
	}
	return strings.HasSuffix(
		strings.TrimRight(code[:end], " \t\r\n"),
		",",
	)
}

// similarName returns the name of a declared variable of the same kind
// with the smallest edit distance from the reference, if any
func similarName(elaboration *sema.Elaboration, reference *sema.FreeReference) (closestName string) {
	var names []string
	for _, variable := range elaboration.Variables {
		if variable.Kind != reference.Kind || variable.Rejected {
			continue
		}
		names = append(names, variable.Identifier.Identifier)
	}
	sort.Strings(names)

	nameRunes := []rune(reference.Name)
	closestDistance := len(nameRunes)

	for _, name := range names {
		distance := levenshtein.DistanceForStrings(
			nameRunes,
			[]rune(name),
			levenshtein.DefaultOptions,
		)

		// Suggest no name which would be a complete replacement
		if distance < closestDistance && distance < len([]rune(name)) {
			closestName = name
			closestDistance = distance
		}
	}

	return
}
