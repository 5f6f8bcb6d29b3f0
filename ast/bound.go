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

package ast

import (
	"github.com/turbolent/prettier"
)

// BoundExpr is a trait bound expression.
// It is either a *TraitApplication or a *CompoundBound.

type BoundExpr interface {
	Element
	isBoundExpr()
	BoundQuantifier() *Quantifier
	BoundWhereClause() *WhereClause
	// ApplicationStartPosition returns the position of the bound
	// after its quantifier, i.e. where a quantifier would be inserted.
	ApplicationStartPosition() Position
}

func boundDoc(quantifier *Quantifier, doc prettier.Doc, whereClause *WhereClause) prettier.Doc {
	if quantifier == nil && whereClause == nil {
		return doc
	}

	result := prettier.Concat{}
	if quantifier != nil {
		result = append(
			result,
			quantifier.Doc(),
			prettier.Space,
		)
	}
	result = append(result, doc)
	if whereClause != nil {
		result = append(
			result,
			prettier.Space,
			whereClause.Doc(),
		)
	}
	return result
}

// Bounds is a `+`-separated list of trait and lifetime bounds,
// e.g. `Clone + 'a + Fn(T)`

type Bounds struct {
	Traits    []BoundExpr     `json:",omitempty"`
	Lifetimes []*LifetimeType `json:",omitempty"`
}

func (b Bounds) IsEmpty() bool {
	return len(b.Traits) == 0 && len(b.Lifetimes) == 0
}

func (b Bounds) Len() int {
	return len(b.Traits) + len(b.Lifetimes)
}

// Elements returns the trait bounds and lifetime bounds in source order.
func (b Bounds) Elements() []Element {
	elements := make([]Element, 0, b.Len())

	traits := b.Traits
	lifetimes := b.Lifetimes
	for len(traits) > 0 && len(lifetimes) > 0 {
		if traits[0].StartPosition().Offset < lifetimes[0].StartPosition().Offset {
			elements = append(elements, traits[0])
			traits = traits[1:]
		} else {
			elements = append(elements, lifetimes[0])
			lifetimes = lifetimes[1:]
		}
	}
	for _, trait := range traits {
		elements = append(elements, trait)
	}
	for _, lifetime := range lifetimes {
		elements = append(elements, lifetime)
	}

	return elements
}

func (b Bounds) StartPosition() Position {
	elements := b.Elements()
	if len(elements) == 0 {
		return EmptyPosition
	}
	return elements[0].StartPosition()
}

func (b Bounds) EndPosition() Position {
	elements := b.Elements()
	if len(elements) == 0 {
		return EmptyPosition
	}
	return elements[len(elements)-1].EndPosition()
}

func (b Bounds) Walk(walkChild func(Element)) {
	for _, element := range b.Elements() {
		walkChild(element)
	}
}

var boundSeparatorDoc prettier.Doc = prettier.Text(" + ")

func (b Bounds) Doc() prettier.Doc {
	elements := b.Elements()
	docs := make([]prettier.Doc, len(elements))
	for i, element := range elements {
		docs[i] = element.Doc()
	}
	return prettier.Join(boundSeparatorDoc, docs...)
}

// Predicate is the root of a bound expression.
// It has either an optional target and bounds, e.g. `F: Fn() -> T`,
// or is a bare binder list, e.g. `for<F: Clone>`

type Predicate struct {
	Target     *Identifier `json:",omitempty"`
	Bounds     Bounds
	Quantifier *Quantifier `json:",omitempty"`
	Range
}

var _ Element = &Predicate{}

func NewPredicate(
	target *Identifier,
	bounds Bounds,
	quantifier *Quantifier,
	astRange Range,
) *Predicate {
	return &Predicate{
		Target:     target,
		Bounds:     bounds,
		Quantifier: quantifier,
		Range:      astRange,
	}
}

func (*Predicate) ElementType() ElementType {
	return ElementTypePredicate
}

// IsBinderList returns true if the predicate is a bare quantifier, e.g. `for<F: Clone>`
func (p *Predicate) IsBinderList() bool {
	return p.Quantifier != nil
}

func (p *Predicate) Walk(walkChild func(Element)) {
	if p.Quantifier != nil {
		walkChild(p.Quantifier)
	}
	p.Bounds.Walk(walkChild)
}

func (p *Predicate) Doc() prettier.Doc {
	if p.Quantifier != nil {
		return p.Quantifier.Doc()
	}

	boundsDoc := p.Bounds.Doc()
	if p.Target == nil {
		return boundsDoc
	}

	return prettier.Concat{
		prettier.Text(p.Target.Identifier),
		prettier.Text(": "),
		boundsDoc,
	}
}

func (p *Predicate) String() string {
	return Prettier(p)
}

// Quantifier is a `for<...>` binder list.
// Rank is the lexical quantifier nesting depth, starting at 1.
// Depth is the bound nesting depth, which also counts `where` constraints.

type Quantifier struct {
	TypeParameters []*TypeParameter `json:",omitempty"`
	Rank           int
	Depth          int
	Range
}

var _ Element = &Quantifier{}

func (*Quantifier) ElementType() ElementType {
	return ElementTypeQuantifier
}

func (q *Quantifier) Walk(walkChild func(Element)) {
	for _, parameter := range q.TypeParameters {
		walkChild(parameter)
	}
}

func (q *Quantifier) Doc() prettier.Doc {
	parameterDocs := make([]prettier.Doc, len(q.TypeParameters))
	for i, parameter := range q.TypeParameters {
		parameterDocs[i] = parameter.Doc()
	}
	return prettier.Concat{
		prettier.Text("for"),
		angledDoc(parameterDocs),
	}
}

func (q *Quantifier) String() string {
	return Prettier(q)
}

// TypeParameter is a lifetime or type variable declared by a quantifier,
// with optional inline bounds, e.g. `T: Clone + 'a`

type TypeParameter struct {
	Identifier Identifier
	Bounds     Bounds
}

var _ Element = &TypeParameter{}

func (*TypeParameter) ElementType() ElementType {
	return ElementTypeTypeParameter
}

func (p *TypeParameter) IsLifetime() bool {
	return p.Identifier.IsLifetime()
}

func (p *TypeParameter) StartPosition() Position {
	return p.Identifier.StartPosition()
}

func (p *TypeParameter) EndPosition() Position {
	if p.Bounds.IsEmpty() {
		return p.Identifier.EndPosition()
	}
	return p.Bounds.EndPosition()
}

func (p *TypeParameter) Walk(walkChild func(Element)) {
	p.Bounds.Walk(walkChild)
}

func (p *TypeParameter) Doc() prettier.Doc {
	identifierDoc := prettier.Text(p.Identifier.Identifier)
	if p.Bounds.IsEmpty() {
		return identifierDoc
	}
	return prettier.Concat{
		identifierDoc,
		prettier.Text(": "),
		p.Bounds.Doc(),
	}
}

func (p *TypeParameter) String() string {
	return Prettier(p)
}

// FunctionSugar is the parenthesized argument list of a `Fn`, `FnMut` or `FnOnce`
// application, with an optional return type, e.g. `(A, B) -> C`

type FunctionSugar struct {
	ParameterTypes []Type `json:",omitempty"`
	ReturnType     Type   `json:",omitempty"`
	Range
}

func (f *FunctionSugar) Walk(walkChild func(Element)) {
	walkTypes(walkChild, f.ParameterTypes)
	if f.ReturnType != nil {
		walkChild(f.ReturnType)
	}
}

func (f *FunctionSugar) Doc() prettier.Doc {
	doc := prettier.Concat{
		prettier.Text("("),
		prettier.Join(prettier.Text(", "), typeDocs(f.ParameterTypes)...),
		prettier.Text(")"),
	}
	if f.ReturnType != nil {
		doc = append(
			doc,
			prettier.Text(" -> "),
			f.ReturnType.Doc(),
		)
	}
	return doc
}

// TraitApplication is a trait path with its arguments, e.g. `PartialEq<T>`, `Fn(T) -> U`,
// optionally quantified and followed by a `where` clause

type TraitApplication struct {
	Quantifier  *Quantifier `json:",omitempty"`
	Trait       *NominalType
	Function    *FunctionSugar `json:",omitempty"`
	WhereClause *WhereClause   `json:",omitempty"`
}

var _ Element = &TraitApplication{}
var _ BoundExpr = &TraitApplication{}

func (*TraitApplication) isBoundExpr() {}

func (*TraitApplication) ElementType() ElementType {
	return ElementTypeTraitApplication
}

func (a *TraitApplication) BoundQuantifier() *Quantifier {
	return a.Quantifier
}

func (a *TraitApplication) BoundWhereClause() *WhereClause {
	return a.WhereClause
}

func (a *TraitApplication) ApplicationStartPosition() Position {
	return a.Trait.StartPosition()
}

// IsFunction returns true if the application uses the function sugar, e.g. `Fn(T) -> U`
func (a *TraitApplication) IsFunction() bool {
	return a.Function != nil
}

func (a *TraitApplication) StartPosition() Position {
	if a.Quantifier != nil {
		return a.Quantifier.StartPosition()
	}
	return a.Trait.StartPosition()
}

func (a *TraitApplication) EndPosition() Position {
	return a.ApplicationEndPosition()
}

// ApplicationEndPosition returns the end position of the application,
// including its `where` clause, if any.
func (a *TraitApplication) ApplicationEndPosition() Position {
	switch {
	case a.WhereClause != nil:
		return a.WhereClause.EndPosition()
	case a.Function != nil:
		return a.Function.EndPosition()
	default:
		return a.Trait.EndPosition()
	}
}

func (a *TraitApplication) Walk(walkChild func(Element)) {
	if a.Quantifier != nil {
		walkChild(a.Quantifier)
	}
	walkChild(a.Trait)
	if a.Function != nil {
		a.Function.Walk(walkChild)
	}
	if a.WhereClause != nil {
		walkChild(a.WhereClause)
	}
}

func (a *TraitApplication) Doc() prettier.Doc {
	var doc prettier.Doc = a.Trait.Doc()
	if a.Function != nil {
		doc = prettier.Concat{
			doc,
			a.Function.Doc(),
		}
	}
	return boundDoc(a.Quantifier, doc, a.WhereClause)
}

func (a *TraitApplication) String() string {
	return Prettier(a)
}

// CompoundBound is a parenthesized list of bounds, e.g. `(for<T> Fn(T) where T: Clone)`

type CompoundBound struct {
	Quantifier  *Quantifier `json:",omitempty"`
	Bounds      Bounds
	WhereClause *WhereClause `json:",omitempty"`
	// ParenRange is the range from the opening to the closing parenthesis
	ParenRange Range
}

var _ Element = &CompoundBound{}
var _ BoundExpr = &CompoundBound{}

func (*CompoundBound) isBoundExpr() {}

func (*CompoundBound) ElementType() ElementType {
	return ElementTypeCompoundBound
}

func (b *CompoundBound) BoundQuantifier() *Quantifier {
	return b.Quantifier
}

func (b *CompoundBound) BoundWhereClause() *WhereClause {
	return b.WhereClause
}

func (b *CompoundBound) ApplicationStartPosition() Position {
	return b.ParenRange.StartPos
}

func (b *CompoundBound) StartPosition() Position {
	if b.Quantifier != nil {
		return b.Quantifier.StartPosition()
	}
	return b.ParenRange.StartPos
}

func (b *CompoundBound) EndPosition() Position {
	if b.WhereClause != nil {
		return b.WhereClause.EndPosition()
	}
	return b.ParenRange.EndPos
}

func (b *CompoundBound) Walk(walkChild func(Element)) {
	if b.Quantifier != nil {
		walkChild(b.Quantifier)
	}
	b.Bounds.Walk(walkChild)
	if b.WhereClause != nil {
		walkChild(b.WhereClause)
	}
}

func (b *CompoundBound) Doc() prettier.Doc {
	doc := prettier.Concat{
		prettier.Text("("),
		b.Bounds.Doc(),
		prettier.Text(")"),
	}
	return boundDoc(b.Quantifier, doc, b.WhereClause)
}

func (b *CompoundBound) String() string {
	return Prettier(b)
}

// WhereClause, e.g. `where T: Display, U: Clone`

type WhereClause struct {
	Constraints []*Constraint
	Range
}

var _ Element = &WhereClause{}

func (*WhereClause) ElementType() ElementType {
	return ElementTypeWhereClause
}

func (w *WhereClause) Walk(walkChild func(Element)) {
	for _, constraint := range w.Constraints {
		walkChild(constraint)
	}
}

var whereKeywordDoc prettier.Doc = prettier.Text("where")

func (w *WhereClause) Doc() prettier.Doc {
	constraintDocs := make([]prettier.Doc, len(w.Constraints))
	for i, constraint := range w.Constraints {
		constraintDocs[i] = constraint.Doc()
	}

	return prettier.Group{
		Doc: prettier.Concat{
			whereKeywordDoc,
			prettier.Indent{
				Doc: prettier.Concat{
					prettier.Line{},
					prettier.Join(typeSeparatorDoc, constraintDocs...),
				},
			},
		},
	}
}

func (w *WhereClause) String() string {
	return Prettier(w)
}

// Constraint is a single `where` clause entry, e.g. `F: for<T> Fn(T)`

type Constraint struct {
	Target Identifier
	Bounds Bounds
}

var _ Element = &Constraint{}

func (*Constraint) ElementType() ElementType {
	return ElementTypeConstraint
}

func (c *Constraint) StartPosition() Position {
	return c.Target.StartPosition()
}

func (c *Constraint) EndPosition() Position {
	if c.Bounds.IsEmpty() {
		return c.Target.EndPosition()
	}
	return c.Bounds.EndPosition()
}

func (c *Constraint) Walk(walkChild func(Element)) {
	c.Bounds.Walk(walkChild)
}

func (c *Constraint) Doc() prettier.Doc {
	return prettier.Concat{
		prettier.Text(c.Target.Identifier),
		prettier.Text(": "),
		c.Bounds.Doc(),
	}
}

func (c *Constraint) String() string {
	return Prettier(c)
}
