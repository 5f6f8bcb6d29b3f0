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

	"github.com/onflow/hrtb/errors"
)

// Type

type Type interface {
	Element
	isType()
}

var typeSeparatorDoc prettier.Doc = prettier.Concat{
	prettier.Text(","),
	prettier.Line{},
}

func angledDoc(docs []prettier.Doc) prettier.Doc {
	if len(docs) == 0 {
		return prettier.Text("<>")
	}
	return prettier.Group{
		Doc: prettier.Concat{
			prettier.Text("<"),
			prettier.Indent{
				Doc: prettier.Concat{
					prettier.SoftLine{},
					prettier.Join(typeSeparatorDoc, docs...),
				},
			},
			prettier.SoftLine{},
			prettier.Text(">"),
		},
	}
}

func typeDocs(types []Type) []prettier.Doc {
	docs := make([]prettier.Doc, len(types))
	for i, ty := range types {
		docs[i] = ty.Doc()
	}
	return docs
}

// NominalType represents a named type, e.g. `u32`, `T`, `std::vec::Vec<T>`

type NominalType struct {
	Identifier        Identifier
	NestedIdentifiers []Identifier       `json:",omitempty"`
	TypeArguments     []*GenericArgument `json:",omitempty"`
	// EndPos is the position of the closing `>`, if there are type arguments
	EndPos Position `json:"-"`
}

var _ Element = &NominalType{}
var _ Type = &NominalType{}

func (*NominalType) isType() {}

func (*NominalType) ElementType() ElementType {
	return ElementTypeNominalType
}

// IsSimple returns true if the type is a single identifier without type arguments,
// i.e. if it may refer to a type variable.
func (t *NominalType) IsSimple() bool {
	return len(t.NestedIdentifiers) == 0 &&
		len(t.TypeArguments) == 0
}

// Path returns the `::`-separated path of the type, without type arguments.
func (t *NominalType) Path() string {
	if len(t.NestedIdentifiers) == 0 {
		return t.Identifier.Identifier
	}
	path := t.Identifier.Identifier
	for _, identifier := range t.NestedIdentifiers {
		path += "::" + identifier.Identifier
	}
	return path
}

func (t *NominalType) StartPosition() Position {
	return t.Identifier.StartPosition()
}

func (t *NominalType) EndPosition() Position {
	if len(t.TypeArguments) > 0 {
		return t.EndPos
	}
	nestedCount := len(t.NestedIdentifiers)
	if nestedCount == 0 {
		return t.Identifier.EndPosition()
	}
	lastIdentifier := t.NestedIdentifiers[nestedCount-1]
	return lastIdentifier.EndPosition()
}

func (t *NominalType) Walk(walkChild func(Element)) {
	for _, argument := range t.TypeArguments {
		walkChild(argument)
	}
}

func (t *NominalType) Doc() prettier.Doc {
	pathDoc := prettier.Text(t.Path())
	if len(t.TypeArguments) == 0 {
		return pathDoc
	}

	argumentDocs := make([]prettier.Doc, len(t.TypeArguments))
	for i, argument := range t.TypeArguments {
		argumentDocs[i] = argument.Doc()
	}

	return prettier.Concat{
		pathDoc,
		angledDoc(argumentDocs),
	}
}

func (t *NominalType) String() string {
	return Prettier(t)
}

// GenericArgument is an argument in an angle-bracket argument list.
// It is either a type, or an associated type binding, e.g. `Item = T`

type GenericArgument struct {
	Label *Identifier `json:",omitempty"`
	Type  Type
}

var _ Element = &GenericArgument{}

func (*GenericArgument) ElementType() ElementType {
	return ElementTypeGenericArgument
}

func (a *GenericArgument) StartPosition() Position {
	if a.Label != nil {
		return a.Label.StartPosition()
	}
	return a.Type.StartPosition()
}

func (a *GenericArgument) EndPosition() Position {
	return a.Type.EndPosition()
}

func (a *GenericArgument) Walk(walkChild func(Element)) {
	walkChild(a.Type)
}

func (a *GenericArgument) Doc() prettier.Doc {
	if a.Label == nil {
		return a.Type.Doc()
	}
	return prettier.Concat{
		prettier.Text(a.Label.Identifier),
		prettier.Text(" = "),
		a.Type.Doc(),
	}
}

func (a *GenericArgument) String() string {
	return Prettier(a)
}

// ReferenceType, e.g. `&'a mut T`

type ReferenceType struct {
	Lifetime *LifetimeType `json:",omitempty"`
	Mutable  bool
	Type     Type     `json:"ReferencedType"`
	StartPos Position `json:"-"`
}

var _ Element = &ReferenceType{}
var _ Type = &ReferenceType{}

func (*ReferenceType) isType() {}

func (*ReferenceType) ElementType() ElementType {
	return ElementTypeReferenceType
}

func (t *ReferenceType) StartPosition() Position {
	return t.StartPos
}

func (t *ReferenceType) EndPosition() Position {
	return t.Type.EndPosition()
}

func (t *ReferenceType) Walk(walkChild func(Element)) {
	if t.Lifetime != nil {
		walkChild(t.Lifetime)
	}
	walkChild(t.Type)
}

func (t *ReferenceType) Doc() prettier.Doc {
	doc := prettier.Concat{
		prettier.Text("&"),
	}
	if t.Lifetime != nil {
		doc = append(doc, t.Lifetime.Doc(), prettier.Space)
	}
	if t.Mutable {
		doc = append(doc, prettier.Text("mut "))
	}
	return append(doc, t.Type.Doc())
}

func (t *ReferenceType) String() string {
	return Prettier(t)
}

// TupleType, e.g. `()`, `(A,)`, `(A, B)`

type TupleType struct {
	Types []Type `json:",omitempty"`
	Range
}

var _ Element = &TupleType{}
var _ Type = &TupleType{}

func (*TupleType) isType() {}

func (*TupleType) ElementType() ElementType {
	return ElementTypeTupleType
}

func (t *TupleType) Walk(walkChild func(Element)) {
	walkTypes(walkChild, t.Types)
}

func (t *TupleType) Doc() prettier.Doc {
	switch len(t.Types) {
	case 0:
		return prettier.Text("()")
	case 1:
		return prettier.Concat{
			prettier.Text("("),
			t.Types[0].Doc(),
			prettier.Text(",)"),
		}
	}
	return prettier.WrapParentheses(
		prettier.Join(typeSeparatorDoc, typeDocs(t.Types)...),
		prettier.SoftLine{},
	)
}

func (t *TupleType) String() string {
	return Prettier(t)
}

// SliceType, e.g. `[T]`, or an array type, e.g. `[T; 4]`

type SliceType struct {
	Type Type   `json:"ElementType"`
	Size string `json:",omitempty"`
	Range
}

var _ Element = &SliceType{}
var _ Type = &SliceType{}

func (*SliceType) isType() {}

func (*SliceType) ElementType() ElementType {
	return ElementTypeSliceType
}

func (t *SliceType) Walk(walkChild func(Element)) {
	walkChild(t.Type)
}

func (t *SliceType) Doc() prettier.Doc {
	doc := prettier.Concat{
		prettier.Text("["),
		t.Type.Doc(),
	}
	if t.Size != "" {
		doc = append(doc, prettier.Text("; "+t.Size))
	}
	return append(doc, prettier.Text("]"))
}

func (t *SliceType) String() string {
	return Prettier(t)
}

// LifetimeType, e.g. `'a`

type LifetimeType struct {
	Identifier Identifier
}

var _ Element = &LifetimeType{}
var _ Type = &LifetimeType{}

func (*LifetimeType) isType() {}

func (*LifetimeType) ElementType() ElementType {
	return ElementTypeLifetimeType
}

func (t *LifetimeType) StartPosition() Position {
	return t.Identifier.StartPosition()
}

func (t *LifetimeType) EndPosition() Position {
	return t.Identifier.EndPosition()
}

func (*LifetimeType) Walk(_ func(Element)) {
	// NO-OP
}

func (t *LifetimeType) Doc() prettier.Doc {
	return prettier.Text(t.Identifier.Identifier)
}

func (t *LifetimeType) String() string {
	return t.Identifier.Identifier
}

// TraitObjectKind

type TraitObjectKind uint8

const (
	TraitObjectKindUnknown TraitObjectKind = iota
	TraitObjectKindDyn
	TraitObjectKindImpl
)

func (k TraitObjectKind) Keyword() string {
	switch k {
	case TraitObjectKindDyn:
		return "dyn"
	case TraitObjectKindImpl:
		return "impl"
	}

	panic(errors.NewUnreachableError())
}

// TraitObjectType is a type given by trait bounds, e.g. `dyn for<'a> Fn(&'a T)`.
// It nests bound expressions inside of type positions.

type TraitObjectType struct {
	Kind     TraitObjectKind
	Bounds   Bounds
	StartPos Position `json:"-"`
}

var _ Element = &TraitObjectType{}
var _ Type = &TraitObjectType{}

func (*TraitObjectType) isType() {}

func (*TraitObjectType) ElementType() ElementType {
	return ElementTypeTraitObjectType
}

func (t *TraitObjectType) StartPosition() Position {
	return t.StartPos
}

func (t *TraitObjectType) EndPosition() Position {
	return t.Bounds.EndPosition()
}

func (t *TraitObjectType) Walk(walkChild func(Element)) {
	t.Bounds.Walk(walkChild)
}

func (t *TraitObjectType) Doc() prettier.Doc {
	return prettier.Concat{
		prettier.Text(t.Kind.Keyword()),
		prettier.Space,
		t.Bounds.Doc(),
	}
}

func (t *TraitObjectType) String() string {
	return Prettier(t)
}

// NeverType, i.e. `!`

type NeverType struct {
	Pos Position
}

var _ Element = &NeverType{}
var _ Type = &NeverType{}

func (*NeverType) isType() {}

func (*NeverType) ElementType() ElementType {
	return ElementTypeNeverType
}

func (t *NeverType) StartPosition() Position {
	return t.Pos
}

func (t *NeverType) EndPosition() Position {
	return t.Pos
}

func (*NeverType) Walk(_ func(Element)) {
	// NO-OP
}

func (*NeverType) Doc() prettier.Doc {
	return prettier.Text("!")
}

func (*NeverType) String() string {
	return "!"
}
