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

import (
	"fmt"
	"strings"

	"github.com/onflow/hrtb/ast"
	"github.com/onflow/hrtb/common"
	"github.com/onflow/hrtb/errors"
	"github.com/onflow/hrtb/pretty"
)

// ResolverError

type ResolverError struct {
	Location common.Location
	Code     string
	Errors   []error
}

var _ errors.UserError = ResolverError{}
var _ errors.ParentError = ResolverError{}
var _ pretty.HasLocation = ResolverError{}

func (ResolverError) IsUserError() {}

func (e ResolverError) Error() string {
	var sb strings.Builder
	sb.WriteString("Resolution failed:\n")
	printErr := pretty.NewErrorPrettyPrinter(&sb, false).
		PrettyPrintError(e, e.Location, map[common.Location]string{e.Location: e.Code})
	if printErr != nil {
		panic(printErr)
	}
	return sb.String()
}

func (e ResolverError) ChildErrors() []error {
	return e.Errors
}

func (e ResolverError) Unwrap() []error {
	return e.Errors
}

func (e ResolverError) ImportLocation() common.Location {
	return e.Location
}

// SemanticError

type SemanticError interface {
	errors.UserError
	ast.HasPosition
	isSemanticError()
}

// ShadowingKind describes how a name is bound twice

type ShadowingKind uint8

const (
	// ShadowingKindEnclosing is a redeclaration of a name bound by an enclosing quantifier
	ShadowingKindEnclosing ShadowingKind = iota
	// ShadowingKindBinderList is a name declared twice in one binder list
	ShadowingKindBinderList
	// ShadowingKindConstraint is a constrained variable which is used in its own function bound,
	// e.g. `where F: Fn(F)`
	ShadowingKindConstraint
)

// IllegalShadowingError

type IllegalShadowingError struct {
	ShadowingKind ShadowingKind
	Kind          common.DeclarationKind
	Name          string
	ast.Range
	PreviousRange ast.Range
}

var _ SemanticError = &IllegalShadowingError{}
var _ errors.SecondaryError = &IllegalShadowingError{}
var _ errors.ErrorNotes = &IllegalShadowingError{}
var _ errors.HasErrorCode = &IllegalShadowingError{}

func (*IllegalShadowingError) isSemanticError() {}

func (*IllegalShadowingError) IsUserError() {}

// IllegalShadowingErrorCode is the diagnostic code of IllegalShadowingError
const IllegalShadowingErrorCode = "E0403"

func (*IllegalShadowingError) ErrorCode() string {
	return IllegalShadowingErrorCode
}

func (e *IllegalShadowingError) Error() string {
	switch e.ShadowingKind {
	case ShadowingKindBinderList:
		return fmt.Sprintf(
			"the name `%s` is already used for a %s in this binder list",
			e.Name,
			e.Kind.Name(),
		)
	case ShadowingKindConstraint:
		return fmt.Sprintf(
			"%s `%s` is rebound in its own constraint",
			e.Kind.Name(),
			e.Name,
		)
	default:
		return fmt.Sprintf(
			"cannot shadow %s `%s` of an enclosing quantifier",
			e.Kind.Name(),
			e.Name,
		)
	}
}

func (e *IllegalShadowingError) SecondaryError() string {
	if e.ShadowingKind == ShadowingKindConstraint {
		return "the constrained variable cannot be used in its own bound"
	}
	return "already bound"
}

func (e *IllegalShadowingError) ErrorNotes() []errors.ErrorNote {
	return []errors.ErrorNote{
		PreviousDeclarationNote{
			Range: e.PreviousRange,
		},
	}
}

// PreviousDeclarationNote

type PreviousDeclarationNote struct {
	ast.Range
}

func (PreviousDeclarationNote) Message() string {
	return "first declared here"
}
