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

// Package errors defines the error taxonomy shared by the lexer, parser,
// resolver and diagnostic engine.
package errors

import (
	"fmt"
	"runtime/debug"

	"golang.org/x/xerrors"
)

// InternalError is an implementation error, e.g. an unreachable code path (UnreachableError).
// Analysis of a predicate should never produce an InternalError.
//
// InternalErrors must always be propagated and never be recovered.
type InternalError interface {
	error
	IsInternalError()
}

// UserError is an error in the analyzed input, e.g. a syntax error or an unbound type variable.
type UserError interface {
	error
	IsUserError()
}

// UnreachableError

// UnreachableError is an internal error which should have never occurred
// due to a programming error in the analysis.
type UnreachableError struct {
	Stack []byte
}

var _ InternalError = UnreachableError{}

func (e UnreachableError) Error() string {
	return fmt.Sprintf("unreachable\n%s", e.Stack)
}

func (e UnreachableError) IsInternalError() {}

func NewUnreachableError() *UnreachableError {
	return &UnreachableError{Stack: debug.Stack()}
}

// SecondaryError is an interface for errors that provide a secondary error message,
// which is shown next to the highlighted source.
type SecondaryError interface {
	SecondaryError() string
}

// ErrorNotes is an interface for errors that provide notes.
// A note may additionally have a position, in which case it highlights another part of the source.
type ErrorNotes interface {
	ErrorNotes() []ErrorNote
}

type ErrorNote interface {
	Message() string
}

// ParentError is an error that contains one or more child errors.
type ParentError interface {
	error
	ChildErrors() []error
}

// HasErrorCode is an interface for errors that have a stable diagnostic code, e.g. `E0412`
type HasErrorCode interface {
	ErrorCode() string
}

// HasSuggestedFixes is an interface for errors that can suggest fixes.
// The code is the source the error was reported for.
type HasSuggestedFixes[T any] interface {
	SuggestFixes(code string) []SuggestedFix[T]
}

type SuggestedFix[T any] struct {
	Message   string
	TextEdits []T
}

// UnexpectedError is the default implementation of the InternalError interface.
// It's a generic error that wraps an implementation error.
type UnexpectedError struct {
	Err error
}

var _ InternalError = UnexpectedError{}

func NewUnexpectedError(message string, arg ...any) UnexpectedError {
	return UnexpectedError{
		Err: fmt.Errorf(message, arg...),
	}
}

func NewUnexpectedErrorFromCause(err error) UnexpectedError {
	return UnexpectedError{
		Err: err,
	}
}

func (e UnexpectedError) Unwrap() error {
	return e.Err
}

func (e UnexpectedError) Error() string {
	return e.Err.Error()
}

func (e UnexpectedError) IsInternalError() {}

// DefaultUserError is the default implementation of the UserError interface.
// It's a generic error that wraps a user error.
type DefaultUserError struct {
	Err error
}

var _ UserError = DefaultUserError{}

func NewDefaultUserError(message string, arg ...any) DefaultUserError {
	return DefaultUserError{
		Err: fmt.Errorf(message, arg...),
	}
}

func (e DefaultUserError) Unwrap() error {
	return e.Err
}

func (e DefaultUserError) Error() string {
	return e.Err.Error()
}

func (e DefaultUserError) IsUserError() {}

// IsInternalError checks whether a given error was caused by an InternalError,
// i.e. if it has at least one InternalError in the error chain.
func IsInternalError(err error) bool {
	switch err := err.(type) {
	case InternalError:
		return true
	case xerrors.Wrapper:
		return IsInternalError(err.Unwrap())
	default:
		return false
	}
}

// IsUserError checks whether a given error was caused by a UserError,
// i.e. if it has at least one UserError in the error chain.
func IsUserError(err error) bool {
	switch err := err.(type) {
	case UserError:
		return true
	case xerrors.Wrapper:
		return IsUserError(err.Unwrap())
	default:
		return false
	}
}

// ErrorCode returns the diagnostic code of the first error in the chain that has one.
func ErrorCode(err error) (string, bool) {
	switch err := err.(type) {
	case HasErrorCode:
		return err.ErrorCode(), true
	case xerrors.Wrapper:
		return ErrorCode(err.Unwrap())
	default:
		return "", false
	}
}

// Flatten returns the leaf errors of the given error,
// recursively expanding parent errors, in order.
func Flatten(err error) []error {
	parentError, ok := err.(ParentError)
	if !ok {
		return []error{err}
	}

	var result []error
	for _, childError := range parentError.ChildErrors() {
		result = append(result, Flatten(childError)...)
	}
	return result
}
