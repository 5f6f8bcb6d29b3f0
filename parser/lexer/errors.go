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

package lexer

import (
	"fmt"

	"github.com/onflow/hrtb/ast"
	"github.com/onflow/hrtb/errors"
)

// TokenLimitReachedError

type TokenLimitReachedError struct {
	ast.Range
}

var _ errors.UserError = TokenLimitReachedError{}

func (TokenLimitReachedError) IsUserError() {}

func (TokenLimitReachedError) Error() string {
	return fmt.Sprintf("limit of %d tokens exceeded", tokenLimit)
}

// UnrecognizedCharacterError

type UnrecognizedCharacterError struct {
	Character rune
	ast.Range
}

var _ errors.UserError = UnrecognizedCharacterError{}

func (UnrecognizedCharacterError) IsUserError() {}

func (e UnrecognizedCharacterError) Error() string {
	return fmt.Sprintf("unrecognized character: %#U", e.Character)
}

// MissingLifetimeNameError is reported for a quote which is not followed by a name, e.g. `&' T`

type MissingLifetimeNameError struct {
	ast.Range
}

var _ errors.UserError = MissingLifetimeNameError{}

func (MissingLifetimeNameError) IsUserError() {}

func (MissingLifetimeNameError) Error() string {
	return "expected lifetime name after `'`"
}

// UnterminatedBlockCommentError

type UnterminatedBlockCommentError struct {
	ast.Range
}

var _ errors.UserError = UnterminatedBlockCommentError{}

func (UnterminatedBlockCommentError) IsUserError() {}

func (UnterminatedBlockCommentError) Error() string {
	return "unterminated block comment"
}

func (UnterminatedBlockCommentError) SecondaryError() string {
	return "missing `*/`"
}
