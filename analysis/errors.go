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

package analysis

import (
	"strings"

	"github.com/onflow/hrtb/common"
	"github.com/onflow/hrtb/errors"
	"github.com/onflow/hrtb/pretty"
)

// Error is the aggregate of all errors reported for one predicate

type Error struct {
	Location common.Location
	Code     string
	Errors   []error
}

var _ errors.UserError = Error{}
var _ errors.ParentError = Error{}
var _ pretty.HasLocation = Error{}

func (Error) IsUserError() {}

func (e Error) Error() string {
	var sb strings.Builder
	sb.WriteString("Analysis failed:\n")
	printErr := pretty.NewErrorPrettyPrinter(&sb, false).
		PrettyPrintError(e, e.Location, map[common.Location]string{e.Location: e.Code})
	if printErr != nil {
		panic(printErr)
	}
	return sb.String()
}

func (e Error) ChildErrors() []error {
	return e.Errors
}

func (e Error) Unwrap() []error {
	return e.Errors
}

func (e Error) ImportLocation() common.Location {
	return e.Location
}
