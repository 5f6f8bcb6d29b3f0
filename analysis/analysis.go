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

// Package analysis runs the complete analysis of predicates:
// parsing, name resolution and diagnosis.
package analysis

import (
	"github.com/onflow/hrtb/ast"
	"github.com/onflow/hrtb/common"
	"github.com/onflow/hrtb/diagnostics"
	"github.com/onflow/hrtb/errors"
	"github.com/onflow/hrtb/parser"
	"github.com/onflow/hrtb/sema"
)

// Result is the outcome of one analysis pass
type Result struct {
	Location common.Location
	Code     string
	// Predicate is nil if the predicate could not be parsed
	Predicate *ast.Predicate
	// Elaboration is nil if the predicate could not be parsed
	Elaboration *sema.Elaboration
	Diagnostics diagnostics.Diagnostics
}

// Analyze analyzes one predicate
func Analyze(location common.Location, code string, config Config) *Result {
	return NewAnalyzer(config).Analyze(location, code)
}

type pass struct {
	parserConfig parser.Config
	resolver     *sema.Resolver
	engine       *diagnostics.Engine
}

func (p pass) run(location common.Location, code string) *Result {
	result := &Result{
		Location: location,
		Code:     code,
	}

	predicate, err := parser.ParsePredicate(code, p.parserConfig)
	if err != nil {
		// a predicate with syntax errors is not resolved
		result.Diagnostics = diagnostics.FromErrors(errors.Flatten(err))
		return result
	}

	result.Predicate = predicate
	result.Elaboration = p.resolver.Resolve(location, code, predicate)
	result.Diagnostics = p.engine.Diagnose(result.Elaboration)

	return result
}

// Rank returns the overall rank of the predicate, or 0 if it could not be parsed
func (r *Result) Rank() int {
	if r.Elaboration == nil {
		return 0
	}
	return r.Elaboration.Rank()
}

// Fixed returns the code with all suggested fixes applied
func (r *Result) Fixed() string {
	return r.Diagnostics.Apply(r.Code)
}

// Err returns all diagnostics as an Error, or nil if there are none
func (r *Result) Err() error {
	if len(r.Diagnostics) == 0 {
		return nil
	}
	return Error{
		Location: r.Location,
		Code:     r.Code,
		Errors:   r.Diagnostics.Errors(),
	}
}
