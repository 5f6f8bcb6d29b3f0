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
	"runtime"

	"github.com/onflow/hrtb/diagnostics"
	"github.com/onflow/hrtb/parser"
	"github.com/onflow/hrtb/sema"
)

// Config configures all stages of an analysis pass
type Config struct {
	// ParenthesizationDepth is the bound nesting depth beyond which
	// quantified bounds in `where` constraints must be parenthesized.
	// Zero means parser.DefaultParenthesizationDepth.
	ParenthesizationDepth int
	// KnownTypes are additional concrete type names
	KnownTypes []string
	// ExcludePrelude reports the standard library types as free type variables
	ExcludePrelude bool
	// Workers is the maximum number of passes the Analyzer runs in parallel.
	// Zero means the number of CPUs.
	Workers int
}

func (c Config) ParserConfig() parser.Config {
	return parser.Config{
		ParenthesizationDepth: c.ParenthesizationDepth,
	}
}

func (c Config) SemaConfig() sema.Config {
	return sema.Config{
		KnownTypes:     c.KnownTypes,
		ExcludePrelude: c.ExcludePrelude,
	}
}

func (c Config) DiagnosticsConfig() diagnostics.Config {
	return diagnostics.Config{
		ParenthesizationDepth: c.ParenthesizationDepth,
	}
}

func (c Config) workers() int {
	if c.Workers <= 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}
