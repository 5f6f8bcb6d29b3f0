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
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/onflow/hrtb/common"
	"github.com/onflow/hrtb/diagnostics"
	"github.com/onflow/hrtb/sema"
)

const tracerName = "github.com/onflow/hrtb/analysis"

// Input is a predicate to analyze
type Input struct {
	Location common.Location
	Code     string
}

// Analyzer analyzes predicates, many of them in parallel.
// Every pass has its own elaboration, passes share no mutable state.
type Analyzer struct {
	config   Config
	pass     pass
	logger   zerolog.Logger
	tracer   trace.Tracer
	onResult func(index int, result *Result)
}

type Option func(*Analyzer)

// WithLogger sets the logger. The default logger discards all events.
func WithLogger(logger zerolog.Logger) Option {
	return func(analyzer *Analyzer) {
		analyzer.logger = logger
	}
}

// WithTracer sets the tracer. The default is the tracer of the global provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(analyzer *Analyzer) {
		analyzer.tracer = tracer
	}
}

// WithResultHandler sets a function which is called after each pass of AnalyzeAll,
// with the index of the input. It is called concurrently.
func WithResultHandler(handler func(index int, result *Result)) Option {
	return func(analyzer *Analyzer) {
		analyzer.onResult = handler
	}
}

func NewAnalyzer(config Config, options ...Option) *Analyzer {
	analyzer := &Analyzer{
		config: config,
		pass: pass{
			parserConfig: config.ParserConfig(),
			resolver:     sema.NewResolver(config.SemaConfig()),
			engine:       diagnostics.NewEngine(config.DiagnosticsConfig()),
		},
		logger: zerolog.Nop(),
		tracer: otel.Tracer(tracerName),
	}

	for _, option := range options {
		option(analyzer)
	}

	return analyzer
}

// Analyze analyzes one predicate
func (a *Analyzer) Analyze(location common.Location, code string) *Result {
	return a.pass.run(location, code)
}

func (a *Analyzer) analyze(ctx context.Context, input Input) *Result {
	_, span := a.tracer.Start(
		ctx,
		"analyze",
		trace.WithAttributes(
			attribute.String("location", locationString(input.Location)),
		),
	)
	defer span.End()

	result := a.pass.run(input.Location, input.Code)

	span.SetAttributes(
		attribute.Int("rank", result.Rank()),
		attribute.Int("diagnostics", len(result.Diagnostics)),
	)

	a.logger.Debug().
		Str("location", locationString(input.Location)).
		Int("rank", result.Rank()).
		Int("diagnostics", len(result.Diagnostics)).
		Msg("analyzed predicate")

	return result
}

// AnalyzeAll analyzes the given predicates in parallel.
// The results are in the order of the inputs.
//
// Cancelling the context stops starting new passes, running passes complete.
// The context's error is returned if not all predicates were analyzed.
func (a *Analyzer) AnalyzeAll(ctx context.Context, inputs []Input) ([]*Result, error) {
	ctx, span := a.tracer.Start(
		ctx,
		"analyzeAll",
		trace.WithAttributes(
			attribute.Int("predicates", len(inputs)),
		),
	)
	defer span.End()

	start := time.Now()

	results := make([]*Result, len(inputs))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(a.config.workers())

	for i, input := range inputs {
		if groupCtx.Err() != nil {
			break
		}

		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			result := a.analyze(groupCtx, input)
			results[i] = result
			if a.onResult != nil {
				a.onResult(i, result)
			}
			return nil
		})
	}

	err := group.Wait()
	if err == nil && complete(results) < len(inputs) {
		err = ctx.Err()
	}
	if err != nil {
		span.RecordError(err)
		a.logger.Error().Err(err).Msg("analysis cancelled")
		return results, err
	}

	var failed, total int
	for _, result := range results {
		if len(result.Diagnostics) > 0 {
			failed++
		}
		total += len(result.Diagnostics)
	}

	a.logger.Info().
		Int("predicates", len(inputs)).
		Int("failed", failed).
		Int("diagnostics", total).
		Dur("duration", time.Since(start)).
		Msg("analysis completed")

	return results, nil
}

func complete(results []*Result) int {
	count := 0
	for _, result := range results {
		if result != nil {
			count++
		}
	}
	return count
}

func locationString(location common.Location) string {
	if location == nil {
		return ""
	}
	return string(location.ID())
}
