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

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/itchyny/gojq"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"

	"github.com/onflow/hrtb/analysis"
	"github.com/onflow/hrtb/common"
	"github.com/onflow/hrtb/config"
	"github.com/onflow/hrtb/encoding/report"
	"github.com/onflow/hrtb/pretty"
)

const stdinPath = "<stdin>"

const (
	formatText = "text"
	formatJSON = "json"
	formatCBOR = "cbor"
)

func parseFormat(format string) (string, error) {
	switch format {
	case formatText, formatJSON, formatCBOR:
		return format, nil
	default:
		return "", fmt.Errorf("unsupported format: %q", format)
	}
}

// input is one line of a file
type input struct {
	location common.FileLocation
	code     string
	// predicate is false for blank lines and comment lines, which are not analyzed
	predicate bool
}

func isPredicateLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed != "" && !strings.HasPrefix(trimmed, "//")
}

func readInputs(path string, reader io.Reader) ([]input, error) {
	var inputs []input

	scanner := bufio.NewScanner(reader)
	for line := 1; scanner.Scan(); line++ {
		code := scanner.Text()
		inputs = append(inputs, input{
			location:  common.NewFileLocation(path, line),
			code:      code,
			predicate: isPredicateLine(code),
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return inputs, nil
}

func readFile(path string) ([]input, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return readInputs(path, file)
}

func readFiles(paths []string) ([]input, error) {
	var inputs []input
	for _, path := range paths {
		fileInputs, err := readFile(path)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, fileInputs...)
	}
	return inputs, nil
}

type checker struct {
	config      config.Config
	logger      zerolog.Logger
	format      string
	indent      bool
	query       *gojq.Code
	fix         bool
	progress    bool
	useColor    bool
	out         io.Writer
	progressOut io.Writer
}

// check analyzes the predicates of the inputs and writes the output.
// It returns true if any predicate has diagnostics.
func (c *checker) check(ctx context.Context, inputs []input) (failed bool, err error) {
	var predicates []analysis.Input
	for _, input := range inputs {
		if !input.predicate {
			continue
		}
		predicates = append(predicates, analysis.Input{
			Location: input.location,
			Code:     input.code,
		})
	}

	options := []analysis.Option{
		analysis.WithLogger(c.logger),
	}

	var bar *progressbar.ProgressBar
	if c.progress {
		bar = progressbar.NewOptions(
			len(predicates),
			progressbar.OptionSetWriter(c.progressOut),
			progressbar.OptionSetDescription("checking"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		options = append(options, analysis.WithResultHandler(func(_ int, _ *analysis.Result) {
			_ = bar.Add(1)
		}))
	}

	analyzer := analysis.NewAnalyzer(c.config.AnalysisConfig(), options...)

	results, err := analyzer.AnalyzeAll(ctx, predicates)
	if err != nil {
		return false, err
	}

	if bar != nil {
		_ = bar.Finish()
	}

	for _, result := range results {
		if len(result.Diagnostics) > 0 {
			failed = true
			break
		}
	}

	switch {
	case c.fix:
		err = c.writeFixed(inputs, results)
	case c.format == formatJSON || c.query != nil:
		err = c.writeJSON(results)
	case c.format == formatCBOR:
		err = c.writeCBOR(results)
	default:
		err = c.writeText(results)
	}

	return failed, err
}

// writeFixed writes all lines, with the suggested fixes applied to the predicates
func (c *checker) writeFixed(inputs []input, results []*analysis.Result) error {
	index := 0
	for _, input := range inputs {
		line := input.code
		if input.predicate {
			line = results[index].Fixed()
			index++
		}

		if _, err := fmt.Fprintln(c.out, line); err != nil {
			return err
		}
	}
	return nil
}

func (c *checker) writeText(results []*analysis.Result) error {
	printer := pretty.NewErrorPrettyPrinter(c.out, c.useColor)

	var problems, failed int

	for _, result := range results {
		err := result.Err()
		if err == nil {
			continue
		}

		if failed > 0 {
			if _, err := io.WriteString(c.out, "\n"); err != nil {
				return err
			}
		}

		failed++
		problems += len(result.Diagnostics)

		err = printer.PrettyPrintError(
			err,
			result.Location,
			map[common.Location]string{
				result.Location: result.Code,
			},
		)
		if err != nil {
			return err
		}
	}

	if failed == 0 {
		return nil
	}

	_, err := fmt.Fprintf(
		c.out,
		"\nfound %d %s in %d of %d predicates\n",
		problems,
		plural(problems, "problem", "problems"),
		failed,
		len(results),
	)
	return err
}

func plural(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}

func (c *checker) writeJSON(results []*analysis.Result) error {
	data, err := report.EncodeJSON(report.NewAll(results), c.indent)
	if err != nil {
		return err
	}
	if c.query != nil {
		return runQuery(c.query, data, c.out)
	}
	if !c.indent {
		data = append(data, '\n')
	}
	_, err = c.out.Write(data)
	return err
}

func (c *checker) writeCBOR(results []*analysis.Result) error {
	data, err := report.EncodeCBOR(report.NewAll(results))
	if err != nil {
		return err
	}
	_, err = c.out.Write(data)
	return err
}
