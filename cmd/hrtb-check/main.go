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

// hrtb-check checks files of trait-bound predicates, one predicate per line,
// and reports free type variables, illegal shadowing and syntax errors.
//
// Usage:
//
//	hrtb-check [flags] [file ...]
//
// Without files, the predicates are read from standard input.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/itchyny/gojq"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/onflow/hrtb/config"
)

var configFlag = flag.String("config", "", "path of the YAML configuration file")
var formatFlag = flag.String("format", formatText, "output format: text, json, or cbor")
var indentFlag = flag.Bool("indent", false, "indent the JSON output")
var queryFlag = flag.String("query", "", "jq query to run on the JSON report, e.g. '.[] | select(.rank > 1) | .code'")
var fixFlag = flag.Bool("fix", false, "print the predicates with all suggested fixes applied")
var watchFlag = flag.Bool("watch", false, "check the files again when they change")
var progressFlag = flag.Bool("progress", false, "show a progress bar")

func main() {
	flag.Parse()

	conf := config.Default()
	if *configFlag != "" {
		var err error
		conf, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}

	level, err := conf.Level()
	if err != nil {
		panic(err)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()

	format, err := parseFormat(*formatFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	var query *gojq.Code
	if *queryFlag != "" {
		query, err = compileQuery(*queryFlag)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}

	terminal := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	checker := &checker{
		config:      conf,
		logger:      logger,
		format:      format,
		indent:      *indentFlag,
		query:       query,
		fix:         *fixFlag,
		progress:    *progressFlag && isatty.IsTerminal(os.Stderr.Fd()),
		useColor:    conf.UseColor(terminal),
		out:         os.Stdout,
		progressOut: os.Stderr,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	paths := flag.Args()

	if *watchFlag {
		if len(paths) == 0 {
			fmt.Fprintln(os.Stderr, "-watch requires files")
			os.Exit(2)
		}
		err = checker.watch(ctx, paths)
		if err != nil {
			logger.Fatal().Err(err).Msg("watching failed")
		}
		return
	}

	var inputs []input
	if len(paths) == 0 {
		inputs, err = readInputs(stdinPath, os.Stdin)
	} else {
		inputs, err = readFiles(paths)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	failed, err := checker.check(ctx, inputs)
	if err != nil {
		logger.Fatal().Err(err).Msg("checking failed")
	}
	if failed {
		os.Exit(1)
	}
}
