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

// hrtb-repl is an interactive checker for trait-bound predicates
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/c-bata/go-prompt"
	"github.com/mattn/go-isatty"

	"github.com/onflow/hrtb/config"
)

var configFlag = flag.String("config", "", "path of the YAML configuration file")

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

	repl := newREPL(
		conf,
		os.Stdout,
		conf.UseColor(isatty.IsTerminal(os.Stdout.Fd())),
	)

	repl.printWelcome()

	changeLivePrefix := func() (string, bool) {
		return fmt.Sprintf("%d> ", repl.lineNumber), true
	}

	prompt.New(
		func(line string) {
			if repl.execute(line) {
				os.Exit(0)
			}
		},
		repl.suggest,
		prompt.OptionLivePrefix(changeLivePrefix),
		prompt.OptionTitle("hrtb-repl"),
	).Run()
}
