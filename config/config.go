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

// Package config loads the configuration of the analysis tools from YAML files.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	yamlast "github.com/goccy/go-yaml/ast"
	yamlparser "github.com/goccy/go-yaml/parser"
	"github.com/rs/zerolog"

	"github.com/onflow/hrtb/analysis"
	"github.com/onflow/hrtb/diagnostics"
	"github.com/onflow/hrtb/errors"
	"github.com/onflow/hrtb/parser"
	"github.com/onflow/hrtb/sema"
)

// Config is the configuration file, e.g.
//
//	parenthesizationDepth: 2
//	knownTypes: [Address, Path]
//	excludePrelude: false
//	workers: 8
//	color: auto
//	logLevel: info
type Config struct {
	ParenthesizationDepth int      `yaml:"parenthesizationDepth"`
	KnownTypes            []string `yaml:"knownTypes"`
	ExcludePrelude        bool     `yaml:"excludePrelude"`
	Workers               int      `yaml:"workers"`
	Color                 Color    `yaml:"color"`
	LogLevel              string   `yaml:"logLevel"`
}

// Color selects when diagnostics are colorized
type Color string

const (
	ColorAuto   Color = "auto"
	ColorAlways Color = "always"
	ColorNever  Color = "never"
)

// Default returns the configuration used when no file is given
func Default() Config {
	return Config{
		ParenthesizationDepth: parser.DefaultParenthesizationDepth,
		Color:                 ColorAuto,
		LogLevel:              zerolog.LevelInfoValue,
	}
}

// Parse parses the given YAML document.
// Fields missing in the document have their default values,
// so an empty document, or one with only comments, is the default configuration.
func Parse(data []byte) (Config, error) {
	config := Default()

	file, err := yamlparser.ParseBytes(data, 0)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse configuration: %w", err)
	}

	for _, document := range file.Docs {
		if isEmptyDocument(document) {
			continue
		}
		if err := yaml.NodeToValue(document.Body, &config, yaml.DisallowUnknownField()); err != nil {
			return Config{}, fmt.Errorf("failed to parse configuration: %w", err)
		}
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// isEmptyDocument returns true if the document has no content to decode.
// Decoding such a document would reset all fields to their zero values.
func isEmptyDocument(document *yamlast.DocumentNode) bool {
	if document == nil || document.Body == nil {
		return true
	}
	switch document.Body.Type() {
	case yamlast.NullType, yamlast.CommentType:
		return true
	}
	return false
}

// Load reads and parses the configuration file at the given path
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read configuration: %w", err)
	}
	return Parse(data)
}

// Validate reports the first invalid field as a user error
func (c Config) Validate() error {
	if c.ParenthesizationDepth < 0 {
		return errors.NewDefaultUserError("invalid parenthesization depth: %d", c.ParenthesizationDepth)
	}

	if c.Workers < 0 {
		return errors.NewDefaultUserError("invalid number of workers: %d", c.Workers)
	}

	switch c.Color {
	case "", ColorAuto, ColorAlways, ColorNever:
	default:
		return errors.NewDefaultUserError("invalid color mode: %q", c.Color)
	}

	if _, err := c.Level(); err != nil {
		return err
	}

	return nil
}

// Level returns the log level
func (c Config) Level() (zerolog.Level, error) {
	if c.LogLevel == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, errors.NewDefaultUserError("invalid log level: %w", err)
	}
	return level, nil
}

// UseColor returns whether diagnostics are colorized,
// given whether the output is a terminal
func (c Config) UseColor(terminal bool) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return terminal
	}
}

func (c Config) AnalysisConfig() analysis.Config {
	return analysis.Config{
		ParenthesizationDepth: c.ParenthesizationDepth,
		KnownTypes:            c.KnownTypes,
		ExcludePrelude:        c.ExcludePrelude,
		Workers:               c.Workers,
	}
}

func (c Config) ParserConfig() parser.Config {
	return c.AnalysisConfig().ParserConfig()
}

func (c Config) SemaConfig() sema.Config {
	return c.AnalysisConfig().SemaConfig()
}

func (c Config) DiagnosticsConfig() diagnostics.Config {
	return c.AnalysisConfig().DiagnosticsConfig()
}
