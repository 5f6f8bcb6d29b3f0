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

package common

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Location identifies the source of an analyzed predicate.
type Location interface {
	fmt.Stringer
	// ID returns the canonical ID for this location.
	ID() LocationID
}

// HasLineOffset is implemented by locations of predicates
// that start at a line other than the first line of their source.
type HasLineOffset interface {
	// LineOffset returns the 1-based line of the source at which the predicate starts
	LineOffset() int
}

// LineNumber returns the line number of the given predicate line in its source.
func LineNumber(location Location, line int) int {
	hasLineOffset, ok := location.(HasLineOffset)
	if !ok || hasLineOffset.LineOffset() < 1 {
		return line
	}
	return line + hasLineOffset.LineOffset() - 1
}

func LocationsMatch(first, second Location) bool {
	if first == nil && second == nil {
		return true
	}

	if first == nil || second == nil {
		return false
	}

	return first.ID() == second.ID()
}

// LocationID

type LocationID string

func NewLocationID(parts ...string) LocationID {
	return LocationID(strings.Join(parts, "."))
}

// StringLocation

const StringLocationPrefix = "S"

type StringLocation string

var _ Location = StringLocation("")

func (l StringLocation) ID() LocationID {
	return NewLocationID(
		StringLocationPrefix,
		string(l),
	)
}

func (l StringLocation) String() string {
	return string(l)
}

func (l StringLocation) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Type   string
		String string
	}{
		Type:   "StringLocation",
		String: string(l),
	})
}

// FileLocation is a line of a file, e.g. one predicate per line of a bounds file

const FileLocationPrefix = "F"

type FileLocation struct {
	Path string
	Line int
}

var _ Location = FileLocation{}
var _ HasLineOffset = FileLocation{}

func NewFileLocation(path string, line int) FileLocation {
	return FileLocation{
		Path: path,
		Line: line,
	}
}

func (l FileLocation) ID() LocationID {
	return NewLocationID(
		FileLocationPrefix,
		l.Path,
		fmt.Sprint(l.Line),
	)
}

func (l FileLocation) String() string {
	return l.Path
}

func (l FileLocation) LineOffset() int {
	return l.Line
}

func (l FileLocation) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Type string
		Path string
		Line int
	}{
		Type: "FileLocation",
		Path: l.Path,
		Line: l.Line,
	})
}
