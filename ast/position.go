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

package ast

import (
	"fmt"
)

// Position defines a row/column within a bound expression's source.
type Position struct {
	// Offset is the byte offset of the position in the input
	Offset int
	// Line is the 1-based line number
	Line int
	// Column is the 0-based column (byte offset from the beginning of the line)
	Column int
}

var EmptyPosition = Position{}

func NewPosition(offset, line, column int) Position {
	return Position{
		Offset: offset,
		Line:   line,
		Column: column,
	}
}

// Shifted returns a new position with the offset and column moved by length bytes.
// The position must not span multiple lines.
func (position Position) Shifted(length int) Position {
	return Position{
		Line:   position.Line,
		Column: position.Column + length,
		Offset: position.Offset + length,
	}
}

func (position Position) String() string {
	return fmt.Sprintf(
		"%d(%d:%d)",
		position.Offset,
		position.Line,
		position.Column,
	)
}

func (position Position) Compare(other Position) int {
	switch {
	case position.Offset < other.Offset:
		return -1
	case position.Offset > other.Offset:
		return 1
	default:
		return 0
	}
}

// EndPosition returns the position of the given end offset,
// which must be on the same line as the start position.
func EndPosition(startPosition Position, end int) Position {
	length := end - startPosition.Offset
	return startPosition.Shifted(length)
}

// HasPosition

type HasPosition interface {
	StartPosition() Position
	EndPosition() Position
}

// Range

type Range struct {
	StartPos Position
	EndPos   Position
}

var EmptyRange = Range{}

func NewRange(startPos, endPos Position) Range {
	return Range{
		StartPos: startPos,
		EndPos:   endPos,
	}
}

func NewRangeFromPositioned(hasPosition HasPosition) Range {
	return Range{
		StartPos: hasPosition.StartPosition(),
		EndPos:   hasPosition.EndPosition(),
	}
}

func (e Range) StartPosition() Position {
	return e.StartPos
}

func (e Range) EndPosition() Position {
	return e.EndPos
}

// Source returns the source code covered by the range.
// The end position is inclusive.
func (e Range) Source(input string) string {
	startOffset := e.StartPos.Offset
	endOffset := e.EndPos.Offset + 1

	if startOffset < 0 || endOffset > len(input) || startOffset >= endOffset {
		return ""
	}

	return input[startOffset:endOffset]
}

// Contains returns true if the given position is within the range.
func (e Range) Contains(position Position) bool {
	return position.Offset >= e.StartPos.Offset &&
		position.Offset <= e.EndPos.Offset
}

// Encloses returns true if the other range is fully within the range.
func (e Range) Encloses(other Range) bool {
	return e.Contains(other.StartPos) && e.Contains(other.EndPos)
}
