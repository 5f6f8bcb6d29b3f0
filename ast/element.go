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
	"strings"

	"github.com/turbolent/prettier"
)

type Element interface {
	HasPosition
	ElementType() ElementType
	Walk(walkChild func(Element))
	Doc() prettier.Doc
	String() string
}

// Inspect traverses the element in depth-first order.
// It starts by calling f(element); element must not be nil.
// If f returns true, Inspect invokes f recursively for each of the non-nil children of element,
// followed by a call of f(nil).
func Inspect(element Element, f func(Element) bool) {
	if !f(element) {
		return
	}

	element.Walk(func(child Element) {
		Inspect(child, f)
	})

	f(nil)
}

// Preorder calls f for each element in depth-first order,
// before the element's children.
func Preorder(element Element, f func(Element)) {
	Inspect(element, func(element Element) bool {
		if element != nil {
			f(element)
		}
		return true
	})
}

func walkTypes(walkChild func(Element), types []Type) {
	for _, ty := range types {
		walkChild(ty)
	}
}

const prettierMaxLineWidth = 80
const prettierIndent = "    "

// Prettier renders the element's document to a string.
func Prettier(element interface{ Doc() prettier.Doc }) string {
	var builder strings.Builder
	prettier.Prettier(&builder, element.Doc(), prettierMaxLineWidth, prettierIndent)
	return builder.String()
}
