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

// Package orderedmap provides a map that iterates in insertion order.
package orderedmap

import (
	"iter"
	"slices"
)

// OrderedMap is a map whose entries are iterated in the order their keys were first set.
// The zero value is an empty map ready to use.
type OrderedMap[K comparable, V any] struct {
	values map[K]V
	keys   []K
}

// New returns a new OrderedMap with space for the given number of entries
func New[T OrderedMap[K, V], K comparable, V any](size int) *T {
	return &T{
		values: make(map[K]V, size),
		keys:   make([]K, 0, size),
	}
}

// Get returns the value associated with the given key.
// The second return value indicates if the key is present in the map.
func (om *OrderedMap[K, V]) Get(key K) (value V, present bool) {
	value, present = om.values[key]
	return
}

func (om *OrderedMap[K, V]) Contains(key K) bool {
	_, present := om.values[key]
	return present
}

// Set associates the value with the key, and returns the previous value, if any.
// Updating an existing key keeps its position.
func (om *OrderedMap[K, V]) Set(key K, value V) (previous V, present bool) {
	if om.values == nil {
		om.values = map[K]V{}
	}

	previous, present = om.values[key]
	if !present {
		om.keys = append(om.keys, key)
	}
	om.values[key] = value

	return
}

func (om *OrderedMap[K, V]) Len() int {
	return len(om.keys)
}

// Keys returns a copy of the keys, in insertion order
func (om *OrderedMap[K, V]) Keys() []K {
	return slices.Clone(om.keys)
}

// All iterates over the entries in insertion order
func (om *OrderedMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, key := range om.keys {
			if !yield(key, om.values[key]) {
				return
			}
		}
	}
}

// Values iterates over the values in insertion order
func (om *OrderedMap[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, key := range om.keys {
			if !yield(om.values[key]) {
				return
			}
		}
	}
}
