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

package sema

// Config configures the resolution of names
type Config struct {
	// KnownTypes are additional concrete type names,
	// which are never reported as free type variables
	KnownTypes []string
	// ExcludePrelude excludes the known primitive and standard library types,
	// so every unbound simple name is reported as a free type variable
	ExcludePrelude bool
}
