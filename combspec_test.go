// Copyright 2024 The Combspec Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package combspec

import "github.com/cockroachdb/apd/v3"

// testClass is a minimal [Class] used across this package's tests: two
// testClass values are the same class iff their names are equal, and
// "empty" names report IsEmpty. It deliberately holds only comparable
// fields, since [Class] implementations must support ==.
type testClass struct {
	name  string
	empty bool
	// atSize, if non-zero, is returned by ObjectsOfLength for n == atN;
	// every other size reports zero. Most tests never call
	// ObjectsOfLength and leave both fields at their zero value.
	atN    int
	atSize int64
}

func tc(name string) testClass { return testClass{name: name} }

func tcEmpty(name string) testClass { return testClass{name: name, empty: true} }

func tcCounted(name string, atN int, atSize int64) testClass {
	return testClass{name: name, atN: atN, atSize: atSize}
}

func (c testClass) Content() []byte { return []byte(c.name) }
func (c testClass) IsEmpty() bool   { return c.empty }
func (c testClass) String() string  { return c.name }

func (c testClass) ObjectsOfLength(n int) *apd.Decimal {
	if n == c.atN && c.atSize != 0 {
		return apd.New(c.atSize, 0)
	}
	return new(apd.Decimal)
}
