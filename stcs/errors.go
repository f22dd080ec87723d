// Copyright 2026 The ADQL Semantic Checker Authors.
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

package stcs

import (
	"fmt"

	"github.com/pkg/errors"
)

// SyntaxError is raised on any STC-S syntax failure: a coordinate system
// token that matches nothing, or a region grammar violation. It carries the
// character offset of the first offending token and a human expectation
// string. Cause, when set, is the lower-level error (e.g. a
// strconv numeric-parse failure) this syntax error was folded from; it is
// wrapped with a stack trace so %+v on the SyntaxError still shows where
// the underlying parse failed.
type SyntaxError struct {
	Offset      int
	Text        string
	Expectation string
	Cause       error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("STC-S syntax error at offset %d near %q: %s", e.Offset, e.Text, e.Expectation)
}

func (e *SyntaxError) Unwrap() error { return e.Cause }

func newSyntaxError(offset int, text, expectation string) *SyntaxError {
	return &SyntaxError{Offset: offset, Text: text, Expectation: expectation}
}

func newSyntaxErrorWithCause(offset int, text, expectation string, cause error) *SyntaxError {
	return &SyntaxError{Offset: offset, Text: text, Expectation: expectation, Cause: errors.Wrap(cause, expectation)}
}
