// Copyright 2026 Dolthub, Inc.
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

package sql

import "github.com/spf13/cast"

// Text is a string type of unbounded length.
var Text Type = stringType{}

type stringType struct{}

// Family implements Type interface.
func (stringType) Family() Family { return TextFamily }

// Convert implements Type interface.
func (stringType) Convert(v interface{}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return nil, ErrInvalidType.Wrap(err, "TEXT")
	}
	return s, nil
}

// Zero implements Type interface.
func (stringType) Zero() interface{} { return "" }

// String implements Type interface.
func (stringType) String() string { return "TEXT" }
