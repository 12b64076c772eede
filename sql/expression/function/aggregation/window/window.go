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

package window

import (
	"fmt"

	"github.com/dolthub/go-stream-window/sql"
	"github.com/dolthub/go-stream-window/sql/expression"
)

// partitioned holds what every window function has in common: a name and
// the argument list, whose first element is the partition key.
type partitioned struct {
	name string
	args []sql.Expression
}

func (p partitioned) key() sql.Expression { return p.args[0] }

// FunctionName implements sql.FunctionExpression
func (p partitioned) FunctionName() string { return p.name }

// Children implements sql.Expression
func (p partitioned) Children() []sql.Expression { return p.args }

// Eval implements sql.Expression. Window functions have no value outside of a
// stream, their values come from the state returned by NewState.
func (p partitioned) Eval(*sql.Context, sql.Row) (interface{}, error) {
	return nil, sql.ErrEvalWindowFunction.New(p.name)
}

func (p partitioned) String() string {
	return fmt.Sprintf("%s(%s)", p.name, expression.JoinStrings(p.args...))
}

func (p partitioned) withArgs(children []sql.Expression) (partitioned, error) {
	if len(children) != len(p.args) {
		return partitioned{}, sql.ErrInvalidChildrenNumber.New(p, len(children), len(p.args))
	}
	return partitioned{name: p.name, args: children}, nil
}

// checkPrimitive fails with ErrInvalidArgumentType for the first argument
// that has no canonical form.
func checkPrimitive(name string, args []sql.Expression) error {
	for i, a := range args {
		if !sql.IsPrimitive(a.Type()) {
			return sql.ErrInvalidArgumentType.New(name, i, a.Type())
		}
	}
	return nil
}

// orderingChanged compares a tuple made of a partition key followed by the
// ordering columns with the previous one. A nil prev starts a partition.
func orderingChanged(prev, cur []sql.Value) (newPartition, newValue bool) {
	if prev == nil {
		return true, false
	}
	idx, differ := sql.FirstDifference(prev, cur)
	if !differ {
		return false, false
	}
	if idx == 0 {
		return true, false
	}
	return false, true
}
