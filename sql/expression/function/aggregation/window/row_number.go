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
	"github.com/dolthub/go-stream-window/sql"
	"github.com/dolthub/go-stream-window/sql/expression"
)

// RowNumber numbers the rows of each partition starting at 1.
type RowNumber struct {
	partitioned
}

var _ sql.FunctionExpression = (*RowNumber)(nil)
var _ sql.WindowAggregation = (*RowNumber)(nil)

// NewRowNumber creates a row_number over the given partition key.
func NewRowNumber(key sql.Expression) (sql.Expression, error) {
	args := []sql.Expression{key}
	if err := checkPrimitive("row_number", args); err != nil {
		return nil, err
	}
	return &RowNumber{partitioned{name: "row_number", args: args}}, nil
}

// Type implements sql.Expression
func (r *RowNumber) Type() sql.Type { return sql.Int64 }

// IsNullable implements sql.Expression
func (r *RowNumber) IsNullable() bool { return false }

// WithChildren implements sql.Expression
func (r *RowNumber) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	p, err := r.withArgs(children)
	if err != nil {
		return nil, err
	}
	return &RowNumber{p}, nil
}

// NewState implements sql.WindowAggregation
func (r *RowNumber) NewState() sql.WindowState {
	return &rowNumberState{key: r.key()}
}

type rowNumberState struct {
	key     sql.Expression
	tracker sql.PartitionTracker
	counter int64
}

func (s *rowNumberState) Update(ctx *sql.Context, row sql.Row) (interface{}, error) {
	k, err := expression.EvalNormalizedOne(ctx, s.key, row)
	if err != nil {
		return nil, err
	}
	if s.tracker.Next(k) {
		s.counter = 1
	} else {
		s.counter++
	}
	return s.counter, nil
}
