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

package aggregation

import (
	"fmt"

	"github.com/dolthub/go-stream-window/sql"
)

// First aggregation returns the first non-null value of the selected column.
// Grouping nodes use it for selected expressions that are not aggregations.
type First struct {
	Child sql.Expression
}

var _ sql.FunctionExpression = (*First)(nil)
var _ sql.Aggregation = (*First)(nil)

// NewFirst returns a new First node.
func NewFirst(e sql.Expression) *First {
	return &First{Child: e}
}

// FunctionName implements sql.FunctionExpression
func (f *First) FunctionName() string {
	return "first"
}

// Type returns the resultant type of the aggregation.
func (f *First) Type() sql.Type {
	return f.Child.Type()
}

// IsNullable implements the sql.Expression interface.
func (f *First) IsNullable() bool {
	return f.Child.IsNullable()
}

// Children implements the sql.Expression interface.
func (f *First) Children() []sql.Expression {
	return []sql.Expression{f.Child}
}

// Eval implements the sql.Expression interface.
func (f *First) Eval(*sql.Context, sql.Row) (interface{}, error) {
	return nil, sql.ErrEvalAggregation.New("first")
}

func (f *First) String() string {
	return fmt.Sprintf("FIRST(%s)", f.Child)
}

// WithChildren implements the sql.Expression interface.
func (f *First) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(f, len(children), 1)
	}
	return NewFirst(children[0]), nil
}

// NewBuffer creates a new buffer to compute the result.
func (f *First) NewBuffer() sql.AggregationBuffer {
	return &firstBuffer{expr: f.Child}
}

// firstValue is the partial result of a firstBuffer.
type firstValue struct {
	ok    bool
	value interface{}
}

type firstBuffer struct {
	expr sql.Expression
	firstValue
}

// Update implements the sql.AggregationBuffer interface.
func (b *firstBuffer) Update(ctx *sql.Context, row sql.Row) error {
	if b.ok {
		return nil
	}

	v, err := b.expr.Eval(ctx, row)
	if err != nil {
		return err
	}

	if v == nil {
		return nil
	}

	b.firstValue = firstValue{ok: true, value: v}
	return nil
}

// Partial implements the sql.AggregationBuffer interface.
func (b *firstBuffer) Partial() interface{} {
	return b.firstValue
}

// Merge implements the sql.AggregationBuffer interface.
func (b *firstBuffer) Merge(ctx *sql.Context, partial interface{}) error {
	p, ok := partial.(firstValue)
	if !ok {
		return sql.ErrInvalidType.New(fmt.Sprintf("%T", partial))
	}
	if !b.ok && p.ok {
		b.firstValue = p
	}
	return nil
}

// Eval implements the sql.AggregationBuffer interface.
func (b *firstBuffer) Eval(*sql.Context) (interface{}, error) {
	return b.value, nil
}
