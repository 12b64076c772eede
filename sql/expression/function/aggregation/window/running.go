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

// promotion is the accumulator type of a running aggregate, decided once
// from the declared type of its value argument.
type promotion byte

const (
	promoteInteger promotion = iota
	promoteFloat
)

func (p promotion) Type() sql.Type {
	if p == promoteFloat {
		return sql.Float64
	}
	return sql.Int64
}

func resolvePromotion(name string, value sql.Expression) (promotion, error) {
	t := value.Type()
	switch {
	case sql.IsInteger(t):
		return promoteInteger, nil
	case sql.IsFloat(t), sql.IsText(t):
		return promoteFloat, nil
	default:
		return 0, sql.ErrInvalidArgumentType.New(name, 1, t)
	}
}

// numeric turns a canonical value into the accumulator representation. It
// reports false for nulls and for text that does not parse as a number.
func (p promotion) numeric(v sql.Value) (sql.Value, bool) {
	switch v.Family() {
	case sql.NullFamily:
		return v, false
	case sql.IntegerFamily:
		if p == promoteFloat {
			return sql.NewFloatValue(float64(v.Int64())), true
		}
		return v, true
	case sql.FloatFamily:
		return v, true
	case sql.TextFamily:
		f, err := sql.Normalize(v.Text(), sql.Float64)
		if err != nil {
			return v, false
		}
		return f, true
	default:
		return v, false
	}
}

func newRunning(name string, key, value sql.Expression) (partitioned, promotion, error) {
	args := []sql.Expression{key, value}
	if !sql.IsPrimitive(key.Type()) {
		return partitioned{}, 0, sql.ErrInvalidArgumentType.New(name, 0, key.Type())
	}
	p, err := resolvePromotion(name, value)
	if err != nil {
		return partitioned{}, 0, err
	}
	return partitioned{name: name, args: args}, p, nil
}

// RunningSum is the sum of the values seen so far in the partition.
type RunningSum struct {
	partitioned
	promotion promotion
}

var _ sql.WindowAggregation = (*RunningSum)(nil)

// NewRunningSum creates a running sum of value over the partition key.
func NewRunningSum(key, value sql.Expression) (sql.Expression, error) {
	p, promo, err := newRunning("sum", key, value)
	if err != nil {
		return nil, err
	}
	return &RunningSum{partitioned: p, promotion: promo}, nil
}

// Type implements sql.Expression
func (s *RunningSum) Type() sql.Type { return s.promotion.Type() }

// IsNullable implements sql.Expression
func (s *RunningSum) IsNullable() bool { return false }

// WithChildren implements sql.Expression
func (s *RunningSum) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	p, err := s.withArgs(children)
	if err != nil {
		return nil, err
	}
	return NewRunningSum(p.args[0], p.args[1])
}

// NewState implements sql.WindowAggregation
func (s *RunningSum) NewState() sql.WindowState {
	return &sumState{key: s.args[0], value: s.args[1], promotion: s.promotion}
}

type sumState struct {
	key, value sql.Expression
	promotion  promotion
	tracker    sql.PartitionTracker
	intSum     int64
	floatSum   float64
}

func (s *sumState) Update(ctx *sql.Context, row sql.Row) (interface{}, error) {
	vals, err := expression.EvalNormalized(ctx, []sql.Expression{s.key, s.value}, row)
	if err != nil {
		return nil, err
	}

	if s.tracker.Next(vals[0]) {
		s.intSum, s.floatSum = 0, 0
	}

	if n, ok := s.promotion.numeric(vals[1]); ok {
		if s.promotion == promoteFloat {
			s.floatSum += n.Float64()
		} else {
			s.intSum += n.Int64()
		}
	}

	if s.promotion == promoteFloat {
		return s.floatSum, nil
	}
	return s.intSum, nil
}

// RunningMax is the greatest value seen so far in the partition.
type RunningMax struct {
	partitioned
	promotion promotion
}

var _ sql.WindowAggregation = (*RunningMax)(nil)

// NewRunningMax creates a running maximum of value over the partition key.
func NewRunningMax(key, value sql.Expression) (sql.Expression, error) {
	p, promo, err := newRunning("max", key, value)
	if err != nil {
		return nil, err
	}
	return &RunningMax{partitioned: p, promotion: promo}, nil
}

// Type implements sql.Expression
func (m *RunningMax) Type() sql.Type { return m.promotion.Type() }

// IsNullable implements sql.Expression
func (m *RunningMax) IsNullable() bool { return true }

// WithChildren implements sql.Expression
func (m *RunningMax) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	p, err := m.withArgs(children)
	if err != nil {
		return nil, err
	}
	return NewRunningMax(p.args[0], p.args[1])
}

// NewState implements sql.WindowAggregation
func (m *RunningMax) NewState() sql.WindowState {
	return &maxState{key: m.args[0], value: m.args[1], promotion: m.promotion}
}

type maxState struct {
	key, value sql.Expression
	promotion  promotion
	tracker    sql.PartitionTracker
	max        sql.Value
}

func (s *maxState) Update(ctx *sql.Context, row sql.Row) (interface{}, error) {
	vals, err := expression.EvalNormalized(ctx, []sql.Expression{s.key, s.value}, row)
	if err != nil {
		return nil, err
	}

	if s.tracker.Next(vals[0]) {
		s.max = sql.NullValue()
	}

	if n, ok := s.promotion.numeric(vals[1]); ok {
		if s.max.IsNull() {
			s.max = n
		} else if cmp, err := sql.Compare(n, s.max); err != nil {
			return nil, err
		} else if cmp > 0 {
			s.max = n
		}
	}

	return s.max.Interface(), nil
}

// RunningCount is the number of rows seen so far in the partition.
type RunningCount struct {
	partitioned
}

var _ sql.WindowAggregation = (*RunningCount)(nil)

// NewRunningCount creates a running count over the partition key. The second
// argument takes part in the signature only, its values are not inspected.
func NewRunningCount(key, order sql.Expression) (sql.Expression, error) {
	if !sql.IsPrimitive(key.Type()) {
		return nil, sql.ErrInvalidArgumentType.New("count", 0, key.Type())
	}
	return &RunningCount{partitioned{name: "count", args: []sql.Expression{key, order}}}, nil
}

// Type implements sql.Expression
func (c *RunningCount) Type() sql.Type { return sql.Int64 }

// IsNullable implements sql.Expression
func (c *RunningCount) IsNullable() bool { return false }

// WithChildren implements sql.Expression
func (c *RunningCount) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	p, err := c.withArgs(children)
	if err != nil {
		return nil, err
	}
	return &RunningCount{p}, nil
}

// NewState implements sql.WindowAggregation
func (c *RunningCount) NewState() sql.WindowState {
	return &countState{key: c.args[0]}
}

type countState struct {
	key     sql.Expression
	tracker sql.PartitionTracker
	count   int64
}

func (s *countState) Update(ctx *sql.Context, row sql.Row) (interface{}, error) {
	k, err := expression.EvalNormalizedOne(ctx, s.key, row)
	if err != nil {
		return nil, err
	}
	if s.tracker.Next(k) {
		s.count = 0
	}
	s.count++
	return s.count, nil
}
