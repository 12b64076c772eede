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

// Lag returns the value of a row offset rows before the current one in the
// same partition, or the default when there is no such row.
type Lag struct {
	partitioned
	offset int64
}

var _ sql.FunctionExpression = (*Lag)(nil)
var _ sql.WindowAggregation = (*Lag)(nil)

// NewLag creates a lag. Arguments are the partition key, the value, and
// optionally an offset literal (1 by default) and a default expression (null
// by default).
func NewLag(args ...sql.Expression) (sql.Expression, error) {
	if len(args) < 2 || len(args) > 4 {
		return nil, sql.ErrInvalidArgumentNumber.New("lag", "2, 3 or 4", len(args))
	}
	if err := checkPrimitive("lag", args[:2]); err != nil {
		return nil, err
	}

	offset := int64(1)
	if len(args) > 2 {
		var err error
		offset, err = lagOffset(args[2])
		if err != nil {
			return nil, err
		}
	}

	if len(args) > 3 {
		def := args[3]
		if !sql.IsPrimitive(def.Type()) {
			return nil, sql.ErrInvalidArgumentType.New("lag", 3, def.Type())
		}
	}

	return &Lag{partitioned: partitioned{name: "lag", args: args}, offset: offset}, nil
}

func lagOffset(e sql.Expression) (int64, error) {
	lit, ok := e.(*expression.Literal)
	if !ok || !sql.IsInteger(lit.Type()) || lit.Value() == nil {
		return 0, sql.ErrInvalidLagOffset.New(e)
	}
	v, err := sql.Normalize(lit.Value(), lit.Type())
	if err != nil {
		return 0, sql.ErrInvalidLagOffset.New(e)
	}
	if v.Int64() <= 0 {
		return 0, sql.ErrInvalidLagOffset.New(e)
	}
	return v.Int64(), nil
}

// Offset returns how many rows back the value is taken from.
func (l *Lag) Offset() int64 { return l.offset }

func (l *Lag) value() sql.Expression { return l.args[1] }

func (l *Lag) defaultValue() sql.Expression {
	if len(l.args) > 3 {
		return l.args[3]
	}
	return nil
}

// Type implements sql.Expression
func (l *Lag) Type() sql.Type { return l.value().Type() }

// IsNullable implements sql.Expression
func (l *Lag) IsNullable() bool {
	def := l.defaultValue()
	return def == nil || def.IsNullable() || l.value().IsNullable()
}

// WithChildren implements sql.Expression
func (l *Lag) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	p, err := l.withArgs(children)
	if err != nil {
		return nil, err
	}
	return NewLag(p.args...)
}

// NewState implements sql.WindowAggregation
func (l *Lag) NewState() sql.WindowState {
	return &lagState{
		key:    l.key(),
		value:  l.value(),
		def:    l.defaultValue(),
		offset: l.offset,
	}
}

type lagState struct {
	key     sql.Expression
	value   sql.Expression
	def     sql.Expression
	offset  int64
	tracker sql.PartitionTracker
	// queue holds at most offset+1 values of the current partition, oldest
	// first. It grows with the partition, never with the offset.
	queue []sql.Value
}

func (s *lagState) Update(ctx *sql.Context, row sql.Row) (interface{}, error) {
	k, err := expression.EvalNormalizedOne(ctx, s.key, row)
	if err != nil {
		return nil, err
	}
	v, err := expression.EvalNormalizedOne(ctx, s.value, row)
	if err != nil {
		return nil, err
	}

	if s.tracker.Next(k) {
		s.queue = s.queue[:0]
	}
	s.queue = append(s.queue, v)

	if int64(len(s.queue)) > s.offset {
		front := s.queue[0]
		copy(s.queue, s.queue[1:])
		s.queue = s.queue[:len(s.queue)-1]
		return sql.ConvertTo(front, s.value.Type())
	}

	return s.defaultFor(ctx, row)
}

func (s *lagState) defaultFor(ctx *sql.Context, row sql.Row) (interface{}, error) {
	if s.def == nil {
		return nil, nil
	}
	d, err := expression.EvalNormalizedOne(ctx, s.def, row)
	if err != nil {
		return nil, err
	}
	if d.IsNull() {
		return nil, nil
	}
	return s.value.Type().Convert(d.Interface())
}
