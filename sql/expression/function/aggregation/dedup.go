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
	"github.com/dolthub/go-stream-window/sql/expression"
)

// Kind tells the phase a DEDUP result belongs to.
type Kind byte

const (
	// Empty means no row has been seen.
	Empty Kind = iota
	// Partial is a result that may still be merged with others.
	Partial
	// Final is the result of the last merge.
	Final
)

func (k Kind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Partial:
		return "partial"
	case Final:
		return "final"
	default:
		return fmt.Sprintf("kind(%d)", byte(k))
	}
}

// Result is the state exchanged between the phases of DEDUP. Row is nil
// exactly when Kind is Empty.
type Result struct {
	Kind Kind
	Row  []sql.Value
}

// Merge combines two results. The accumulator keeps its row if it has one;
// otherwise it adopts the incoming row. Which row is "first" therefore depends
// on the order results are merged in.
func Merge(acc, in Result) Result {
	switch {
	case acc.Kind != Empty:
		return Result{Kind: Partial, Row: acc.Row}
	case in.Kind != Empty:
		return Result{Kind: Partial, Row: in.Row}
	default:
		return Result{Kind: Empty}
	}
}

// Dedup returns the first row seen for each group as a struct of all its
// arguments.
type Dedup struct {
	args []sql.Expression
	typ  *sql.StructType
}

var _ sql.FunctionExpression = (*Dedup)(nil)
var _ sql.Aggregation = (*Dedup)(nil)

// NewDedup creates a new Dedup over the given fields.
func NewDedup(args ...sql.Expression) (sql.Expression, error) {
	if len(args) == 0 {
		return nil, sql.ErrInvalidArgumentNumber.New("dedup", "1 or more", 0)
	}
	for i, a := range args {
		if !sql.IsPrimitive(a.Type()) {
			return nil, sql.ErrInvalidArgumentType.New("dedup", i, a.Type())
		}
	}
	return &Dedup{args: args, typ: sql.CreateStruct(expression.Types(args...)...)}, nil
}

// FunctionName implements sql.FunctionExpression
func (d *Dedup) FunctionName() string { return "dedup" }

// Type implements sql.Expression
func (d *Dedup) Type() sql.Type { return d.typ }

// IsNullable implements sql.Expression
func (d *Dedup) IsNullable() bool { return true }

// Children implements sql.Expression
func (d *Dedup) Children() []sql.Expression { return d.args }

// WithChildren implements sql.Expression
func (d *Dedup) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != len(d.args) {
		return nil, sql.ErrInvalidChildrenNumber.New(d, len(children), len(d.args))
	}
	return NewDedup(children...)
}

// Eval implements sql.Expression
func (d *Dedup) Eval(*sql.Context, sql.Row) (interface{}, error) {
	return nil, sql.ErrEvalAggregation.New("dedup")
}

func (d *Dedup) String() string {
	return fmt.Sprintf("dedup(%s)", expression.JoinStrings(d.args...))
}

// NewBuffer implements sql.Aggregation
func (d *Dedup) NewBuffer() sql.AggregationBuffer {
	return &DedupBuffer{args: d.args, typ: d.typ}
}

// DedupBuffer keeps the first row it is given, either through Update or
// through Merge.
type DedupBuffer struct {
	args []sql.Expression
	typ  *sql.StructType
	acc  Result
}

var _ sql.AggregationBuffer = (*DedupBuffer)(nil)

// Update implements sql.AggregationBuffer
func (b *DedupBuffer) Update(ctx *sql.Context, row sql.Row) error {
	if b.acc.Kind != Empty {
		return nil
	}
	vals, err := expression.EvalNormalized(ctx, b.args, row)
	if err != nil {
		return err
	}
	b.acc = Result{Kind: Partial, Row: vals}
	return nil
}

// Partial implements sql.AggregationBuffer. The returned value is a Result.
func (b *DedupBuffer) Partial() interface{} {
	return b.acc
}

// Merge implements sql.AggregationBuffer
func (b *DedupBuffer) Merge(ctx *sql.Context, partial interface{}) error {
	r, ok := partial.(Result)
	if !ok {
		return sql.ErrInvalidType.New(fmt.Sprintf("%T", partial))
	}
	b.acc = Merge(b.acc, r)
	return nil
}

// Final returns the result of the buffer once no more rows or partials will
// be added.
func (b *DedupBuffer) Final() Result {
	if b.acc.Kind == Empty {
		return Result{Kind: Empty}
	}
	return Result{Kind: Final, Row: b.acc.Row}
}

// Eval implements sql.AggregationBuffer. It returns nil when the buffer never
// saw a row, or a sql.Row holding one value per field otherwise.
func (b *DedupBuffer) Eval(ctx *sql.Context) (interface{}, error) {
	final := b.Final()
	if final.Kind == Empty {
		return nil, nil
	}
	row := make(sql.Row, len(final.Row))
	for i, v := range final.Row {
		var err error
		row[i], err = sql.ConvertTo(v, b.typ.Fields[i].Type)
		if err != nil {
			return nil, err
		}
	}
	return row, nil
}
