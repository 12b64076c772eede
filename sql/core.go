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

import (
	"fmt"

	"gopkg.in/src-d/go-errors.v1"
)

// ErrEvalWindowFunction is returned when a window function is evaluated
// outside of a row stream.
var ErrEvalWindowFunction = errors.NewKind("%s can only be evaluated over a row stream")

// ErrEvalAggregation is returned when an aggregation is evaluated as a
// regular expression instead of through its buffer.
var ErrEvalAggregation = errors.NewKind("%s can only be evaluated by a grouping node")

// Nameable is something that has a name.
type Nameable interface {
	// Name returns the name.
	Name() string
}

// Expression is a combination of one or more SQL expressions.
type Expression interface {
	fmt.Stringer
	// Type returns the expression type.
	Type() Type
	// IsNullable returns whether the expression can be null.
	IsNullable() bool
	// Eval evaluates the given row and returns a result.
	Eval(ctx *Context, row Row) (interface{}, error)
	// Children returns the children expressions of this expression.
	Children() []Expression
	// WithChildren returns a copy of the expression with children replaced.
	// It will return an error if the number of children is different than
	// the current number of children. They must be given in the same order
	// as they are returned by Children.
	WithChildren(children ...Expression) (Expression, error)
}

// FunctionExpression is an Expression that represents a function.
type FunctionExpression interface {
	Expression
	FunctionName() string
}

// WindowAggregation is a function evaluated over a stream of rows grouped by
// a partition key. The expression itself only holds configuration resolved at
// build time; all per-stream state lives in the WindowState it creates.
type WindowAggregation interface {
	FunctionExpression
	// NewState returns fresh state for one physical row stream. States are
	// not safe for concurrent use and must not be shared between streams.
	NewState() WindowState
}

// WindowState is the running state of a WindowAggregation over one stream.
type WindowState interface {
	// Update consumes the next row of the stream and returns the function
	// value for that row.
	Update(ctx *Context, row Row) (interface{}, error)
}

// Aggregation is a grouping aggregate computed in two phases: partial
// buffers that are later merged, and a final evaluation.
type Aggregation interface {
	FunctionExpression
	// NewBuffer creates a new, empty aggregation buffer.
	NewBuffer() AggregationBuffer
}

// AggregationBuffer holds the state of one group of an Aggregation.
type AggregationBuffer interface {
	// Update the buffer with the given row.
	Update(ctx *Context, row Row) error
	// Partial returns the partial result accumulated so far, suitable for
	// Merge on another buffer.
	Partial() interface{}
	// Merge a partial result produced by another buffer into this one.
	Merge(ctx *Context, partial interface{}) error
	// Eval returns the final value of the aggregation.
	Eval(ctx *Context) (interface{}, error)
}

// Node is a node in the execution plan tree.
type Node interface {
	fmt.Stringer
	// Schema of the node.
	Schema() Schema
	// Children nodes.
	Children() []Node
	// WithChildren returns a copy of the node with children replaced.
	WithChildren(children ...Node) (Node, error)
	// RowIter produces a row iterator from this node.
	RowIter(ctx *Context) (RowIter, error)
}

// Table represents the backend of a SQL table.
type Table interface {
	Nameable
	fmt.Stringer
	Schema() Schema
	RowIter(ctx *Context) (RowIter, error)
}
