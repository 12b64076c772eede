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

package sqle

import (
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"

	"github.com/dolthub/go-stream-window/sql"
	"github.com/dolthub/go-stream-window/sql/expression/function"
	"github.com/dolthub/go-stream-window/sql/plan"
)

// Config for the Engine.
type Config struct {
	// Parallelism is the number of workers used by window and grouping
	// plans. Values below 2 run everything in the calling goroutine.
	Parallelism int `yaml:"parallelism"`
}

// Engine builds window and grouping plans over row sources and runs them.
type Engine struct {
	Functions sql.FunctionRegistry
	Config    Config
}

// New creates a new Engine with the given config and the default functions.
func New(cfg *Config) *Engine {
	var c Config
	if cfg != nil {
		c = *cfg
	}

	return &Engine{
		Functions: function.NewRegistry(),
		Config:    c,
	}
}

// NewDefault creates a new default Engine.
func NewDefault() *Engine {
	return New(nil)
}

// BuildFunction resolves the named function and validates its arguments.
func (e *Engine) BuildFunction(name string, args ...sql.Expression) (sql.Expression, error) {
	return e.Functions.Build(name, args...)
}

// Window returns a node evaluating selectExprs over child, whose rows must be
// grouped by partitionBy and sorted within each group. With a configured
// parallelism, partitions are spread among workers.
func (e *Engine) Window(partitionBy sql.Expression, selectExprs []sql.Expression, child sql.Node) sql.Node {
	w := plan.NewWindow(selectExprs, child)
	if e.Config.Parallelism > 1 {
		return plan.NewExchange(e.Config.Parallelism, partitionBy, w)
	}
	return w
}

// GroupBy returns a node grouping the rows of child by groupByExprs.
func (e *Engine) GroupBy(selectedExprs, groupByExprs []sql.Expression, child sql.Node) sql.Node {
	gb := plan.NewGroupBy(selectedExprs, groupByExprs, child)
	if e.Config.Parallelism > 1 {
		return gb.WithParallelism(e.Config.Parallelism)
	}
	return gb
}

// Query starts the execution of node and returns its schema and rows.
func (e *Engine) Query(
	ctx *sql.Context,
	node sql.Node,
) (sql.Schema, sql.RowIter, error) {
	span, ctx := ctx.Span("query", opentracing.Tag{Key: "plan", Value: node.String()})

	ctx.GetLogger().WithFields(logrus.Fields{
		PlanLogField:        node.String(),
		ParallelismLogField: e.Config.Parallelism,
	}).Debug("executing query")

	iter, err := node.RowIter(ctx)
	if err != nil {
		span.Finish()
		return nil, nil, err
	}

	return node.Schema(), sql.NewSpanIter(span, iter), nil
}
