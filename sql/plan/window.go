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

package plan

import (
	"fmt"
	"io"
	"strings"

	opentracing "github.com/opentracing/opentracing-go"
	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"

	"github.com/dolthub/go-stream-window/sql"
)

// Window evaluates its expressions over every row of its child, emitting one
// row per input row in input order. Window functions keep their state for as
// long as the iterator lives, so the child must deliver the rows of each
// partition together and already sorted.
type Window struct {
	SelectExprs []sql.Expression
	UnaryNode
}

var _ sql.Node = (*Window)(nil)

// NewWindow creates a new Window node.
func NewWindow(selectExprs []sql.Expression, node sql.Node) *Window {
	return &Window{
		SelectExprs: selectExprs,
		UnaryNode:   UnaryNode{node},
	}
}

func (w *Window) String() string {
	var exprs = make([]string, len(w.SelectExprs))
	for i, expr := range w.SelectExprs {
		exprs[i] = expr.String()
	}
	return fmt.Sprintf("Window(%s)\n └─ %s", strings.Join(exprs, ", "), w.Child)
}

// Schema implements sql.Node
func (w *Window) Schema() sql.Schema {
	return expressionsToSchema(w.SelectExprs)
}

// WithChildren implements sql.Node
func (w *Window) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(w, len(children), 1)
	}

	return NewWindow(w.SelectExprs, children[0]), nil
}

// RowIter implements sql.Node
func (w *Window) RowIter(ctx *sql.Context) (sql.RowIter, error) {
	span, ctx := ctx.Span("plan.Window", opentracing.Tags{
		"expressions": len(w.SelectExprs),
	})

	childIter, err := w.Child.RowIter(ctx)
	if err != nil {
		span.Finish()
		return nil, err
	}

	states := make([]sql.WindowState, len(w.SelectExprs))
	for i, e := range w.SelectExprs {
		if agg, ok := e.(sql.WindowAggregation); ok {
			states[i] = agg.NewState()
		}
	}

	logger := ctx.GetLogger().WithFields(logrus.Fields{
		sql.StreamLogField: uuid.Must(uuid.NewV4()).String(),
		sql.NodeLogField:   "Window",
	})
	logger.Debug("window stream started")

	return sql.NewSpanIter(span, &windowIter{
		selectExprs: w.SelectExprs,
		states:      states,
		child:       childIter,
		logger:      logger,
	}), nil
}

type windowIter struct {
	selectExprs []sql.Expression
	// states holds the state of every window function, nil for the plain
	// expressions.
	states []sql.WindowState
	child  sql.RowIter
	logger *logrus.Entry
	rows   int64
}

func (i *windowIter) Next(ctx *sql.Context) (sql.Row, error) {
	row, err := i.child.Next(ctx)
	if err != nil {
		if err == io.EOF {
			i.logger.WithField(sql.RowsLogField, i.rows).Debug("window stream finished")
		}
		return nil, err
	}

	out := make(sql.Row, len(i.selectExprs))
	for j, e := range i.selectExprs {
		if s := i.states[j]; s != nil {
			out[j], err = s.Update(ctx, row)
		} else {
			out[j], err = e.Eval(ctx, row)
		}
		if err != nil {
			return nil, err
		}
	}

	i.rows++
	return out, nil
}

func (i *windowIter) Close(ctx *sql.Context) error {
	i.states = nil
	return i.child.Close(ctx)
}
