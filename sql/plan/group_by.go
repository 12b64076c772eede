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

	"github.com/cespare/xxhash"
	opentracing "github.com/opentracing/opentracing-go"
	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"

	"github.com/dolthub/go-stream-window/sql"
	"github.com/dolthub/go-stream-window/sql/expression"
	"github.com/dolthub/go-stream-window/sql/expression/function/aggregation"
)

// GroupBy groups the rows by some expressions and outputs one row per group,
// in the order groups are first seen. Selected expressions that are not
// aggregations take the first non-null value of their group.
//
// With a Parallelism greater than one, rows are dealt round-robin to that many
// workers that compute partial results, which are merged in worker order
// afterwards.
type GroupBy struct {
	UnaryNode
	SelectedExprs []sql.Expression
	GroupByExprs  []sql.Expression
	Parallelism   int
}

var _ sql.Node = (*GroupBy)(nil)

// NewGroupBy creates a new GroupBy node that runs in a single worker.
func NewGroupBy(selectedExprs, groupByExprs []sql.Expression, child sql.Node) *GroupBy {
	return &GroupBy{
		UnaryNode:     UnaryNode{Child: child},
		SelectedExprs: selectedExprs,
		GroupByExprs:  groupByExprs,
		Parallelism:   1,
	}
}

// WithParallelism returns a copy of the node using n workers.
func (g *GroupBy) WithParallelism(n int) *GroupBy {
	ng := *g
	ng.Parallelism = n
	return &ng
}

// Schema implements the Node interface.
func (g *GroupBy) Schema() sql.Schema {
	return expressionsToSchema(g.SelectedExprs)
}

// RowIter implements the Node interface.
func (g *GroupBy) RowIter(ctx *sql.Context) (sql.RowIter, error) {
	span, ctx := ctx.Span("plan.GroupBy", opentracing.Tags{
		"groupings":   len(g.GroupByExprs),
		"aggregates":  len(g.SelectedExprs),
		"parallelism": g.Parallelism,
	})

	i, err := g.Child.RowIter(ctx)
	if err != nil {
		span.Finish()
		return nil, err
	}

	logger := ctx.GetLogger().WithFields(logrus.Fields{
		sql.StreamLogField: uuid.Must(uuid.NewV4()).String(),
		sql.NodeLogField:   "GroupBy",
	})

	return sql.NewSpanIter(span, &groupByIter{
		selectedExprs: g.SelectedExprs,
		groupByExprs:  g.GroupByExprs,
		parallelism:   g.Parallelism,
		child:         i,
		logger:        logger,
	}), nil
}

// WithChildren implements the Node interface.
func (g *GroupBy) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(g, len(children), 1)
	}

	ng := *g
	ng.UnaryNode = UnaryNode{Child: children[0]}
	return &ng, nil
}

func (g *GroupBy) String() string {
	var selectedExprs = make([]string, len(g.SelectedExprs))
	for i, e := range g.SelectedExprs {
		selectedExprs[i] = e.String()
	}

	var grouping = make([]string, len(g.GroupByExprs))
	for i, g := range g.GroupByExprs {
		grouping[i] = g.String()
	}

	return fmt.Sprintf(
		"GroupBy(parallelism=%d)\n ├─ SelectedExprs(%s)\n ├─ Grouping(%s)\n └─ %s",
		g.Parallelism,
		strings.Join(selectedExprs, ", "),
		strings.Join(grouping, ", "),
		g.Child,
	)
}

// groups keeps aggregation buffers by grouping key, remembering the order
// keys were first seen in.
type groups struct {
	keys    []uint64
	buffers map[uint64][]sql.AggregationBuffer
}

func newGroups() *groups {
	return &groups{buffers: make(map[uint64][]sql.AggregationBuffer)}
}

func (g *groups) get(key uint64, selectedExprs []sql.Expression) []sql.AggregationBuffer {
	b, ok := g.buffers[key]
	if !ok {
		b = make([]sql.AggregationBuffer, len(selectedExprs))
		for j, a := range selectedExprs {
			b[j] = newAggregationBuffer(a)
		}
		g.buffers[key] = b
		g.keys = append(g.keys, key)
	}
	return b
}

type groupByIter struct {
	selectedExprs []sql.Expression
	groupByExprs  []sql.Expression
	parallelism   int
	child         sql.RowIter
	logger        *logrus.Entry
	result        *groups
	pos           int
}

func (i *groupByIter) Next(ctx *sql.Context) (sql.Row, error) {
	if i.result == nil {
		var err error
		if i.parallelism > 1 {
			i.result, err = i.computeParallel(ctx)
		} else {
			i.result, err = i.compute(ctx)
		}
		if err != nil {
			return nil, err
		}
		i.logger.WithField("groups", len(i.result.keys)).Debug("groups computed")
	}

	if i.pos >= len(i.result.keys) {
		return nil, io.EOF
	}

	buffers := i.result.buffers[i.result.keys[i.pos]]
	i.pos++
	return evalBuffers(ctx, buffers)
}

func (i *groupByIter) compute(ctx *sql.Context) (*groups, error) {
	result := newGroups()
	for {
		row, err := i.child.Next(ctx)
		if err != nil {
			if err == io.EOF {
				return result, nil
			}
			return nil, err
		}

		key, err := groupingKey(ctx, i.groupByExprs, row)
		if err != nil {
			return nil, err
		}

		if err := updateBuffers(ctx, result.get(key, i.selectedExprs), row); err != nil {
			return nil, err
		}
	}
}

type keyedRow struct {
	key uint64
	row sql.Row
}

// computeParallel deals the child rows round-robin to the workers, then
// merges the partial results of every worker in worker order.
func (i *groupByIter) computeParallel(ctx *sql.Context) (*groups, error) {
	eg, subCtx := ctx.NewErrgroup()
	i.logger.WithField(sql.WorkersLogField, i.parallelism).Debug("starting group by workers")

	chans := make([]chan keyedRow, i.parallelism)
	for w := range chans {
		chans[w] = make(chan keyedRow, 64)
	}

	// order is written by the producer only and read after Wait.
	order := newGroups()
	eg.Go(func() (err error) {
		defer recoverWorker("group by", &err)
		defer func() {
			for _, ch := range chans {
				close(ch)
			}
		}()

		for n := 0; ; n++ {
			row, err := i.child.Next(subCtx)
			if err != nil {
				if err == io.EOF {
					return nil
				}
				return err
			}

			key, err := groupingKey(subCtx, i.groupByExprs, row)
			if err != nil {
				return err
			}
			if _, ok := order.buffers[key]; !ok {
				order.buffers[key] = nil
				order.keys = append(order.keys, key)
			}

			select {
			case chans[n%i.parallelism] <- keyedRow{key, row}:
			case <-subCtx.Done():
				return subCtx.Err()
			}
		}
	})

	partials := make([]*groups, i.parallelism)
	for w := range chans {
		w := w
		partials[w] = newGroups()
		eg.Go(func() (err error) {
			defer recoverWorker("group by", &err)
			for {
				select {
				case kr, ok := <-chans[w]:
					if !ok {
						return nil
					}
					buf := partials[w].get(kr.key, i.selectedExprs)
					if err := updateBuffers(subCtx, buf, kr.row); err != nil {
						return err
					}
				case <-subCtx.Done():
					return subCtx.Err()
				}
			}
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	result := newGroups()
	for _, key := range order.keys {
		final := result.get(key, i.selectedExprs)
		for _, p := range partials {
			buf, ok := p.buffers[key]
			if !ok {
				continue
			}
			for j := range final {
				if err := final[j].Merge(ctx, buf[j].Partial()); err != nil {
					return nil, err
				}
			}
		}
	}
	return result, nil
}

func (i *groupByIter) Close(ctx *sql.Context) error {
	i.result = nil
	return i.child.Close(ctx)
}

// groupingKey hashes the canonical values of the grouping expressions.
func groupingKey(
	ctx *sql.Context,
	exprs []sql.Expression,
	row sql.Row,
) (uint64, error) {
	values, err := expression.EvalNormalized(ctx, exprs, row)
	if err != nil {
		return 0, err
	}

	hash := xxhash.New()
	for _, v := range values {
		_, err = hash.Write(([]byte)(fmt.Sprintf("%d:%#v,", v.Family(), v.Interface())))
		if err != nil {
			return 0, err
		}
	}

	return hash.Sum64(), nil
}

func newAggregationBuffer(expr sql.Expression) sql.AggregationBuffer {
	switch n := expr.(type) {
	case sql.Aggregation:
		return n.NewBuffer()
	default:
		return aggregation.NewFirst(expr).NewBuffer()
	}
}

func updateBuffers(
	ctx *sql.Context,
	buffers []sql.AggregationBuffer,
	row sql.Row,
) error {
	for _, b := range buffers {
		if err := b.Update(ctx, row); err != nil {
			return err
		}
	}

	return nil
}

func evalBuffers(
	ctx *sql.Context,
	buffers []sql.AggregationBuffer,
) (sql.Row, error) {
	var row = make(sql.Row, len(buffers))

	var err error
	for i, b := range buffers {
		row[i], err = b.Eval(ctx)
		if err != nil {
			return nil, err
		}
	}

	return row, nil
}
