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

	"github.com/mitchellh/hashstructure"
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"
	errors "gopkg.in/src-d/go-errors.v1"

	"github.com/dolthub/go-stream-window/sql"
	"github.com/dolthub/go-stream-window/sql/expression"
)

// ErrNoPartitionable is returned when the Exchange tree is not a chain of
// unary nodes ending in a row source.
var ErrNoPartitionable = errors.NewKind("no partitionable source found in exchange tree %s")

// ErrWorkerPanic is returned when a worker goroutine panics.
var ErrWorkerPanic = errors.NewKind("%s worker panicked: %v")

// Exchange is a node that parallelizes the underlying tree. Rows of the
// source at the bottom of the tree are routed by the hash of their partition
// key, so all the rows of a key go to the same worker and keep their relative
// order. Every worker runs its own copy of the tree above the source. There is
// no order between rows of different keys in the output.
type Exchange struct {
	UnaryNode
	Parallelism int
	PartitionBy sql.Expression
}

var _ sql.Node = (*Exchange)(nil)

// NewExchange creates a new Exchange node.
func NewExchange(
	parallelism int,
	partitionBy sql.Expression,
	child sql.Node,
) *Exchange {
	return &Exchange{
		UnaryNode:   UnaryNode{Child: child},
		Parallelism: parallelism,
		PartitionBy: partitionBy,
	}
}

func (e *Exchange) String() string {
	return fmt.Sprintf("Exchange(parallelism=%d, partition=%s)\n └─ %s", e.Parallelism, e.PartitionBy, e.Child)
}

// WithChildren implements the Node interface.
func (e *Exchange) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(e, len(children), 1)
	}

	return NewExchange(e.Parallelism, e.PartitionBy, children[0]), nil
}

// RowIter implements the Node interface.
func (e *Exchange) RowIter(ctx *sql.Context) (sql.RowIter, error) {
	if e.Parallelism <= 1 {
		return e.Child.RowIter(ctx)
	}

	source, err := findSource(e.Child)
	if err != nil {
		return nil, err
	}

	span, ctx := ctx.Span("plan.Exchange", opentracing.Tags{
		"parallelism": e.Parallelism,
	})

	iter := &exchangeRowIter{
		parallelism: e.Parallelism,
		partitionBy: e.PartitionBy,
		tree:        e.Child,
		source:      source,
		logger:      ctx.GetLogger().WithField(sql.NodeLogField, "Exchange"),
	}
	return sql.NewSpanIter(span, iter), nil
}

// findSource returns the leaf at the bottom of a chain of unary nodes.
func findSource(n sql.Node) (sql.Node, error) {
	for {
		switch len(n.Children()) {
		case 0:
			return n, nil
		case 1:
			n = n.Children()[0]
		default:
			return nil, ErrNoPartitionable.New(n)
		}
	}
}

// withSource returns a copy of the chain of unary nodes n with its leaf
// replaced by source.
func withSource(n sql.Node, source sql.Node) (sql.Node, error) {
	children := n.Children()
	switch len(children) {
	case 0:
		return source, nil
	case 1:
		child, err := withSource(children[0], source)
		if err != nil {
			return nil, err
		}
		return n.WithChildren(child)
	default:
		return nil, ErrNoPartitionable.New(n)
	}
}

type exchangeRowIter struct {
	parallelism int
	partitionBy sql.Expression
	tree        sql.Node
	source      sql.Node
	logger      *logrus.Entry

	started bool
	cancel  func()
	rows    chan sql.Row
	// err is written before rows is closed.
	err error
}

func (i *exchangeRowIter) start(ctx *sql.Context) {
	i.started = true
	subCtx, cancel := ctx.NewSubContext()
	i.cancel = cancel
	eg, egCtx := subCtx.NewErrgroup()

	i.rows = make(chan sql.Row, i.parallelism)
	chans := make([]chan sql.Row, i.parallelism)
	for w := range chans {
		chans[w] = make(chan sql.Row, 64)
	}

	i.logger.WithField(sql.WorkersLogField, i.parallelism).Debug("starting exchange workers")

	eg.Go(func() (err error) {
		defer recoverWorker("exchange", &err)
		defer func() {
			for _, ch := range chans {
				close(ch)
			}
		}()
		return i.route(egCtx, chans)
	})

	for w := range chans {
		w := w
		eg.Go(func() (err error) {
			defer recoverWorker("exchange", &err)
			return i.work(egCtx, w, chans[w])
		})
	}

	go func() {
		i.err = eg.Wait()
		close(i.rows)
	}()
}

// route reads every row of the source and sends it to the worker that owns
// its partition key.
func (i *exchangeRowIter) route(ctx *sql.Context, chans []chan sql.Row) error {
	iter, err := i.source.RowIter(ctx)
	if err != nil {
		return err
	}
	defer iter.Close(ctx)

	for {
		row, err := iter.Next(ctx)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		w, err := i.worker(ctx, row)
		if err != nil {
			return err
		}

		select {
		case chans[w] <- row:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// worker returns the index of the worker for row. Null keys never share a
// partition, so they all go to the first worker.
func (i *exchangeRowIter) worker(ctx *sql.Context, row sql.Row) (int, error) {
	key, err := expression.EvalNormalizedOne(ctx, i.partitionBy, row)
	if err != nil {
		return 0, err
	}
	if key.IsNull() {
		return 0, nil
	}

	hash, err := hashstructure.Hash(key.Interface(), nil)
	if err != nil {
		return 0, err
	}
	return int(hash % uint64(i.parallelism)), nil
}

// work runs a private copy of the tree over the rows routed to worker w.
func (i *exchangeRowIter) work(ctx *sql.Context, w int, rows <-chan sql.Row) error {
	tree, err := withSource(i.tree, NewChannelRowSource(i.source.Schema(), rows))
	if err != nil {
		return err
	}

	iter, err := tree.RowIter(ctx)
	if err != nil {
		return err
	}
	defer iter.Close(ctx)

	var n int64
	for {
		row, err := iter.Next(ctx)
		if err != nil {
			if err == io.EOF {
				i.logger.WithFields(logrus.Fields{
					sql.WorkerLogField: w,
					sql.RowsLogField:   n,
				}).Debug("exchange worker finished")
				return nil
			}
			return err
		}

		select {
		case i.rows <- row:
			n++
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// recoverWorker turns a panic of the calling goroutine into an error.
func recoverWorker(node string, err *error) {
	if r := recover(); r != nil {
		*err = ErrWorkerPanic.New(node, r)
	}
}

func (i *exchangeRowIter) Next(ctx *sql.Context) (sql.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !i.started {
		i.start(ctx)
	}

	select {
	case row, ok := <-i.rows:
		if !ok {
			if i.err != nil {
				return nil, i.err
			}
			return nil, io.EOF
		}
		return row, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (i *exchangeRowIter) Close(*sql.Context) error {
	if !i.started {
		return nil
	}

	i.cancel()
	for range i.rows {
	}
	return nil
}
