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
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/go-stream-window/memory"
	"github.com/dolthub/go-stream-window/sql"
	"github.com/dolthub/go-stream-window/sql/expression"
	"github.com/dolthub/go-stream-window/sql/expression/function/aggregation/window"
)

func mustExpr(t *testing.T) func(sql.Expression, error) sql.Expression {
	return func(e sql.Expression, err error) sql.Expression {
		t.Helper()
		require.NoError(t, err)
		return e
	}
}

func TestWindow(t *testing.T) {
	require := require.New(t)
	must := mustExpr(t)

	w := NewWindow(
		[]sql.Expression{
			empno,
			deptno,
			must(window.NewRank(deptno, sal)),
			must(window.NewDenseRank(deptno, sal)),
			must(window.NewRowNumber(deptno)),
		},
		empTable(t, 1, 2, 0),
	)

	require.Equal(sql.Schema{
		{Name: "empno", Type: sql.Int64, Source: "emp"},
		{Name: "deptno", Type: sql.Int64, Source: "emp", Nullable: true},
		{Name: "rank(emp.deptno, emp.sal)", Type: sql.Int64},
		{Name: "dense_rank(emp.deptno, emp.sal)", Type: sql.Int64},
		{Name: "row_number(emp.deptno)", Type: sql.Int64},
	}, w.Schema())

	rows, err := sql.NodeToRows(sql.NewEmptyContext(), w)
	require.NoError(err)

	expected := []sql.Row{
		{int64(7934), int64(10), int64(1), int64(1), int64(1)},
		{int64(7782), int64(10), int64(2), int64(2), int64(2)},
		{int64(7839), int64(10), int64(3), int64(3), int64(3)},
		{int64(7369), int64(20), int64(1), int64(1), int64(1)},
		{int64(7876), int64(20), int64(2), int64(2), int64(2)},
		{int64(7566), int64(20), int64(3), int64(3), int64(3)},
		{int64(7788), int64(20), int64(4), int64(4), int64(4)},
		{int64(7902), int64(20), int64(4), int64(4), int64(5)},
		{int64(7900), int64(30), int64(1), int64(1), int64(1)},
		{int64(7521), int64(30), int64(2), int64(2), int64(2)},
		{int64(7654), int64(30), int64(2), int64(2), int64(3)},
		{int64(7844), int64(30), int64(4), int64(3), int64(4)},
		{int64(7499), int64(30), int64(5), int64(4), int64(5)},
		{int64(7698), int64(30), int64(6), int64(5), int64(6)},
	}
	require.Equal(expected, rows)

	// every iterator owns its own state
	rows, err = sql.NodeToRows(sql.NewEmptyContext(), w)
	require.NoError(err)
	require.Equal(expected, rows)
}

func TestWindowRunningAggregates(t *testing.T) {
	require := require.New(t)
	must := mustExpr(t)

	w := NewWindow(
		[]sql.Expression{
			must(window.NewLag(deptno, sal)),
			must(window.NewRunningSum(deptno, sal)),
			must(window.NewRunningCount(deptno, empno)),
		},
		empTable(t, 1, 0),
	)

	rows, err := sql.NodeToRows(sql.NewEmptyContext(), w)
	require.NoError(err)
	require.Len(rows, len(empRows))

	var lags, sums, counts []interface{}
	for _, row := range rows {
		lags = append(lags, row[0])
		sums = append(sums, row[1])
		counts = append(counts, row[2])
	}

	require.Equal([]interface{}{
		nil, int64(2450), int64(5000),
		nil, int64(800), int64(2975), int64(3000), int64(1100),
		nil, int64(1600), int64(1250), int64(1250), int64(2850), int64(1500),
	}, lags)
	require.Equal([]interface{}{
		int64(2450), int64(7450), int64(8750),
		int64(800), int64(3775), int64(6775), int64(7875), int64(10875),
		int64(1600), int64(2850), int64(4100), int64(6950), int64(8450), int64(9400),
	}, sums)
	require.Equal([]interface{}{
		int64(1), int64(2), int64(3),
		int64(1), int64(2), int64(3), int64(4), int64(5),
		int64(1), int64(2), int64(3), int64(4), int64(5), int64(6),
	}, counts)
}

func TestWindowEmptyInput(t *testing.T) {
	require := require.New(t)
	must := mustExpr(t)

	table := memory.NewTable("emp", empSchema)
	w := NewWindow(
		[]sql.Expression{must(window.NewRowNumber(deptno))},
		NewResolvedTable(table),
	)

	rows, err := sql.NodeToRows(sql.NewEmptyContext(), w)
	require.NoError(err)
	require.Empty(rows)
}

func TestWindowConversionError(t *testing.T) {
	require := require.New(t)
	must := mustExpr(t)
	ctx := sql.NewEmptyContext()

	table := memory.NewTable("t", sql.Schema{
		{Name: "k", Type: sql.Int64},
		{Name: "v", Type: sql.Uint64, Nullable: true},
	})
	require.NoError(table.Insert(ctx, sql.NewRow(int64(1), uint64(1))))
	require.NoError(table.Insert(ctx, sql.NewRow(int64(1), uint64(math.MaxUint64))))
	require.NoError(table.Insert(ctx, sql.NewRow(int64(1), uint64(3))))

	k := expression.NewGetField(0, sql.Int64, "k", false)
	v := expression.NewGetField(1, sql.Uint64, "v", true)
	w := NewWindow([]sql.Expression{must(window.NewRunningSum(k, v))}, NewResolvedTable(table))

	iter, err := w.RowIter(ctx)
	require.NoError(err)

	row, err := iter.Next(ctx)
	require.NoError(err)
	require.Equal(sql.NewRow(int64(1)), row)

	_, err = iter.Next(ctx)
	require.True(sql.ErrConversionOverflow.Is(err))
	require.NoError(iter.Close(ctx))
}

func TestWindowWithChildren(t *testing.T) {
	require := require.New(t)
	must := mustExpr(t)

	w := NewWindow([]sql.Expression{must(window.NewRowNumber(deptno))}, empTable(t))
	_, err := w.WithChildren()
	require.True(sql.ErrInvalidChildrenNumber.Is(err))

	other := empTable(t, 1)
	n, err := w.WithChildren(other)
	require.NoError(err)
	require.Equal(other, n.Children()[0])
	require.Equal(w.SelectExprs, n.(*Window).SelectExprs)
}
