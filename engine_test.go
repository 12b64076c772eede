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
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/dolthub/go-stream-window/memory"
	"github.com/dolthub/go-stream-window/sql"
	"github.com/dolthub/go-stream-window/sql/expression"
	"github.com/dolthub/go-stream-window/sql/expression/function/aggregation"
	"github.com/dolthub/go-stream-window/sql/plan"
)

var (
	empno  = expression.NewGetField(0, sql.Int32, "empno", false)
	deptno = expression.NewGetField(1, sql.Int32, "deptno", false)
	sal    = expression.NewGetField(2, sql.Float64, "sal", true)
)

func empTable(t *testing.T) *plan.ResolvedTable {
	t.Helper()
	ctx := sql.NewEmptyContext()

	table := memory.NewTable("emp", sql.Schema{
		{Name: "empno", Type: sql.Int32, Source: "emp"},
		{Name: "deptno", Type: sql.Int32, Source: "emp"},
		{Name: "sal", Type: sql.Float64, Source: "emp", Nullable: true},
	})

	// sorted by deptno and empno
	rows := []sql.Row{
		{7782, 10, 2450.0},
		{7839, 10, 5000.0},
		{7934, 10, 1300.0},
		{7369, 20, 800.0},
		{7566, 20, 2975.0},
		{7788, 20, 3000.0},
		{7876, 20, 1100.0},
		{7902, 20, 3000.0},
		{7499, 30, 1600.0},
		{7521, 30, 1250.0},
		{7654, 30, 1250.0},
		{7698, 30, 2850.0},
		{7844, 30, 1500.0},
		{7900, 30, 950.0},
	}
	for _, row := range rows {
		require.NoError(t, table.Insert(ctx, row))
	}
	return plan.NewResolvedTable(table)
}

func TestBuildFunction(t *testing.T) {
	require := require.New(t)
	e := NewDefault()

	lag, err := e.BuildFunction("NEXR_LAG", deptno, sal,
		expression.NewLiteral(int64(2), sql.Int64),
		expression.NewLiteral(int64(0), sql.Int64),
	)
	require.NoError(err)
	require.Equal("lag(deptno, sal, 2, 0)", lag.String())

	_, err = e.BuildFunction("lag", deptno, sal, expression.NewLiteral(int64(0), sql.Int64))
	require.True(sql.ErrInvalidLagOffset.Is(err))

	_, err = e.BuildFunction("ntile", deptno)
	require.True(sql.ErrFunctionNotFound.Is(err))
}

func TestQueryWindow(t *testing.T) {
	for _, p := range []int{0, 1, 3} {
		e := New(&Config{Parallelism: p})
		require := require.New(t)

		sum, err := e.BuildFunction("sum", deptno, sal)
		require.NoError(err)
		lag, err := e.BuildFunction("lag", deptno, sal,
			expression.NewLiteral(int64(2), sql.Int64),
			expression.NewLiteral(int64(0), sql.Int64),
		)
		require.NoError(err)

		node := e.Window(deptno, []sql.Expression{empno, deptno, sum, lag}, empTable(t))
		if p > 1 {
			require.IsType(&plan.Exchange{}, node)
		} else {
			require.IsType(&plan.Window{}, node)
		}

		ctx := sql.NewEmptyContext()
		schema, iter, err := e.Query(ctx, node)
		require.NoError(err)
		require.Len(schema, 4)
		require.Equal(sql.Float64, schema[2].Type)

		rows, err := sql.RowIterToRows(ctx, iter)
		require.NoError(err)

		sums := make(map[int32][]interface{})
		lags := make(map[int32][]interface{})
		for _, row := range rows {
			d := row[1].(int32)
			sums[d] = append(sums[d], row[2])
			lags[d] = append(lags[d], row[3])
		}

		require.Equal(map[int32][]interface{}{
			10: {2450.0, 7450.0, 8750.0},
			20: {800.0, 3775.0, 6775.0, 7875.0, 10875.0},
			30: {1600.0, 2850.0, 4100.0, 6950.0, 8450.0, 9400.0},
		}, sums)
		require.Equal(map[int32][]interface{}{
			10: {0.0, 0.0, 2450.0},
			20: {0.0, 0.0, 800.0, 2975.0, 3000.0},
			30: {0.0, 0.0, 1600.0, 1250.0, 1250.0, 2850.0},
		}, lags)
	}
}

func TestQueryGroupBy(t *testing.T) {
	require := require.New(t)
	e := New(&Config{Parallelism: 2})

	dedup, err := e.BuildFunction("dedup", empno, sal)
	require.NoError(err)

	node := e.GroupBy([]sql.Expression{deptno, dedup}, []sql.Expression{deptno}, empTable(t))
	require.Equal(2, node.(*plan.GroupBy).Parallelism)
	_, ok := dedup.(*aggregation.Dedup)
	require.True(ok)

	ctx := sql.NewEmptyContext()
	_, iter, err := e.Query(ctx, node)
	require.NoError(err)

	rows, err := sql.RowIterToRows(ctx, iter)
	require.NoError(err)
	require.Equal([]sql.Row{
		{int32(10), sql.NewRow(int32(7782), 2450.0)},
		// rows are dealt round-robin to the workers and the first worker
		// sees 7566 before the second one sees 7369
		{int32(20), sql.NewRow(int32(7566), 2975.0)},
		{int32(30), sql.NewRow(int32(7499), 1600.0)},
	}, rows)
}

func TestConfigureLogger(t *testing.T) {
	require := require.New(t)
	defer logrus.SetLevel(logrus.GetLevel())

	require.NoError(ConfigureLogger("debug", false))
	require.Equal(logrus.DebugLevel, logrus.GetLevel())

	require.Error(ConfigureLogger("loud", false))
}
