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
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/go-stream-window/sql"
	"github.com/dolthub/go-stream-window/sql/expression"
)

func TestLag(t *testing.T) {
	require := require.New(t)

	l, err := NewLag(deptno, sal)
	require.NoError(err)
	require.Equal("lag(deptno, sal)", l.String())
	require.Equal(sal.Type(), l.Type())
	require.Equal(int64(1), l.(*Lag).Offset())

	result := eval(t, l, sortedEmp(asc(1), asc(0)))
	require.Equal([]interface{}{
		nil, int64(2450), int64(5000),
		nil, int64(800), int64(2975), int64(3000), int64(1100),
		nil, int64(1600), int64(1250), int64(1250), int64(2850), int64(1500),
	}, result)
}

func TestLagOffsetAndDefault(t *testing.T) {
	require := require.New(t)

	l, err := NewLag(
		deptno,
		sal,
		expression.NewLiteral(int64(2), sql.Int64),
		expression.NewLiteral(int64(0), sql.Int64),
	)
	require.NoError(err)
	require.Equal(int64(2), l.(*Lag).Offset())

	result := eval(t, l, sortedEmp(asc(1), asc(0)))
	require.Equal(int64s(
		0, 0, 2450,
		0, 0, 800, 2975, 3000,
		0, 0, 1600, 1250, 1250, 2850,
	), result)
}

func TestLagOffsetLongerThanPartitions(t *testing.T) {
	for _, offset := range []int64{1 << 40, math.MaxInt64} {
		l, err := NewLag(
			deptno,
			sal,
			expression.NewLiteral(offset, sql.Int64),
			expression.NewLiteral(int64(0), sql.Int64),
		)
		require.NoError(t, err)
		require.Equal(t, offset, l.(*Lag).Offset())

		result := eval(t, l, sortedEmp(asc(1), asc(0)))
		require.Equal(t, int64s(0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0), result)
	}
}

func TestLagWithChildren(t *testing.T) {
	require := require.New(t)

	l, err := NewLag(deptno, sal, expression.NewLiteral(int64(1), sql.Int64))
	require.NoError(err)

	l2, err := l.WithChildren(deptno, sal, expression.NewLiteral(int64(3), sql.Int64))
	require.NoError(err)
	require.Equal(int64(3), l2.(*Lag).Offset())
	require.Equal(int64(1), l.(*Lag).Offset())

	_, err = l.WithChildren(deptno, sal, expression.NewLiteral(int64(0), sql.Int64))
	require.True(sql.ErrInvalidLagOffset.Is(err))
}

func TestLagDefaultIsEvaluatedPerRow(t *testing.T) {
	require := require.New(t)

	// the default is the current empno
	l, err := NewLag(
		deptno,
		sal,
		expression.NewLiteral(int32(1), sql.Int32),
		empno,
	)
	require.NoError(err)

	result := eval(t, l, sortedEmp(asc(1), asc(0))[:4])
	require.Equal(int64s(7782, 2450, 5000, 7369), result)
}

func TestLagDefaultConvertedToValueType(t *testing.T) {
	require := require.New(t)

	k := expression.NewGetField(0, sql.Int64, "k", false)
	v := expression.NewGetField(1, sql.Float64, "v", true)
	l, err := NewLag(
		k,
		v,
		expression.NewLiteral(int64(1), sql.Int64),
		expression.NewLiteral("7", sql.Text),
	)
	require.NoError(err)

	rows := []sql.Row{
		{int64(1), float64(1.5)},
		{int64(1), nil},
		{int64(1), float64(3)},
	}
	require.Equal([]interface{}{float64(7), float64(1.5), nil}, eval(t, l, rows))
}

func TestLagNullKeys(t *testing.T) {
	require := require.New(t)

	l, err := NewLag(deptno, sal)
	require.NoError(err)

	rows := []sql.Row{
		{int64(1), nil, int64(100)},
		{int64(2), nil, int64(200)},
		{int64(3), nil, int64(300)},
	}
	require.Equal([]interface{}{nil, nil, nil}, eval(t, l, rows))
}

func TestLagArguments(t *testing.T) {
	testCases := []struct {
		name string
		args []sql.Expression
		err  interface{ Is(error) bool }
	}{
		{"too few", []sql.Expression{deptno}, sql.ErrInvalidArgumentNumber},
		{
			"too many",
			[]sql.Expression{deptno, sal, sal, sal, sal},
			sql.ErrInvalidArgumentNumber,
		},
		{
			"zero offset",
			[]sql.Expression{deptno, sal, expression.NewLiteral(int64(0), sql.Int64)},
			sql.ErrInvalidLagOffset,
		},
		{
			"negative offset",
			[]sql.Expression{deptno, sal, expression.NewLiteral(int64(-1), sql.Int64)},
			sql.ErrInvalidLagOffset,
		},
		{
			"float offset",
			[]sql.Expression{deptno, sal, expression.NewLiteral(1.5, sql.Float64)},
			sql.ErrInvalidLagOffset,
		},
		{
			"null offset",
			[]sql.Expression{deptno, sal, expression.NewLiteral(nil, sql.Int64)},
			sql.ErrInvalidLagOffset,
		},
		{
			"column offset",
			[]sql.Expression{deptno, sal, empno},
			sql.ErrInvalidLagOffset,
		},
		{
			"struct value",
			[]sql.Expression{deptno, expression.NewGetField(2, sql.CreateStruct(sql.Int64), "s", false)},
			sql.ErrInvalidArgumentType,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLag(tt.args...)
			require.Error(t, err)
			require.True(t, tt.err.Is(err), "unexpected error: %s", err)
		})
	}
}
