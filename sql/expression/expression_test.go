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


package expression

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/go-stream-window/sql"
)

func TestGetField(t *testing.T) {
	require := require.New(t)

	f := NewGetFieldWithTable(1, sql.Float64, "emp", "sal", true)
	require.Equal("emp.sal", f.String())
	require.Equal("sal", f.Name())
	require.Equal("emp", f.Table())
	require.True(f.IsNullable())

	v, err := f.Eval(sql.NewEmptyContext(), sql.NewRow(7369, 800.0))
	require.NoError(err)
	require.Equal(800.0, v)

	_, err = f.Eval(sql.NewEmptyContext(), sql.NewRow(7369))
	require.True(ErrIndexOutOfBounds.Is(err))

	moved := f.WithIndex(0).(*GetField)
	require.Equal(0, moved.Index())
	require.Equal(1, f.Index())

	_, err = f.WithChildren(f)
	require.True(sql.ErrInvalidChildrenNumber.Is(err))

	require.Equal("deptno", NewGetField(0, sql.Int32, "deptno", false).String())
}

func TestSchemaToGetFields(t *testing.T) {
	schema := sql.Schema{
		{Name: "empno", Type: sql.Int32, Source: "emp"},
		{Name: "sal", Type: sql.Float64, Source: "emp", Nullable: true},
	}

	require.Equal(t, []sql.Expression{
		NewGetFieldWithTable(0, sql.Int32, "emp", "empno", false),
		NewGetFieldWithTable(1, sql.Float64, "emp", "sal", true),
	}, SchemaToGetFields(schema))
}

func TestLiteral(t *testing.T) {
	require := require.New(t)

	require.Equal(`"a"`, NewLiteral("a", sql.Text).String())
	require.Equal("NULL", NewLiteral(nil, sql.Text).String())
	require.Equal("2", NewLiteral(int64(2), sql.Int64).String())
	require.True(NewLiteral(nil, sql.Int64).IsNullable())

	v, err := NewLiteral(1.5, sql.Float64).Eval(nil, nil)
	require.NoError(err)
	require.Equal(1.5, v)
}

func TestEvalNormalized(t *testing.T) {
	require := require.New(t)
	ctx := sql.NewEmptyContext()

	exprs := []sql.Expression{
		NewGetField(0, sql.Int32, "empno", false),
		NewGetField(1, sql.Float64, "sal", true),
		NewLiteral("x", sql.Text),
	}
	require.Equal("empno, sal, \"x\"", JoinStrings(exprs...))
	require.Equal([]sql.Type{sql.Int32, sql.Float64, sql.Text}, Types(exprs...))

	values, err := EvalNormalized(ctx, exprs, sql.NewRow(int32(7369), nil))
	require.NoError(err)
	require.Equal([]sql.Value{
		sql.NewIntegerValue(7369),
		sql.NullValue(),
		sql.NewTextValue("x"),
	}, values)

	v, err := EvalNormalizedOne(ctx, exprs[1], sql.NewRow(1, "2.5"))
	require.NoError(err)
	require.Equal(sql.NewFloatValue(2.5), v)

	_, err = EvalNormalized(ctx, exprs, sql.NewRow())
	require.True(ErrIndexOutOfBounds.Is(err))
}
