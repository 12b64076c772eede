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
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dolthub/go-stream-window/memory"
	"github.com/dolthub/go-stream-window/sql"
	"github.com/dolthub/go-stream-window/sql/expression"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var (
	empno  = expression.NewGetFieldWithTable(0, sql.Int64, "emp", "empno", false)
	deptno = expression.NewGetFieldWithTable(1, sql.Int64, "emp", "deptno", true)
	sal    = expression.NewGetFieldWithTable(2, sql.Int64, "emp", "sal", true)
)

var empSchema = sql.Schema{
	{Name: "empno", Type: sql.Int64, Source: "emp"},
	{Name: "deptno", Type: sql.Int64, Source: "emp", Nullable: true},
	{Name: "sal", Type: sql.Int64, Source: "emp", Nullable: true},
}

var empRows = []sql.Row{
	{int64(7369), int64(20), int64(800)},
	{int64(7499), int64(30), int64(1600)},
	{int64(7521), int64(30), int64(1250)},
	{int64(7566), int64(20), int64(2975)},
	{int64(7654), int64(30), int64(1250)},
	{int64(7698), int64(30), int64(2850)},
	{int64(7782), int64(10), int64(2450)},
	{int64(7788), int64(20), int64(3000)},
	{int64(7839), int64(10), int64(5000)},
	{int64(7844), int64(30), int64(1500)},
	{int64(7876), int64(20), int64(1100)},
	{int64(7900), int64(30), int64(950)},
	{int64(7902), int64(20), int64(3000)},
	{int64(7934), int64(10), int64(1300)},
}

// empTable returns the emp rows, sorted by the given columns when any are
// given, as a resolved table.
func empTable(t *testing.T, sortBy ...int) *ResolvedTable {
	t.Helper()

	rows := make([]sql.Row, len(empRows))
	copy(rows, empRows)
	sort.SliceStable(rows, func(i, j int) bool {
		for _, c := range sortBy {
			a, b := rows[i][c].(int64), rows[j][c].(int64)
			if a != b {
				return a < b
			}
		}
		return false
	})

	table := memory.NewTable("emp", empSchema)
	ctx := sql.NewEmptyContext()
	for _, row := range rows {
		require.NoError(t, table.Insert(ctx, row))
	}
	return NewResolvedTable(table)
}
