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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/go-stream-window/sql"
)

func TestResolvedTable(t *testing.T) {
	require := require.New(t)

	table := empTable(t)
	require.Equal("Table(emp)", table.String())
	require.Equal(empSchema, table.Schema())
	require.Nil(table.Children())

	rows, err := sql.NodeToRows(sql.NewEmptyContext(), table)
	require.NoError(err)
	require.Equal(empRows, rows)

	_, err = table.WithChildren(table)
	require.True(sql.ErrInvalidChildrenNumber.Is(err))
}
