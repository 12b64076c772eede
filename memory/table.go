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

package memory

import (
	"fmt"
	"io"
	"sync"

	"github.com/dolthub/go-stream-window/sql"
)

// Table is an in-memory table. Rows are returned in insertion order.
type Table struct {
	name   string
	schema sql.Schema

	mu   sync.RWMutex
	rows []sql.Row
}

var _ sql.Table = (*Table)(nil)

// NewTable creates a new Table with the given name and schema.
func NewTable(name string, schema sql.Schema) *Table {
	return &Table{
		name:   name,
		schema: schema,
	}
}

// Name implements the sql.Table interface.
func (t *Table) Name() string {
	return t.name
}

// Schema implements the sql.Table interface.
func (t *Table) Schema() sql.Schema {
	return t.schema
}

func (t *Table) String() string {
	return fmt.Sprintf("Table(%s)", t.name)
}

// Insert adds a row at the end of the table. Values are converted to the
// column types.
func (t *Table) Insert(ctx *sql.Context, row sql.Row) error {
	if err := t.schema.CheckRow(row); err != nil {
		return err
	}

	converted := make(sql.Row, len(row))
	for i, col := range t.schema {
		v, err := col.Type.Convert(row[i])
		if err != nil {
			return err
		}
		converted[i] = v
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = append(t.rows, converted)
	return nil
}

// Len returns the number of rows in the table.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}

// RowIter implements the sql.Table interface. The iterator sees the rows
// inserted before it was created.
func (t *Table) RowIter(ctx *sql.Context) (sql.RowIter, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return &tableIter{rows: t.rows[:len(t.rows):len(t.rows)]}, nil
}

type tableIter struct {
	rows []sql.Row
	pos  int
}

func (i *tableIter) Next(ctx *sql.Context) (sql.Row, error) {
	if i.pos >= len(i.rows) {
		return nil, io.EOF
	}
	row := i.rows[i.pos].Copy()
	i.pos++
	return row, nil
}

func (i *tableIter) Close(*sql.Context) error {
	i.rows = nil
	return nil
}
