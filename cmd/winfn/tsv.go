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

package main

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/spf13/cast"

	"github.com/dolthub/go-stream-window/memory"
	"github.com/dolthub/go-stream-window/sql"
)

// NullValue is how nulls are written in tab separated files.
const NullValue = `\N`

func newTSVReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.LazyQuotes = true
	reader.ReuseRecord = true
	return reader
}

// readTable loads every record of r into a table with the given schema.
func readTable(ctx *sql.Context, r io.Reader, schema sql.Schema) (*memory.Table, error) {
	table := memory.NewTable("input", schema)
	reader := newTSVReader(r)
	reader.FieldsPerRecord = len(schema)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			return table, nil
		}
		if err != nil {
			return nil, err
		}

		row := make(sql.Row, len(record))
		for i, field := range record {
			if field != NullValue {
				row[i] = field
			}
		}

		if err := table.Insert(ctx, row); err != nil {
			line, _ := reader.FieldPos(0)
			ctx.GetLogger().WithField("line", line).Warn("invalid input row")
			return nil, err
		}
	}
}

// writeRows writes every row of iter to w. Struct values are written as
// {name:value,...}.
func writeRows(ctx *sql.Context, w io.Writer, schema sql.Schema, iter sql.RowIter, header bool) (int, error) {
	writer := csv.NewWriter(w)
	writer.Comma = '\t'

	record := make([]string, len(schema))
	if header {
		for i, c := range schema {
			record[i] = c.Name
		}
		if err := writer.Write(record); err != nil {
			return 0, err
		}
	}

	var n int
	for {
		row, err := iter.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			iter.Close(ctx)
			return n, err
		}

		for i, v := range row {
			record[i], err = format(v, schema[i].Type)
			if err != nil {
				iter.Close(ctx)
				return n, err
			}
		}
		if err := writer.Write(record); err != nil {
			iter.Close(ctx)
			return n, err
		}
		n++
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		iter.Close(ctx)
		return n, err
	}
	return n, iter.Close(ctx)
}

func format(v interface{}, typ sql.Type) (string, error) {
	if v == nil {
		return NullValue, nil
	}

	st, ok := typ.(*sql.StructType)
	if !ok {
		return cast.ToStringE(v)
	}

	row, ok := v.(sql.Row)
	if !ok || len(row) != len(st.Fields) {
		return "", sql.ErrInvalidType.New(st.String())
	}

	var sb strings.Builder
	sb.WriteByte('{')
	for i, f := range st.Fields {
		if i > 0 {
			sb.WriteByte(',')
		}
		s, err := format(row[i], f.Type)
		if err != nil {
			return "", err
		}
		sb.WriteString(f.Name)
		sb.WriteByte(':')
		sb.WriteString(s)
	}
	sb.WriteByte('}')
	return sb.String(), nil
}
