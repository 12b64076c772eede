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

package sql

import (
	"strings"

	"gopkg.in/src-d/go-errors.v1"
)

// ErrUnexpectedType is thrown when a received value does not convert to the
// column type.
var ErrUnexpectedType = errors.NewKind("value at %d has unexpected type: %s")

// Column is the definition of a table column.
type Column struct {
	// Name is the name of the column.
	Name string
	// Type is the data type of the column.
	Type Type
	// Nullable is true if the column can contain NULL values, or false
	// otherwise.
	Nullable bool
	// Source is the name of the table this column came from.
	Source string
}

// Schema is the definition of a table.
type Schema []*Column

// CheckRow checks the row conforms to the schema.
func (s Schema) CheckRow(row Row) error {
	expected := len(s)
	got := len(row)
	if expected != got {
		return ErrUnexpectedRowLength.New(expected, got)
	}

	for idx, col := range s {
		if row[idx] == nil {
			continue
		}
		if _, err := col.Type.Convert(row[idx]); err != nil {
			return ErrUnexpectedType.Wrap(err, idx, col.Type.String())
		}
	}

	return nil
}

// IndexOf returns the index of the given column in the schema or -1 if it's
// not present.
func (s Schema) IndexOf(column string) int {
	column = strings.ToLower(column)
	for i, col := range s {
		if strings.ToLower(col.Name) == column {
			return i
		}
	}
	return -1
}

// Types returns the declared type of every column.
func (s Schema) Types() []Type {
	types := make([]Type, len(s))
	for i, col := range s {
		types[i] = col.Type
	}
	return types
}
