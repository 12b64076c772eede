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
	"fmt"
	"strings"
)

// StructField is a named member of a StructType.
type StructField struct {
	Name string
	Type Type
}

// StructType is a record of named fields. Struct values are Rows holding one
// value per field.
type StructType struct {
	Fields []StructField
}

var _ Type = (*StructType)(nil)

// CreateStruct returns a struct type with fields named _col0.._colN carrying
// the given types.
func CreateStruct(types ...Type) *StructType {
	fields := make([]StructField, len(types))
	for i, t := range types {
		fields[i] = StructField{Name: fmt.Sprintf("_col%d", i), Type: t}
	}
	return &StructType{Fields: fields}
}

// Family implements Type interface.
func (t *StructType) Family() Family { return StructFamily }

// Convert implements Type interface.
func (t *StructType) Convert(v interface{}) (interface{}, error) {
	var vals []interface{}
	switch value := v.(type) {
	case nil:
		return nil, nil
	case Row:
		vals = value
	case []interface{}:
		vals = value
	default:
		return nil, ErrInvalidType.New(fmt.Sprintf("%T", v))
	}

	if len(vals) != len(t.Fields) {
		return nil, ErrUnexpectedRowLength.New(len(t.Fields), len(vals))
	}

	result := make(Row, len(vals))
	for i, f := range t.Fields {
		var err error
		result[i], err = f.Type.Convert(vals[i])
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Zero implements Type interface.
func (t *StructType) Zero() interface{} {
	row := make(Row, len(t.Fields))
	for i, f := range t.Fields {
		row[i] = f.Type.Zero()
	}
	return row
}

// String implements Type interface.
func (t *StructType) String() string {
	fields := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		fields[i] = fmt.Sprintf("%s:%s", f.Name, f.Type)
	}
	return fmt.Sprintf("STRUCT<%s>", strings.Join(fields, ","))
}
