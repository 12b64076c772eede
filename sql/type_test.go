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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypeFromString(t *testing.T) {
	testCases := []struct {
		name     string
		expected Type
	}{
		{"TINYINT", Int8},
		{"int", Int32},
		{" bigint unsigned ", Uint64},
		{"double", Float64},
		{"Decimal", Decimal},
		{"varchar", Text},
		{"bool", Boolean},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			typ, err := TypeFromString(tt.name)
			require.NoError(t, err)
			require.Equal(t, tt.expected, typ)
		})
	}

	_, err := TypeFromString("blob")
	require.True(t, ErrInvalidType.Is(err))
}

func TestTypeFamilies(t *testing.T) {
	require := require.New(t)

	require.True(IsInteger(Uint24))
	require.True(IsFloat(Float32))
	require.True(IsFloat(Decimal))
	require.True(IsText(Text))
	require.True(IsBoolean(Boolean))
	require.False(IsInteger(nil))

	require.True(IsPrimitive(Int64))
	require.False(IsPrimitive(CreateStruct(Int64)))

	require.True(Uint8.(NumberType).IsUnsigned())
	require.True(Int8.(NumberType).IsSigned())
	require.False(Float64.(NumberType).IsSigned())
}

func TestNumberConvert(t *testing.T) {
	require := require.New(t)

	v, err := Int16.Convert("12")
	require.NoError(err)
	require.Equal(int16(12), v)

	v, err = Float32.Convert(int64(3))
	require.NoError(err)
	require.Equal(float32(3), v)

	v, err = Uint32.Convert(nil)
	require.NoError(err)
	require.Nil(v)

	_, err = Int64.Convert("abc")
	require.Error(err)

	require.Equal(uint64(0), Uint64.Zero())
	require.Equal("MEDIUMINT UNSIGNED", Uint24.String())
}

func TestStructType(t *testing.T) {
	require := require.New(t)

	st := CreateStruct(Int32, Text)
	require.Equal("STRUCT<_col0:INT,_col1:TEXT>", st.String())
	require.Equal(StructFamily, st.Family())
	require.Equal(Row{int32(0), ""}, st.Zero())

	v, err := st.Convert([]interface{}{int64(1), "a"})
	require.NoError(err)
	require.Equal(Row{int32(1), "a"}, v)

	_, err = st.Convert(Row{1})
	require.True(ErrUnexpectedRowLength.Is(err))

	_, err = st.Convert(1)
	require.True(ErrInvalidType.Is(err))
}

func TestSchema(t *testing.T) {
	require := require.New(t)

	schema := Schema{
		{Name: "EmpNo", Type: Int32},
		{Name: "sal", Type: Float64, Nullable: true},
	}

	require.Equal(0, schema.IndexOf("empno"))
	require.Equal(-1, schema.IndexOf("mgr"))
	require.Equal([]Type{Int32, Float64}, schema.Types())

	require.NoError(schema.CheckRow(Row{"7369", nil}))
	require.True(ErrUnexpectedRowLength.Is(schema.CheckRow(Row{1})))
	require.True(ErrUnexpectedType.Is(schema.CheckRow(Row{"x", 1.0})))
}
