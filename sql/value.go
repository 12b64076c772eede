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
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// Family is the canonical family a value belongs to, independent of the
// storage type it was declared with.
type Family byte

const (
	// NullFamily holds only the null value.
	NullFamily Family = iota
	// IntegerFamily values are held as int64.
	IntegerFamily
	// FloatFamily values are held as float64.
	FloatFamily
	// TextFamily values are held as string.
	TextFamily
	// BooleanFamily values are held as bool.
	BooleanFamily
	// StructFamily is only used by struct types. There are no canonical struct
	// values.
	StructFamily
)

func (f Family) String() string {
	switch f {
	case NullFamily:
		return "null"
	case IntegerFamily:
		return "integer"
	case FloatFamily:
		return "float"
	case TextFamily:
		return "text"
	case BooleanFamily:
		return "boolean"
	case StructFamily:
		return "struct"
	default:
		return fmt.Sprintf("family(%d)", byte(f))
	}
}

// Value is the canonical representation of a field. Values are immutable and
// safe to keep after the row they came from is reused.
type Value struct {
	family Family
	i      int64
	f      float64
	s      string
	b      bool
}

// NullValue returns the canonical null.
func NullValue() Value { return Value{} }

// NewIntegerValue returns a canonical integer.
func NewIntegerValue(i int64) Value { return Value{family: IntegerFamily, i: i} }

// NewFloatValue returns a canonical float. Negative zero is stored as zero,
// so values that compare equal also hash alike.
func NewFloatValue(f float64) Value {
	if f == 0 {
		f = 0
	}
	return Value{family: FloatFamily, f: f}
}

// NewTextValue returns a canonical text value.
func NewTextValue(s string) Value { return Value{family: TextFamily, s: s} }

// NewBooleanValue returns a canonical boolean.
func NewBooleanValue(b bool) Value { return Value{family: BooleanFamily, b: b} }

// Family returns the family of the value.
func (v Value) Family() Family { return v.family }

// IsNull returns whether the value is null.
func (v Value) IsNull() bool { return v.family == NullFamily }

// Int64 returns the integer held by the value. Only meaningful for IntegerFamily.
func (v Value) Int64() int64 { return v.i }

// Float64 returns the float held by the value. Only meaningful for FloatFamily.
func (v Value) Float64() float64 { return v.f }

// Text returns the string held by the value. Only meaningful for TextFamily.
func (v Value) Text() string { return v.s }

// Bool returns the boolean held by the value. Only meaningful for BooleanFamily.
func (v Value) Bool() bool { return v.b }

// Interface returns the value as a plain go value: int64, float64, string,
// bool or nil.
func (v Value) Interface() interface{} {
	switch v.family {
	case IntegerFamily:
		return v.i
	case FloatFamily:
		return v.f
	case TextFamily:
		return v.s
	case BooleanFamily:
		return v.b
	default:
		return nil
	}
}

func (v Value) String() string {
	switch v.family {
	case IntegerFamily:
		return strconv.FormatInt(v.i, 10)
	case FloatFamily:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case TextFamily:
		return strconv.Quote(v.s)
	case BooleanFamily:
		return strconv.FormatBool(v.b)
	default:
		return "NULL"
	}
}

// Normalize copies v into its canonical form according to the declared type t.
// A nil v is always the null value.
func Normalize(v interface{}, t Type) (Value, error) {
	if v == nil {
		return NullValue(), nil
	}

	switch t.Family() {
	case IntegerFamily:
		if nt, ok := t.(NumberType); ok && nt.IsUnsigned() {
			u, err := cast.ToUint64E(v)
			if err != nil {
				return Value{}, ErrInvalidType.Wrap(err, t.String())
			}
			if u > math.MaxInt64 {
				return Value{}, ErrConversionOverflow.New(u, "BIGINT")
			}
			return NewIntegerValue(int64(u)), nil
		}
		i, err := cast.ToInt64E(v)
		if err != nil {
			return Value{}, ErrInvalidType.Wrap(err, t.String())
		}
		return NewIntegerValue(i), nil
	case FloatFamily:
		switch d := v.(type) {
		case decimal.Decimal:
			return NewFloatValue(d.InexactFloat64()), nil
		case decimal.NullDecimal:
			if !d.Valid {
				return NullValue(), nil
			}
			return NewFloatValue(d.Decimal.InexactFloat64()), nil
		}
		f, err := cast.ToFloat64E(v)
		if err != nil {
			if s, ok := v.(string); ok {
				// decimal tolerates surrounding spaces, cast does not
				d, derr := decimal.NewFromString(strings.TrimSpace(s))
				if derr == nil {
					return NewFloatValue(d.InexactFloat64()), nil
				}
			}
			return Value{}, ErrInvalidType.Wrap(err, t.String())
		}
		return NewFloatValue(f), nil
	case TextFamily:
		s, err := cast.ToStringE(v)
		if err != nil {
			return Value{}, ErrInvalidType.Wrap(err, t.String())
		}
		return NewTextValue(s), nil
	case BooleanFamily:
		b, err := cast.ToBoolE(v)
		if err != nil {
			return Value{}, ErrInvalidType.Wrap(err, t.String())
		}
		return NewBooleanValue(b), nil
	default:
		return Value{}, ErrInvalidType.New(t.String())
	}
}

// NormalizeRow normalizes every value in row using the matching type in types.
func NormalizeRow(row Row, types []Type) ([]Value, error) {
	if len(row) != len(types) {
		return nil, ErrUnexpectedRowLength.New(len(types), len(row))
	}
	values := make([]Value, len(row))
	for i := range row {
		var err error
		values[i], err = Normalize(row[i], types[i])
		if err != nil {
			return nil, err
		}
	}
	return values, nil
}

// Compare returns -1, 0 or 1 when a sorts before, equal to or after b. Both
// values must be non-null and of the same family.
func Compare(a, b Value) (int, error) {
	if a.IsNull() || b.IsNull() {
		return 0, ErrNullComparison.New()
	}
	if a.family != b.family {
		return 0, ErrIncomparableValues.New(a.family, b.family)
	}

	switch a.family {
	case IntegerFamily:
		return compareInt64(a.i, b.i), nil
	case FloatFamily:
		return compareFloat64(a.f, b.f), nil
	case TextFamily:
		return strings.Compare(a.s, b.s), nil
	case BooleanFamily:
		switch {
		case a.b == b.b:
			return 0, nil
		case !a.b:
			return -1, nil
		default:
			return 1, nil
		}
	}
	return 0, ErrInvalidType.New(a.family.String())
}

// Equal reports whether a and b compare as equal. Nulls and values of
// different families are never equal.
func Equal(a, b Value) bool {
	cmp, err := Compare(a, b)
	return err == nil && cmp == 0
}

// ConvertTo converts a canonical value into the go representation of the
// declared type t.
func ConvertTo(v Value, t Type) (interface{}, error) {
	if v.IsNull() {
		return nil, nil
	}
	return t.Convert(v.Interface())
}

func compareInt64(a, b int64) int {
	switch {
	case a == b:
		return 0
	case a < b:
		return -1
	default:
		return 1
	}
}

// compareFloat64 orders NaN before every other float so the order stays total.
func compareFloat64(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return -1
	case bNaN:
		return 1
	case a == b:
		return 0
	case a < b:
		return -1
	default:
		return 1
	}
}
