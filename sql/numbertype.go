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

	"github.com/spf13/cast"
)

type numberKind byte

const (
	kindInt8 numberKind = iota
	kindUint8
	kindInt16
	kindUint16
	kindInt24
	kindUint24
	kindInt32
	kindUint32
	kindInt64
	kindUint64
	kindFloat32
	kindFloat64
)

var (
	// Int8 is an integer of 8 bits
	Int8 = MustCreateNumberType(kindInt8)
	// Uint8 is an unsigned integer of 8 bits
	Uint8 = MustCreateNumberType(kindUint8)
	// Int16 is an integer of 16 bits
	Int16 = MustCreateNumberType(kindInt16)
	// Uint16 is an unsigned integer of 16 bits
	Uint16 = MustCreateNumberType(kindUint16)
	// Int24 is an integer of 24 bits.
	Int24 = MustCreateNumberType(kindInt24)
	// Uint24 is an unsigned integer of 24 bits.
	Uint24 = MustCreateNumberType(kindUint24)
	// Int32 is an integer of 32 bits.
	Int32 = MustCreateNumberType(kindInt32)
	// Uint32 is an unsigned integer of 32 bits.
	Uint32 = MustCreateNumberType(kindUint32)
	// Int64 is an integer of 64 bytes.
	Int64 = MustCreateNumberType(kindInt64)
	// Uint64 is an unsigned integer of 64 bits.
	Uint64 = MustCreateNumberType(kindUint64)
	// Float32 is a floating point number of 32 bits.
	Float32 = MustCreateNumberType(kindFloat32)
	// Float64 is a floating point number of 64 bits.
	Float64 = MustCreateNumberType(kindFloat64)
)

// NumberType is a declared integer or floating point type.
type NumberType interface {
	Type
	IsUnsigned() bool
	IsSigned() bool
}

type numberTypeImpl struct {
	kind numberKind
}

// CreateNumberType creates a NumberType.
func CreateNumberType(kind numberKind) (NumberType, error) {
	if kind > kindFloat64 {
		return nil, fmt.Errorf("%v is not a valid number base type", kind)
	}
	return numberTypeImpl{kind: kind}, nil
}

// MustCreateNumberType is the same as CreateNumberType except it panics on errors.
func MustCreateNumberType(kind numberKind) NumberType {
	nt, err := CreateNumberType(kind)
	if err != nil {
		panic(err)
	}
	return nt
}

// Family implements Type interface.
func (t numberTypeImpl) Family() Family {
	if t.kind == kindFloat32 || t.kind == kindFloat64 {
		return FloatFamily
	}
	return IntegerFamily
}

// Convert implements Type interface.
func (t numberTypeImpl) Convert(v interface{}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}

	switch t.kind {
	case kindInt8:
		return cast.ToInt8E(v)
	case kindUint8:
		return cast.ToUint8E(v)
	case kindInt16:
		return cast.ToInt16E(v)
	case kindUint16:
		return cast.ToUint16E(v)
	case kindInt24, kindInt32:
		return cast.ToInt32E(v)
	case kindUint24, kindUint32:
		return cast.ToUint32E(v)
	case kindInt64:
		return cast.ToInt64E(v)
	case kindUint64:
		return cast.ToUint64E(v)
	case kindFloat32:
		return cast.ToFloat32E(v)
	case kindFloat64:
		return cast.ToFloat64E(v)
	}
	return nil, ErrInvalidType.New(t.String())
}

// Zero implements Type interface.
func (t numberTypeImpl) Zero() interface{} {
	switch t.kind {
	case kindInt8:
		return int8(0)
	case kindUint8:
		return uint8(0)
	case kindInt16:
		return int16(0)
	case kindUint16:
		return uint16(0)
	case kindInt24, kindInt32:
		return int32(0)
	case kindUint24, kindUint32:
		return uint32(0)
	case kindInt64:
		return int64(0)
	case kindUint64:
		return uint64(0)
	case kindFloat32:
		return float32(0)
	default:
		return float64(0)
	}
}

// String implements Type interface.
func (t numberTypeImpl) String() string {
	switch t.kind {
	case kindInt8:
		return "TINYINT"
	case kindUint8:
		return "TINYINT UNSIGNED"
	case kindInt16:
		return "SMALLINT"
	case kindUint16:
		return "SMALLINT UNSIGNED"
	case kindInt24:
		return "MEDIUMINT"
	case kindUint24:
		return "MEDIUMINT UNSIGNED"
	case kindInt32:
		return "INT"
	case kindUint32:
		return "INT UNSIGNED"
	case kindInt64:
		return "BIGINT"
	case kindUint64:
		return "BIGINT UNSIGNED"
	case kindFloat32:
		return "FLOAT"
	case kindFloat64:
		return "DOUBLE"
	}
	panic(fmt.Sprintf("%v is not a valid number base type", t.kind))
}

// IsUnsigned implements NumberType interface.
func (t numberTypeImpl) IsUnsigned() bool {
	switch t.kind {
	case kindUint8, kindUint16, kindUint24, kindUint32, kindUint64:
		return true
	}
	return false
}

// IsSigned implements NumberType interface.
func (t numberTypeImpl) IsSigned() bool {
	return !t.IsUnsigned() && t.Family() == IntegerFamily
}
