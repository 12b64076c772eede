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
)

// Type represents a declared field type.
type Type interface {
	// Family returns the canonical family values of this type normalize to.
	Family() Family
	// Convert a value of a compatible type to the most accurate go type for
	// this declared type.
	Convert(interface{}) (interface{}, error)
	// Zero returns the golang zero value for this type.
	Zero() interface{}
	// String returns the SQL name of the type.
	String() string
}

// IsInteger checks if t is a type of the integer family.
func IsInteger(t Type) bool {
	return t != nil && t.Family() == IntegerFamily
}

// IsFloat checks if t is a type of the floating family, decimals included.
func IsFloat(t Type) bool {
	return t != nil && t.Family() == FloatFamily
}

// IsText checks if t is a text type.
func IsText(t Type) bool {
	return t != nil && t.Family() == TextFamily
}

// IsBoolean checks if t is a boolean type.
func IsBoolean(t Type) bool {
	return t != nil && t.Family() == BooleanFamily
}

// IsPrimitive checks if t normalizes to a canonical value.
func IsPrimitive(t Type) bool {
	if t == nil {
		return false
	}
	switch t.Family() {
	case IntegerFamily, FloatFamily, TextFamily, BooleanFamily:
		return true
	default:
		return false
	}
}

// TypeFromString returns the declared type named by s, as used in job files.
// Names are case insensitive.
func TypeFromString(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tinyint", "int8":
		return Int8, nil
	case "tinyint unsigned", "uint8":
		return Uint8, nil
	case "smallint", "int16":
		return Int16, nil
	case "smallint unsigned", "uint16":
		return Uint16, nil
	case "mediumint", "int24":
		return Int24, nil
	case "mediumint unsigned", "uint24":
		return Uint24, nil
	case "int", "integer", "int32":
		return Int32, nil
	case "int unsigned", "uint32":
		return Uint32, nil
	case "bigint", "long", "int64":
		return Int64, nil
	case "bigint unsigned", "uint64":
		return Uint64, nil
	case "float", "float32":
		return Float32, nil
	case "double", "float64":
		return Float64, nil
	case "decimal", "numeric":
		return Decimal, nil
	case "text", "string", "varchar":
		return Text, nil
	case "boolean", "bool":
		return Boolean, nil
	}
	return nil, ErrInvalidType.New(s)
}
