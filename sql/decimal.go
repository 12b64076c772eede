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
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"gopkg.in/src-d/go-errors.v1"
)

// ErrConvertingToDecimal is returned when a value cannot be represented as a decimal.
var ErrConvertingToDecimal = errors.NewKind("value %v is not a valid Decimal")

// Decimal is an exact numeric type. Its values belong to the floating family
// once normalized.
var Decimal Type = decimalType{}

type decimalType struct{}

// Family implements Type interface.
func (decimalType) Family() Family { return FloatFamily }

// Convert implements Type interface. The result is a decimal.Decimal.
func (t decimalType) Convert(v interface{}) (interface{}, error) {
	switch value := v.(type) {
	case nil:
		return nil, nil
	case decimal.Decimal:
		return value, nil
	case decimal.NullDecimal:
		if !value.Valid {
			return nil, nil
		}
		return value.Decimal, nil
	case string:
		d, err := decimal.NewFromString(value)
		if err != nil {
			return nil, ErrConvertingToDecimal.Wrap(err, v)
		}
		return d, nil
	case float32:
		return decimal.NewFromFloat32(value), nil
	case float64:
		return decimal.NewFromFloat(value), nil
	case bool:
		if value {
			return decimal.NewFromInt(1), nil
		}
		return decimal.NewFromInt(0), nil
	}

	i, err := cast.ToInt64E(v)
	if err != nil {
		return nil, ErrConvertingToDecimal.Wrap(err, v)
	}
	return decimal.NewFromInt(i), nil
}

// Zero implements Type interface.
func (decimalType) Zero() interface{} { return decimal.Zero }

// String implements Type interface.
func (decimalType) String() string { return "DECIMAL" }
