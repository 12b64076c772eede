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

import "gopkg.in/src-d/go-errors.v1"

var (
	// ErrInvalidType is thrown when there is an unexpected type at some part of
	// the execution tree.
	ErrInvalidType = errors.NewKind("invalid type: %s")

	// ErrFunctionNotFound is thrown when a function is not found
	ErrFunctionNotFound = errors.NewKind("function not found: %s")

	// ErrInvalidArgumentNumber is returned when the number of arguments to call a
	// function is different from the function arity.
	ErrInvalidArgumentNumber = errors.NewKind("function '%s' expected %v arguments, %v received")

	// ErrInvalidArgumentType is returned when an argument of a function has a type
	// the function cannot evaluate. The second parameter is the argument index.
	ErrInvalidArgumentType = errors.NewKind("function '%s' received invalid type for argument %d: %s")

	// ErrInvalidLagOffset is returned when the offset given to lag is not a
	// positive integer constant.
	ErrInvalidLagOffset = errors.NewKind("function 'lag' requires a positive integer offset, got %v")

	// ErrIncomparableValues is returned when two canonical values of different
	// families are compared.
	ErrIncomparableValues = errors.NewKind("cannot compare %s value with %s value")

	// ErrNullComparison is returned when a null canonical value takes part in a
	// comparison. Callers decide what null means for them.
	ErrNullComparison = errors.NewKind("null values have no ordering")

	// ErrConversionOverflow is returned when a value does not fit the canonical
	// integer representation.
	ErrConversionOverflow = errors.NewKind("value %v overflows %s")

	// ErrUnexpectedRowLength is thrown when the obtained row has more columns than the schema
	ErrUnexpectedRowLength = errors.NewKind("expected %d values, got %d")

	// ErrInvalidChildrenNumber is returned when the WithChildren method of a
	// node or expression is called with an invalid number of arguments.
	ErrInvalidChildrenNumber = errors.NewKind("%T: invalid children number, got %d, expected %d")

	// ErrFunctionAlreadyRegistered is returned when a function name is
	// registered twice in the same registry.
	ErrFunctionAlreadyRegistered = errors.NewKind("function '%s' is already registered")
)
