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

type dummyExpr struct{ name string }

func (e dummyExpr) String() string { return e.name }

func (dummyExpr) Type() Type { return Int64 }

func (dummyExpr) IsNullable() bool { return false }

func (dummyExpr) Eval(*Context, Row) (interface{}, error) { return nil, nil }

func (dummyExpr) Children() []Expression { return nil }

func (e dummyExpr) WithChildren(...Expression) (Expression, error) { return e, nil }

func TestFunctionRegistry(t *testing.T) {
	require := require.New(t)

	r := NewFunctionRegistry()
	r.MustRegister(
		Function1{Name: "one", Fn: func(e Expression) (Expression, error) { return e, nil }},
		Function2{Name: "two", Fn: func(e1, e2 Expression) (Expression, error) { return e2, nil }},
		FunctionN{Name: "many", Fn: func(args ...Expression) (Expression, error) {
			return dummyExpr{name: "many"}, nil
		}},
	)

	a, b := dummyExpr{name: "a"}, dummyExpr{name: "b"}

	e, err := r.Build("ONE", a)
	require.NoError(err)
	require.Equal(a, e)

	e, err = r.Build("two", a, b)
	require.NoError(err)
	require.Equal(b, e)

	e, err = r.Build("many")
	require.NoError(err)
	require.Equal("many", e.String())

	_, err = r.Build("one", a, b)
	require.True(ErrInvalidArgumentNumber.Is(err))

	_, err = r.Build("two", a)
	require.True(ErrInvalidArgumentNumber.Is(err))

	_, err = r.Build("nope")
	require.True(ErrFunctionNotFound.Is(err))

	err = r.Register(Function1{Name: "One"})
	require.True(ErrFunctionAlreadyRegistered.Is(err))
}
