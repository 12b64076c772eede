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

package expression

import (
	"strings"

	"github.com/dolthub/go-stream-window/sql"
)

// Types returns the declared type of every expression.
func Types(exprs ...sql.Expression) []sql.Type {
	types := make([]sql.Type, len(exprs))
	for i, e := range exprs {
		types[i] = e.Type()
	}
	return types
}

// EvalNormalized evaluates every expression against row and returns the
// canonical form of each result.
func EvalNormalized(ctx *sql.Context, exprs []sql.Expression, row sql.Row) ([]sql.Value, error) {
	values := make([]sql.Value, len(exprs))
	for i, e := range exprs {
		v, err := e.Eval(ctx, row)
		if err != nil {
			return nil, err
		}
		values[i], err = sql.Normalize(v, e.Type())
		if err != nil {
			return nil, err
		}
	}
	return values, nil
}

// EvalNormalizedOne evaluates a single expression and normalizes the result.
func EvalNormalizedOne(ctx *sql.Context, e sql.Expression, row sql.Row) (sql.Value, error) {
	v, err := e.Eval(ctx, row)
	if err != nil {
		return sql.Value{}, err
	}
	return sql.Normalize(v, e.Type())
}

// JoinStrings returns the string form of every expression joined by commas.
func JoinStrings(exprs ...sql.Expression) string {
	strs := make([]string, len(exprs))
	for i, e := range exprs {
		strs[i] = e.String()
	}
	return strings.Join(strs, ", ")
}
