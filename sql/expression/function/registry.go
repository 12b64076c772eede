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

package function

import (
	"github.com/dolthub/go-stream-window/sql"
	"github.com/dolthub/go-stream-window/sql/expression/function/aggregation"
	"github.com/dolthub/go-stream-window/sql/expression/function/aggregation/window"
)

// LegacyPrefix is prepended to every default function name to register the
// names older jobs use.
const LegacyPrefix = "nexr_"

// Defaults is the list of all the default functions.
var Defaults = []sql.Function{
	sql.Function1{Name: "row_number", Fn: window.NewRowNumber},
	sql.FunctionN{Name: "rank", Fn: window.NewRank},
	sql.FunctionN{Name: "dense_rank", Fn: window.NewDenseRank},
	sql.FunctionN{Name: "lag", Fn: window.NewLag},
	sql.Function2{Name: "sum", Fn: window.NewRunningSum},
	sql.Function2{Name: "max", Fn: window.NewRunningMax},
	sql.Function2{Name: "count", Fn: window.NewRunningCount},
	sql.FunctionN{Name: "dedup", Fn: aggregation.NewDedup},
}

// NewRegistry returns a registry holding the default functions, both under
// their name and under LegacyPrefix followed by their name.
func NewRegistry() sql.FunctionRegistry {
	r := sql.NewFunctionRegistry()
	r.MustRegister(Defaults...)
	for _, fn := range Defaults {
		r.MustRegister(alias{name: LegacyPrefix + fn.FunctionName(), Function: fn})
	}
	return r
}

type alias struct {
	sql.Function
	name string
}

func (a alias) FunctionName() string { return a.name }
