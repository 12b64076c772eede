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

package window

import (
	"github.com/dolthub/go-stream-window/sql"
	"github.com/dolthub/go-stream-window/sql/expression"
)

// RankPolicy decides what happens to the rank after a group of ties.
type RankPolicy byte

const (
	// CarryGaps skips ranks after ties, so the next distinct value gets its
	// position within the partition.
	CarryGaps RankPolicy = iota
	// NoGaps gives the next distinct value the next consecutive rank.
	NoGaps
)

func (p RankPolicy) functionName() string {
	if p == NoGaps {
		return "dense_rank"
	}
	return "rank"
}

// Rank ranks the rows of each partition by the ordering columns. The rows
// must arrive sorted by key and ordering columns; tied rows share a rank.
type Rank struct {
	partitioned
	policy RankPolicy
}

var _ sql.FunctionExpression = (*Rank)(nil)
var _ sql.WindowAggregation = (*Rank)(nil)

// NewRank creates a rank with gaps. The first argument is the partition key,
// the rest are ordering columns.
func NewRank(args ...sql.Expression) (sql.Expression, error) {
	return newRank(CarryGaps, args)
}

// NewDenseRank creates a rank without gaps.
func NewDenseRank(args ...sql.Expression) (sql.Expression, error) {
	return newRank(NoGaps, args)
}

func newRank(policy RankPolicy, args []sql.Expression) (sql.Expression, error) {
	name := policy.functionName()
	if len(args) < 2 {
		return nil, sql.ErrInvalidArgumentNumber.New(name, "2 or more", len(args))
	}
	if err := checkPrimitive(name, args); err != nil {
		return nil, err
	}
	return &Rank{partitioned: partitioned{name: name, args: args}, policy: policy}, nil
}

// Policy returns how ties affect the following ranks.
func (r *Rank) Policy() RankPolicy { return r.policy }

// Type implements sql.Expression
func (r *Rank) Type() sql.Type { return sql.Int64 }

// IsNullable implements sql.Expression
func (r *Rank) IsNullable() bool { return false }

// WithChildren implements sql.Expression
func (r *Rank) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	p, err := r.withArgs(children)
	if err != nil {
		return nil, err
	}
	return &Rank{partitioned: p, policy: r.policy}, nil
}

// NewState implements sql.WindowAggregation
func (r *Rank) NewState() sql.WindowState {
	return &rankState{args: r.args, policy: r.policy}
}

type rankState struct {
	args   []sql.Expression
	policy RankPolicy
	prev   []sql.Value
	// raw is the position of the current row within its partition.
	raw  int64
	rank int64
}

func (s *rankState) Update(ctx *sql.Context, row sql.Row) (interface{}, error) {
	cur, err := expression.EvalNormalized(ctx, s.args, row)
	if err != nil {
		return nil, err
	}

	newPartition, newValue := orderingChanged(s.prev, cur)
	s.prev = cur

	if newPartition {
		s.raw = 1
		s.rank = 1
		return s.rank, nil
	}

	s.raw++
	if newValue {
		if s.policy == NoGaps {
			s.rank++
		} else {
			s.rank = s.raw
		}
	}
	return s.rank, nil
}
