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

package plan

import (
	"io"

	"github.com/dolthub/go-stream-window/sql"
)

// ChannelRowSource is a leaf node whose rows are read from a channel. The
// channel is drained by the first iterator built from the node, so a
// ChannelRowSource is meant to be iterated once.
type ChannelRowSource struct {
	schema     sql.Schema
	rowChannel <-chan sql.Row
}

// NewChannelRowSource returns a node reading rows with the given schema from
// rowChannel until it is closed.
func NewChannelRowSource(schema sql.Schema, rowChannel <-chan sql.Row) *ChannelRowSource {
	return &ChannelRowSource{schema: schema, rowChannel: rowChannel}
}

var _ sql.Node = (*ChannelRowSource)(nil)

func (c *ChannelRowSource) String() string {
	return "ChannelRowSource()"
}

// Schema implements the Node interface.
func (c *ChannelRowSource) Schema() sql.Schema {
	return c.schema
}

// Children implements the Node interface.
func (c *ChannelRowSource) Children() []sql.Node {
	return nil
}

// RowIter implements the Node interface.
func (c *ChannelRowSource) RowIter(ctx *sql.Context) (sql.RowIter, error) {
	return &channelRowIter{rowChannel: c.rowChannel}, nil
}

// WithChildren implements the Node interface.
func (c *ChannelRowSource) WithChildren(children ...sql.Node) (sql.Node, error) {
	return NillaryWithChildren(c, children...)
}

type channelRowIter struct {
	rowChannel <-chan sql.Row
}

var _ sql.RowIter = (*channelRowIter)(nil)

func (c *channelRowIter) Next(ctx *sql.Context) (sql.Row, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r, ok := <-c.rowChannel:
		if !ok {
			return nil, io.EOF
		}
		return r, nil
	}
}

func (c *channelRowIter) Close(*sql.Context) error {
	return nil
}
