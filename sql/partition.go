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

// IsNewPartition reports whether cur starts a new partition after prev. A
// missing previous key starts a partition, and so does a null on either side:
// null keys never equal anything, not even another null.
func IsNewPartition(prev *Value, cur Value) bool {
	if prev == nil {
		return true
	}
	cmp, err := Compare(*prev, cur)
	return err != nil || cmp != 0
}

// FirstDifference returns the first position at which prev and cur differ.
// Tuples of different length differ at the end of the shorter one. A null
// on either side of a position is a difference, so index 0 can carry a
// partition key.
func FirstDifference(prev, cur []Value) (int, bool) {
	n := len(prev)
	if len(cur) < n {
		n = len(cur)
	}
	for i := 0; i < n; i++ {
		cmp, err := Compare(prev[i], cur[i])
		if err != nil || cmp != 0 {
			return i, true
		}
	}
	if len(prev) != len(cur) {
		return n, true
	}
	return -1, false
}

// PartitionTracker remembers the partition key of the last row seen by a
// stream and detects partition boundaries.
type PartitionTracker struct {
	prev *Value
}

// Next records cur as the latest key and reports whether it starts a new
// partition.
func (t *PartitionTracker) Next(cur Value) bool {
	isNew := IsNewPartition(t.prev, cur)
	t.prev = &cur
	return isNew
}

// Reset forgets the previous key.
func (t *PartitionTracker) Reset() {
	t.prev = nil
}
