// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package playground

// journal is a ring buffer of log lines. Once full, appending a line drops
// the oldest one.
type journal struct {
	entries  []string
	start    int
	capacity int
	total    uint64 // lines appended since creation, never reset
}

func newJournal(capacity int) *journal {
	return &journal{
		entries:  make([]string, 0, capacity),
		capacity: capacity,
	}
}

func (j *journal) append(lines ...string) {
	j.total += uint64(len(lines))
	for _, line := range lines {
		if len(j.entries) < j.capacity {
			j.entries = append(j.entries, line)
			continue
		}
		j.entries[j.start] = line
		j.start = (j.start + 1) % j.capacity
	}
}

// lines returns the retained lines, oldest first.
func (j *journal) lines() []string {
	res := make([]string, 0, len(j.entries))
	res = append(res, j.entries[j.start:]...)
	return append(res, j.entries[:j.start]...)
}

// since returns the retained lines appended after the given cursor and the
// cursor to use for the next call. Lines dropped or cleared in between are
// skipped.
func (j *journal) since(cursor uint64) ([]string, uint64) {
	if cursor >= j.total {
		return nil, j.total
	}
	lines := j.lines()
	if missing := j.total - cursor; missing < uint64(len(lines)) {
		lines = lines[len(lines)-int(missing):]
	}
	return lines, j.total
}

func (j *journal) len() int {
	return len(j.entries)
}

func (j *journal) clear() {
	j.entries = j.entries[:0]
	j.start = 0
}
