// This file is part of Gomars.
//
// Gomars is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gomars is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gomars.  If not, see <https://www.gnu.org/licenses/>.

package blocks

import (
	"sync"

	"github.com/jetsetilly/gomars/hardware/memory/memorymap"
)

// Text is a sparse table of statement blocks. The zero value of T is used to
// indicate that no statement is present.
type Text[T comparable] struct {
	crit   sync.Mutex
	blocks []*[memorymap.TextBlockLengthWords]T
}

// NewText is the preferred method of initialisation for the Text type.
func NewText[T comparable](tableLength int) *Text[T] {
	return &Text[T]{
		blocks: make([]*[memorymap.TextBlockLengthWords]T, tableLength),
	}
}

// Capacity returns the number of bytes the table can hold.
func (t *Text[T]) Capacity() uint32 {
	return uint32(len(t.blocks) * memorymap.TextBlockLengthWords * memorymap.WordLengthBytes)
}

func (t *Text[T]) locate(index uint32) (int, int, bool) {
	b := int(index / memorymap.TextBlockLengthWords)
	if b >= len(t.blocks) {
		return 0, 0, false
	}
	return b, int(index % memorymap.TextBlockLengthWords), true
}

// Store places the statement at the word index, allocating the block as
// required. Returns the previous statement.
func (t *Text[T]) Store(index uint32, stmt T) (T, bool) {
	t.crit.Lock()
	defer t.crit.Unlock()

	var old T
	b, o, ok := t.locate(index)
	if !ok {
		return old, false
	}
	if t.blocks[b] == nil {
		t.blocks[b] = &[memorymap.TextBlockLengthWords]T{}
	}
	old = t.blocks[b][o]
	t.blocks[b][o] = stmt
	return old, true
}

// Fetch returns the statement at the word index. The zero value of T is
// returned if there is nothing there.
func (t *Text[T]) Fetch(index uint32) (T, bool) {
	t.crit.Lock()
	defer t.crit.Unlock()

	var stmt T
	b, o, ok := t.locate(index)
	if !ok {
		return stmt, false
	}
	if t.blocks[b] == nil {
		return stmt, true
	}
	return t.blocks[b][o], true
}

// Update replaces the statement at each word index with the result of f,
// which is called with the statement currently there. The table is locked
// for the whole update so no other access sees it partly done. Nothing is
// changed if any index is outside the table.
func (t *Text[T]) Update(indexes []uint32, f func(n int, stmt T) T) bool {
	t.crit.Lock()
	defer t.crit.Unlock()

	for _, idx := range indexes {
		if _, _, ok := t.locate(idx); !ok {
			return false
		}
	}

	for n, idx := range indexes {
		b, o, _ := t.locate(idx)
		if t.blocks[b] == nil {
			t.blocks[b] = &[memorymap.TextBlockLengthWords]T{}
		}
		t.blocks[b][o] = f(n, t.blocks[b][o])
	}

	return true
}

// Inspect calls f with the statement at each word index while the table is
// locked. f is not called at all if any index is outside the table.
func (t *Text[T]) Inspect(indexes []uint32, f func(n int, stmt T)) bool {
	t.crit.Lock()
	defer t.crit.Unlock()

	for _, idx := range indexes {
		if _, _, ok := t.locate(idx); !ok {
			return false
		}
	}

	var zero T
	for n, idx := range indexes {
		b, o, _ := t.locate(idx)
		if t.blocks[b] == nil {
			f(n, zero)
			continue
		}
		f(n, t.blocks[b][o])
	}

	return true
}

// AllocatedBlocks returns the number of allocated blocks.
func (t *Text[T]) AllocatedBlocks() int {
	t.crit.Lock()
	defer t.crit.Unlock()
	var n int
	for _, b := range t.blocks {
		if b != nil {
			n++
		}
	}
	return n
}

// Layout returns a summary of every allocated block.
func (t *Text[T]) Layout() []BlockInfo {
	t.crit.Lock()
	defer t.crit.Unlock()

	var zero T
	var l []BlockInfo
	for i, b := range t.blocks {
		if b == nil {
			continue
		}
		info := BlockInfo{Index: i}
		for _, s := range b {
			if s != zero {
				info.Used++
			}
		}
		l = append(l, info)
	}
	return l
}

// Clear forgets every block.
func (t *Text[T]) Clear() {
	t.crit.Lock()
	defer t.crit.Unlock()
	clear(t.blocks)
}
