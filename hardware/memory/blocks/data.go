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

type block [memorymap.BlockLengthWords]uint32

// Data is a sparse table of word blocks.
type Data struct {
	crit   sync.Mutex
	blocks []*block
}

// NewData is the preferred method of initialisation for the Data type.
func NewData(tableLength int) *Data {
	return &Data{
		blocks: make([]*block, tableLength),
	}
}

// Capacity returns the number of bytes the table can hold.
func (d *Data) Capacity() uint32 {
	return uint32(len(d.blocks) * memorymap.BlockLengthWords * memorymap.WordLengthBytes)
}

// locate splits a word index into a block and an offset within the block.
// ok is false if the index is outside the table.
func (d *Data) locate(index uint32) (int, int, bool) {
	b := int(index / memorymap.BlockLengthWords)
	if b >= len(d.blocks) {
		return 0, 0, false
	}
	return b, int(index % memorymap.BlockLengthWords), true
}

// StoreWord stores a word at the word index, allocating the block as
// required. Returns the previous value.
func (d *Data) StoreWord(index uint32, value uint32) (uint32, bool) {
	d.crit.Lock()
	defer d.crit.Unlock()

	b, o, ok := d.locate(index)
	if !ok {
		return 0, false
	}
	if d.blocks[b] == nil {
		d.blocks[b] = &block{}
	}
	old := d.blocks[b][o]
	d.blocks[b][o] = value
	return old, true
}

// FetchWord returns the word at the word index. Unallocated words are zero.
func (d *Data) FetchWord(index uint32) (uint32, bool) {
	v, _, ok := d.FetchWordOrAbsent(index)
	return v, ok
}

// FetchWordOrAbsent is like FetchWord but also indicates whether the block
// containing the word has been allocated.
func (d *Data) FetchWordOrAbsent(index uint32) (uint32, bool, bool) {
	d.crit.Lock()
	defer d.crit.Unlock()

	b, o, ok := d.locate(index)
	if !ok {
		return 0, false, false
	}
	if d.blocks[b] == nil {
		return 0, false, true
	}
	return d.blocks[b][o], true, true
}

// StoreBytes stores the low length bytes of value at the byte offset and the
// bytes that follow it. Returns the bytes that were previously stored there
// in the same arrangement.
func (d *Data) StoreBytes(offset uint32, length int, value uint32) (uint32, bool) {
	var pos [memorymap.WordLengthBytes]uint64
	for i := range length {
		pos[i] = uint64(offset) + uint64(i)
	}
	return d.storeBytes(pos[:length], value)
}

// FetchBytes returns length bytes starting at the byte offset.
func (d *Data) FetchBytes(offset uint32, length int) (uint32, bool) {
	var pos [memorymap.WordLengthBytes]uint64
	for i := range length {
		pos[i] = uint64(offset) + uint64(i)
	}
	return d.fetchBytes(pos[:length])
}

// replaceByte copies the byte at position posSrc of src into position posDst
// of dst. Position 0 is the most significant byte.
func replaceByte(src uint32, posSrc int, dst uint32, posDst int) uint32 {
	b := (src >> (24 - (posSrc << 3))) & 0xff
	shift := 24 - (posDst << 3)
	return (dst &^ (0xff << shift)) | (b << shift)
}

// memoryPosition is the byte position within a word of the byte at storage
// offset pos. The lowest addressed byte is the least significant.
func memoryPosition(pos uint64) int {
	return 3 - int(pos%memorymap.WordLengthBytes)
}

// storeBytes stores the bytes of value, least significant first, at the
// storage offsets in pos.
func (d *Data) storeBytes(pos []uint64, value uint32) (uint32, bool) {
	d.crit.Lock()
	defer d.crit.Unlock()

	// check every offset before changing anything
	for _, p := range pos {
		if p > 0xffffffff {
			return 0, false
		}
		if _, _, ok := d.locate(uint32(p / memorymap.WordLengthBytes)); !ok {
			return 0, false
		}
	}

	var old uint32
	for i, p := range pos {
		posValue := 3 - i
		posMem := memoryPosition(p)
		b, o, _ := d.locate(uint32(p / memorymap.WordLengthBytes))
		if d.blocks[b] == nil {
			d.blocks[b] = &block{}
		}
		w := d.blocks[b][o]
		old = replaceByte(w, posMem, old, posValue)
		d.blocks[b][o] = replaceByte(value, posValue, w, posMem)
	}

	return old, true
}

// fetchBytes is the counterpart of storeBytes.
func (d *Data) fetchBytes(pos []uint64) (uint32, bool) {
	d.crit.Lock()
	defer d.crit.Unlock()

	var value uint32
	for i, p := range pos {
		if p > 0xffffffff {
			return 0, false
		}
		b, o, ok := d.locate(uint32(p / memorymap.WordLengthBytes))
		if !ok {
			return 0, false
		}
		if d.blocks[b] == nil {
			continue
		}
		value = replaceByte(d.blocks[b][o], memoryPosition(p), value, 3-i)
	}

	return value, true
}

// Allocated returns true if the block containing the word index has been
// allocated.
func (d *Data) Allocated(index uint32) bool {
	d.crit.Lock()
	defer d.crit.Unlock()
	b, _, ok := d.locate(index)
	return ok && d.blocks[b] != nil
}

// AllocatedBlocks returns the number of allocated blocks.
func (d *Data) AllocatedBlocks() int {
	d.crit.Lock()
	defer d.crit.Unlock()
	var n int
	for _, b := range d.blocks {
		if b != nil {
			n++
		}
	}
	return n
}

// Layout returns a summary of every allocated block.
func (d *Data) Layout() []BlockInfo {
	d.crit.Lock()
	defer d.crit.Unlock()

	var l []BlockInfo
	for i, b := range d.blocks {
		if b == nil {
			continue
		}
		info := BlockInfo{Index: i}
		for _, w := range b {
			if w != 0 {
				info.Used++
			}
		}
		l = append(l, info)
	}
	return l
}

// Clear forgets every block.
func (d *Data) Clear() {
	d.crit.Lock()
	defer d.crit.Unlock()
	clear(d.blocks)
}

// BlockInfo describes an allocated block.
type BlockInfo struct {
	Index int

	// number of words that are not zero (or, for text tables, the number
	// of statements present)
	Used int
}
