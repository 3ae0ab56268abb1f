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

package blocks_test

import (
	"fmt"
	"testing"

	"github.com/jetsetilly/gomars/hardware/memory/blocks"
	"github.com/jetsetilly/gomars/hardware/memory/memorymap"
	"github.com/jetsetilly/gomars/test"
)

func TestDataWords(t *testing.T) {
	d := blocks.NewData(2)
	test.ExpectEquality(t, d.Capacity(), uint32(2*memorymap.BlockLengthWords*4))

	v, ok := d.FetchWord(100)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, uint32(0))
	test.ExpectEquality(t, d.AllocatedBlocks(), 0)

	_, present, ok := d.FetchWordOrAbsent(100)
	test.ExpectSuccess(t, ok)
	test.ExpectFailure(t, present)

	old, ok := d.StoreWord(100, 0xdeadbeef)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, old, uint32(0))
	test.ExpectEquality(t, d.AllocatedBlocks(), 1)
	test.ExpectSuccess(t, d.Allocated(0))
	test.ExpectFailure(t, d.Allocated(memorymap.BlockLengthWords))

	old, _ = d.StoreWord(100, 1)
	test.ExpectEquality(t, old, uint32(0xdeadbeef))

	// words in the same block are present even if they are zero
	v, present, _ = d.FetchWordOrAbsent(101)
	test.ExpectSuccess(t, present)
	test.ExpectEquality(t, v, uint32(0))

	// outside of the table
	_, ok = d.StoreWord(2*memorymap.BlockLengthWords, 1)
	test.ExpectFailure(t, ok)
	_, ok = d.FetchWord(2 * memorymap.BlockLengthWords)
	test.ExpectFailure(t, ok)

	d.Clear()
	test.ExpectEquality(t, d.AllocatedBlocks(), 0)
	v, _ = d.FetchWord(100)
	test.ExpectEquality(t, v, uint32(0))
}

func TestDataBytes(t *testing.T) {
	d := blocks.NewData(1)

	_, ok := d.StoreBytes(0, 4, 0x12345678)
	test.ExpectSuccess(t, ok)

	w, _ := d.FetchWord(0)
	test.ExpectEquality(t, w, uint32(0x12345678))

	// little-endian
	for i, e := range []uint32{0x78, 0x56, 0x34, 0x12} {
		v, _ := d.FetchBytes(uint32(i), 1)
		test.ExpectEquality(t, v, e, i)
	}
	v, _ := d.FetchBytes(2, 2)
	test.ExpectEquality(t, v, uint32(0x1234))

	// previous bytes are returned
	old, _ := d.StoreBytes(1, 1, 0xaa)
	test.ExpectEquality(t, old, uint32(0x56))
	w, _ = d.FetchWord(0)
	test.ExpectEquality(t, w, uint32(0x1234aa78))

	old, _ = d.StoreBytes(0, 2, 0xbbcc)
	test.ExpectEquality(t, old, uint32(0xaa78))
	w, _ = d.FetchWord(0)
	test.ExpectEquality(t, w, uint32(0x1234bbcc))
}

func TestDataBytesSpanningWords(t *testing.T) {
	d := blocks.NewData(1)
	d.StoreWord(0, 0x12345678)

	old, ok := d.StoreBytes(2, 4, 0xddccbbaa)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, old, uint32(0x00001234))

	w, _ := d.FetchWord(0)
	test.ExpectEquality(t, w, uint32(0xbbaa5678))
	w, _ = d.FetchWord(1)
	test.ExpectEquality(t, w, uint32(0x0000ddcc))

	v, _ := d.FetchBytes(2, 4)
	test.ExpectEquality(t, v, uint32(0xddccbbaa))
}

func TestDataBytesOutsideTable(t *testing.T) {
	d := blocks.NewData(1)
	last := d.Capacity() - 2

	// a store that runs off the end of the table changes nothing
	_, ok := d.StoreBytes(last, 4, 0xffffffff)
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, d.AllocatedBlocks(), 0)

	_, ok = d.StoreBytes(last, 2, 0xffff)
	test.ExpectSuccess(t, ok)
	v, _ := d.FetchBytes(last, 2)
	test.ExpectEquality(t, v, uint32(0xffff))
}

func TestDataLayout(t *testing.T) {
	d := blocks.NewData(4)
	d.StoreWord(0, 1)
	d.StoreWord(1, 0)
	d.StoreWord(2*memorymap.BlockLengthWords, 1)
	d.StoreWord(2*memorymap.BlockLengthWords+1, 1)

	l := d.Layout()
	test.DemandEquality(t, len(l), 2)
	test.ExpectEquality(t, l[0], blocks.BlockInfo{Index: 0, Used: 1})
	test.ExpectEquality(t, l[1], blocks.BlockInfo{Index: 2, Used: 2})
}

func TestStackWordAtBase(t *testing.T) {
	s := blocks.NewStack(1)

	// the word at the stack base
	_, ok := s.StoreBytes(0, 4, 0x11223344)
	test.ExpectSuccess(t, ok)
	w, _ := s.FetchWord(0)
	test.ExpectEquality(t, w, uint32(0x11223344))

	v, _ := s.FetchBytes(0, 1)
	test.ExpectEquality(t, v, uint32(0x44))

	// one word below the stack base
	s.StoreBytes(4, 4, 0xaabbccdd)
	w, _ = s.FetchWord(1)
	test.ExpectEquality(t, w, uint32(0xaabbccdd))
	v, _ = s.FetchBytes(4, 4)
	test.ExpectEquality(t, v, uint32(0xaabbccdd))

	// the byte immediately below the stack base is the most significant
	// byte of the word below it
	v, _ = s.FetchBytes(1, 1)
	test.ExpectEquality(t, v, uint32(0xaa))
}

func TestStackOffsets(t *testing.T) {
	const value = uint32(0x44332211)

	// store a word at every alignment relative to the word eight bytes
	// below the stack base
	for m := range uint32(4) {
		s := blocks.NewStack(1)
		offset := 8 - m

		_, ok := s.StoreBytes(offset, 4, value)
		test.DemandSuccess(t, ok, m)

		v, _ := s.FetchBytes(offset, 4)
		test.ExpectEquality(t, v, value, m)

		// every byte is found at the next higher address
		for i := range uint32(4) {
			b, _ := s.FetchBytes(offset-i, 1)
			test.ExpectEquality(t, b, (value>>(i*8))&0xff, fmt.Sprintf("offset %d byte %d", m, i))
		}

		// halves
		h, _ := s.FetchBytes(offset, 2)
		test.ExpectEquality(t, h, value&0xffff, m)
		h, _ = s.FetchBytes(offset-2, 2)
		test.ExpectEquality(t, h, value>>16, m)

		// the words either side of the access
		lo, _ := s.FetchWord(2)
		hi, _ := s.FetchWord(1)
		test.ExpectEquality(t, lo, value<<(m*8), m)
		if m == 0 {
			test.ExpectEquality(t, hi, uint32(0), m)
		} else {
			test.ExpectEquality(t, hi, value>>((4-m)*8), m)
		}
	}
}

func TestStackPreviousBytes(t *testing.T) {
	s := blocks.NewStack(1)
	s.StoreWord(1, 0x12345678)

	old, _ := s.StoreBytes(4, 1, 0xff)
	test.ExpectEquality(t, old, uint32(0x78))
	old, _ = s.StoreBytes(2, 2, 0xeeee)
	test.ExpectEquality(t, old, uint32(0x1234))

	w, _ := s.FetchWord(1)
	test.ExpectEquality(t, w, uint32(0xeeee56ff))
}

type statement struct {
	encoding uint32
}

func TestText(t *testing.T) {
	tx := blocks.NewText[*statement](2)
	test.ExpectEquality(t, tx.Capacity(), uint32(2*memorymap.TextBlockLengthWords*4))

	s, ok := tx.Fetch(10)
	test.ExpectSuccess(t, ok)
	test.ExpectSuccess(t, s == nil)

	a := &statement{encoding: 0x20080001}
	old, ok := tx.Store(10, a)
	test.ExpectSuccess(t, ok)
	test.ExpectSuccess(t, old == nil)
	test.ExpectEquality(t, tx.AllocatedBlocks(), 1)

	s, _ = tx.Fetch(10)
	test.ExpectEquality(t, s, a)

	// neighbouring words in an allocated block are still empty
	s, ok = tx.Fetch(11)
	test.ExpectSuccess(t, ok)
	test.ExpectSuccess(t, s == nil)

	b := &statement{encoding: 0}
	old, _ = tx.Store(10, b)
	test.ExpectEquality(t, old, a)

	_, ok = tx.Store(2*memorymap.TextBlockLengthWords, a)
	test.ExpectFailure(t, ok)

	l := tx.Layout()
	test.DemandEquality(t, len(l), 1)
	test.ExpectEquality(t, l[0].Used, 1)

	tx.Clear()
	test.ExpectEquality(t, tx.AllocatedBlocks(), 0)
	s, _ = tx.Fetch(10)
	test.ExpectSuccess(t, s == nil)
}

func TestTextUpdate(t *testing.T) {
	tx := blocks.NewText[*statement](2)

	a := &statement{encoding: 1}
	tx.Store(memorymap.TextBlockLengthWords-1, a)

	// the update spans two blocks and the second is allocated by it
	var seen []*statement
	ok := tx.Update([]uint32{memorymap.TextBlockLengthWords - 1, memorymap.TextBlockLengthWords}, func(n int, s *statement) *statement {
		seen = append(seen, s)
		return &statement{encoding: uint32(n + 10)}
	})
	test.ExpectSuccess(t, ok)
	test.DemandEquality(t, len(seen), 2)
	test.ExpectEquality(t, seen[0], a)
	test.ExpectSuccess(t, seen[1] == nil)
	test.ExpectEquality(t, tx.AllocatedBlocks(), 2)

	var encodings []uint32
	ok = tx.Inspect([]uint32{memorymap.TextBlockLengthWords - 1, memorymap.TextBlockLengthWords, 0}, func(n int, s *statement) {
		if s == nil {
			encodings = append(encodings, 0)
			return
		}
		encodings = append(encodings, s.encoding)
	})
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, len(encodings), 3)
	test.ExpectEquality(t, encodings[0], uint32(10))
	test.ExpectEquality(t, encodings[1], uint32(11))
	test.ExpectEquality(t, encodings[2], uint32(0))

	// nothing changes if any index is outside the table
	var called bool
	ok = tx.Update([]uint32{0, 2 * memorymap.TextBlockLengthWords}, func(_ int, s *statement) *statement {
		called = true
		return s
	})
	test.ExpectFailure(t, ok)
	test.ExpectFailure(t, called)
	ok = tx.Inspect([]uint32{2 * memorymap.TextBlockLengthWords}, func(_ int, _ *statement) {
		called = true
	})
	test.ExpectFailure(t, ok)
	test.ExpectFailure(t, called)
	s, _ := tx.Fetch(0)
	test.ExpectSuccess(t, s == nil)
}
