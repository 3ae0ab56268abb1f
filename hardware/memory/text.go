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

package memory

import (
	"github.com/jetsetilly/gomars/hardware/memory/blocks"
	"github.com/jetsetilly/gomars/hardware/memory/memorymap"
	"github.com/jetsetilly/gomars/hardware/memory/observers"
)

func (mem *Memory) textTable(area memorymap.Area) *blocks.Text[Statement] {
	if area == memorymap.KernelText {
		return mem.kernelText
	}
	return mem.text
}

// textArea is like memorymap.Limits.Classify() but only considers the text
// areas.
func (mem *Memory) textArea(address uint32) (memorymap.Area, uint32) {
	switch {
	case mem.limits.InTextSegment(address):
		return memorymap.Text, address - mem.limits.TextBase
	case mem.limits.InKernelTextSegment(address):
		return memorymap.KernelText, address - mem.limits.KernelTextBase
	}
	return memorymap.Undefined, 0
}

// fetchText returns the statement at the word aligned address in the text
// area. ok is false if the address is not in the area.
func (mem *Memory) fetchText(area memorymap.Area, address uint32) (Statement, bool) {
	a, offset := mem.textArea(address)
	if a != area {
		return nil, false
	}
	return mem.textTable(area).Fetch(offset >> 2)
}

// encodingAt returns the encoding of the statement at the word aligned
// address. An empty word has an encoding of zero.
func (mem *Memory) encodingAt(area memorymap.Area, address uint32) (uint32, bool) {
	stmt, ok := mem.fetchText(area, address)
	if !ok {
		return 0, false
	}
	if stmt == nil {
		return 0, true
	}
	return stmt.Encoding(), true
}

// textWords returns the word addresses covered by the access and their word
// indexes in the table for the area. ok is false if any of the words are
// outside the area.
func (mem *Memory) textWords(area memorymap.Area, address uint32, length int) ([]uint32, []uint32, bool) {
	first := address &^ 3
	last := uint32((uint64(address) + uint64(length) - 1) &^ 3)

	words := []uint32{first}
	if last != first {
		words = append(words, last)
	}

	indexes := make([]uint32, 0, len(words))
	for _, w := range words {
		a, offset := mem.textArea(w)
		if a != area {
			return nil, nil, false
		}
		indexes = append(indexes, offset>>2)
	}

	return words, indexes, true
}

// fetchTextBytes reads length bytes from the text area. Bytes are taken from
// the encodings of the statements containing them.
func (mem *Memory) fetchTextBytes(area memorymap.Area, address uint32, length int) (uint32, bool) {
	words, indexes, ok := mem.textWords(area, address, length)
	if !ok {
		return 0, false
	}

	var value uint32
	ok = mem.textTable(area).Inspect(indexes, func(n int, stmt Statement) {
		if stmt == nil {
			return
		}
		enc := stmt.Encoding()
		for i := range length {
			a := address + uint32(i)
			if a&^3 != words[n] {
				continue
			}
			shift := (a & 3) << 3
			value |= ((enc >> shift) & 0xff) << (i << 3)
		}
	})

	return value, ok
}

// storeTextBytes writes to the text area. A complete word replaces the
// statement at that address. Anything smaller is merged into the encoding of
// the existing statement and the result decoded into a new statement.
// Returns the bytes that were replaced.
func (mem *Memory) storeTextBytes(area memorymap.Area, address uint32, value uint32, length int) (uint32, bool) {
	if length == memorymap.WordLengthBytes && WordAligned(address) {
		_, offset := mem.textArea(address)
		old, ok := mem.textTable(area).Store(offset>>2, mem.decoder(value, address))
		if !ok {
			return 0, false
		}
		if old == nil {
			return 0, true
		}
		return old.Encoding(), true
	}

	words, indexes, ok := mem.textWords(area, address, length)
	if !ok {
		return 0, false
	}

	var old uint32
	ok = mem.textTable(area).Update(indexes, func(n int, stmt Statement) Statement {
		var enc uint32
		if stmt != nil {
			enc = stmt.Encoding()
		}
		for i := range length {
			a := address + uint32(i)
			if a&^3 != words[n] {
				continue
			}
			shift := (a & 3) << 3
			old |= ((enc >> shift) & 0xff) << (i << 3)
			enc = (enc &^ (0xff << shift)) | ((value>>(i<<3))&0xff)<<shift
		}
		return mem.decoder(enc, words[n])
	})

	return old, ok
}

// StoreStatement places the statement at the word aligned address, which
// must be in one of the text areas. The self-modifying-code setting does not
// apply and observers are not notified.
func (mem *Memory) StoreStatement(address uint32, stmt Statement) error {
	if !WordAligned(address) {
		return storeError(address, textStoreNotInText)
	}

	area, offset := mem.textArea(address)
	if !area.IsText() {
		return storeError(address, textStoreNotInText)
	}

	if _, ok := mem.textTable(area).Store(offset>>2, stmt); !ok {
		return storeError(address, textStoreNotInText)
	}

	return nil
}

// FetchStatement returns the statement at the word aligned address. For an
// address in a text area the result will be nil if no statement has been
// stored there.
//
// If self-modifying code is enabled an address outside of the text areas is
// read as a word and decoded into a statement.
//
// Observers are notified of the read if notify is true.
func (mem *Memory) FetchStatement(address uint32, notify bool) (Statement, error) {
	if !WordAligned(address) {
		return nil, loadError(address, textFetchNotAlign)
	}

	area, _ := mem.textArea(address)
	if area.IsText() {
		stmt, ok := mem.fetchText(area, address)
		if !ok {
			return nil, loadError(address, textFetchOutRange)
		}
		if notify {
			var enc uint32
			if stmt != nil {
				enc = stmt.Encoding()
			}
			mem.observers.Notify(observers.Read, address, 4, enc)
		}
		return stmt, nil
	}

	if !mem.settings.SelfModifyingCodeEnabled() {
		return nil, loadError(address, textFetchOutRange)
	}

	v, err := mem.get(address, 4, notify)
	if err != nil {
		return nil, err
	}
	return mem.decoder(v, address), nil
}

// FetchStatementNoNotify is the same as FetchStatement() with notify set to
// false.
func (mem *Memory) FetchStatementNoNotify(address uint32) (Statement, error) {
	return mem.FetchStatement(address, false)
}
