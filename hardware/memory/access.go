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
	"fmt"
	"math"

	"github.com/jetsetilly/gomars/hardware/memory/blocks"
	"github.com/jetsetilly/gomars/hardware/memory/memorymap"
	"github.com/jetsetilly/gomars/hardware/memory/observers"
)

// byteStore is implemented by blocks.Data and blocks.Stack.
type byteStore interface {
	StoreBytes(offset uint32, length int, value uint32) (uint32, bool)
	FetchBytes(offset uint32, length int) (uint32, bool)
}

// byteStore returns the storage for an area that holds words. Returns nil
// for the text areas.
func (mem *Memory) byteStore(area memorymap.Area) byteStore {
	switch area {
	case memorymap.Data:
		return mem.data
	case memorymap.Stack:
		return mem.stack
	case memorymap.MMIO:
		return mem.mmio
	case memorymap.KernelData:
		return mem.kernelData
	}
	return nil
}

// wordStore is like byteStore but for whole word access. The word index of
// an aligned address is the area offset divided by four for every area,
// including the stack.
func (mem *Memory) wordStore(area memorymap.Area) *blocks.Data {
	switch area {
	case memorymap.Data:
		return mem.data
	case memorymap.Stack:
		return &mem.stack.Data
	case memorymap.MMIO:
		return mem.mmio
	case memorymap.KernelData:
		return mem.kernelData
	}
	return nil
}

func validLength(length int) error {
	if length < 1 || length > memorymap.WordLengthBytes {
		return fmt.Errorf("%w: access length must be between 1 and 4 (%d)", InvalidArgument, length)
	}
	return nil
}

// get is the general read path. No alignment checks are made.
func (mem *Memory) get(address uint32, length int, notify bool) (uint32, error) {
	area, offset := mem.limits.Classify(address)

	var value uint32
	var ok bool

	switch area {
	case memorymap.Undefined:
		return 0, loadError(address, outOfRange)
	case memorymap.KernelText:
		return 0, loadError(address, cannotReadKernel)
	case memorymap.Text:
		if !mem.settings.SelfModifyingCodeEnabled() {
			return 0, loadError(address, cannotReadText)
		}
		value, ok = mem.fetchTextBytes(area, address, length)
	default:
		value, ok = mem.byteStore(area).FetchBytes(offset, length)
	}

	if !ok {
		return 0, loadError(address, outOfRange)
	}

	if notify {
		mem.observers.Notify(observers.Read, address, length, value)
	}

	return value, nil
}

// set is the general write path. No alignment checks are made. Returns the
// value previously held by the bytes that were written.
func (mem *Memory) set(address uint32, value uint32, length int, notify bool) (uint32, error) {
	area, offset := mem.limits.Classify(address)

	var old uint32
	var ok bool

	switch area {
	case memorymap.Undefined:
		return 0, storeError(address, outOfRange)
	case memorymap.Text, memorymap.KernelText:
		if !mem.settings.SelfModifyingCodeEnabled() {
			return 0, storeError(address, cannotWriteText)
		}
		old, ok = mem.storeTextBytes(area, address, value, length)
	default:
		old, ok = mem.byteStore(area).StoreBytes(offset, length, value)
	}

	if !ok {
		return 0, storeError(address, outOfRange)
	}

	mem.trace(address, value, length)
	if notify {
		mem.observers.Notify(observers.Write, address, length, value)
	}

	return old, nil
}

// Get reads length bytes starting at address. The result is assembled
// little-endian. No alignment checks are made.
func (mem *Memory) Get(address uint32, length int) (uint32, error) {
	if err := validLength(length); err != nil {
		return 0, err
	}
	return mem.get(address, length, true)
}

// GetNoNotify is the same as Get() but observers are not notified.
func (mem *Memory) GetNoNotify(address uint32, length int) (uint32, error) {
	if err := validLength(length); err != nil {
		return 0, err
	}
	return mem.get(address, length, false)
}

// Set writes the low length bytes of value starting at address. No alignment
// checks are made. Returns the value previously held in those bytes.
func (mem *Memory) Set(address uint32, value uint32, length int) (uint32, error) {
	if err := validLength(length); err != nil {
		return 0, err
	}
	return mem.set(address, value, length, true)
}

// GetWord reads the word at the word aligned address.
func (mem *Memory) GetWord(address uint32) (uint32, error) {
	if !WordAligned(address) {
		return 0, loadError(address, fetchNotAligned)
	}
	return mem.get(address, 4, true)
}

// GetWordNoNotify is the same as GetWord() but observers are not notified.
func (mem *Memory) GetWordNoNotify(address uint32) (uint32, error) {
	if !WordAligned(address) {
		return 0, loadError(address, fetchNotAligned)
	}
	return mem.get(address, 4, false)
}

// SetWord writes the word at the word aligned address. Returns the previous
// value.
func (mem *Memory) SetWord(address uint32, value uint32) (uint32, error) {
	if !WordAligned(address) {
		return 0, storeError(address, storeNotAligned)
	}
	return mem.set(address, value, 4, true)
}

// SetWordNoNotify is the same as SetWord() but observers are not notified.
// Intended for devices updating their own registers.
func (mem *Memory) SetWordNoNotify(address uint32, value uint32) (uint32, error) {
	if !WordAligned(address) {
		return 0, storeError(address, storeNotAligned)
	}
	return mem.set(address, value, 4, false)
}

// GetHalf reads the halfword at the halfword aligned address.
func (mem *Memory) GetHalf(address uint32) (uint16, error) {
	if address%2 != 0 {
		return 0, loadError(address, fetchHalfNotAlign)
	}
	v, err := mem.get(address, 2, true)
	return uint16(v), err
}

// SetHalf writes the halfword at the halfword aligned address. Returns the
// previous value.
func (mem *Memory) SetHalf(address uint32, value uint16) (uint16, error) {
	if address%2 != 0 {
		return 0, storeError(address, storeHalfNotAlign)
	}
	v, err := mem.set(address, uint32(value), 2, true)
	return uint16(v), err
}

// GetByte reads the byte at address.
func (mem *Memory) GetByte(address uint32) (uint8, error) {
	v, err := mem.get(address, 1, true)
	return uint8(v), err
}

// GetByteNoNotify is the same as GetByte() but observers are not notified.
func (mem *Memory) GetByteNoNotify(address uint32) (uint8, error) {
	v, err := mem.get(address, 1, false)
	return uint8(v), err
}

// SetByte writes the byte at address. Returns the previous value.
func (mem *Memory) SetByte(address uint32, value uint8) (uint8, error) {
	v, err := mem.set(address, uint32(value), 1, true)
	return uint8(v), err
}

// GetRawWord reads the word at the word aligned address without going
// through the byte positioning of the general read path.
func (mem *Memory) GetRawWord(address uint32) (uint32, error) {
	if !WordAligned(address) {
		return 0, loadError(address, fetchNotAligned)
	}

	area, offset := mem.limits.Classify(address)

	var value uint32
	var ok bool

	switch area {
	case memorymap.Undefined:
		return 0, loadError(address, outOfRange)
	case memorymap.KernelText:
		return 0, loadError(address, cannotReadKernel)
	case memorymap.Text:
		if !mem.settings.SelfModifyingCodeEnabled() {
			return 0, loadError(address, cannotReadText)
		}
		value, ok = mem.encodingAt(area, address)
	default:
		value, ok = mem.wordStore(area).FetchWord(offset >> 2)
	}

	if !ok {
		return 0, loadError(address, outOfRange)
	}

	mem.observers.Notify(observers.Read, address, 4, value)

	return value, nil
}

// GetRawWordOrNull is like GetRawWord() but also indicates if there is
// nothing at the address. For data areas this means the block containing
// the address has never been written to. For text areas it means there is no
// statement at the address. Text areas can be read by this function whatever
// the self-modifying-code setting. Observers are not notified.
func (mem *Memory) GetRawWordOrNull(address uint32) (uint32, bool, error) {
	if !WordAligned(address) {
		return 0, false, loadError(address, fetchNotAligned)
	}

	area, offset := mem.limits.Classify(address)

	switch area {
	case memorymap.Undefined:
		return 0, false, loadError(address, outOfRange)
	case memorymap.Text, memorymap.KernelText:
		stmt, ok := mem.fetchText(area, address)
		if !ok {
			return 0, false, loadError(address, outOfRange)
		}
		if stmt == nil {
			return 0, false, nil
		}
		return stmt.Encoding(), true, nil
	}

	value, present, ok := mem.wordStore(area).FetchWordOrAbsent(offset >> 2)
	if !ok {
		return 0, false, loadError(address, outOfRange)
	}
	return value, present, nil
}

// SetRawWord writes the word at the word aligned address without going
// through the byte positioning of the general write path. Returns the
// previous value.
func (mem *Memory) SetRawWord(address uint32, value uint32) (uint32, error) {
	if !WordAligned(address) {
		return 0, storeError(address, storeNotAligned)
	}

	area, offset := mem.limits.Classify(address)

	var old uint32
	var ok bool

	switch area {
	case memorymap.Undefined:
		return 0, storeError(address, outOfRange)
	case memorymap.Text, memorymap.KernelText:
		if !mem.settings.SelfModifyingCodeEnabled() {
			return 0, storeError(address, cannotWriteText)
		}
		old, ok = mem.storeTextBytes(area, address, value, 4)
	default:
		old, ok = mem.wordStore(area).StoreWord(offset>>2, value)
	}

	if !ok {
		return 0, storeError(address, outOfRange)
	}

	mem.trace(address, value, 4)
	mem.observers.Notify(observers.Write, address, 4, value)

	return old, nil
}

// GetDoubleWord reads the 64 bit value held in the two words starting at
// address. The high word is at address+4.
func (mem *Memory) GetDoubleWord(address uint32) (uint64, error) {
	hi, err := mem.get(address+4, 4, true)
	if err != nil {
		return 0, err
	}
	lo, err := mem.get(address, 4, true)
	if err != nil {
		return 0, err
	}
	return uint64(hi)<<32 | uint64(lo), nil
}

// SetDoubleWord writes the 64 bit value to the two words starting at
// address. The high word is written first, to address+4. Returns the
// previous value.
func (mem *Memory) SetDoubleWord(address uint32, value uint64) (uint64, error) {
	hi, err := mem.set(address+4, uint32(value>>32), 4, true)
	if err != nil {
		return 0, err
	}
	lo, err := mem.set(address, uint32(value), 4, true)
	if err != nil {
		return 0, err
	}
	return uint64(hi)<<32 | uint64(lo), nil
}

// GetDouble reads a float64 with GetDoubleWord().
func (mem *Memory) GetDouble(address uint32) (float64, error) {
	v, err := mem.GetDoubleWord(address)
	return math.Float64frombits(v), err
}

// SetDouble writes a float64 with SetDoubleWord(). Returns the previous
// value.
func (mem *Memory) SetDouble(address uint32, value float64) (float64, error) {
	v, err := mem.SetDoubleWord(address, math.Float64bits(value))
	return math.Float64frombits(v), err
}
