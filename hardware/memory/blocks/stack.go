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

import "github.com/jetsetilly/gomars/hardware/memory/memorymap"

// Stack is a word table indexed downwards from the stack base. Word index k
// holds the four bytes beginning at (stack base - 4k), lowest address in the
// least significant byte.
type Stack struct {
	Data
}

// NewStack is the preferred method of initialisation for the Stack type.
func NewStack(tableLength int) *Stack {
	return &Stack{
		Data: *NewData(tableLength),
	}
}

// stackPosition converts a distance below the stack base into a storage
// offset. For a distance d that is not a multiple of four this is the same
// as d + 2*(4 - d%4). Distances down to -3 are allowed because the bytes of
// the word at the stack base lie above it.
func stackPosition(d int64) int64 {
	return d + 2*((-d)&(memorymap.WordLengthBytes-1))
}

// positions returns the storage offsets for length bytes starting at the
// address offset below the stack base. Each byte is corrected individually
// so that an access spanning two words reaches the correct word.
func (s *Stack) positions(offset uint32, length int) ([memorymap.WordLengthBytes]uint64, bool) {
	var pos [memorymap.WordLengthBytes]uint64
	for i := range length {
		p := stackPosition(int64(offset) - int64(i))
		if p < 0 {
			return pos, false
		}
		pos[i] = uint64(p)
	}
	return pos, true
}

// StoreBytes stores the low length bytes of value starting at the address
// that is offset bytes below the stack base.
func (s *Stack) StoreBytes(offset uint32, length int, value uint32) (uint32, bool) {
	pos, ok := s.positions(offset, length)
	if !ok {
		return 0, false
	}
	return s.storeBytes(pos[:length], value)
}

// FetchBytes returns length bytes starting at the address that is offset
// bytes below the stack base.
func (s *Stack) FetchBytes(offset uint32, length int) (uint32, bool) {
	pos, ok := s.positions(offset, length)
	if !ok {
		return 0, false
	}
	return s.fetchBytes(pos[:length])
}
