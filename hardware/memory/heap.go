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

import "fmt"

// AllocateBytesFromHeap reserves n bytes of heap and returns the address of
// the first byte. The heap grows upwards from the heap base of the
// configuration and the next allocation always begins on a word boundary.
//
// Heap memory is never returned and it is not cleared. It is the data
// segment memory beginning at the returned address.
func (mem *Memory) AllocateBytesFromHeap(n int) (uint32, error) {
	if n < 0 {
		return 0, fmt.Errorf("%w: request (%d) is negative heap amount", InvalidArgument, n)
	}

	mem.heapCrit.Lock()
	defer mem.heapCrit.Unlock()

	address := mem.heapAddress
	next := uint64(address) + uint64(n)
	if r := next % 4; r != 0 {
		next += 4 - r
	}

	if next >= uint64(mem.limits.DataSegmentLimit) {
		return 0, fmt.Errorf("%w: request (%d) exceeds available heap storage", InvalidArgument, n)
	}

	mem.heapAddress = uint32(next)

	return address, nil
}

// HeapAddress returns the address that will be returned by the next call to
// AllocateBytesFromHeap().
func (mem *Memory) HeapAddress() uint32 {
	mem.heapCrit.Lock()
	defer mem.heapCrit.Unlock()
	return mem.heapAddress
}

// FirstNullInRange returns the address of the first word in [base, limit)
// for which GetRawWordOrNull() finds nothing. Returns limit, or the first
// word address at or beyond it, if there is no such word.
func (mem *Memory) FirstNullInRange(base uint32, limit uint32) (uint32, error) {
	if !WordAligned(base) {
		return 0, loadError(base, fetchNotAligned)
	}

	a := uint64(base)
	for ; a < uint64(limit); a += 4 {
		_, present, err := mem.GetRawWordOrNull(uint32(a))
		if err != nil {
			return 0, err
		}
		if !present {
			break
		}
	}

	return uint32(a), nil
}
