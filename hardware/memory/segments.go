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

// WordAligned is true if address is a multiple of four.
func WordAligned(address uint32) bool {
	return address%4 == 0
}

// DoubleWordAligned is true if address is a multiple of eight.
func DoubleWordAligned(address uint32) bool {
	return address%8 == 0
}

// AlignToWordBoundary rounds address up to the next multiple of four.
// Addresses that are already aligned are unchanged.
func AlignToWordBoundary(address uint32) uint32 {
	if r := address % 4; r != 0 {
		return address + 4 - r
	}
	return address
}

// InDataSegment is true if address is in the user data segment.
func (mem *Memory) InDataSegment(address uint32) bool {
	return mem.limits.InDataSegment(address)
}

// InStackSegment is true if address is in the stack.
func (mem *Memory) InStackSegment(address uint32) bool {
	return mem.limits.InStackSegment(address)
}

// InMemoryMapSegment is true if address is in the memory-mapped IO segment.
func (mem *Memory) InMemoryMapSegment(address uint32) bool {
	return mem.limits.InMMIOSegment(address)
}

// InTextSegment is true if address is in the user text segment.
func (mem *Memory) InTextSegment(address uint32) bool {
	return mem.limits.InTextSegment(address)
}

// InKernelDataSegment is true if address is in the kernel data segment.
func (mem *Memory) InKernelDataSegment(address uint32) bool {
	return mem.limits.InKernelDataSegment(address)
}

// InKernelTextSegment is true if address is in the kernel text segment.
func (mem *Memory) InKernelTextSegment(address uint32) bool {
	return mem.limits.InKernelTextSegment(address)
}
