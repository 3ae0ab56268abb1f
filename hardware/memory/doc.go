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

// Package memory is the memory of a 32 bit MIPS machine. All accesses to
// memory go through the Memory type, which routes each access to the storage
// for the segment containing the address.
//
//	                         observers
//	                             /\
//	                             |
//	                             |
//	CPU ---- Memory ---- memorymap.Limits.Classify()
//	                             |
//	                             |---- data        blocks.Data
//	                             |---- stack       blocks.Stack
//	                             |---- mmio        blocks.Data
//	                             |---- text        blocks.Text
//	                             |---- kernel data blocks.Data
//	                              ---- kernel text blocks.Text
//
// Storage for a segment is sparse. Blocks of storage are allocated the first
// time they are written to. Reading from memory that has never been written
// returns zero.
//
// Memory is little-endian. A word at address A holds the byte at A in its
// least significant byte.
//
// The text segments hold Statement values rather than words. Writing to a
// text segment, or reading from it as data, is an error unless the
// self-modifying-code setting is enabled. Statements are placed in the text
// segments with StoreStatement() and retrieved with FetchStatement().
//
// Every completed access is reported to the observers package. Reads that
// should not be reported, for example reads made by a debugger or by a
// device servicing its own registers, use the NoNotify variants.
//
// Failed accesses return an *AccessError which wraps AddressError. The
// AccessError carries the exception cause the CPU should raise.
package memory
