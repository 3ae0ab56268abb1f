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

// Package blocks implements the sparse storage behind each memory segment. A
// table is a fixed length list of blocks and a block is only allocated the
// first time something is stored in it. Fetching from a block that has never
// been allocated returns zero (or, for the OrAbsent and text variants, an
// indication that nothing is there).
//
// Word tables store each word as a single uint32. Byte access uses a byte
// position within the word where position 0 is the most significant byte.
// Memory is little-endian so the byte at the lowest address of a word is
// stored at position 3.
//
// Stack tables are word tables indexed downwards from the stack base. Only
// the byte positioning differs.
//
// Tables are safe for concurrent use.
package blocks
