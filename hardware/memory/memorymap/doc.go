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

// Package memorymap describes the MIPS address space. A Configuration names
// the base address of every segment, together with the configured upper
// limits. The Limits type is derived from a Configuration and is what the
// memory router uses to classify addresses.
//
// Configured limits are not used as they are. Each segment is backed by a
// table of fixed capacity and a limit is clamped so that it never describes
// more memory than the table can hold. Forward growing segments are clamped
// with:
//
//	limit = min(configured limit, base + capacity)
//
// The stack grows downwards from its base and is clamped with:
//
//	limit = max(configured limit, base - capacity)
//
// The arithmetic is performed with wider integers so that neither form can
// wrap around the 32 bit address space.
//
// Segment ranges are half-open. The forward segments include their base and
// exclude their limit. The stack excludes its limit and includes its base.
package memorymap
