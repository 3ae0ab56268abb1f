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

package observers

import "fmt"

// Kind of memory access.
type Kind int

// List of valid Kind values.
const (
	Read Kind = iota
	Write
)

func (k Kind) String() string {
	switch k {
	case Read:
		return "read"
	case Write:
		return "write"
	}
	return "unknown"
}

// Notice describes a single completed memory access.
type Notice struct {
	Kind    Kind
	Address uint32

	// number of bytes accessed. one of 1, 2 or 4
	Length int

	// the value read or written. not masked to the access length
	Value uint32

	// the goroutine that performed the access. zero unless the registry
	// has been told to identify goroutines
	Goroutine uint64
}

func (n Notice) String() string {
	return fmt.Sprintf("%s 0x%08x (%d bytes) 0x%08x", n.Kind, n.Address, n.Length, n.Value)
}

// Observer is implemented by anything that wants to be told about memory
// accesses.
type Observer interface {
	MemoryAccessed(Notice)
}
