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

// Package dump writes the contents of a range of memory in one of several
// text formats. Dumping stops at the end of the range or at the first word
// for which there is nothing in memory, whichever comes first. See
// memory.Memory.GetRawWordOrNull() for what "nothing" means.
package dump

import (
	"fmt"
	"io"
	"strings"

	"github.com/jetsetilly/gomars/curated"
)

// Source is the part of memory.Memory used to read memory for a dump.
type Source interface {
	GetRawWordOrNull(address uint32) (uint32, bool, error)
}

// Format is a memory dump format.
type Format struct {
	// name used to select the format
	Name string

	// short description
	Description string

	// write a single word. offset is the distance of the word from the
	// start of the dump
	word func(w io.Writer, address uint32, offset uint32, value uint32) error

	// called after the last word. may be nil
	end func(w io.Writer, count int) error
}

func (f Format) String() string {
	return f.Name
}

// Dump writes the words in the range [first, last] to w. Returns the number
// of words written.
func (f Format) Dump(w io.Writer, src Source, first uint32, last uint32) (int, error) {
	if first%4 != 0 {
		return 0, fmt.Errorf("dump: first address not aligned on word boundary (0x%08x)", first)
	}

	var count int

	for a := uint64(first); a <= uint64(last); a += 4 {
		v, present, err := src.GetRawWordOrNull(uint32(a))
		if err != nil {
			return count, fmt.Errorf("dump: %w", err)
		}
		if !present {
			break
		}
		if err := f.word(w, uint32(a), uint32(a)-first, v); err != nil {
			return count, fmt.Errorf("dump: %w", err)
		}
		count++
	}

	if f.end != nil {
		if err := f.end(w, count); err != nil {
			return count, fmt.Errorf("dump: %w", err)
		}
	}

	return count, nil
}

// UnknownFormat is the pattern of the error returned by ByName() when there
// is no format with the requested name.
const UnknownFormat = "dump: unknown format (%s)"

// Formats lists every available format.
var Formats = []Format{HexText, BinaryText, AsciiText, Segment, IntelHex}

// ByName returns the format with the name. Matching is case insensitive.
func ByName(name string) (Format, error) {
	for _, f := range Formats {
		if strings.EqualFold(f.Name, name) {
			return f, nil
		}
	}
	return Format{}, curated.Errorf(UnknownFormat, name)
}
