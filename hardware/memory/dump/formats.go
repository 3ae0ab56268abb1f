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

package dump

import (
	"fmt"
	"io"
	"strings"
)

// HexText writes one word per line as eight hexadecimal digits.
var HexText = Format{
	Name:        "hex",
	Description: "hexadecimal text, one word per line",
	word: func(w io.Writer, _ uint32, _ uint32, v uint32) error {
		_, err := fmt.Fprintf(w, "%08x\n", v)
		return err
	},
}

// BinaryText writes one word per line as 32 binary digits.
var BinaryText = Format{
	Name:        "binary",
	Description: "binary text, one word per line",
	word: func(w io.Writer, _ uint32, _ uint32, v uint32) error {
		_, err := fmt.Fprintf(w, "%032b\n", v)
		return err
	},
}

// AsciiText writes one word per line as four characters, lowest addressed
// byte first. Bytes that are not printable are written as a full stop.
var AsciiText = Format{
	Name:        "ascii",
	Description: "ascii text, one word per line",
	word: func(w io.Writer, _ uint32, _ uint32, v uint32) error {
		s := strings.Builder{}
		for i := range 4 {
			b := byte(v >> (i * 8))
			if b < 0x20 || b > 0x7e {
				b = '.'
			}
			s.WriteByte(b)
		}
		s.WriteByte('\n')
		_, err := io.WriteString(w, s.String())
		return err
	},
}

// words per line in the Segment format
const segmentColumns = 8

// Segment writes eight words per line, each line prefixed with the address
// of the first word on the line.
var Segment = Format{
	Name:        "segment",
	Description: "eight words per line with addresses",
	word: func(w io.Writer, address uint32, offset uint32, v uint32) error {
		col := (offset / 4) % segmentColumns
		var err error
		if col == 0 {
			_, err = fmt.Fprintf(w, "0x%08x   ", address)
			if err != nil {
				return err
			}
		}
		if col == segmentColumns-1 {
			_, err = fmt.Fprintf(w, " 0x%08x\n", v)
		} else {
			_, err = fmt.Fprintf(w, " 0x%08x", v)
		}
		return err
	},
	end: func(w io.Writer, count int) error {
		if count%segmentColumns != 0 {
			_, err := io.WriteString(w, "\n")
			return err
		}
		return nil
	},
}

// IntelHex writes a data record for every word. An extended linear address
// record precedes the first data record and every data record that starts a
// new 64KB region, so record addresses are absolute. The dump is terminated
// with an end of file record.
var IntelHex = Format{
	Name:        "intelhex",
	Description: "intel hex records, one word per record",
	word: func(w io.Writer, address uint32, offset uint32, v uint32) error {
		if offset == 0 || address&0xffff == 0 {
			if err := hexRecord(w, 0x04, 0, []byte{byte(address >> 24), byte(address >> 16)}); err != nil {
				return err
			}
		}
		return hexRecord(w, 0x00, uint16(address), []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
	},
	end: func(w io.Writer, _ int) error {
		return hexRecord(w, 0x01, 0, nil)
	},
}

func hexRecord(w io.Writer, typ byte, address uint16, data []byte) error {
	s := strings.Builder{}
	sum := byte(len(data)) + byte(address>>8) + byte(address) + typ
	fmt.Fprintf(&s, ":%02X%04X%02X", len(data), address, typ)
	for _, b := range data {
		fmt.Fprintf(&s, "%02X", b)
		sum += b
	}
	fmt.Fprintf(&s, "%02X\n", -sum)
	_, err := io.WriteString(w, s.String())
	return err
}
