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

// Statement is a program statement held in a text segment. The encoding is
// the 32 bit machine word for the statement.
type Statement interface {
	Address() uint32
	Encoding() uint32
}

// StatementDecoder creates a Statement from a machine word. It is used when a
// word is written to a text segment under the self-modifying-code setting and
// when a data address is fetched as a statement.
type StatementDecoder func(encoding uint32, address uint32) Statement

// RawStatement is the simplest Statement. It is the result of the default
// StatementDecoder.
type RawStatement struct {
	address  uint32
	encoding uint32
}

// NewRawStatement is the preferred method of initialisation for the
// RawStatement type. The type signature makes it suitable for use as a
// StatementDecoder.
func NewRawStatement(encoding uint32, address uint32) Statement {
	return &RawStatement{address: address, encoding: encoding}
}

// Address implements the Statement interface.
func (s *RawStatement) Address() uint32 {
	return s.address
}

// Encoding implements the Statement interface.
func (s *RawStatement) Encoding() uint32 {
	return s.encoding
}

func (s *RawStatement) String() string {
	return fmt.Sprintf("0x%08x: 0x%08x", s.address, s.encoding)
}
