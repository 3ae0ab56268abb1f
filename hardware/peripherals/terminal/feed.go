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

package terminal

import (
	"errors"
	"io"
)

// Feed key presses read from r to the device until the stop key is read or
// the reader is exhausted. Returns the number of keys delivered to the
// device, not counting the stop key.
func Feed(dev *Device, r io.ByteReader, stop byte) (int, error) {
	var n int
	for {
		b, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return n, nil
			}
			return n, err
		}
		if b == stop {
			return n, nil
		}
		dev.KeyPressed(b)
		n++
	}
}
