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

import (
	"errors"
	"fmt"
)

// ErrRange is the error wrapped by every RangeError.
var ErrRange = errors.New("invalid observer range")

// RangeError is returned when a subscription range is not acceptable.
type RangeError struct {
	// the address that was at fault
	Address uint32
	Reason  string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("observers: %s (0x%08x)", e.Reason, e.Address)
}

func (e *RangeError) Unwrap() error {
	return ErrRange
}
