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

package registers

import "fmt"

// Register is a single labelled 32 bit register.
type Register struct {
	label      string
	number     int
	value      uint32
	resetValue uint32
}

// NewRegister is the preferred method of initialisation for the Register
// type. The register is created with its reset value.
func NewRegister(label string, number int, resetValue uint32) *Register {
	return &Register{
		label:      label,
		number:     number,
		value:      resetValue,
		resetValue: resetValue,
	}
}

func (r Register) String() string {
	return fmt.Sprintf("%s=0x%08x", r.label, r.value)
}

// Label returns the name of the register including the $ prefix.
func (r Register) Label() string {
	return r.label
}

// Number returns the register number. The special registers have a number
// of -1.
func (r Register) Number() int {
	return r.number
}

// Value returns the current value of the register.
func (r Register) Value() uint32 {
	return r.value
}

// ResetValue returns the value the register takes on Reset().
func (r Register) ResetValue() uint32 {
	return r.resetValue
}

// Load value into register. Returns the previous value.
func (r *Register) Load(v uint32) uint32 {
	o := r.value
	r.value = v
	return o
}

// Reset the register to its reset value.
func (r *Register) Reset() {
	r.value = r.resetValue
}

// ChangeResetValue changes the value the register takes on Reset(). The
// current value is not changed.
func (r *Register) ChangeResetValue(v uint32) {
	r.resetValue = v
}
