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

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/jetsetilly/gomars/hardware/memory/memorymap"
)

// InvalidRegister is returned when a register name or number is not
// recognised.
var InvalidRegister = errors.New("invalid register")

// names of the general purpose registers in register number order
var names = [32]string{
	"$zero", "$at", "$v0", "$v1", "$a0", "$a1", "$a2", "$a3",
	"$t0", "$t1", "$t2", "$t3", "$t4", "$t5", "$t6", "$t7",
	"$s0", "$s1", "$s2", "$s3", "$s4", "$s5", "$s6", "$s7",
	"$t8", "$t9", "$k0", "$k1", "$gp", "$sp", "$fp", "$ra",
}

// Register numbers with special meaning.
const (
	Zero          = 0
	GlobalPointer = 28
	StackPointer  = 29
	FramePointer  = 30
)

// File is the register file.
type File struct {
	crit sync.Mutex

	gpr [32]*Register
	pc  *Register
	hi  *Register
	lo  *Register
}

// NewFile is the preferred method of initialisation for the File type. The
// reset values of $gp, $sp and the program counter are taken from the
// configuration, which will be memorymap.Default if cfg is nil.
func NewFile(cfg *memorymap.Configuration) *File {
	if cfg == nil {
		cfg = memorymap.Default
	}

	f := &File{
		pc: NewRegister("pc", -1, cfg.TextBase),
		hi: NewRegister("hi", -1, 0),
		lo: NewRegister("lo", -1, 0),
	}

	for i, n := range names {
		f.gpr[i] = NewRegister(n, i, 0)
	}
	f.gpr[GlobalPointer].ChangeResetValue(cfg.GlobalPointer)
	f.gpr[StackPointer].ChangeResetValue(cfg.StackPointer)
	f.Reset()

	return f
}

// lookup finds a register by name. Names can be given with or without the
// $ prefix and general purpose registers can be given by number, eg. "$29",
// "sp" and "$sp" are all the same register.
func (f *File) lookup(name string) (*Register, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "pc":
		return f.pc, nil
	case "hi":
		return f.hi, nil
	case "lo":
		return f.lo, nil
	}

	n = strings.TrimPrefix(n, "$")
	if v, err := strconv.Atoi(n); err == nil {
		if v < 0 || v >= len(f.gpr) {
			return nil, fmt.Errorf("%w: %s", InvalidRegister, name)
		}
		return f.gpr[v], nil
	}

	// $s8 is another name for $fp
	if n == "s8" {
		return f.gpr[FramePointer], nil
	}

	for _, r := range f.gpr {
		if r.label[1:] == n {
			return r, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", InvalidRegister, name)
}

// Get returns the value of the named register.
func (f *File) Get(name string) (uint32, error) {
	f.crit.Lock()
	defer f.crit.Unlock()

	r, err := f.lookup(name)
	if err != nil {
		return 0, err
	}
	return r.Value(), nil
}

// GetNumber returns the value of the general purpose register.
func (f *File) GetNumber(number int) (uint32, error) {
	if number < 0 || number >= len(f.gpr) {
		return 0, fmt.Errorf("%w: $%d", InvalidRegister, number)
	}

	f.crit.Lock()
	defer f.crit.Unlock()

	return f.gpr[number].Value(), nil
}

// Set the value of the named register. Returns the previous value. Setting
// $zero has no effect.
func (f *File) Set(name string, v uint32) (uint32, error) {
	f.crit.Lock()
	defer f.crit.Unlock()

	r, err := f.lookup(name)
	if err != nil {
		return 0, err
	}
	if r.number == Zero {
		return 0, nil
	}
	return r.Load(v), nil
}

// ChangeResetValue changes the reset value of the named register.
func (f *File) ChangeResetValue(name string, v uint32) error {
	f.crit.Lock()
	defer f.crit.Unlock()

	r, err := f.lookup(name)
	if err != nil {
		return err
	}
	if r.number == Zero {
		return nil
	}
	r.ChangeResetValue(v)
	return nil
}

// InitializeProgramCounter sets both the value and the reset value of the
// program counter.
func (f *File) InitializeProgramCounter(v uint32) {
	f.crit.Lock()
	defer f.crit.Unlock()
	f.pc.ChangeResetValue(v)
	f.pc.Load(v)
}

// ProgramCounter returns the current value of the program counter.
func (f *File) ProgramCounter() uint32 {
	f.crit.Lock()
	defer f.crit.Unlock()
	return f.pc.Value()
}

// Reset every register to its reset value.
func (f *File) Reset() {
	f.crit.Lock()
	defer f.crit.Unlock()
	for _, r := range f.gpr {
		r.Reset()
	}
	f.pc.Reset()
	f.hi.Reset()
	f.lo.Reset()
}

// String returns the register file as a table of four registers per line
// followed by the special registers.
func (f *File) String() string {
	f.crit.Lock()
	defer f.crit.Unlock()

	s := strings.Builder{}
	for i, r := range f.gpr {
		s.WriteString(fmt.Sprintf("%-5s 0x%08x", r.label, r.value))
		if i%4 == 3 {
			s.WriteString("\n")
		} else {
			s.WriteString("  ")
		}
	}
	s.WriteString(fmt.Sprintf("%-5s 0x%08x  %-5s 0x%08x  %-5s 0x%08x\n",
		f.pc.label, f.pc.value, f.hi.label, f.hi.value, f.lo.label, f.lo.value))

	return s.String()
}
