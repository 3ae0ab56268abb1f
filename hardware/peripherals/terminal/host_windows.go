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

//go:build windows

package terminal

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// Host controls the real terminal while key presses are being fed to a
// Device. Raw mode is not supported on this platform so keys are only
// delivered after a newline.
type Host struct {
	input *os.File
}

// NewHost is the preferred method of initialisation for the Host type.
func NewHost(input *os.File) (*Host, error) {
	if input == nil {
		return nil, fmt.Errorf("terminal: host requires an input file")
	}
	return &Host{input: input}, nil
}

// IsTerminal returns true if the input file is a terminal.
func (h *Host) IsTerminal() bool {
	return term.IsTerminal(int(h.input.Fd()))
}

// EnterRaw does nothing on this platform.
func (h *Host) EnterRaw() error {
	return nil
}

// Restore does nothing on this platform.
func (h *Host) Restore() error {
	return nil
}

// Size returns the number of columns and rows of the terminal connected to
// the file. Returns 80x24 if the file is not a terminal.
func Size(f *os.File) (int, int) {
	w, h, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 80, 24
	}
	return w, h
}
