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

// Package registers implements the MIPS register file: the 32 general
// purpose registers plus the program counter and the HI and LO registers.
//
// Each register has a reset value. Reset() returns every register to its
// reset value. The reset values of $gp, $sp and the program counter depend on
// the memory configuration and are changed with ChangeResetValue() and
// InitializeProgramCounter() whenever the configuration changes.
//
// Writes to $zero are ignored.
package registers
