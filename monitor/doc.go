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

// Package monitor is an interactive command line for inspecting and changing
// the memory of a MIPS machine. It owns a hardware.MIPS and the keyboard and
// display peripheral attached to its memory-mapped IO segment.
//
// Commands are read one per line. Command names are case insensitive and
// numeric arguments may be given in decimal or, with the 0x prefix, in
// hexadecimal. The HELP command lists every command.
//
// Keys can be delivered to the keyboard peripheral with the KEYS command or,
// if a terminal.Host has been set with SetHost(), interactively with the
// KEYBOARD command. Keyboard mode ends with ctrl-d.
package monitor
