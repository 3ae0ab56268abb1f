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

// Package terminal implements the keyboard and display peripheral. The
// peripheral is four word registers at the start of the memory-mapped IO
// segment:
//
//	base+0x0	receiver control	bit 0 set when a key is waiting
//	base+0x4	receiver data		the waiting key
//	base+0x8	transmitter control	bit 0 set when ready to transmit
//	base+0xc	transmitter data	write a byte here to display it
//
// Reading the receiver data register clears the receiver ready bit. Keys
// pressed while the bit is set are queued and delivered in order.
//
// The Device watches the registers with a memory observer. Register updates
// made by the device itself are not reported to observers.
//
// The Host connects a Device to the real terminal. Standard input is put
// into raw mode with termios so that individual key presses can be passed
// to the device.
package terminal
