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

// Package notifications allow communication from the simulated machine to
// whatever is presenting it (the monitor for example). Notices describe
// events that change what the user is looking at: a memory configuration
// switch makes every address on screen meaningless, so a display must be
// told about it.
package notifications

// Notice describes events that somehow change the presentation of the
// simulation.
type Notice string

// List of defined notifications.
const (
	// the memory configuration has changed. all memory has been cleared and
	// the registers have been reset
	NotifyMemoryConfiguration Notice = "NotifyMemoryConfiguration"

	// memory has been cleared without a change of configuration
	NotifyMemoryCleared Notice = "NotifyMemoryCleared"

	// the keyboard and display peripheral has been attached to or detached
	// from the host terminal
	NotifyTerminalAttached Notice = "NotifyTerminalAttached"
	NotifyTerminalDetached Notice = "NotifyTerminalDetached"
)

// Notify is used for direct communication between the hardware and whatever
// is presenting it.
type Notify interface {
	Notify(notice Notice) error
}
