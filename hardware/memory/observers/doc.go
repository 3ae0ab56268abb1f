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

// Package observers keeps track of parties interested in accesses to ranges
// of memory. A range is subscribed to with Subscribe() and every access that
// touches the range is reported to the observer with a Notice.
//
// Notification happens on the goroutine that performed the access, after
// the access has completed. Subscribing and cancelling may happen from any
// goroutine and never blocks or is blocked by notification, which always
// iterates over a snapshot of the subscription list.
//
// Observers are compared by value when unsubscribing so an Observer
// implementation must be comparable. In practice this means a pointer type.
package observers
