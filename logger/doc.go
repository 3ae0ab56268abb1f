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

// Package logger is the central log repository for gomars. Entries are tagged
// with the name of the component that created them, for example:
//
//	logger.Logf(logger.Allow, "memory", "configuration changed to %s", name)
//
// Repeated entries are collapsed into a single entry with a repeat count and
// the number of entries is capped. Logging is gated by the Permission
// interface. The Allow value always permits logging. Other implementations
// can decide at the time of the call, which is how the trace preference of
// the simulated machine turns memory tracing on and off.
//
// Separate Logger instances can be created with NewLogger(). This is mostly
// useful for testing.
package logger
