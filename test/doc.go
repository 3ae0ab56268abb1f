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

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The ExpectEquality() and ExpectInequality() functions are generic and will
// compare any two values of the same comparable type. The ExpectSuccess() and
// ExpectFailure() functions test for success under generic conditions:
//
//	bool -> true is success
//	error -> nil is success
//	nil -> success
//
// Note that a nil value is considered a success. This is because of how
// errors usually work (nil to indicate no error).
//
// The Demand*() functions are the same as the Expect*() functions except that
// failure is fatal to the test. They should be used when further testing is
// meaningless if the condition is not met.
//
// The CompareWriter type implements io.Writer and can be used to capture
// output. The Compare() function can then be used to test for equality.
package test
