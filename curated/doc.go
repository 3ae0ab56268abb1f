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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error. The pattern is what identifies a
// curated error. For example:
//
//	const unknownConfig = "memorymap: unknown configuration (%s)"
//
//	e := curated.Errorf(unknownConfig, name)
//	if curated.Is(e, unknownConfig) {
//		fmt.Println("true")
//	}
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the error chain:
//
//	f := curated.Errorf("monitor: %v", e)
//	if curated.Has(f, unknownConfig) {
//		fmt.Println("true")
//	}
//
// The Error() implementation normalises the chain so that duplicate adjacent
// parts are removed. Chains are thought of as parts separated by the
// sub-string ': '. For example, wrapping "memory: address error" with
// "memory: %v" produces
//
//	memory: address error
//
// and not
//
//	memory: memory: address error
//
// Any error values used as placeholder values are visible to the errors.Is()
// and errors.As() functions of the standard library. This means that sentinel
// errors and typed errors (such as the address errors from the memory
// package) can be wrapped by a curated error without being hidden.
package curated
