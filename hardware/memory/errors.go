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

package memory

import (
	"errors"
	"fmt"
)

// Sentinel errors. Use errors.Is() to test for these.
var (
	// AddressError is wrapped by every AccessError.
	AddressError = errors.New("address error")

	// InvalidArgument is returned when a request can never be satisfied,
	// for example a heap allocation that is too large.
	InvalidArgument = errors.New("invalid argument")
)

// Exception cause codes for address errors.
const (
	CauseLoad  = 4
	CauseStore = 5
)

// AccessError describes a failed memory access.
type AccessError struct {
	Address uint32
	Store   bool
	Reason  string
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("memory: %s (0x%08x)", e.Reason, e.Address)
}

func (e *AccessError) Unwrap() error {
	return AddressError
}

// Cause is the exception cause code for the access.
func (e *AccessError) Cause() int {
	if e.Store {
		return CauseStore
	}
	return CauseLoad
}

func loadError(address uint32, reason string) error {
	return &AccessError{Address: address, Reason: reason}
}

func storeError(address uint32, reason string) error {
	return &AccessError{Address: address, Store: true, Reason: reason}
}

// error reasons that are used in more than one place
const (
	outOfRange         = "address out of range"
	fetchNotAligned    = "fetch address not aligned on word boundary"
	storeNotAligned    = "store address not aligned on word boundary"
	fetchHalfNotAlign  = "fetch address not aligned on halfword boundary"
	storeHalfNotAlign  = "store address not aligned on halfword boundary"
	cannotReadText     = "Cannot read directly from text segment!"
	cannotWriteText    = "Cannot write directly to text segment!"
	cannotReadKernel   = "Cannot read directly from kernel text segment! Use the statement fetch instead"
	textFetchNotAlign  = "fetch address for text segment not aligned to word boundary"
	textFetchOutRange  = "fetch address for text segment out of range"
	textStoreNotInText = "store address to text segment out of range or not aligned to word boundary"
)
