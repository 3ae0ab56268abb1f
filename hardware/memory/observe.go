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

	"github.com/jetsetilly/gomars/hardware/memory/observers"
)

// Observers returns the observer registry. Subscriptions made through the
// registry directly report range errors as observers.RangeError rather than
// AccessError.
func (mem *Memory) Observers() *observers.Registry {
	return mem.observers
}

// rangeError converts an observers.RangeError into an AccessError.
func rangeError(err error) error {
	var re *observers.RangeError
	if errors.As(err, &re) {
		return loadError(re.Address, re.Reason)
	}
	return err
}

// Subscribe the observer to accesses in the range [low, high+3]. See
// observers.Registry.Subscribe() for the restrictions on the range.
func (mem *Memory) Subscribe(obs observers.Observer, low uint32, high uint32) (observers.SubscriptionID, error) {
	id, err := mem.observers.Subscribe(obs, low, high)
	if err != nil {
		return 0, rangeError(err)
	}
	return id, nil
}

// SubscribeAll subscribes the observer to every address.
func (mem *Memory) SubscribeAll(obs observers.Observer) ([]observers.SubscriptionID, error) {
	ids, err := mem.observers.SubscribeAll(obs)
	if err != nil {
		return nil, rangeError(err)
	}
	return ids, nil
}

// Unsubscribe removes every subscription for the observer.
func (mem *Memory) Unsubscribe(obs observers.Observer) int {
	return mem.observers.Unsubscribe(obs)
}
