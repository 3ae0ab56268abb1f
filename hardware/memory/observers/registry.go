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

package observers

import (
	"slices"
	"sync"
	"sync/atomic"

	"github.com/jetsetilly/gomars/assert"
)

// SubscriptionID identifies a single subscription.
type SubscriptionID uint64

type subscription struct {
	id   SubscriptionID
	obs  Observer
	low  uint32
	high uint32
}

// match is true if the word starting at high is considered part of the
// range.
func (s subscription) match(address uint32) bool {
	return address >= s.low && uint64(address) <= uint64(s.high)+3
}

// Registry is a list of subscriptions.
type Registry struct {
	// writers serialise on crit. readers only ever load subs
	crit   sync.Mutex
	subs   atomic.Pointer[[]subscription]
	nextID SubscriptionID

	// fill in the Goroutine field of notices
	identify atomic.Bool
}

// NewRegistry is the preferred method of initialisation for the Registry
// type.
func NewRegistry() *Registry {
	r := &Registry{}
	r.subs.Store(&[]subscription{})
	return r
}

// the first address of the kernel half of the address space
const kernelBoundary = uint32(0x80000000)

func validate(low uint32, high uint32) error {
	if low%4 != 0 {
		return &RangeError{Address: low, Reason: "address not aligned on word boundary"}
	}
	if high != low && high%4 != 0 {
		return &RangeError{Address: high, Reason: "address not aligned on word boundary"}
	}
	if low < kernelBoundary && high >= kernelBoundary {
		return &RangeError{Address: high, Reason: "range cannot cross 0x80000000; please split it up"}
	}
	if high < low {
		return &RangeError{Address: high, Reason: "end address of range < start address of range"}
	}
	return nil
}

// Subscribe adds a subscription for every access to the range of addresses
// [low, high+3]. Low must be word aligned, as must high if it is different
// to low. The range cannot straddle the boundary between user and kernel
// space.
func (r *Registry) Subscribe(obs Observer, low uint32, high uint32) (SubscriptionID, error) {
	if err := validate(low, high); err != nil {
		return 0, err
	}

	r.crit.Lock()
	defer r.crit.Unlock()

	r.nextID++
	n := slices.Clone(*r.subs.Load())
	n = append(n, subscription{id: r.nextID, obs: obs, low: low, high: high})
	r.subs.Store(&n)

	return r.nextID, nil
}

// SubscribeAll subscribes the observer to the whole of the address space.
// The address space is covered with two subscriptions, one for user space
// and one for kernel space.
func (r *Registry) SubscribeAll(obs Observer) ([]SubscriptionID, error) {
	u, err := r.Subscribe(obs, 0, kernelBoundary-4)
	if err != nil {
		return nil, err
	}
	k, err := r.Subscribe(obs, kernelBoundary, 0xfffffffc)
	if err != nil {
		r.Cancel(u)
		return nil, err
	}
	return []SubscriptionID{u, k}, nil
}

// Cancel removes a single subscription. Returns false if the subscription
// does not exist.
func (r *Registry) Cancel(id SubscriptionID) bool {
	r.crit.Lock()
	defer r.crit.Unlock()

	o := *r.subs.Load()
	n := slices.DeleteFunc(slices.Clone(o), func(s subscription) bool {
		return s.id == id
	})
	if len(n) == len(o) {
		return false
	}
	r.subs.Store(&n)
	return true
}

// Unsubscribe removes every subscription for the observer. Returns the
// number of subscriptions removed.
func (r *Registry) Unsubscribe(obs Observer) int {
	r.crit.Lock()
	defer r.crit.Unlock()

	o := *r.subs.Load()
	n := slices.DeleteFunc(slices.Clone(o), func(s subscription) bool {
		return s.obs == obs
	})
	r.subs.Store(&n)
	return len(o) - len(n)
}

// Clear removes every subscription.
func (r *Registry) Clear() {
	r.crit.Lock()
	defer r.crit.Unlock()
	r.subs.Store(&[]subscription{})
}

// Count returns the number of subscriptions.
func (r *Registry) Count() int {
	return len(*r.subs.Load())
}

// IdentifyGoroutines sets whether notices record the goroutine that made the
// access. Finding the goroutine is slow so it is off by default and should
// only be turned on for debugging or testing.
func (r *Registry) IdentifyGoroutines(on bool) {
	r.identify.Store(on)
}

// Notify reports the access to every observer with a matching subscription.
// An observer with more than one matching subscription is told more than
// once.
func (r *Registry) Notify(kind Kind, address uint32, length int, value uint32) {
	subs := *r.subs.Load()
	if len(subs) == 0 {
		return
	}

	var notice Notice
	var prepared bool

	for _, s := range subs {
		if !s.match(address) {
			continue
		}
		if !prepared {
			notice = Notice{
				Kind:    kind,
				Address: address,
				Length:  length,
				Value:   value,
			}
			if r.identify.Load() {
				notice.Goroutine = assert.GetGoRoutineID()
			}
			prepared = true
		}
		s.obs.MemoryAccessed(notice)
	}
}
