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

package prefs

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jetsetilly/gomars/curated"
)

// sentinal patterns returned by Group functions
const (
	KeyExists  = "prefs: key already exists (%s)"
	KeyUnknown = "prefs: unknown key (%s)"
)

// Group is a collection of preference values, each identified by a unique
// key.
type Group struct {
	crit    sync.Mutex
	entries map[string]Pref
}

// NewGroup is the preferred method of initialisation for the Group type.
func NewGroup() *Group {
	return &Group{
		entries: make(map[string]Pref),
	}
}

// Add preference value to group under key.
func (grp *Group) Add(key string, p Pref) error {
	grp.crit.Lock()
	defer grp.crit.Unlock()

	if _, ok := grp.entries[key]; ok {
		return curated.Errorf(KeyExists, key)
	}
	grp.entries[key] = p

	return nil
}

// Set the preference identified by key.
func (grp *Group) Set(key string, v Value) error {
	grp.crit.Lock()
	p, ok := grp.entries[key]
	grp.crit.Unlock()

	if !ok {
		return curated.Errorf(KeyUnknown, key)
	}

	// the value is set outside of the critical section because the hook
	// functions may well cause other preferences to be read
	return p.Set(v)
}

// Get the preference identified by key.
func (grp *Group) Get(key string) (Value, error) {
	grp.crit.Lock()
	defer grp.crit.Unlock()

	p, ok := grp.entries[key]
	if !ok {
		return nil, curated.Errorf(KeyUnknown, key)
	}

	return p.Get(), nil
}

// Keys returns a sorted list of keys in the group.
func (grp *Group) Keys() []string {
	grp.crit.Lock()
	defer grp.crit.Unlock()

	keys := make([]string, 0, len(grp.entries))
	for k := range grp.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// String lists every preference in the group, one per line and sorted by key.
func (grp *Group) String() string {
	s := strings.Builder{}
	for _, k := range grp.Keys() {
		grp.crit.Lock()
		p := grp.entries[k]
		grp.crit.Unlock()
		s.WriteString(fmt.Sprintf("%s :: %s\n", k, p.String()))
	}
	return s.String()
}

// ApplyCommandLine sets the value of every preference in the group that
// appears in the current command line group. See PushCommandLineStack().
func (grp *Group) ApplyCommandLine() error {
	for _, k := range grp.Keys() {
		if ok, v := GetCommandLinePref(k); ok {
			if err := grp.Set(k, v); err != nil {
				return err
			}
		}
	}
	return nil
}
