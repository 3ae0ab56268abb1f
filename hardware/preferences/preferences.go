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

// Package preferences collates the preference values used by the hardware
// packages. The Preferences type satisfies the memory.Settings interface.
package preferences

import (
	"github.com/jetsetilly/gomars/hardware/memory/memorymap"
	"github.com/jetsetilly/gomars/prefs"
)

// Preference keys.
const (
	KeySelfModifyingCode   = "mips.selfModifyingCode"
	KeyTrace               = "mips.trace"
	KeyMemoryConfiguration = "mips.memoryConfiguration"
)

// Preferences defines and collates all the preference values used by the
// hardware.
type Preferences struct {
	grp *prefs.Group

	// allow the text segments to be read and written as data
	SelfModifyingCode prefs.Bool

	// log every completed store
	Trace prefs.Bool

	// the ID of the memory configuration. see memorymap.ByName()
	MemoryConfiguration prefs.String
}

func (p *Preferences) String() string {
	return p.grp.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. Values are set to their defaults and then to any values
// in the current command line group (see prefs.PushCommandLineStack()).
func NewPreferences() (*Preferences, error) {
	p := &Preferences{
		grp: prefs.NewGroup(),
	}

	p.MemoryConfiguration.SetHookPre(func(v prefs.Value) error {
		_, err := memorymap.ByName(v.(string))
		return err
	})

	err := p.grp.Add(KeySelfModifyingCode, &p.SelfModifyingCode)
	if err != nil {
		return nil, err
	}
	err = p.grp.Add(KeyTrace, &p.Trace)
	if err != nil {
		return nil, err
	}
	err = p.grp.Add(KeyMemoryConfiguration, &p.MemoryConfiguration)
	if err != nil {
		return nil, err
	}

	err = p.SetDefaults()
	if err != nil {
		return nil, err
	}

	err = p.grp.ApplyCommandLine()
	if err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all settings to default values.
func (p *Preferences) SetDefaults() error {
	if err := p.SelfModifyingCode.Set(false); err != nil {
		return err
	}
	if err := p.Trace.Set(false); err != nil {
		return err
	}
	return p.MemoryConfiguration.Set(memorymap.Default.ID)
}

// Set the preference identified by key.
func (p *Preferences) Set(key string, v prefs.Value) error {
	return p.grp.Set(key, v)
}

// Keys returns the list of preference keys.
func (p *Preferences) Keys() []string {
	return p.grp.Keys()
}

// SelfModifyingCodeEnabled implements the memory.Settings interface.
func (p *Preferences) SelfModifyingCodeEnabled() bool {
	return p.SelfModifyingCode.Value()
}

// AllowLogging implements the logger.Permission interface. It is true if the
// trace preference is set.
func (p *Preferences) AllowLogging() bool {
	return p.Trace.Value()
}
