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

package hardware

import (
	"slices"

	"github.com/jetsetilly/gomars/curated"
	"github.com/jetsetilly/gomars/hardware/cpu/registers"
	"github.com/jetsetilly/gomars/hardware/memory"
	"github.com/jetsetilly/gomars/hardware/memory/memorymap"
	"github.com/jetsetilly/gomars/hardware/preferences"
	"github.com/jetsetilly/gomars/logger"
	"github.com/jetsetilly/gomars/notifications"
	"github.com/jetsetilly/gomars/prefs"
)

// MIPS is the main container for the emulated components of the machine.
type MIPS struct {
	Prefs *preferences.Preferences
	Mem   *memory.Memory
	Regs  *registers.File

	// may be nil
	notify notifications.Notify
}

// NewMIPS creates a new MIPS machine using the memory configuration named in
// the preferences. If p is nil a new set of preferences will be created.
//
// The MIPS takes ownership of the post hook of the MemoryConfiguration
// preference. Setting the preference changes the configuration.
func NewMIPS(p *preferences.Preferences, notify notifications.Notify) (*MIPS, error) {
	var err error

	if p == nil {
		p, err = preferences.NewPreferences()
		if err != nil {
			return nil, curated.Errorf("mips: %v", err)
		}
	}

	cfg, err := memorymap.ByName(p.MemoryConfiguration.String())
	if err != nil {
		return nil, curated.Errorf("mips: %v", err)
	}

	m := &MIPS{
		Prefs:  p,
		Mem:    memory.NewMemory(cfg, p),
		Regs:   registers.NewFile(cfg),
		notify: notify,
	}

	p.MemoryConfiguration.SetHookPost(func(v prefs.Value) error {
		cfg, err := memorymap.ByName(v.(string))
		if err != nil {
			return curated.Errorf("mips: %v", err)
		}
		return m.setConfiguration(cfg)
	})

	return m, nil
}

// UnsupportedConfiguration is the pattern of the error returned by
// SetConfiguration() for a configuration that is not one of
// memorymap.Configurations.
const UnsupportedConfiguration = "mips: configuration is not built-in (%s)"

// SetConfiguration changes the memory configuration. The MemoryConfiguration
// preference is updated to match. Only the configurations listed in
// memorymap.Configurations are accepted.
//
// If the configuration is different to the current configuration then
// memory is cleared and the registers are reset with the new reset values of
// $gp, $sp and the program counter.
//
// Nothing else may be accessing the machine while the configuration changes.
func (m *MIPS) SetConfiguration(cfg *memorymap.Configuration) error {
	if cfg == nil {
		return curated.Errorf("mips: no configuration specified")
	}
	if !slices.Contains(memorymap.Configurations, cfg) {
		return curated.Errorf(UnsupportedConfiguration, cfg.ID)
	}
	return m.Prefs.MemoryConfiguration.Set(cfg.ID)
}

func (m *MIPS) setConfiguration(cfg *memorymap.Configuration) error {
	if !m.Mem.SetConfiguration(cfg) {
		return nil
	}

	if err := m.Regs.ChangeResetValue("$gp", cfg.GlobalPointer); err != nil {
		return curated.Errorf("mips: %v", err)
	}
	if err := m.Regs.ChangeResetValue("$sp", cfg.StackPointer); err != nil {
		return curated.Errorf("mips: %v", err)
	}
	m.Regs.InitializeProgramCounter(cfg.TextBase)
	m.Regs.Reset()

	logger.Logf(logger.Allow, "mips", "memory configuration is now %s", cfg.Description)

	if m.notify != nil {
		return m.notify.Notify(notifications.NotifyMemoryConfiguration)
	}
	return nil
}

// Reset clears memory and resets the registers. The configuration is
// unchanged.
func (m *MIPS) Reset() error {
	m.Mem.Clear()
	m.Regs.Reset()

	if m.notify != nil {
		return m.notify.Notify(notifications.NotifyMemoryCleared)
	}
	return nil
}
