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

package memorymap

import (
	"strings"

	"github.com/jetsetilly/gomars/curated"
)

// Configuration is a named address map. Values are the configured values and
// are not clamped. Use Limits() for the effective segment bounds.
type Configuration struct {
	// short identifier used on the command line and in preferences
	ID string

	// longer human readable description
	Description string

	TextBase         uint32
	DataSegmentBase  uint32
	ExternBase       uint32
	GlobalPointer    uint32
	DataBase         uint32
	HeapBase         uint32
	StackPointer     uint32
	StackBase        uint32
	UserHigh         uint32
	KernelBase       uint32
	KernelTextBase   uint32
	ExceptionHandler uint32
	KernelDataBase   uint32
	MMIOBase         uint32
	KernelHigh       uint32
	DataSegmentLimit uint32
	TextLimit        uint32
	KernelDataLimit  uint32
	KernelTextLimit  uint32
	StackLimit       uint32
	MMIOLimit        uint32
}

// The built-in configurations. Default is used when nothing else is
// specified.
var (
	Default = &Configuration{
		ID:               "Default",
		Description:      "Default",
		TextBase:         0x00400000,
		DataSegmentBase:  0x10000000,
		ExternBase:       0x10000000,
		GlobalPointer:    0x10008000,
		DataBase:         0x10010000,
		HeapBase:         0x10040000,
		StackPointer:     0x7fffeffc,
		StackBase:        0x7ffffffc,
		UserHigh:         0x7fffffff,
		KernelBase:       0x80000000,
		KernelTextBase:   0x80000000,
		ExceptionHandler: 0x80000180,
		KernelDataBase:   0x90000000,
		MMIOBase:         0xffff0000,
		KernelHigh:       0xffffffff,
		DataSegmentLimit: 0x7fffffff,
		TextLimit:        0x0ffffffc,
		KernelDataLimit:  0xfffeffff,
		KernelTextLimit:  0x8ffffffc,
		StackLimit:       0x10040000,
		MMIOLimit:        0xffffffff,
	}

	CompactDataAtZero = &Configuration{
		ID:               "CompactDataAtZero",
		Description:      "Compact, Data at Address 0",
		TextBase:         0x00003000,
		DataSegmentBase:  0x00000000,
		ExternBase:       0x00001000,
		GlobalPointer:    0x00001800,
		DataBase:         0x00000000,
		HeapBase:         0x00002000,
		StackPointer:     0x00002ffc,
		StackBase:        0x00002ffc,
		UserHigh:         0x00007fff,
		KernelBase:       0x00004000,
		KernelTextBase:   0x00004000,
		ExceptionHandler: 0x00004180,
		KernelDataBase:   0x00005000,
		MMIOBase:         0x00007f00,
		KernelHigh:       0x00007fff,
		DataSegmentLimit: 0x00002fff,
		TextLimit:        0x00003ffc,
		KernelDataLimit:  0x00007eff,
		KernelTextLimit:  0x00004ffc,
		StackLimit:       0x00002000,
		MMIOLimit:        0x00007fff,
	}

	CompactTextAtZero = &Configuration{
		ID:               "CompactTextAtZero",
		Description:      "Compact, Text at Address 0",
		TextBase:         0x00000000,
		DataSegmentBase:  0x00001000,
		ExternBase:       0x00001000,
		GlobalPointer:    0x00001800,
		DataBase:         0x00002000,
		HeapBase:         0x00003000,
		StackPointer:     0x00003ffc,
		StackBase:        0x00003ffc,
		UserHigh:         0x00007fff,
		KernelBase:       0x00004000,
		KernelTextBase:   0x00004000,
		ExceptionHandler: 0x00004180,
		KernelDataBase:   0x00005000,
		MMIOBase:         0x00007f00,
		KernelHigh:       0x00007fff,
		DataSegmentLimit: 0x00003fff,
		TextLimit:        0x00000ffc,
		KernelDataLimit:  0x00007eff,
		KernelTextLimit:  0x00004ffc,
		StackLimit:       0x00003000,
		MMIOLimit:        0x00007fff,
	}
)

// UnknownConfiguration is the pattern of the error returned by ByName() when
// there is no configuration with the requested ID.
const UnknownConfiguration = "memorymap: unknown configuration (%s)"

// Configurations lists the built-in configurations. The first entry is
// the default.
var Configurations = []*Configuration{Default, CompactDataAtZero, CompactTextAtZero}

// ByName returns the built-in configuration with the ID. Matching is case
// insensitive. The empty string returns the default configuration.
func ByName(id string) (*Configuration, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Default, nil
	}
	for _, cfg := range Configurations {
		if strings.EqualFold(cfg.ID, id) {
			return cfg, nil
		}
	}
	return nil, curated.Errorf(UnknownConfiguration, id)
}

// IsCompact returns true if the whole address map fits in 16 bits.
func (cfg *Configuration) IsCompact() bool {
	return cfg.KernelHigh <= 0xffff
}

func (cfg *Configuration) String() string {
	return cfg.Description
}

// Item is a single named value in a configuration.
type Item struct {
	Name  string
	Value uint32
}

// Items returns the configuration's values in their canonical order.
func (cfg *Configuration) Items() []Item {
	return []Item{
		{"text base", cfg.TextBase},
		{"data segment base", cfg.DataSegmentBase},
		{"extern base", cfg.ExternBase},
		{"global pointer ($gp)", cfg.GlobalPointer},
		{"data base", cfg.DataBase},
		{"heap base", cfg.HeapBase},
		{"stack pointer ($sp)", cfg.StackPointer},
		{"stack base", cfg.StackBase},
		{"user space high", cfg.UserHigh},
		{"kernel base", cfg.KernelBase},
		{"kernel text base", cfg.KernelTextBase},
		{"exception handler", cfg.ExceptionHandler},
		{"kernel data base", cfg.KernelDataBase},
		{"mmio base", cfg.MMIOBase},
		{"kernel space high", cfg.KernelHigh},
		{"data segment limit", cfg.DataSegmentLimit},
		{"text limit", cfg.TextLimit},
		{"kernel data limit", cfg.KernelDataLimit},
		{"kernel text limit", cfg.KernelTextLimit},
		{"stack limit", cfg.StackLimit},
		{"mmio limit", cfg.MMIOLimit},
	}
}
