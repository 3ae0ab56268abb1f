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
	"sync"

	"github.com/jetsetilly/gomars/hardware/memory/blocks"
	"github.com/jetsetilly/gomars/hardware/memory/memorymap"
	"github.com/jetsetilly/gomars/hardware/memory/observers"
	"github.com/jetsetilly/gomars/logger"
)

// Settings are consulted by Memory whenever an access depends on them.
type Settings interface {
	// whether the text segments can be read and written as data
	SelfModifyingCodeEnabled() bool

	// whether completed stores should be logged. the logger.Permission
	// interface
	AllowLogging() bool
}

type noSettings struct{}

func (noSettings) SelfModifyingCodeEnabled() bool { return false }
func (noSettings) AllowLogging() bool             { return false }

// Memory is the memory of the MIPS machine.
//
// Individual accesses are safe for concurrent use. Changing the
// configuration or clearing memory must not happen while other accesses are
// in progress.
type Memory struct {
	settings Settings
	decoder  StatementDecoder

	cfg    *memorymap.Configuration
	limits memorymap.Limits

	data       *blocks.Data
	stack      *blocks.Stack
	mmio       *blocks.Data
	kernelData *blocks.Data
	text       *blocks.Text[Statement]
	kernelText *blocks.Text[Statement]

	heapCrit    sync.Mutex
	heapAddress uint32

	// persists over calls to Clear() and SetConfiguration()
	observers *observers.Registry
}

// NewMemory is the preferred method of initialisation for the Memory type.
// The configuration will be memorymap.Default if cfg is nil. Settings may
// also be nil, in which case self-modifying code and logging are disabled.
func NewMemory(cfg *memorymap.Configuration, settings Settings) *Memory {
	if cfg == nil {
		cfg = memorymap.Default
	}
	if settings == nil {
		settings = noSettings{}
	}

	mem := &Memory{
		settings:   settings,
		decoder:    NewRawStatement,
		cfg:        cfg,
		limits:     cfg.Limits(),
		data:       blocks.NewData(memorymap.BlockTableLength),
		stack:      blocks.NewStack(memorymap.BlockTableLength),
		mmio:       blocks.NewData(memorymap.MMIOTableLength),
		kernelData: blocks.NewData(memorymap.BlockTableLength),
		text:       blocks.NewText[Statement](memorymap.TextBlockTableLength),
		kernelText: blocks.NewText[Statement](memorymap.TextBlockTableLength),
		observers:  observers.NewRegistry(),
	}
	mem.heapAddress = cfg.HeapBase

	return mem
}

// SetStatementDecoder changes how words written to a text segment are turned
// into statements. A nil decoder restores the default. The decoder is called
// while the text table is locked and must not access memory.
func (mem *Memory) SetStatementDecoder(decoder StatementDecoder) {
	if decoder == nil {
		decoder = NewRawStatement
	}
	mem.decoder = decoder
}

// Configuration returns the current address map.
func (mem *Memory) Configuration() *memorymap.Configuration {
	return mem.cfg
}

// Limits returns the effective segment limits of the current configuration.
func (mem *Memory) Limits() memorymap.Limits {
	return mem.limits
}

// SetConfiguration changes the address map. If the configuration is the same
// as the current configuration nothing happens and the function returns
// false. Otherwise memory is cleared and the function returns true.
//
// The caller is responsible for resetting anything that depends on the
// configuration. See hardware.MIPS.SetConfiguration().
func (mem *Memory) SetConfiguration(cfg *memorymap.Configuration) bool {
	if cfg == nil || cfg == mem.cfg {
		return false
	}

	mem.cfg = cfg
	mem.limits = cfg.Limits()
	mem.Clear()

	logger.Logf(logger.Allow, "memory", "configuration changed to %s", cfg.Description)

	return true
}

// Clear forgets everything stored in memory and resets the heap. Observer
// subscriptions are retained.
func (mem *Memory) Clear() {
	mem.heapCrit.Lock()
	mem.heapAddress = mem.cfg.HeapBase
	mem.heapCrit.Unlock()

	mem.data.Clear()
	mem.stack.Clear()
	mem.mmio.Clear()
	mem.kernelData.Clear()
	mem.text.Clear()
	mem.kernelText.Clear()
}

// Usage summarises the storage allocated for an area.
type Usage interface {
	AllocatedBlocks() int
	Layout() []blocks.BlockInfo
}

// Usage returns the storage usage for the area. Returns nil for
// memorymap.Undefined.
func (mem *Memory) Usage(area memorymap.Area) Usage {
	switch area {
	case memorymap.Data:
		return mem.data
	case memorymap.Stack:
		return mem.stack
	case memorymap.MMIO:
		return mem.mmio
	case memorymap.Text:
		return mem.text
	case memorymap.KernelData:
		return mem.kernelData
	case memorymap.KernelText:
		return mem.kernelText
	}
	return nil
}

// trace logs completed stores if the settings allow it.
func (mem *Memory) trace(address uint32, value uint32, length int) {
	if mem.settings.AllowLogging() {
		logger.Logf(logger.Allow, "memory", "0x%08x <- 0x%0*x", address, length*2, value)
	}
}
