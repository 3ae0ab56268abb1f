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
	"fmt"
	"strings"
)

// Area represents the different segments of the address space.
type Area int

// The different segments of the address space. The order of the list is
// the priority order used by Classify() when segments overlap.
const (
	Undefined Area = iota
	Data
	Stack
	MMIO
	Text
	KernelData
	KernelText
)

func (a Area) String() string {
	switch a {
	case Data:
		return "data"
	case Stack:
		return "stack"
	case MMIO:
		return "mmio"
	case Text:
		return "text"
	case KernelData:
		return "kernel data"
	case KernelText:
		return "kernel text"
	}
	return "undefined"
}

// IsText is true for the user and kernel text segments.
func (a Area) IsText() bool {
	return a == Text || a == KernelText
}

// ParseArea returns the Area for the short name. Short names are the
// result of String() for user segments and "kdata" or "ktext" for the
// kernel segments. Matching is case insensitive.
func ParseArea(name string) (Area, error) {
	switch strings.ToLower(name) {
	case "data":
		return Data, nil
	case "stack":
		return Stack, nil
	case "mmio":
		return MMIO, nil
	case "text":
		return Text, nil
	case "kdata", "kernel data":
		return KernelData, nil
	case "ktext", "kernel text":
		return KernelText, nil
	}
	return Undefined, fmt.Errorf("memorymap: unknown area (%s)", name)
}

// Areas lists every defined area in priority order.
var Areas = []Area{Data, Stack, MMIO, Text, KernelData, KernelText}

// Geometry of the tables backing each segment. The data, stack, kernel data
// and memory-mapped segments all use word blocks. The text segments use
// blocks of statements of the same length.
const (
	WordLengthBytes      = 4
	BlockLengthWords     = 1024
	BlockTableLength     = 1024
	TextBlockLengthWords = 1024
	TextBlockTableLength = 1024
	MMIOTableLength      = 16
)

// Capacities in bytes of each kind of table.
const (
	SegmentCapacity = BlockLengthWords * BlockTableLength * WordLengthBytes
	TextCapacity    = TextBlockLengthWords * TextBlockTableLength * WordLengthBytes
	MMIOCapacity    = BlockLengthWords * MMIOTableLength * WordLengthBytes
)

// The kernel segments begin at this address. An observed range of addresses
// cannot cross it.
const KernelBoundary = uint32(0x80000000)

// Limits are the effective bounds of every segment in a configuration.
type Limits struct {
	DataSegmentBase  uint32
	DataSegmentLimit uint32

	StackBase  uint32
	StackLimit uint32

	MMIOBase  uint32
	MMIOLimit uint32

	TextBase  uint32
	TextLimit uint32

	KernelDataBase  uint32
	KernelDataLimit uint32

	KernelTextBase  uint32
	KernelTextLimit uint32
}

// forward clamps a configured limit for a segment that grows upwards.
func forward(base uint32, limit uint32, capacity uint64) uint32 {
	return uint32(min(uint64(limit), uint64(base)+capacity))
}

// downward clamps a configured limit for a segment that grows downwards.
func downward(base uint32, limit uint32, capacity int64) uint32 {
	return uint32(max(int64(limit), int64(base)-capacity))
}

// Limits derives the effective bounds of the configuration.
func (cfg *Configuration) Limits() Limits {
	return Limits{
		DataSegmentBase:  cfg.DataSegmentBase,
		DataSegmentLimit: forward(cfg.DataSegmentBase, cfg.DataSegmentLimit, SegmentCapacity),
		StackBase:        cfg.StackBase,
		StackLimit:       downward(cfg.StackBase, cfg.StackLimit, SegmentCapacity),
		MMIOBase:         cfg.MMIOBase,
		MMIOLimit:        forward(cfg.MMIOBase, cfg.MMIOLimit, MMIOCapacity),
		TextBase:         cfg.TextBase,
		TextLimit:        forward(cfg.TextBase, cfg.TextLimit, TextCapacity),
		KernelDataBase:   cfg.KernelDataBase,
		KernelDataLimit:  forward(cfg.KernelDataBase, cfg.KernelDataLimit, SegmentCapacity),
		KernelTextBase:   cfg.KernelTextBase,
		KernelTextLimit:  forward(cfg.KernelTextBase, cfg.KernelTextLimit, TextCapacity),
	}
}

// InDataSegment is true if address is in [data base, data limit).
func (l Limits) InDataSegment(address uint32) bool {
	return address >= l.DataSegmentBase && address < l.DataSegmentLimit
}

// InStackSegment is true if address is in (stack limit, stack base].
func (l Limits) InStackSegment(address uint32) bool {
	return address > l.StackLimit && address <= l.StackBase
}

// InMMIOSegment is true if address is in [mmio base, mmio limit).
func (l Limits) InMMIOSegment(address uint32) bool {
	return address >= l.MMIOBase && address < l.MMIOLimit
}

// InTextSegment is true if address is in [text base, text limit).
func (l Limits) InTextSegment(address uint32) bool {
	return address >= l.TextBase && address < l.TextLimit
}

// InKernelDataSegment is true if address is in [kdata base, kdata limit).
func (l Limits) InKernelDataSegment(address uint32) bool {
	return address >= l.KernelDataBase && address < l.KernelDataLimit
}

// InKernelTextSegment is true if address is in [ktext base, ktext limit).
func (l Limits) InKernelTextSegment(address uint32) bool {
	return address >= l.KernelTextBase && address < l.KernelTextLimit
}

// Classify returns the area containing the address and the offset of the
// address relative to that area's base. For the stack the offset is
// measured downwards from the stack base.
//
// Segments are tested in a fixed order and the first match wins.
func (l Limits) Classify(address uint32) (Area, uint32) {
	// note that the order of these filters is important
	switch {
	case l.InDataSegment(address):
		return Data, address - l.DataSegmentBase
	case l.InStackSegment(address):
		return Stack, l.StackBase - address
	case l.InMMIOSegment(address):
		return MMIO, address - l.MMIOBase
	case l.InTextSegment(address):
		return Text, address - l.TextBase
	case l.InKernelDataSegment(address):
		return KernelData, address - l.KernelDataBase
	case l.InKernelTextSegment(address):
		return KernelText, address - l.KernelTextBase
	}
	return Undefined, 0
}

// Base returns the base address of the area.
func (l Limits) Base(area Area) uint32 {
	switch area {
	case Data:
		return l.DataSegmentBase
	case Stack:
		return l.StackBase
	case MMIO:
		return l.MMIOBase
	case Text:
		return l.TextBase
	case KernelData:
		return l.KernelDataBase
	case KernelText:
		return l.KernelTextBase
	}
	return 0
}

// Limit returns the effective limit of the area.
func (l Limits) Limit(area Area) uint32 {
	switch area {
	case Data:
		return l.DataSegmentLimit
	case Stack:
		return l.StackLimit
	case MMIO:
		return l.MMIOLimit
	case Text:
		return l.TextLimit
	case KernelData:
		return l.KernelDataLimit
	case KernelText:
		return l.KernelTextLimit
	}
	return 0
}

// Span returns the lowest and highest word address of the area.
func (l Limits) Span(area Area) (uint32, uint32) {
	if area == Stack {
		return (l.StackLimit + WordLengthBytes) &^ (WordLengthBytes - 1), l.StackBase
	}
	base := l.Base(area)
	limit := l.Limit(area)
	if limit <= base {
		return base, base
	}
	return base, (limit - 1) &^ (WordLengthBytes - 1)
}
