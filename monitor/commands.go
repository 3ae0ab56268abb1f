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

package monitor

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/gomars/curated"
	"github.com/jetsetilly/gomars/hardware/memory"
	"github.com/jetsetilly/gomars/hardware/memory/dump"
	"github.com/jetsetilly/gomars/hardware/memory/memorymap"
	"github.com/jetsetilly/gomars/hardware/peripherals/terminal"
	"github.com/jetsetilly/gomars/logger"
	"github.com/jetsetilly/gomars/notifications"
	"github.com/jetsetilly/gomars/prefs"
)

// monitor keywords
const (
	cmdPeek     = "PEEK"
	cmdPoke     = "POKE"
	cmdDump     = "DUMP"
	cmdConfig   = "CONFIG"
	cmdSummary  = "SUMMARY"
	cmdHeap     = "HEAP"
	cmdWatch    = "WATCH"
	cmdUnwatch  = "UNWATCH"
	cmdSMC      = "SMC"
	cmdTrace    = "TRACE"
	cmdStmt     = "STMT"
	cmdRegs     = "REGS"
	cmdPrefs    = "PREFS"
	cmdReset    = "RESET"
	cmdKeys     = "KEYS"
	cmdKeyboard = "KEYBOARD"
	cmdDelay    = "DELAY"
	cmdLog      = "LOG"
	cmdGraph    = "GRAPH"
	cmdHelp     = "HELP"
	cmdQuit     = "QUIT"
)

// Error patterns returned by Execute().
const (
	UnknownCommand     = "monitor: unknown command (%s)"
	IncorrectArguments = "monitor: %s: usage %s"
	NoKeyboard         = "monitor: keyboard mode is not available"
	InvalidValue       = "monitor: not a 32 bit value (%s)"
	InvalidLength      = "monitor: access length must be 1, 2 or 4 (%s)"
	TextPeekLength     = "monitor: text can only be peeked a word at a time"
	ValueTooLarge      = "monitor: value does not fit in %d bytes (0x%x)"
	NoHelp             = "monitor: no help for %s"
)

// the narrowest output that can fit a line of the segment dump format
const segmentWidth = 101

func (mon *Monitor) command(cmd string, args []string) error {
	switch cmd {
	case cmdPeek:
		return mon.peek(args)
	case cmdPoke:
		return mon.poke(args)
	case cmdDump:
		return mon.dump(args)
	case cmdConfig:
		return mon.config(args)
	case cmdSummary:
		if len(args) > 0 {
			return incorrect(cmd)
		}
		io.WriteString(mon.output, mon.MIPS.Mem.Configuration().Summary())
	case cmdHeap:
		return mon.heap(args)
	case cmdWatch:
		return mon.watch(args)
	case cmdUnwatch:
		if len(args) > 0 {
			return incorrect(cmd)
		}
		n := mon.MIPS.Mem.Unsubscribe(mon.watcher)
		fmt.Fprintf(mon.output, "%d watches removed\n", n)
	case cmdSMC:
		return mon.toggle(cmd, args, &mon.MIPS.Prefs.SelfModifyingCode, "self-modifying code")
	case cmdTrace:
		return mon.toggle(cmd, args, &mon.MIPS.Prefs.Trace, "trace")
	case cmdStmt:
		return mon.stmt(args)
	case cmdRegs:
		if len(args) > 0 {
			return incorrect(cmd)
		}
		io.WriteString(mon.output, mon.MIPS.Regs.String())
	case cmdPrefs:
		if len(args) > 0 {
			return incorrect(cmd)
		}
		fmt.Fprintln(mon.output, mon.MIPS.Prefs.String())
	case cmdReset:
		if len(args) > 0 {
			return incorrect(cmd)
		}
		return mon.MIPS.Reset()
	case cmdKeys:
		if len(args) == 0 {
			return incorrect(cmd)
		}
		for _, k := range []byte(strings.Join(args, " ")) {
			mon.dev.KeyPressed(k)
		}
		fmt.Fprintf(mon.output, "%d keys pending\n", mon.dev.Pending())
	case cmdKeyboard:
		if len(args) > 0 {
			return incorrect(cmd)
		}
		return mon.keyboard()
	case cmdDelay:
		if len(args) != 1 {
			return incorrect(cmd)
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return incorrect(cmd)
		}
		mon.dev.SetTransmitterDelay(n)
	case cmdLog:
		n := 10
		if len(args) > 1 {
			return incorrect(cmd)
		}
		if len(args) == 1 {
			var err error
			n, err = strconv.Atoi(args[0])
			if err != nil || n < 0 {
				return incorrect(cmd)
			}
		}
		logger.Tail(mon.output, n)
	case cmdGraph:
		if len(args) != 1 {
			return incorrect(cmd)
		}
		area, err := memorymap.ParseArea(args[0])
		if err != nil {
			return err
		}
		layout := mon.MIPS.Mem.Usage(area).Layout()
		memviz.Map(mon.output, &layout)
	case cmdHelp:
		return mon.help(args)
	case cmdQuit:
		mon.quit = true
	default:
		return curated.Errorf(UnknownCommand, cmd)
	}

	return nil
}

func incorrect(cmd string) error {
	return curated.Errorf(IncorrectArguments, cmd, usage[cmd])
}

// parseAddress accepts decimal or 0x prefixed hexadecimal values that fit in
// 32 bits.
func parseAddress(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, curated.Errorf(InvalidValue, s)
	}
	return uint32(v), nil
}

// parseLength accepts the access lengths 1, 2 and 4.
func parseLength(s string) (int, error) {
	switch s {
	case "1", "2", "4":
		return strconv.Atoi(s)
	}
	return 0, curated.Errorf(InvalidLength, s)
}

func (mon *Monitor) peek(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return incorrect(cmdPeek)
	}

	address, err := parseAddress(args[0])
	if err != nil {
		return err
	}

	length := 4
	if len(args) > 1 {
		length, err = parseLength(args[1])
		if err != nil {
			return err
		}
	}

	mem := mon.MIPS.Mem
	area, _ := mem.Limits().Classify(address)

	// statements are peeked as words whatever the self-modifying code setting
	if area.IsText() {
		if length != 4 {
			return curated.Errorf(TextPeekLength)
		}
		v, present, err := mem.GetRawWordOrNull(address)
		if err != nil {
			return err
		}
		if !present {
			fmt.Fprintf(mon.output, "0x%08x [%s] no statement\n", address, area)
			return nil
		}
		fmt.Fprintf(mon.output, "0x%08x [%s] 0x%08x\n", address, area, v)
		return nil
	}

	v, err := mem.GetNoNotify(address, length)
	if err != nil {
		return err
	}
	fmt.Fprintf(mon.output, "0x%08x [%s] 0x%0*x\n", address, area, length*2, v)

	return nil
}

// poke writes to memory the way a program would. Alignment is checked and
// observers are notified.
func (mon *Monitor) poke(args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return incorrect(cmdPoke)
	}

	address, err := parseAddress(args[0])
	if err != nil {
		return err
	}
	value, err := parseAddress(args[1])
	if err != nil {
		return err
	}

	length := 4
	if len(args) > 2 {
		length, err = parseLength(args[2])
		if err != nil {
			return err
		}
	}

	// the value must fit the access length
	if length < 4 && value>>(length*8) != 0 {
		return curated.Errorf(ValueTooLarge, length, value)
	}

	mem := mon.MIPS.Mem

	var old uint32
	switch length {
	case 1:
		var b uint8
		b, err = mem.SetByte(address, uint8(value))
		old = uint32(b)
	case 2:
		var h uint16
		h, err = mem.SetHalf(address, uint16(value))
		old = uint32(h)
	default:
		old, err = mem.SetWord(address, value)
	}
	if err != nil {
		return err
	}

	area, _ := mem.Limits().Classify(address)
	fmt.Fprintf(mon.output, "0x%08x [%s] 0x%0*x -> 0x%0*x\n", address, area, length*2, old, length*2, value)

	return nil
}

func (mon *Monitor) dump(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return incorrect(cmdDump)
	}

	area, err := memorymap.ParseArea(args[0])
	if err != nil {
		return err
	}

	f := dump.HexText
	if mon.width >= segmentWidth {
		f = dump.Segment
	}
	if len(args) > 1 {
		f, err = dump.ByName(args[1])
		if err != nil {
			return err
		}
	}

	mem := mon.MIPS.Mem
	l := mem.Limits()

	var first, last uint32

	if area == memorymap.Stack {
		// the stack is dumped from the stack pointer upwards
		low, high := l.Span(area)
		sp, err := mon.MIPS.Regs.Get("$sp")
		if err != nil {
			return err
		}
		first = min(max(sp&^3, low), high)
		last = high
	} else {
		// begin at the first allocated block
		layout := mem.Usage(area).Layout()
		if len(layout) == 0 {
			fmt.Fprintf(mon.output, "nothing in %s\n", area)
			return nil
		}
		blockLength := uint32(memorymap.BlockLengthWords * memorymap.WordLengthBytes)
		if area.IsText() {
			blockLength = memorymap.TextBlockLengthWords * memorymap.WordLengthBytes
		}
		first = l.Base(area) + uint32(layout[0].Index)*blockLength
		end, err := mem.FirstNullInRange(first, l.Limit(area))
		if err != nil {
			return err
		}
		if end == first {
			fmt.Fprintf(mon.output, "nothing in %s\n", area)
			return nil
		}
		last = end - memorymap.WordLengthBytes
	}

	n, err := f.Dump(mon.output, mem, first, last)
	if err != nil {
		return err
	}
	if n == 0 {
		fmt.Fprintf(mon.output, "nothing in %s\n", area)
	}

	return nil
}

func (mon *Monitor) config(args []string) error {
	switch len(args) {
	case 0:
		current := mon.MIPS.Mem.Configuration()
		for _, cfg := range memorymap.Configurations {
			mark := ' '
			if cfg == current {
				mark = '*'
			}
			fmt.Fprintf(mon.output, "%c %-18s %s\n", mark, cfg.ID, cfg.Description)
		}
		return nil
	case 1:
		cfg, err := memorymap.ByName(args[0])
		if err != nil {
			return err
		}
		return mon.MIPS.SetConfiguration(cfg)
	}
	return incorrect(cmdConfig)
}

func (mon *Monitor) heap(args []string) error {
	mem := mon.MIPS.Mem

	switch len(args) {
	case 0:
		fmt.Fprintf(mon.output, "next heap address 0x%08x\n", mem.HeapAddress())
		return nil
	case 1:
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return incorrect(cmdHeap)
		}
		address, err := mem.AllocateBytesFromHeap(n)
		if err != nil {
			return err
		}
		fmt.Fprintf(mon.output, "0x%08x\n", address)
		return nil
	}
	return incorrect(cmdHeap)
}

func (mon *Monitor) watch(args []string) error {
	mem := mon.MIPS.Mem

	switch len(args) {
	case 0:
		if _, err := mem.SubscribeAll(mon.watcher); err != nil {
			return err
		}
		io.WriteString(mon.output, "watching all memory\n")
		return nil
	case 1, 2:
		low, err := parseAddress(args[0])
		if err != nil {
			return err
		}
		high := low
		if len(args) > 1 {
			high, err = parseAddress(args[1])
			if err != nil {
				return err
			}
		}
		if _, err := mem.Subscribe(mon.watcher, low, high); err != nil {
			return err
		}
		fmt.Fprintf(mon.output, "watching 0x%08x -> 0x%08x\n", low, high)
		return nil
	}
	return incorrect(cmdWatch)
}

func (mon *Monitor) toggle(cmd string, args []string, p *prefs.Bool, label string) error {
	switch len(args) {
	case 0:
	case 1:
		switch strings.ToUpper(args[0]) {
		case "ON":
			if err := p.Set(true); err != nil {
				return err
			}
		case "OFF":
			if err := p.Set(false); err != nil {
				return err
			}
		default:
			return incorrect(cmd)
		}
	default:
		return incorrect(cmd)
	}

	state := "off"
	if p.Value() {
		state = "on"
	}
	fmt.Fprintf(mon.output, "%s: %s\n", label, state)

	return nil
}

func (mon *Monitor) stmt(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return incorrect(cmdStmt)
	}

	address, err := parseAddress(args[0])
	if err != nil {
		return err
	}

	mem := mon.MIPS.Mem

	if len(args) == 2 {
		encoding, err := parseAddress(args[1])
		if err != nil {
			return err
		}
		if err := mem.StoreStatement(address, memory.NewRawStatement(encoding, address)); err != nil {
			return err
		}
	}

	stmt, err := mem.FetchStatementNoNotify(address)
	if err != nil {
		return err
	}
	if stmt == nil {
		fmt.Fprintf(mon.output, "0x%08x no statement\n", address)
		return nil
	}
	fmt.Fprintf(mon.output, "0x%08x 0x%08x\n", stmt.Address(), stmt.Encoding())

	return nil
}

func (mon *Monitor) keyboard() error {
	if mon.host == nil || mon.input == nil {
		return curated.Errorf(NoKeyboard)
	}

	if err := mon.host.EnterRaw(); err != nil {
		return err
	}
	mon.Notify(notifications.NotifyTerminalAttached)

	_, ferr := terminal.Feed(mon.dev, mon.input, keyboardStop)

	err := mon.host.Restore()
	mon.Notify(notifications.NotifyTerminalDetached)

	if ferr != nil {
		return ferr
	}
	return err
}
