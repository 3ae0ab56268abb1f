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
	"strings"

	"github.com/jetsetilly/gomars/curated"
	"github.com/jetsetilly/gomars/hardware/memory/dump"
)

// commands in the order they are listed by HELP
var commands = []string{
	cmdPeek, cmdPoke, cmdDump, cmdStmt,
	cmdConfig, cmdSummary, cmdHeap,
	cmdWatch, cmdUnwatch,
	cmdSMC, cmdTrace, cmdPrefs,
	cmdRegs, cmdReset,
	cmdKeys, cmdKeyboard, cmdDelay,
	cmdLog, cmdGraph,
	cmdHelp, cmdQuit,
}

var usage = map[string]string{
	cmdPeek:     "PEEK address [1|2|4]",
	cmdPoke:     "POKE address value [1|2|4]",
	cmdDump:     "DUMP area [format]",
	cmdStmt:     "STMT address [encoding]",
	cmdConfig:   "CONFIG [configuration]",
	cmdSummary:  "SUMMARY",
	cmdHeap:     "HEAP [bytes]",
	cmdWatch:    "WATCH [low [high]]",
	cmdUnwatch:  "UNWATCH",
	cmdSMC:      "SMC [ON|OFF]",
	cmdTrace:    "TRACE [ON|OFF]",
	cmdPrefs:    "PREFS",
	cmdRegs:     "REGS",
	cmdReset:    "RESET",
	cmdKeys:     "KEYS text",
	cmdKeyboard: "KEYBOARD",
	cmdDelay:    "DELAY accesses",
	cmdLog:      "LOG [entries]",
	cmdGraph:    "GRAPH area",
	cmdHelp:     "HELP [command]",
	cmdQuit:     "QUIT",
}

var help = map[string]string{
	cmdPeek:     "Read memory without notifying observers. Text is read a statement at a time",
	cmdPoke:     "Write memory as a program would. Observers are notified",
	cmdDump:     "Dump an area of memory up to the first word that has never been written",
	cmdStmt:     "Show the statement at an address, storing a raw statement first if an encoding is given",
	cmdConfig:   "List memory configurations or change to the named configuration. Changing configuration clears memory",
	cmdSummary:  "Print the address map of the current configuration",
	cmdHeap:     "Allocate bytes from the heap or show the next heap address",
	cmdWatch:    "Print every access to the address range. All of memory is watched if no range is given",
	cmdUnwatch:  "Remove every watch",
	cmdSMC:      "Allow the text segments to be read and written as data",
	cmdTrace:    "Log every completed store",
	cmdPrefs:    "Show preference values",
	cmdRegs:     "Show the register file",
	cmdReset:    "Clear memory and reset registers",
	cmdKeys:     "Press keys on the keyboard peripheral",
	cmdKeyboard: "Send key presses from the terminal to the keyboard peripheral until ctrl-d",
	cmdDelay:    "Number of accesses to the display peripheral before the transmitter is ready again",
	cmdLog:      "Show the most recent log entries",
	cmdGraph:    "Write a graphviz description of the blocks allocated to an area",
	cmdHelp:     "List commands or show help for a command",
	cmdQuit:     "Leave the monitor",
}

func (mon *Monitor) help(args []string) error {
	switch len(args) {
	case 0:
		for _, c := range commands {
			fmt.Fprintf(mon.output, "%-30s %s\n", usage[c], help[c])
		}

		io.WriteString(mon.output, "\nareas: data, stack, mmio, text, kdata, ktext\n")

		formats := make([]string, 0, len(dump.Formats))
		for _, f := range dump.Formats {
			formats = append(formats, f.Name)
		}
		fmt.Fprintf(mon.output, "dump formats: %s\n", strings.Join(formats, ", "))

		return nil
	case 1:
		c := strings.ToUpper(args[0])
		h, ok := help[c]
		if !ok {
			return curated.Errorf(NoHelp, args[0])
		}
		fmt.Fprintf(mon.output, "%s\n%s\n", usage[c], h)
		return nil
	}
	return incorrect(cmdHelp)
}
