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
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jetsetilly/gomars/curated"
	"github.com/jetsetilly/gomars/hardware"
	"github.com/jetsetilly/gomars/hardware/peripherals/terminal"
	"github.com/jetsetilly/gomars/hardware/preferences"
	"github.com/jetsetilly/gomars/logger"
	"github.com/jetsetilly/gomars/notifications"
)

// the key that ends keyboard mode (ctrl-d)
const keyboardStop = 0x04

// Monitor is the interactive front end to a MIPS machine.
type Monitor struct {
	MIPS *hardware.MIPS
	dev  *terminal.Device

	output io.Writer

	// input is nil until Run() is called
	input *bufio.Reader

	// may be nil, in which case the KEYBOARD command is not available
	host *terminal.Host

	watcher *watcher

	// written before every command read by Run(). empty by default
	prompt string

	// width of the output in columns. decides the default dump format
	width int

	quit bool
}

// NewMonitor is the preferred method of initialisation for the Monitor type.
// If p is nil a new set of preferences will be created.
func NewMonitor(p *preferences.Preferences, output io.Writer) (*Monitor, error) {
	mon := &Monitor{
		output:  output,
		watcher: &watcher{output: output},
		width:   80,
	}

	var err error
	mon.MIPS, err = hardware.NewMIPS(p, mon)
	if err != nil {
		return nil, curated.Errorf("monitor: %v", err)
	}

	mon.dev = terminal.NewDevice(mon.MIPS.Mem, output)
	if err := mon.dev.Attach(); err != nil {
		return nil, curated.Errorf("monitor: %v", err)
	}

	return mon, nil
}

// SetHost sets the host used by the KEYBOARD command.
func (mon *Monitor) SetHost(host *terminal.Host) {
	mon.host = host
}

// SetPrompt sets the string written before every command read by Run().
func (mon *Monitor) SetPrompt(prompt string) {
	mon.prompt = prompt
}

// SetWidth sets the width of the output in columns.
func (mon *Monitor) SetWidth(width int) {
	mon.width = width
}

// Device returns the keyboard and display peripheral.
func (mon *Monitor) Device() *terminal.Device {
	return mon.dev
}

// Notify implements the notifications.Notify interface.
func (mon *Monitor) Notify(notice notifications.Notice) error {
	switch notice {
	case notifications.NotifyMemoryConfiguration:
		// the peripheral may have moved with the memory-mapped IO segment
		if mon.dev != nil {
			if err := mon.dev.Attach(); err != nil {
				return curated.Errorf("monitor: %v", err)
			}
		}
		fmt.Fprintf(mon.output, "memory configuration is now %s\n", mon.MIPS.Mem.Configuration())
	case notifications.NotifyMemoryCleared:
		if mon.dev != nil {
			if err := mon.dev.Attach(); err != nil {
				return curated.Errorf("monitor: %v", err)
			}
		}
		io.WriteString(mon.output, "memory cleared\n")
	case notifications.NotifyTerminalAttached:
		io.WriteString(mon.output, "keyboard mode (ctrl-d to end)\n")
	case notifications.NotifyTerminalDetached:
		io.WriteString(mon.output, "\nkeyboard mode ended\n")
	}
	return nil
}

// Run reads and executes commands from input until the QUIT command or the
// end of input. The initial commands are executed before anything is read.
// Errors from commands are written to the output and do not stop the
// monitor.
func (mon *Monitor) Run(input io.Reader, initial ...string) error {
	mon.input = bufio.NewReader(input)
	defer func() {
		mon.input = nil
	}()

	for _, cmd := range initial {
		if err := mon.Execute(cmd); err != nil {
			fmt.Fprintf(mon.output, "* %v\n", err)
		}
	}

	for !mon.quit {
		io.WriteString(mon.output, mon.prompt)

		line, err := mon.input.ReadString('\n')
		if line != "" {
			if err := mon.Execute(line); err != nil {
				fmt.Fprintf(mon.output, "* %v\n", err)
			}
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return curated.Errorf("monitor: %v", err)
		}
	}

	return nil
}

// Quit returns true if the QUIT command has been executed.
func (mon *Monitor) Quit() bool {
	return mon.quit
}

// Execute a single command line.
func (mon *Monitor) Execute(line string) error {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return nil
	}
	cmd := strings.ToUpper(tokens[0])

	err := mon.command(cmd, tokens[1:])
	if err != nil {
		logger.Logf(logger.Allow, "monitor", "%s: %v", cmd, err)
	}
	return err
}
