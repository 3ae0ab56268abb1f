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

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/jetsetilly/gomars/hardware/memory/memorymap"
	"github.com/jetsetilly/gomars/hardware/peripherals/terminal"
	"github.com/jetsetilly/gomars/hardware/preferences"
	"github.com/jetsetilly/gomars/logger"
	"github.com/jetsetilly/gomars/modalflag"
	"github.com/jetsetilly/gomars/monitor"
	"github.com/jetsetilly/gomars/prefs"
	"github.com/jetsetilly/gomars/statsview"
)

// exit status values
const (
	exitOK         = 0
	exitParseError = 10
	exitModeError  = 20
)

func main() {
	os.Exit(launch(os.Args[1:], os.Stdin, os.Stdout))
}

// launch the mode selected by the arguments. Returns the exit status.
func launch(args []string, input *os.File, output io.Writer) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.AddSubModes("MONITOR", "MAP")

	r, err := md.Parse()
	switch r {
	case modalflag.ParseHelp:
		return exitOK
	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return exitParseError
	}

	switch md.Mode() {
	case "MONITOR":
		err = monitorMode(md, input, output)
	case "MAP":
		err = mapMode(md, output)
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md.String(), err)
		return exitModeError
	}

	return exitOK
}

func configHelp() string {
	ids := make([]string, 0, len(memorymap.Configurations))
	for _, cfg := range memorymap.Configurations {
		ids = append(ids, cfg.ID)
	}
	return strings.Join(ids, ", ")
}

func monitorMode(md *modalflag.Modes, input *os.File, output io.Writer) error {
	md.NewMode()

	config := md.AddString("config", "", fmt.Sprintf("memory configuration: %s", configHelp()))
	smc := md.AddBool("smc", false, "allow self-modifying code")
	trace := md.AddBool("trace", false, "log every completed store")
	prefsArg := md.AddString("prefs", "", "preferences to apply (key::value; key::value)")
	keyboard := md.AddBool("keyboard", false, "start in keyboard mode")
	stats := md.AddBool("statsview", false, "run the runtime stats server")
	log := md.AddBool("log", false, "echo log to output")

	r, err := md.Parse()
	if r != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	if *log {
		logger.SetEcho(output)
		defer logger.SetEcho(nil)
	}

	if *stats {
		if err := statsview.Launch(output); err != nil {
			return err
		}
	}

	prefs.PushCommandLineStack(*prefsArg)
	p, err := preferences.NewPreferences()
	if unused := prefs.PopCommandLineStack(); unused != "" {
		logger.Logf(logger.Allow, "gomars", "unknown preferences: %s", unused)
	}
	if err != nil {
		return err
	}

	if *config != "" {
		if err := p.MemoryConfiguration.Set(*config); err != nil {
			return err
		}
	}
	if *smc {
		if err := p.SelfModifyingCode.Set(true); err != nil {
			return err
		}
	}
	if *trace {
		if err := p.Trace.Set(true); err != nil {
			return err
		}
	}

	mon, err := monitor.NewMonitor(p, output)
	if err != nil {
		return err
	}

	host, err := terminal.NewHost(input)
	if err != nil {
		return err
	}
	mon.SetHost(host)

	if host.IsTerminal() {
		mon.SetPrompt("> ")
	}
	if f, ok := output.(*os.File); ok {
		w, _ := terminal.Size(f)
		mon.SetWidth(w)
	}

	// make sure the terminal is usable if the monitor is interrupted while
	// in keyboard mode
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	defer func() {
		signal.Stop(intChan)
		close(intChan)
	}()
	go func() {
		if _, ok := <-intChan; ok {
			host.Restore()
			os.Exit(exitOK)
		}
	}()

	var initial []string
	if *keyboard {
		initial = append(initial, "KEYBOARD")
	}

	return mon.Run(input, initial...)
}

func mapMode(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	config := md.AddString("config", "", fmt.Sprintf("memory configuration: %s", configHelp()))
	values := md.AddBool("values", false, "list every value of the configuration")

	r, err := md.Parse()
	if r != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	cfg, err := memorymap.ByName(*config)
	if err != nil {
		return err
	}

	io.WriteString(output, cfg.Summary())

	if *values {
		io.WriteString(output, "\n")
		for _, it := range cfg.Items() {
			fmt.Fprintf(output, "%-22s 0x%08x\n", it.Name, it.Value)
		}
	}

	return nil
}
