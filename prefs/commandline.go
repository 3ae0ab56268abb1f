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
	"slices"
	"strings"
	"sync"
)

// commandLine is a single group of preferences taken from the command line.
// Entries are removed as they are applied so that whatever remains when the
// group is popped was not recognised.
type commandLine map[string]Value

var (
	commandLineCrit  sync.Mutex
	commandLineStack []commandLine
)

// SizeCommandLineStack returns the number of groups that have been added with
// PushCommandLineStack().
func SizeCommandLineStack() int {
	commandLineCrit.Lock()
	defer commandLineCrit.Unlock()
	return len(commandLineStack)
}

// PushCommandLineStack parses a preferences string and adds it to the stack
// as a new group. Entries are separated by semicolons and each entry is of
// the form key::value. Malformed entries are ignored.
//
//	mips.selfModifyingCode::true; mips.memoryConfiguration::CompactTextAtZero
func PushCommandLineStack(prefs string) {
	cl := make(commandLine)

	for _, entry := range strings.Split(prefs, ";") {
		key, value, ok := strings.Cut(entry, "::")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		cl[key] = strings.TrimSpace(value)
	}

	commandLineCrit.Lock()
	defer commandLineCrit.Unlock()
	commandLineStack = append(commandLineStack, cl)
}

// PopCommandLineStack removes the most recent group added by
// PushCommandLineStack(). Returns the entries of the group that were never
// applied, in the same format accepted by PushCommandLineStack() and sorted
// by key.
func PopCommandLineStack() string {
	commandLineCrit.Lock()
	defer commandLineCrit.Unlock()

	if len(commandLineStack) == 0 {
		return ""
	}

	top := commandLineStack[len(commandLineStack)-1]
	commandLineStack = commandLineStack[:len(commandLineStack)-1]

	keys := make([]string, 0, len(top))
	for k := range top {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	unused := make([]string, 0, len(keys))
	for _, k := range keys {
		unused = append(unused, fmt.Sprintf("%s::%v", k, top[k]))
	}

	return strings.Join(unused, "; ")
}

// GetCommandLinePref returns the value for the key in the most recent group.
// The entry is removed from the group.
func GetCommandLinePref(key string) (bool, Value) {
	commandLineCrit.Lock()
	defer commandLineCrit.Unlock()

	if len(commandLineStack) == 0 {
		return false, nil
	}

	top := commandLineStack[len(commandLineStack)-1]
	v, ok := top[key]
	if ok {
		delete(top, key)
	}
	return ok, v
}
