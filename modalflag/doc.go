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

// Package modalflag wraps the flag package so that a command line can select
// a mode before its flags are parsed. Each mode has its own flag set.
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("MONITOR", "MAP")
//	r, err := md.Parse()
//
// The first sub-mode is the default and is selected when the first argument
// is not a sub-mode. After the mode has been selected, NewMode() starts a new
// flag set for the mode's own flags and Parse() is called again. Sub-mode
// names are case insensitive.
//
// Parse() returns ParseHelp if -help was requested, in which case the help
// message has already been written to Output.
package modalflag
