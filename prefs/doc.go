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

// Package prefs provides the values used by the preferences of the simulated
// machine. Values are safe to read from any goroutine. The Bool, String and
// Int types can have hooks attached that run before and after a new value is
// stored. A pre-hook that returns an error prevents the new value from being
// stored, which is how a preference can validate its input. A post-hook is
// how a preference change is turned into an action, for example switching the
// memory configuration.
//
// Values are collected under a key in a Group. A Group can be listed and
// individual values can be set by key, which is what the monitor and the
// command line use.
//
// The command line stack allows preferences to be specified on the command
// line as a single string of the form:
//
//	key::value; key::value
//
// The group for the most recent command line is consumed with
// Group.ApplyCommandLine().
package prefs
