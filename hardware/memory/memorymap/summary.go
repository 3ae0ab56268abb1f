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
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Summary returns a single multiline string detailing every segment in the
// configuration, lowest address first. Useful for reference.
func (cfg *Configuration) Summary() string {
	l := cfg.Limits()

	s := strings.Builder{}

	digits := 8
	if cfg.IsCompact() {
		digits = 4
	}

	areas := slices.Clone(Areas)
	slices.SortStableFunc(areas, func(a, b Area) int {
		la, _ := l.Span(a)
		lb, _ := l.Span(b)
		return cmp.Compare(la, lb)
	})

	s.WriteString(fmt.Sprintf("%s\n", cfg.Description))
	for _, a := range areas {
		lo, hi := l.Span(a)
		s.WriteString(fmt.Sprintf("%0*x -> %0*x\t%s\n", digits, lo, digits, hi, a.String()))
	}

	return s.String()
}
