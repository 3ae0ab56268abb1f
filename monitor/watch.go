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
	"sync"

	"github.com/jetsetilly/gomars/hardware/memory/observers"
)

// watcher prints every memory access it is notified of.
type watcher struct {
	crit   sync.Mutex
	output io.Writer
}

// MemoryAccessed implements the observers.Observer interface.
func (w *watcher) MemoryAccessed(n observers.Notice) {
	w.crit.Lock()
	defer w.crit.Unlock()
	fmt.Fprintf(w.output, "watch: %s\n", n)
}
