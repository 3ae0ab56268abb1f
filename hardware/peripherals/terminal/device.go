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

package terminal

import (
	"fmt"
	"io"
	"sync"

	"github.com/jetsetilly/gomars/hardware/memory/memorymap"
	"github.com/jetsetilly/gomars/hardware/memory/observers"
	"github.com/jetsetilly/gomars/logger"
)

// Register offsets from the memory-mapped IO base.
const (
	ReceiverControl    = 0x0
	ReceiverData       = 0x4
	TransmitterControl = 0x8
	TransmitterData    = 0xc
)

// ready bit in both control registers
const ready = 0x01

// Memory is the part of memory.Memory used by the Device.
type Memory interface {
	Limits() memorymap.Limits
	GetWordNoNotify(address uint32) (uint32, error)
	SetWordNoNotify(address uint32, value uint32) (uint32, error)
	Subscribe(obs observers.Observer, low uint32, high uint32) (observers.SubscriptionID, error)
	Unsubscribe(obs observers.Observer) int
}

// Device is the keyboard and display peripheral.
type Device struct {
	crit sync.Mutex

	mem  Memory
	base uint32

	// keys waiting to be delivered to the receiver data register
	queue []byte

	// transmitted bytes are written here
	display io.Writer

	// number of observed accesses after a transmission before the
	// transmitter is ready again. countdown is the number remaining
	delay     int
	countdown int
}

// NewDevice is the preferred method of initialisation for the Device type.
// Transmitted bytes are written to display.
func NewDevice(mem Memory, display io.Writer) *Device {
	return &Device{
		mem:     mem,
		display: display,
	}
}

// Attach the device to memory. The registers are placed at the base of the
// memory-mapped IO segment of the current configuration. Attach should be
// called again if the configuration changes or if memory is cleared.
func (dev *Device) Attach() error {
	dev.crit.Lock()
	defer dev.crit.Unlock()

	dev.mem.Unsubscribe(dev)

	dev.base = dev.mem.Limits().MMIOBase
	dev.queue = dev.queue[:0]
	dev.countdown = 0

	if _, err := dev.mem.Subscribe(dev, dev.base, dev.base+TransmitterData); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}

	if _, err := dev.mem.SetWordNoNotify(dev.base+ReceiverControl, 0); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if _, err := dev.mem.SetWordNoNotify(dev.base+TransmitterControl, ready); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}

	logger.Logf(logger.Allow, "terminal", "attached at 0x%08x", dev.base)

	return nil
}

// SetTransmitterDelay sets the number of accesses to the device registers
// that must be observed after a transmission before the transmitter is ready
// again. A delay of zero means the transmitter is ready immediately.
func (dev *Device) SetTransmitterDelay(delay int) {
	dev.crit.Lock()
	defer dev.crit.Unlock()
	dev.delay = max(delay, 0)
}

// Detach the device from memory.
func (dev *Device) Detach() {
	dev.crit.Lock()
	defer dev.crit.Unlock()
	dev.mem.Unsubscribe(dev)
	dev.queue = dev.queue[:0]
}

// Base returns the address of the receiver control register.
func (dev *Device) Base() uint32 {
	dev.crit.Lock()
	defer dev.crit.Unlock()
	return dev.base
}

// Pending returns the number of keys waiting to be delivered.
func (dev *Device) Pending() int {
	dev.crit.Lock()
	defer dev.crit.Unlock()
	return len(dev.queue)
}

// KeyPressed queues the key for delivery to the receiver data register.
func (dev *Device) KeyPressed(key byte) {
	dev.crit.Lock()
	defer dev.crit.Unlock()
	dev.queue = append(dev.queue, key)
	dev.deliver()
}

// deliver the next key if the receiver is not already holding one. must be
// called with the critical section locked.
func (dev *Device) deliver() {
	if len(dev.queue) == 0 {
		return
	}

	rc, err := dev.mem.GetWordNoNotify(dev.base + ReceiverControl)
	if err != nil {
		logger.Log(logger.Allow, "terminal", err)
		return
	}
	if rc&ready == ready {
		return
	}

	key := dev.queue[0]
	dev.queue = dev.queue[1:]

	if _, err := dev.mem.SetWordNoNotify(dev.base+ReceiverData, uint32(key)); err != nil {
		logger.Log(logger.Allow, "terminal", err)
		return
	}
	if _, err := dev.mem.SetWordNoNotify(dev.base+ReceiverControl, rc|ready); err != nil {
		logger.Log(logger.Allow, "terminal", err)
	}
}

// MemoryAccessed implements the observers.Observer interface.
func (dev *Device) MemoryAccessed(n observers.Notice) {
	dev.crit.Lock()
	defer dev.crit.Unlock()

	if dev.countdown > 0 {
		dev.countdown--
		if dev.countdown == 0 {
			dev.setTransmitterReady(true)
		}
	}

	switch {
	case n.Kind == observers.Read && n.Address&^3 == dev.base+ReceiverData:
		rc, err := dev.mem.GetWordNoNotify(dev.base + ReceiverControl)
		if err != nil {
			logger.Log(logger.Allow, "terminal", err)
			return
		}
		if _, err := dev.mem.SetWordNoNotify(dev.base+ReceiverControl, rc&^ready); err != nil {
			logger.Log(logger.Allow, "terminal", err)
			return
		}
		dev.deliver()

	case n.Kind == observers.Write && n.Address == dev.base+TransmitterData:
		dev.setTransmitterReady(false)

		if dev.display != nil {
			if _, err := dev.display.Write([]byte{byte(n.Value)}); err != nil {
				logger.Log(logger.Allow, "terminal", err)
			}
		}

		if dev.delay == 0 {
			dev.setTransmitterReady(true)
		} else {
			dev.countdown = dev.delay
		}
	}
}

// must be called with the critical section locked.
func (dev *Device) setTransmitterReady(set bool) {
	tc, err := dev.mem.GetWordNoNotify(dev.base + TransmitterControl)
	if err != nil {
		logger.Log(logger.Allow, "terminal", err)
		return
	}
	if set {
		tc |= ready
	} else {
		tc &^= ready
	}
	if _, err := dev.mem.SetWordNoNotify(dev.base+TransmitterControl, tc); err != nil {
		logger.Log(logger.Allow, "terminal", err)
	}
}
