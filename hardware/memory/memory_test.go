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

package memory_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/jetsetilly/gomars/hardware/memory"
	"github.com/jetsetilly/gomars/hardware/memory/memorymap"
	"github.com/jetsetilly/gomars/hardware/memory/observers"
	"github.com/jetsetilly/gomars/logger"
	"github.com/jetsetilly/gomars/test"
)

type settings struct {
	smc   bool
	trace bool
}

func (s *settings) SelfModifyingCodeEnabled() bool {
	return s.smc
}

func (s *settings) AllowLogging() bool {
	return s.trace
}

type recorder struct {
	crit    sync.Mutex
	notices []observers.Notice
}

func (r *recorder) MemoryAccessed(n observers.Notice) {
	r.crit.Lock()
	defer r.crit.Unlock()
	r.notices = append(r.notices, n)
}

func (r *recorder) reset() {
	r.crit.Lock()
	defer r.crit.Unlock()
	r.notices = r.notices[:0]
}

func expectAccessError(t *testing.T, err error, address uint32, cause int, reason string) {
	t.Helper()
	if !test.ExpectSuccess(t, errors.Is(err, memory.AddressError), address) {
		return
	}
	var ae *memory.AccessError
	if test.ExpectSuccess(t, errors.As(err, &ae), address) {
		test.ExpectEquality(t, ae.Address, address)
		test.ExpectEquality(t, ae.Cause(), cause)
		if reason != "" {
			test.ExpectEquality(t, ae.Reason, reason)
		}
	}
}

func TestWords(t *testing.T) {
	mem := memory.NewMemory(nil, nil)

	for _, a := range []uint32{0x10010000, 0x10040000, 0x7fffeffc, 0x7ffffffc, 0x90000000, 0xffff0000} {
		old, err := mem.SetWord(a, 0xcafef00d)
		test.ExpectSuccess(t, err, a)
		test.ExpectEquality(t, old, uint32(0), a)

		v, err := mem.GetWord(a)
		test.ExpectSuccess(t, err, a)
		test.ExpectEquality(t, v, uint32(0xcafef00d), a)

		old, err = mem.SetWord(a, 1)
		test.ExpectSuccess(t, err, a)
		test.ExpectEquality(t, old, uint32(0xcafef00d), a)

		v, err = mem.GetRawWord(a)
		test.ExpectSuccess(t, err, a)
		test.ExpectEquality(t, v, uint32(1), a)
	}
}

func TestUnwrittenMemory(t *testing.T) {
	mem := memory.NewMemory(nil, nil)

	v, err := mem.GetWord(0x10010000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint32(0))

	_, present, err := mem.GetRawWordOrNull(0x10010000)
	test.ExpectSuccess(t, err)
	test.ExpectFailure(t, present)

	b, err := mem.GetByte(0x7fffeffd)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, b, uint8(0))
}

func TestLittleEndian(t *testing.T) {
	for _, base := range []uint32{0x10010000, 0x7fffeff0, 0x90000000} {
		mem := memory.NewMemory(nil, nil)

		_, err := mem.SetWord(base, 0x12345678)
		test.DemandSuccess(t, err)

		for i, e := range []uint8{0x78, 0x56, 0x34, 0x12} {
			b, err := mem.GetByte(base + uint32(i))
			test.ExpectSuccess(t, err)
			test.ExpectEquality(t, b, e, base, i)
		}

		h, _ := mem.GetHalf(base)
		test.ExpectEquality(t, h, uint16(0x5678), base)
		h, _ = mem.GetHalf(base + 2)
		test.ExpectEquality(t, h, uint16(0x1234), base)

		old, _ := mem.SetByte(base+1, 0xaa)
		test.ExpectEquality(t, old, uint8(0x56), base)
		oldh, _ := mem.SetHalf(base+2, 0xbbcc)
		test.ExpectEquality(t, oldh, uint16(0x1234), base)

		w, _ := mem.GetWord(base)
		test.ExpectEquality(t, w, uint32(0xbbccaa78), base)
		w, _ = mem.GetRawWord(base)
		test.ExpectEquality(t, w, uint32(0xbbccaa78), base)
	}
}

func TestUnalignedGeneralAccess(t *testing.T) {
	// the same sequence of accesses must give the same results in the data
	// segment and in the stack
	for _, base := range []uint32{0x10010000, 0x7fffeff0} {
		for m := range uint32(4) {
			mem := memory.NewMemory(nil, nil)
			a := base + m

			_, err := mem.Set(a, 0x44332211, 4)
			test.DemandSuccess(t, err, base, m)

			v, err := mem.Get(a, 4)
			test.ExpectSuccess(t, err)
			test.ExpectEquality(t, v, uint32(0x44332211), base, m)

			for i := range uint32(4) {
				b, _ := mem.GetByte(a + i)
				test.ExpectEquality(t, b, uint8(0x11*(i+1)), base, m, i)
			}

			lo, _ := mem.GetWord(base)
			hi, _ := mem.GetWord(base + 4)
			test.ExpectEquality(t, lo, uint32(0x44332211)<<(m*8), base, m)
			if m > 0 {
				test.ExpectEquality(t, hi, uint32(0x44332211)>>((4-m)*8), base, m)
			} else {
				test.ExpectEquality(t, hi, uint32(0), base, m)
			}
		}
	}
}

func TestStackBase(t *testing.T) {
	mem := memory.NewMemory(nil, nil)

	_, err := mem.SetWord(0x7ffffffc, 0x11223344)
	test.ExpectSuccess(t, err)
	v, _ := mem.GetWord(0x7ffffffc)
	test.ExpectEquality(t, v, uint32(0x11223344))
	b, _ := mem.GetByte(0x7ffffffc)
	test.ExpectEquality(t, b, uint8(0x44))

	// beyond the stack base is out of range
	_, err = mem.GetByte(0x7ffffffd)
	expectAccessError(t, err, 0x7ffffffd, memory.CauseLoad, "address out of range")

	// the stack limit is excluded from the stack
	_, err = mem.SetWord(0x7fbffffc, 1)
	expectAccessError(t, err, 0x7fbffffc, memory.CauseStore, "address out of range")
	_, err = mem.SetWord(0x7fc00000, 1)
	test.ExpectSuccess(t, err)
}

func TestAlignment(t *testing.T) {
	mem := memory.NewMemory(nil, nil)

	_, err := mem.GetWord(0x10010002)
	expectAccessError(t, err, 0x10010002, memory.CauseLoad, "fetch address not aligned on word boundary")
	_, err = mem.GetWordNoNotify(0x10010001)
	expectAccessError(t, err, 0x10010001, memory.CauseLoad, "fetch address not aligned on word boundary")
	_, err = mem.SetWord(0x10010002, 1)
	expectAccessError(t, err, 0x10010002, memory.CauseStore, "store address not aligned on word boundary")
	_, err = mem.GetHalf(0x10010001)
	expectAccessError(t, err, 0x10010001, memory.CauseLoad, "")
	_, err = mem.SetHalf(0x10010003, 1)
	expectAccessError(t, err, 0x10010003, memory.CauseStore, "")
	_, err = mem.GetRawWord(0x10010003)
	expectAccessError(t, err, 0x10010003, memory.CauseLoad, "")
	_, err = mem.SetRawWord(0x10010003, 0)
	expectAccessError(t, err, 0x10010003, memory.CauseStore, "")

	// bytes have no alignment requirement
	_, err = mem.SetByte(0x10010003, 1)
	test.ExpectSuccess(t, err)

	// halfwords on a halfword boundary are fine
	_, err = mem.SetHalf(0x10010002, 1)
	test.ExpectSuccess(t, err)

	// the failed stores changed nothing
	v, _ := mem.GetWord(0x10010000)
	test.ExpectEquality(t, v, uint32(0x00010000))
}

func TestOutOfRange(t *testing.T) {
	mem := memory.NewMemory(nil, nil)

	_, err := mem.GetWord(0)
	expectAccessError(t, err, 0, memory.CauseLoad, "address out of range")
	_, err = mem.SetWord(0x20000000, 1)
	expectAccessError(t, err, 0x20000000, memory.CauseStore, "address out of range")
	_, err = mem.SetByte(0x10400000, 1)
	expectAccessError(t, err, 0x10400000, memory.CauseStore, "address out of range")

	_, err = mem.Get(0x10010000, 5)
	test.ExpectSuccess(t, errors.Is(err, memory.InvalidArgument))
	_, err = mem.Set(0x10010000, 0, 0)
	test.ExpectSuccess(t, errors.Is(err, memory.InvalidArgument))
}

func TestTextWithoutSelfModifyingCode(t *testing.T) {
	mem := memory.NewMemory(nil, &settings{})

	_, err := mem.SetWord(0x00400000, 1)
	expectAccessError(t, err, 0x00400000, memory.CauseStore, "Cannot write directly to text segment!")
	_, err = mem.GetWord(0x00400000)
	expectAccessError(t, err, 0x00400000, memory.CauseLoad, "")
	_, err = mem.SetByte(0x80000000, 1)
	expectAccessError(t, err, 0x80000000, memory.CauseStore, "Cannot write directly to text segment!")
	_, err = mem.GetWord(0x80000000)
	expectAccessError(t, err, 0x80000000, memory.CauseLoad, "")
	_, err = mem.SetRawWord(0x00400000, 1)
	expectAccessError(t, err, 0x00400000, memory.CauseStore, "")
}

func TestTextWithSelfModifyingCode(t *testing.T) {
	mem := memory.NewMemory(nil, &settings{smc: true})

	err := mem.StoreStatement(0x00400000, memory.NewRawStatement(0x20080001, 0x00400000))
	test.DemandSuccess(t, err)

	old, err := mem.SetWord(0x00400000, 0x20090002)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, old, uint32(0x20080001))

	stmt, err := mem.FetchStatement(0x00400000, true)
	test.ExpectSuccess(t, err)
	test.DemandSuccess(t, stmt != nil)
	test.ExpectEquality(t, stmt.Encoding(), uint32(0x20090002))
	test.ExpectEquality(t, stmt.Address(), uint32(0x00400000))

	// sub-word writes are merged into the existing statement
	oldb, err := mem.SetByte(0x00400000, 0xff)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, oldb, uint8(0x02))
	stmt, _ = mem.FetchStatement(0x00400000, false)
	test.ExpectEquality(t, stmt.Encoding(), uint32(0x200900ff))

	h, err := mem.GetHalf(0x00400002)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, h, uint16(0x2009))

	v, err := mem.GetWord(0x00400000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint32(0x200900ff))

	// reading an empty word in the text segment is zero
	v, err = mem.GetWord(0x00400004)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint32(0))

	// kernel text can be written but is only read as a statement
	old, err = mem.SetWord(0x80000180, 0x42000018)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, old, uint32(0))
	stmt, err = mem.FetchStatement(0x80000180, false)
	test.ExpectSuccess(t, err)
	test.DemandSuccess(t, stmt != nil)
	test.ExpectEquality(t, stmt.Encoding(), uint32(0x42000018))
}

func TestKernelTextReads(t *testing.T) {
	const reason = "Cannot read directly from kernel text segment! Use the statement fetch instead"

	for _, smc := range []bool{false, true} {
		mem := memory.NewMemory(nil, &settings{smc: smc})
		err := mem.StoreStatement(0x80000000, memory.NewRawStatement(0xdeadbeef, 0x80000000))
		test.DemandSuccess(t, err)

		_, err = mem.GetWord(0x80000000)
		expectAccessError(t, err, 0x80000000, memory.CauseLoad, reason)
		_, err = mem.GetWordNoNotify(0x80000000)
		expectAccessError(t, err, 0x80000000, memory.CauseLoad, reason)
		_, err = mem.GetHalf(0x80000002)
		expectAccessError(t, err, 0x80000002, memory.CauseLoad, reason)
		_, err = mem.GetByte(0x80000001)
		expectAccessError(t, err, 0x80000001, memory.CauseLoad, reason)
		_, err = mem.Get(0x80000000, 4)
		expectAccessError(t, err, 0x80000000, memory.CauseLoad, reason)
		_, err = mem.GetRawWord(0x80000000)
		expectAccessError(t, err, 0x80000000, memory.CauseLoad, reason)

		stmt, err := mem.FetchStatement(0x80000000, false)
		test.ExpectSuccess(t, err, smc)
		test.DemandSuccess(t, stmt != nil)
		test.ExpectEquality(t, stmt.Encoding(), uint32(0xdeadbeef))

		// silent inspection still sees the statement
		v, present, err := mem.GetRawWordOrNull(0x80000000)
		test.ExpectSuccess(t, err, smc)
		test.ExpectSuccess(t, present, smc)
		test.ExpectEquality(t, v, uint32(0xdeadbeef))
	}
}

func TestTextSubWordIsNotTorn(t *testing.T) {
	mem := memory.NewMemory(nil, &settings{smc: true})

	const address = 0x00400002
	_, err := mem.SetHalf(address, 0x0000)
	test.DemandSuccess(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := range 2000 {
			v := uint16(0x0000)
			if i%2 == 0 {
				v = 0xffff
			}
			mem.SetHalf(address, v)
		}
	}()

	for range 2000 {
		v, err := mem.GetHalf(address)
		test.ExpectSuccess(t, err)
		if v != 0x0000 && v != 0xffff {
			t.Fatalf("halfword read while being written is 0x%04x", v)
		}
	}

	wg.Wait()
}

type decoded struct {
	memory.RawStatement
	label string
}

func TestStatementDecoder(t *testing.T) {
	mem := memory.NewMemory(nil, &settings{smc: true})
	mem.SetStatementDecoder(func(encoding uint32, address uint32) memory.Statement {
		return &decoded{
			RawStatement: *memory.NewRawStatement(encoding, address).(*memory.RawStatement),
			label:        "decoded",
		}
	})

	mem.SetWord(0x00400008, 0x00000000)
	stmt, err := mem.FetchStatementNoNotify(0x00400008)
	test.ExpectSuccess(t, err)
	d, ok := stmt.(*decoded)
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, d.label, "decoded")
	test.ExpectEquality(t, d.Address(), uint32(0x00400008))
}

func TestStatements(t *testing.T) {
	mem := memory.NewMemory(nil, &settings{})

	err := mem.StoreStatement(0x00400002, memory.NewRawStatement(0, 0x00400002))
	expectAccessError(t, err, 0x00400002, memory.CauseStore, "")
	err = mem.StoreStatement(0x10010000, memory.NewRawStatement(0, 0x10010000))
	expectAccessError(t, err, 0x10010000, memory.CauseStore, "")

	err = mem.StoreStatement(0x80000180, memory.NewRawStatement(0x42000018, 0x80000180))
	test.ExpectSuccess(t, err)
	stmt, err := mem.FetchStatement(0x80000180, false)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, stmt.Encoding(), uint32(0x42000018))

	// nothing stored is not an error
	stmt, err = mem.FetchStatement(0x00400000, false)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, stmt == nil)

	_, err = mem.FetchStatement(0x00400001, false)
	expectAccessError(t, err, 0x00400001, memory.CauseLoad, "fetch address for text segment not aligned to word boundary")

	// a data address is not a statement unless self-modifying code is
	// enabled
	mem.SetWord(0x10010000, 0x20080001)
	_, err = mem.FetchStatement(0x10010000, false)
	expectAccessError(t, err, 0x10010000, memory.CauseLoad, "fetch address for text segment out of range")

	mem = memory.NewMemory(nil, &settings{smc: true})
	mem.SetWord(0x10010000, 0x20080001)
	stmt, err = mem.FetchStatement(0x10010000, false)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, stmt.Encoding(), uint32(0x20080001))
	test.ExpectEquality(t, stmt.Address(), uint32(0x10010000))
}

func TestStatementNotification(t *testing.T) {
	mem := memory.NewMemory(nil, &settings{})
	rec := &recorder{}
	_, err := mem.SubscribeAll(rec)
	test.DemandSuccess(t, err)

	// storing statements is not notified
	mem.StoreStatement(0x00400000, memory.NewRawStatement(0x20080001, 0x00400000))
	test.ExpectEquality(t, len(rec.notices), 0)

	mem.FetchStatementNoNotify(0x00400000)
	test.ExpectEquality(t, len(rec.notices), 0)

	mem.FetchStatement(0x00400000, true)
	test.DemandEquality(t, len(rec.notices), 1)
	test.ExpectEquality(t, rec.notices[0].Kind, observers.Read)
	test.ExpectEquality(t, rec.notices[0].Value, uint32(0x20080001))

	// an empty word is notified with a value of zero
	mem.FetchStatement(0x00400004, true)
	test.DemandEquality(t, len(rec.notices), 2)
	test.ExpectEquality(t, rec.notices[1].Address, uint32(0x00400004))
	test.ExpectEquality(t, rec.notices[1].Value, uint32(0))
}

func TestObservers(t *testing.T) {
	mem := memory.NewMemory(nil, nil)
	rec := &recorder{}

	_, err := mem.Subscribe(rec, 0x10010000, 0x10010004)
	test.DemandSuccess(t, err)

	mem.SetWord(0x10010004, 42)
	test.DemandEquality(t, len(rec.notices), 1)
	n := rec.notices[0]
	test.ExpectEquality(t, n.Kind, observers.Write)
	test.ExpectEquality(t, n.Address, uint32(0x10010004))
	test.ExpectEquality(t, n.Length, 4)
	test.ExpectEquality(t, n.Value, uint32(42))

	mem.GetWordNoNotify(0x10010004)
	mem.GetNoNotify(0x10010004, 4)
	mem.GetByteNoNotify(0x10010004)
	mem.GetRawWordOrNull(0x10010004)
	mem.SetWordNoNotify(0x10010004, 43)
	test.ExpectEquality(t, len(rec.notices), 1)

	mem.GetByte(0x10010007)
	test.DemandEquality(t, len(rec.notices), 2)
	test.ExpectEquality(t, rec.notices[1].Kind, observers.Read)
	test.ExpectEquality(t, rec.notices[1].Length, 1)
	test.ExpectEquality(t, rec.notices[1].Value, uint32(0))

	v, _ := mem.GetWordNoNotify(0x10010004)
	test.ExpectEquality(t, v, uint32(43))

	// outside of range
	mem.SetWord(0x10010008, 1)
	test.ExpectEquality(t, len(rec.notices), 2)

	// failed accesses are not notified
	mem.SetWord(0x10010002, 1)
	test.ExpectEquality(t, len(rec.notices), 2)

	test.ExpectEquality(t, mem.Unsubscribe(rec), 1)
	mem.SetWord(0x10010004, 1)
	test.ExpectEquality(t, len(rec.notices), 2)

	_, err = mem.Subscribe(rec, 0x10010002, 0x10010004)
	expectAccessError(t, err, 0x10010002, memory.CauseLoad, "")
	_, err = mem.Subscribe(rec, 0x7ffffffc, 0x80000000)
	expectAccessError(t, err, 0x80000000, memory.CauseLoad, "")
}

func TestDoubleWord(t *testing.T) {
	mem := memory.NewMemory(nil, nil)
	rec := &recorder{}
	mem.SubscribeAll(rec)

	old, err := mem.SetDoubleWord(0x10010000, 0x1122334455667788)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, old, uint64(0))

	// the high word is written first
	test.DemandEquality(t, len(rec.notices), 2)
	test.ExpectEquality(t, rec.notices[0].Address, uint32(0x10010004))
	test.ExpectEquality(t, rec.notices[1].Address, uint32(0x10010000))

	lo, _ := mem.GetWord(0x10010000)
	hi, _ := mem.GetWord(0x10010004)
	test.ExpectEquality(t, lo, uint32(0x55667788))
	test.ExpectEquality(t, hi, uint32(0x11223344))

	v, err := mem.GetDoubleWord(0x10010000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint64(0x1122334455667788))

	oldf, err := mem.SetDouble(0x10010008, 3.25)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, oldf, 0.0)
	f, err := mem.GetDouble(0x10010008)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, f, 3.25)

	_, err = mem.SetDoubleWord(0x103ffffc, 1)
	test.ExpectSuccess(t, errors.Is(err, memory.AddressError))
}

func TestHeap(t *testing.T) {
	mem := memory.NewMemory(nil, nil)
	test.ExpectEquality(t, mem.HeapAddress(), uint32(0x10040000))

	a, err := mem.AllocateBytesFromHeap(5)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, a, uint32(0x10040000))

	a, err = mem.AllocateBytesFromHeap(0)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, a, uint32(0x10040008))

	a, _ = mem.AllocateBytesFromHeap(4)
	test.ExpectEquality(t, a, uint32(0x10040008))
	test.ExpectEquality(t, mem.HeapAddress(), uint32(0x1004000c))

	_, err = mem.AllocateBytesFromHeap(-1)
	test.ExpectSuccess(t, errors.Is(err, memory.InvalidArgument))
	test.ExpectSuccess(t, strings.Contains(err.Error(), "negative heap amount"))

	// the heap cursor can never reach the data segment limit
	remaining := int(0x10400000 - mem.HeapAddress())
	_, err = mem.AllocateBytesFromHeap(remaining)
	test.ExpectSuccess(t, errors.Is(err, memory.InvalidArgument))
	test.ExpectSuccess(t, strings.Contains(err.Error(), "exceeds available heap storage"))
	test.ExpectEquality(t, mem.HeapAddress(), uint32(0x1004000c))

	a, err = mem.AllocateBytesFromHeap(remaining - 4)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, a, uint32(0x1004000c))
	test.ExpectEquality(t, mem.HeapAddress(), uint32(0x103ffffc))

	// allocated heap is ordinary data segment memory
	_, err = mem.SetWord(a, 1)
	test.ExpectSuccess(t, err)
}

func TestFirstNullInRange(t *testing.T) {
	mem := memory.NewMemory(nil, nil)

	a, err := mem.FirstNullInRange(0x10010000, 0x10020000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, a, uint32(0x10010000))

	// storage is allocated in blocks of 4096 bytes
	mem.SetWord(0x10010000, 1)
	a, _ = mem.FirstNullInRange(0x10010000, 0x10020000)
	test.ExpectEquality(t, a, uint32(0x10011000))

	// limit is returned if everything is present
	a, _ = mem.FirstNullInRange(0x10010000, 0x10010010)
	test.ExpectEquality(t, a, uint32(0x10010010))

	// text is scanned one statement at a time
	for i := range uint32(3) {
		mem.StoreStatement(0x00400000+i*4, memory.NewRawStatement(0, 0x00400000+i*4))
	}
	a, err = mem.FirstNullInRange(0x00400000, 0x00400100)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, a, uint32(0x0040000c))

	_, err = mem.FirstNullInRange(0x10010002, 0x10020000)
	expectAccessError(t, err, 0x10010002, memory.CauseLoad, "")
}

func TestConfigurationSwitch(t *testing.T) {
	mem := memory.NewMemory(nil, nil)
	rec := &recorder{}
	mem.Subscribe(rec, 0x00001000, 0x00001000)

	mem.SetWord(0x10010000, 1)
	mem.AllocateBytesFromHeap(16)

	// the same configuration changes nothing
	test.ExpectFailure(t, mem.SetConfiguration(memorymap.Default))
	v, _ := mem.GetWord(0x10010000)
	test.ExpectEquality(t, v, uint32(1))

	test.ExpectSuccess(t, mem.SetConfiguration(memorymap.CompactDataAtZero))
	test.ExpectEquality(t, mem.Configuration(), memorymap.CompactDataAtZero)
	test.ExpectEquality(t, mem.HeapAddress(), uint32(0x2000))
	test.ExpectEquality(t, mem.Usage(memorymap.Data).AllocatedBlocks(), 0)

	// the data segment now begins at zero
	_, err := mem.SetWord(0x00001000, 7)
	test.ExpectSuccess(t, err)
	_, err = mem.GetWord(0x10010000)
	test.ExpectSuccess(t, errors.Is(err, memory.AddressError))

	// observers survive the change
	test.ExpectEquality(t, len(rec.notices), 1)

	// the stack overlaps the data segment and the data segment wins
	mem.SetWord(0x2ffc, 0xabcd)
	test.ExpectEquality(t, mem.Usage(memorymap.Stack).AllocatedBlocks(), 0)

	test.ExpectSuccess(t, mem.SetConfiguration(memorymap.CompactTextAtZero))
	err = mem.StoreStatement(0, memory.NewRawStatement(0x20080001, 0))
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, mem.InTextSegment(0))
	test.ExpectFailure(t, mem.InDataSegment(0))

	// returning to the first configuration does not bring back the data
	// written under it
	test.ExpectSuccess(t, mem.SetConfiguration(memorymap.Default))
	v, err = mem.GetWord(0x10010000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint32(0))
	test.ExpectEquality(t, mem.HeapAddress(), uint32(0x10040000))
}

func TestMisalignedWordsInEverySegment(t *testing.T) {
	words := []struct {
		area    memorymap.Area
		address uint32
	}{
		{memorymap.Data, 0x10010000},
		{memorymap.Stack, 0x7fffeff0},
		{memorymap.MMIO, 0xffff0000},
		{memorymap.KernelData, 0x90000000},
		{memorymap.Text, 0x00400000},
		{memorymap.KernelText, 0x80000000},
	}

	for _, smc := range []bool{false, true} {
		mem := memory.NewMemory(nil, &settings{smc: smc})
		for _, w := range words {
			area, _ := mem.Configuration().Limits().Classify(w.address)
			test.DemandEquality(t, area, w.area)
			for o := uint32(1); o < 4; o++ {
				a := w.address + o
				_, err := mem.GetWord(a)
				expectAccessError(t, err, a, memory.CauseLoad, "fetch address not aligned on word boundary")
				_, err = mem.SetWord(a, 0xffffffff)
				expectAccessError(t, err, a, memory.CauseStore, "store address not aligned on word boundary")
			}
		}
	}
}

func TestClear(t *testing.T) {
	mem := memory.NewMemory(nil, nil)
	rec := &recorder{}
	mem.SubscribeAll(rec)

	mem.SetWord(0x10010000, 1)
	mem.SetWord(0x7ffffffc, 1)
	mem.StoreStatement(0x00400000, memory.NewRawStatement(1, 0x00400000))
	mem.AllocateBytesFromHeap(100)
	rec.reset()

	mem.Clear()

	v, _ := mem.GetWordNoNotify(0x10010000)
	test.ExpectEquality(t, v, uint32(0))
	v, _ = mem.GetWordNoNotify(0x7ffffffc)
	test.ExpectEquality(t, v, uint32(0))
	stmt, _ := mem.FetchStatementNoNotify(0x00400000)
	test.ExpectSuccess(t, stmt == nil)
	test.ExpectEquality(t, mem.HeapAddress(), uint32(0x10040000))

	mem.SetWord(0x10010000, 1)
	test.ExpectEquality(t, len(rec.notices), 1)
}

func TestTrace(t *testing.T) {
	s := &settings{}
	mem := memory.NewMemory(nil, s)

	logger.Clear()
	mem.SetWord(0x10010000, 1)

	w := &strings.Builder{}
	logger.Write(w)
	test.ExpectEquality(t, w.String(), "")

	s.trace = true
	mem.SetByte(0x10010000, 0xff)
	logger.Write(w)
	test.ExpectEquality(t, w.String(), "memory: 0x10010000 <- 0xff\n")

	logger.Clear()
}

func TestAlignmentHelpers(t *testing.T) {
	test.ExpectSuccess(t, memory.WordAligned(0x10010000))
	test.ExpectFailure(t, memory.WordAligned(0x10010002))
	test.ExpectSuccess(t, memory.DoubleWordAligned(0x10010008))
	test.ExpectFailure(t, memory.DoubleWordAligned(0x10010004))
	test.ExpectEquality(t, memory.AlignToWordBoundary(0x10010001), uint32(0x10010004))
	test.ExpectEquality(t, memory.AlignToWordBoundary(0x10010004), uint32(0x10010004))
}

func TestConcurrentAccess(t *testing.T) {
	mem := memory.NewMemory(nil, nil)

	var wg sync.WaitGroup
	for g := range uint32(8) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range uint32(256) {
				mem.SetWord(0x10010000+(g*256+i)*4, g<<16|i)
			}
		}()
	}
	wg.Wait()

	for g := range uint32(8) {
		for i := range uint32(256) {
			v, err := mem.GetWordNoNotify(0x10010000 + (g*256+i)*4)
			test.ExpectSuccess(t, err)
			test.ExpectEquality(t, v, g<<16|i)
		}
	}
}
