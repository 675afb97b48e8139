// Package memoryregion implements the passive bus listener that backs a
// byte store onto an address window: RAM, ROM, and their mirrors.
package memoryregion

import "gones/internal/bus"

// Region is a passive listener bound to a byte backing store, an address
// range, and a writeability flag. Two regions may share the same backing
// slice to implement mirroring: a write through either is visible
// through both.
type Region struct {
	name      string
	backing   []byte
	base      uint16
	size      uint16
	writeable bool

	address *bus.Bus
	data    *bus.Bus
	write   *bus.Bus

	addrHarness  *bus.Harness
	dataHarness  *bus.Harness
	writeHarness *bus.Harness
}

// New creates a region of size bytes starting at base, backed by
// backing (which must be at least size bytes long), and attaches it to
// the given address/data/write buses. Pass writeable=false for ROM.
func New(name string, backing []byte, base, size uint16, writeable bool, addressBus, dataBus, writeBus *bus.Bus) *Region {
	if len(backing) < int(size) {
		panic("memoryregion: backing store smaller than region size")
	}
	r := &Region{
		name:      name,
		backing:   backing,
		base:      base,
		size:      size,
		writeable: writeable,
		address:   addressBus,
		data:      dataBus,
		write:     writeBus,
	}

	// The CPU's write primitive puts the address, then raises the write
	// signal, then puts the data, then lowers the write signal again. A
	// region must re-run its address-decode check on every one of those
	// three bus changes, not only the address put: the data byte itself
	// isn't valid until the third step, and re-running the check on each
	// step is harmless since it's idempotent on a match.
	onChange := func(owner any, level uint32) {
		owner.(*Region).onAddressChanged()
	}
	r.addrHarness = bus.NewHarness(r, onChange)
	addressBus.Attach(r.addrHarness)

	r.dataHarness = bus.NewHarness(r, onChange)
	dataBus.Attach(r.dataHarness)

	r.writeHarness = bus.NewHarness(r, onChange)
	writeBus.Attach(r.writeHarness)

	return r
}

func (r *Region) inRange(addr uint16) (offset uint16, ok bool) {
	if addr < r.base {
		return 0, false
	}
	off := addr - r.base
	if off >= r.size {
		return 0, false
	}
	return off, true
}

// onAddressChanged reads address, data, and write-signal off the three
// buses, and on a match either drives the data bus (read) or stores
// into the backing array (write).
func (r *Region) onAddressChanged() {
	addr := uint16(r.address.Get())
	offset, ok := r.inRange(addr)
	if !ok {
		return
	}

	writeAsserted := r.write.Get() != 0
	if !writeAsserted {
		// Excluding by r.dataHarness (not r.addrHarness) matters: Put
		// only suppresses re-notifying the harness that matches `by` on
		// *this* bus, and only dataHarness is attached to the data bus.
		// Passing the wrong harness here would re-trigger dataHarness's
		// own callback on every drive and recurse forever.
		r.data.Put(uint32(r.backing[offset]), r.dataHarness)
		return
	}

	if !r.writeable {
		return
	}
	r.backing[offset] = byte(r.data.Get())
}

// Name returns the region's diagnostic name.
func (r *Region) Name() string {
	return r.name
}

// Peek reads the backing store directly at addr, bypassing the bus
// broadcast entirely. Used by debug surfaces (read_memory/dump_memory)
// that must not perturb other listeners. Returns ok=false if addr falls
// outside the region.
func (r *Region) Peek(addr uint16) (value byte, ok bool) {
	offset, inRange := r.inRange(addr)
	if !inRange {
		return 0, false
	}
	return r.backing[offset], true
}

// Poke writes the backing store directly at addr, bypassing the bus
// broadcast. Used by debug/test setup, not by the CPU.
func (r *Region) Poke(addr uint16, value byte) (ok bool) {
	offset, inRange := r.inRange(addr)
	if !inRange {
		return false
	}
	r.backing[offset] = value
	return true
}

// Base returns the region's starting address.
func (r *Region) Base() uint16 { return r.base }

// Size returns the region's length in bytes.
func (r *Region) Size() uint16 { return r.size }
