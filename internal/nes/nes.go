// Package nes wires the bus fabric, on-board RAM, cartridge, and CPU
// into a runnable NES board.
package nes

import (
	"gones/internal/bus"
	"gones/internal/cartridge"
	"gones/internal/cpu"
	"gones/internal/memoryregion"
)

const (
	ramSize    = 0x0800
	ramWindow  = 0x2000 // $0000-$1FFF, four mirrors of the 2 KiB backing array
	ramMirrors = ramWindow / ramSize
)

// NES is a mapper-0 NES board: the three shared buses, 2 KiB of mirrored
// on-board RAM, an optional loaded cartridge, and the CPU driving it all.
type NES struct {
	addressBus *bus.Bus
	dataBus    *bus.Bus
	writeBus   *bus.Bus

	cpu *cpu.CPU

	ram        [ramSize]byte
	ramRegions []*memoryregion.Region

	cart        *cartridge.Cartridge
	cartRegions []*memoryregion.Region
}

// New builds a board with RAM attached and no cartridge loaded. The CPU
// starts in StateReset; Tick won't produce a valid PC until a ROM is
// loaded and Reset is called.
func New() *NES {
	n := &NES{
		addressBus: bus.New("address"),
		dataBus:    bus.New("data"),
		writeBus:   bus.New("write"),
	}
	n.attachRAM()
	n.cpu = cpu.New(n.addressBus, n.dataBus, n.writeBus)
	return n
}

func (n *NES) attachRAM() {
	n.ramRegions = n.ramRegions[:0]
	for i := 0; i < ramMirrors; i++ {
		base := uint16(i * ramSize)
		r := memoryregion.New("ram", n.ram[:], base, ramSize, true, n.addressBus, n.dataBus, n.writeBus)
		n.ramRegions = append(n.ramRegions, r)
	}
}

// LoadCartridge parses data as an iNES image, wires it onto the buses in
// place of any cartridge already loaded, and issues a reset. RAM is
// detached and re-attached alongside it, since Bus.DetachAll clears
// every harness on a bus, RAM's included.
func (n *NES) LoadCartridge(data []byte) error {
	cart, err := cartridge.Load(data)
	if err != nil {
		return err
	}

	n.addressBus.DetachAll()
	n.dataBus.DetachAll()
	n.writeBus.DetachAll()

	n.attachRAM()
	n.cart = cart
	n.cartRegions = cart.AttachTo(n.addressBus, n.dataBus, n.writeBus)
	n.cpu.Reset()
	return nil
}

// Reset puts the CPU back into its RESET sequence; the next two Tick
// calls load PC from $FFFC/$FFFD.
func (n *NES) Reset() {
	n.cpu.Reset()
}

// Tick advances the board by one CPU clock cycle.
func (n *NES) Tick() {
	n.cpu.Cycle()
}

// CPU exposes the board's CPU for register/state inspection.
func (n *NES) CPU() *cpu.CPU {
	return n.cpu
}

// Cartridge returns the currently loaded cartridge, or nil.
func (n *NES) Cartridge() *cartridge.Cartridge {
	return n.cart
}

// ReadMemory peeks a single byte at addr without touching the bus:
// no harness runs, so this never perturbs emulated state. Used by
// debug/host tooling, not by the core's own execution path.
func (n *NES) ReadMemory(addr uint16) byte {
	for _, r := range n.ramRegions {
		if v, ok := r.Peek(addr); ok {
			return v
		}
	}
	for _, r := range n.cartRegions {
		if v, ok := r.Peek(addr); ok {
			return v
		}
	}
	return 0
}

// DumpMemory returns size bytes starting at addr, built from ReadMemory.
func (n *NES) DumpMemory(addr uint16, size uint16) []byte {
	buf := make([]byte, size)
	for i := range buf {
		buf[i] = n.ReadMemory(addr + uint16(i))
	}
	return buf
}
