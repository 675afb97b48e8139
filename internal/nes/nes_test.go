package nes

import (
	"errors"
	"testing"

	"gones/internal/cartridge"
)

// buildROM assembles a minimal 16 KiB-PRG iNES image. prg is copied to
// the start of the PRG-ROM bank; the rest is zero-filled, so the reset
// vector at bank offsets $3FFC/$3FFD ($BFFC/$BFFD, mirrored to
// $FFFC/$FFFD) must be set explicitly through prg.
func buildROM(prg []byte) []byte {
	const prgBankSize = 16 * 1024
	image := make([]byte, 16+prgBankSize)
	copy(image, []byte{'N', 'E', 'S', 0x1A})
	image[4] = 1 // 1x16KiB PRG bank
	image[5] = 0 // no CHR-ROM
	copy(image[16:], prg)
	return image
}

func romWithResetVector(resetAddr uint16, program ...byte) []byte {
	const prgBankSize = 16 * 1024
	prg := make([]byte, prgBankSize)
	copy(prg, program)
	// reset/NMI/IRQ vectors live at the top of the bank, mirrored to
	// $FFFA-$FFFF once loaded at $C000.
	prg[prgBankSize-4] = byte(resetAddr)
	prg[prgBankSize-3] = byte(resetAddr >> 8)
	return buildROM(prg)
}

func TestLoadCartridgeWiresRegions(t *testing.T) {
	n := New()
	rom := romWithResetVector(0x8000, 0xEA) // NOP
	if err := n.LoadCartridge(rom); err != nil {
		t.Fatalf("LoadCartridge: %v", err)
	}
	if n.Cartridge() == nil {
		t.Fatal("Cartridge() is nil after a successful load")
	}
	if got := n.ReadMemory(0xFFFC); got != 0x00 {
		t.Fatalf("reset vector low byte = %#02x, want 0x00", got)
	}
	if got := n.ReadMemory(0xFFFD); got != 0x80 {
		t.Fatalf("reset vector high byte = %#02x, want 0x80", got)
	}
}

func TestLoadCartridgeRejectsBadHeader(t *testing.T) {
	n := New()
	err := n.LoadCartridge([]byte("not a rom"))
	if !errors.Is(err, cartridge.ErrInvalidHeader) {
		t.Fatalf("err = %v, want ErrInvalidHeader", err)
	}
}

func TestRAMMirroringAcrossFourBases(t *testing.T) {
	n := New()
	rom := romWithResetVector(0x8000, 0xEA)
	if err := n.LoadCartridge(rom); err != nil {
		t.Fatalf("LoadCartridge: %v", err)
	}

	n.ramRegions[0].Poke(0x0042, 0x99)
	for _, base := range []uint16{0x0000, 0x0800, 0x1000, 0x1800} {
		if got := n.ReadMemory(base + 0x0042); got != 0x99 {
			t.Errorf("mirror at base %#04x = %#02x, want 0x99", base, got)
		}
	}
}

func TestRunSyntheticProgramEndToEnd(t *testing.T) {
	n := New()
	// LDA #$42 ; STA $0010
	rom := romWithResetVector(0x8000, 0xA9, 0x42, 0x85, 0x10)
	if err := n.LoadCartridge(rom); err != nil {
		t.Fatalf("LoadCartridge: %v", err)
	}

	for i := 0; i < 2+2+3; i++ { // 2 reset cycles, LDA#(2), STA zp(3)
		n.Tick()
	}

	if n.CPU().A != 0x42 {
		t.Fatalf("A = %#02x, want 0x42", n.CPU().A)
	}
	if got := n.ReadMemory(0x0010); got != 0x42 {
		t.Fatalf("mem[$10] = %#02x, want 0x42", got)
	}
}

func TestReloadCartridgeReplacesPrevious(t *testing.T) {
	n := New()
	first := romWithResetVector(0x8000, 0xA9, 0x11)
	second := romWithResetVector(0x8000, 0xA9, 0x22)

	if err := n.LoadCartridge(first); err != nil {
		t.Fatalf("first LoadCartridge: %v", err)
	}
	if err := n.LoadCartridge(second); err != nil {
		t.Fatalf("second LoadCartridge: %v", err)
	}

	if got := n.ReadMemory(0x8001); got != 0x22 {
		t.Fatalf("mem[$8001] = %#02x, want 0x22 (stale mapping from first load)", got)
	}

	n.ramRegions[0].Poke(0x0000, 0x77)
	if got := n.ReadMemory(0x0000); got != 0x77 {
		t.Fatalf("RAM not wired after reload: mem[$0] = %#02x, want 0x77", got)
	}
}

func TestDumpMemory(t *testing.T) {
	n := New()
	rom := romWithResetVector(0x8000, 0xEA)
	if err := n.LoadCartridge(rom); err != nil {
		t.Fatalf("LoadCartridge: %v", err)
	}
	n.ramRegions[0].Poke(0x0000, 0x01)
	n.ramRegions[0].Poke(0x0001, 0x02)
	n.ramRegions[0].Poke(0x0002, 0x03)

	dump := n.DumpMemory(0x0000, 3)
	want := []byte{0x01, 0x02, 0x03}
	for i, v := range want {
		if dump[i] != v {
			t.Errorf("dump[%d] = %#02x, want %#02x", i, dump[i], v)
		}
	}
}
