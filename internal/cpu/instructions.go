package cpu

// Instruction is the decoded descriptor for one opcode byte:
// mnemonic, addressing mode, operand length including the opcode byte,
// base cycle count, and whether a page crossing adds one cycle.
type Instruction struct {
	Mnemonic         string
	Opcode           byte
	Mode             AddressingMode
	Length           uint8
	BaseCycles       uint8
	PageCrossPenalty bool
}

// opcodeTable is the 151-entry definition of the documented 6502 ISA.
// Opcode -> descriptor must be a bijection; buildTable below builds the
// lookup array and panics if two entries share an opcode byte.
var opcodeTable = buildTable([]rawEntry{
	{"ADC", 0x69, Immediate, 2, false}, {"ADC", 0x65, ZeroPage, 3, false},
	{"ADC", 0x75, ZeroPageX, 4, false}, {"ADC", 0x6D, Absolute, 4, false},
	{"ADC", 0x7D, AbsoluteX, 4, true}, {"ADC", 0x79, AbsoluteY, 4, true},
	{"ADC", 0x61, XIndirect, 6, false}, {"ADC", 0x71, IndirectY, 5, true},

	{"AND", 0x29, Immediate, 2, false}, {"AND", 0x25, ZeroPage, 3, false},
	{"AND", 0x35, ZeroPageX, 4, false}, {"AND", 0x2D, Absolute, 4, false},
	{"AND", 0x3D, AbsoluteX, 4, true}, {"AND", 0x39, AbsoluteY, 4, true},
	{"AND", 0x21, XIndirect, 6, false}, {"AND", 0x31, IndirectY, 5, true},

	{"ASL", 0x0A, Accumulator, 2, false}, {"ASL", 0x06, ZeroPage, 5, false},
	{"ASL", 0x16, ZeroPageX, 6, false}, {"ASL", 0x0E, Absolute, 6, false},
	{"ASL", 0x1E, AbsoluteX, 7, false},

	{"BCC", 0x90, Relative, 2, false},
	{"BCS", 0xB0, Relative, 2, false},
	{"BEQ", 0xF0, Relative, 2, false},

	{"BIT", 0x24, ZeroPage, 3, false}, {"BIT", 0x2C, Absolute, 4, false},

	{"BMI", 0x30, Relative, 2, false},
	{"BNE", 0xD0, Relative, 2, false},
	{"BPL", 0x10, Relative, 2, false},

	{"BRK", 0x00, Implied, 7, false},

	{"BVC", 0x50, Relative, 2, false},
	{"BVS", 0x70, Relative, 2, false},

	{"CLC", 0x18, Implied, 2, false},
	{"CLD", 0xD8, Implied, 2, false},
	{"CLI", 0x58, Implied, 2, false},
	{"CLV", 0xB8, Implied, 2, false},

	{"CMP", 0xC9, Immediate, 2, false}, {"CMP", 0xC5, ZeroPage, 3, false},
	{"CMP", 0xD5, ZeroPageX, 4, false}, {"CMP", 0xCD, Absolute, 4, false},
	{"CMP", 0xDD, AbsoluteX, 4, true}, {"CMP", 0xD9, AbsoluteY, 4, true},
	{"CMP", 0xC1, XIndirect, 6, false}, {"CMP", 0xD1, IndirectY, 5, true},

	{"CPX", 0xE0, Immediate, 2, false}, {"CPX", 0xE4, ZeroPage, 3, false},
	{"CPX", 0xEC, Absolute, 4, false},

	{"CPY", 0xC0, Immediate, 2, false}, {"CPY", 0xC4, ZeroPage, 3, false},
	{"CPY", 0xCC, Absolute, 4, false},

	{"DEC", 0xC6, ZeroPage, 5, false}, {"DEC", 0xD6, ZeroPageX, 6, false},
	{"DEC", 0xCE, Absolute, 6, false}, {"DEC", 0xDE, AbsoluteX, 7, false},

	{"DEX", 0xCA, Implied, 2, false},
	{"DEY", 0x88, Implied, 2, false},

	{"EOR", 0x49, Immediate, 2, false}, {"EOR", 0x45, ZeroPage, 3, false},
	{"EOR", 0x55, ZeroPageX, 4, false}, {"EOR", 0x4D, Absolute, 4, false},
	{"EOR", 0x5D, AbsoluteX, 4, true}, {"EOR", 0x59, AbsoluteY, 4, true},
	{"EOR", 0x41, XIndirect, 6, false}, {"EOR", 0x51, IndirectY, 5, true},

	{"INC", 0xE6, ZeroPage, 5, false}, {"INC", 0xF6, ZeroPageX, 6, false},
	{"INC", 0xEE, Absolute, 6, false}, {"INC", 0xFE, AbsoluteX, 7, false},

	{"INX", 0xE8, Implied, 2, false},
	{"INY", 0xC8, Implied, 2, false},

	{"JMP", 0x4C, Absolute, 3, false}, {"JMP", 0x6C, Indirect, 5, false},

	{"JSR", 0x20, Absolute, 6, false},

	{"LDA", 0xA9, Immediate, 2, false}, {"LDA", 0xA5, ZeroPage, 3, false},
	{"LDA", 0xB5, ZeroPageX, 4, false}, {"LDA", 0xAD, Absolute, 4, false},
	{"LDA", 0xBD, AbsoluteX, 4, true}, {"LDA", 0xB9, AbsoluteY, 4, true},
	{"LDA", 0xA1, XIndirect, 6, false}, {"LDA", 0xB1, IndirectY, 5, true},

	{"LDX", 0xA2, Immediate, 2, false}, {"LDX", 0xA6, ZeroPage, 3, false},
	{"LDX", 0xB6, ZeroPageY, 4, false}, {"LDX", 0xAE, Absolute, 4, false},
	{"LDX", 0xBE, AbsoluteY, 4, true},

	{"LDY", 0xA0, Immediate, 2, false}, {"LDY", 0xA4, ZeroPage, 3, false},
	{"LDY", 0xB4, ZeroPageX, 4, false}, {"LDY", 0xAC, Absolute, 4, false},
	{"LDY", 0xBC, AbsoluteX, 4, true},

	{"LSR", 0x4A, Accumulator, 2, false}, {"LSR", 0x46, ZeroPage, 5, false},
	{"LSR", 0x56, ZeroPageX, 6, false}, {"LSR", 0x4E, Absolute, 6, false},
	{"LSR", 0x5E, AbsoluteX, 7, false},

	{"NOP", 0xEA, Implied, 2, false},

	{"ORA", 0x09, Immediate, 2, false}, {"ORA", 0x05, ZeroPage, 3, false},
	{"ORA", 0x15, ZeroPageX, 4, false}, {"ORA", 0x0D, Absolute, 4, false},
	{"ORA", 0x1D, AbsoluteX, 4, true}, {"ORA", 0x19, AbsoluteY, 4, true},
	{"ORA", 0x01, XIndirect, 6, false}, {"ORA", 0x11, IndirectY, 5, true},

	{"PHA", 0x48, Implied, 3, false},
	{"PHP", 0x08, Implied, 3, false},
	{"PLA", 0x68, Implied, 4, false},
	{"PLP", 0x28, Implied, 4, false},

	{"ROL", 0x2A, Accumulator, 2, false}, {"ROL", 0x26, ZeroPage, 5, false},
	{"ROL", 0x36, ZeroPageX, 6, false}, {"ROL", 0x2E, Absolute, 6, false},
	{"ROL", 0x3E, AbsoluteX, 7, false},

	{"ROR", 0x6A, Accumulator, 2, false}, {"ROR", 0x66, ZeroPage, 5, false},
	{"ROR", 0x76, ZeroPageX, 6, false}, {"ROR", 0x6E, Absolute, 6, false},
	{"ROR", 0x7E, AbsoluteX, 7, false},

	{"RTI", 0x40, Implied, 6, false},
	{"RTS", 0x60, Implied, 6, false},

	{"SBC", 0xE9, Immediate, 2, false}, {"SBC", 0xE5, ZeroPage, 3, false},
	{"SBC", 0xF5, ZeroPageX, 4, false}, {"SBC", 0xED, Absolute, 4, false},
	{"SBC", 0xFD, AbsoluteX, 4, true}, {"SBC", 0xF9, AbsoluteY, 4, true},
	{"SBC", 0xE1, XIndirect, 6, false}, {"SBC", 0xF1, IndirectY, 5, true},

	{"SEC", 0x38, Implied, 2, false},
	{"SED", 0xF8, Implied, 2, false},
	{"SEI", 0x78, Implied, 2, false},

	{"STA", 0x85, ZeroPage, 3, false}, {"STA", 0x95, ZeroPageX, 4, false},
	{"STA", 0x8D, Absolute, 4, false}, {"STA", 0x9D, AbsoluteX, 5, false},
	{"STA", 0x99, AbsoluteY, 5, false}, {"STA", 0x81, XIndirect, 6, false},
	{"STA", 0x91, IndirectY, 6, false},

	{"STX", 0x86, ZeroPage, 3, false}, {"STX", 0x96, ZeroPageY, 4, false},
	{"STX", 0x8E, Absolute, 4, false},

	{"STY", 0x84, ZeroPage, 3, false}, {"STY", 0x94, ZeroPageX, 4, false},
	{"STY", 0x8C, Absolute, 4, false},

	{"TAX", 0xAA, Implied, 2, false},
	{"TAY", 0xA8, Implied, 2, false},
	{"TSX", 0xBA, Implied, 2, false},
	{"TXA", 0x8A, Implied, 2, false},
	{"TXS", 0x9A, Implied, 2, false},
	{"TYA", 0x98, Implied, 2, false},
})

type rawEntry struct {
	mnemonic         string
	opcode           byte
	mode             AddressingMode
	baseCycles       uint8
	pageCrossPenalty bool
}

// buildTable turns the literal entries above into the opcode -> pointer
// lookup array, deriving Length from Mode (never stated redundantly) and
// panicking if any opcode byte repeats — opcode to descriptor must be
// a bijection.
func buildTable(entries []rawEntry) [256]*Instruction {
	var table [256]*Instruction
	for _, e := range entries {
		if table[e.opcode] != nil {
			panic("cpu: duplicate opcode in table: " + e.mnemonic)
		}
		table[e.opcode] = &Instruction{
			Mnemonic:         e.mnemonic,
			Opcode:           e.opcode,
			Mode:             e.mode,
			Length:           operandLength(e.mode),
			BaseCycles:       e.baseCycles,
			PageCrossPenalty: e.pageCrossPenalty,
		}
	}
	return table
}

// lookup returns the descriptor for opcode, or nil if undefined.
func lookup(opcode byte) *Instruction {
	return opcodeTable[opcode]
}

// DefinedOpcodeCount returns how many of the 256 possible opcode bytes
// decode to a documented instruction. Exercised by the structural tests
// for structural tests asserting the opcode table's coverage.
func DefinedOpcodeCount() int {
	n := 0
	for _, instr := range opcodeTable {
		if instr != nil {
			n++
		}
	}
	return n
}
