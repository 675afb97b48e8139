package cpu

import "errors"

// Errors that transition the CPU to HALT. The host observes the halted
// state and may call Reset to resume; the CPU never retries internally.
var (
	ErrUndefinedOpcode = errors.New("cpu: undefined opcode")
	ErrUnsupportedMode = errors.New("cpu: unsupported addressing mode")
	ErrDecimalMode     = errors.New("cpu: decimal mode is not supported on the NES 6502")
)
