// Package interpreter provides the brainfuck execution engine.
// It walks the program buffer byte by byte, driving the tape for data
// operations and rescanning the buffer for loop jumps.
package interpreter

import (
	"fmt"
	"io"
	"os"

	"github.com/bfLang/bf/pkg/tape"
)

// Terminal status codes (mirrored in the Status field when the run ends).
const (
	StatusOK               = 0
	StatusUnmatchedBracket = 1
	StatusAllocation       = 2
	StatusIO               = 3
	StatusGasExhausted     = 4
)

// StatusMessage returns a human-readable message for a status code.
func StatusMessage(code int) string {
	switch code {
	case StatusOK:
		return "ok"
	case StatusUnmatchedBracket:
		return "unmatched brackets"
	case StatusAllocation:
		return "bad memory allocation"
	case StatusIO:
		return "input/output error"
	case StatusGasExhausted:
		return "gas exhausted"
	default:
		return fmt.Sprintf("unknown status %d", code)
	}
}

// Machine is the brainfuck interpreter.
// Code is read-only for the whole run and may be shared across
// Machines; the tape and program counter are exclusively owned.
type Machine struct {
	// Code is the program buffer
	Code []byte
	// PC is the instruction pointer into Code
	PC int

	// Tape is the cell memory
	Tape *tape.Tape

	// Input yields one byte per ',' (exhaustion stores 0)
	Input io.Reader
	// Output receives one byte per '.'
	Output io.Writer

	// Gas is the remaining computation budget, MaxGas the starting
	// amount (0 = unlimited). Every instruction and every byte
	// inspected during a bracket scan costs 1.
	Gas    int
	MaxGas int

	// Status holds the terminal status code
	Status int

	// Debug shows each instruction as it executes
	Debug bool

	// Halted is set when the run ends
	Halted bool

	inbuf [1]byte
}

// New creates a Machine with a fresh tape, reading from stdin and
// writing to stdout.
func New() *Machine {
	return &Machine{
		Tape:   tape.New(),
		Input:  os.Stdin,
		Output: os.Stdout,
	}
}

// Load loads a program into the machine and rewinds the PC.
func (m *Machine) Load(code []byte) {
	m.Code = code
	m.PC = 0
}

// Reset discards the tape and clears all run state.
// The configured limits, input and output are kept.
func (m *Machine) Reset() {
	limit := 0
	if m.Tape != nil {
		limit = m.Tape.MaxCells
	}
	m.Tape = tape.New()
	m.Tape.MaxCells = limit
	m.PC = 0
	m.Status = StatusOK
	m.Halted = false
	if m.MaxGas > 0 {
		m.Gas = m.MaxGas
	}
}

// fail records the terminal status and halts the run.
func (m *Machine) fail(code int, format string, args ...interface{}) error {
	m.Status = code
	m.Halted = true
	return fmt.Errorf(format, args...)
}

// consumeGas decrements gas and reports whether execution can continue.
func (m *Machine) consumeGas() bool {
	if m.MaxGas == 0 {
		return true
	}
	m.Gas--
	return m.Gas > 0
}

// Step executes one instruction.
func (m *Machine) Step() error {
	if m.Halted {
		return nil
	}

	if m.PC >= len(m.Code) {
		m.Halted = true
		return nil
	}

	if !m.consumeGas() {
		return m.fail(StatusGasExhausted, "gas exhausted at pc=%d", m.PC)
	}

	op := m.Code[m.PC]

	if m.Debug {
		fmt.Fprintf(m.Output, "  [%04d] %c tape=%s\n", m.PC, op, m.Tape.Dump())
	}

	switch op {
	case '+':
		m.Tape.Increment()

	case '-':
		m.Tape.Decrement()

	case '>':
		if err := m.Tape.Right(); err != nil {
			return m.fail(StatusAllocation, "pc=%d: %v", m.PC, err)
		}

	case '<':
		if err := m.Tape.Left(); err != nil {
			return m.fail(StatusAllocation, "pc=%d: %v", m.PC, err)
		}

	case '.':
		if _, err := m.Output.Write([]byte{m.Tape.Current()}); err != nil {
			return m.fail(StatusIO, "pc=%d: write: %v", m.PC, err)
		}

	case ',':
		// End-of-input convention: store 0. A read error is
		// indistinguishable from exhaustion here.
		if _, err := io.ReadFull(m.Input, m.inbuf[:]); err != nil {
			m.Tape.Set(0)
		} else {
			m.Tape.Set(m.inbuf[0])
		}

	case '[':
		// The partner is located on every evaluation, so an
		// unclosed '[' fails the moment it executes, even when
		// the cell is nonzero and no jump is taken.
		j, err := m.matchForward()
		if err != nil {
			return err
		}
		if m.Tape.Current() == 0 {
			m.PC = j
		}

	case ']':
		j, err := m.matchBackward()
		if err != nil {
			return err
		}
		if m.Tape.Current() != 0 {
			m.PC = j
		}

	default:
		// any other byte is a comment
	}

	m.PC++
	return nil
}

// matchForward scans right from the '[' at the current PC and returns
// the index of its matching ']'.
func (m *Machine) matchForward() (int, error) {
	bal := 1
	i := m.PC
	for bal != 0 {
		i++
		if i >= len(m.Code) {
			return 0, m.fail(StatusUnmatchedBracket, "pc=%d: '[' without matching ']'", m.PC)
		}
		if !m.consumeGas() {
			return 0, m.fail(StatusGasExhausted, "gas exhausted at pc=%d", m.PC)
		}
		switch m.Code[i] {
		case '[':
			bal++
		case ']':
			bal--
		}
	}
	return i, nil
}

// matchBackward scans left from the ']' at the current PC and returns
// the index of its matching '['. Some evil programs could run the scan
// off the front of the buffer, so the bound is checked before every
// dereference.
func (m *Machine) matchBackward() (int, error) {
	bal := 1
	i := m.PC
	for bal != 0 {
		i--
		if i < 0 {
			return 0, m.fail(StatusUnmatchedBracket, "pc=%d: ']' without matching '['", m.PC)
		}
		if !m.consumeGas() {
			return 0, m.fail(StatusGasExhausted, "gas exhausted at pc=%d", m.PC)
		}
		switch m.Code[i] {
		case ']':
			bal++
		case '[':
			bal--
		}
	}
	return i, nil
}

// Run executes until the program ends or a fatal error occurs.
func (m *Machine) Run() error {
	for !m.Halted {
		if err := m.Step(); err != nil {
			return err
		}
	}
	return nil
}
