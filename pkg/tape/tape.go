// Package tape provides the unbounded cell memory a brainfuck program
// operates on: 8-bit cells addressed through a single cursor that can
// walk off either end, with storage materialized on demand.
package tape

import (
	"fmt"
	"strings"
)

// Tape is an unbounded sequence of byte cells with one cursor.
// Cells are materialized lazily: two growable halves hold the
// non-negative and negative offsets from the starting cell, so the
// cursor can move arbitrarily far in either direction without the
// structure ever being rebuilt.
type Tape struct {
	// right holds cells at offsets 0, 1, 2, ...
	right []byte
	// left holds cells at offsets -1, -2, ... (left[i] is offset -(i+1))
	left []byte
	// pos is the cursor offset, signed
	pos int

	// MaxCells caps the number of materialized cells (0 = unlimited).
	// Moves that would grow past the cap fail instead of allocating.
	MaxCells int
}

// New creates a Tape with the starting cell materialized and the
// cursor on it.
func New() *Tape {
	return &Tape{
		right: make([]byte, 1, 64),
	}
}

// cell returns a pointer to the cell under the cursor.
func (t *Tape) cell() *byte {
	if t.pos >= 0 {
		return &t.right[t.pos]
	}
	return &t.left[-t.pos-1]
}

// Current returns the value of the cell under the cursor.
func (t *Tape) Current() byte {
	return *t.cell()
}

// Set stores v in the cell under the cursor.
func (t *Tape) Set(v byte) {
	*t.cell() = v
}

// Increment adds 1 to the current cell, wrapping 255 -> 0.
func (t *Tape) Increment() {
	*t.cell()++
}

// Decrement subtracts 1 from the current cell, wrapping 0 -> 255.
func (t *Tape) Decrement() {
	*t.cell()--
}

// Right moves the cursor one cell to the right, materializing the
// cell first if it does not exist yet.
func (t *Tape) Right() error {
	if t.pos+1 >= len(t.right) {
		if err := t.grow(); err != nil {
			return err
		}
		t.right = append(t.right, 0)
	}
	t.pos++
	return nil
}

// Left moves the cursor one cell to the left, materializing the
// cell first if it does not exist yet.
func (t *Tape) Left() error {
	if -(t.pos - 1) > len(t.left) {
		if err := t.grow(); err != nil {
			return err
		}
		t.left = append(t.left, 0)
	}
	t.pos--
	return nil
}

// grow checks the cell cap before a new cell is materialized.
func (t *Tape) grow() error {
	if t.MaxCells > 0 && t.Len() >= t.MaxCells {
		return fmt.Errorf("tape: cell limit %d exceeded", t.MaxCells)
	}
	return nil
}

// Pos returns the cursor offset from the starting cell (may be negative).
func (t *Tape) Pos() int {
	return t.pos
}

// Len returns the number of materialized cells.
func (t *Tape) Len() int {
	return len(t.left) + len(t.right)
}

// Dump returns a string representation of the materialized cells,
// with the cell under the cursor marked.
func (t *Tape) Dump() string {
	var b strings.Builder
	b.WriteString("[ ")
	for i := len(t.left) - 1; i >= 0; i-- {
		t.dumpCell(&b, -(i + 1), t.left[i])
	}
	for i, v := range t.right {
		t.dumpCell(&b, i, v)
	}
	b.WriteString("]")
	return b.String()
}

func (t *Tape) dumpCell(b *strings.Builder, off int, v byte) {
	if off == t.pos {
		fmt.Fprintf(b, "<%d> ", v)
	} else {
		fmt.Fprintf(b, "%d ", v)
	}
}
