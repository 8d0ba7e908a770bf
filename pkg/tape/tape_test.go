package tape

import (
	"strings"
	"testing"
)

func TestNewTape(t *testing.T) {
	tp := New()
	if tp.Current() != 0 {
		t.Errorf("Expected fresh cell to be 0, got %d", tp.Current())
	}
	if tp.Pos() != 0 {
		t.Errorf("Expected cursor at 0, got %d", tp.Pos())
	}
	if tp.Len() != 1 {
		t.Errorf("Expected 1 materialized cell, got %d", tp.Len())
	}
}

func TestWraparound(t *testing.T) {
	tests := []struct {
		name     string
		plus     int
		minus    int
		expected byte
	}{
		{"inc", 5, 0, 5},
		{"dec from zero", 0, 1, 255},
		{"wrap up", 256, 0, 0},
		{"wrap up plus one", 257, 0, 1},
		{"wrap down", 0, 256, 0},
		{"mixed", 300, 44, 0},
		{"mixed nonzero", 10, 3, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tp := New()
			for i := 0; i < tt.plus; i++ {
				tp.Increment()
			}
			for i := 0; i < tt.minus; i++ {
				tp.Decrement()
			}
			if tp.Current() != tt.expected {
				t.Errorf("Expected %d, got %d", tt.expected, tp.Current())
			}
		})
	}
}

// Interleaving order must not matter, only the net count mod 256.
func TestWraparoundInterleaved(t *testing.T) {
	tp := New()
	for i := 0; i < 1000; i++ {
		tp.Increment()
		tp.Decrement()
		tp.Increment()
	}
	if expected := byte(1000 % 256); tp.Current() != expected {
		t.Errorf("Expected %d, got %d", expected, tp.Current())
	}
}

func TestRoundTrip(t *testing.T) {
	tp := New()
	tp.Set(42)

	for i := 0; i < 100; i++ {
		if err := tp.Right(); err != nil {
			t.Fatalf("Right: %v", err)
		}
		if err := tp.Left(); err != nil {
			t.Fatalf("Left: %v", err)
		}
		if tp.Pos() != 0 {
			t.Fatalf("Expected cursor back at 0, got %d", tp.Pos())
		}
		if tp.Current() != 42 {
			t.Fatalf("Expected 42 after round trip, got %d", tp.Current())
		}
	}
}

func TestLazyGrowthBothDirections(t *testing.T) {
	tp := New()

	for i := 1; i <= 50; i++ {
		if err := tp.Right(); err != nil {
			t.Fatalf("Right: %v", err)
		}
		tp.Set(byte(i))
	}
	for i := 0; i < 100; i++ {
		if err := tp.Left(); err != nil {
			t.Fatalf("Left: %v", err)
		}
	}

	if tp.Pos() != -50 {
		t.Errorf("Expected cursor at -50, got %d", tp.Pos())
	}
	if tp.Current() != 0 {
		t.Errorf("Expected unvisited cell to be 0, got %d", tp.Current())
	}
	if tp.Len() != 101 {
		t.Errorf("Expected 101 materialized cells, got %d", tp.Len())
	}

	// Walk back and verify the visited values survived
	for i := 0; i < 100; i++ {
		if err := tp.Right(); err != nil {
			t.Fatalf("Right: %v", err)
		}
	}
	if tp.Current() != 50 {
		t.Errorf("Expected 50, got %d", tp.Current())
	}
}

func TestCursorStress(t *testing.T) {
	tp := New()
	tp.Set(7)

	for i := 0; i < 10000; i++ {
		if err := tp.Right(); err != nil {
			t.Fatalf("Right %d: %v", i, err)
		}
	}
	for i := 0; i < 10000; i++ {
		if err := tp.Left(); err != nil {
			t.Fatalf("Left %d: %v", i, err)
		}
	}

	if tp.Pos() != 0 {
		t.Errorf("Expected cursor back at 0, got %d", tp.Pos())
	}
	if tp.Current() != 7 {
		t.Errorf("Expected original value 7, got %d", tp.Current())
	}
}

func TestCellLimit(t *testing.T) {
	tp := New()
	tp.MaxCells = 4

	for i := 0; i < 3; i++ {
		if err := tp.Right(); err != nil {
			t.Fatalf("Right %d within limit: %v", i, err)
		}
	}
	if err := tp.Right(); err == nil {
		t.Error("Expected error when growing past MaxCells, got nil")
	}
	if err := tp.Left(); err != nil {
		t.Errorf("Moving back over materialized cells should not fail: %v", err)
	}
}

func TestDump(t *testing.T) {
	tp := New()
	tp.Set(1)
	if err := tp.Right(); err != nil {
		t.Fatalf("Right: %v", err)
	}
	tp.Set(2)

	dump := tp.Dump()
	if !strings.Contains(dump, "<2>") {
		t.Errorf("Expected dump to mark current cell, got %q", dump)
	}
	if !strings.Contains(dump, "1 ") {
		t.Errorf("Expected dump to contain other cells, got %q", dump)
	}
}
