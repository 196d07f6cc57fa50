package raster

import "testing"

func TestMaskSetAndCount(t *testing.T) {
	m := NewMask(10, 8)
	if m.CountNonZero() != 0 {
		t.Fatalf("Expected fresh mask to be empty, got %d set pixels", m.CountNonZero())
	}

	m.SetOn(0, 0)
	m.SetOn(9, 7)
	m.SetOn(4, 3)
	if got := m.CountNonZero(); got != 3 {
		t.Errorf("Expected 3 set pixels, got %d", got)
	}
	if !m.On(4, 3) {
		t.Error("Expected (4,3) to be set")
	}

	m.SetOff(4, 3)
	if m.On(4, 3) {
		t.Error("Expected (4,3) to be cleared")
	}
	if got := m.CountNonZero(); got != 2 {
		t.Errorf("Expected 2 set pixels after clear, got %d", got)
	}
}

func TestMaskCombinators(t *testing.T) {
	a := NewMask(4, 4)
	b := NewMask(4, 4)
	a.SetOn(0, 0)
	a.SetOn(1, 1)
	b.SetOn(1, 1)
	b.SetOn(2, 2)

	and := And(a, b)
	if and.CountNonZero() != 1 || !and.On(1, 1) {
		t.Errorf("And: expected only (1,1) set, got %d pixels", and.CountNonZero())
	}

	or := Or(a, b)
	if or.CountNonZero() != 3 {
		t.Errorf("Or: expected 3 pixels, got %d", or.CountNonZero())
	}

	diff := AndNot(a, b)
	if diff.CountNonZero() != 1 || !diff.On(0, 0) {
		t.Errorf("AndNot: expected only (0,0) set, got %d pixels", diff.CountNonZero())
	}

	inv := Invert(a)
	if inv.CountNonZero() != 14 {
		t.Errorf("Invert: expected 14 pixels, got %d", inv.CountNonZero())
	}
	if inv.On(0, 0) || inv.On(1, 1) {
		t.Error("Invert: original pixels should be cleared")
	}
}

func TestMaskCloneIsIndependent(t *testing.T) {
	m := NewMask(3, 3)
	m.SetOn(1, 1)

	c := m.Clone()
	c.SetOn(0, 0)

	if m.On(0, 0) {
		t.Error("Mutating a clone must not affect the original")
	}
	if !c.On(1, 1) {
		t.Error("Clone must carry the original's pixels")
	}
}

func TestMaskSizeMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic on combining masks of different sizes")
		}
	}()
	And(NewMask(4, 4), NewMask(5, 4))
}
