package raster

import "image"

// Mask is a binary raster; set pixels are 255, clear pixels are 0. Masks are
// always derived from a source raster or a boundary spec, never hand-edited.
type Mask struct {
	*image.Gray
}

// NewMask returns an all-clear mask of the given dimensions.
func NewMask(w, h int) Mask {
	return Mask{image.NewGray(image.Rect(0, 0, w, h))}
}

// Width returns the mask width in pixels.
func (m Mask) Width() int { return m.Rect.Dx() }

// Height returns the mask height in pixels.
func (m Mask) Height() int { return m.Rect.Dy() }

// On reports whether the pixel at (x, y) is set.
func (m Mask) On(x, y int) bool {
	return m.GrayAt(x, y).Y != 0
}

// SetOn marks the pixel at (x, y).
func (m Mask) SetOn(x, y int) {
	m.Pix[m.PixOffset(x, y)] = 255
}

// SetOff clears the pixel at (x, y).
func (m Mask) SetOff(x, y int) {
	m.Pix[m.PixOffset(x, y)] = 0
}

// CountNonZero returns the number of set pixels.
func (m Mask) CountNonZero() int {
	n := 0
	for _, p := range m.Pix {
		if p != 0 {
			n++
		}
	}
	return n
}

// SameSize reports whether two masks share dimensions.
func (m Mask) SameSize(o Mask) bool {
	return m.Width() == o.Width() && m.Height() == o.Height()
}

// Clone returns an independent copy of the mask.
func (m Mask) Clone() Mask {
	c := NewMask(m.Width(), m.Height())
	copy(c.Pix, m.Pix)
	return c
}

// And returns a ∧ b. Panics on dimension mismatch; mismatched masks indicate
// a normalizer bug upstream.
func And(a, b Mask) Mask {
	mustMatch(a, b)
	out := NewMask(a.Width(), a.Height())
	for i := range a.Pix {
		if a.Pix[i] != 0 && b.Pix[i] != 0 {
			out.Pix[i] = 255
		}
	}
	return out
}

// AndNot returns a ∧ ¬b.
func AndNot(a, b Mask) Mask {
	mustMatch(a, b)
	out := NewMask(a.Width(), a.Height())
	for i := range a.Pix {
		if a.Pix[i] != 0 && b.Pix[i] == 0 {
			out.Pix[i] = 255
		}
	}
	return out
}

// Or returns a ∨ b.
func Or(a, b Mask) Mask {
	mustMatch(a, b)
	out := NewMask(a.Width(), a.Height())
	for i := range a.Pix {
		if a.Pix[i] != 0 || b.Pix[i] != 0 {
			out.Pix[i] = 255
		}
	}
	return out
}

// Invert returns ¬m.
func Invert(m Mask) Mask {
	out := NewMask(m.Width(), m.Height())
	for i := range m.Pix {
		if m.Pix[i] == 0 {
			out.Pix[i] = 255
		}
	}
	return out
}

func mustMatch(a, b Mask) {
	if !a.SameSize(b) {
		panic("raster: mask dimension mismatch")
	}
}
