package analyzer

import "land-sentinel/internal/raster"

// dilate grows set regions by a square kernel of the given odd size.
func dilate(m raster.Mask, kernel, iterations int) raster.Mask {
	return morph(m, kernel, iterations, true)
}

// erode shrinks set regions by a square kernel of the given odd size.
func erode(m raster.Mask, kernel, iterations int) raster.Mask {
	return morph(m, kernel, iterations, false)
}

// closeMask fills small gaps: dilate then erode.
func closeMask(m raster.Mask, kernel, iterations int) raster.Mask {
	return erode(dilate(m, kernel, iterations), kernel, iterations)
}

// openMask removes isolated noise pixels: erode then dilate.
func openMask(m raster.Mask, kernel, iterations int) raster.Mask {
	return dilate(erode(m, kernel, iterations), kernel, iterations)
}

func morph(m raster.Mask, kernel, iterations int, grow bool) raster.Mask {
	if kernel < 3 || iterations < 1 {
		return m.Clone()
	}
	r := kernel / 2
	w, h := m.Width(), m.Height()

	cur := m.Clone()
	for it := 0; it < iterations; it++ {
		next := raster.NewMask(w, h)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if grow {
					if anyInWindow(cur, x, y, r) {
						next.Pix[y*next.Stride+x] = 255
					}
				} else {
					if allInWindow(cur, x, y, r) {
						next.Pix[y*next.Stride+x] = 255
					}
				}
			}
		}
		cur = next
	}
	return cur
}

func anyInWindow(m raster.Mask, x, y, r int) bool {
	w, h := m.Width(), m.Height()
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			nx, ny := x+dx, y+dy
			if nx < 0 || ny < 0 || nx >= w || ny >= h {
				continue
			}
			if m.On(nx, ny) {
				return true
			}
		}
	}
	return false
}

func allInWindow(m raster.Mask, x, y, r int) bool {
	w, h := m.Width(), m.Height()
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			nx, ny := x+dx, y+dy
			if nx < 0 || ny < 0 || nx >= w || ny >= h {
				// Pixels past the frame edge count as clear; erosion
				// therefore trims the border rather than preserving it.
				return false
			}
			if !m.On(nx, ny) {
				return false
			}
		}
	}
	return true
}
