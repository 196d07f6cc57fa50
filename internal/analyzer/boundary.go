package analyzer

import (
	"math"
	"sort"

	"land-sentinel/internal/raster"
	"land-sentinel/pkg/models"
)

// BoundaryMask rasterizes an approved-boundary spec to a fill mask of the
// working resolution. Restricting analysis to this mask is the single most
// important correctness control of the pipeline: without it, off-parcel
// construction would be reported as encroachment.
//
// Vertices outside the frame are clipped to it, never rejected. A polygon
// with fewer than three usable vertices produces an empty mask, which the
// classifier treats as a degenerate (zero-area) boundary.
func BoundaryMask(w, h int, spec models.BoundarySpec) raster.Mask {
	mask := raster.NewMask(w, h)
	if spec.FullFrame {
		for i := range mask.Pix {
			mask.Pix[i] = 255
		}
		return mask
	}
	if len(spec.Polygon) < 3 {
		return mask
	}

	pts := make([]models.Point, len(spec.Polygon))
	for i, p := range spec.Polygon {
		pts[i] = models.Point{
			X: math.Min(math.Max(p.X, 0), float64(w)),
			Y: math.Min(math.Max(p.Y, 0), float64(h)),
		}
	}

	fillPolygon(mask, pts)
	return mask
}

// fillPolygon scanline-fills a closed polygon using the even-odd rule,
// sampling each row at pixel centers.
func fillPolygon(mask raster.Mask, pts []models.Point) {
	w, h := mask.Width(), mask.Height()
	xs := make([]float64, 0, len(pts))

	for y := 0; y < h; y++ {
		cy := float64(y) + 0.5
		xs = xs[:0]
		for i := 0; i < len(pts); i++ {
			a := pts[i]
			b := pts[(i+1)%len(pts)]
			if (a.Y <= cy && b.Y > cy) || (b.Y <= cy && a.Y > cy) {
				t := (cy - a.Y) / (b.Y - a.Y)
				xs = append(xs, a.X+t*(b.X-a.X))
			}
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			start := int(math.Ceil(xs[i] - 0.5))
			end := int(math.Floor(xs[i+1] - 0.5))
			if start < 0 {
				start = 0
			}
			if end > w-1 {
				end = w - 1
			}
			for x := start; x <= end; x++ {
				mask.Pix[y*mask.Stride+x] = 255
			}
		}
	}
}
