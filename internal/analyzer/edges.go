package analyzer

import (
	"image"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"land-sentinel/internal/raster"
)

// gaussianBlur applies a separable 5-tap binomial kernel (1 4 6 4 1)/16 with
// replicated borders.
func gaussianBlur(gray *image.Gray) *image.Gray {
	w, h := gray.Rect.Dx(), gray.Rect.Dy()
	kernel := [5]float64{1, 4, 6, 4, 1}

	tmp := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float64
			for k := -2; k <= 2; k++ {
				xx := clampInt(x+k, 0, w-1)
				sum += kernel[k+2] * float64(gray.GrayAt(xx, y).Y)
			}
			tmp[y*w+x] = sum / 16.0
		}
	}

	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float64
			for k := -2; k <= 2; k++ {
				yy := clampInt(y+k, 0, h-1)
				sum += kernel[k+2] * tmp[yy*w+x]
			}
			out.Pix[y*out.Stride+x] = uint8(sum/16.0 + 0.5)
		}
	}
	return out
}

// sobelMagnitude computes the gradient magnitude at every interior pixel.
// Border pixels are left at zero.
func sobelMagnitude(gray *image.Gray) []float64 {
	w, h := gray.Rect.Dx(), gray.Rect.Dy()
	mag := make([]float64, w*h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			gx := -int(gray.GrayAt(x-1, y-1).Y) + int(gray.GrayAt(x+1, y-1).Y) +
				-2*int(gray.GrayAt(x-1, y).Y) + 2*int(gray.GrayAt(x+1, y).Y) +
				-int(gray.GrayAt(x-1, y+1).Y) + int(gray.GrayAt(x+1, y+1).Y)

			gy := -int(gray.GrayAt(x-1, y-1).Y) - 2*int(gray.GrayAt(x, y-1).Y) - int(gray.GrayAt(x+1, y-1).Y) +
				int(gray.GrayAt(x-1, y+1).Y) + 2*int(gray.GrayAt(x, y+1).Y) + int(gray.GrayAt(x+1, y+1).Y)

			mag[y*w+x] = math.Sqrt(float64(gx*gx + gy*gy))
		}
	}
	return mag
}

// detectEdges runs median-calibrated two-threshold edge detection: gradients
// at or above the upper threshold are strong edges, gradients between the two
// thresholds are weak edges and survive only when connected to a strong one.
func detectEdges(blurred *image.Gray, opts Options) raster.Mask {
	w, h := blurred.Rect.Dx(), blurred.Rect.Dy()
	out := raster.NewMask(w, h)

	median := medianGray(blurred)
	lower := (1.0 - opts.EdgeSigma) * median
	upper := (1.0 + opts.EdgeSigma) * median
	if lower < opts.MinEdgeThreshold {
		lower = opts.MinEdgeThreshold
	}
	if upper <= lower {
		upper = lower + 1
	}

	mag := sobelMagnitude(blurred)

	// Seed with strong edges, then flood through weak ones (8-connected).
	queue := make([]int, 0, w)
	visited := make([]bool, w*h)
	for i, m := range mag {
		if m >= upper {
			visited[i] = true
			queue = append(queue, i)
		}
	}
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		out.Pix[i] = 255
		x, y := i%w, i/w
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := x+dx, y+dy
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				ni := ny*w + nx
				if !visited[ni] && mag[ni] >= lower {
					visited[ni] = true
					queue = append(queue, ni)
				}
			}
		}
	}
	return out
}

// medianGray returns the median pixel intensity.
func medianGray(gray *image.Gray) float64 {
	w, h := gray.Rect.Dx(), gray.Rect.Dy()
	vals := make([]float64, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			vals = append(vals, float64(gray.GrayAt(x, y).Y))
		}
	}
	if len(vals) == 0 {
		return 0
	}
	sort.Float64s(vals)
	return stat.Quantile(0.5, stat.Empirical, vals, nil)
}

// grayVariance returns the intensity variance of the raster.
func grayVariance(gray *image.Gray) float64 {
	w, h := gray.Rect.Dx(), gray.Rect.Dy()
	vals := make([]float64, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			vals = append(vals, float64(gray.GrayAt(x, y).Y))
		}
	}
	if len(vals) < 2 {
		return 0
	}
	return stat.Variance(vals, nil)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
