package analyzer

import (
	"image"
	"math"

	"land-sentinel/internal/raster"
)

// structuralExtractor implements StructuralExtractor with color-space
// thresholding plus edge detection, merged and cleaned morphologically.
type structuralExtractor struct{}

// NewStructuralExtractor creates the default structural extractor.
func NewStructuralExtractor() StructuralExtractor {
	return structuralExtractor{}
}

// Extract reduces a raster to a binary "structure present" mask:
//  1. HSV thresholding separates low-saturation, high-value built surfaces
//     from vegetation and bare earth more robustly than raw RGB.
//  2. Median-calibrated two-threshold edge detection catches structural
//     outlines the color pass misses.
//  3. The union is closed to fill small gaps, then opened to drop speckle.
//
// A fully uniform frame yields an all-empty mask, not an error.
func (structuralExtractor) Extract(img image.Image, opts Options) raster.Mask {
	rgba := raster.ToNRGBA(img)
	gray := raster.ToGray(img)
	w, h := gray.Rect.Dx(), gray.Rect.Dy()

	if grayVariance(gray) <= opts.UniformVarianceEps {
		return raster.NewMask(w, h)
	}

	colorMask := hsvThreshold(rgba, opts)
	edges := detectEdges(gaussianBlur(gray), opts)

	combined := raster.Or(colorMask, edges)
	combined = closeMask(combined, opts.CloseKernel, opts.CloseIterations)
	combined = openMask(combined, opts.OpenKernel, opts.OpenIterations)
	return combined
}

// hsvThreshold marks pixels whose tone matches built surfaces: saturation at
// or below the ceiling and value at or above the floor.
func hsvThreshold(img *image.NRGBA, opts Options) raster.Mask {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	out := raster.NewMask(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*img.Stride + x*4
			r := float64(img.Pix[i]) / 255.0
			g := float64(img.Pix[i+1]) / 255.0
			b := float64(img.Pix[i+2]) / 255.0
			_, s, v := rgbToHSV(r, g, b)
			if uint8(s*255+0.5) <= opts.SaturationCeiling && uint8(v*255+0.5) >= opts.ValueFloor {
				out.Pix[y*out.Stride+x] = 255
			}
		}
	}
	return out
}

// rgbToHSV converts normalized RGB to HSV, hue in degrees.
func rgbToHSV(r, g, b float64) (h, s, v float64) {
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	delta := max - min

	v = max

	if max == 0 {
		s = 0
	} else {
		s = delta / max
	}

	switch {
	case delta == 0:
		h = 0
	case max == r:
		h = 60 * ((g - b) / delta)
	case max == g:
		h = 60 * (((b - r) / delta) + 2)
	default:
		h = 60 * (((r - g) / delta) + 4)
	}
	if h < 0 {
		h += 360
	}
	return h, s, v
}
