package analyzer

import (
	"image"
	"image/color"
	"image/draw"

	"land-sentinel/internal/raster"
	"land-sentinel/pkg/models"
)

var (
	colorEncroachment = color.NRGBA{R: 220, G: 38, B: 38, A: 255}
	colorVacant       = color.NRGBA{R: 234, G: 179, B: 8, A: 255}
	colorStructure    = color.NRGBA{R: 22, G: 163, B: 74, A: 255}
	colorGround       = color.NRGBA{R: 30, G: 41, B: 59, A: 255}
	colorOutside      = color.NRGBA{A: 255}
	colorBoundary     = color.NRGBA{G: 255, A: 255}
)

type renderer struct{}

// NewRenderer creates the default artifact renderer. Output is a pure
// function of the rasters and masks, so identical inputs produce
// pixel-identical artifacts.
func NewRenderer() Renderer {
	return renderer{}
}

func (renderer) Render(ref, tgt image.Image, cls Classification) RenderedArtifacts {
	return RenderedArtifacts{
		Heatmap:    renderHeatmap(cls),
		Annotated:  renderAnnotated(tgt, cls),
		Mask:       renderMask(cls.Encroachment),
		Comparison: renderComparison(ref, tgt),
	}
}

// renderHeatmap colorizes the per-pixel classification: red encroachment,
// amber vacant-deviation, green compliant structure, slate open ground,
// black outside the boundary.
func renderHeatmap(cls Classification) image.Image {
	w, h := cls.Boundary.Width(), cls.Boundary.Height()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var c color.NRGBA
			switch {
			case !cls.Boundary.On(x, y):
				c = colorOutside
			case cls.Encroachment.On(x, y):
				c = colorEncroachment
			case cls.Vacant.On(x, y):
				c = colorVacant
			case cls.TgtStruct.On(x, y):
				c = colorStructure
			default:
				c = colorGround
			}
			out.SetNRGBA(x, y, c)
		}
	}
	return out
}

// renderAnnotated draws the encroachment fill, region bounding boxes and the
// boundary outline atop a copy of the target raster.
func renderAnnotated(tgt image.Image, cls Classification) image.Image {
	out := raster.ToNRGBA(tgt)
	out = cloneNRGBA(out)
	w, h := cls.Boundary.Width(), cls.Boundary.Height()

	// Red wash over encroached pixels, 40% opacity.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if cls.Encroachment.On(x, y) {
				blend(out, x, y, colorEncroachment, 0.4)
			}
		}
	}

	for _, reg := range cls.Regions {
		if reg.Label != models.RegionEncroachment {
			continue
		}
		drawRect(out, reg.Bounds, colorEncroachment)
	}

	outline := boundaryOutline(cls.Boundary)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if outline.On(x, y) {
				out.SetNRGBA(x, y, colorBoundary)
			}
		}
	}
	return out
}

// renderMask exposes the raw binary change mask as a grayscale raster.
func renderMask(m raster.Mask) image.Image {
	return m.Clone().Gray
}

// renderComparison places reference and target side by side.
func renderComparison(ref, tgt image.Image) image.Image {
	rb, tb := ref.Bounds(), tgt.Bounds()
	h := rb.Dy()
	if tb.Dy() > h {
		h = tb.Dy()
	}
	out := image.NewNRGBA(image.Rect(0, 0, rb.Dx()+tb.Dx(), h))
	draw.Draw(out, image.Rect(0, 0, rb.Dx(), rb.Dy()), ref, rb.Min, draw.Src)
	draw.Draw(out, image.Rect(rb.Dx(), 0, rb.Dx()+tb.Dx(), tb.Dy()), tgt, tb.Min, draw.Src)
	return out
}

// boundaryOutline returns the two-pixel rim of the boundary mask.
func boundaryOutline(b raster.Mask) raster.Mask {
	return raster.AndNot(b, erode(b, 3, 2))
}

func blend(img *image.NRGBA, x, y int, c color.NRGBA, alpha float64) {
	base := img.NRGBAAt(x, y)
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a)*(1-alpha) + float64(b)*alpha + 0.5)
	}
	img.SetNRGBA(x, y, color.NRGBA{
		R: mix(base.R, c.R),
		G: mix(base.G, c.G),
		B: mix(base.B, c.B),
		A: 255,
	})
}

func drawRect(img *image.NRGBA, r models.Rect, c color.NRGBA) {
	b := img.Bounds()
	for x := r.MinX; x < r.MaxX; x++ {
		setIfInside(img, b, x, r.MinY, c)
		setIfInside(img, b, x, r.MaxY-1, c)
	}
	for y := r.MinY; y < r.MaxY; y++ {
		setIfInside(img, b, r.MinX, y, c)
		setIfInside(img, b, r.MaxX-1, y, c)
	}
}

func setIfInside(img *image.NRGBA, b image.Rectangle, x, y int, c color.NRGBA) {
	if x >= b.Min.X && x < b.Max.X && y >= b.Min.Y && y < b.Max.Y {
		img.SetNRGBA(x, y, c)
	}
}

func cloneNRGBA(src *image.NRGBA) *image.NRGBA {
	out := image.NewNRGBA(src.Bounds())
	copy(out.Pix, src.Pix)
	return out
}
