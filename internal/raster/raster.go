package raster

import (
	"bytes"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"

	apperrors "land-sentinel/internal/errors"
)

// Decode turns raw bytes into an image, failing with a typed decode error
// when the bytes are not a supported raster format.
func Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, apperrors.NewDecodeError("empty image payload", nil)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.NewDecodeError("unsupported or corrupt raster format", err)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, apperrors.NewDecodeError("decoded raster has zero extent", nil)
	}
	return img, nil
}

// NormalizePair resamples a reference/target pair to one shared working
// resolution. The shape donor is the image with more pixels; its aspect ratio
// is preserved under the maxDim cap. Both outputs are guaranteed to share
// dimensions.
func NormalizePair(ref, tgt image.Image, maxDim int) (*image.NRGBA, *image.NRGBA) {
	w, h := workingSize(ref.Bounds(), tgt.Bounds(), maxDim)
	// Linear resampling keeps structural edges reasonably crisp without the
	// ringing of higher-order filters.
	refOut := imaging.Resize(ref, w, h, imaging.Linear)
	tgtOut := imaging.Resize(tgt, w, h, imaging.Linear)
	return refOut, tgtOut
}

// workingSize picks the shared analysis resolution for a raster pair.
func workingSize(ref, tgt image.Rectangle, maxDim int) (int, int) {
	donor := ref
	if tgt.Dx()*tgt.Dy() > ref.Dx()*ref.Dy() {
		donor = tgt
	}
	w, h := donor.Dx(), donor.Dy()
	longest := w
	if h > longest {
		longest = h
	}
	if maxDim > 0 && longest > maxDim {
		scale := float64(maxDim) / float64(longest)
		w = int(float64(w)*scale + 0.5)
		h = int(float64(h)*scale + 0.5)
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// ToGray converts any image to 8-bit grayscale with a (0,0) origin.
func ToGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok && g.Bounds().Min == (image.Point{}) {
		return g
	}
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)
	return gray
}

// ToNRGBA converts any image to NRGBA with a (0,0) origin.
func ToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Bounds().Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
