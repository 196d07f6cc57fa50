package registry

import (
	"bytes"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"

	apperrors "land-sentinel/internal/errors"
)

// PlotIDReader extracts the printed plot identifier from a reference map
// image. Implementations may fail when no identifier is legible.
type PlotIDReader interface {
	ReadPlotID(img image.Image) (string, error)
}

type tesseractReader struct{}

// NewPlotIDReader returns a Tesseract-backed reader. A client is created per
// call because gosseract clients are not safe for concurrent use.
func NewPlotIDReader() PlotIDReader {
	return tesseractReader{}
}

func (tesseractReader) ReadPlotID(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", apperrors.NewProcessingError("failed to encode image for OCR", err)
	}

	client := gosseract.NewClient()
	defer client.Close()
	if err := client.SetWhitelist("ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-/ "); err != nil {
		return "", apperrors.NewProcessingError("failed to configure OCR character whitelist", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", apperrors.NewProcessingError("OCR engine rejected image", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", apperrors.NewProcessingError("OCR extraction failed", err)
	}

	id := pickPlotID(text)
	if id == "" {
		return "", apperrors.NewProcessingError("no plot identifier found in image", nil)
	}
	return id, nil
}

// pickPlotID selects the most identifier-like token from raw OCR text: the
// longest token that mixes letters or digits with at least three characters.
func pickPlotID(text string) string {
	best := ""
	for _, tok := range strings.FieldsFunc(text, func(r rune) bool {
		return r == ' ' || r == '\n' || r == '\t' || r == ','
	}) {
		tok = strings.Trim(tok, ".:;")
		if len(tok) < 3 {
			continue
		}
		if !hasAlnum(tok) {
			continue
		}
		if len(tok) > len(best) {
			best = tok
		}
	}
	return best
}

func hasAlnum(s string) bool {
	for _, r := range s {
		if r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
