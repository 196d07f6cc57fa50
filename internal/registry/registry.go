package registry

import (
	"encoding/json"
	"os"
	"sort"
	"strings"

	"github.com/arbovm/levenshtein"

	"land-sentinel/pkg/models"
)

// Entry is one digitized plot in the official registry: the approved
// boundary polygon in normalized (0..1) coordinates plus the calibration
// needed for financial estimates.
type Entry struct {
	PlotID          string         `json:"plot_id"`
	Name            string         `json:"name,omitempty"`
	ApprovedAreaSqm float64        `json:"approved_area_sqm,omitempty"`
	Polygon         []models.Point `json:"polygon"`
}

// PixelPolygon scales the normalized boundary to the working resolution.
func (e Entry) PixelPolygon(w, h int) []models.Point {
	pts := make([]models.Point, len(e.Polygon))
	for i, p := range e.Polygon {
		pts[i] = models.Point{X: p.X * float64(w), Y: p.Y * float64(h)}
	}
	return pts
}

// Registry holds the official plot entries, loaded once at startup and
// read-only afterwards.
type Registry struct {
	entries []Entry
	byID    map[string]Entry
}

// Load reads a registry JSON file. An empty path yields an empty registry,
// which matches plots to nothing.
func Load(path string) (*Registry, error) {
	r := &Registry{byID: make(map[string]Entry)}
	if path == "" {
		return r, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &r.entries); err != nil {
		return nil, err
	}
	sort.Slice(r.entries, func(i, j int) bool { return r.entries[i].PlotID < r.entries[j].PlotID })
	for _, e := range r.entries {
		r.byID[normalizeID(e.PlotID)] = e
	}
	return r, nil
}

// Len returns the number of registered plots.
func (r *Registry) Len() int { return len(r.entries) }

// Get looks a plot up by exact (case-insensitive) ID.
func (r *Registry) Get(plotID string) (Entry, bool) {
	e, ok := r.byID[normalizeID(plotID)]
	return e, ok
}

// Match finds the registry entry whose ID is closest to the candidate under
// edit distance. OCR output is noisy, so up to one edit per four characters
// is tolerated; anything worse is treated as no match.
func (r *Registry) Match(candidate string) (Entry, bool) {
	cand := normalizeID(candidate)
	if cand == "" {
		return Entry{}, false
	}
	if e, ok := r.byID[cand]; ok {
		return e, true
	}

	best := Entry{}
	bestDist := -1
	for _, e := range r.entries {
		d := levenshtein.Distance(cand, normalizeID(e.PlotID))
		if bestDist < 0 || d < bestDist {
			best, bestDist = e, d
		}
	}
	limit := len(cand) / 4
	if limit < 1 {
		limit = 1
	}
	if bestDist < 0 || bestDist > limit {
		return Entry{}, false
	}
	return best, true
}

func normalizeID(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(strings.TrimSpace(s)) {
		if r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
