package analyzer

import (
	"land-sentinel/internal/raster"
	"land-sentinel/pkg/models"
)

type componentStats struct {
	count                  int
	sumX, sumY             float64
	minX, minY, maxX, maxY int
}

// extractRegions finds 4-connected components in the mask and returns one
// ChangeRegion per component at or above the minimum area. Components are
// emitted in scan order, so the result is deterministic for a given mask.
func extractRegions(m raster.Mask, minArea int, label models.RegionLabel) []models.ChangeRegion {
	w, h := m.Width(), m.Height()
	visited := make([]bool, w*h)
	var regions []models.ChangeRegion

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if visited[i] || m.Pix[i] == 0 {
				continue
			}
			st := floodComponent(m, visited, x, y)
			if st.count < minArea {
				continue
			}
			regions = append(regions, models.ChangeRegion{
				Label:  label,
				AreaPx: st.count,
				Bounds: models.Rect{
					MinX: st.minX, MinY: st.minY,
					MaxX: st.maxX + 1, MaxY: st.maxY + 1,
				},
				Centroid: models.Point{
					X: st.sumX / float64(st.count),
					Y: st.sumY / float64(st.count),
				},
			})
		}
	}
	return regions
}

// floodComponent gathers stats for the component containing (startX, startY)
// via breadth-first traversal over 4-connected neighbors.
func floodComponent(m raster.Mask, visited []bool, startX, startY int) componentStats {
	w, h := m.Width(), m.Height()
	st := componentStats{minX: startX, minY: startY, maxX: startX, maxY: startY}

	queue := []int{startY*w + startX}
	visited[startY*w+startX] = true

	dirs := [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		x, y := i%w, i/w

		st.count++
		st.sumX += float64(x)
		st.sumY += float64(y)
		if x < st.minX {
			st.minX = x
		}
		if y < st.minY {
			st.minY = y
		}
		if x > st.maxX {
			st.maxX = x
		}
		if y > st.maxY {
			st.maxY = y
		}

		for _, d := range dirs {
			nx, ny := x+d[0], y+d[1]
			if nx < 0 || ny < 0 || nx >= w || ny >= h {
				continue
			}
			ni := ny*w + nx
			if !visited[ni] && m.Pix[ni] != 0 {
				visited[ni] = true
				queue = append(queue, ni)
			}
		}
	}
	return st
}
