package costmap

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Plotter renders costmap snapshots as heatmap PNGs for inspecting grid
// state around mutations (e.g. before/after a clear). Files are written to
// outputDir as <mapName>_<seq>_<label>.png.
type Plotter struct {
	mu        sync.Mutex
	outputDir string
	mapName   string
	seq       int
}

// NewPlotter creates a plotter writing PNGs for the named map into
// outputDir. The directory is created on first save.
func NewPlotter(outputDir, mapName string) *Plotter {
	return &Plotter{outputDir: outputDir, mapName: mapName}
}

// costGrid adapts a detached costmap snapshot to plotter.GridXYZ. Axis
// values are the world coordinates of cell centres.
type costGrid struct {
	cells                        []uint8
	cellsX, cellsY               int
	resolution, originX, originY float64
}

func (g costGrid) Dims() (int, int) { return g.cellsX, g.cellsY }

func (g costGrid) Z(c, r int) float64 { return float64(g.cells[r*g.cellsX+c]) }

func (g costGrid) X(c int) float64 { return g.originX + (float64(c)+0.5)*g.resolution }

func (g costGrid) Y(r int) float64 { return g.originY + (float64(r)+0.5)*g.resolution }

// SavePNG snapshots the grid under its own mutex and writes a heatmap PNG.
// Returns the path of the written file.
func (p *Plotter) SavePNG(grid *Costmap2D, label string) (string, error) {
	grid.Mutex().Lock()
	snap := grid.Snapshot()
	grid.Mutex().Unlock()

	g := costGrid{
		cells:      snap,
		cellsX:     grid.CellsX(),
		cellsY:     grid.CellsY(),
		resolution: grid.Resolution(),
		originX:    grid.OriginX(),
		originY:    grid.OriginY(),
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := os.MkdirAll(p.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create plot directory: %w", err)
	}

	cm := moreland.SmoothBlueRed()
	cm.SetMin(0)
	cm.SetMax(255)

	plt := plot.New()
	plt.Title.Text = fmt.Sprintf("%s (%s)", p.mapName, label)
	plt.X.Label.Text = "world X (m)"
	plt.Y.Label.Text = "world Y (m)"
	plt.Add(plotter.NewHeatMap(g, cm.Palette(255)))

	file := filepath.Join(p.outputDir, fmt.Sprintf("%s_%03d_%s.png", p.mapName, p.seq, label))
	if err := plt.Save(8*vg.Inch, 8*vg.Inch, file); err != nil {
		return "", fmt.Errorf("failed to save heatmap: %w", err)
	}
	p.seq++

	return file, nil
}
