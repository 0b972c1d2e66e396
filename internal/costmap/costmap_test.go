package costmap

import (
	"testing"

	"github.com/paulmach/orb"
)

// helper to create a 10x10 grid at 1m resolution with origin (-5,-5)
func makeTestGrid(defaultValue uint8) *Costmap2D {
	return NewCostmap2D(10, 10, 1.0, -5, -5, defaultValue)
}

func fillGrid(c *Costmap2D, cost uint8) {
	for my := 0; my < c.CellsY(); my++ {
		for mx := 0; mx < c.CellsX(); mx++ {
			c.SetCost(mx, my, cost)
		}
	}
}

func TestWorldToMap(t *testing.T) {
	c := makeTestGrid(0)

	tests := []struct {
		name   string
		wx, wy float64
		mx, my int
		ok     bool
	}{
		{"origin corner", -5, -5, 0, 0, true},
		{"centre", 0, 0, 5, 5, true},
		{"interior", 3.5, -2.5, 8, 2, true},
		{"below origin", -5.01, 0, 0, 0, false},
		{"beyond far edge", 5.0, 0, 0, 0, false},
	}
	for _, tt := range tests {
		mx, my, ok := c.WorldToMap(tt.wx, tt.wy)
		if ok != tt.ok {
			t.Fatalf("%s: ok = %v, want %v", tt.name, ok, tt.ok)
		}
		if ok && (mx != tt.mx || my != tt.my) {
			t.Fatalf("%s: got (%d, %d), want (%d, %d)", tt.name, mx, my, tt.mx, tt.my)
		}
	}
}

func TestWorldToMapEnforceBounds_Clamps(t *testing.T) {
	c := makeTestGrid(0)

	tests := []struct {
		name   string
		wx, wy float64
		mx, my int
	}{
		{"interior unchanged", 0, 0, 5, 5},
		{"far below-left", -100, -100, 0, 0},
		{"far above-right", 100, 100, 9, 9},
		{"mixed", -100, 2.5, 0, 7},
	}
	for _, tt := range tests {
		mx, my := c.WorldToMapEnforceBounds(tt.wx, tt.wy)
		if mx != tt.mx || my != tt.my {
			t.Fatalf("%s: got (%d, %d), want (%d, %d)", tt.name, mx, my, tt.mx, tt.my)
		}
	}
}

func TestMapToWorld_CellCentre(t *testing.T) {
	c := makeTestGrid(0)
	wx, wy := c.MapToWorld(5, 5)
	if wx != 0.5 || wy != 0.5 {
		t.Fatalf("cell (5,5) centre = (%v, %v), want (0.5, 0.5)", wx, wy)
	}
}

func TestResetMap(t *testing.T) {
	c := makeTestGrid(255)
	fillGrid(c, 100)
	c.ResetMap()
	for i, v := range c.Snapshot() {
		if v != 255 {
			t.Fatalf("cell %d = %d after reset, want 255", i, v)
		}
	}
}

// Window (-2,-1),(2,-1),(2,1),(-2,1): cells inside keep their value, all
// others become the reset value.
func TestClearOutsideArea_Window(t *testing.T) {
	c := makeTestGrid(255)
	fillGrid(c, 100)

	window := orb.Ring{{-2, -1}, {2, -1}, {2, 1}, {-2, 1}}
	mapPoly := make(orb.Ring, 0, 4)
	for _, v := range window {
		mx, my := c.WorldToMapEnforceBounds(v.X(), v.Y())
		mapPoly = append(mapPoly, orb.Point{float64(mx), float64(my)})
	}
	c.ClearOutsideArea(mapPoly, 255)

	for my := 0; my < 10; my++ {
		for mx := 0; mx < 10; mx++ {
			inside := mx >= 3 && mx <= 6 && my >= 4 && my <= 5
			want := uint8(255)
			if inside {
				want = 100
			}
			if got := c.Cost(mx, my); got != want {
				t.Fatalf("cell (%d,%d) = %d, want %d", mx, my, got, want)
			}
		}
	}
}

func TestClearOutsideArea_DegeneratePolygonClearsEverything(t *testing.T) {
	for _, poly := range []orb.Ring{
		nil,
		{{5, 5}},
		{{5, 5}, {5, 5}, {5, 5}, {5, 5}},
	} {
		c := makeTestGrid(255)
		fillGrid(c, 100)
		c.ClearOutsideArea(poly, 255)
		for i, v := range c.Snapshot() {
			if v != 255 {
				t.Fatalf("poly %v: cell %d = %d, want 255", poly, i, v)
			}
		}
	}
}

func TestSetConvexPolygonCost(t *testing.T) {
	c := makeTestGrid(0)

	// Paint world square [0,3]x[0,3] with cost 200.
	c.SetConvexPolygonCost(orb.Ring{{0, 0}, {3, 0}, {3, 3}, {0, 3}}, 200)

	painted := 0
	for my := 0; my < 10; my++ {
		for mx := 0; mx < 10; mx++ {
			if c.Cost(mx, my) == 200 {
				painted++
				if mx < 5 || mx > 7 || my < 5 || my > 7 {
					t.Fatalf("cell (%d,%d) painted outside expected square", mx, my)
				}
			}
		}
	}
	if painted != 9 {
		t.Fatalf("painted %d cells, want 9", painted)
	}
}

func TestSetConvexPolygonCost_ClampsToGrid(t *testing.T) {
	c := makeTestGrid(0)

	// A polygon far larger than the grid snaps to the grid edge without
	// panics; every cell up to the snapped boundary is painted.
	c.SetConvexPolygonCost(orb.Ring{{-50, -50}, {50, -50}, {50, 50}, {-50, 50}}, 42)
	for my := 0; my < 10; my++ {
		for mx := 0; mx < 10; mx++ {
			want := uint8(42)
			if mx == 9 || my == 9 {
				want = 0 // outside the snapped vertex boundary
			}
			if got := c.Cost(mx, my); got != want {
				t.Fatalf("cell (%d,%d) = %d, want %d", mx, my, got, want)
			}
		}
	}
}

func TestSnapshot_Detached(t *testing.T) {
	c := makeTestGrid(0)
	snap := c.Snapshot()
	c.SetCost(2, 2, 99)
	if snap[c.Idx(2, 2)] == 99 {
		t.Fatal("snapshot shares backing array with live grid")
	}
}
