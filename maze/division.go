package maze

import (
	"math/rand"

	"github.com/zyedidia/generic/stack"
)

// region is a rectangular block of cells handled by recursive division.
type region struct {
	col, row      int // Top-left cell
	width, height int
}

// generateDivision opens the whole interior and then splits it with walls, leaving a single gap
// in each wall, until every remaining region is one cell wide or one cell high.
func (g *Grid) generateDivision(rng *rand.Rand) {
	g.openInterior()

	regions := stack.New[region]()
	regions.Push(region{col: 1, row: 1, width: g.width, height: g.height})
	for regions.Size() > 0 {
		first, second, ok := g.divide(regions.Pop(), rng)
		if !ok {
			continue
		}
		regions.Push(first)
		regions.Push(second)
	}

	g.openBoundaries()
}

// openInterior removes every internal wall and closes the outer boundary.
func (g *Grid) openInterior() {
	for i := range g.cells {
		c := &g.cells[i]
		c.LeftWall = c.Pos.Col == 1
		c.TopWall = c.Pos.Row == 1
		c.RightWall = c.Pos.Col == g.width
		c.BottomWall = c.Pos.Row == g.height
	}
}

// divide closes one wall line across r, leaving one random gap, and returns the two halves.
// Regions narrower than two cells along either axis are already trees and are not divided.
func (g *Grid) divide(r region, rng *rand.Rand) (region, region, bool) {
	if r.width < 2 || r.height < 2 {
		return region{}, region{}, false
	}

	if splitVertically(r, rng) {
		// The wall runs between column c and c+1.
		c := r.col + rng.Intn(r.width-1)
		gap := r.row + rng.Intn(r.height)
		for row := r.row; row < r.row+r.height; row++ {
			if row != gap {
				g.closeWall(Move{From: CellPosition{Col: c, Row: row}, To: CellPosition{Col: c + 1, Row: row}, Direction: Right})
			}
		}
		left := region{col: r.col, row: r.row, width: c - r.col + 1, height: r.height}
		right := region{col: c + 1, row: r.row, width: r.col + r.width - 1 - c, height: r.height}
		return left, right, true
	}

	// The wall runs between row w and w+1.
	w := r.row + rng.Intn(r.height-1)
	gap := r.col + rng.Intn(r.width)
	for col := r.col; col < r.col+r.width; col++ {
		if col != gap {
			g.closeWall(Move{From: CellPosition{Col: col, Row: w}, To: CellPosition{Col: col, Row: w + 1}, Direction: Bottom})
		}
	}
	top := region{col: r.col, row: r.row, width: r.width, height: w - r.row + 1}
	bottom := region{col: r.col, row: w + 1, width: r.width, height: r.row + r.height - 1 - w}
	return top, bottom, true
}

// splitVertically picks the orientation that keeps both halves close to square.
func splitVertically(r region, rng *rand.Rand) bool {
	switch {
	case r.width > r.height:
		return true
	case r.height > r.width:
		return false
	default:
		return rng.Intn(2) == 0
	}
}
