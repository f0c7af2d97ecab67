/*
Package maze provides tools for creating, solving and serializing rectangular perfect mazes.

It defines the `Grid` structure, composed of `Cell` values that carry an independent wall flag per
side. Cells are addressed by 1-based `CellPosition`s and stored in a single row-major slice; neighbors
are computed from the grid bounds on demand.

The package includes three generators (recursive backtracker, randomized Prim and recursive
division), a depth-first route finder between the entrance and the exit, and the fixed-width text
encoding used to export and import wall state.
*/
package maze

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// MinInteractiveDimension is the smallest width or height accepted for interactive use.
	MinInteractiveDimension = 20
	// MaxInteractiveDimension is the largest width or height accepted for interactive use.
	MaxInteractiveDimension = 80
)

var (
	ErrInvalidParameter = errors.New("invalid maze parameter")
	ErrInvalidFormat    = errors.New("invalid maze data")
	ErrRouteNotFound    = errors.New("route not found")
	ErrUnknownAlgorithm = errors.New("unknown generation algorithm")
)

// Grid represents a rectangular maze consisting of cells with per-side walls.
type Grid struct {
	width       int            // Number of columns
	height      int            // Number of rows
	entranceRow int            // Row of the entrance cell in the first column
	exitRow     int            // Row of the exit cell in the last column
	cells       []Cell         // Cells in row-major order
	route       []CellPosition // Result of the last FindRoute call
}

// New initializes a fully walled grid of the given dimensions.
// The entrance and exit openings are carved by the generator, not here.
func New(width, height, entranceRow, exitRow int) (*Grid, error) {
	g, err := newGrid(width, height, entranceRow, exitRow)
	if err != nil {
		return nil, err
	}

	for i := range g.cells {
		g.cells[i] = Cell{
			Pos:        g.position(i),
			LeftWall:   true,
			TopWall:    true,
			RightWall:  true,
			BottomWall: true,
		}
	}
	return g, nil
}

// NewFromWalls builds a grid from existing per-cell wall state, as read by Decode.
// Every position of the grid must be described exactly once. Entrance and exit openings are
// taken as given; a disconnected maze is accepted.
func NewFromWalls(width, height, entranceRow, exitRow int, walls []Walls) (*Grid, error) {
	g, err := newGrid(width, height, entranceRow, exitRow)
	if err != nil {
		return nil, err
	}

	if len(walls) != len(g.cells) {
		return nil, fmt.Errorf("%w: %d cells described for a %dx%d grid", ErrInvalidParameter, len(walls), width, height)
	}

	seen := make([]bool, len(g.cells))
	for _, w := range walls {
		if !g.InBound(w.Pos) {
			return nil, fmt.Errorf("%w: cell %v is outside the grid", ErrInvalidParameter, w.Pos)
		}
		i := g.index(w.Pos)
		if seen[i] {
			return nil, fmt.Errorf("%w: cell %v is described twice", ErrInvalidParameter, w.Pos)
		}
		seen[i] = true
		g.cells[i] = Cell{
			Pos:        w.Pos,
			LeftWall:   w.Left,
			TopWall:    w.Top,
			RightWall:  w.Right,
			BottomWall: w.Bottom,
		}
	}
	return g, nil
}

func newGrid(width, height, entranceRow, exitRow int) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidParameter, width, height)
	}
	if entranceRow < 1 || entranceRow > height {
		return nil, fmt.Errorf("%w: entrance row %d not in [1,%d]", ErrInvalidParameter, entranceRow, height)
	}
	if exitRow < 1 || exitRow > height {
		return nil, fmt.Errorf("%w: exit row %d not in [1,%d]", ErrInvalidParameter, exitRow, height)
	}

	return &Grid{
		width:       width,
		height:      height,
		entranceRow: entranceRow,
		exitRow:     exitRow,
		cells:       make([]Cell, width*height),
	}, nil
}

// ValidateInteractiveSize checks the dimensions accepted when a maze is created interactively.
// Imported mazes are not subject to these bounds.
func ValidateInteractiveSize(width, height int) error {
	if min(width, height) < MinInteractiveDimension || max(width, height) > MaxInteractiveDimension {
		return fmt.Errorf("%w: dimensions %dx%d not in [%d,%d]", ErrInvalidParameter, width, height, MinInteractiveDimension, MaxInteractiveDimension)
	}
	return nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// EntranceRow returns the row of the entrance in the first column.
func (g *Grid) EntranceRow() int { return g.entranceRow }

// ExitRow returns the row of the exit in the last column.
func (g *Grid) ExitRow() int { return g.exitRow }

// Entrance returns the position of the entrance cell.
func (g *Grid) Entrance() CellPosition {
	return CellPosition{Col: 1, Row: g.entranceRow}
}

// Exit returns the position of the exit cell.
func (g *Grid) Exit() CellPosition {
	return CellPosition{Col: g.width, Row: g.exitRow}
}

// InBound reports whether pos lies inside the grid.
func (g *Grid) InBound(pos CellPosition) bool {
	return pos.Col >= 1 && pos.Col <= g.width && pos.Row >= 1 && pos.Row <= g.height
}

func (g *Grid) index(pos CellPosition) int {
	return (pos.Row-1)*g.width + (pos.Col - 1)
}

func (g *Grid) position(i int) CellPosition {
	return CellPosition{Col: i%g.width + 1, Row: i/g.width + 1}
}

// Cell returns the cell at pos, or nil when pos is outside the grid.
func (g *Grid) Cell(pos CellPosition) *Cell {
	if !g.InBound(pos) {
		return nil
	}
	return &g.cells[g.index(pos)]
}

// Neighbor returns the cell adjacent to pos in direction d.
// The boolean is false when the neighbor would lie outside the grid.
func (g *Grid) Neighbor(pos CellPosition, d Direction) (*Cell, bool) {
	c := g.Cell(pos.Step(d))
	return c, c != nil
}

// Cells returns every cell in row-major order. The cells are owned by the grid.
func (g *Grid) Cells() []*Cell {
	cells := make([]*Cell, len(g.cells))
	for i := range g.cells {
		cells[i] = &g.cells[i]
	}
	return cells
}

// neighbors finds all in-bound moves from a given cell position.
func (g *Grid) neighbors(pos CellPosition) []Move {
	result := make([]Move, 0, len(Directions))
	for _, d := range Directions {
		to := pos.Step(d)
		if g.InBound(to) {
			result = append(result, Move{From: pos, To: to, Direction: d})
		}
	}
	return result
}

// openWall removes the wall crossed by move on both cells.
func (g *Grid) openWall(move Move) {
	g.setWall(move, false)
}

// closeWall puts back the wall crossed by move on both cells.
func (g *Grid) closeWall(move Move) {
	g.setWall(move, true)
}

func (g *Grid) setWall(move Move, hasWall bool) {
	from, to := g.Cell(move.From), g.Cell(move.To)
	if from == nil || to == nil {
		panic(fmt.Sprintf("maze: move %v -> %v leaves the grid", move.From, move.To))
	}
	from.SetWall(move.Direction, hasWall)
	to.SetWall(move.Direction.Opposite(), hasWall)
}

// canMove reports whether move crosses an open side on both cells.
func (g *Grid) canMove(move Move) bool {
	from, to := g.Cell(move.From), g.Cell(move.To)
	if from == nil || to == nil {
		return false
	}
	return !from.HasWall(move.Direction) && !to.HasWall(move.Direction.Opposite())
}

func (g *Grid) resetVisited() {
	for i := range g.cells {
		g.cells[i].visited = false
	}
}

// Passages counts the open internal passages, i.e. adjacent pairs whose shared sides are both open.
func (g *Grid) Passages() int {
	count := 0
	for i := range g.cells {
		pos := g.cells[i].Pos
		for _, d := range [...]Direction{Right, Bottom} {
			move := Move{From: pos, To: pos.Step(d), Direction: d}
			if g.canMove(move) {
				count++
			}
		}
	}
	return count
}

// String provides a textual representation of the maze.
func (g *Grid) String() string {
	var sb strings.Builder

	for row := 1; row <= g.height; row++ {
		// Wall above the row
		sb.WriteString("+")
		for col := 1; col <= g.width; col++ {
			if g.Cell(CellPosition{Col: col, Row: row}).TopWall {
				sb.WriteString("---+")
			} else {
				sb.WriteString("   +")
			}
		}
		sb.WriteString("\n")

		// Cell row
		if g.Cell(CellPosition{Col: 1, Row: row}).LeftWall {
			sb.WriteString("|")
		} else {
			sb.WriteString(" ")
		}
		for col := 1; col <= g.width; col++ {
			if g.Cell(CellPosition{Col: col, Row: row}).RightWall {
				sb.WriteString("   |")
			} else {
				sb.WriteString("    ")
			}
		}
		sb.WriteString("\n")
	}

	// Bottom boundary
	sb.WriteString("+")
	for col := 1; col <= g.width; col++ {
		if g.Cell(CellPosition{Col: col, Row: g.height}).BottomWall {
			sb.WriteString("---+")
		} else {
			sb.WriteString("   +")
		}
	}
	sb.WriteString("\n")

	return sb.String()
}
