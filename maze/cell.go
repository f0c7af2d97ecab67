package maze

import "fmt"

// Direction identifies one side of a cell.
type Direction int

const (
	Left Direction = iota
	Top
	Right
	Bottom
)

// Directions lists every direction in the order the route finder tries them.
var Directions = [...]Direction{Left, Top, Right, Bottom}

// Opposite returns the side a neighbor shares with a cell across d.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// delta returns the column and row offsets of a step in direction d.
func (d Direction) delta() (int, int) {
	switch d {
	case Left:
		return -1, 0
	case Top:
		return 0, -1
	case Right:
		return 1, 0
	case Bottom:
		return 0, 1
	}
	panic(fmt.Sprintf("maze: invalid direction %d", int(d)))
}

func (d Direction) String() string {
	switch d {
	case Left:
		return "Left"
	case Top:
		return "Top"
	case Right:
		return "Right"
	case Bottom:
		return "Bottom"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// CellPosition represents the 1-based position of a cell in the grid.
type CellPosition struct {
	Col int // Column of the cell, 1 is the leftmost column
	Row int // Row of the cell, 1 is the top row
}

// Step returns the position one cell away in direction d. The result may lie outside the grid.
func (p CellPosition) Step(d Direction) CellPosition {
	dc, dr := d.delta()
	return CellPosition{Col: p.Col + dc, Row: p.Row + dr}
}

func (p CellPosition) String() string {
	return fmt.Sprintf("(%d,%d)", p.Col, p.Row)
}

// Move represents a step from one cell to an adjacent one.
type Move struct {
	From      CellPosition // Starting cell
	To        CellPosition // Destination cell
	Direction Direction    // Side of From that is crossed
}

// Cell represents a single cell in a maze grid.
// Each side carries its own wall flag; adjacent cells are not kept in sync automatically.
type Cell struct {
	Pos        CellPosition // Pos is the position of the cell in its grid.
	LeftWall   bool         // LeftWall indicates whether there is a wall on the left side of the cell.
	TopWall    bool         // TopWall indicates whether there is a wall on the top side of the cell.
	RightWall  bool         // RightWall indicates whether there is a wall on the right side of the cell.
	BottomWall bool         // BottomWall indicates whether there is a wall on the bottom side of the cell.

	visited bool
}

// HasWall reports whether the side d of the cell is closed.
func (c *Cell) HasWall(d Direction) bool {
	switch d {
	case Left:
		return c.LeftWall
	case Top:
		return c.TopWall
	case Right:
		return c.RightWall
	case Bottom:
		return c.BottomWall
	}
	panic(fmt.Sprintf("maze: invalid direction %d", int(d)))
}

// SetWall sets the presence of a wall on side d of the cell.
func (c *Cell) SetWall(d Direction, hasWall bool) {
	switch d {
	case Left:
		c.LeftWall = hasWall
	case Top:
		c.TopWall = hasWall
	case Right:
		c.RightWall = hasWall
	case Bottom:
		c.BottomWall = hasWall
	default:
		panic(fmt.Sprintf("maze: invalid direction %d", int(d)))
	}
}

// Walls is the per-cell wall state used to build a grid from existing data.
type Walls struct {
	Pos    CellPosition
	Left   bool
	Top    bool
	Right  bool
	Bottom bool
}
