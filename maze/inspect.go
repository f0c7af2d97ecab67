package maze

import "github.com/yourbasic/graph"

// Report summarizes the structure of a grid.
type Report struct {
	Cells      int  // Number of cells
	Passages   int  // Open internal passages
	Components int  // Connected groups of cells
	Boundary   bool // Only the entrance and exit are open on the outer boundary
}

// Perfect reports whether the grid is a spanning tree with the expected boundary openings.
func (r Report) Perfect() bool {
	return r.Components == 1 && r.Passages == r.Cells-1 && r.Boundary
}

// Inspect counts passages and connected components of g and checks its outer boundary.
// Imported grids may be disconnected or contain cycles; generated grids are always perfect.
func Inspect(g *Grid) Report {
	passages := graph.New(len(g.cells))
	report := Report{Cells: len(g.cells), Boundary: true}

	for i := range g.cells {
		pos := g.cells[i].Pos
		for _, d := range Directions {
			move := Move{From: pos, To: pos.Step(d), Direction: d}
			if !g.InBound(move.To) {
				if g.cells[i].HasWall(d) == g.isBoundaryOpening(pos, d) {
					report.Boundary = false
				}
				continue
			}
			if d != Right && d != Bottom || !g.canMove(move) {
				continue
			}
			report.Passages++
			passages.AddBoth(i, g.index(move.To))
		}
	}

	report.Components = len(graph.Components(passages))
	return report
}

func (g *Grid) isBoundaryOpening(pos CellPosition, d Direction) bool {
	return (d == Left && pos == g.Entrance()) || (d == Right && pos == g.Exit())
}
