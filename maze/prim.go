package maze

import (
	"math/rand"

	"github.com/zyedidia/generic/mapset"
)

// generatePrim grows the maze from the entrance by attaching a random frontier cell to a
// random visited neighbor until no frontier remains.
//
// The frontier is kept incrementally: a cell joins it when one of its neighbors is visited and
// leaves it when it is visited itself, which yields the same set as recomputing it every step.
func (g *Grid) generatePrim(rng *rand.Rand) {
	g.openBoundaries()

	var frontier []CellPosition
	inFrontier := mapset.New[CellPosition]()

	visit := func(pos CellPosition) {
		g.Cell(pos).visited = true
		for _, move := range g.neighbors(pos) {
			if !g.Cell(move.To).visited && !inFrontier.Has(move.To) {
				inFrontier.Put(move.To)
				frontier = append(frontier, move.To)
			}
		}
	}

	visit(g.Entrance())
	for len(frontier) > 0 {
		i := rng.Intn(len(frontier))
		current := frontier[i]
		frontier[i] = frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		inFrontier.Remove(current)

		var attached []Move
		for _, move := range g.neighbors(current) {
			if g.Cell(move.To).visited {
				attached = append(attached, move)
			}
		}
		if len(attached) == 0 {
			panic("maze: frontier cell without a visited neighbor")
		}

		g.openWall(attached[rng.Intn(len(attached))])
		visit(current)
	}
}
