package maze

import (
	"math/rand"

	"github.com/zyedidia/generic/stack"
)

// generateBacktracker carves passages with a randomized depth-first walk from the entrance.
func (g *Grid) generateBacktracker(rng *rand.Rand) {
	current := g.Entrance()
	g.Cell(current).LeftWall = false

	cells := stack.New[CellPosition]()
	for {
		cell := g.Cell(current)
		cell.visited = true
		if current == g.Exit() {
			cell.RightWall = false
		}

		unvisited := g.unvisitedNeighbors(current)
		if len(unvisited) > 0 {
			move := unvisited[rng.Intn(len(unvisited))]
			g.openWall(move)
			cells.Push(current)
			current = move.To
			continue
		}

		if cells.Size() == 0 {
			return
		}
		current = cells.Pop()
	}
}

// unvisitedNeighbors returns the moves from pos to cells not yet visited in this run.
func (g *Grid) unvisitedNeighbors(pos CellPosition) []Move {
	var result []Move
	for _, move := range g.neighbors(pos) {
		if !g.Cell(move.To).visited {
			result = append(result, move)
		}
	}
	return result
}
