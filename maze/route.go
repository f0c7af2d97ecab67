package maze

import (
	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/stack"
)

// edge identifies one side of one cell.
type edge struct {
	pos CellPosition
	dir Direction
}

// FindRoute searches depth-first for the path from the entrance to the exit through open walls.
// A step is taken only when both cells have the shared side open. The previous result is
// discarded before the search starts; when the exit cannot be reached the result stays empty
// and ErrRouteNotFound is returned.
func (g *Grid) FindRoute() ([]CellPosition, error) {
	g.route = nil

	current := g.Entrance()
	route := []CellPosition{current}
	onRoute := mapset.Of(current)
	tried := mapset.New[edge]()
	backtrack := stack.New[CellPosition]()

	for current != g.Exit() {
		next, ok := g.nextStep(current, onRoute, tried)
		if ok {
			backtrack.Push(current)
			current = next
			route = append(route, current)
			onRoute.Put(current)
			continue
		}

		// Dead end: the current cell is the last one on the route.
		route = route[:len(route)-1]
		onRoute.Remove(current)
		if backtrack.Size() == 0 {
			return nil, ErrRouteNotFound
		}
		current = backtrack.Pop()
	}

	g.route = route
	return g.Route(), nil
}

// nextStep returns the first untried, open, off-route neighbor of pos and marks the edge tried.
func (g *Grid) nextStep(pos CellPosition, onRoute mapset.Set[CellPosition], tried mapset.Set[edge]) (CellPosition, bool) {
	for _, d := range Directions {
		e := edge{pos: pos, dir: d}
		if tried.Has(e) {
			continue
		}
		tried.Put(e)

		move := Move{From: pos, To: pos.Step(d), Direction: d}
		if !g.canMove(move) || onRoute.Has(move.To) {
			continue
		}
		return move.To, true
	}
	return CellPosition{}, false
}

// Route returns a copy of the route found by the last successful FindRoute call.
func (g *Grid) Route() []CellPosition {
	if g.route == nil {
		return nil
	}
	route := make([]CellPosition, len(g.route))
	copy(route, g.route)
	return route
}
