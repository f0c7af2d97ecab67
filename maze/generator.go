package maze

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Algorithm selects the generator that carves a grid.
type Algorithm int

const (
	RecursiveBacktracker Algorithm = iota
	RandomizedPrim
	RecursiveDivision
)

// Algorithms lists every supported generator.
var Algorithms = [...]Algorithm{RecursiveBacktracker, RandomizedPrim, RecursiveDivision}

var algorithmNames = map[Algorithm]string{
	RecursiveBacktracker: "recursive-backtracker",
	RandomizedPrim:       "randomized-prim",
	RecursiveDivision:    "recursive-division",
}

func (a Algorithm) String() string {
	if name, ok := algorithmNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// ParseAlgorithm returns the algorithm with the given name. Matching ignores case.
func ParseAlgorithm(name string) (Algorithm, error) {
	for a, n := range algorithmNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// Generate carves the grid into a perfect maze with the selected algorithm and opens the
// entrance and exit. The grid is expected to be fully walled, as returned by New.
// A nil rng falls back to a time-seeded source.
func (g *Grid) Generate(alg Algorithm, rng *rand.Rand) error {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	g.resetVisited()
	g.route = nil

	switch alg {
	case RecursiveBacktracker:
		g.generateBacktracker(rng)
	case RandomizedPrim:
		g.generatePrim(rng)
	case RecursiveDivision:
		g.generateDivision(rng)
	default:
		return fmt.Errorf("%w: %v", ErrUnknownAlgorithm, alg)
	}
	return nil
}

// openBoundaries opens the left side of the entrance and the right side of the exit.
func (g *Grid) openBoundaries() {
	g.Cell(g.Entrance()).LeftWall = false
	g.Cell(g.Exit()).RightWall = false
}
