package i

import (
	"context"

	"github.com/beka-birhanu/simplemaze/maze"
	"github.com/google/uuid"
)

// RouteCache keeps computed entrance-to-exit routes.
type RouteCache interface {
	// Get returns the cached route and whether it was present.
	Get(ctx context.Context, id uuid.UUID) ([]maze.CellPosition, bool, error)

	// Set stores the route of a maze.
	Set(ctx context.Context, id uuid.UUID, route []maze.CellPosition) error

	// Invalidate drops the cached route of a maze.
	Invalidate(ctx context.Context, id uuid.UUID) error
}
