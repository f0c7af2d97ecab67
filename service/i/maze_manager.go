package i

import (
	"context"

	"github.com/beka-birhanu/simplemaze/domain"
	"github.com/beka-birhanu/simplemaze/maze"
	"github.com/google/uuid"
)

// CreateMazeRequest describes a maze to generate.
type CreateMazeRequest struct {
	Width       int
	Height      int
	EntranceRow int // 0 picks a random row
	ExitRow     int // 0 picks a random row
	Algorithm   string
}

// MazeManager defines the maze use cases exposed to transports.
type MazeManager interface {
	// Create generates and stores a maze, returning it with an owner token.
	Create(ctx context.Context, req CreateMazeRequest) (*domain.Maze, string, error)

	// Import stores a maze given in its text encoding, returning it with an owner token.
	Import(ctx context.Context, data string) (*domain.Maze, string, error)

	ByID(ctx context.Context, id uuid.UUID) (*domain.Maze, error)

	// Route returns the entrance-to-exit route.
	Route(ctx context.Context, id uuid.UUID) ([]maze.CellPosition, error)

	// Export returns the text encoding.
	Export(ctx context.Context, id uuid.UUID) (string, error)

	// ExportShared returns the text encoding of the maze a share token grants access to.
	ExportShared(ctx context.Context, token string) (string, error)

	// Share issues a read-only token.
	Share(ctx context.Context, id uuid.UUID) (string, error)

	Delete(ctx context.Context, id uuid.UUID) error
}
