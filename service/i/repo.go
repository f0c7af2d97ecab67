package i

import (
	"context"

	"github.com/beka-birhanu/simplemaze/domain"
	"github.com/google/uuid"
)

// MazeRepo defines the interface for maze persistence operations.
type MazeRepo interface {
	// Save inserts or updates a maze in the repository.
	// If the maze already exists, it updates the record. Otherwise, it creates a new one.
	Save(ctx context.Context, maze *domain.Maze) error

	// ByID retrieves a maze by its unique ID.
	// Returns ErrMazeNotFound if no record exists.
	ByID(ctx context.Context, id uuid.UUID) (*domain.Maze, error)

	// Delete removes a maze by its unique ID.
	// Returns ErrMazeNotFound if no record exists.
	Delete(ctx context.Context, id uuid.UUID) error
}
