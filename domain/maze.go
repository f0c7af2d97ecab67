// Package domain defines the persisted maze record.
package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Maze represents the BSON version of a maze for database storage.
// Walls holds the text encoding produced by maze.Encode and is the only stored wall state.
type Maze struct {
	ID          uuid.UUID `bson:"_id"`
	Width       int       `bson:"width"`
	Height      int       `bson:"height"`
	EntranceRow int       `bson:"entranceRow"`
	ExitRow     int       `bson:"exitRow"`
	Algorithm   string    `bson:"algorithm"` // Empty for imported mazes
	Imported    bool      `bson:"imported"`
	Perfect     bool      `bson:"perfect"`
	Walls       string    `bson:"walls"`
	CreatedAt   time.Time `bson:"createdAt"`
}

// ErrMazeNotFound is returned by repositories when no maze has the requested ID.
var ErrMazeNotFound = errors.New("maze not found")
