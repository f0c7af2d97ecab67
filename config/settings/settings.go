// Package settings holds the user-adjustable parameters of an interactive maze session.
//
// Every setter validates its input and reports a rejected value as an error; the stored value
// is left untouched in that case.
package settings

import (
	"errors"
	"fmt"

	"github.com/beka-birhanu/simplemaze/maze"
)

const (
	MinCellSize = 10 // Smallest rendered cell size in pixels
	MaxCellSize = 15 // Largest rendered cell size in pixels
)

var ErrOutOfRange = errors.New("setting out of range")

// Settings is the configuration a caller edits before generating a maze.
type Settings struct {
	width     int
	height    int
	cellSize  int
	algorithm maze.Algorithm
}

// New creates Settings from initial values, validating each of them.
func New(width, height, cellSize int, algorithm string) (*Settings, error) {
	s := &Settings{}
	if err := s.SetWidth(width); err != nil {
		return nil, err
	}
	if err := s.SetHeight(height); err != nil {
		return nil, err
	}
	if err := s.SetCellSize(cellSize); err != nil {
		return nil, err
	}
	if err := s.SetAlgorithm(algorithm); err != nil {
		return nil, err
	}
	return s, nil
}

// Width returns the maze width in cells.
func (s *Settings) Width() int { return s.width }

// Height returns the maze height in cells.
func (s *Settings) Height() int { return s.height }

// CellSize returns the rendered size of one cell.
func (s *Settings) CellSize() int { return s.cellSize }

// Algorithm returns the selected generator.
func (s *Settings) Algorithm() maze.Algorithm { return s.algorithm }

// SetWidth sets the maze width.
func (s *Settings) SetWidth(width int) error {
	if err := checkDimension("width", width); err != nil {
		return err
	}
	s.width = width
	return nil
}

// SetHeight sets the maze height.
func (s *Settings) SetHeight(height int) error {
	if err := checkDimension("height", height); err != nil {
		return err
	}
	s.height = height
	return nil
}

// SetCellSize sets the rendered cell size.
func (s *Settings) SetCellSize(size int) error {
	if size < MinCellSize || size > MaxCellSize {
		return fmt.Errorf("%w: cell size %d not in [%d,%d]", ErrOutOfRange, size, MinCellSize, MaxCellSize)
	}
	s.cellSize = size
	return nil
}

// SetAlgorithm selects the generator by name.
func (s *Settings) SetAlgorithm(name string) error {
	alg, err := maze.ParseAlgorithm(name)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOutOfRange, err)
	}
	s.algorithm = alg
	return nil
}

func checkDimension(name string, value int) error {
	if value < maze.MinInteractiveDimension || value > maze.MaxInteractiveDimension {
		return fmt.Errorf("%w: %s %d not in [%d,%d]", ErrOutOfRange, name, value, maze.MinInteractiveDimension, maze.MaxInteractiveDimension)
	}
	return nil
}
