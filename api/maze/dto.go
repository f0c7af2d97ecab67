// Package mazeapi exposes maze generation, solving and sharing over HTTP.
package mazeapi

import (
	"time"

	"github.com/beka-birhanu/simplemaze/domain"
	"github.com/beka-birhanu/simplemaze/maze"
)

// CreateMazeRequest represents a request to generate a new maze.
// Omitted width, height and algorithm fall back to the server defaults.
type CreateMazeRequest struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	EntranceRow int    `json:"entrance_row"`
	ExitRow     int    `json:"exit_row"`
	Algorithm   string `json:"algorithm"`
}

// MazeResponse represents the stored metadata of a maze.
type MazeResponse struct {
	ID          string    `json:"id"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	EntranceRow int       `json:"entrance_row"`
	ExitRow     int       `json:"exit_row"`
	Algorithm   string    `json:"algorithm,omitempty"`
	Imported    bool      `json:"imported"`
	Perfect     bool      `json:"perfect"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreatedMazeResponse is returned once, when a maze is created or imported.
type CreatedMazeResponse struct {
	MazeResponse
	OwnerToken string `json:"owner_token"`
}

// PositionResponse is one cell of a route.
type PositionResponse struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// RouteResponse lists the cells from entrance to exit.
type RouteResponse struct {
	Route []PositionResponse `json:"route"`
}

// ShareResponse carries a read-only token.
type ShareResponse struct {
	ShareToken string `json:"share_token"`
}

func toMazeResponse(m *domain.Maze) MazeResponse {
	return MazeResponse{
		ID:          m.ID.String(),
		Width:       m.Width,
		Height:      m.Height,
		EntranceRow: m.EntranceRow,
		ExitRow:     m.ExitRow,
		Algorithm:   m.Algorithm,
		Imported:    m.Imported,
		Perfect:     m.Perfect,
		CreatedAt:   m.CreatedAt,
	}
}

func toRouteResponse(route []maze.CellPosition) RouteResponse {
	resp := RouteResponse{Route: make([]PositionResponse, 0, len(route))}
	for _, p := range route {
		resp.Route = append(resp.Route, PositionResponse{Col: p.Col, Row: p.Row})
	}
	return resp
}
