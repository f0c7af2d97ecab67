package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/beka-birhanu/simplemaze/config/settings"
	"github.com/beka-birhanu/simplemaze/domain"
	"github.com/beka-birhanu/simplemaze/maze"
	"github.com/beka-birhanu/simplemaze/service/i"
	"github.com/google/uuid"
)

const lockKeyFmt = "maze:%s:lock"

// Options tunes a MazeService. The zero value is usable.
type Options struct {
	// Seed for entrance/exit rows and generator sources. 0 seeds from the clock.
	Seed int64

	// Now returns the creation time of records.
	Now func() time.Time

	// Defaults fills the size and algorithm a create request leaves empty.
	Defaults *settings.Settings
}

var _ i.MazeManager = &MazeService{}

// MazeService creates, stores, solves and exports mazes.
// Implements i.MazeManager.
type MazeService struct {
	repo     i.MazeRepo
	routes   i.RouteCache
	locker   i.Locker
	auth     i.Authorizer
	logger   i.Logger
	defaults *settings.Settings

	mu  sync.Mutex // guards rng
	rng *rand.Rand
	now func() time.Time
}

// NewMazeService wires a MazeService from its collaborators.
func NewMazeService(repo i.MazeRepo, routes i.RouteCache, locker i.Locker, auth i.Authorizer, logger i.Logger, opts *Options) (*MazeService, error) {
	if repo == nil || routes == nil || locker == nil || auth == nil || logger == nil {
		return nil, errors.New("maze service: missing dependency")
	}
	if opts == nil {
		opts = &Options{}
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &MazeService{
		repo:     repo,
		routes:   routes,
		locker:   locker,
		auth:     auth,
		logger:   logger,
		defaults: opts.Defaults,
		rng:      rand.New(rand.NewSource(opts.Seed)),
		now:      opts.Now,
	}, nil
}

// Create generates a new maze and stores it. It returns the record and an owner token.
// Zero width, height or algorithm are taken from the configured defaults.
func (s *MazeService) Create(ctx context.Context, req i.CreateMazeRequest) (*domain.Maze, string, error) {
	if s.defaults != nil {
		if req.Width == 0 {
			req.Width = s.defaults.Width()
		}
		if req.Height == 0 {
			req.Height = s.defaults.Height()
		}
		if req.Algorithm == "" {
			req.Algorithm = s.defaults.Algorithm().String()
		}
	}

	alg, err := maze.ParseAlgorithm(req.Algorithm)
	if err != nil {
		return nil, "", err
	}
	if err := maze.ValidateInteractiveSize(req.Width, req.Height); err != nil {
		return nil, "", err
	}

	s.mu.Lock()
	if req.EntranceRow == 0 {
		req.EntranceRow = s.rng.Intn(req.Height) + 1
	}
	if req.ExitRow == 0 {
		req.ExitRow = s.rng.Intn(req.Height) + 1
	}
	seed := s.rng.Int63()
	s.mu.Unlock()

	g, err := maze.New(req.Width, req.Height, req.EntranceRow, req.ExitRow)
	if err != nil {
		return nil, "", err
	}
	if err := g.Generate(alg, rand.New(rand.NewSource(seed))); err != nil {
		return nil, "", err
	}

	record := s.newRecord(g)
	record.Algorithm = alg.String()
	token, err := s.store(ctx, record)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info(fmt.Sprintf("Generated maze: ID=%s Size=%dx%d Algorithm=%s", record.ID, record.Width, record.Height, record.Algorithm))
	return record, token, nil
}

// Import stores a maze read from its text encoding. It returns the record and an owner token.
// Disconnected or cyclic mazes are accepted and flagged as not perfect.
func (s *MazeService) Import(ctx context.Context, data string) (*domain.Maze, string, error) {
	g, err := maze.Decode(data)
	if err != nil {
		s.logger.Warning(fmt.Sprintf("Rejected maze import: %v", err))
		return nil, "", err
	}

	record := s.newRecord(g)
	record.Imported = true
	token, err := s.store(ctx, record)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info(fmt.Sprintf("Imported maze: ID=%s Size=%dx%d Perfect=%t", record.ID, record.Width, record.Height, record.Perfect))
	return record, token, nil
}

// ByID returns the stored maze.
func (s *MazeService) ByID(ctx context.Context, id uuid.UUID) (*domain.Maze, error) {
	return s.repo.ByID(ctx, id)
}

// Route returns the entrance-to-exit route of the maze, computing and caching it on a miss.
func (s *MazeService) Route(ctx context.Context, id uuid.UUID) ([]maze.CellPosition, error) {
	if route, ok, err := s.routes.Get(ctx, id); err != nil {
		s.logger.Warning(fmt.Sprintf("Reading cached route: ID=%s: %v", id, err))
	} else if ok {
		s.logger.Debug(fmt.Sprintf("Route cache hit: ID=%s", id))
		return route, nil
	}

	unlock, err := s.locker.Lock(ctx, lockKey(id))
	if err != nil {
		return nil, err
	}
	defer unlock()

	_, g, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	route, err := g.FindRoute()
	if err != nil {
		s.logger.Info(fmt.Sprintf("No route: ID=%s", id))
		return nil, err
	}

	if err := s.routes.Set(ctx, id, route); err != nil {
		s.logger.Warning(fmt.Sprintf("Caching route: ID=%s: %v", id, err))
	}
	return route, nil
}

// Export returns the text encoding of the maze.
func (s *MazeService) Export(ctx context.Context, id uuid.UUID) (string, error) {
	_, g, err := s.load(ctx, id)
	if err != nil {
		return "", err
	}
	return maze.Encode(g), nil
}

// ExportShared returns the text encoding of the maze a share token grants access to.
func (s *MazeService) ExportShared(ctx context.Context, token string) (string, error) {
	id, err := s.auth.Verify(token, i.ScopeShare)
	if err != nil {
		return "", err
	}
	return s.Export(ctx, id)
}

// Share issues a read-only token for the maze.
func (s *MazeService) Share(ctx context.Context, id uuid.UUID) (string, error) {
	if _, err := s.repo.ByID(ctx, id); err != nil {
		return "", err
	}
	return s.auth.Issue(id, i.ScopeShare)
}

// Delete removes the maze and its cached route.
func (s *MazeService) Delete(ctx context.Context, id uuid.UUID) error {
	unlock, err := s.locker.Lock(ctx, lockKey(id))
	if err != nil {
		return err
	}
	defer unlock()

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.routes.Invalidate(ctx, id); err != nil {
		s.logger.Warning(fmt.Sprintf("Invalidating route: ID=%s: %v", id, err))
	}

	s.logger.Info(fmt.Sprintf("Deleted maze: ID=%s", id))
	return nil
}

// load fetches the record and rebuilds its grid. Every call returns a grid of its own.
func (s *MazeService) load(ctx context.Context, id uuid.UUID) (*domain.Maze, *maze.Grid, error) {
	record, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	g, err := maze.Decode(record.Walls)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Stored maze is corrupt: ID=%s: %v", id, err))
		return nil, nil, err
	}
	return record, g, nil
}

func (s *MazeService) newRecord(g *maze.Grid) *domain.Maze {
	return &domain.Maze{
		ID:          uuid.New(),
		Width:       g.Width(),
		Height:      g.Height(),
		EntranceRow: g.EntranceRow(),
		ExitRow:     g.ExitRow(),
		Perfect:     maze.Inspect(g).Perfect(),
		Walls:       maze.Encode(g),
		CreatedAt:   s.now().UTC(),
	}
}

func (s *MazeService) store(ctx context.Context, record *domain.Maze) (string, error) {
	if err := s.repo.Save(ctx, record); err != nil {
		s.logger.Error(fmt.Sprintf("Failed to save maze: ID=%s: %v", record.ID, err))
		return "", err
	}
	return s.auth.Issue(record.ID, i.ScopeOwner)
}

func lockKey(id uuid.UUID) string {
	return fmt.Sprintf(lockKeyFmt, id)
}
