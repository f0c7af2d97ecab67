package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/beka-birhanu/simplemaze/config/settings"
	"github.com/beka-birhanu/simplemaze/domain"
	"github.com/beka-birhanu/simplemaze/infrastruture/token"
	"github.com/beka-birhanu/simplemaze/logger"
	"github.com/beka-birhanu/simplemaze/maze"
	"github.com/beka-birhanu/simplemaze/service/i"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	sync.Mutex
	mazes map[uuid.UUID]domain.Maze
}

func (r *memRepo) Save(_ context.Context, m *domain.Maze) error {
	r.Lock()
	defer r.Unlock()
	r.mazes[m.ID] = *m
	return nil
}

func (r *memRepo) ByID(_ context.Context, id uuid.UUID) (*domain.Maze, error) {
	r.Lock()
	defer r.Unlock()
	m, ok := r.mazes[id]
	if !ok {
		return nil, domain.ErrMazeNotFound
	}
	return &m, nil
}

func (r *memRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.Lock()
	defer r.Unlock()
	if _, ok := r.mazes[id]; !ok {
		return domain.ErrMazeNotFound
	}
	delete(r.mazes, id)
	return nil
}

type memCache struct {
	routes map[uuid.UUID][]maze.CellPosition
	hits   int
	err    error
}

func (c *memCache) Get(_ context.Context, id uuid.UUID) ([]maze.CellPosition, bool, error) {
	if c.err != nil {
		return nil, false, c.err
	}
	r, ok := c.routes[id]
	if ok {
		c.hits++
	}
	return r, ok, nil
}

func (c *memCache) Set(_ context.Context, id uuid.UUID, route []maze.CellPosition) error {
	if c.err != nil {
		return c.err
	}
	c.routes[id] = route
	return nil
}

func (c *memCache) Invalidate(_ context.Context, id uuid.UUID) error {
	delete(c.routes, id)
	return nil
}

type countingLocker struct {
	keys   []string
	held   int
	failOn string
}

func (l *countingLocker) Lock(_ context.Context, key string) (func(), error) {
	if key == l.failOn {
		return nil, errors.New("lock busy")
	}
	l.keys = append(l.keys, key)
	l.held++
	return func() { l.held-- }, nil
}

type fixture struct {
	svc    *MazeService
	repo   *memRepo
	cache  *memCache
	locker *countingLocker
	auth   *Auth
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithDefaults(t, nil)
}

func newFixtureWithDefaults(t *testing.T, defaults *settings.Settings) *fixture {
	t.Helper()
	f := &fixture{
		repo:   &memRepo{mazes: map[uuid.UUID]domain.Maze{}},
		cache:  &memCache{routes: map[uuid.UUID][]maze.CellPosition{}},
		locker: &countingLocker{},
	}

	var err error
	f.auth, err = NewAuth(token.NewJwtService("test-secret", "simplemaze-test"), time.Hour)
	require.NoError(t, err)

	log, err := logger.New("TEST", "", io.Discard)
	require.NoError(t, err)

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	f.svc, err = NewMazeService(f.repo, f.cache, f.locker, f.auth, log, &Options{
		Seed:     99,
		Now:      func() time.Time { return now },
		Defaults: defaults,
	})
	require.NoError(t, err)
	return f
}

func TestMazeServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("Generates and stores a perfect maze", func(t *testing.T) {
		f := newFixture(t)
		for _, alg := range maze.Algorithms {
			record, ownerToken, err := f.svc.Create(ctx, i.CreateMazeRequest{Width: 20, Height: 25, Algorithm: alg.String()})
			require.NoError(t, err)

			assert.Equal(t, 20, record.Width)
			assert.Equal(t, 25, record.Height)
			assert.GreaterOrEqual(t, record.EntranceRow, 1)
			assert.LessOrEqual(t, record.EntranceRow, 25)
			assert.GreaterOrEqual(t, record.ExitRow, 1)
			assert.LessOrEqual(t, record.ExitRow, 25)
			assert.Equal(t, alg.String(), record.Algorithm)
			assert.True(t, record.Perfect)
			assert.False(t, record.Imported)
			assert.Equal(t, 2025, record.CreatedAt.Year())

			stored, err := f.repo.ByID(ctx, record.ID)
			require.NoError(t, err)
			assert.Equal(t, record.Walls, stored.Walls)

			id, err := f.auth.Verify(ownerToken, i.ScopeOwner)
			require.NoError(t, err)
			assert.Equal(t, record.ID, id)
		}
	})

	t.Run("Keeps requested entrance and exit", func(t *testing.T) {
		f := newFixture(t)
		record, _, err := f.svc.Create(ctx, i.CreateMazeRequest{Width: 30, Height: 30, EntranceRow: 4, ExitRow: 27, Algorithm: "randomized-prim"})
		require.NoError(t, err)
		assert.Equal(t, 4, record.EntranceRow)
		assert.Equal(t, 27, record.ExitRow)
	})

	t.Run("Rejects sizes outside the interactive bounds", func(t *testing.T) {
		f := newFixture(t)
		_, _, err := f.svc.Create(ctx, i.CreateMazeRequest{Width: 10, Height: 30, Algorithm: "randomized-prim"})
		assert.ErrorIs(t, err, maze.ErrInvalidParameter)
		_, _, err = f.svc.Create(ctx, i.CreateMazeRequest{Width: 30, Height: 81, Algorithm: "randomized-prim"})
		assert.ErrorIs(t, err, maze.ErrInvalidParameter)
		assert.Empty(t, f.repo.mazes)
	})

	t.Run("Rejects entrance outside the grid", func(t *testing.T) {
		f := newFixture(t)
		_, _, err := f.svc.Create(ctx, i.CreateMazeRequest{Width: 30, Height: 30, EntranceRow: 31, Algorithm: "randomized-prim"})
		assert.ErrorIs(t, err, maze.ErrInvalidParameter)
	})

	t.Run("Empty request uses configured defaults", func(t *testing.T) {
		defaults, err := settings.New(24, 31, 12, "recursive-division")
		require.NoError(t, err)
		f := newFixtureWithDefaults(t, defaults)

		record, _, err := f.svc.Create(ctx, i.CreateMazeRequest{})
		require.NoError(t, err)
		assert.Equal(t, 24, record.Width)
		assert.Equal(t, 31, record.Height)
		assert.Equal(t, "recursive-division", record.Algorithm)
		assert.True(t, record.Perfect)
	})

	t.Run("Explicit values override defaults", func(t *testing.T) {
		defaults, err := settings.New(24, 31, 12, "recursive-division")
		require.NoError(t, err)
		f := newFixtureWithDefaults(t, defaults)

		record, _, err := f.svc.Create(ctx, i.CreateMazeRequest{Width: 40, Algorithm: "randomized-prim"})
		require.NoError(t, err)
		assert.Equal(t, 40, record.Width)
		assert.Equal(t, 31, record.Height)
		assert.Equal(t, "randomized-prim", record.Algorithm)
	})

	t.Run("Empty request without defaults is rejected", func(t *testing.T) {
		f := newFixture(t)
		_, _, err := f.svc.Create(ctx, i.CreateMazeRequest{})
		assert.ErrorIs(t, err, maze.ErrUnknownAlgorithm)
		assert.Empty(t, f.repo.mazes)
	})

	t.Run("Rejects unknown algorithm", func(t *testing.T) {
		f := newFixture(t)
		_, _, err := f.svc.Create(ctx, i.CreateMazeRequest{Width: 30, Height: 30, Algorithm: "eller"})
		assert.ErrorIs(t, err, maze.ErrUnknownAlgorithm)
	})
}

func TestMazeServiceImport(t *testing.T) {
	ctx := context.Background()

	t.Run("Imports small disconnected data", func(t *testing.T) {
		f := newFixture(t)
		data := "X001Y001L0T1R1B1\nX002Y001L1T1R0B1\n"

		record, ownerToken, err := f.svc.Import(ctx, data)
		require.NoError(t, err)
		assert.NotEmpty(t, ownerToken)
		assert.True(t, record.Imported)
		assert.False(t, record.Perfect)
		assert.Equal(t, data, record.Walls)

		_, err = f.svc.Route(ctx, record.ID)
		assert.ErrorIs(t, err, maze.ErrRouteNotFound)
		assert.Empty(t, f.cache.routes)
		assert.Zero(t, f.locker.held)
	})

	t.Run("Rejects malformed data without storing anything", func(t *testing.T) {
		f := newFixture(t)
		_, _, err := f.svc.Import(ctx, "X001Y001L0T1R0B1\nX002L0T1R0B1\n")
		assert.ErrorIs(t, err, maze.ErrInvalidFormat)
		assert.Empty(t, f.repo.mazes)
	})

	t.Run("Round trips an export", func(t *testing.T) {
		f := newFixture(t)
		created, _, err := f.svc.Create(ctx, i.CreateMazeRequest{Width: 22, Height: 21, Algorithm: "recursive-division"})
		require.NoError(t, err)

		exported, err := f.svc.Export(ctx, created.ID)
		require.NoError(t, err)

		imported, _, err := f.svc.Import(ctx, exported)
		require.NoError(t, err)
		assert.NotEqual(t, created.ID, imported.ID)
		assert.Equal(t, created.Walls, imported.Walls)
		assert.Equal(t, created.EntranceRow, imported.EntranceRow)
		assert.Equal(t, created.ExitRow, imported.ExitRow)
		assert.True(t, imported.Perfect)
	})
}

func TestMazeServiceRoute(t *testing.T) {
	ctx := context.Background()

	t.Run("Computes, caches and reuses the route", func(t *testing.T) {
		f := newFixture(t)
		record, _, err := f.svc.Create(ctx, i.CreateMazeRequest{Width: 20, Height: 20, EntranceRow: 1, ExitRow: 20, Algorithm: "recursive-backtracker"})
		require.NoError(t, err)

		route, err := f.svc.Route(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, maze.CellPosition{Col: 1, Row: 1}, route[0])
		assert.Equal(t, maze.CellPosition{Col: 20, Row: 20}, route[len(route)-1])
		assert.Equal(t, []string{"maze:" + record.ID.String() + ":lock"}, f.locker.keys)
		assert.Zero(t, f.locker.held)

		again, err := f.svc.Route(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, route, again)
		assert.Equal(t, 1, f.cache.hits)
		assert.Len(t, f.locker.keys, 1)
	})

	t.Run("Cache hit is logged at debug level", func(t *testing.T) {
		f := newFixture(t)
		var out bytes.Buffer
		log, err := logger.New("MAZE", "", &out)
		require.NoError(t, err)
		svc, err := NewMazeService(f.repo, f.cache, f.locker, f.auth, log, &Options{Seed: 5})
		require.NoError(t, err)

		record, _, err := svc.Create(ctx, i.CreateMazeRequest{Width: 20, Height: 20, Algorithm: "randomized-prim"})
		require.NoError(t, err)
		_, err = svc.Route(ctx, record.ID)
		require.NoError(t, err)
		assert.NotContains(t, out.String(), "[DEBUG]")

		_, err = svc.Route(ctx, record.ID)
		require.NoError(t, err)
		assert.Contains(t, out.String(), "[MAZE] [DEBUG] Route cache hit: ID="+record.ID.String()+"\n")
	})

	t.Run("Cache failures fall back to computing", func(t *testing.T) {
		f := newFixture(t)
		record, _, err := f.svc.Create(ctx, i.CreateMazeRequest{Width: 20, Height: 20, Algorithm: "randomized-prim"})
		require.NoError(t, err)
		f.cache.err = errors.New("redis down")

		route, err := f.svc.Route(ctx, record.ID)
		require.NoError(t, err)
		assert.NotEmpty(t, route)
	})

	t.Run("Lock failure is reported", func(t *testing.T) {
		f := newFixture(t)
		record, _, err := f.svc.Create(ctx, i.CreateMazeRequest{Width: 20, Height: 20, Algorithm: "randomized-prim"})
		require.NoError(t, err)
		f.locker.failOn = lockKey(record.ID)

		_, err = f.svc.Route(ctx, record.ID)
		assert.Error(t, err)
	})

	t.Run("Unknown maze", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Route(ctx, uuid.New())
		assert.ErrorIs(t, err, domain.ErrMazeNotFound)
		assert.Zero(t, f.locker.held)
	})
}

func TestMazeServiceShareAndDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	record, ownerToken, err := f.svc.Create(ctx, i.CreateMazeRequest{Width: 20, Height: 20, Algorithm: "recursive-division"})
	require.NoError(t, err)

	t.Run("Share token exports the maze", func(t *testing.T) {
		shareToken, err := f.svc.Share(ctx, record.ID)
		require.NoError(t, err)

		exported, err := f.svc.ExportShared(ctx, shareToken)
		require.NoError(t, err)
		assert.Equal(t, record.Walls, exported)
		assert.Equal(t, 400, strings.Count(exported, "\n"))
	})

	t.Run("Share token cannot act as owner", func(t *testing.T) {
		shareToken, err := f.svc.Share(ctx, record.ID)
		require.NoError(t, err)

		_, err = f.auth.Verify(shareToken, i.ScopeOwner)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("Owner token also reads", func(t *testing.T) {
		_, err := f.svc.ExportShared(ctx, ownerToken)
		assert.NoError(t, err)
	})

	t.Run("Share of unknown maze", func(t *testing.T) {
		_, err := f.svc.Share(ctx, uuid.New())
		assert.ErrorIs(t, err, domain.ErrMazeNotFound)
	})

	t.Run("Delete drops record and cached route", func(t *testing.T) {
		_, err := f.svc.Route(ctx, record.ID)
		require.NoError(t, err)
		require.Contains(t, f.cache.routes, record.ID)

		require.NoError(t, f.svc.Delete(ctx, record.ID))
		assert.NotContains(t, f.cache.routes, record.ID)
		assert.Zero(t, f.locker.held)

		_, err = f.svc.ByID(ctx, record.ID)
		assert.ErrorIs(t, err, domain.ErrMazeNotFound)
		assert.ErrorIs(t, f.svc.Delete(ctx, record.ID), domain.ErrMazeNotFound)
	})
}

func TestAuth(t *testing.T) {
	a, err := NewAuth(token.NewJwtService("secret", "issuer"), 0)
	require.NoError(t, err)
	id := uuid.New()

	_, err = a.Issue(id, "admin")
	assert.ErrorIs(t, err, ErrInvalidScope)

	_, err = a.Verify("not-a-token", i.ScopeShare)
	assert.ErrorIs(t, err, ErrForbidden)

	owner, err := a.Issue(id, i.ScopeOwner)
	require.NoError(t, err)
	got, err := a.Verify(owner, i.ScopeOwner)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = NewAuth(nil, 0)
	assert.Error(t, err)
}
