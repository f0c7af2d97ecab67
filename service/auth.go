package service

import (
	"errors"
	"time"

	"github.com/beka-birhanu/simplemaze/service/i"
	"github.com/google/uuid"
)

const (
	claimMazeID = "maze_id"
	claimScope  = "scope"

	defaultOwnerTokenTTL = 365 * 24 * time.Hour
	defaultShareTokenTTL = 7 * 24 * time.Hour
)

var (
	ErrForbidden    = errors.New("token does not grant access to this maze")
	ErrInvalidScope = errors.New("invalid token scope")
)

// Auth issues owner and share tokens for mazes.
type Auth struct {
	tokenizer i.Tokenizer
	ttl       map[string]time.Duration
}

// NewAuth creates an Auth signing through the tokenizer.
// A zero shareTTL selects the default lifetime of share tokens.
func NewAuth(tokenizer i.Tokenizer, shareTTL time.Duration) (*Auth, error) {
	if tokenizer == nil {
		return nil, errors.New("tokenizer is required")
	}
	if shareTTL <= 0 {
		shareTTL = defaultShareTokenTTL
	}

	return &Auth{
		tokenizer: tokenizer,
		ttl: map[string]time.Duration{
			i.ScopeOwner: defaultOwnerTokenTTL,
			i.ScopeShare: shareTTL,
		},
	}, nil
}

// Issue implements i.Authorizer.
func (a *Auth) Issue(id uuid.UUID, scope string) (string, error) {
	ttl, ok := a.ttl[scope]
	if !ok {
		return "", ErrInvalidScope
	}

	return a.tokenizer.Generate(map[string]interface{}{
		claimMazeID: id.String(),
		claimScope:  scope,
	}, ttl)
}

// Verify implements i.Authorizer.
// An owner token is accepted wherever a share token is.
func (a *Auth) Verify(token string, scope string) (uuid.UUID, error) {
	if _, ok := a.ttl[scope]; !ok {
		return uuid.Nil, ErrInvalidScope
	}

	claims, err := a.tokenizer.Decode(token)
	if err != nil {
		return uuid.Nil, ErrForbidden
	}

	granted, _ := claims[claimScope].(string)
	if granted != scope && !(scope == i.ScopeShare && granted == i.ScopeOwner) {
		return uuid.Nil, ErrForbidden
	}

	rawID, _ := claims[claimMazeID].(string)
	id, err := uuid.Parse(rawID)
	if err != nil {
		return uuid.Nil, ErrForbidden
	}
	return id, nil
}
