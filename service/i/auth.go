package i

import (
	"github.com/google/uuid"
)

// Token scopes.
const (
	ScopeOwner = "owner" // May delete and share the maze
	ScopeShare = "share" // May read the maze
)

// Authorizer issues and verifies the signed tokens that grant access to a maze.
type Authorizer interface {
	// Issue returns a token granting scope on the maze.
	Issue(id uuid.UUID, scope string) (string, error)

	// Verify checks a token and returns the maze it grants scope on.
	Verify(token string, scope string) (uuid.UUID, error)
}
