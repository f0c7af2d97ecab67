package i

import "context"

// Locker serializes writers on a shared resource.
type Locker interface {
	// Lock acquires the lock named key and returns the function that releases it.
	Lock(ctx context.Context, key string) (unlock func(), err error)
}
