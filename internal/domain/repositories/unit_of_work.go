package repositories

import "context"

// UnitOfWork runs a function within a single transaction scope so that a
// mutation and its audit event commit or roll back together.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
