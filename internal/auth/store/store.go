// Package store defines the persistence boundary for the auth service.
// Drivers live under drivers/ and implement these interfaces; callers
// depend only on this package.
package store

import (
	"context"
	"errors"

	"github.com/athleteone/athleteone/internal/auth/domain"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("store: not found")

	// ErrAlreadyExists is returned when a uniqueness constraint is
	// violated, such as registering an email twice.
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root persistence interface.
type Store interface {
	Users() UserStore
	Opportunities() OpportunityStore

	// WithTx runs fn inside a transaction. The transaction commits when
	// fn returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Ping(ctx context.Context) error
	Close() error
}

// Tx exposes the same stores bound to an open transaction.
type Tx interface {
	Users() UserStore
	Opportunities() OpportunityStore
}

// UserStore persists accounts.
type UserStore interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Count(ctx context.Context) (int64, error)
}

// OpportunityStore persists the listings catalog.
type OpportunityStore interface {
	Create(ctx context.Context, opp *domain.Opportunity) error
	List(ctx context.Context, filter domain.OpportunityFilter) ([]domain.Opportunity, int64, error)
	Count(ctx context.Context) (int64, error)
}
