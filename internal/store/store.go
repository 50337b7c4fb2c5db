// Package store defines the storage service contract: the sole mediator
// between application logic and the persisted relational state. It owns
// soft-delete visibility and the transactional delete protocol; callers
// never touch the database directly.
package store

import (
	"context"

	"github.com/reelrateapp/reelrate-server/internal/domain"
)

// Store is the storage service interface implemented by the sqlite backend.
//
// Reads exclude soft-deleted rows, with one deliberate exception:
// ListElements is the raw listing variant and returns flagged rows too,
// while CountElements counts active rows only.
//
// The two boolean-returning deletes (DeleteElement, DeleteUser) never
// surface the underlying fault; they report success or failure and
// guarantee the store is left either fully before or fully after the
// attempt.
type Store interface {
	// Elements.
	ListElements(ctx context.Context) ([]*domain.Element, error)
	GetElementsPage(ctx context.Context, limit, offset int) ([]*domain.Element, error)
	GetElement(ctx context.Context, id int64) (*domain.Element, error)
	GetElementByTitle(ctx context.Context, title string) (*domain.Element, error)
	AddElement(ctx context.Context, e *domain.Element) (*domain.Element, error)
	UpdateElement(ctx context.Context, e *domain.Element) (*domain.Element, error)
	DeleteElement(ctx context.Context, id int64) bool
	CountElements(ctx context.Context) (int64, error)

	// Tags.
	AddTagToElement(ctx context.Context, elementID int64, name string) error
	GetTagsByElement(ctx context.Context, elementID int64) ([]*domain.Tag, error)
	GetElementsWithTag(ctx context.Context, name string) ([]*domain.Element, error)
	ListTagNames(ctx context.Context) ([]string, error)
	DeleteTag(ctx context.Context, id int64) error

	// Rates.
	ListRates(ctx context.Context) ([]*domain.Rate, error)
	GetRatesByAuthor(ctx context.Context, author int64) ([]*domain.Rate, error)
	GetRatesByElement(ctx context.Context, elementID int64) ([]*domain.Rate, error)
	AddRate(ctx context.Context, r *domain.Rate) (*domain.Rate, error)
	UpdateRate(ctx context.Context, r *domain.Rate) (*domain.Rate, error)
	DeleteRate(ctx context.Context, id int64) error

	// Users.
	AddUser(ctx context.Context, u *domain.User) (*domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)
	DeleteUser(ctx context.Context, id int64) bool

	Ping(ctx context.Context) error
	Close() error
}
