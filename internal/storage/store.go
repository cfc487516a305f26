// Package storage provides abstractions for persistent card storage.
package storage

import (
	"context"
	"errors"

	"github.com/example/dollarcard/internal/models"
)

// ErrNotFound is returned when a card does not exist for the requesting
// owner. Stores return it both for ids that do not exist and for ids owned
// by someone else; callers must not be able to tell the difference.
var ErrNotFound = errors.New("card not found")

// DefaultPageSize is used when a list request does not specify a size.
const DefaultPageSize = 20

// PageRequest describes one page of an owner's cards. Page numbers are
// zero-based. A zero-value Sort means the store's default ordering
// (amount descending).
type PageRequest struct {
	Page int
	Size int
	Sort Sort
}

// Sort names a column and direction for a page query.
type Sort struct {
	Field      string
	Descending bool
}

// Normalize clamps nonsense values to usable defaults.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	return p
}

// CardStore defines the interface for card storage operations. Every read
// and the existence check are keyed by (id, owner) so ownership filtering
// cannot be skipped; only DeleteByID and Save mutate by id alone, and they
// must be preceded by an owner-scoped check.
type CardStore interface {
	// Insert persists a new card and populates card.ID with the
	// store-assigned identifier.
	Insert(ctx context.Context, card *models.Card) error

	// FindByIDAndOwner returns the card with the given id if it belongs
	// to owner, or ErrNotFound.
	FindByIDAndOwner(ctx context.Context, id int64, owner string) (*models.Card, error)

	// ExistsByIDAndOwner reports whether a card with the given id exists
	// and belongs to owner.
	ExistsByIDAndOwner(ctx context.Context, id int64, owner string) (bool, error)

	// FindPageByOwner returns one page of cards belonging to owner.
	FindPageByOwner(ctx context.Context, owner string, page PageRequest) ([]models.Card, error)

	// Save upserts a card by its id, replacing all fields.
	Save(ctx context.Context, card *models.Card) error

	// DeleteByID removes a card by id regardless of owner. Callers must
	// have already proven ownership via ExistsByIDAndOwner.
	DeleteByID(ctx context.Context, id int64) error

	// Close releases any resources held by the store.
	Close() error
}
