package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/dollarcard/internal/models"
	"github.com/example/dollarcard/internal/storage"
)

// sortColumns whitelists the columns a page query may order by. ORDER BY
// targets cannot be bound as parameters, so anything outside this map falls
// back to the default ordering instead of reaching the SQL text.
var sortColumns = map[string]string{
	"id":     "id",
	"amount": "amount",
	"owner":  "owner",
}

// Insert persists a new card. When card.ID is nil the database assigns the
// next id and the field is populated; a non-nil id is honored so seed data
// can pin well-known ids.
func (s *Store) Insert(ctx context.Context, card *models.Card) error {
	if card.ID != nil {
		_, err := s.db.ExecContext(ctx,
			"INSERT INTO cards (id, amount, owner) VALUES (?, ?, ?)",
			*card.ID, card.Amount, card.Owner,
		)
		if err != nil {
			return fmt.Errorf("failed to insert card: %w", err)
		}
		return nil
	}

	result, err := s.db.ExecContext(ctx,
		"INSERT INTO cards (amount, owner) VALUES (?, ?)",
		card.Amount, card.Owner,
	)
	if err != nil {
		return fmt.Errorf("failed to insert card: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted card id: %w", err)
	}
	card.ID = &id
	return nil
}

// FindByIDAndOwner retrieves a card by id, scoped to the given owner.
// A card owned by someone else yields the same storage.ErrNotFound as a
// card that does not exist.
func (s *Store) FindByIDAndOwner(ctx context.Context, id int64, owner string) (*models.Card, error) {
	card := &models.Card{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, amount, owner FROM cards WHERE id = ? AND owner = ?",
		id, owner,
	).Scan(&card.ID, &card.Amount, &card.Owner)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	return card, nil
}

// ExistsByIDAndOwner reports whether a card with the given id belongs to owner.
func (s *Store) ExistsByIDAndOwner(ctx context.Context, id int64, owner string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM cards WHERE id = ? AND owner = ?)",
		id, owner,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check card existence: %w", err)
	}
	return exists, nil
}

// FindPageByOwner returns one page of the owner's cards, ordered by the
// requested sort or by amount descending when none is given.
func (s *Store) FindPageByOwner(ctx context.Context, owner string, page storage.PageRequest) ([]models.Card, error) {
	page = page.Normalize()

	column, ok := sortColumns[page.Sort.Field]
	direction := "DESC"
	if !ok {
		column = "amount"
	} else if !page.Sort.Descending {
		direction = "ASC"
	}

	query := fmt.Sprintf(
		"SELECT id, amount, owner FROM cards WHERE owner = ? ORDER BY %s %s LIMIT ? OFFSET ?",
		column, direction,
	)
	rows, err := s.db.QueryContext(ctx, query, owner, page.Size, page.Page*page.Size)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	cards := []models.Card{}
	for rows.Next() {
		var card models.Card
		if err := rows.Scan(&card.ID, &card.Amount, &card.Owner); err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cards: %w", err)
	}
	return cards, nil
}

// Save upserts a card by its id. The caller supplies every field, including
// the owner carried over from the existing row.
func (s *Store) Save(ctx context.Context, card *models.Card) error {
	if card.ID == nil {
		return s.Insert(ctx, card)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cards (id, amount, owner) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET amount = excluded.amount, owner = excluded.owner`,
		*card.ID, card.Amount, card.Owner,
	)
	if err != nil {
		return fmt.Errorf("failed to save card: %w", err)
	}
	return nil
}

// DeleteByID removes a card by id. Ownership must already have been proven
// with ExistsByIDAndOwner; this call does not re-check it.
func (s *Store) DeleteByID(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM cards WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}
