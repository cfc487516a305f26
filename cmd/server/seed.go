package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/example/dollarcard/internal/models"
	"github.com/example/dollarcard/internal/storage"
)

// demoCards mirrors the dataset used by the integration tests: three cards
// for mich, two for ama. Pinned ids keep the auto-id sequence above them.
var demoCards = []struct {
	id     int64
	amount float64
	owner  string
}{
	{20, 250.25, "mich"},
	{21, 20.55, "mich"},
	{22, 150.75, "mich"},
	{23, 300.00, "ama"},
	{24, 75.50, "ama"},
}

// seedDemoCards inserts the demo dataset, skipping cards that already exist
// so repeated starts against the same database are harmless.
func seedDemoCards(store storage.CardStore) error {
	ctx := context.Background()
	seeded := 0
	for _, d := range demoCards {
		exists, err := store.ExistsByIDAndOwner(ctx, d.id, d.owner)
		if err != nil {
			return fmt.Errorf("failed to check demo card %d: %w", d.id, err)
		}
		if exists {
			continue
		}
		id := d.id
		card := &models.Card{ID: &id, Amount: d.amount, Owner: d.owner}
		if err := store.Insert(ctx, card); err != nil {
			return fmt.Errorf("failed to seed demo card %d: %w", d.id, err)
		}
		seeded++
	}
	slog.Info("Demo cards seeded", "inserted", seeded, "total", len(demoCards))
	return nil
}
