package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/example/dollarcard/internal/models"
	"github.com/example/dollarcard/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustInsert(t *testing.T, store *Store, amount float64, owner string) int64 {
	t.Helper()

	card := models.NewCard(amount, owner)
	if err := store.Insert(context.Background(), card); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	return *card.ID
}

func TestInsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("assigns increasing ids", func(t *testing.T) {
		first := mustInsert(t, store, 10.0, "mich")
		second := mustInsert(t, store, 20.0, "mich")
		if second <= first {
			t.Errorf("ids not increasing: %d then %d", first, second)
		}
	})

	t.Run("honors a pinned id and continues above it", func(t *testing.T) {
		pinned := int64(100)
		card := &models.Card{ID: &pinned, Amount: 5.0, Owner: "ama"}
		if err := store.Insert(ctx, card); err != nil {
			t.Fatalf("Insert with pinned id failed: %v", err)
		}

		next := mustInsert(t, store, 6.0, "ama")
		if next <= pinned {
			t.Errorf("auto id %d did not continue past pinned id %d", next, pinned)
		}
	})
}

func TestFindByIDAndOwner(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	id := mustInsert(t, store, 250.25, "mich")

	t.Run("returns the owner's card", func(t *testing.T) {
		card, err := store.FindByIDAndOwner(ctx, id, "mich")
		if err != nil {
			t.Fatalf("FindByIDAndOwner failed: %v", err)
		}
		if *card.ID != id || card.Amount != 250.25 || card.Owner != "mich" {
			t.Errorf("unexpected card: %+v", card)
		}
	})

	t.Run("another owner's card is not found", func(t *testing.T) {
		_, err := store.FindByIDAndOwner(ctx, id, "ama")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("got %v, want ErrNotFound", err)
		}
	})

	t.Run("missing id is not found", func(t *testing.T) {
		_, err := store.FindByIDAndOwner(ctx, 99999, "mich")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("got %v, want ErrNotFound", err)
		}
	})
}

func TestExistsByIDAndOwner(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	id := mustInsert(t, store, 1.0, "mich")

	tests := []struct {
		name  string
		id    int64
		owner string
		want  bool
	}{
		{"owned card exists", id, "mich", true},
		{"other owner does not see it", id, "ama", false},
		{"missing id does not exist", 99999, "mich", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.ExistsByIDAndOwner(ctx, tt.id, tt.owner)
			if err != nil {
				t.Fatalf("ExistsByIDAndOwner failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindPageByOwner(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	mustInsert(t, store, 250.25, "mich")
	mustInsert(t, store, 20.55, "mich")
	mustInsert(t, store, 150.75, "mich")
	mustInsert(t, store, 999.99, "ama")

	amounts := func(cards []models.Card) []float64 {
		out := make([]float64, len(cards))
		for i, c := range cards {
			out[i] = c.Amount
		}
		return out
	}

	t.Run("defaults to amount descending and excludes other owners", func(t *testing.T) {
		cards, err := store.FindPageByOwner(ctx, "mich", storage.PageRequest{})
		if err != nil {
			t.Fatalf("FindPageByOwner failed: %v", err)
		}
		got := amounts(cards)
		want := []float64{250.25, 150.75, 20.55}
		if len(got) != len(want) {
			t.Fatalf("got %d cards, want %d", len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("position %d: got %v, want %v", i, got[i], want[i])
			}
		}
	})

	t.Run("respects page and size", func(t *testing.T) {
		page := storage.PageRequest{
			Page: 0,
			Size: 1,
			Sort: storage.Sort{Field: "amount", Descending: true},
		}
		cards, err := store.FindPageByOwner(ctx, "mich", page)
		if err != nil {
			t.Fatalf("FindPageByOwner failed: %v", err)
		}
		if len(cards) != 1 || cards[0].Amount != 250.25 {
			t.Errorf("got %+v, want single card with amount 250.25", cards)
		}

		page.Page = 1
		cards, err = store.FindPageByOwner(ctx, "mich", page)
		if err != nil {
			t.Fatalf("FindPageByOwner failed: %v", err)
		}
		if len(cards) != 1 || cards[0].Amount != 150.75 {
			t.Errorf("page 1: got %+v, want single card with amount 150.75", cards)
		}
	})

	t.Run("sorts ascending when asked", func(t *testing.T) {
		page := storage.PageRequest{Sort: storage.Sort{Field: "amount"}}
		cards, err := store.FindPageByOwner(ctx, "mich", page)
		if err != nil {
			t.Fatalf("FindPageByOwner failed: %v", err)
		}
		if cards[0].Amount != 20.55 {
			t.Errorf("first amount = %v, want 20.55", cards[0].Amount)
		}
	})

	t.Run("unknown sort column falls back to default ordering", func(t *testing.T) {
		page := storage.PageRequest{Sort: storage.Sort{Field: "amount; DROP TABLE cards"}}
		cards, err := store.FindPageByOwner(ctx, "mich", page)
		if err != nil {
			t.Fatalf("FindPageByOwner failed: %v", err)
		}
		if len(cards) != 3 || cards[0].Amount != 250.25 {
			t.Errorf("got %+v, want default amount-descending page", cards)
		}
	})

	t.Run("owner with no cards gets an empty page", func(t *testing.T) {
		cards, err := store.FindPageByOwner(ctx, "nobody", storage.PageRequest{})
		if err != nil {
			t.Fatalf("FindPageByOwner failed: %v", err)
		}
		if len(cards) != 0 {
			t.Errorf("got %d cards, want 0", len(cards))
		}
	})
}

func TestSave(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	id := mustInsert(t, store, 250.25, "mich")

	updated := &models.Card{ID: &id, Amount: 111.12, Owner: "mich"}
	if err := store.Save(ctx, updated); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	card, err := store.FindByIDAndOwner(ctx, id, "mich")
	if err != nil {
		t.Fatalf("FindByIDAndOwner failed: %v", err)
	}
	if card.Amount != 111.12 {
		t.Errorf("Amount = %v, want 111.12", card.Amount)
	}
	if card.Owner != "mich" {
		t.Errorf("Owner = %q, want mich", card.Owner)
	}
}

func TestDeleteByID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	id := mustInsert(t, store, 1.0, "mich")

	if err := store.DeleteByID(ctx, id); err != nil {
		t.Fatalf("DeleteByID failed: %v", err)
	}

	if _, err := store.FindByIDAndOwner(ctx, id, "mich"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("card still findable after delete: %v", err)
	}

	if err := store.DeleteByID(ctx, id); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second delete: got %v, want ErrNotFound", err)
	}
}
