package models

// Card represents a single dollar card record.
type Card struct {
	// ID is the unique identifier assigned by the store on insert.
	// Nil until the card has been persisted.
	ID *int64 `json:"id"`

	// Amount is the monetary value on the card. The service treats it
	// as opaque numeric payload; no range is enforced.
	Amount float64 `json:"amount"`

	// Owner is the username of the principal that created the card.
	// Always derived from the authenticated request, never from client
	// input, and immutable after creation.
	Owner string `json:"owner"`
}

// NewCard builds an unpersisted card for the given owner.
// The store assigns the ID on insert.
func NewCard(amount float64, owner string) *Card {
	return &Card{Amount: amount, Owner: owner}
}
