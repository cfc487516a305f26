package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database.
// These run on startup to ensure tables exist. AUTOINCREMENT keeps ids
// monotonic even across deletes, so an id is never reused for a different
// owner's card.
const schema = `
CREATE TABLE IF NOT EXISTS cards (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    amount REAL NOT NULL,
    owner TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_cards_owner ON cards(owner);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
