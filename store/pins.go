package store

import (
	"database/sql"
	"fmt"
)

// AddPin pins an entry so the recent mode lists it ahead of plain
// history.
func AddPin(db *sql.DB, entry string) error {
	query := `INSERT OR IGNORE INTO pins (entry) VALUES (?)`
	_, err := db.Exec(query, entry)
	if err != nil {
		return fmt.Errorf("failed to add pin: %w", err)
	}
	return nil
}

// RemovePin unpins an entry.
func RemovePin(db *sql.DB, entry string) error {
	query := `DELETE FROM pins WHERE entry = ?`
	_, err := db.Exec(query, entry)
	if err != nil {
		return fmt.Errorf("failed to remove pin: %w", err)
	}
	return nil
}

// GetPins returns all pinned entries in insertion order.
func GetPins(db *sql.DB) ([]string, error) {
	query := `SELECT entry FROM pins ORDER BY id`
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get pins: %w", err)
	}
	defer rows.Close()

	var entries []string
	for rows.Next() {
		var entry string
		if err := rows.Scan(&entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
