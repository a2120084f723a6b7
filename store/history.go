package store

import (
	"database/sql"
	"fmt"
	"time"
)

type HistoryItem struct {
	Entry     string
	Frequency int
	LastUsed  time.Time
}

// RecordUse bumps the frequency and last_used timestamp for an
// accepted entry, inserting it on first use.
func RecordUse(db *sql.DB, entry string) error {
	query := `
		INSERT INTO history (entry, frequency, last_used)
		VALUES (?, 1, CURRENT_TIMESTAMP)
		ON CONFLICT(entry) DO UPDATE SET
			frequency = frequency + 1,
			last_used = CURRENT_TIMESTAMP
	`
	_, err := db.Exec(query, entry)
	if err != nil {
		return fmt.Errorf("failed to record use: %w", err)
	}
	return nil
}

// GetHistory returns all history items, most recently used first.
func GetHistory(db *sql.DB) ([]HistoryItem, error) {
	query := `SELECT entry, frequency, last_used FROM history ORDER BY last_used DESC`
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	defer rows.Close()

	var items []HistoryItem
	for rows.Next() {
		var item HistoryItem
		if err := rows.Scan(&item.Entry, &item.Frequency, &item.LastUsed); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// GetRecentHistory returns the most recently used items, limited to N.
func GetRecentHistory(db *sql.DB, limit int) ([]HistoryItem, error) {
	query := `SELECT entry, frequency, last_used FROM history ORDER BY last_used DESC LIMIT ?`
	rows, err := db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent history: %w", err)
	}
	defer rows.Close()

	var items []HistoryItem
	for rows.Next() {
		var item HistoryItem
		if err := rows.Scan(&item.Entry, &item.Frequency, &item.LastUsed); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// DeleteHistory removes an entry from the history, typically in
// response to an entry-delete outcome.
func DeleteHistory(db *sql.DB, entry string) error {
	query := `DELETE FROM history WHERE entry = ?`
	_, err := db.Exec(query, entry)
	if err != nil {
		return fmt.Errorf("failed to delete history entry: %w", err)
	}
	return nil
}
