package mode

import (
	"database/sql"
	"sort"

	"github.com/montrey/sift/store"
)

// Recent lists previously accepted entries: pinned ones first, the
// rest by recency of use.
type Recent struct {
	db      *sql.DB
	entries []string
}

// NewRecent loads the history and pins from db.
func NewRecent(db *sql.DB) (*Recent, error) {
	r := &Recent{db: db}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Recent) Name() string            { return "recent" }
func (r *Recent) Prompt() string          { return "recent" }
func (r *Recent) Count() int              { return len(r.entries) }
func (r *Recent) Searchable(i int) string { return r.entries[i] }
func (r *Recent) Display(i int) string    { return r.entries[i] }

// Reload re-reads pins and history. Pinned > recent > alphabetical.
func (r *Recent) Reload() error {
	history, err := store.GetHistory(r.db)
	if err != nil {
		return err
	}
	pins, err := store.GetPins(r.db)
	if err != nil {
		return err
	}

	pinned := make(map[string]bool, len(pins))
	for _, p := range pins {
		pinned[p] = true
	}
	lastUsed := make(map[string]int64, len(history))

	seen := make(map[string]bool)
	var entries []string
	for _, p := range pins {
		if !seen[p] {
			seen[p] = true
			entries = append(entries, p)
		}
	}
	for _, h := range history {
		lastUsed[h.Entry] = h.LastUsed.Unix()
		if !seen[h.Entry] {
			seen[h.Entry] = true
			entries = append(entries, h.Entry)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		e1 := entries[i]
		e2 := entries[j]

		p1 := pinned[e1]
		p2 := pinned[e2]
		if p1 && !p2 {
			return true
		}
		if !p1 && p2 {
			return false
		}

		r1 := lastUsed[e1]
		r2 := lastUsed[e2]
		if r1 != r2 {
			return r1 > r2
		}

		return e1 < e2
	})

	r.entries = entries
	return nil
}
