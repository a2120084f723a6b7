package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// Row is one visible candidate line.
type Row struct {
	Text   string
	Recent bool // previously accepted; rendered in the history accent
}

var (
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	matchStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Bold(true)
	recentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	overflowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// ListModel renders the filtered candidates as a flat vertical list
// with a cursor row and matched-rune emphasis. It scrolls the visible
// window to keep the cursor on screen.
type ListModel struct {
	Width  int
	Height int
	offset int
}

// PageSize returns the number of visible rows, which doubles as the
// page-motion delta.
func (m *ListModel) PageSize() int {
	if m.Height <= 0 {
		return 1
	}
	return m.Height
}

// View renders rows with the cursor at the given position. query is
// used to emphasize the runes the match touched.
func (m *ListModel) View(rows []Row, cursor int, hasCursor bool, query string) string {
	if len(rows) == 0 {
		return overflowStyle.Render("(no matches)")
	}
	if !hasCursor {
		cursor = 0
	}
	m.scrollTo(cursor, len(rows))

	// Spaces act as AND separators, not literal characters, so drop
	// them before computing highlight positions.
	cleanQuery := strings.ReplaceAll(query, " ", "")

	end := m.offset + m.PageSize()
	if end > len(rows) {
		end = len(rows)
	}

	var lines []string
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.renderRow(rows[i], cleanQuery, hasCursor && i == cursor))
	}
	if end < len(rows) {
		lines = append(lines, overflowStyle.Render("…"))
	}
	return strings.Join(lines, "\n")
}

func (m *ListModel) renderRow(row Row, cleanQuery string, selected bool) string {
	text := row.Text
	maxLen := m.Width - 2
	if maxLen > 0 && len(text) > maxLen {
		text = text[:maxLen-1] + "…"
	}

	if selected {
		return cursorStyle.Render("> " + text)
	}

	base := normalStyle
	if row.Recent {
		base = recentStyle
	}

	matched := matchedIndexes(cleanQuery, text)
	if len(matched) == 0 {
		return "  " + base.Render(text)
	}

	var b strings.Builder
	b.WriteString("  ")
	for i, r := range text {
		if matched[i] {
			b.WriteString(matchStyle.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}

// matchedIndexes returns the byte positions in text touched by a
// fuzzy match of query, or nil when the query doesn't land.
func matchedIndexes(query, text string) map[int]bool {
	if query == "" {
		return nil
	}
	matches := fuzzy.Find(query, []string{text})
	if len(matches) == 0 {
		return nil
	}
	set := make(map[int]bool, len(matches[0].MatchedIndexes))
	for _, idx := range matches[0].MatchedIndexes {
		set[idx] = true
	}
	return set
}

// scrollTo moves the visible window so cursor stays on screen.
func (m *ListModel) scrollTo(cursor, total int) {
	page := m.PageSize()
	if cursor < m.offset {
		m.offset = cursor
	}
	if cursor >= m.offset+page {
		m.offset = cursor - page + 1
	}
	if m.offset > total-1 {
		m.offset = total - 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}
