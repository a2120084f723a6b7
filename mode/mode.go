// Package mode supplies candidate lists for picker sessions: stdin
// lines, a walked file tree, and the accepted-entry history.
package mode

// A Mode is an indexed, read-only candidate source. The engine reads
// it concurrently during a pass; the candidate list may only change
// through Reload between passes.
type Mode interface {
	Name() string
	Prompt() string
	Count() int
	Searchable(i int) string
	Display(i int) string
	// Reload refreshes the candidate list. Callers mark the engine
	// for reload afterwards.
	Reload() error
}
