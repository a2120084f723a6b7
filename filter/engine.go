// Package filter recomputes the visible candidate set for a query: it
// tokenizes the query, matches candidates in parallel chunks, and
// assembles an index mapping, optionally ranked by match quality.
package filter

import (
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"
)

// Provider supplies the candidate list for a pass. Indices run
// 0..Count()-1. Implementations must be safe for concurrent reads and
// must not change between the start and end of a pass; a changed
// count is picked up on the pass after MarkReload.
type Provider interface {
	Count() int
	Searchable(i int) string
	Display(i int) string
}

// Config holds the matching knobs read at engine construction.
// Threads is fixed for the engine's lifetime; the other fields may be
// toggled between passes.
type Config struct {
	CaseSensitive bool
	Sort          bool
	MatchMode     MatchMode
	DistanceMode  DistanceMode
	// Threads is the worker budget: 0 autodetects (one per CPU,
	// capped), 1 forces fully inline filtering.
	Threads int
}

// Engine recomputes the filtered index mapping for a provider on
// every pass. One pass is synchronous: Refilter returns only after
// every chunk has been processed and the mapping assembled. An Engine
// must be driven from a single goroutine.
type Engine struct {
	cfg       Config
	threads   int
	pool      *pool
	chunkSize int

	numLines int
	lineMap  []int
	distance []int
	filtered int
	reload   bool
}

// NewEngine builds an engine and, for thread budgets above one,
// starts its worker pool. The calling goroutine always processes the
// first chunk itself, so a budget of T spawns T-1 workers.
func NewEngine(cfg Config) (*Engine, error) {
	threads := cfg.Threads
	if threads < 0 {
		return nil, fmt.Errorf("invalid thread count %d", cfg.Threads)
	}
	if threads == 0 {
		threads = runtime.NumCPU()
		if threads > maxThreads {
			threads = maxThreads
		}
	}
	e := &Engine{
		cfg:       cfg,
		threads:   threads,
		chunkSize: defaultChunkSize,
		reload:    true,
	}
	if threads > 1 {
		e.pool = newPool(threads - 1)
	}
	return e, nil
}

// Close stops the worker pool. The engine must not be used after.
func (e *Engine) Close() {
	if e.pool != nil {
		e.pool.close()
		e.pool = nil
	}
}

// Config returns the current configuration.
func (e *Engine) Config() Config { return e.cfg }

// Threads returns the resolved worker budget.
func (e *Engine) Threads() int { return e.threads }

// SetSort toggles ranking. Takes effect on the next pass.
func (e *Engine) SetSort(on bool) { e.cfg.Sort = on }

// SetCaseSensitive toggles case folding. Takes effect on the next
// pass.
func (e *Engine) SetCaseSensitive(on bool) { e.cfg.CaseSensitive = on }

// MarkReload tells the next pass to re-read the provider's count and
// resize the mapping and distance tables.
func (e *Engine) MarkReload() { e.reload = true }

// FilteredCount returns the number of surviving candidates after the
// last pass.
func (e *Engine) FilteredCount() int { return e.filtered }

// Count returns the total candidate count seen by the last pass.
func (e *Engine) Count() int { return e.numLines }

// At maps position p in the filtered view to a candidate index.
func (e *Engine) At(p int) int { return e.lineMap[p] }

// Mapping returns the filtered index mapping of the last pass. The
// slice aliases engine state and is only valid until the next pass.
func (e *Engine) Mapping() []int { return e.lineMap[:e.filtered] }

// Distance returns the score recorded for candidate i during the
// last pass. Meaningful only for matched candidates with sorting
// enabled.
func (e *Engine) Distance(i int) int { return e.distance[i] }

// chunk is one contiguous candidate range handed to one worker. The
// worker writes matches into lineMap[start:start+count] and scores
// into distance by absolute index, so chunks never overlap in either
// table.
type chunk struct {
	start, stop, count int
}

// Refilter runs one complete filter pass for query. The empty query
// matches everything in index order and skips scoring entirely.
func (e *Engine) Refilter(p Provider, query string) {
	if e.reload {
		e.numLines = p.Count()
		e.lineMap = make([]int, e.numLines)
		e.distance = make([]int, e.numLines)
		e.reload = false
	}
	n := e.numLines
	if n == 0 {
		e.filtered = 0
		return
	}
	if query == "" {
		for i := 0; i < n; i++ {
			e.lineMap[i] = i
		}
		e.filtered = n
		return
	}

	tokens := Tokenize(query, e.cfg.CaseSensitive)
	pattern := query
	if !e.cfg.CaseSensitive {
		pattern = strings.ToLower(query)
	}

	chunks := e.partition(n)
	if len(chunks) == 1 || e.pool == nil {
		for i := range chunks {
			e.filterChunk(p, tokens, pattern, &chunks[i])
		}
	} else {
		var wg sync.WaitGroup
		wg.Add(len(chunks) - 1)
		for i := 1; i < len(chunks); i++ {
			c := &chunks[i]
			e.pool.submit(func() {
				defer wg.Done()
				e.filterChunk(p, tokens, pattern, c)
			})
		}
		// Run the first chunk on this goroutine, then wait out the
		// barrier.
		e.filterChunk(p, tokens, pattern, &chunks[0])
		wg.Wait()
	}

	e.filtered = e.assemble(chunks)
}

// partition splits [0, n) into contiguous increasing chunks of
// roughly chunkSize candidates.
func (e *Engine) partition(n int) []chunk {
	nt := n / e.chunkSize
	if nt < 1 {
		nt = 1
	}
	steps := (n + nt) / nt
	chunks := make([]chunk, 0, nt)
	for i := 0; i < nt; i++ {
		start := i * steps
		stop := (i + 1) * steps
		if stop > n {
			stop = n
		}
		if start >= stop {
			break
		}
		chunks = append(chunks, chunk{start: start, stop: stop})
	}
	return chunks
}

func (e *Engine) filterChunk(p Provider, tokens Tokens, pattern string, c *chunk) {
	for i := c.start; i < c.stop; i++ {
		text := p.Searchable(i)
		if !tokens.Match(text, e.cfg.MatchMode) {
			continue
		}
		e.lineMap[c.start+c.count] = i
		if e.cfg.Sort {
			s := text
			if !e.cfg.CaseSensitive {
				s = strings.ToLower(s)
			}
			if e.fuzzyScoring() {
				e.distance[i] = FuzzyScore(pattern, s)
			} else {
				e.distance[i] = EditDistance(pattern, s)
			}
		}
		c.count++
	}
}

// assemble compacts the per-chunk match regions in chunk order, which
// keeps the mapping strictly increasing in candidate index, then
// applies the optional stable sort on the distance table.
func (e *Engine) assemble(chunks []chunk) int {
	j := chunks[0].count
	for i := 1; i < len(chunks); i++ {
		c := chunks[i]
		if j != c.start {
			copy(e.lineMap[j:j+c.count], e.lineMap[c.start:c.start+c.count])
		}
		j += c.count
	}
	if e.cfg.Sort {
		m := e.lineMap[:j]
		d := e.distance
		if e.fuzzyScoring() {
			sort.SliceStable(m, func(a, b int) bool { return d[m[a]] > d[m[b]] })
		} else {
			sort.SliceStable(m, func(a, b int) bool { return d[m[a]] < d[m[b]] })
		}
	}
	return j
}

// fuzzyScoring reports whether the pass ranks by fuzzy score rather
// than edit distance. Levenshtein also covers non-fuzzy match modes,
// where a subsequence score has nothing to measure.
func (e *Engine) fuzzyScoring() bool {
	return e.cfg.DistanceMode == DistanceFuzzy && e.cfg.MatchMode == MatchFuzzy
}
