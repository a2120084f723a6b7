// Package view implements the selection state machine that sits on
// top of a filtered result set: a cursor over the mapping, and the
// interpretation of navigation and commit actions into terminal
// outcomes.
package view

// Result is the slice of engine state a transition may inspect: the
// filtered mapping and the total candidate count. It deliberately
// excludes the candidate provider; transitions never read candidate
// text.
type Result interface {
	// FilteredCount is the number of rows in the filtered mapping.
	FilteredCount() int
	// At maps a mapping row to a candidate index.
	At(p int) int
	// Count is the total (unfiltered) candidate count.
	Count() int
}

// View tracks the cursor over the filtered mapping. All transitions
// clamp rather than wrap, and every action is a total function over
// (state, mapping, action).
type View struct {
	cursor int
	page   int
	prev   ActionKind
}

func New() *View {
	return &View{page: 10, prev: noAction}
}

// SetPageSize sets the cursor delta used by page and left/right
// motions, normally the number of visible rows.
func (v *View) SetPageSize(n int) {
	if n > 0 {
		v.page = n
	}
}

// Cursor returns the current cursor position in the filtered
// mapping. ok is false when the result set is empty and no row is
// selected.
func (v *View) Cursor(r Result) (int, bool) {
	if r.FilteredCount() == 0 {
		return 0, false
	}
	return v.cursor, true
}

// Trigger applies one action against the current result set. It
// returns the outcome and terminal=true when the action ends the
// session. handled is false when the action is not applicable in the
// current state (delete or quick-switch without a valid target); the
// state is then unchanged.
func (v *View) Trigger(r Result, a Action) (out Outcome, terminal bool, handled bool) {
	defer func() {
		if handled {
			v.prev = a.Kind
		}
	}()

	n := r.FilteredCount()
	switch a.Kind {
	case RowUp:
		v.move(n, -1)
	case RowDown:
		v.move(n, 1)
	case RowLeft, PagePrev:
		v.move(n, -v.page)
	case RowRight, PageNext:
		v.move(n, v.page)
	case RowFirst:
		if n > 0 {
			v.cursor = 0
		}
	case RowLast:
		if n > 0 {
			v.cursor = n - 1
		}
	case RowTab:
		return v.tab(r)
	case Accept:
		return v.accept(r, false)
	case AcceptAlt:
		return v.accept(r, true)
	case AcceptCustom:
		return Outcome{Disposition: MenuCustomInput, Candidate: NoCandidate}, true, true
	case DeleteEntry:
		if n > 0 && v.cursor < n {
			return Outcome{Disposition: MenuEntryDelete, Candidate: r.At(v.cursor)}, true, true
		}
		return Outcome{}, false, false
	case QuickSwitch:
		// Quick-switch rows index the filtered mapping: slot n is the
		// n-th row the user currently sees.
		if a.Index >= 0 && a.Index < n {
			return Outcome{Disposition: MenuQuickSwitch, Candidate: r.At(a.Index), Quick: a.Index}, true, true
		}
		return Outcome{}, false, false
	case ModeNext:
		v.cursor = 0
		return Outcome{Disposition: MenuNext, Candidate: 0}, true, true
	case ModePrev:
		v.cursor = 0
		return Outcome{Disposition: MenuPrevious, Candidate: 0}, true, true
	case Cancel:
		return Outcome{Disposition: MenuCancel, Candidate: NoCandidate}, true, true
	}
	return Outcome{}, false, true
}

// AfterPass clamps the cursor to the new result set and evaluates
// auto-select, once per completed filter pass. When auto-select is on
// and exactly one of more than one candidates survives, it commits
// that candidate.
func (v *View) AfterPass(r Result, autoSelect bool) (Outcome, bool) {
	n := r.FilteredCount()
	if n == 0 {
		v.cursor = 0
	} else if v.cursor >= n {
		v.cursor = n - 1
	}
	if autoSelect && n == 1 && r.Count() > 1 {
		return Outcome{Disposition: MenuOK, Candidate: r.At(0)}, true
	}
	return Outcome{}, false
}

func (v *View) move(n, delta int) {
	if n == 0 {
		return
	}
	c := v.cursor + delta
	if c < 0 {
		c = 0
	}
	if c >= n {
		c = n - 1
	}
	v.cursor = c
}

func (v *View) accept(r Result, alt bool) (Outcome, bool, bool) {
	n := r.FilteredCount()
	if n > 0 && v.cursor < n {
		return Outcome{Disposition: MenuOK, Candidate: r.At(v.cursor), Alternate: alt}, true, true
	}
	return Outcome{Disposition: MenuCustomInput, Candidate: NoCandidate, Alternate: alt}, true, true
}

// tab commits a lone survivor, escapes to the next mode on a double
// tab against an empty result set, and otherwise just moves down.
func (v *View) tab(r Result) (Outcome, bool, bool) {
	n := r.FilteredCount()
	if n == 1 {
		v.cursor = 0
		return Outcome{Disposition: MenuOK, Candidate: r.At(0)}, true, true
	}
	if n == 0 && v.prev == RowTab {
		return Outcome{Disposition: MenuNext, Candidate: 0}, true, true
	}
	v.move(n, 1)
	return Outcome{}, false, true
}
