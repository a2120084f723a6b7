package view

import "testing"

// fakeResult is a fixed mapping over a candidate space of total
// entries.
type fakeResult struct {
	mapping []int
	total   int
}

func (r fakeResult) FilteredCount() int { return len(r.mapping) }
func (r fakeResult) At(p int) int       { return r.mapping[p] }
func (r fakeResult) Count() int         { return r.total }

func TestNavigationClamping(t *testing.T) {
	r := fakeResult{mapping: []int{2, 5, 9, 12}, total: 20}

	tests := []struct {
		name    string
		actions []Action
		want    int
	}{
		{
			name:    "down moves",
			actions: []Action{Act(RowDown), Act(RowDown)},
			want:    2,
		},
		{
			name:    "up clamps at zero",
			actions: []Action{Act(RowUp), Act(RowUp)},
			want:    0,
		},
		{
			name:    "last then down clamps",
			actions: []Action{Act(RowLast), Act(RowDown)},
			want:    3,
		},
		{
			name:    "page next clamps to last",
			actions: []Action{Act(PageNext)},
			want:    3,
		},
		{
			name:    "last then first",
			actions: []Action{Act(RowLast), Act(RowFirst)},
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			for _, a := range tt.actions {
				if out, terminal, _ := v.Trigger(r, a); terminal {
					t.Fatalf("navigation unexpectedly terminal: %+v", out)
				}
			}
			cursor, ok := v.Cursor(r)
			if !ok {
				t.Fatal("cursor reported invalid on non-empty result")
			}
			if cursor != tt.want {
				t.Errorf("cursor = %d, want %d", cursor, tt.want)
			}
		})
	}
}

func TestEmptyResultSet(t *testing.T) {
	r := fakeResult{total: 20}
	v := New()

	if _, terminal, handled := v.Trigger(r, Act(RowDown)); terminal || !handled {
		t.Error("move on empty set should be a handled no-op")
	}
	if _, ok := v.Cursor(r); ok {
		t.Error("cursor should be none on empty result set")
	}

	out, terminal, _ := v.Trigger(r, Act(Accept))
	if !terminal {
		t.Fatal("accept must terminate")
	}
	if out.Disposition != MenuCustomInput || out.Candidate != NoCandidate {
		t.Errorf("accept on empty set = %+v, want custom input with no candidate", out)
	}
}

func TestAccept(t *testing.T) {
	r := fakeResult{mapping: []int{4, 7}, total: 10}
	v := New()
	v.Trigger(r, Act(RowDown))

	out, terminal, _ := v.Trigger(r, Act(Accept))
	if !terminal || out.Disposition != MenuOK || out.Candidate != 7 {
		t.Errorf("accept = %+v (terminal %v), want OK candidate 7", out, terminal)
	}
}

func TestAcceptAlternate(t *testing.T) {
	r := fakeResult{mapping: []int{4}, total: 10}
	v := New()

	out, _, _ := v.Trigger(r, Act(AcceptAlt))
	if out.Disposition != MenuOK || out.Candidate != 4 || !out.Alternate {
		t.Errorf("accept-alt = %+v, want OK candidate 4 with alternate flag", out)
	}
}

func TestDeleteEntry(t *testing.T) {
	v := New()

	out, terminal, handled := v.Trigger(fakeResult{mapping: []int{3}, total: 5}, Act(DeleteEntry))
	if !handled || !terminal || out.Disposition != MenuEntryDelete || out.Candidate != 3 {
		t.Errorf("delete = %+v, want entry-delete candidate 3", out)
	}

	_, _, handled = v.Trigger(fakeResult{total: 5}, Act(DeleteEntry))
	if handled {
		t.Error("delete on empty set must be rejected")
	}
}

func TestQuickSwitch(t *testing.T) {
	r := fakeResult{mapping: []int{8, 2, 6}, total: 10}
	v := New()

	out, terminal, handled := v.Trigger(r, QuickSwitchTo(1))
	if !handled || !terminal {
		t.Fatal("quick-switch to existing row must terminate")
	}
	if out.Disposition != MenuQuickSwitch || out.Candidate != 2 || out.Quick != 1 {
		t.Errorf("quick-switch = %+v, want candidate 2 slot 1", out)
	}

	if _, _, handled := v.Trigger(r, QuickSwitchTo(5)); handled {
		t.Error("quick-switch past the filtered mapping must be rejected")
	}
}

func TestTab(t *testing.T) {
	t.Run("single result commits", func(t *testing.T) {
		v := New()
		out, terminal, _ := v.Trigger(fakeResult{mapping: []int{6}, total: 9}, Act(RowTab))
		if !terminal || out.Disposition != MenuOK || out.Candidate != 6 {
			t.Errorf("tab on single result = %+v, want OK candidate 6", out)
		}
	})

	t.Run("double tab on empty escapes to next mode", func(t *testing.T) {
		v := New()
		empty := fakeResult{total: 9}
		if _, terminal, _ := v.Trigger(empty, Act(RowTab)); terminal {
			t.Fatal("first tab must not terminate")
		}
		out, terminal, _ := v.Trigger(empty, Act(RowTab))
		if !terminal || out.Disposition != MenuNext || out.Candidate != 0 {
			t.Errorf("double tab = %+v, want next-mode", out)
		}
	})

	t.Run("otherwise moves down", func(t *testing.T) {
		v := New()
		r := fakeResult{mapping: []int{1, 2, 3}, total: 9}
		v.Trigger(r, Act(RowTab))
		if cursor, _ := v.Cursor(r); cursor != 1 {
			t.Errorf("cursor = %d after tab, want 1", cursor)
		}
	})

	t.Run("intervening action breaks the double tab", func(t *testing.T) {
		v := New()
		empty := fakeResult{total: 9}
		v.Trigger(empty, Act(RowTab))
		v.Trigger(empty, Act(RowUp))
		if out, terminal, _ := v.Trigger(empty, Act(RowTab)); terminal {
			t.Errorf("tab after interruption terminated with %+v", out)
		}
	})
}

func TestCancel(t *testing.T) {
	v := New()
	out, terminal, _ := v.Trigger(fakeResult{mapping: []int{1}, total: 3}, Act(Cancel))
	if !terminal || out.Disposition != MenuCancel || out.Candidate != NoCandidate {
		t.Errorf("cancel = %+v, want cancel with no candidate", out)
	}
}

func TestAfterPass(t *testing.T) {
	t.Run("clamps cursor into shrunken set", func(t *testing.T) {
		v := New()
		big := fakeResult{mapping: []int{0, 1, 2, 3, 4}, total: 5}
		v.Trigger(big, Act(RowLast))

		small := fakeResult{mapping: []int{0, 1}, total: 5}
		v.AfterPass(small, false)
		if cursor, _ := v.Cursor(small); cursor != 1 {
			t.Errorf("cursor = %d after clamp, want 1", cursor)
		}
	})

	t.Run("auto-select fires on lone survivor", func(t *testing.T) {
		v := New()
		out, fired := v.AfterPass(fakeResult{mapping: []int{7}, total: 10}, true)
		if !fired || out.Disposition != MenuOK || out.Candidate != 7 {
			t.Errorf("auto-select = %+v (fired %v), want OK candidate 7", out, fired)
		}
	})

	t.Run("auto-select needs more than one total candidate", func(t *testing.T) {
		v := New()
		if _, fired := v.AfterPass(fakeResult{mapping: []int{0}, total: 1}, true); fired {
			t.Error("auto-select must not fire on a single-candidate list")
		}
	})

	t.Run("auto-select disabled", func(t *testing.T) {
		v := New()
		if _, fired := v.AfterPass(fakeResult{mapping: []int{7}, total: 10}, false); fired {
			t.Error("auto-select fired while disabled")
		}
	})
}
