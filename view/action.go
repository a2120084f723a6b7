package view

// ActionKind enumerates the navigation and commit intents the state
// machine understands.
type ActionKind int

const (
	RowUp ActionKind = iota
	RowDown
	RowLeft
	RowRight
	PagePrev
	PageNext
	RowFirst
	RowLast
	RowTab
	Accept
	AcceptAlt
	AcceptCustom
	DeleteEntry
	QuickSwitch
	ModeNext
	ModePrev
	Cancel
)

// noAction is the prev-action sentinel before anything has been
// triggered.
const noAction ActionKind = -1

// Action is one user intent fed to Trigger. Index is meaningful only
// for QuickSwitch, where it names a row of the filtered mapping.
type Action struct {
	Kind  ActionKind
	Index int
}

// Act wraps a plain kind as an Action.
func Act(kind ActionKind) Action { return Action{Kind: kind} }

// QuickSwitchTo selects row n of the filtered mapping and tags the
// outcome with slot n.
func QuickSwitchTo(n int) Action { return Action{Kind: QuickSwitch, Index: n} }
