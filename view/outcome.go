package view

// Disposition is the terminal classification of a pass-ending action.
type Disposition int

const (
	MenuOK Disposition = iota
	MenuCancel
	MenuNext
	MenuPrevious
	MenuCustomInput
	MenuEntryDelete
	MenuQuickSwitch
)

// NoCandidate marks an outcome carrying no candidate index; the raw
// query text applies instead.
const NoCandidate = -1

// Outcome is the terminal result record of a session-ending action.
type Outcome struct {
	Disposition Disposition
	// Candidate is the selected candidate's index in the provider, or
	// NoCandidate.
	Candidate int
	// Alternate carries the accept-alternate modifier.
	Alternate bool
	// Quick is the quick-switch slot, valid for MenuQuickSwitch.
	Quick int
}
