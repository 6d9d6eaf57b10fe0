package domain

// Snapshot captures one configuration of a run.
type Snapshot struct {
	// Step counts the transitions applied before this configuration.
	Step int `json:"step"`

	// State is the current state of the machine.
	State string `json:"state"`

	// Cells is a copy of the full tape contents.
	Cells []Symbol `json:"cells"`

	// Head is the head index into Cells.
	Head int `json:"head"`

	// Matched is the transition that applies to this configuration.
	// Nil means no transition matches and the machine halts here.
	Matched *Transition `json:"matched,omitempty"`
}

// Halted reports whether this is the final configuration of a run.
func (s Snapshot) Halted() bool {
	return s.Matched == nil
}

// Symbol returns the symbol under the head.
func (s Snapshot) Symbol() Symbol {
	if s.Head < 0 || s.Head >= len(s.Cells) {
		return ""
	}
	return s.Cells[s.Head]
}

// Result is the outcome of a run to completion.
type Result struct {
	Accepted   bool     `json:"accepted"`
	FinalState string   `json:"final_state"`
	Steps      int      `json:"steps"`
	Cells      []Symbol `json:"cells"`
	Head       int      `json:"head"`
}

// Output returns the tape contents without outer blanks, split per track.
func (r *Result) Output(tracks int) []string {
	return DecomposeSymbols(TrimBlanks(r.Cells), tracks)
}
