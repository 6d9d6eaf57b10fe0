package domain

// Tape simulates an infinite tape by growing on demand at either end.
//
// Cells left of the original origin are kept in a separate slice (stored in
// reverse) so that growing at the front is an append rather than a shift.
// The head index exposed by Head is always an index into Cells and never
// negative.
type Tape struct {
	left  []Symbol // left[i] holds absolute position -(i+1)
	right []Symbol // right[i] holds absolute position i
	pos   int      // absolute head position
	blank Symbol
}

// NewTape lays out [blank] + input + [blank] with the head over the first input cell.
func NewTape(input []Symbol, tracks int) *Tape {
	blank := BlankSymbol(tracks)
	right := make([]Symbol, 0, len(input)+2)
	right = append(right, blank)
	right = append(right, input...)
	right = append(right, blank)
	return &Tape{
		right: right,
		pos:   1,
		blank: blank,
	}
}

// Len returns the number of materialized cells.
func (t *Tape) Len() int {
	return len(t.left) + len(t.right)
}

// Head returns the head index into Cells.
func (t *Tape) Head() int {
	return t.pos + len(t.left)
}

// Read returns the symbol under the head.
func (t *Tape) Read() Symbol {
	return *t.cell(t.pos)
}

// Write overwrites the symbol under the head.
func (t *Tape) Write(s Symbol) {
	*t.cell(t.pos) = s
}

// Move shifts the head one cell, materializing a blank when it leaves the known tape.
func (t *Tape) Move(d Direction) {
	switch d {
	case Left:
		if t.Head() == 0 {
			t.left = append(t.left, t.blank)
		}
		t.pos--
	case Right:
		t.pos++
		if t.Head() == t.Len() {
			t.right = append(t.right, t.blank)
		}
	}
}

// Cells returns a copy of the tape contents, leftmost cell first.
func (t *Tape) Cells() []Symbol {
	out := make([]Symbol, 0, t.Len())
	for i := len(t.left) - 1; i >= 0; i-- {
		out = append(out, t.left[i])
	}
	return append(out, t.right...)
}

func (t *Tape) cell(pos int) *Symbol {
	if pos >= 0 {
		return &t.right[pos]
	}
	return &t.left[-pos-1]
}
