package selection

// Chip is one rendered entry of the selected-files list. Index is the
// position to pass back to Remove.
type Chip struct {
	Index int
	ID    string
	Name  string
}

// Display is the render model for the selection. Exactly one of Chips and
// Placeholder is populated.
type Display struct {
	Chips       []Chip
	Placeholder string
}

// Display renders the selection in its current order. It has no side effects
// and may be called any number of times.
func (s *State) Display() Display {
	if len(s.files) == 0 {
		return Display{Placeholder: Placeholder}
	}
	chips := make([]Chip, len(s.files))
	for i, f := range s.files {
		chips[i] = Chip{Index: i, ID: f.ID, Name: f.Name}
	}
	return Display{Chips: chips}
}
