package selection

import "fmt"

// ValidationError rejects a checklist confirmation that selected no files or
// more than MaxFiles.
type ValidationError struct {
	Checked int
	Reason  string
}

func (e *ValidationError) Error() string { return e.Reason }

// CapacityError reports that a pick was cut down to MaxFiles. It is a notice,
// not a failure: the kept files are still applied.
type CapacityError struct {
	Picked int
	Kept   int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("Only the first %d files were kept; %d were picked.", e.Kept, e.Picked)
}
