package textview

import "fmt"

// OffsetError reports a model offset outside the range a view is
// responsible for. It is recoverable: callers typically clamp or skip the
// offending position and continue.
type OffsetError struct {
	// Offset is the rejected model position.
	Offset int
	// Start and End delimit the valid range [Start, End).
	Start, End int
}

// Error implements the error interface.
func (e *OffsetError) Error() string {
	return fmt.Sprintf("textview: offset %d outside view range [%d, %d)", e.Offset, e.Start, e.End)
}

// StaleViewError reports that a view's cached range no longer matches the
// document, meaning an update notification was missed. It is fatal to the
// current operation: continuing would paint or measure garbage.
type StaleViewError struct {
	// Op names the operation that detected the mismatch.
	Op string
	// Err is the underlying document error, if any.
	Err error
}

// Error implements the error interface.
func (e *StaleViewError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("textview: %s: view out of sync with document: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("textview: %s: view out of sync with document", e.Op)
}

// Unwrap returns the underlying document error.
func (e *StaleViewError) Unwrap() error {
	return e.Err
}

// checkRange returns an *OffsetError if pos lies outside [start, end).
func checkRange(pos, start, end int) error {
	if pos < start || pos >= end {
		return &OffsetError{Offset: pos, Start: start, End: end}
	}
	return nil
}
