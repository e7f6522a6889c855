package digest

import (
	"errors"
	"fmt"
)

var (
	// ErrPageOutOfRange is matched by every *PageOutOfRangeError.
	ErrPageOutOfRange = errors.New("page out of range")

	// ErrNoTitlesDetected marks a scan that produced no candidates. It is
	// informational: Run still succeeds with an empty article list.
	ErrNoTitlesDetected = errors.New("no titles detected")
)

// PageOutOfRangeError reports a zero-based page index outside the document.
type PageOutOfRangeError struct {
	Page  int
	Count int
}

func (e *PageOutOfRangeError) Error() string {
	return fmt.Sprintf("page index %d out of range [0, %d)", e.Page, e.Count)
}

func (e *PageOutOfRangeError) Is(target error) bool {
	return target == ErrPageOutOfRange
}

// CheckPage returns a *PageOutOfRangeError unless 0 <= index < count.
func CheckPage(index, count int) error {
	if index < 0 || index >= count {
		return &PageOutOfRangeError{Page: index, Count: count}
	}
	return nil
}
