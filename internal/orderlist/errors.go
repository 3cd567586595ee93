package orderlist

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyDraft    = errors.New("draft is empty")
	ErrNotEditing    = errors.New("no add or edit in progress")
	ErrNoDragActive  = errors.New("no drag in progress")
	ErrIndexOutRange = errors.New("index out of range")
)

type NotFoundError struct {
	Key string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("item not found: %s", e.Key)
}
