package mutate

import (
        "errors"
        "fmt"
)

var (
        ErrInvalidStatus  = errors.New("invalid status")
        ErrSchemeNotDraft = errors.New("scheme is not a draft")
        ErrOrgMismatch    = errors.New("organization does not own this workspace")
)

type NotFoundError struct {
        Kind string
        ID   string
}

func (e NotFoundError) Error() string {
        return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// InUseError is returned when an entry cannot be removed while something still refers to it.
type InUseError struct {
        Kind  string
        ID    string
        Count int
        By    string
}

func (e InUseError) Error() string {
        return fmt.Sprintf("%s %s is used by %d %s", e.Kind, e.ID, e.Count, e.By)
}

type DuplicateValueError struct {
        Value string
}

func (e DuplicateValueError) Error() string {
        return fmt.Sprintf("duplicate value: %q", e.Value)
}
