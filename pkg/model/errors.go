package model

import (
	"errors"
	"fmt"
)

// ErrMissingID is returned by Document.Validate when a row or field has no id.
var ErrMissingID = errors.New("model: missing id")

// DuplicateIDError reports a row or field id used more than once.
type DuplicateIDError struct {
	Kind string
	ID   string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("model: duplicate %s id %q", e.Kind, e.ID)
}
