package usecase

import (
	"errors"
	"fmt"

	"vetclinic/internal/usecase/interfaces"
)

// Error families shared by every use case. Entity specific errors wrap one of
// these so handlers can branch with errors.Is on the family.
var (
	ErrInvalidFormat = errors.New("invalid format")
	ErrNotFound      = errors.New("not found")
	ErrInvalidStatus = errors.New("invalid status")
	ErrConflict      = interfaces.ErrConflict
)

func invalidFormat(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
}
