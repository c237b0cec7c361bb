package interfaces

import "errors"

// ErrConflict is returned by repositories and transactors when the store
// rejected a write because a uniqueness constraint or a status precondition
// no longer holds. Callers may re-read state and retry the whole operation.
var ErrConflict = errors.New("conflict")
