package domain

import "errors"

var (
	ErrInvalidWindowArgs  = errors.New("invalid report window")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrPropertyNotFound   = errors.New("property not found for tenant")
	ErrTenantRequired     = errors.New("tenant context required")
)

// WindowArgsError carries the caller-facing reason a month/year pair was
// rejected. It matches ErrInvalidWindowArgs.
type WindowArgsError struct {
	Detail string
}

func (e *WindowArgsError) Error() string {
	return ErrInvalidWindowArgs.Error() + ": " + e.Detail
}

func (e *WindowArgsError) Is(target error) bool {
	return target == ErrInvalidWindowArgs
}
