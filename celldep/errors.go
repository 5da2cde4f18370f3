package celldep

import "errors"

var (
	ErrNotFound     = errors.New("celldep: not found")
	ErrInvalidCID   = errors.New("celldep: invalid cid")
	ErrHashMismatch = errors.New("celldep: content hash mismatch")
	ErrImmutable    = errors.New("celldep: immutable object mismatch")
)

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
