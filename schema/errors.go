package schema

import "errors"

var (
	ErrInvalidTag            = errors.New("invalid tag")
	ErrMetadataShapeMismatch = errors.New("metadata shape mismatch")
	ErrLengthMismatch        = errors.New("length mismatch")
	ErrNoNumericToken        = errors.New("no numeric token")

	ErrUnknownLabel   = errors.New("unknown label")
	ErrDuplicateLabel = errors.New("duplicate label")
	ErrInvalidLabel   = errors.New("invalid label")
)
