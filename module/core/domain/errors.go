package domain

import "errors"

var (
	ErrInvalidFix            = errors.New("invalid fix")
	ErrInvalidZoneDefinition = errors.New("invalid zone definition")
	ErrZoneNotFound          = errors.New("zone not found")
	ErrEvaluationFailure     = errors.New("zone evaluation failed")
)
