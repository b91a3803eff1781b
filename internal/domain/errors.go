package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSnapshotNotFound    = errors.New("snapshot not found")
	ErrInvalidFilter       = errors.New("invalid filter")
	ErrUnknownRankingType  = errors.New("unknown ranking type")
	ErrUnknownDistribution = errors.New("unknown distribution")
	ErrUnauthorized        = errors.New("backend session expired")
	ErrEmptyUpdate         = errors.New("update changes nothing")
	ErrInvalidLink         = errors.New("invalid tracking link")
)

// APIError is a non-2xx answer of the tracker backend
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend API returned status %d: %s", e.StatusCode, e.Message)
}
