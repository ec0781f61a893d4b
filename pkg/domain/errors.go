package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNoTracks           = errors.New("no tracks found for artist")
	ErrInvalidRequest     = errors.New("invalid request")
	ErrExternalAPIFailure = errors.New("external API failure")
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

func (e ValidationError) Is(target error) bool {
	return target == ErrInvalidRequest
}

// UpstreamError is a failed catalog call. Status is zero for transport failures and
// Code carries the catalog's in-band error number when it sent one.
type UpstreamError struct {
	Method string
	Status int
	Code   int
	Body   string
	Err    error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("catalog %s failed: %v", e.Method, e.Err)
	case e.Code != 0:
		return fmt.Sprintf("catalog %s failed: status %d, error %d: %s", e.Method, e.Status, e.Code, e.Body)
	default:
		return fmt.Sprintf("catalog %s failed: status %d", e.Method, e.Status)
	}
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrExternalAPIFailure
}
