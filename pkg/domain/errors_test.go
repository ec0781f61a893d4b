package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrors(t *testing.T) {
	t.Run("Predefined errors", func(t *testing.T) {
		tests := []struct {
			name string
			err  error
			want string
		}{
			{"ErrNoTracks", ErrNoTracks, "no tracks found for artist"},
			{"ErrInvalidRequest", ErrInvalidRequest, "invalid request"},
			{"ErrExternalAPIFailure", ErrExternalAPIFailure, "external API failure"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if got := tt.err.Error(); got != tt.want {
					t.Errorf("%s.Error() = %v, want %v", tt.name, got, tt.want)
				}
			})
		}
	})

	t.Run("ValidationError", func(t *testing.T) {
		err := ValidationError{
			Field:   "name",
			Message: "name is required",
		}

		expected := "validation error on field name: name is required"
		if got := err.Error(); got != expected {
			t.Errorf("ValidationError.Error() = %v, want %v", got, expected)
		}
		if !errors.Is(fmt.Errorf("wrapped: %w", err), ErrInvalidRequest) {
			t.Error("ValidationError should match ErrInvalidRequest")
		}
	})

	t.Run("UpstreamError", func(t *testing.T) {
		tests := []struct {
			name string
			err  *UpstreamError
			want string
		}{
			{"status only", &UpstreamError{Method: "track.getinfo", Status: 503}, "catalog track.getinfo failed: status 503"},
			{"in-band code", &UpstreamError{Method: "artist.getinfo", Status: 200, Code: 6, Body: "The artist you supplied could not be found"}, "catalog artist.getinfo failed: status 200, error 6: The artist you supplied could not be found"},
			{"transport", &UpstreamError{Method: "tag.gettoptracks", Err: errors.New("connection refused")}, "catalog tag.gettoptracks failed: connection refused"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if got := tt.err.Error(); got != tt.want {
					t.Errorf("Error() = %q, want %q", got, tt.want)
				}
				if !errors.Is(tt.err, ErrExternalAPIFailure) {
					t.Error("UpstreamError should match ErrExternalAPIFailure")
				}
			})
		}
	})

	t.Run("Error identity", func(t *testing.T) {
		if !errors.Is(ErrNoTracks, ErrNoTracks) {
			t.Error("ErrNoTracks should be equal to itself")
		}
		if errors.Is(ErrNoTracks, ErrInvalidRequest) {
			t.Error("ErrNoTracks should not be equal to ErrInvalidRequest")
		}
	})
}
