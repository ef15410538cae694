package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"not found", NotFound("preset %q not found", "x"), ErrNotFound},
		{"validation", Validation("bad format"), ErrValidation},
		{"upstream", Upstream(503, "unavailable", nil), ErrUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.kind) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.kind)
			}
			wrapped := fmt.Errorf("service: %w", tt.err)
			if !errors.Is(wrapped, tt.kind) {
				t.Errorf("wrapped error lost kind %v", tt.kind)
			}
		})
	}
}

func TestKinds_Distinct(t *testing.T) {
	err := NotFound("missing")
	if errors.Is(err, ErrValidation) {
		t.Error("NotFound error should not match ErrValidation")
	}
	if errors.Is(err, ErrUpstream) {
		t.Error("NotFound error should not match ErrUpstream")
	}
}

func TestUpstream_Cause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Upstream(0, "failed to reach Crawlbase", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
	if got := err.Error(); got != "failed to reach Crawlbase: connection refused" {
		t.Errorf("Error() = %q", got)
	}
}

func TestMessage(t *testing.T) {
	if got := Message(fmt.Errorf("wrap: %w", Validation("URL list is empty")), "generic"); got != "URL list is empty" {
		t.Errorf("Message() = %q, want %q", got, "URL list is empty")
	}
	if got := Message(errors.New("plain"), "generic"); got != "generic" {
		t.Errorf("Message() = %q, want %q", got, "generic")
	}
}

func TestStatusCode(t *testing.T) {
	if got := StatusCode(Upstream(401, "unauthorized", nil)); got != 401 {
		t.Errorf("StatusCode() = %d, want 401", got)
	}
	if got := StatusCode(errors.New("plain")); got != 0 {
		t.Errorf("StatusCode() = %d, want 0", got)
	}
}
