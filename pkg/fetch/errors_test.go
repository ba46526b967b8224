package fetch

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Format(t *testing.T) {
	err := newOpaqueURLError("Unable to find host")
	want := "fetch: opaque url error: Unable to find host"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestError_FormatWithCause(t *testing.T) {
	cause := errors.New("boom")
	err := newURLParseError(cause)
	if !strings.Contains(err.Error(), "url parse error") || !strings.Contains(err.Error(), "boom") {
		t.Errorf("Error() = %q, want kind and cause present", err.Error())
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := newEncodingError("bad bytes", cause)
	if !errors.Is(err, cause) {
		t.Error("errors.Is() = false, want unwrap to reach cause")
	}
}

func TestError_AsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("exchange failed: %w", newResponseParseError("No Status Line"))
	var fe *Error
	if !errors.As(wrapped, &fe) {
		t.Fatal("errors.As() = false, want *Error recovered through wrapping")
	}
	if fe.Kind != KindResponseParse {
		t.Errorf("Kind = %v, want KindResponseParse", fe.Kind)
	}
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindURLParse, "url parse error"},
		{KindOpaqueURL, "opaque url error"},
		{KindResponseParse, "response parse error"},
		{KindEncoding, "encoding error"},
		{Kind(99), "unknown error"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
