package fetch

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncoder_WritesWireForm(t *testing.T) {
	req, err := NewRequestBuilder("http://localhost/").
		SetMethod("POST").
		SetBodyText("{}").
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	var buf bytes.Buffer
	if err := NewEncoder(&buf).Encode(req); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !bytes.Equal(buf.Bytes(), req.Bytes()) {
		t.Errorf("Encode() wrote %q, want %q", buf.Bytes(), req.Bytes())
	}
}

var errWriteRefused = errors.New("write refused")

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errWriteRefused
}

func TestEncoder_PropagatesWriteError(t *testing.T) {
	req, err := NewRequestBuilder("http://localhost/").Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if err := NewEncoder(failWriter{}).Encode(req); err == nil {
		t.Error("Encode() expected write error")
	}
}
