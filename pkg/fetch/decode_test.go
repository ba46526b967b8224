package fetch

import (
	"errors"
	"strings"
	"testing"
)

func TestDecoder_ContentLengthBody(t *testing.T) {
	raw := "HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\nContent-Length: 5\r\n\r\nhello"
	resp, err := NewDecoder(strings.NewReader(raw)).DecodeResponse()
	if err != nil {
		t.Fatalf("DecodeResponse() error = %v", err)
	}
	if resp.StatusCode() != 200 {
		t.Errorf("StatusCode() = %d, want 200", resp.StatusCode())
	}
	if string(resp.Body()) != "hello" {
		t.Errorf("Body() = %q, want hello", resp.Body())
	}
	headers := resp.Headers()
	if len(headers) != 2 || headers[0] != "Content-Type: text/plain" {
		t.Errorf("Headers() = %v, want raw lines in arrival order", headers)
	}
}

func TestDecoder_CloseDelimitedBody(t *testing.T) {
	raw := "HTTP/1.1 200 OK\r\n\r\neverything until EOF"
	resp, err := NewDecoder(strings.NewReader(raw)).DecodeResponse()
	if err != nil {
		t.Fatalf("DecodeResponse() error = %v", err)
	}
	if string(resp.Body()) != "everything until EOF" {
		t.Errorf("Body() = %q, want close-delimited remainder", resp.Body())
	}
}

func TestDecoder_NoBody(t *testing.T) {
	raw := "HTTP/1.1 204 No Content\r\n\r\n"
	resp, err := NewDecoder(strings.NewReader(raw)).DecodeResponse()
	if err != nil {
		t.Fatalf("DecodeResponse() error = %v", err)
	}
	if resp.Body() != nil {
		t.Errorf("Body() = %q, want nil for absent body", resp.Body())
	}
}

func TestDecoder_ZeroContentLength(t *testing.T) {
	raw := "HTTP/1.1 200 OK\r\nContent-Length: 0\r\n\r\n"
	resp, err := NewDecoder(strings.NewReader(raw)).DecodeResponse()
	if err != nil {
		t.Fatalf("DecodeResponse() error = %v", err)
	}
	if resp.Body() != nil {
		t.Errorf("Body() = %q, want nil", resp.Body())
	}
}

func TestDecoder_ChunkedBody(t *testing.T) {
	raw := "HTTP/1.1 200 OK\r\nTransfer-Encoding: chunked\r\n\r\n" +
		"5\r\nHello\r\n7\r\n, World\r\n0\r\n\r\n"
	resp, err := NewDecoder(strings.NewReader(raw)).DecodeResponse()
	if err != nil {
		t.Fatalf("DecodeResponse() error = %v", err)
	}
	if string(resp.Body()) != "Hello, World" {
		t.Errorf("Body() = %q, want Hello, World", resp.Body())
	}
}

func TestDecoder_MalformedStatusLine(t *testing.T) {
	raw := "garbage\r\n\r\n"
	_, err := NewDecoder(strings.NewReader(raw)).DecodeResponse()
	var fe *Error
	if !errors.As(err, &fe) || fe.Kind != KindResponseParse {
		t.Errorf("DecodeResponse() error = %v, want KindResponseParse", err)
	}
}

func TestDecoder_TruncatedContentLength(t *testing.T) {
	raw := "HTTP/1.1 200 OK\r\nContent-Length: 10\r\n\r\nshort"
	_, err := NewDecoder(strings.NewReader(raw)).DecodeResponse()
	if err == nil {
		t.Error("DecodeResponse() expected error for truncated body")
	}
}

func TestDecoder_BareLFLines(t *testing.T) {
	raw := "HTTP/1.1 200 OK\nContent-Length: 2\n\nok"
	resp, err := NewDecoder(strings.NewReader(raw)).DecodeResponse()
	if err != nil {
		t.Fatalf("DecodeResponse() error = %v", err)
	}
	if string(resp.Body()) != "ok" {
		t.Errorf("Body() = %q, want ok", resp.Body())
	}
}

func TestHeaderValue(t *testing.T) {
	headers := []string{
		"Content-Type: text/plain",
		"content-length:  42 ",
		"broken line without colon",
	}
	if v, ok := headerValue(headers, "Content-Length"); !ok || v != "42" {
		t.Errorf("headerValue(Content-Length) = %q, %v, want 42, true", v, ok)
	}
	if _, ok := headerValue(headers, "X-Missing"); ok {
		t.Error("headerValue(X-Missing) found = true, want false")
	}
}
