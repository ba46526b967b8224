package fetch

import "fmt"

// Kind identifies one of the closed set of failure categories this
// package can report. Every error returned by a builder or body
// accessor is an *Error carrying exactly one Kind.
type Kind int

const (
	// KindURLParse means the request URL is not syntactically a URL
	// (including relative references, which have no host to contact).
	KindURLParse Kind = iota + 1

	// KindOpaqueURL means the URL parses but lacks a determinable host
	// or port, e.g. a non-hierarchical URL like mailto:.
	KindOpaqueURL

	// KindResponseParse means the response status line is missing,
	// malformed, not HTTP, or has a non-numeric status code.
	KindResponseParse

	// KindEncoding means a body was requested as text but is not
	// valid UTF-8.
	KindEncoding
)

// String returns the kind's name for error formatting.
func (k Kind) String() string {
	switch k {
	case KindURLParse:
		return "url parse error"
	case KindOpaqueURL:
		return "opaque url error"
	case KindResponseParse:
		return "response parse error"
	case KindEncoding:
		return "encoding error"
	default:
		return "unknown error"
	}
}

// Error is the error type returned by every fallible operation in this
// package. Detail is always human-readable; Err holds the underlying
// cause when one exists (URL parse failures, UTF-8 decode failures).
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch: %s: %s: %v", e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("fetch: %s: %s", e.Kind, e.Detail)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error { return e.Err }

func newURLParseError(err error) *Error {
	return &Error{Kind: KindURLParse, Detail: "invalid url", Err: err}
}

func newOpaqueURLError(detail string) *Error {
	return &Error{Kind: KindOpaqueURL, Detail: detail}
}

func newResponseParseError(detail string) *Error {
	return &Error{Kind: KindResponseParse, Detail: detail}
}

func newEncodingError(detail string, err error) *Error {
	return &Error{Kind: KindEncoding, Detail: detail, Err: err}
}
