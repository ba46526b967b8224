package fetch

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Response is the immutable result of one HTTP exchange: status code,
// reason phrase, raw header lines in arrival order, and the raw body
// bytes. Build one with ResponseBuilder.
type Response struct {
	statusCode int
	reason     string
	headers    []string
	body       []byte
	hasBody    bool
}

// StatusCode returns the numeric HTTP status parsed from the status line.
func (r *Response) StatusCode() int { return r.statusCode }

// Reason returns the reason phrase: everything after the status code,
// spaces included.
func (r *Response) Reason() string { return r.reason }

// StatusLine returns the code and reason rejoined, e.g. "200 OK".
func (r *Response) StatusLine() string {
	if r.reason == "" {
		return strconv.Itoa(r.statusCode)
	}
	return strconv.Itoa(r.statusCode) + " " + r.reason
}

// Headers returns a copy of the raw header lines as received, in
// arrival order.
func (r *Response) Headers() []string {
	out := make([]string, len(r.headers))
	copy(out, r.headers)
	return out
}

// Body returns a copy of the raw body bytes, or nil when no body was
// received.
func (r *Response) Body() []byte {
	if !r.hasBody {
		return nil
	}
	out := make([]byte, len(r.body))
	copy(out, r.body)
	return out
}

// BodyText returns the body decoded as strict UTF-8 text. An absent
// body decodes to "" with no error — unlike Request.BodyText, which
// distinguishes absence. The asymmetry is long-standing observable
// behaviour and is kept as-is. Invalid UTF-8 yields a KindEncoding
// error.
func (r *Response) BodyText() (string, error) {
	if !r.hasBody {
		return "", nil
	}
	if !utf8.Valid(r.body) {
		return "", newEncodingError("response body is not valid utf-8", nil)
	}
	return string(r.body), nil
}

// ResponseBuilder accumulates the pieces of a response as the transport
// produces them — one status line, header lines in arrival order, an
// optional body — and validates them into a Response only at Build.
type ResponseBuilder struct {
	statusLine    string
	hasStatusLine bool
	headers       []string
	body          []byte
	hasBody       bool
}

// NewResponseBuilder returns an empty accumulator.
func NewResponseBuilder() *ResponseBuilder {
	return &ResponseBuilder{}
}

// SetStatusLine stores the raw status line. Calling it again overwrites
// the previous value; the last write wins.
func (b *ResponseBuilder) SetStatusLine(line string) *ResponseBuilder {
	b.statusLine = line
	b.hasStatusLine = true
	return b
}

// AddHeader appends one raw header line in arrival order.
func (b *ResponseBuilder) AddHeader(line string) *ResponseBuilder {
	b.headers = append(b.headers, line)
	return b
}

// SetBody attaches the full raw body. The bytes are copied.
func (b *ResponseBuilder) SetBody(body []byte) *ResponseBuilder {
	b.body = make([]byte, len(body))
	copy(b.body, body)
	b.hasBody = true
	return b
}

// Build validates the status line and produces an immutable Response,
// or a *Error of kind KindResponseParse. A Response is never built from
// an unparsable status line.
func (b *ResponseBuilder) Build() (*Response, error) {
	if !b.hasStatusLine {
		return nil, newResponseParseError("No Status Line")
	}

	parts := strings.SplitN(b.statusLine, " ", 3)
	if len(parts) != 3 {
		return nil, newResponseParseError("Malformed Status Line: " + b.statusLine)
	}
	if !strings.HasPrefix(parts[0], "HTTP/") {
		return nil, newResponseParseError("Unknown Protocol in Status Line: " + b.statusLine)
	}
	code, err := strconv.Atoi(parts[1])
	if err != nil || code < 0 {
		return nil, newResponseParseError("Malformed status code: " + b.statusLine)
	}

	resp := &Response{
		statusCode: code,
		reason:     parts[2],
		headers:    make([]string, len(b.headers)),
	}
	copy(resp.headers, b.headers)
	if b.hasBody {
		resp.body = make([]byte, len(b.body))
		copy(resp.body, b.body)
		resp.hasBody = true
	}
	return resp, nil
}
