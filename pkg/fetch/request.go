package fetch

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Version is the shape-fetch release version, advertised in the default
// User-Agent header.
const Version = "0.1.0"

// DefaultUserAgent is the User-Agent value synthesized into every request
// unless overridden with SetUserAgent.
const DefaultUserAgent = "shape-fetch/" + Version

// Request is an immutable description of one HTTP/1.1 request: everything
// needed to open a connection (host, port, scheme) and frame a message
// (method, target, version, headers, body). Build one with RequestBuilder.
type Request struct {
	host      string
	port      int
	authority string
	namedHost bool
	scheme    string
	method    string
	target    string
	version   string
	headers   []string
	body      []byte
	hasBody   bool
}

// Host returns the host component of the URL: a DNS name or an IP
// literal, in bracketed form for IPv6.
func (r *Request) Host() string { return r.host }

// Port returns the TCP port to connect to, explicit or scheme default.
func (r *Request) Port() int { return r.port }

// Authority returns the canonical "host:port" pair for connection
// addressing.
func (r *Request) Authority() string { return r.authority }

// IsNamedHost reports whether the host is a DNS name rather than an IP
// literal. Only named hosts get a Host header on the wire.
func (r *Request) IsNamedHost() bool { return r.namedHost }

// Scheme returns "http" or "https".
func (r *Request) Scheme() string { return r.scheme }

// Method returns the HTTP verb, e.g. "GET".
func (r *Request) Method() string { return r.method }

// Target returns the request target: the URL path plus "?query" when a
// query string is present.
func (r *Request) Target() string { return r.target }

// HTTPVersion returns the protocol version string, e.g. "HTTP/1.1".
func (r *Request) HTTPVersion() string { return r.version }

// Headers returns a copy of the raw header lines in serialization order:
// caller-supplied lines first, the synthesized User-Agent line last.
func (r *Request) Headers() []string {
	out := make([]string, len(r.headers))
	copy(out, r.headers)
	return out
}

// Body returns a copy of the request body and whether one is present.
// An absent body (ok == false) is distinct from a present empty body.
func (r *Request) Body() ([]byte, bool) {
	if !r.hasBody {
		return nil, false
	}
	out := make([]byte, len(r.body))
	copy(out, r.body)
	return out, true
}

// BodyText returns the body decoded as UTF-8 text. ok reports body
// presence: a request without a body yields ("", false, nil), distinct
// from a present-but-empty body ("", true, nil). Invalid UTF-8 yields a
// KindEncoding error.
func (r *Request) BodyText() (text string, ok bool, err error) {
	if !r.hasBody {
		return "", false, nil
	}
	if !utf8.Valid(r.body) {
		return "", true, newEncodingError("request body is not valid utf-8", nil)
	}
	return string(r.body), true, nil
}

// Bytes returns the exact HTTP/1.1 wire form of the request:
//
//	METHOD TARGET VERSION\r\n
//	<header lines in order>\r\n
//	Host: <host>\r\n            (named hosts only)
//	Connection: close\r\n
//	Content-Length: <n>\r\n\r\n<body>   (or a bare \r\n when no body)
//
// Content-Length is the byte length of the body, never a character count.
func (r *Request) Bytes() []byte {
	size := len(r.method) + len(r.target) + len(r.version) + 64
	for _, h := range r.headers {
		size += len(h) + 2
	}
	size += len(r.body)

	buf := make([]byte, 0, size)
	buf = append(buf, r.method...)
	buf = append(buf, ' ')
	buf = append(buf, r.target...)
	buf = append(buf, ' ')
	buf = append(buf, r.version...)
	buf = appendCRLF(buf)
	for _, h := range r.headers {
		buf = append(buf, h...)
		buf = appendCRLF(buf)
	}
	if r.namedHost {
		buf = append(buf, "Host: "...)
		buf = append(buf, r.host...)
		buf = appendCRLF(buf)
	}
	buf = append(buf, "Connection: close"...)
	buf = appendCRLF(buf)
	if r.hasBody {
		buf = append(buf, "Content-Length: "...)
		buf = strconv.AppendInt(buf, int64(len(r.body)), 10)
		buf = appendCRLF(buf)
		buf = appendCRLF(buf)
		buf = append(buf, r.body...)
	} else {
		buf = appendCRLF(buf)
	}
	return buf
}

// String returns the wire form as a string. Implements fmt.Stringer.
func (r *Request) String() string { return string(r.Bytes()) }

// appendCRLF appends \r\n to buf.
func appendCRLF(buf []byte) []byte {
	return append(buf, '\r', '\n')
}

// RequestBuilder assembles a Request. Mutators return the receiver so
// calls chain; all validation is deferred to Build, which is
// side-effect-free and may be called repeatedly. A builder can be reused
// across targets by calling SetURL between builds.
//
// Headers are raw unvalidated "Name: value" lines, kept in call order
// with no deduplication: callers must not add a header the builder
// synthesizes (User-Agent, and Host for named hosts) or one the
// serializer owns (Connection, Content-Length).
type RequestBuilder struct {
	rawURL    string
	method    string
	version   string
	userAgent string
	headers   []string
	body      []byte
	hasBody   bool
}

// NewRequestBuilder creates a builder targeting url. The URL is parsed at
// Build time. Defaults: method GET, version HTTP/1.1, no headers, no
// body, User-Agent DefaultUserAgent.
func NewRequestBuilder(url string) *RequestBuilder {
	return &RequestBuilder{
		rawURL:    url,
		method:    "GET",
		version:   "HTTP/1.1",
		userAgent: DefaultUserAgent,
	}
}

// SetURL replaces the target URL so one builder can issue multiple
// exchanges. All other options are kept.
func (b *RequestBuilder) SetURL(url string) *RequestBuilder {
	b.rawURL = url
	return b
}

// SetMethod sets the HTTP verb. Default "GET". Uppercase by convention,
// not enforced.
func (b *RequestBuilder) SetMethod(method string) *RequestBuilder {
	b.method = method
	return b
}

// SetHTTPVersion sets the protocol version string. Default "HTTP/1.1".
func (b *RequestBuilder) SetHTTPVersion(version string) *RequestBuilder {
	b.version = version
	return b
}

// AddHeader appends one raw "Name: value" header line. No syntax
// validation is performed.
func (b *RequestBuilder) AddHeader(line string) *RequestBuilder {
	b.headers = append(b.headers, line)
	return b
}

// AddHeaders appends many raw header lines in order.
func (b *RequestBuilder) AddHeaders(lines ...string) *RequestBuilder {
	b.headers = append(b.headers, lines...)
	return b
}

// SetUserAgent overrides the synthesized User-Agent value. Callers must
// not also AddHeader a User-Agent line.
func (b *RequestBuilder) SetUserAgent(value string) *RequestBuilder {
	b.userAgent = value
	return b
}

// SetBody attaches a request payload. The bytes are copied, so the
// caller's buffer may be reused afterwards.
func (b *RequestBuilder) SetBody(body []byte) *RequestBuilder {
	b.body = make([]byte, len(body))
	copy(b.body, body)
	b.hasBody = true
	return b
}

// SetBodyText attaches the UTF-8 bytes of body as the payload.
func (b *RequestBuilder) SetBodyText(body string) *RequestBuilder {
	b.body = []byte(body)
	b.hasBody = true
	return b
}

// Build validates the accumulated state and produces an immutable
// Request, or a *Error of kind KindURLParse or KindOpaqueURL.
func (b *RequestBuilder) Build() (*Request, error) {
	u, err := url.Parse(b.rawURL)
	if err != nil {
		return nil, newURLParseError(err)
	}
	// A scheme-less URL is a relative reference with no host to
	// contact; Go parses it successfully, so reject it here.
	if !u.IsAbs() {
		return nil, newURLParseError(fmt.Errorf("relative URL without a base: %q", b.rawURL))
	}

	hostname := u.Hostname()
	if hostname == "" {
		return nil, newOpaqueURLError("Unable to find host")
	}
	host := hostname
	if strings.Contains(hostname, ":") {
		host = "[" + hostname + "]"
	}

	port, err := portOrDefault(u)
	if err != nil {
		return nil, err
	}

	target := u.EscapedPath()
	if target == "" {
		target = "/"
	}
	if u.RawQuery != "" {
		target += "?" + u.RawQuery
	}

	headers := make([]string, 0, len(b.headers)+1)
	headers = append(headers, b.headers...)
	headers = append(headers, "User-Agent: "+b.userAgent)

	req := &Request{
		host:      host,
		port:      port,
		authority: host + ":" + strconv.Itoa(port),
		namedHost: net.ParseIP(hostname) == nil,
		scheme:    u.Scheme,
		method:    b.method,
		target:    target,
		version:   b.version,
		headers:   headers,
	}
	if b.hasBody {
		req.body = make([]byte, len(b.body))
		copy(req.body, b.body)
		req.hasBody = true
	}
	return req, nil
}

// portOrDefault resolves the explicit URL port or the scheme's
// well-known default. An explicit port outside 0..65535 is a URL parse
// failure, not an opaque URL.
func portOrDefault(u *url.URL) (int, error) {
	if p := u.Port(); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > 65535 {
			return 0, newURLParseError(fmt.Errorf("invalid port %q in url", p))
		}
		return n, nil
	}
	switch u.Scheme {
	case "http":
		return 80, nil
	case "https":
		return 443, nil
	}
	return 0, newOpaqueURLError("Unable to determine a port")
}
