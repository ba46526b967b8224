package fetch

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shapestone/shape-fetch/internal/chunked"
)

// Decoder reads one HTTP/1.1 response from an input stream and assembles
// it through a ResponseBuilder. It is the transport-side collaborator of
// the codec: it decides where the body ends (Content-Length, chunked
// framing, or end of stream — every request this client sends carries
// Connection: close, so the peer closes after one exchange).
//
// A Decoder is not safe for concurrent use.
type Decoder struct {
	r *bufio.Reader
}

// NewDecoder returns a new decoder that reads from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// DecodeResponse reads status line, header lines and body from the
// stream and builds the Response. Validation failures surface as *Error
// values from the builder; transport failures are wrapped io errors.
func (dec *Decoder) DecodeResponse() (*Response, error) {
	builder := NewResponseBuilder()

	line, err := dec.readLine()
	if err != nil {
		return nil, fmt.Errorf("fetch: decode response: %w", err)
	}
	builder.SetStatusLine(line)

	var headers []string
	for {
		line, err := dec.readLine()
		if err != nil {
			return nil, fmt.Errorf("fetch: decode response: %w", err)
		}
		if line == "" {
			break
		}
		headers = append(headers, line)
		builder.AddHeader(line)
	}

	body, err := dec.readBody(headers)
	if err != nil {
		return nil, err
	}
	if body != nil {
		builder.SetBody(body)
	}

	return builder.Build()
}

// readLine reads one line, stripping CRLF or bare LF.
func (dec *Decoder) readLine() (string, error) {
	line, err := dec.r.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readBody reads the response body per the framing the headers declare.
// Returns nil when the peer sent no body bytes.
func (dec *Decoder) readBody(headers []string) ([]byte, error) {
	if isChunked(headers) {
		// The connection closes after one exchange, so the chunk
		// stream is the remainder of the input.
		raw, err := io.ReadAll(dec.r)
		if err != nil {
			return nil, fmt.Errorf("fetch: decode body: %w", err)
		}
		return chunked.Dechunk(raw)
	}

	if n, ok := contentLength(headers); ok {
		if n == 0 {
			return nil, nil
		}
		body := make([]byte, n)
		if _, err := io.ReadFull(dec.r, body); err != nil {
			return nil, fmt.Errorf("fetch: decode body: %w", err)
		}
		return body, nil
	}

	// No declared length: close-delimited body.
	body, err := io.ReadAll(dec.r)
	if err != nil {
		return nil, fmt.Errorf("fetch: decode body: %w", err)
	}
	if len(body) == 0 {
		return nil, nil
	}
	return body, nil
}

// headerValue returns the value of the first raw header line whose name
// matches (case-insensitive), and whether one was found. Lines without a
// colon never match.
func headerValue(headers []string, name string) (string, bool) {
	for _, line := range headers {
		colon := strings.IndexByte(line, ':')
		if colon < 0 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(line[:colon]), name) {
			return strings.TrimSpace(line[colon+1:]), true
		}
	}
	return "", false
}

// contentLength returns the declared Content-Length. Absent or invalid
// values report ok == false, falling back to close-delimited reading.
func contentLength(headers []string) (int64, bool) {
	v, ok := headerValue(headers, "Content-Length")
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// isChunked reports whether Transfer-Encoding contains "chunked".
func isChunked(headers []string) bool {
	v, ok := headerValue(headers, "Transfer-Encoding")
	return ok && strings.Contains(strings.ToLower(v), "chunked")
}
