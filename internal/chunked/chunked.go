// Package chunked reassembles HTTP/1.1 chunked transfer-encoded bodies.
// It is a transport-layer concern: callers hand the decoded result to the
// response builder, which never sees chunk framing.
package chunked

import (
	"bytes"
	"fmt"
	"strconv"
)

// Dechunk decodes a chunked transfer-encoded body.
//
// Format: hex-size CRLF data CRLF ... 0 CRLF [trailers] CRLF.
// Chunk extensions after ';' are ignored; bare LF line endings are
// tolerated. Returns nil for a zero-length body.
func Dechunk(data []byte) ([]byte, error) {
	var result []byte
	pos := 0

	for {
		if pos >= len(data) {
			return nil, fmt.Errorf("fetch: chunked encoding: unexpected end of data")
		}

		lineEnd := findLineEnd(data, pos)
		if lineEnd < 0 {
			return nil, fmt.Errorf("fetch: chunked encoding: unterminated chunk size line")
		}
		sizeLine := data[pos:lineEnd]
		pos = skipLineEnding(data, lineEnd)

		if semi := bytes.IndexByte(sizeLine, ';'); semi >= 0 {
			sizeLine = sizeLine[:semi]
		}
		sizeLine = bytes.TrimSpace(sizeLine)

		size, err := strconv.ParseInt(string(sizeLine), 16, 64)
		if err != nil || size < 0 {
			return nil, fmt.Errorf("fetch: chunked encoding: invalid chunk size %q", string(sizeLine))
		}

		// size 0 = last chunk; optional trailers follow, nothing left
		// to reassemble.
		if size == 0 {
			break
		}

		if pos+int(size) > len(data) {
			return nil, fmt.Errorf("fetch: chunked encoding: chunk data truncated (expected %d bytes, %d available)", size, len(data)-pos)
		}
		result = append(result, data[pos:pos+int(size)]...)
		pos += int(size)

		if pos >= len(data) {
			return nil, fmt.Errorf("fetch: chunked encoding: missing line ending after chunk data")
		}
		next := skipLineEnding(data, pos)
		if next == pos {
			return nil, fmt.Errorf("fetch: chunked encoding: expected CRLF after chunk data, got %q", data[pos])
		}
		pos = next
	}

	if len(result) == 0 {
		return nil, nil
	}
	return result, nil
}

// findLineEnd returns the index of the \r in \r\n (or of a bare \n)
// starting from pos, or -1 if no line ending follows.
func findLineEnd(data []byte, pos int) int {
	for i := pos; i < len(data); i++ {
		if data[i] == '\r' && i+1 < len(data) && data[i+1] == '\n' {
			return i
		}
		if data[i] == '\n' {
			return i
		}
	}
	return -1
}

// skipLineEnding advances past CRLF or LF at pos; returns pos unchanged
// when neither is present.
func skipLineEnding(data []byte, pos int) int {
	if pos < len(data) && data[pos] == '\r' && pos+1 < len(data) && data[pos+1] == '\n' {
		return pos + 2
	}
	if pos < len(data) && data[pos] == '\n' {
		return pos + 1
	}
	return pos
}
