// Package fetch implements the HTTP/1.1 message codec at the core of the
// shape-fetch command-line client: it builds the exact byte sequence to
// place on a TCP or TLS socket for one request, and parses the bytes a
// server sends back into an immutable, queryable Response.
//
// The codec performs no I/O. Two builder/value pairs make up the surface:
//
//   - RequestBuilder → Request: validates a target URL plus options and
//     produces the wire form of one request, always framed with
//     "Connection: close" (one exchange per connection, no pipelining).
//   - ResponseBuilder → Response: accumulates a status line, header lines
//     and a body supplied by the transport, validating only at Build.
//
// Transport concerns — DNS, dialing, TLS, reading the right number of body
// bytes — belong to the collaborators around the codec: Encoder, Decoder
// and Client in this package, which consume the codec through its public
// contract only.
//
// # Thread Safety
//
// Request and Response are immutable after construction and safe to share.
// Builders own all their data and are safe for concurrent use as long as
// each builder value is confined to one goroutine.
//
// # Errors
//
// Every fallible operation returns a *Error carrying one of the closed
// Kind set; malformed input is an ordinary recoverable result, never a
// panic.
package fetch
