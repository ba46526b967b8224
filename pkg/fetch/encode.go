package fetch

import "io"

// Encoder writes built requests to an output stream in HTTP/1.1 wire
// format.
type Encoder struct {
	w io.Writer
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes the wire-format encoding of req to the stream.
func (enc *Encoder) Encode(req *Request) error {
	_, err := enc.w.Write(req.Bytes())
	return err
}
