package fetch

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shapestone/shape-fetch/internal/obs"
)

// Client performs one HTTP exchange per connection: dial, write the
// request bytes, decode one response, close. Requests are always framed
// with Connection: close, so there is no connection reuse to manage.
//
// The zero value is usable. A Client is safe for concurrent use; every
// call owns its own connection and decoder.
type Client struct {
	// Timeout bounds the whole exchange including dial and TLS
	// handshake. Zero means no timeout beyond ctx.
	Timeout time.Duration

	// TLSConfig is cloned per exchange for https targets. Nil means
	// default verification.
	TLSConfig *tls.Config

	// Logger receives per-exchange diagnostics. Nil discards them.
	Logger obs.Logger
}

// Do dials the request's authority, transmits it and returns the decoded
// response. The request is not consumed and may be sent again.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	logger := c.Logger
	if logger == nil {
		logger = obs.Nop{}
	}
	id := uuid.NewString()

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	logger.Logf(obs.Debug, "exchange %s: connecting to %s", id, req.Authority())
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", req.Authority())
	if err != nil {
		return nil, fmt.Errorf("fetch: dial %s: %w", req.Authority(), err)
	}
	defer conn.Close()

	if req.Scheme() == "https" {
		tc, err := c.handshake(ctx, conn, req)
		if err != nil {
			return nil, fmt.Errorf("fetch: tls handshake with %s: %w", req.Authority(), err)
		}
		conn = tc
	}

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return nil, fmt.Errorf("fetch: set deadline on connection to %s: %w", req.Authority(), err)
		}
	}

	logger.Logf(obs.Debug, "exchange %s: > %s %s %s", id, req.Method(), req.Target(), req.HTTPVersion())
	if err := NewEncoder(conn).Encode(req); err != nil {
		return nil, fmt.Errorf("fetch: write request to %s: %w", req.Authority(), err)
	}

	resp, err := NewDecoder(conn).DecodeResponse()
	if err != nil {
		logger.Logf(obs.Error, "exchange %s: %v", id, err)
		return nil, err
	}
	logger.Logf(obs.Info, "exchange %s: < %s", id, resp.StatusLine())
	return resp, nil
}

// handshake upgrades conn to TLS. ServerName is set for named hosts so
// certificate verification matches the URL the caller asked for.
func (c *Client) handshake(ctx context.Context, conn net.Conn, req *Request) (net.Conn, error) {
	cfg := c.TLSConfig.Clone()
	if cfg == nil {
		cfg = &tls.Config{}
	}
	if cfg.ServerName == "" && req.IsNamedHost() {
		cfg.ServerName = strings.Trim(req.Host(), "[]")
	}
	tc := tls.Client(conn, cfg)
	if err := tc.HandshakeContext(ctx); err != nil {
		return nil, err
	}
	return tc, nil
}
