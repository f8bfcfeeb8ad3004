package netio

import (
	"context"
	"errors"
	"io"
	"net"

	"github.com/webcraft-project/async-core/asyncerrors"
)

// ShutdownDirection selects which half of a TCP connection to close.
type ShutdownDirection int

const (
	ShutdownRead ShutdownDirection = iota
	ShutdownWrite
)

// TCPSocket is a connected TCP stream satisfying
// stream.BufferedReadable[[]byte]/stream.Writable[[]byte]/
// stream.Closeable, plus half-close and remote-address accessors.
type TCPSocket struct {
	conn          *net.TCPConn
	readShutdown  bool
	writeShutdown bool
	closed        bool
}

// DialTCP resolves ep and tries each candidate address in turn (IPv4 first,
// then IPv6) until one connects, matching async_tcp_socket.cpp's resolve-
// then-try-each-address behavior.
func DialTCP(ctx context.Context, ep Endpoint) (*TCPSocket, error) {
	candidates, err := resolveHostCandidates(ctx, ep)
	if err != nil {
		return nil, err
	}

	var lastErr error
	dialer := &net.Dialer{}
	for _, addr := range candidates {
		conn, err := dialer.DialContext(ctx, "tcp", addr.String())
		if err == nil {
			return &TCPSocket{conn: conn.(*net.TCPConn)}, nil
		}
		lastErr = err
	}

	return nil, &asyncerrors.IoError{Op: "connect", Code: lastErr}
}

func wrapTCPConn(conn *net.TCPConn) *TCPSocket {
	return &TCPSocket{conn: conn}
}

// Recv implements stream.Readable[[]byte].
func (s *TCPSocket) Recv(ctx context.Context) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		//nolint:wrapcheck
		return nil, false, context.Cause(ctx)
	}
	if s.closed || s.readShutdown {
		return nil, false, nil
	}

	buf := make([]byte, chunkSize)
	n, err := s.conn.Read(buf)
	if n > 0 {
		return buf[:n], true, nil
	}
	if err == nil {
		return nil, false, nil
	}
	if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
		return nil, false, nil
	}

	return nil, false, &asyncerrors.IoError{Op: "recv", Code: err}
}

// RecvBuffered implements stream.BufferedReadable[[]byte].
func (s *TCPSocket) RecvBuffered(ctx context.Context, buf [][]byte) (int, error) {
	for i := range buf {
		v, ok, err := s.Recv(ctx)
		if err != nil {
			return i, err
		}
		if !ok {
			return i, nil
		}
		buf[i] = v
	}

	return len(buf), nil
}

// Send implements stream.Writable[[]byte].
func (s *TCPSocket) Send(ctx context.Context, value []byte) (bool, error) {
	if err := ctx.Err(); err != nil {
		//nolint:wrapcheck
		return false, context.Cause(ctx)
	}
	if s.closed || s.writeShutdown {
		return false, nil
	}

	if _, err := s.conn.Write(value); err != nil {
		return false, &asyncerrors.IoError{Op: "send", Code: err}
	}

	return true, nil
}

// Shutdown half-closes the connection in the given direction. It is
// idempotent per direction: a repeated call for an already-shutdown
// direction is a no-op.
func (s *TCPSocket) Shutdown(which ShutdownDirection) error {
	switch which {
	case ShutdownRead:
		if s.readShutdown {
			return nil
		}
		s.readShutdown = true

		return wrapShutdownErr(s.conn.CloseRead())
	case ShutdownWrite:
		if s.writeShutdown {
			return nil
		}
		s.writeShutdown = true

		return wrapShutdownErr(s.conn.CloseWrite())
	default:
		return nil
	}
}

// Close implements stream.Closeable; it is idempotent.
func (s *TCPSocket) Close(ctx context.Context) error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		return &asyncerrors.IoError{Op: "close", Code: err}
	}

	return nil
}

// RemoteHost returns the connected peer's host.
func (s *TCPSocket) RemoteHost() string {
	addr, _ := s.conn.RemoteAddr().(*net.TCPAddr)
	if addr == nil {
		return ""
	}

	return addr.IP.String()
}

// RemotePort returns the connected peer's port.
func (s *TCPSocket) RemotePort() uint16 {
	addr, _ := s.conn.RemoteAddr().(*net.TCPAddr)
	if addr == nil {
		return 0
	}

	return uint16(addr.Port)
}

func wrapShutdownErr(err error) error {
	if err == nil || errors.Is(err, net.ErrClosed) {
		return nil
	}

	return &asyncerrors.IoError{Op: "shutdown", Code: err}
}

// TCPListener accepts inbound TCP connections.
type TCPListener struct {
	ln     *net.TCPListener
	closed bool
}

// ListenTCP resolves ep (taking the first successful candidate address) and
// starts listening. backlog is not applied: the listen queue length is the
// operating system's default. Go's net package does not expose a distinct
// "bind" + "listen" pair; ListenTCP performs both.
func ListenTCP(ctx context.Context, ep Endpoint, backlog int) (*TCPListener, error) {
	candidates, err := resolveHostCandidates(ctx, ep)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for _, addr := range candidates {
		ln, err := net.ListenTCP("tcp", addr)
		if err == nil {
			return &TCPListener{ln: ln}, nil
		}
		lastErr = err
	}

	return nil, &asyncerrors.IoError{Op: "bind", Code: lastErr}
}

// Accept yields the next inbound connection. Closing the listener while an
// Accept is pending completes it with asyncerrors.Cancelled rather than a
// raw network error, matching the runtime's cancelled-flag contract for a
// torn-down listener (§9 Open Question: no self-connect trick is needed —
// net.Listener.Close already unblocks a pending Accept).
func (l *TCPListener) Accept(ctx context.Context) (*TCPSocket, error) {
	if err := ctx.Err(); err != nil {
		//nolint:wrapcheck
		return nil, context.Cause(ctx)
	}

	type result struct {
		conn *net.TCPConn
		err  error
	}
	done := make(chan result, 1)
	go func() {
		conn, err := l.ln.AcceptTCP()
		done <- result{conn: conn, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			if errors.Is(r.err, net.ErrClosed) {
				return nil, asyncerrors.Cancelled
			}

			return nil, &asyncerrors.IoError{Op: "accept", Code: r.err}
		}

		return wrapTCPConn(r.conn), nil
	case <-ctx.Done():
		//nolint:wrapcheck
		return nil, context.Cause(ctx)
	}
}

// Addr returns the endpoint the listener is bound to, e.g. to discover the
// ephemeral port chosen when Port == 0 was requested.
func (l *TCPListener) Addr() Endpoint {
	addr, _ := l.ln.Addr().(*net.TCPAddr)
	if addr == nil {
		return Endpoint{}
	}

	return Endpoint{Host: addr.IP.String(), Port: uint16(addr.Port)}
}

// Close stops the listener, unblocking any pending Accept with
// asyncerrors.Cancelled. It is idempotent.
func (l *TCPListener) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true
	if err := l.ln.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		return &asyncerrors.IoError{Op: "close", Code: err}
	}

	return nil
}
