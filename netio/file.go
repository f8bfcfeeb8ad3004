// Package netio adapts Go's standard os/net packages to the stream
// contracts in package stream, mirroring the original runtime's backend
// surface (file, TCP socket/listener, UDP socket with multicast) as thin,
// mechanical producers/consumers of the stream contract plus a per-backend
// completion operation. It is the Go analogue of async_file_io.cpp,
// async_tcp_socket.cpp, async_tcp_listener.cpp and async_udp.cpp: the OS
// plumbing here is whatever the standard library already does, called
// directly on the caller's goroutine.
package netio

import (
	"context"
	"io"
	"os"

	"github.com/webcraft-project/async-core/asyncerrors"
)

// chunkSize bounds a single Recv/Send call's transfer, matching the
// "buffer-bounded" framing the spec requires of every backend.
const chunkSize = 32 * 1024

// File is a stream.Readable[[]byte]/stream.Writable[[]byte]/stream.Closeable
// wrapper around an *os.File.
type File struct {
	f        *os.File
	closed   bool
	closeErr error
}

// OpenReadable opens path for reading without altering it, satisfying
// stream.Readable[[]byte] and stream.Closeable.
func OpenReadable(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &asyncerrors.IoError{Op: "open_readable_stream", Code: err}
	}

	return &File{f: f}, nil
}

// OpenWritable opens path for writing. append == false truncates any
// existing content; append == true appends without truncating. Either way
// the file is created if it does not already exist.
func OpenWritable(path string, append bool) (*File, error) {
	flags := os.O_WRONLY | os.O_CREATE
	if append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, &asyncerrors.IoError{Op: "open_writable_stream", Code: err}
	}

	return &File{f: f}, nil
}

// Recv implements stream.Readable[[]byte]. It reads up to chunkSize bytes
// per call; ok == false signals end-of-file.
func (f *File) Recv(ctx context.Context) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		//nolint:wrapcheck
		return nil, false, context.Cause(ctx)
	}
	if f.closed {
		return nil, false, nil
	}

	buf := make([]byte, chunkSize)
	n, err := f.f.Read(buf)
	if n > 0 {
		return buf[:n], true, nil
	}
	if err == io.EOF {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, &asyncerrors.IoError{Op: "read", Code: err}
	}

	return nil, false, nil
}

// Send implements stream.Writable[[]byte]. Send on a closed file returns
// accepted == false, matching the stream contract.
func (f *File) Send(ctx context.Context, value []byte) (bool, error) {
	if err := ctx.Err(); err != nil {
		//nolint:wrapcheck
		return false, context.Cause(ctx)
	}
	if f.closed {
		return false, nil
	}

	if _, err := f.f.Write(value); err != nil {
		return false, &asyncerrors.IoError{Op: "write", Code: err}
	}

	return true, nil
}

// Close implements stream.Closeable. It is idempotent.
func (f *File) Close(ctx context.Context) error {
	if f.closed {
		return f.closeErr
	}
	f.closed = true
	if err := f.f.Close(); err != nil {
		f.closeErr = &asyncerrors.IoError{Op: "close", Code: err}
	}

	return f.closeErr
}
