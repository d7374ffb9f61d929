// Package stream adapts large HTTP bodies to pull-based byte sequences so
// file transfers stay bounded by one chunk of memory rather than the whole
// payload. Readers are finite, forward-only and not restartable.
package stream

import (
	"io"
)

// DefaultChunkSize is the chunk size used when none is configured.
const DefaultChunkSize = 32 * 1024

// Reader consumes an HTTP response body one chunk at a time. Chunk
// boundaries carry no meaning; treat the sequence as an opaque byte stream.
// A Reader is owned by a single caller and must be closed when abandoned so
// the underlying connection is released.
type Reader struct {
	rc   io.ReadCloser
	buf  []byte
	err  error
	read int64
}

// NewReader wraps rc in a chunked reader. chunkSize <= 0 selects
// DefaultChunkSize.
func NewReader(rc io.ReadCloser, chunkSize int) *Reader {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Reader{
		rc:  rc,
		buf: make([]byte, chunkSize),
	}
}

// Next returns the next chunk of the stream. The returned slice is only
// valid until the following call to Next. io.EOF signals normal exhaustion.
func (r *Reader) Next() ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	n, err := r.rc.Read(r.buf)
	if n > 0 {
		r.read += int64(n)
		if err == io.EOF {
			// Deliver the final chunk; EOF surfaces on the next call.
			return r.buf[:n], nil
		}
		return r.buf[:n], err
	}
	if err == nil {
		err = io.ErrNoProgress
	}
	r.err = err
	return nil, err
}

// Read implements io.Reader over the same underlying body.
func (r *Reader) Read(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	n, err := r.rc.Read(p)
	r.read += int64(n)
	if err != nil {
		r.err = err
	}
	return n, err
}

// BytesRead returns the number of bytes consumed so far.
func (r *Reader) BytesRead() int64 {
	return r.read
}

// Close releases the underlying body. Closing before exhaustion discards
// the remainder of the stream.
func (r *Reader) Close() error {
	if r.err == nil {
		r.err = io.ErrClosedPipe
	}
	return r.rc.Close()
}
