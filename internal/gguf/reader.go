package gguf

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"unicode/utf8"
)

// reader is a forward-only little-endian cursor over the byte source.
// It tracks how many bytes have been consumed so the parser can compute
// the start of the tensor data section without seeking.
type reader struct {
	r   io.Reader
	off int64
	buf [8]byte

	maxString uint64
	maxArray  uint64
	maxDepth  int

	// depth is the current array nesting level.
	depth int
}

func newReader(r io.Reader, opts options) *reader {
	return &reader{
		r:         r,
		maxString: opts.maxStringLength,
		maxArray:  opts.maxArrayLength,
		maxDepth:  opts.maxArrayDepth,
	}
}

// readFull fills b or reports an I/O error. A clean EOF before the
// first byte is reported as io.ErrUnexpectedEOF because every caller
// expects more data.
func (r *reader) readFull(b []byte) error {
	n, err := io.ReadFull(r.r, b)
	r.off += int64(n)
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return ioError(err)
	}
	return nil
}

func (r *reader) readU8() (uint8, error) {
	if err := r.readFull(r.buf[:1]); err != nil {
		return 0, err
	}
	return r.buf[0], nil
}

func (r *reader) readU16() (uint16, error) {
	if err := r.readFull(r.buf[:2]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(r.buf[:2]), nil
}

func (r *reader) readU32() (uint32, error) {
	if err := r.readFull(r.buf[:4]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(r.buf[:4]), nil
}

func (r *reader) readU64() (uint64, error) {
	if err := r.readFull(r.buf[:8]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(r.buf[:8]), nil
}

func (r *reader) readF32() (float32, error) {
	u, err := r.readU32()
	return math.Float32frombits(u), err
}

func (r *reader) readF64() (float64, error) {
	u, err := r.readU64()
	return math.Float64frombits(u), err
}

// readString reads a GGUF string (u64 length prefix, NOT null-terminated).
// The bytes must be valid UTF-8.
func (r *reader) readString() (string, error) {
	n, err := r.readU64()
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}
	if r.maxString > 0 && n > r.maxString {
		return "", formatError(fmt.Errorf("string length %d exceeds %d: %w", n, r.maxString, ErrLimitExceeded))
	}

	b, err := r.readBytes(n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", formatError(ErrInvalidUTF8)
	}
	return string(b), nil
}

// stringChunk bounds the up-front allocation for a string. Longer strings
// grow as bytes actually arrive, so a bogus length fails with a short
// read instead of a huge allocation.
const stringChunk = 1 << 20

func (r *reader) readBytes(n uint64) ([]byte, error) {
	if n <= stringChunk {
		b := make([]byte, n)
		if err := r.readFull(b); err != nil {
			return nil, err
		}
		return b, nil
	}
	if n > math.MaxInt64 {
		return nil, formatError(fmt.Errorf("string length %d: %w", n, ErrLimitExceeded))
	}

	var buf bytes.Buffer
	copied, err := io.CopyN(&buf, r.r, int64(n))
	r.off += copied
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, ioError(err)
	}
	return buf.Bytes(), nil
}
