package protocol

import (
	"errors"
	"io"

	"github.com/vango-dev/retain/pkg/dom"
)

// Decoding limits. A hostile peer controls every length prefix, so nothing
// is allocated from one without a bound.
const (
	MaxStringLen       = 64 * 1024
	MaxCollectionCount = 10_000
)

// Decoding errors.
var (
	ErrVarintOverflow     = errors.New("protocol: varint overflow")
	ErrStringTooLong      = errors.New("protocol: string exceeds limit")
	ErrCollectionTooLarge = errors.New("protocol: collection count exceeds limit")
	ErrUnknownOp          = errors.New("protocol: unknown op")
	ErrTrailingBytes      = errors.New("protocol: trailing bytes after payload")
)

// Decoder reads wire values from a byte slice.
type Decoder struct {
	buf []byte
	pos int
}

// NewDecoder returns a Decoder over buf.
func NewDecoder(buf []byte) *Decoder {
	return &Decoder{buf: buf}
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int { return len(d.buf) - d.pos }

// EOF reports whether every byte has been read.
func (d *Decoder) EOF() bool { return d.pos >= len(d.buf) }

// ReadByte reads one byte.
func (d *Decoder) ReadByte() (byte, error) {
	if d.pos >= len(d.buf) {
		return 0, io.ErrUnexpectedEOF
	}
	b := d.buf[d.pos]
	d.pos++
	return b, nil
}

// ReadUvarint reads a varint.
func (d *Decoder) ReadUvarint() (uint64, error) {
	v, n := Uvarint(d.buf[d.pos:])
	switch {
	case n == 0:
		return 0, io.ErrUnexpectedEOF
	case n < 0:
		return 0, ErrVarintOverflow
	}
	d.pos += n
	return v, nil
}

// ReadHandle reads a resource handle.
func (d *Decoder) ReadHandle() (dom.Handle, error) {
	v, err := d.ReadUvarint()
	return dom.Handle(v), err
}

// ReadString reads a length-prefixed string of at most MaxStringLen bytes.
func (d *Decoder) ReadString() (string, error) {
	n, err := d.ReadUvarint()
	if err != nil {
		return "", err
	}
	if n > MaxStringLen {
		return "", ErrStringTooLong
	}
	if n > uint64(d.Remaining()) {
		return "", io.ErrUnexpectedEOF
	}
	s := string(d.buf[d.pos : d.pos+int(n)])
	d.pos += int(n)
	return s, nil
}

// ReadBool reads a byte; any non-zero value is true.
func (d *Decoder) ReadBool() (bool, error) {
	b, err := d.ReadByte()
	return b != 0, err
}

// ReadUint16 reads a big-endian uint16.
func (d *Decoder) ReadUint16() (uint16, error) {
	if d.Remaining() < 2 {
		return 0, io.ErrUnexpectedEOF
	}
	v := uint16(d.buf[d.pos])<<8 | uint16(d.buf[d.pos+1])
	d.pos += 2
	return v, nil
}

// ReadCount reads a collection size and checks it against MaxCollectionCount
// and the bytes left, each item taking at least one byte.
func (d *Decoder) ReadCount() (int, error) {
	n, err := d.ReadUvarint()
	if err != nil {
		return 0, err
	}
	if n > MaxCollectionCount {
		return 0, ErrCollectionTooLarge
	}
	if n > uint64(d.Remaining()) {
		return 0, io.ErrUnexpectedEOF
	}
	return int(n), nil
}

func (d *Decoder) done() error {
	if !d.EOF() {
		return ErrTrailingBytes
	}
	return nil
}
