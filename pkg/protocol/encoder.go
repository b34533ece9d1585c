package protocol

import "github.com/vango-dev/retain/pkg/dom"

// Encoder appends wire values to a growing buffer.
type Encoder struct {
	buf []byte
}

// NewEncoder returns an Encoder with a small preallocated buffer.
func NewEncoder() *Encoder {
	return &Encoder{buf: make([]byte, 0, 256)}
}

// Reset empties the buffer, keeping its capacity.
func (e *Encoder) Reset() { e.buf = e.buf[:0] }

// Bytes returns the encoded bytes. The slice is reused after Reset.
func (e *Encoder) Bytes() []byte { return e.buf }

// Len returns the number of encoded bytes.
func (e *Encoder) Len() int { return len(e.buf) }

// WriteByte appends b. It never fails.
func (e *Encoder) WriteByte(b byte) error {
	e.buf = append(e.buf, b)
	return nil
}

// WriteBytes appends raw bytes.
func (e *Encoder) WriteBytes(b []byte) { e.buf = append(e.buf, b...) }

// WriteUvarint appends v as a varint.
func (e *Encoder) WriteUvarint(v uint64) { e.buf = AppendUvarint(e.buf, v) }

// WriteHandle appends a resource handle.
func (e *Encoder) WriteHandle(h dom.Handle) { e.WriteUvarint(uint64(h)) }

// WriteString appends a length-prefixed string.
func (e *Encoder) WriteString(s string) {
	e.WriteUvarint(uint64(len(s)))
	e.buf = append(e.buf, s...)
}

// WriteBool appends 0x01 or 0x00.
func (e *Encoder) WriteBool(b bool) {
	if b {
		e.buf = append(e.buf, 1)
		return
	}
	e.buf = append(e.buf, 0)
}

// WriteUint16 appends v big-endian.
func (e *Encoder) WriteUint16(v uint16) {
	e.buf = append(e.buf, byte(v>>8), byte(v))
}
