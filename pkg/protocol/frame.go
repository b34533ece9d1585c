package protocol

import (
	"errors"
	"io"
)

const (
	// FrameHeaderSize is the size of the frame header in bytes.
	FrameHeaderSize = 4

	// MaxPayloadSize is the largest payload a frame can carry.
	MaxPayloadSize = 65535
)

// FrameType identifies the payload of a frame.
type FrameType uint8

const (
	FrameHandshake FrameType = 0x00 // server → client session setup
	FrameEvent     FrameType = 0x01 // client → server native event
	FramePatches   FrameType = 0x02 // server → client mutations
	FrameError     FrameType = 0x03 // either direction
)

// String returns the name of the frame type.
func (ft FrameType) String() string {
	switch ft {
	case FrameHandshake:
		return "Handshake"
	case FrameEvent:
		return "Event"
	case FramePatches:
		return "Patches"
	case FrameError:
		return "Error"
	default:
		return "Unknown"
	}
}

// FrameFlags modify how a payload is read.
type FrameFlags uint8

const (
	// FlagContinued marks a Patches frame whose pass continues in the next
	// frame because it did not fit in MaxPayloadSize.
	FlagContinued FrameFlags = 0x01
)

// Has reports whether ff contains flag.
func (ff FrameFlags) Has(flag FrameFlags) bool {
	return ff&flag != 0
}

// Frame errors.
var (
	ErrFrameTooLarge    = errors.New("protocol: frame payload too large")
	ErrInvalidFrameType = errors.New("protocol: invalid frame type")
)

// Frame is one framed message.
type Frame struct {
	Type    FrameType
	Flags   FrameFlags
	Payload []byte
}

// NewFrame returns a frame without flags.
func NewFrame(ft FrameType, payload []byte) *Frame {
	return &Frame{Type: ft, Payload: payload}
}

// Encode returns header and payload as one slice.
func (f *Frame) Encode() ([]byte, error) {
	n := len(f.Payload)
	if n > MaxPayloadSize {
		return nil, ErrFrameTooLarge
	}
	buf := make([]byte, FrameHeaderSize+n)
	buf[0] = byte(f.Type)
	buf[1] = byte(f.Flags)
	buf[2] = byte(n >> 8)
	buf[3] = byte(n)
	copy(buf[FrameHeaderSize:], f.Payload)
	return buf, nil
}

// DecodeFrame parses a single complete frame. WebSocket messages carry
// exactly one frame each, so trailing bytes are an error.
func DecodeFrame(data []byte) (*Frame, error) {
	if len(data) < FrameHeaderSize {
		return nil, io.ErrUnexpectedEOF
	}
	ft := FrameType(data[0])
	if ft > FrameError {
		return nil, ErrInvalidFrameType
	}
	n := int(data[2])<<8 | int(data[3])
	switch {
	case len(data) < FrameHeaderSize+n:
		return nil, io.ErrUnexpectedEOF
	case len(data) > FrameHeaderSize+n:
		return nil, ErrTrailingBytes
	}
	payload := make([]byte, n)
	copy(payload, data[FrameHeaderSize:])
	return &Frame{Type: ft, Flags: FrameFlags(data[1]), Payload: payload}, nil
}

// ReadFrame reads one frame from r.
func ReadFrame(r io.Reader) (*Frame, error) {
	var header [FrameHeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, err
	}
	n := int(header[2])<<8 | int(header[3])
	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}
	return &Frame{Type: FrameType(header[0]), Flags: FrameFlags(header[1]), Payload: payload}, nil
}

// WriteFrame writes f to w.
func WriteFrame(w io.Writer, f *Frame) error {
	data, err := f.Encode()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
