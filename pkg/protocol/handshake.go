package protocol

// Version is the wire protocol version carried in the handshake.
const Version uint8 = 1

// Handshake opens a session. The client binds Root to its mount point and
// expects Patches starting at sequence 1.
type Handshake struct {
	Version uint8
	Session string
	Root    uint64
}

// EncodeHandshake encodes h into a payload.
func EncodeHandshake(h *Handshake) []byte {
	e := NewEncoder()
	e.WriteByte(h.Version)
	e.WriteString(h.Session)
	e.WriteUvarint(h.Root)
	return e.Bytes()
}

// DecodeHandshake decodes a Handshake payload.
func DecodeHandshake(data []byte) (*Handshake, error) {
	d := NewDecoder(data)
	h := &Handshake{}
	var err error

	if h.Version, err = d.ReadByte(); err != nil {
		return nil, err
	}
	if h.Session, err = d.ReadString(); err != nil {
		return nil, err
	}
	if h.Root, err = d.ReadUvarint(); err != nil {
		return nil, err
	}
	return h, d.done()
}
