package protocol

// ErrorMessage reports a failure to the peer. Code is one of the module's
// diagnostic codes ("E101").
type ErrorMessage struct {
	Code    string
	Message string
	Fatal   bool // the sender closes the connection after this frame
}

// EncodeErrorMessage encodes m into a payload.
func EncodeErrorMessage(m *ErrorMessage) []byte {
	e := NewEncoder()
	e.WriteString(m.Code)
	e.WriteString(m.Message)
	e.WriteBool(m.Fatal)
	return e.Bytes()
}

// DecodeErrorMessage decodes an ErrorMessage payload.
func DecodeErrorMessage(data []byte) (*ErrorMessage, error) {
	d := NewDecoder(data)
	m := &ErrorMessage{}
	var err error

	if m.Code, err = d.ReadString(); err != nil {
		return nil, err
	}
	if m.Message, err = d.ReadString(); err != nil {
		return nil, err
	}
	if m.Fatal, err = d.ReadBool(); err != nil {
		return nil, err
	}
	return m, d.done()
}
