package protocol

import (
	"maps"
	"slices"

	"github.com/vango-dev/retain/pkg/dom"
)

// Event is a native event reported by the client.
type Event struct {
	Seq    uint64
	Target dom.Handle
	Name   string
	Value  string
	Detail map[string]string
}

// DOM converts e to the event a dom.Listener receives.
func (e *Event) DOM() dom.Event {
	return dom.Event{Name: e.Name, Target: e.Target, Value: e.Value, Detail: e.Detail}
}

// EncodeEvent encodes e into a payload. Detail keys are written sorted so
// equal events encode identically.
func EncodeEvent(e *Event) []byte {
	enc := NewEncoder()
	enc.WriteUvarint(e.Seq)
	enc.WriteHandle(e.Target)
	enc.WriteString(e.Name)
	enc.WriteString(e.Value)
	enc.WriteUvarint(uint64(len(e.Detail)))
	for _, k := range slices.Sorted(maps.Keys(e.Detail)) {
		enc.WriteString(k)
		enc.WriteString(e.Detail[k])
	}
	return enc.Bytes()
}

// DecodeEvent decodes an Event payload.
func DecodeEvent(data []byte) (*Event, error) {
	d := NewDecoder(data)
	e := &Event{}
	var err error

	if e.Seq, err = d.ReadUvarint(); err != nil {
		return nil, err
	}
	if e.Target, err = d.ReadHandle(); err != nil {
		return nil, err
	}
	if e.Name, err = d.ReadString(); err != nil {
		return nil, err
	}
	if e.Value, err = d.ReadString(); err != nil {
		return nil, err
	}

	n, err := d.ReadCount()
	if err != nil {
		return nil, err
	}
	if n > 0 {
		e.Detail = make(map[string]string, n)
	}
	for range n {
		k, err := d.ReadString()
		if err != nil {
			return nil, err
		}
		v, err := d.ReadString()
		if err != nil {
			return nil, err
		}
		e.Detail[k] = v
	}
	return e, d.done()
}
