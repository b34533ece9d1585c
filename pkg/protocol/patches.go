package protocol

import (
	"fmt"

	"github.com/vango-dev/retain/internal/errors"
	"github.com/vango-dev/retain/pkg/dom"
)

// Mutation is one live mutation as sent to the client. Which fields are
// meaningful depends on Op:
//
//	CreateElement  Target=new handle  Name=tag
//	CreateText     Target=new handle  Value=content
//	AppendChild    Target=parent      Child
//	ReplaceChild   Target=parent      Child=new  Old
//	InsertBefore   Target=parent      Child  Old=reference sibling
//	RemoveChild    Target=parent      Child
//	SetAttr        Target             Name  Value
//	RemoveAttr     Target             Name
//	SetValue       Target             Value
//	Listen         Target             Name=event
type Mutation struct {
	Op     dom.Op
	Target dom.Handle
	Child  dom.Handle
	Old    dom.Handle
	Name   string
	Value  string
}

// String returns a compact debug form.
func (m Mutation) String() string {
	switch m.Op {
	case dom.OpCreateElement:
		return fmt.Sprintf("%s(#%d <%s>)", m.Op, m.Target, m.Name)
	case dom.OpCreateText:
		return fmt.Sprintf("%s(#%d %q)", m.Op, m.Target, m.Value)
	case dom.OpAppendChild, dom.OpRemoveChild:
		return fmt.Sprintf("%s(#%d, #%d)", m.Op, m.Target, m.Child)
	case dom.OpReplaceChild:
		return fmt.Sprintf("%s(#%d, #%d for #%d)", m.Op, m.Target, m.Child, m.Old)
	case dom.OpSetAttr:
		return fmt.Sprintf("%s(#%d %s=%q)", m.Op, m.Target, m.Name, m.Value)
	case dom.OpSetValue:
		return fmt.Sprintf("%s(#%d %q)", m.Op, m.Target, m.Value)
	default:
		return fmt.Sprintf("%s(#%d %s)", m.Op, m.Target, m.Name)
	}
}

// Patches is the payload of a Patches frame: the mutations of one render
// pass, or a slice of one when the pass spans several frames.
type Patches struct {
	Seq uint64
	Ops []Mutation
}

// EncodePatches encodes p into a payload.
func EncodePatches(p *Patches) []byte {
	e := NewEncoder()
	EncodePatchesTo(e, p)
	return e.Bytes()
}

// EncodePatchesTo appends p to e.
func EncodePatchesTo(e *Encoder, p *Patches) {
	e.WriteUvarint(p.Seq)
	e.WriteUvarint(uint64(len(p.Ops)))
	for i := range p.Ops {
		EncodeMutation(e, &p.Ops[i])
	}
}

// EncodeMutation appends a single mutation to e.
func EncodeMutation(e *Encoder, m *Mutation) {
	e.WriteByte(byte(m.Op))
	e.WriteHandle(m.Target)

	switch m.Op {
	case dom.OpCreateElement, dom.OpRemoveAttr, dom.OpListen:
		e.WriteString(m.Name)
	case dom.OpCreateText, dom.OpSetValue:
		e.WriteString(m.Value)
	case dom.OpAppendChild, dom.OpRemoveChild:
		e.WriteHandle(m.Child)
	case dom.OpReplaceChild, dom.OpInsertBefore:
		e.WriteHandle(m.Child)
		e.WriteHandle(m.Old)
	case dom.OpSetAttr:
		e.WriteString(m.Name)
		e.WriteString(m.Value)
	}
}

// MutationSize returns the encoded size of m.
func MutationSize(m *Mutation) int {
	n := 1 + UvarintLen(uint64(m.Target))
	str := func(s string) int { return UvarintLen(uint64(len(s))) + len(s) }

	switch m.Op {
	case dom.OpCreateElement, dom.OpRemoveAttr, dom.OpListen:
		n += str(m.Name)
	case dom.OpCreateText, dom.OpSetValue:
		n += str(m.Value)
	case dom.OpAppendChild, dom.OpRemoveChild:
		n += UvarintLen(uint64(m.Child))
	case dom.OpReplaceChild, dom.OpInsertBefore:
		n += UvarintLen(uint64(m.Child)) + UvarintLen(uint64(m.Old))
	case dom.OpSetAttr:
		n += str(m.Name) + str(m.Value)
	}
	return n
}

// DecodePatches decodes a Patches payload.
func DecodePatches(data []byte) (*Patches, error) {
	d := NewDecoder(data)
	p, err := DecodePatchesFrom(d)
	if err != nil {
		return nil, err
	}
	return p, d.done()
}

// DecodePatchesFrom reads a Patches payload from d.
func DecodePatchesFrom(d *Decoder) (*Patches, error) {
	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	count, err := d.ReadCount()
	if err != nil {
		return nil, err
	}

	p := &Patches{Seq: seq, Ops: make([]Mutation, count)}
	for i := range p.Ops {
		if err := decodeMutation(d, &p.Ops[i]); err != nil {
			return nil, fmt.Errorf("op %d: %w", i, err)
		}
	}
	return p, nil
}

func decodeMutation(d *Decoder, m *Mutation) error {
	b, err := d.ReadByte()
	if err != nil {
		return err
	}
	m.Op = dom.Op(b)
	if !m.Op.Valid() {
		return errors.New("E102").With("op", fmt.Sprintf("0x%02x", b)).Wrap(ErrUnknownOp)
	}
	if m.Target, err = d.ReadHandle(); err != nil {
		return err
	}

	switch m.Op {
	case dom.OpCreateElement, dom.OpRemoveAttr, dom.OpListen:
		m.Name, err = d.ReadString()
	case dom.OpCreateText, dom.OpSetValue:
		m.Value, err = d.ReadString()
	case dom.OpAppendChild, dom.OpRemoveChild:
		m.Child, err = d.ReadHandle()
	case dom.OpReplaceChild, dom.OpInsertBefore:
		if m.Child, err = d.ReadHandle(); err == nil {
			m.Old, err = d.ReadHandle()
		}
	case dom.OpSetAttr:
		if m.Name, err = d.ReadString(); err == nil {
			m.Value, err = d.ReadString()
		}
	}
	return err
}

// SplitPatches packs ops into as few Patches frames as fit MaxPayloadSize.
// Every frame but the last carries FlagContinued. All frames share seq.
// A single op larger than a frame is an error.
func SplitPatches(seq uint64, ops []Mutation) ([]*Frame, error) {
	const reserve = 2 * MaxVarintLen

	var frames []*Frame
	start, size := 0, 0
	flush := func(end int, last bool) {
		f := NewFrame(FramePatches, EncodePatches(&Patches{Seq: seq, Ops: ops[start:end]}))
		if !last {
			f.Flags |= FlagContinued
		}
		frames = append(frames, f)
		start, size = end, 0
	}

	for i := range ops {
		n := MutationSize(&ops[i])
		if n+reserve > MaxPayloadSize {
			return nil, fmt.Errorf("%w: %s op of %d bytes", ErrFrameTooLarge, ops[i].Op, n)
		}
		if size+n+reserve > MaxPayloadSize {
			flush(i, false)
		}
		size += n
	}
	flush(len(ops), true)
	return frames, nil
}
