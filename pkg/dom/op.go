package dom

// Op identifies a kind of live mutation. Values double as wire op codes in
// pkg/protocol.
type Op uint8

const (
	OpCreateElement Op = 0x01
	OpCreateText    Op = 0x02
	OpAppendChild   Op = 0x03
	OpReplaceChild  Op = 0x04
	OpRemoveChild   Op = 0x05
	OpSetAttr       Op = 0x06
	OpRemoveAttr    Op = 0x07
	OpSetValue      Op = 0x08
	OpListen        Op = 0x09
	OpInsertBefore  Op = 0x0A
)

// String returns the string representation of the Op.
func (op Op) String() string {
	switch op {
	case OpCreateElement:
		return "CreateElement"
	case OpCreateText:
		return "CreateText"
	case OpAppendChild:
		return "AppendChild"
	case OpReplaceChild:
		return "ReplaceChild"
	case OpRemoveChild:
		return "RemoveChild"
	case OpSetAttr:
		return "SetAttr"
	case OpRemoveAttr:
		return "RemoveAttr"
	case OpSetValue:
		return "SetValue"
	case OpListen:
		return "Listen"
	case OpInsertBefore:
		return "InsertBefore"
	default:
		return "Unknown"
	}
}

// Valid reports whether op is a known mutation kind.
func (op Op) Valid() bool {
	return op >= OpCreateElement && op <= OpInsertBefore
}

// IsAttribute reports whether op mutates an attribute.
func (op Op) IsAttribute() bool {
	return op == OpSetAttr || op == OpRemoveAttr
}
