package protocol

// MaxVarintLen is the longest a uint64 varint can be.
const MaxVarintLen = 10

// AppendUvarint appends v to buf in varint form.
func AppendUvarint(buf []byte, v uint64) []byte {
	for v >= 0x80 {
		buf = append(buf, byte(v)|0x80)
		v >>= 7
	}
	return append(buf, byte(v))
}

// Uvarint decodes a varint from the front of buf. n is the number of bytes
// consumed; n == 0 means buf ended early and n < 0 means overflow.
func Uvarint(buf []byte) (v uint64, n int) {
	var shift uint
	for i, b := range buf {
		if i == MaxVarintLen {
			return 0, -1
		}
		v |= uint64(b&0x7f) << shift
		if b < 0x80 {
			return v, i + 1
		}
		shift += 7
	}
	return 0, 0
}

// UvarintLen returns the encoded size of v.
func UvarintLen(v uint64) int {
	n := 1
	for ; v >= 0x80; v >>= 7 {
		n++
	}
	return n
}
