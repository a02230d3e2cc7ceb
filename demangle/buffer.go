package demangle

// maxCodePoint is the largest Unicode scalar value.
const maxCodePoint = 0x10FFFF

const initialBufSize = 20

// buffer is the decoder's output accumulator. It grows by at least 1.5x on
// each reallocation so repeated single-byte pushes stay amortized O(1).
type buffer struct {
	data []byte
}

func newBuffer() *buffer {
	return &buffer{data: make([]byte, 0, initialBufSize)}
}

// reserve guarantees at least n free bytes of capacity.
func (b *buffer) reserve(n int) {
	need := len(b.data) + n
	c := cap(b.data)
	if need <= c {
		return
	}
	if need < c+c/2 {
		need = c + c/2
	}
	grown := make([]byte, len(b.data), need)
	copy(grown, b.data)
	b.data = grown
}

func (b *buffer) push(c byte) {
	if len(b.data) == cap(b.data) {
		b.reserve(1)
	}
	b.data = append(b.data, c)
}

func (b *buffer) pushString(s string) {
	b.reserve(len(s))
	b.data = append(b.data, s...)
}

// pushCodePoint appends the UTF-8 encoding of a Unicode scalar value.
// It always reserves 4 bytes up front: mangled names almost always carry
// further ASCII after an escape (_info, _closure, _bytes, ...), so the
// slack gets used.
//
// Surrogate values encode as their ordinary 3-byte form; only values above
// U+10FFFF are rejected. utf8.AppendRune would substitute U+FFFD for both.
func (b *buffer) pushCodePoint(code uint32) error {
	b.reserve(4)
	switch {
	case code <= 0x7F:
		b.data = append(b.data, byte(code))
	case code <= 0x7FF:
		b.data = append(b.data,
			byte(code>>6&0x1F|0xC0),
			byte(code&0x3F|0x80))
	case code <= 0xFFFF:
		b.data = append(b.data,
			byte(code>>12&0x0F|0xE0),
			byte(code>>6&0x3F|0x80),
			byte(code&0x3F|0x80))
	case code <= maxCodePoint:
		b.data = append(b.data,
			byte(code>>18&0x07|0xF0),
			byte(code>>12&0x3F|0x80),
			byte(code>>6&0x3F|0x80),
			byte(code&0x3F|0x80))
	default:
		return ErrBadCodePoint
	}
	return nil
}

// String hands the accumulated output to the caller as an exact-length copy.
func (b *buffer) String() string {
	return string(b.data)
}
