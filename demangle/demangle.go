// Package demangle decodes symbol names produced by GHC's z-encoding.
// See https://gitlab.haskell.org/ghc/ghc/-/wikis/commentary/compiler/symbol-names
package demangle

import "strings"

// zChars maps the lowercase escape letters ("z-escapes") to the operator
// characters they stand for. Zero entries are letters with no assignment;
// meeting one is a decode error.
var zChars = [26]byte{
	'a' - 'a': '&',
	'b' - 'a': '|',
	'c' - 'a': '^',
	'd' - 'a': '$',
	'e' - 'a': '=',
	'g' - 'a': '>',
	'h' - 'a': '#',
	'i' - 'a': '.',
	'l' - 'a': '<',
	'm' - 'a': '-',
	'n' - 'a': '!',
	'p' - 'a': '+',
	'q' - 'a': '\'',
	'r' - 'a': '\\',
	's' - 'a': '/',
	't' - 'a': '*',
	'u' - 'a': '_',
	'v' - 'a': '%',
	'z' - 'a': 'z',
}

// upperZChars maps the uppercase escape letters ("Z-escapes") to structural
// punctuation.
var upperZChars = [24]byte{
	'C' - 'C': ':',
	'L' - 'C': '(',
	'M' - 'C': '[',
	'N' - 'C': ']',
	'R' - 'C': ')',
	'Z' - 'C': 'Z',
}

// maxTupleArity bounds the accumulated tuple arity. GHC caps tuples at 64
// components; anything past this is a corrupt name, not a bigger tuple.
const maxTupleArity = 1 << 16

// Decode converts a z-encoded name back to its original form. Input that
// contains no escapes is returned unchanged. Any malformed escape aborts
// decoding with a *DecodeError; no partial output is produced. Tuple
// arities above 65536 are rejected as corrupt.
func Decode(mangled string) (string, error) {
	d := &decoder{input: mangled, out: newBuffer()}
	if err := d.run(); err != nil {
		return "", err
	}
	return d.out.String(), nil
}

// DecodeSimple decodes a name, returning the input unchanged on error.
func DecodeSimple(mangled string) string {
	decoded, err := Decode(mangled)
	if err != nil {
		return mangled
	}
	return decoded
}

// IsEncoded reports whether the name contains any z-encoding escape
// introducer, i.e. whether Decode could rewrite it.
func IsEncoded(name string) bool {
	return strings.ContainsAny(name, "zZ")
}

// decoder holds scanner state for one decode call.
type decoder struct {
	input string
	pos   int
	out   *buffer
}

func (d *decoder) run() error {
	for d.pos < len(d.input) {
		switch c := d.input[d.pos]; c {
		case 'z':
			d.pos++
			if err := d.lowerEscape(); err != nil {
				return err
			}
		case 'Z':
			d.pos++
			if err := d.upperEscape(); err != nil {
				return err
			}
		default:
			d.out.push(c)
			d.pos++
		}
	}
	return nil
}

// lowerEscape handles the character after a 'z': either a hexadecimal code
// point run or a z-escape table lookup. Escaped letters 'a'-'f' are always
// written with a leading '0' by the encoder, so a leading digit is enough
// to distinguish the two forms.
func (d *decoder) lowerEscape() error {
	if d.pos >= len(d.input) {
		return d.fail(ErrUnexpectedEnd)
	}
	c := d.input[d.pos]
	if isDigit(c) {
		return d.hexCodePoint()
	}
	if c < 'a' || c > 'z' || zChars[c-'a'] == 0 {
		return d.fail(ErrBadEscape)
	}
	d.out.push(zChars[c-'a'])
	d.pos++
	return nil
}

// hexCodePoint accumulates lowercase hex digits up to the mandatory 'U'
// terminator and emits the code point as UTF-8. Uppercase hex digits are
// not part of the grammar; they end the run (and then fail the terminator
// check unless the character is 'U' itself).
func (d *decoder) hexCodePoint() error {
	var code uint32
	for d.pos < len(d.input) && isHexDigit(d.input[d.pos]) {
		c := d.input[d.pos]
		code *= 16
		if c <= '9' {
			code += uint32(c - '0')
		} else {
			code += uint32(c-'a') + 10
		}
		if code > maxCodePoint {
			return d.fail(ErrBadCodePoint)
		}
		d.pos++
	}
	if d.pos >= len(d.input) {
		return d.fail(ErrUnexpectedEnd)
	}
	if d.input[d.pos] != 'U' {
		return d.fail(ErrBadTerminator)
	}
	if err := d.out.pushCodePoint(code); err != nil {
		return d.fail(err)
	}
	d.pos++
	return nil
}

// upperEscape handles the character after a 'Z': either a tuple arity run
// or a Z-escape table lookup.
func (d *decoder) upperEscape() error {
	if d.pos >= len(d.input) {
		return d.fail(ErrUnexpectedEnd)
	}
	c := d.input[d.pos]
	if isDigit(c) {
		return d.tupleArity()
	}
	if c < 'C' || c > 'Z' || upperZChars[c-'C'] == 0 {
		return d.fail(ErrBadEscape)
	}
	d.out.push(upperZChars[c-'C'])
	d.pos++
	return nil
}

// tupleArity accumulates a decimal arity and emits the tuple constructor
// name it encodes: 'T' for boxed tuples, 'H' for unboxed ones.
func (d *decoder) tupleArity() error {
	arity := 0
	for d.pos < len(d.input) && isDigit(d.input[d.pos]) {
		arity = arity*10 + int(d.input[d.pos]-'0')
		if arity > maxTupleArity {
			return d.fail(ErrBadArity)
		}
		d.pos++
	}
	if d.pos >= len(d.input) {
		return d.fail(ErrUnexpectedEnd)
	}
	switch d.input[d.pos] {
	case 'T':
		switch arity {
		case 0:
			d.out.pushString("()")
		case 1:
			// There is no 1-tuple constructor.
			return d.fail(ErrBadArity)
		default:
			// Two for "()", one per comma.
			d.out.reserve(arity + 1)
			d.out.push('(')
			for i := 1; i < arity; i++ {
				d.out.push(',')
			}
			d.out.push(')')
		}
	case 'H':
		switch arity {
		case 0:
			return d.fail(ErrBadArity)
		case 1:
			d.out.pushString("(# #)")
		default:
			// Four for "(##)", one per comma.
			d.out.reserve(arity + 3)
			d.out.pushString("(#")
			for i := 1; i < arity; i++ {
				d.out.push(',')
			}
			d.out.pushString("#)")
		}
	default:
		return d.fail(ErrBadTerminator)
	}
	d.pos++
	return nil
}

func (d *decoder) fail(err error) error {
	return &DecodeError{Input: d.input, Pos: d.pos, Err: err}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f'
}
