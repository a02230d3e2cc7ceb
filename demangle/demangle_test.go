package demangle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		mangled  string
		expected string
	}{
		{
			name:     "empty input",
			mangled:  "",
			expected: "",
		},
		{
			name:     "plain ascii passes through",
			mangled:  "main",
			expected: "main",
		},
		{
			name:     "underscores and digits pass through",
			mangled:  "stg_ap_7_upd",
			expected: "stg_ap_7_upd",
		},
		{
			name:     "escaped z",
			mangled:  "zz",
			expected: "z",
		},
		{
			name:     "escaped Z",
			mangled:  "ZZ",
			expected: "Z",
		},
		{
			name:     "dot in module path",
			mangled:  "GHCziBase",
			expected: "GHC.Base",
		},
		{
			name:     "operator section",
			mangled:  "zgzgze",
			expected: ">>=",
		},
		{
			name:     "trip wire",
			mangled:  "Trakzz1ZZzh",
			expected: "Trakz1Z#",
		},
		{
			name:     "colon and parens",
			mangled:  "ZCZLZR",
			expected: ":()",
		},
		{
			name:     "brackets",
			mangled:  "ZMZN",
			expected: "[]",
		},
		{
			name:     "hex escape two bytes",
			mangled:  "z3bbU",
			expected: "λ",
		},
		{
			name:     "hex escape three bytes",
			mangled:  "z1e17U",
			expected: "ḗ",
		},
		{
			name:     "hex escape with leading zero",
			mangled:  "z0a9U",
			expected: "©",
		},
		{
			name:     "one byte boundary",
			mangled:  "z7fU",
			expected: "",
		},
		{
			name:     "two byte boundary",
			mangled:  "z7ffU",
			expected: "߿",
		},
		{
			name:     "three byte boundary",
			mangled:  "z0ffffU",
			expected: "￿",
		},
		{
			name:     "four byte boundary",
			mangled:  "z10ffffU",
			expected: "\U0010ffff",
		},
		{
			name:     "hex escape followed by suffix",
			mangled:  "z3bbU_info",
			expected: "λ_info",
		},
		{
			name:     "unit tuple",
			mangled:  "Z0T",
			expected: "()",
		},
		{
			name:     "pair constructor",
			mangled:  "Z2T",
			expected: "(,)",
		},
		{
			name:     "triple constructor",
			mangled:  "Z3T",
			expected: "(,,)",
		},
		{
			name:     "unboxed singleton",
			mangled:  "Z1H",
			expected: "(# #)",
		},
		{
			name:     "unboxed pair",
			mangled:  "Z2H",
			expected: "(#,#)",
		},
		{
			name:     "unboxed 9-tuple",
			mangled:  "Z9H",
			expected: "(#,,,,,,,,#)",
		},
		{
			name:     "multi digit arity",
			mangled:  "Z64T",
			expected: "(" + commas(63) + ")",
		},
		{
			name:     "full symbol",
			mangled:  "base_GHCziBase_zpzp_closure",
			expected: "base_GHC.Base_++_closure",
		},
		{
			name:     "space separated hex tokens",
			mangled:  "z03bbU z03a0U",
			expected: "λ Π",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.mangled)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// Every assigned escape letter decodes to its mapped character.
func TestDecodeEscapeTables(t *testing.T) {
	lower := map[string]string{
		"za": "&", "zb": "|", "zc": "^", "zd": "$", "ze": "=",
		"zg": ">", "zh": "#", "zi": ".", "zl": "<", "zm": "-",
		"zn": "!", "zp": "+", "zq": "'", "zr": `\`, "zs": "/",
		"zt": "*", "zu": "_", "zv": "%", "zz": "z",
	}
	upper := map[string]string{
		"ZC": ":", "ZL": "(", "ZM": "[", "ZN": "]", "ZR": ")", "ZZ": "Z",
	}

	for mangled, expected := range lower {
		got, err := Decode(mangled)
		require.NoError(t, err, "escape %q", mangled)
		assert.Equal(t, expected, got, "escape %q", mangled)
	}
	for mangled, expected := range upper {
		got, err := Decode(mangled)
		require.NoError(t, err, "escape %q", mangled)
		assert.Equal(t, expected, got, "escape %q", mangled)
	}

	got, err := Decode("za zb zc zd ze zg zh zi zl zm zn zp zq zr zs zt zu zv")
	require.NoError(t, err)
	assert.Equal(t, `& | ^ $ = > # . < - ! + ' \ / * _ %`, got)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		mangled string
		want    error
	}{
		{
			name:    "input ends after z",
			mangled: "foobarz",
			want:    ErrUnexpectedEnd,
		},
		{
			name:    "input ends after Z",
			mangled: "fooZ",
			want:    ErrUnexpectedEnd,
		},
		{
			name:    "unassigned lowercase escape",
			mangled: "zf",
			want:    ErrBadEscape,
		},
		{
			name:    "hex run missing leading zero",
			mangled: "zffffU",
			want:    ErrBadEscape,
		},
		{
			name:    "unassigned uppercase escape",
			mangled: "ZD",
			want:    ErrBadEscape,
		},
		{
			name:    "lowercase escape out of range",
			mangled: "zB",
			want:    ErrBadEscape,
		},
		{
			name:    "uppercase escape out of range",
			mangled: "Za",
			want:    ErrBadEscape,
		},
		{
			name:    "hex run without terminator",
			mangled: "z3bb",
			want:    ErrUnexpectedEnd,
		},
		{
			name:    "hex run with wrong terminator",
			mangled: "z3bbX",
			want:    ErrBadTerminator,
		},
		{
			name:    "uppercase hex digit ends the run",
			mangled: "z0AU",
			want:    ErrBadTerminator,
		},
		{
			name:    "code point above U+10FFFF",
			mangled: "z110000U",
			want:    ErrBadCodePoint,
		},
		{
			name:    "arity run without terminator",
			mangled: "Z3",
			want:    ErrUnexpectedEnd,
		},
		{
			name:    "arity run with wrong terminator",
			mangled: "Z3X",
			want:    ErrBadTerminator,
		},
		{
			name:    "boxed 1-tuple",
			mangled: "Z1T",
			want:    ErrBadArity,
		},
		{
			name:    "unboxed 0-tuple",
			mangled: "Z0H",
			want:    ErrBadArity,
		},
		{
			name:    "absurd arity",
			mangled: "Z99999999T",
			want:    ErrBadArity,
		},
		{
			name:    "error in the middle of a name",
			mangled: "GHCziBasezx",
			want:    ErrBadEscape,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.mangled)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, got)
		})
	}
}

func TestDecodeErrorPosition(t *testing.T) {
	_, err := Decode("abczx")
	require.Error(t, err)

	var derr *DecodeError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, 4, derr.Pos)
	assert.Equal(t, "abczx", derr.Input)
	assert.ErrorIs(t, derr, ErrBadEscape)
}

func TestDecodeSimple(t *testing.T) {
	assert.Equal(t, "GHC.Base", DecodeSimple("GHCziBase"))
	assert.Equal(t, "zx", DecodeSimple("zx"))
}

func TestIsEncoded(t *testing.T) {
	assert.True(t, IsEncoded("GHCziBase"))
	assert.True(t, IsEncoded("ZCMain"))
	assert.False(t, IsEncoded("main_info"))
	assert.False(t, IsEncoded(""))
}

func commas(n int) string {
	s := make([]byte, n)
	for i := range s {
		s[i] = ','
	}
	return string(s)
}

func BenchmarkDecode(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = Decode("ghczmprim_GHCziTypes_ZMZN_closure")
	}
}

func BenchmarkDecodePlain(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = Decode("stg_upd_frame_info")
	}
}
