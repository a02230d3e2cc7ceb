// Package symbol models GHC linker symbols and their z-encoded components.
//
// A GHC linker symbol has the shape [pkg_]Module_name_suffix, where the
// package id, module and name are z-encoded and the suffix names the
// runtime object the symbol points at (_closure, _info, _con_info, ...).
// z-encoding escapes '_' (as "zu"), so every '_' in a symbol is a
// separator inserted by the compiler.
package symbol

import (
	"errors"
	"strings"
	"sync"

	"github.com/hstools/ghc-demangle/demangle"
)

// ErrNotSymbol indicates a name that does not have GHC linker symbol shape.
var ErrNotSymbol = errors.New("symbol: not a GHC linker symbol")

// Kind identifies the runtime object a symbol refers to, derived from its
// suffix.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindClosure
	KindInfo
	KindConInfo
	KindStaticInfo
	KindEntry
	KindConEntry
	KindSRT
	KindBytes
	KindSlow
	KindFast
	KindStr
	KindTbl
	KindBtm
)

func (k Kind) String() string {
	switch k {
	case KindClosure:
		return "closure"
	case KindInfo:
		return "info table"
	case KindConInfo:
		return "constructor info table"
	case KindStaticInfo:
		return "static info table"
	case KindEntry:
		return "entry code"
	case KindConEntry:
		return "constructor entry code"
	case KindSRT:
		return "static reference table"
	case KindBytes:
		return "string data"
	case KindSlow:
		return "slow entry"
	case KindFast:
		return "fast entry"
	case KindStr:
		return "string"
	case KindTbl:
		return "table"
	case KindBtm:
		return "bitmap"
	default:
		return "unknown"
	}
}

// suffixKinds maps RTS suffixes to kinds. Longest suffixes first so
// "_con_info" is not classified as "_info".
var suffixKinds = []struct {
	suffix string
	kind   Kind
}{
	{"static_info", KindStaticInfo},
	{"con_entry", KindConEntry},
	{"con_info", KindConInfo},
	{"closure", KindClosure},
	{"entry", KindEntry},
	{"bytes", KindBytes},
	{"info", KindInfo},
	{"slow", KindSlow},
	{"fast", KindFast},
	{"srt", KindSRT},
	{"str", KindStr},
	{"tbl", KindTbl},
	{"btm", KindBtm},
}

// Symbol is a parsed GHC linker symbol.
type Symbol struct {
	raw    string
	pkg    string
	module string
	name   string
	suffix string
	kind   Kind

	demangled     string
	demangledOnce sync.Once
}

// Parse splits a linker symbol into its z-encoded components. It returns
// ErrNotSymbol for names that do not fit the [pkg_]Module_name[_suffix]
// shape; callers inspecting arbitrary names should fall back to
// demangle.DecodeSimple.
func Parse(raw string) (*Symbol, error) {
	if raw == "" || !isSymbolWord(raw) {
		return nil, ErrNotSymbol
	}

	s := &Symbol{raw: raw, kind: KindUnknown}

	rest := raw
	for _, sk := range suffixKinds {
		if strings.HasSuffix(rest, "_"+sk.suffix) {
			s.suffix = sk.suffix
			s.kind = sk.kind
			rest = rest[:len(rest)-len(sk.suffix)-1]
			break
		}
	}

	parts := strings.Split(rest, "_")
	for _, p := range parts {
		if p == "" {
			return nil, ErrNotSymbol
		}
	}

	switch len(parts) {
	case 2:
		s.module = parts[0]
		s.name = parts[1]
	case 3:
		s.pkg = parts[0]
		s.module = parts[1]
		s.name = parts[2]
	default:
		return nil, ErrNotSymbol
	}

	// Encoded module names start with an uppercase letter ('Z' included:
	// ":Main" encodes as "ZCMain").
	if s.module[0] < 'A' || s.module[0] > 'Z' {
		return nil, ErrNotSymbol
	}

	return s, nil
}

// Raw returns the symbol as it appeared in the object file.
func (s *Symbol) Raw() string { return s.raw }

// Package returns the z-encoded package id, or "" if absent.
func (s *Symbol) Package() string { return s.pkg }

// Module returns the z-encoded module name.
func (s *Symbol) Module() string { return s.module }

// Name returns the z-encoded identifier.
func (s *Symbol) Name() string { return s.name }

// Suffix returns the RTS suffix without its leading '_', or "" if the
// symbol carries no recognized suffix.
func (s *Symbol) Suffix() string { return s.suffix }

// Kind returns the runtime object kind derived from the suffix.
func (s *Symbol) Kind() Kind { return s.kind }

// DemangledName returns the decoded, qualified name: "Module.name", with a
// "pkg:" prefix when the symbol names its package. Components that fail to
// decode are kept as-is.
func (s *Symbol) DemangledName() string {
	s.demangledOnce.Do(func() {
		qualified := demangle.DecodeSimple(s.module) + "." + demangle.DecodeSimple(s.name)
		if s.pkg != "" {
			qualified = demangle.DecodeSimple(s.pkg) + ":" + qualified
		}
		s.demangled = qualified
	})
	return s.demangled
}

func isSymbolWord(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isWordByte(s[i]) {
			return false
		}
	}
	return true
}

func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' || c == '_'
}
