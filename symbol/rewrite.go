package symbol

import (
	"strings"

	"go.uber.org/zap"

	"github.com/hstools/ghc-demangle/demangle"
)

// RewriteOptions configures Rewrite.
type RewriteOptions struct {
	// StripSuffix drops the RTS suffix from rewritten symbols instead of
	// carrying it over.
	StripSuffix bool
}

// Rewrite replaces every recognizable GHC linker symbol in a line of text
// with its demangled form, leaving everything else untouched. Useful for
// piping nm or objdump output through, in the manner of c++filt.
func Rewrite(line string) string {
	return RewriteWith(line, RewriteOptions{})
}

// RewriteWith is Rewrite with explicit options.
func RewriteWith(line string, opts RewriteOptions) string {
	var out strings.Builder
	out.Grow(len(line))

	for i := 0; i < len(line); {
		if !isWordByte(line[i]) {
			out.WriteByte(line[i])
			i++
			continue
		}

		start := i
		for i < len(line) && isWordByte(line[i]) {
			i++
		}
		out.WriteString(rewriteWord(line[start:i], opts))
	}

	return out.String()
}

// rewriteWord demangles a single word if it looks like a GHC symbol. Words
// that merely contain 'z' or 'Z' are left alone: decoding them blind would
// mangle ordinary text ("size" is not an escape sequence).
func rewriteWord(word string, opts RewriteOptions) string {
	if !strings.Contains(word, "_") || !demangle.IsEncoded(word) {
		return word
	}

	sym, err := Parse(word)
	if err != nil {
		Logger().Debug("skipping candidate word",
			zap.String("word", word),
			zap.Error(err))
		return word
	}

	demangled := sym.DemangledName()
	if !opts.StripSuffix && sym.Suffix() != "" {
		demangled += "_" + sym.Suffix()
	}
	return demangled
}
