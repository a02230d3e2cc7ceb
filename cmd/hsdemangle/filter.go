package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hstools/ghc-demangle/symbol"
)

var filterStrip bool

var filterCmd = &cobra.Command{
	Use:   "filter [file...]",
	Short: "Rewrite GHC symbols inside text",
	Long: `Read text from files (or standard input) and rewrite every
recognizable GHC linker symbol to its demangled form, leaving the rest
of the text untouched. Works like c++filt for Haskell symbols:

  nm a.out | hsdemangle filter
  hsdemangle filter --strip linker.log`,
	RunE: runFilter,
}

func init() {
	filterCmd.Flags().BoolVar(&filterStrip, "strip", false, "drop the RTS suffix from rewritten symbols")
}

func runFilter(cmd *cobra.Command, args []string) error {
	opts := symbol.RewriteOptions{StripSuffix: filterStrip}

	if len(args) == 0 {
		return filterStream(os.Stdin, opts)
	}

	for _, path := range args {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		err = filterStream(f, opts)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

func filterStream(r io.Reader, opts symbol.RewriteOptions) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for sc.Scan() {
		fmt.Fprintln(output, symbol.RewriteWith(sc.Text(), opts))
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}
