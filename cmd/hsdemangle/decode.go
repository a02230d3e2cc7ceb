package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hstools/ghc-demangle/demangle"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [name...]",
	Short: "Decode z-encoded names",
	Long: `Decode z-encoded names given as arguments, or read names line by
line from standard input when no arguments are given.

Decoding stops at the first malformed name with a non-zero exit status.`,
	RunE: runDecode,
}

func runDecode(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		for _, name := range args {
			decoded, err := demangle.Decode(name)
			if err != nil {
				return err
			}
			fmt.Fprintln(output, decoded)
		}
		return nil
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("stdin is a terminal; pass names as arguments or run 'hsdemangle interactive'")
	}

	return decodeLines(os.Stdin)
}

// decodeLines decodes stdin one line at a time. The newline is part of the
// decoded line; it passes through the decoder untouched.
func decodeLines(r io.Reader) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			decoded, derr := demangle.Decode(line)
			if derr != nil {
				return derr
			}
			fmt.Fprint(output, decoded)
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
	}
}
