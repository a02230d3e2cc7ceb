package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hstools/ghc-demangle/symbol"
)

var (
	outputFile string
	verbose    bool
	output     io.Writer
)

var rootCmd = &cobra.Command{
	Use:   "hsdemangle",
	Short: "GHC symbol name demangler",
	Long: `hsdemangle decodes symbol names produced by the GHC Haskell
compiler's z-encoding back into readable form.

It can decode individual names, act as a line-oriented decoder in a
pipe, or rewrite symbols inside arbitrary text such as nm or objdump
output, in the manner of c++filt.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if outputFile != "" {
			f, err := os.Create(outputFile)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			output = f
		} else {
			output = os.Stdout
		}

		if verbose {
			logger, err := zap.NewDevelopment()
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			symbol.SetLogger(logger)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if f, ok := output.(*os.File); ok && f != os.Stdout {
			f.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "write output to file instead of stdout")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log skipped symbol candidates")

	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(filterCmd)
	rootCmd.AddCommand(interactiveCmd)
}
