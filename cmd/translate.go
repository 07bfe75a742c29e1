package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gnolang/anthem/internal/errors"
	"github.com/gnolang/anthem/internal/output"
	"github.com/gnolang/anthem/internal/verify"
)

var outputFormat string

var translateCmd = &cobra.Command{
	Use:   "translate <program>",
	Short: "Print the completed definitions and integrity constraints of a logic program",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config, err := loadConfig(cmd)
		if err != nil {
			fail("Invalid configuration", err)
		}
		if noSimplify {
			config.Simplify = false
		}

		format, err := output.ParseFormat(outputFormat)
		if err != nil {
			fail("Invalid output format", err)
		}

		program, err := os.ReadFile(args[0])
		if err != nil {
			fail("Failed to read program", errors.NewReadFile(args[0], err))
		}

		pipeline, err := verify.NewPipeline(config, logger)
		if err != nil {
			fail("Failed to initialize translation", err)
		}

		p, err := pipeline.Translate(string(program))
		if err != nil {
			fail("Translation failed", err)
		}
		if err := p.Write(os.Stdout, format); err != nil {
			fail("Failed to write translation", err)
		}
	},
}

func init() {
	translateCmd.Flags().StringVarP(&outputFormat, "output-format", "o", output.FormatHumanReadable.String(), "Output format: human-readable or tptp")
	translateCmd.Flags().BoolVar(&noSimplify, "no-simplify", false, "Do not simplify completed definitions")
}
