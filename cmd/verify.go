package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/anthem/internal/problem"
	"github.com/gnolang/anthem/internal/verify"
)

var (
	direction  string
	noSimplify bool
	proverPath string
	timeLimit  int
	progress   bool
	watch      bool
)

var verifyCmd = &cobra.Command{
	Use:   "verify <program> <specification>",
	Short: "Verify a logic program against a specification",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		config, err := verifyConfig(cmd)
		if err != nil {
			fail("Invalid configuration", err)
		}

		pipeline, err := verify.NewPipeline(config, logger,
			verify.WithReporter(newTerminalReporter(os.Stdout, progress)))
		if err != nil {
			fail("Failed to initialize verification", err)
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()
		if timeout > 0 {
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		if watch {
			runWatch(ctx, pipeline, args[0], args[1], config.ProofDirection())
			return
		}

		status, err := pipeline.VerifyFiles(ctx, args[0], args[1], config.ProofDirection())
		if err != nil {
			fail("Verification failed", err)
		}
		printStatus(status)
		if status != problem.Proven {
			os.Exit(1)
		}
	},
}

func init() {
	verifyCmd.Flags().StringVarP(&direction, "direction", "d", "", "Proof direction: forward, backward or both")
	verifyCmd.Flags().BoolVar(&noSimplify, "no-simplify", false, "Do not simplify completed definitions")
	verifyCmd.Flags().StringVar(&proverPath, "prover", "", "Path of the vampire executable")
	verifyCmd.Flags().IntVar(&timeLimit, "time-limit", 0, "Prover time limit per statement in seconds")
	verifyCmd.Flags().BoolVar(&progress, "progress", false, "Show a progress bar instead of every statement")
	verifyCmd.Flags().BoolVarP(&watch, "watch", "w", false, "Verify again whenever an input file changes")
}

// verifyConfig is the configuration file overridden by the verify flags.
func verifyConfig(cmd *cobra.Command) (verify.Config, error) {
	config, err := loadConfig(cmd)
	if err != nil {
		return config, err
	}

	if cmd.Flags().Changed("direction") {
		config.Direction = direction
	}
	if noSimplify {
		config.Simplify = false
	}
	if proverPath != "" {
		config.Prover.Command = proverPath
	}
	if cmd.Flags().Changed("time-limit") {
		config.Prover.TimeLimit = timeLimit
	}
	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

func runWatch(ctx context.Context, pipeline *verify.Pipeline, programPath, specificationPath string, d problem.ProofDirection) {
	watcher, err := verify.NewWatcher([]string{programPath, specificationPath}, func(ctx context.Context) {
		status, err := pipeline.VerifyFiles(ctx, programPath, specificationPath, d)
		if err != nil {
			logger.Error("Verification failed", zap.Error(err))
			fmt.Fprintf(os.Stderr, "%s%v\n", errorStyle.Sprint("error: "), err)
			return
		}
		printStatus(status)
	}, logger)
	if err != nil {
		fail("Failed to watch files", err)
	}

	fmt.Printf("watching %s and %s\n", programPath, specificationPath)
	if err := watcher.Watch(ctx); err != nil {
		fail("Failed to watch files", err)
	}
}

func printStatus(status problem.ProofStatus) {
	style := provenStyle
	if status != problem.Proven {
		style = failedStyle
	}
	fmt.Println(style.Sprintf("verification %s", status))
}
