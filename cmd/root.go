package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gnolang/anthem/internal/verify"
)

var (
	cfgFile     string
	timeout     time.Duration
	verbose     bool
	colorChoice string

	logger *zap.Logger
)

var errorStyle = color.New(color.FgRed, color.Bold)

var rootCmd = &cobra.Command{
	Use:   "anthem",
	Short: "anthem - translate logic programs into first-order logic and verify them",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = newLogger(verbose)
		return err
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Configuration file (default "+verify.DefaultConfigPath+")")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Abort after this duration (0 disables)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&colorChoice, "color", "", "Colored output: auto, always or never")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(translateCmd)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return config.Build()
}

// loadConfig reads the configuration file and applies the global flags.
func loadConfig(cmd *cobra.Command) (verify.Config, error) {
	config, err := verify.LoadConfig(cfgFile)
	if err != nil {
		return config, err
	}

	if cmd.Flags().Changed("color") {
		choice, err := verify.ParseColorChoice(colorChoice)
		if err != nil {
			return config, err
		}
		config.Color = choice
	}

	switch config.Color {
	case verify.ColorAlways:
		color.NoColor = false
	case verify.ColorNever:
		color.NoColor = true
	}
	return config, nil
}

// fail reports err on standard error and exits with code 1.
func fail(msg string, err error) {
	logger.Error(msg, zap.Error(err))
	fmt.Fprintf(os.Stderr, "%s%v\n", errorStyle.Sprint("error: "), err)
	os.Exit(1)
}
