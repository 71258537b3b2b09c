package main

import (
	"fmt"
	"os"

	"cardviz/internal/config"
	"cardviz/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose bool

	logger *zap.Logger
	cfg    config.Config
)

var rootCmd = &cobra.Command{
	Use:   "cardviz",
	Short: "Inspect and compose card-code selections",
	Long: `cardviz renders integer card codes as card images and turns a
clicked selection back into codes.

Codes run 0..53: each suit block of 13 holds 3,4,...,K,A,2 with suits
ordered diamonds, clubs, hearts, spades; 52 is the small joker and 53 the
big joker. [0, 1, 11, 12, 13] is 3♦ 4♦ A♦ 2♦ 3♣.

Run without arguments to start the web UI.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.New(os.Getenv("APP_ENV"), verbose)
		if err != nil {
			return err
		}
		cfg, err = config.LoadFromEnv(logger)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		serveCmd.SetContext(cmd.Context())
		return runServe(serveCmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.AddCommand(serveCmd, decodeCmd, encodeCmd, renderCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
