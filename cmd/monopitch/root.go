package main

import (
	"github.com/spf13/cobra"

	"github.com/RyanBlaney/monopitch/logging"
)

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "monopitch",
		Short: "Monotonic pitch finder",
		Long: `monopitch estimates the pitch of single-voice 16-bit WAV audio with
autocorrelation and names the closest equal-tempered note.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logging.SetLevel(level)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	root.AddCommand(newAnalyzeCmd(), newGenerateCmd(), newNotesCmd())
	return root
}
