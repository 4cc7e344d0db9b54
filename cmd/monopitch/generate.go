package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/monopitch/logging"
	"github.com/RyanBlaney/monopitch/synth"
	"github.com/RyanBlaney/monopitch/transcode"
)

func newGenerateCmd() *cobra.Command {
	var (
		out        string
		duration   time.Duration
		sampleRate int
		freqs      []float64
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a stepped sine sweep as 16-bit mono WAV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(freqs) == 0 {
				freqs = synth.DefaultSweepFrequencies
			}
			n, err := synth.SweepSamples(sampleRate, duration.Seconds())
			if err != nil {
				return err
			}

			buf := &transcode.SampleBuffer{
				Samples:    synth.Sweep(freqs, sampleRate, n),
				SampleRate: sampleRate,
			}
			if err := transcode.WriteWAV(out, buf); err != nil {
				return err
			}

			logging.Info("Sweep written", logging.Fields{
				"file":     out,
				"steps":    len(freqs),
				"samples":  n,
				"duration": buf.Duration().String(),
			})
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d samples at %d Hz)\n", out, n, sampleRate)
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&out, "out", "o", "sine.wav", "output WAV file")
	flags.DurationVar(&duration, "duration", 20*time.Second, "total length of the sweep")
	flags.IntVar(&sampleRate, "sample-rate", 44100, "sample rate in Hz")
	flags.Float64SliceVar(&freqs, "freq", nil, "sweep frequencies in Hz (repeatable); defaults to the built-in sweep")
	return cmd
}
