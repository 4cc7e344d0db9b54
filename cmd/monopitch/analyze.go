package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/monopitch/config"
	"github.com/RyanBlaney/monopitch/pitchfinder"
	"github.com/RyanBlaney/monopitch/transcode"
)

type analyzeOptions struct {
	configPath string
	workers    int
	method     string
	useFileSR  bool
	downmix    bool
	asJSON     bool
}

func newAnalyzeCmd() *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze <file.wav>",
		Short: "Estimate the pitch of each chunk of a WAV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, opts, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "YAML analysis config")
	flags.IntVar(&opts.workers, "workers", 0, "analyze chunks concurrently (overrides config)")
	flags.StringVar(&opts.method, "method", "", "autocorrelation method: direct or fft (overrides config)")
	flags.BoolVar(&opts.useFileSR, "file-rate", true, "use the WAV sample rate instead of the configured one")
	flags.BoolVar(&opts.downmix, "downmix", false, "average multi-channel input to mono")
	flags.BoolVar(&opts.asJSON, "json", false, "print the report as JSON")
	return cmd
}

func runAnalyze(cmd *cobra.Command, opts *analyzeOptions, path string) error {
	cfg := config.DefaultAnalysisConfig()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = opts.workers
	}
	if cmd.Flags().Changed("method") {
		cfg.Method = opts.method
	}

	buf, err := transcode.NewDecoder(&transcode.DecoderConfig{Downmix: opts.downmix}).DecodeFile(path)
	if err != nil {
		return err
	}
	if opts.useFileSR {
		cfg.SampleRate = buf.SampleRate
	}

	analyzer, err := pitchfinder.NewAnalyzer(cfg)
	if err != nil {
		return err
	}

	report, err := analyzer.Analyze(cmd.Context(), buf)
	if err != nil {
		return err
	}

	if opts.asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return printReport(cmd.OutOrStdout(), report)
}

func printReport(w io.Writer, report *pitchfinder.Report) error {
	for _, c := range report.Chunks {
		var err error
		if c.HasEstimate() {
			_, err = fmt.Fprintf(w, "Estimated freq: %.0f Hz, %s\n", c.Frequency, c.Note)
		} else {
			_, err = fmt.Fprintf(w, "No estimate for chunk %d: %v\n", c.Index, c.Err)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
