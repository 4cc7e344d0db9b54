package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/monopitch/algorithms/tonal"
)

func newNotesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notes",
		Short: "Print the reference note table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, ref := range tonal.DefaultNoteTable().References() {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-3s %d %8.2f\n", ref.Class, ref.Octave, ref.Frequency); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
