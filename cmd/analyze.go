package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jsphweid/midiscope/model"
	"github.com/jsphweid/midiscope/summary"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var analyzeJSON bool

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print reports as JSON")
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>...",
	Short: "Analyzes midi files",
	Long:  `Prints a report with counts, duration, format and sound standard for each file`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return analyze(cmd.OutOrStdout(), args, analyzeJSON)
	},
}

func analyze(w io.Writer, paths []string, asJSON bool) error {
	var failed int
	for _, path := range paths {
		info, err := summary.AnalyzeFile(path)
		if err != nil {
			log.WithField("path", path).WithError(err).Error("Could not analyze midi file")
			failed++
			continue
		}
		if asJSON {
			if err := json.NewEncoder(w).Encode(info); err != nil {
				return err
			}
			continue
		}
		printInfo(w, info)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be analyzed", failed, len(paths))
	}
	return nil
}

func printInfo(w io.Writer, info model.MidiFileInfo) {
	fmt.Fprintf(w, "MIDI File: %s\n", info.Path)
	fmt.Fprintf(w, "  Format: %s\n", info.Format)
	fmt.Fprintf(w, "  Tracks: %d\n", info.TrackCount)
	fmt.Fprintf(w, "  Events: %d\n", info.EventCount)
	fmt.Fprintf(w, "  Tempo changes: %d\n", info.TempoEventCount)
	fmt.Fprintf(w, "  Duration: %v\n", info.Duration)
	fmt.Fprintf(w, "  SysEx messages: %d\n", info.SysExCount)
	fmt.Fprintf(w, "  Standard: %s\n", info.Classification)
	if info.IsEmpty {
		fmt.Fprintln(w, "  (empty file)")
	}
}
