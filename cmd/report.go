package cmd

import (
	"fmt"
	"io"

	"github.com/jsphweid/midiscope/model"
	"github.com/jsphweid/midiscope/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report <scan-file>",
	Short: "Summarizes a scan",
	Long:  `Summarizes a scan report written by the scan command`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scan, err := util.ReadJSON[model.ScanReport](args[0])
		if err != nil {
			return err
		}
		report(cmd.OutOrStdout(), summarizeScan(scan))
		return nil
	},
}

type scanSummary struct {
	numFiles         int
	numFailed        int
	numEmpty         int
	eventCounts      []int
	sysexCounts      []int
	byClassification map[model.Classification]int
	byFormat         map[string]int
}

func summarizeScan(scan model.ScanReport) scanSummary {
	s := scanSummary{
		numFiles:         len(scan.Entries),
		byClassification: make(map[model.Classification]int),
		byFormat:         make(map[string]int),
	}
	for _, e := range scan.Entries {
		if e.Info == nil {
			s.numFailed += 1
			continue
		}
		if e.Info.IsEmpty {
			s.numEmpty += 1
		}
		s.eventCounts = append(s.eventCounts, e.Info.EventCount)
		s.sysexCounts = append(s.sysexCounts, e.Info.SysExCount)
		s.byClassification[e.Info.Classification] += 1
		s.byFormat[e.Info.Format.String()] += 1
	}
	return s
}

func report(w io.Writer, s scanSummary) {
	fmt.Fprintf(w, "files: %v\n", s.numFiles)
	fmt.Fprintf(w, "failed: %v\n", s.numFailed)
	fmt.Fprintf(w, "empty: %v\n", s.numEmpty)
	fmt.Fprintf(w, "events: %v\n", util.Sum(s.eventCounts))
	fmt.Fprintf(w, "sysex messages: %v\n", util.Sum(s.sysexCounts))

	fmt.Fprintln(w, "standards:")
	for _, c := range util.GetKeys(s.byClassification) {
		fmt.Fprintf(w, "  %v: %v\n", c, s.byClassification[c])
	}
	fmt.Fprintln(w, "formats:")
	for _, f := range util.GetKeys(s.byFormat) {
		fmt.Fprintf(w, "  %v: %v\n", f, s.byFormat[f])
	}
}
