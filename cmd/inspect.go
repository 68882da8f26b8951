package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/jsphweid/midiscope/detect"
	"github.com/jsphweid/midiscope/midi"
	"github.com/jsphweid/midiscope/model"
	"github.com/jsphweid/midiscope/signature"
	"github.com/jsphweid/midiscope/sysex"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Lists the SysEx messages of a midi file",
	Long:  `Lists every reassembled SysEx message of a midi file and the signatures it matches`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspect(cmd.OutOrStdout(), args[0])
	},
}

func inspect(w io.Writer, path string) error {
	s, err := midi.ReadMidiFile(path)
	if err != nil {
		return err
	}
	events := model.Flatten(midi.Tracks(s))

	var flags model.DetectionFlags
	for i, payload := range sysex.Collect(events) {
		flags = detect.Observe(flags, payload)
		hits := signature.Match(payload)
		if len(hits) == 0 {
			hits = []string{"-"}
		}
		fmt.Fprintf(w, "%4d: % X\n      %s\n", i, payload, strings.Join(hits, ", "))
	}
	fmt.Fprintf(w, "flags: %+v\n", flags)
	fmt.Fprintf(w, "standard: %s\n", detect.Classify(flags))
	return nil
}
