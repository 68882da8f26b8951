package cmd

import (
	"fmt"
	"sync"
	"time"

	"github.com/jsphweid/midiscope/model"
	"github.com/jsphweid/midiscope/summary"
	"github.com/spf13/cobra"
	gomidi "gitlab.com/gomidi/midi/v2"
)

var (
	listenPort   int
	listenWindow time.Duration
)

func init() {
	listenCmd.Flags().IntVar(&listenPort, "port", 0, "midi input port number")
	listenCmd.Flags().DurationVar(&listenWindow, "for", 30*time.Second, "how long to capture")
	rootCmd.AddCommand(listenCmd)
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Captures a live midi input and analyzes it",
	Long: `Records everything arriving on a midi input port for a while, then analyzes
the captured messages as if they were one track. Needs a binary built with
-tags rtmidi.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := listen(listenPort, listenWindow)
		if err != nil {
			return err
		}
		printInfo(cmd.OutOrStdout(), info)
		return nil
	},
}

func listen(portNum int, window time.Duration) (model.MidiFileInfo, error) {
	defer gomidi.CloseDriver()
	in, err := gomidi.InPort(portNum)
	if err != nil {
		return model.MidiFileInfo{}, fmt.Errorf("can't find midi input %d: %w", portNum, err)
	}

	var mu sync.Mutex
	events := []model.Event{}

	stop, err := gomidi.ListenTo(in, func(msg gomidi.Message, timestampms int32) {
		var bt []byte
		evt := model.Event{Kind: model.OtherEvent}
		if msg.GetSysEx(&bt) {
			// the driver delivers whole messages
			evt = model.Event{Kind: model.SysExEvent, Data: append([]byte(nil), bt...), Completed: true}
		}
		mu.Lock()
		events = append(events, evt)
		mu.Unlock()
	}, gomidi.UseSysEx())
	if err != nil {
		return model.MidiFileInfo{}, err
	}

	time.Sleep(window)
	stop()

	mu.Lock()
	defer mu.Unlock()
	return summary.Analyze(in.String(), []model.TrackChunk{{Events: events}}, model.FixedDuration(window), model.SingleTrack)
}
