package cmd

import (
	"github.com/jsphweid/midiscope/constants"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "midiscope",
	Short: "Finds out which sound standard a MIDI file was made for",
	Long: `midiscope reads Standard MIDI Files and reports their tracks, events, duration
and the sound standard (GM, GM2, Roland GS, Yamaha XG) their SysEx messages target.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := log.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		log.SetLevel(level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", constants.GetLogLevel(), "log level (debug, info, warn, error)")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
