package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/bep/debounce"
	"github.com/google/uuid"
	"github.com/jsphweid/midiscope/constants"
	"github.com/jsphweid/midiscope/db"
	"github.com/jsphweid/midiscope/file"
	"github.com/jsphweid/midiscope/model"
	"github.com/jsphweid/midiscope/summary"
	"github.com/jsphweid/midiscope/util"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var scanStore bool

func init() {
	scanCmd.Flags().BoolVar(&scanStore, "store", false, "also store reports in DynamoDB")
	rootCmd.AddCommand(scanCmd)
}

var scanCmd = &cobra.Command{
	Use:   "scan [dir] [max]",
	Short: "Analyzes every midi file under a directory",
	Long: `Analyzes every midi file under dir (MEDIA_PATH by default) and writes a
scan report into REPORT_DIR. A max of 0 means all files.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var root string
		if len(args) > 0 {
			root = args[0]
		} else {
			dir, err := constants.GetMediaDir()
			if err != nil {
				return err
			}
			root = dir
		}

		var maxNum int
		if len(args) == 2 {
			arg, err := strconv.Atoi(args[1])
			if err != nil {
				return err
			}
			maxNum = arg
		}

		report, path, err := Scan(root, maxNum)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d entries to %s\n", len(report.Entries), path)

		if scanStore {
			return storeScan(report)
		}
		return nil
	},
}

// Scan analyzes the midi files under root and saves the scan report,
// returning it along with the path it was written to.
func Scan(root string, maxNum int) (model.ScanReport, string, error) {
	paths, err := util.GatherAllMidiPaths(root, maxNum)
	if err != nil {
		return model.ScanReport{}, "", err
	}

	report := model.ScanReport{
		ID:    uuid.New().String(),
		Root:  root,
		Files: file.CreateFileNumMap(root, paths),
	}

	progress := debounce.New(500 * time.Millisecond)
	for _, num := range util.GetKeys(report.Files) {
		path, _ := file.Resolve(root, report.Files, num)
		entry := model.ScanEntry{FileNum: num}
		info, err := summary.AnalyzeFile(path)
		if err != nil {
			log.WithField("path", path).WithError(err).Warn("Skipping midi file")
			entry.Error = err.Error()
		} else {
			entry.Info = &info
		}
		report.Entries = append(report.Entries, entry)

		done := len(report.Entries)
		progress(func() {
			log.Infof("Processed %v of %v midi files", done, len(paths))
		})
	}

	dir := constants.GetReportDir()
	if err := util.EnsureDir(dir); err != nil {
		return model.ScanReport{}, "", err
	}
	out := filepath.Join(dir, "scan-"+report.ID+".json")
	if err := util.WriteJSON(out, report); err != nil {
		return model.ScanReport{}, "", err
	}
	log.WithFields(log.Fields{"files": len(paths), "report": out}).Info("Scan finished")
	return report, out, nil
}

func storeScan(report model.ScanReport) error {
	store, err := db.Connect()
	if err != nil {
		return err
	}
	var infos []model.MidiFileInfo
	for _, e := range report.Entries {
		if e.Info != nil {
			infos = append(infos, *e.Info)
		}
	}
	if err := store.PutReports(infos); err != nil {
		return err
	}
	log.WithField("reports", len(infos)).Info("Stored reports")
	return nil
}
