package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/midiscope/constants"
	"github.com/jsphweid/midiscope/db"
	"github.com/jsphweid/midiscope/model"
	"github.com/jsphweid/midiscope/summary"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type reportStore interface {
	PutReports(infos []model.MidiFileInfo) error
	GetReport(path string) (model.MidiFileInfo, bool, error)
}

// nil when the server runs without --store
var store reportStore

var maxUploadSize int64 = constants.MaxUploadSize

var serveStore bool

func init() {
	serveCmd.Flags().BoolVar(&serveStore, "store", false, "keep reports in DynamoDB")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the analyzer over HTTP",
	Long:  `Serves POST /analyze (body is a midi file) and GET /reports/{name} on PORT`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if serveStore {
			if err := LoadServeFiles(); err != nil {
				return err
			}
		}
		addr := ":" + constants.GetPort()
		log.WithField("addr", addr).Info("Listening")
		return http.ListenAndServe(addr, NewRouter())
	},
}

// LoadServeFiles connects the DynamoDB report store.
func LoadServeFiles() error {
	s, err := db.Connect()
	if err != nil {
		return err
	}
	store = s
	return nil
}

func NewRouter() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/analyze", HandleAnalyze).Methods("POST")
	router.HandleFunc("/reports/{name}", HandleGetReport).Methods("GET")
	return cors.Default().Handler(router)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("Could not write response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		name = "upload.mid"
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadSize))
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("midi file is larger than %d bytes", tooLarge.Limit))
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, "could not read request body")
		return
	}

	info, err := summary.AnalyzeReader(name, bytes.NewReader(data))
	switch {
	case errors.Is(err, model.ErrDecode), errors.Is(err, model.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		log.WithField("name", name).WithError(err).Error("Analysis failed")
		writeError(w, http.StatusInternalServerError, model.ErrAnalysisFailed.Error())
		return
	}

	if store != nil {
		if err := store.PutReports([]model.MidiFileInfo{info}); err != nil {
			log.WithField("name", name).WithError(err).Warn("Could not store report")
		}
	}
	writeJSON(w, http.StatusOK, model.AnalyzeResponse{ID: uuid.New().String(), Info: info})
}

func HandleGetReport(w http.ResponseWriter, r *http.Request) {
	if store == nil {
		writeError(w, http.StatusServiceUnavailable, "report storage is not enabled")
		return
	}

	name := mux.Vars(r)["name"]
	info, ok, err := store.GetReport(name)
	if err != nil {
		log.WithField("name", name).WithError(err).Error("Could not load report")
		writeError(w, http.StatusInternalServerError, "could not load report")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "no report for "+name)
		return
	}
	writeJSON(w, http.StatusOK, info)
}
