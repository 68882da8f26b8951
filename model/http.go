package model

type AnalyzeResponse struct {
	ID   string       `json:"id"`
	Info MidiFileInfo `json:"info"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
