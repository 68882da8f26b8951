package model

import "errors"

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("midi file not found")
	ErrDecode          = errors.New("not a valid midi file")
	ErrAnalysisFailed  = errors.New("analysis failed")
)
