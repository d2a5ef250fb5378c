package contract

import "errors"

var (
	ErrGateway      = errors.New("tool gateway call failed")
	ErrExtractParse = errors.New("extraction response is not valid JSON")
	ErrAgentTurn    = errors.New("agent turn failed")
	ErrTurn         = errors.New("turn processing failed")
	ErrValidation   = errors.New("validation failed")
)
