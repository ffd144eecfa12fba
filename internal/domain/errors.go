package domain

import "errors"

var (
	ErrBlankQuestion = errors.New("question must not be blank")
	ErrWrongPhase    = errors.New("intent not valid in current phase")
	ErrUpstreamLLM   = errors.New("upstream LLM failure")
)
