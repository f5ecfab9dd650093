package domain

import "errors"

var (
	ErrQuestionGeneration = errors.New("question generation failed")
	ErrRenderFailed       = errors.New("report rendering failed")
)
