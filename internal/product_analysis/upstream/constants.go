package upstream

import "time"

const (
	// DefaultTimeout bounds every call to the AI service
	DefaultTimeout = 30 * time.Second

	PathGenerateQuestions = "/generate-questions"
	PathTransparencyScore = "/transparency-score"

	// maxErrorBody caps how much of an upstream error body is read
	maxErrorBody = 64 << 10
)
