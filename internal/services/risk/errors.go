package risk

import "errors"

// Service errors
var (
	// ErrEvaluationFailed is the only error surfaced to callers; it marks a
	// transaction as unscored so the caller can apply its own policy.
	ErrEvaluationFailed = errors.New("risk evaluation failed")

	// Classifier loading errors. Both leave the engine in fallback mode.
	ErrModelNotFound  = errors.New("model artifact not found")
	ErrMalformedModel = errors.New("malformed model artifact")
)
