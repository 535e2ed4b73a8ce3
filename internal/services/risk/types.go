package risk

import "time"

// Config holds the rule thresholds for the engine. Zero values are replaced
// with the defaults from constants.go in NewService.
type Config struct {
	// R1: amount floor for the high-value anomaly rule.
	HighValueMin float64

	// R2: minimum great-circle distance and implied velocity for the
	// impossible-travel rule.
	TravelMinDistanceKm  float64
	TravelMinVelocityKmh float64

	// R3: late-night window (server local hours, inclusive) and the amount
	// above which a late-night transaction elevates risk.
	NightStartHour int
	NightEndHour   int
	NightAmountMin float64

	// Fallback mode: amount above which a transaction is blocked outright
	// when no classifier is loaded.
	FallbackLimit float64
}

// Prediction is the classifier's output for one feature vector.
// Probability is only meaningful when Calibrated is true; otherwise the
// engine derives a coarse score from Label alone.
type Prediction struct {
	Label       bool
	Probability float64
	Calibrated  bool
}

// MetricsCollector defines the interface for collecting risk engine metrics
type MetricsCollector interface {
	RecordEvaluation(mode string, isFraud bool, score int)
	RecordRuleHit(rule string)
	RecordError(operation, errType string)
	RecordDuration(operation string, d time.Duration)
}
