package risk

// Evaluation modes
const (
	ModeNormal   = "normal"
	ModeFallback = "fallback"
)

// Default rule thresholds
const (
	DefaultHighValueMin         = 5000.0
	DefaultTravelMinDistanceKm  = 50.0
	DefaultTravelMinVelocityKmh = 800.0
	DefaultNightStartHour       = 1
	DefaultNightEndHour         = 4
	DefaultNightAmountMin       = 1000.0
	DefaultFallbackLimit        = 100000.0
)

// Rule scores. Each rule may only raise the running score to its value,
// never lower it.
const (
	HighValueAnomalyScore = 85
	ImpossibleTravelScore = 95
	SuspiciousTimeScore   = 75
	FallbackFraudScore    = 99
	FallbackCleanScore    = 10
)

// Coarse scores used when the model carries no calibrated probabilities.
const (
	coarseFraudScore = 90
	coarseCleanScore = 10
)

// UnusualAmount fires when amount > UnusualAmountFactor * average and the
// average itself exceeds UnusualAmountMinAvg.
const (
	UnusualAmountFactor = 5.0
	UnusualAmountMinAvg = 100.0
)

// Velocity denominator padding so a zero elapsed time cannot divide by zero.
const velocityEpsilonHours = 0.01

const earthRadiusKm = 6371.0

// Verdict reasons
const (
	ReasonModelFlag        = "ML Model Detected Suspicious Pattern (Based on History)"
	ReasonHighValueAnomaly = "High Value Anomaly: Amount exceeds typical range."
	ReasonSuspiciousTime   = "Suspicious Time: High value transaction at late night."
	ReasonFallbackLimit    = "High Value Limit Exceeded (Fallback)"
)

// Rule names for metrics
const (
	RuleHighValueAnomaly = "high_value_anomaly"
	RuleImpossibleTravel = "impossible_travel"
	RuleSuspiciousTime   = "suspicious_time"
)
