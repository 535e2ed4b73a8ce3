package risk

import (
	"fmt"
	"math"
	"time"

	"vigil/internal/models"
)

// overlayInput carries everything the hybrid rules may consult for one
// evaluation.
type overlayInput struct {
	req     models.TransactionRequest
	vector  FeatureVector
	lastLoc *models.LastKnownLocation
	now     time.Time
}

// applyOverlay runs the hybrid rules in fixed order on top of the
// classifier verdict. Each rule may escalate the verdict, never soften it,
// so the risk score is monotonically non-decreasing through the chain.
func (s *service) applyOverlay(in overlayInput, verdict *models.RiskVerdict) {
	if s.ruleHighValueAnomaly(in, verdict) {
		s.metrics.RecordRuleHit(RuleHighValueAnomaly)
	}
	if s.ruleImpossibleTravel(in, verdict) {
		s.metrics.RecordRuleHit(RuleImpossibleTravel)
	}
	if s.ruleSuspiciousTime(in, verdict) {
		s.metrics.RecordRuleHit(RuleSuspiciousTime)
	}
}

// ruleHighValueAnomaly flags large transactions that dwarf the address's
// typical amount. Skipped when the classifier already called fraud.
func (s *service) ruleHighValueAnomaly(in overlayInput, verdict *models.RiskVerdict) bool {
	if verdict.IsFraud {
		return false
	}
	if in.vector[featUnusualAmount] != 1 || in.req.Amount <= s.config.HighValueMin {
		return false
	}

	verdict.IsFraud = true
	verdict.Reason = ReasonHighValueAnomaly
	raiseScore(verdict, HighValueAnomalyScore)
	return true
}

// ruleImpossibleTravel compares the request's coordinates against the last
// successful transaction's location. It only runs when both a prior
// location and current coordinates exist. A last-seen timestamp that fails
// to parse is treated as "now", which collapses the elapsed time and fails
// safe toward flagging.
func (s *service) ruleImpossibleTravel(in overlayInput, verdict *models.RiskVerdict) bool {
	if in.lastLoc == nil || in.req.Latitude == 0 || in.req.Longitude == 0 {
		return false
	}

	distanceKm := haversineKm(in.lastLoc.Latitude, in.lastLoc.Longitude, in.req.Latitude, in.req.Longitude)
	prev := parseObservedAt(in.lastLoc.Timestamp, in.now)
	elapsedHours := in.now.Sub(prev).Hours()
	velocity := distanceKm / (elapsedHours + velocityEpsilonHours)

	if distanceKm <= s.config.TravelMinDistanceKm || velocity <= s.config.TravelMinVelocityKmh {
		return false
	}

	verdict.IsFraud = true
	verdict.Reason = fmt.Sprintf("Impossible Travel: %dkm jump in %d mins.",
		int(distanceKm), int(elapsedHours*60))
	raiseScore(verdict, ImpossibleTravelScore)
	return true
}

// ruleSuspiciousTime elevates the score for high-value transactions in the
// late-night window. It never sets IsFraud by itself and only supplies a
// reason when no fraud reason exists yet; this is a risk-elevation signal,
// not a blocking one.
func (s *service) ruleSuspiciousTime(in overlayInput, verdict *models.RiskVerdict) bool {
	hour := in.now.Hour()
	if hour < s.config.NightStartHour || hour > s.config.NightEndHour {
		return false
	}
	if in.req.Amount <= s.config.NightAmountMin {
		return false
	}

	raiseScore(verdict, SuspiciousTimeScore)
	if !verdict.IsFraud {
		verdict.Reason = ReasonSuspiciousTime
	}
	return true
}

// raiseScore lifts the verdict score to at least floor.
func raiseScore(verdict *models.RiskVerdict, floor int) {
	if verdict.RiskScore < floor {
		verdict.RiskScore = floor
	}
}

// haversineKm returns the great-circle distance between two points in
// kilometres.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	rlat1 := lat1 * math.Pi / 180
	rlat2 := lat2 * math.Pi / 180
	dlat := (lat2 - lat1) * math.Pi / 180
	dlon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}

// observedAtFormats are the textual timestamp layouts seen in stored
// transaction rows, most specific first.
var observedAtFormats = []string{
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// parseObservedAt parses a stored last-seen timestamp. Zone-less layouts
// are read as server local time, matching how the rows were written.
// Unparseable values fall back to now rather than propagating a parse
// error.
func parseObservedAt(raw string, now time.Time) time.Time {
	for _, layout := range observedAtFormats {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t
		}
	}
	return now
}
