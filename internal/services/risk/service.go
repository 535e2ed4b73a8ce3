package risk

import (
	"context"
	"fmt"
	"log"
	"time"

	"vigil/internal/models"

	"github.com/google/uuid"
)

type service struct {
	history      HistoryProvider
	lastLocation LastLocationProvider
	classifier   Classifier
	config       Config
	metrics      MetricsCollector
	now          func() time.Time
}

// NewService creates a new risk engine. classifier may be nil, in which
// case every evaluation takes the coarse fallback path.
func NewService(
	history HistoryProvider,
	lastLocation LastLocationProvider,
	classifier Classifier,
	config Config,
	metrics MetricsCollector,
) Service {
	if history == nil {
		panic("history provider is required")
	}
	if lastLocation == nil {
		panic("last location provider is required")
	}

	// Set default configuration values if not provided
	if config.HighValueMin == 0 {
		config.HighValueMin = DefaultHighValueMin
	}
	if config.TravelMinDistanceKm == 0 {
		config.TravelMinDistanceKm = DefaultTravelMinDistanceKm
	}
	if config.TravelMinVelocityKmh == 0 {
		config.TravelMinVelocityKmh = DefaultTravelMinVelocityKmh
	}
	if config.NightStartHour == 0 {
		config.NightStartHour = DefaultNightStartHour
	}
	if config.NightEndHour == 0 {
		config.NightEndHour = DefaultNightEndHour
	}
	if config.NightAmountMin == 0 {
		config.NightAmountMin = DefaultNightAmountMin
	}
	if config.FallbackLimit == 0 {
		config.FallbackLimit = DefaultFallbackLimit
	}

	// Metrics is optional, create no-op collector if nil
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}

	if classifier == nil {
		log.Println("no classifier loaded, risk engine running in fallback mode")
	}

	return &service{
		history:      history,
		lastLocation: lastLocation,
		classifier:   classifier,
		config:       config,
		metrics:      metrics,
		now:          time.Now,
	}
}

// Evaluate scores one proposed transaction. Lookup failures degrade to
// empty history, classifier failures degrade to a neutral signal; the only
// error returned wraps ErrEvaluationFailed for failures outside those
// recovery paths.
func (s *service) Evaluate(ctx context.Context, req models.TransactionRequest) (verdict models.RiskVerdict, err error) {
	start := s.now()
	evalID := uuid.NewString()

	defer func() {
		if r := recover(); r != nil {
			s.metrics.RecordError("evaluate", "internal")
			verdict = models.RiskVerdict{}
			err = fmt.Errorf("%w: %v", ErrEvaluationFailed, r)
		}
		s.metrics.RecordDuration("evaluate", time.Since(start))
	}()

	// Zero or negative amounts carry no risk signal.
	if req.Amount <= 0 {
		return models.RiskVerdict{}, nil
	}

	if s.classifier == nil {
		verdict = s.fallbackVerdict(req.Amount)
		s.logVerdict(evalID, req, verdict)
		s.metrics.RecordEvaluation(ModeFallback, verdict.IsFraud, verdict.RiskScore)
		return verdict, nil
	}

	now := s.now()

	stats, statsErr := s.history.GetHistoricalStats(ctx, req.PaymentAddress)
	if statsErr != nil {
		s.metrics.RecordError("historical_stats", "data_unavailable")
		log.Printf("history lookup failed for %s, using empty stats: %v", req.PaymentAddress, statsErr)
		stats = models.HistoricalStats{}
	}

	vector := BuildFeatures(req, stats, now)
	verdict = s.classify(vector)

	lastLoc, locErr := s.lastLocation.GetLastSuccessfulTransaction(ctx, req.PaymentAddress)
	if locErr != nil {
		s.metrics.RecordError("last_location", "data_unavailable")
		log.Printf("last location lookup failed for %s: %v", req.PaymentAddress, locErr)
		lastLoc = nil
	}

	s.applyOverlay(overlayInput{req: req, vector: vector, lastLoc: lastLoc, now: now}, &verdict)
	clampScore(&verdict)

	s.logVerdict(evalID, req, verdict)
	s.metrics.RecordEvaluation(ModeNormal, verdict.IsFraud, verdict.RiskScore)
	return verdict, nil
}

// classify turns the model prediction into the initial verdict the overlay
// escalates from. An inference failure is no signal: neutral low score,
// not fraud, so the rules still get their say.
func (s *service) classify(vector FeatureVector) models.RiskVerdict {
	pred, err := s.classifier.Predict(vector)
	if err != nil {
		s.metrics.RecordError("classifier", "inference_failure")
		log.Printf("prediction error: %v", err)
		return models.RiskVerdict{}
	}

	verdict := models.RiskVerdict{IsFraud: pred.Label}
	if pred.Calibrated {
		verdict.RiskScore = int(pred.Probability * 100)
	} else if pred.Label {
		verdict.RiskScore = coarseFraudScore
	} else {
		verdict.RiskScore = coarseCleanScore
	}
	if verdict.IsFraud {
		verdict.Reason = ReasonModelFlag
	}
	return verdict
}

// fallbackVerdict is the degraded path when no classifier is loaded: a
// single coarse amount threshold, no history lookup, no overlay rules.
func (s *service) fallbackVerdict(amount float64) models.RiskVerdict {
	if amount > s.config.FallbackLimit {
		return models.RiskVerdict{
			IsFraud:   true,
			RiskScore: FallbackFraudScore,
			Reason:    ReasonFallbackLimit,
		}
	}
	return models.RiskVerdict{RiskScore: FallbackCleanScore}
}

func (s *service) logVerdict(evalID string, req models.TransactionRequest, verdict models.RiskVerdict) {
	log.Printf("evaluation %s: %s | %.2f | fraud=%t | risk=%d",
		evalID, req.PaymentAddress, req.Amount, verdict.IsFraud, verdict.RiskScore)
}

func clampScore(verdict *models.RiskVerdict) {
	if verdict.RiskScore < 0 {
		verdict.RiskScore = 0
	}
	if verdict.RiskScore > 100 {
		verdict.RiskScore = 100
	}
}
