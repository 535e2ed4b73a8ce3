package risk

import (
	"context"

	"vigil/internal/models"
)

// Service is the risk engine contract exposed to the payment processor.
// Evaluate is pure: it never moves money, persists transactions, or sends
// notifications. The returned error is only non-nil for unexpected internal
// failures; ordinary data unavailability degrades silently.
type Service interface {
	Evaluate(ctx context.Context, req models.TransactionRequest) (models.RiskVerdict, error)
}

// HistoryProvider supplies behavioural aggregates for a payment address.
// A lookup failure is reported as an error and the engine substitutes
// zero-valued stats; it never fails the evaluation.
type HistoryProvider interface {
	GetHistoricalStats(ctx context.Context, paymentAddress string) (models.HistoricalStats, error)
}

// LastLocationProvider supplies the location and timestamp of the most
// recent successful transaction for a payment address, or nil when no
// prior successful transaction exists.
type LastLocationProvider interface {
	GetLastSuccessfulTransaction(ctx context.Context, paymentAddress string) (*models.LastKnownLocation, error)
}

// Classifier wraps the pre-trained fraud model. A nil Classifier handle
// puts the engine in fallback mode.
type Classifier interface {
	Predict(vector FeatureVector) (Prediction, error)
}
