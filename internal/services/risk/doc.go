/*
Package risk provides real-time fraud scoring for proposed payments.

An evaluation combines three signals into one verdict:
- behavioural history for the payment address (average amount, frequency,
  failed attempts), read fresh on every call
- a pre-trained binary classifier over a fixed 21-feature vector
- a small ordered overlay of hybrid rules (high-value anomaly, impossible
  travel, suspicious time window) that can only escalate the verdict

Usage:

	classifier, err := risk.LoadClassifier(modelPath)
	if err != nil {
	    log.Printf("model unavailable: %v", err) // engine degrades, not fatal
	}

	svc := risk.NewService(historyRepo, historyRepo, classifier, risk.Config{}, nil)

	verdict, err := svc.Evaluate(ctx, models.TransactionRequest{
	    Amount:         2500,
	    PaymentAddress: "alice@upi",
	    Latitude:       28.61,
	    Longitude:      77.20,
	})

The verdict carries a fraud flag, a 0-100 risk score and, when flagged, a
human-readable reason. Scores only ever rise as the rule overlay runs.

Degraded behaviour:

When no classifier artifact is loaded the engine applies a single coarse
amount limit instead of the full pipeline. History or location lookups that
fail are absorbed as empty data. Evaluate only returns an error for
unexpected internal failures; such a transaction is unscored and the caller
applies its own policy.

Concurrency:

Evaluations are independent and stateless beyond the read-only lookups; a
single Service is safe for concurrent use. The classifier handle is loaded
once at startup and never mutated.
*/
package risk
