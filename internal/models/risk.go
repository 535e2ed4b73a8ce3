package models

// TransactionRequest is a proposed payment submitted for risk evaluation.
// Geolocation and device metadata are optional; zero coordinates mean
// "not supplied".
type TransactionRequest struct {
	Amount         float64 `json:"amount"`
	PaymentAddress string  `json:"payment_address"`
	Latitude       float64 `json:"latitude,omitempty"`
	Longitude      float64 `json:"longitude,omitempty"`
	DeviceID       string  `json:"device_id,omitempty"`
}

// HistoricalStats are behavioural aggregates over all past transactions
// for one payment address. Recomputed fresh on every evaluation.
type HistoricalStats struct {
	AvgTransactionAmount float64
	TransactionFrequency int
	FailedAttempts       int
}

// LastKnownLocation is where the most recent successful transaction for a
// payment address was observed. Timestamp is kept as the raw stored string;
// the velocity check owns the tolerant parsing.
type LastKnownLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timestamp string  `json:"timestamp"`
}

// RiskVerdict is the outcome of one risk evaluation. Reason is empty unless
// a rule or the classifier flagged the transaction; IsFraud implies a
// non-empty Reason.
type RiskVerdict struct {
	IsFraud   bool   `json:"is_fraud"`
	RiskScore int    `json:"risk_score"`
	Reason    string `json:"reason,omitempty"`
}
