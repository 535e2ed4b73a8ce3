package risk

import (
	"time"

	"vigil/internal/models"
)

// FeatureCount is fixed by the trained model's input contract.
const FeatureCount = 21

// FeatureVector is the fixed-order numeric input to the classifier. The
// model was trained against exactly this column order, so the positions
// below are contractual; reordering them silently breaks every prediction.
type FeatureVector [FeatureCount]float64

// Feature positions, matching the training column order.
const (
	featFailedAttempts = iota
	featLongitude
	featTransactionType
	featIPAddress
	featAvgTransactionAmount
	featUnusualAmount
	featDay
	featBankName
	featPhoneNumber
	featMonth
	featUnusualLocation
	featUserID
	featAmount
	featTransactionFrequency
	featNewDevice
	featMerchantCategory
	featTransactionID
	featDeviceID
	featWeekday
	featLatitude
	featHour
)

// Placeholder values for positions the upstream pipeline never wired to
// real signals (merchant category, bank, phone, device/IP fingerprints,
// new-device and unusual-location detection). The model was trained with
// these columns populated, so the constants must stay in place until the
// missing signals exist. Known fidelity gap, kept deliberately.
const (
	placeholderTransactionType  = 1
	placeholderIPAddress        = 1
	placeholderBankName         = 1
	placeholderPhoneNumber      = 9876543210
	placeholderUnusualLocation  = 0
	placeholderUserID           = 101
	placeholderNewDevice        = 0
	placeholderMerchantCategory = 10
	placeholderTransactionID    = 1000
	placeholderDeviceID         = 50
)

// Fallback coordinates (Delhi) substituted when a request carries no
// geolocation, matching what the model saw in training.
const (
	fallbackLatitude  = 28.6139
	fallbackLongitude = 77.2090
)

// BuildFeatures constructs the classifier input for one transaction. Pure
// function of its arguments; now supplies the time-derived fields.
//
// When the address has no history the average amount falls back to the
// transaction's own amount, so UnusualAmount can never fire on a first-ever
// transaction.
func BuildFeatures(req models.TransactionRequest, stats models.HistoricalStats, now time.Time) FeatureVector {
	avgAmount := stats.AvgTransactionAmount
	if avgAmount <= 0 {
		avgAmount = req.Amount
	}

	unusualAmount := 0.0
	if req.Amount > avgAmount*UnusualAmountFactor && avgAmount > UnusualAmountMinAvg {
		unusualAmount = 1.0
	}

	latitude, longitude := req.Latitude, req.Longitude
	if latitude == 0 {
		latitude = fallbackLatitude
	}
	if longitude == 0 {
		longitude = fallbackLongitude
	}

	var v FeatureVector
	v[featFailedAttempts] = float64(stats.FailedAttempts)
	v[featLongitude] = longitude
	v[featTransactionType] = placeholderTransactionType
	v[featIPAddress] = placeholderIPAddress
	v[featAvgTransactionAmount] = avgAmount
	v[featUnusualAmount] = unusualAmount
	v[featDay] = float64(now.Day())
	v[featBankName] = placeholderBankName
	v[featPhoneNumber] = placeholderPhoneNumber
	v[featMonth] = float64(int(now.Month()))
	v[featUnusualLocation] = placeholderUnusualLocation
	v[featUserID] = placeholderUserID
	v[featAmount] = req.Amount
	v[featTransactionFrequency] = float64(stats.TransactionFrequency)
	v[featNewDevice] = placeholderNewDevice
	v[featMerchantCategory] = placeholderMerchantCategory
	v[featTransactionID] = placeholderTransactionID
	v[featDeviceID] = placeholderDeviceID
	v[featWeekday] = float64(mondayWeekday(now))
	v[featLatitude] = latitude
	v[featHour] = float64(now.Hour())
	return v
}

// mondayWeekday maps Go's Sunday=0 weekday onto the Monday=0 encoding the
// model was trained with.
func mondayWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
