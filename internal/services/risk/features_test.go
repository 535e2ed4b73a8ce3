package risk

import (
	"testing"
	"time"

	"vigil/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestBuildFeatures_UnusualAmount(t *testing.T) {
	now := time.Date(2025, time.March, 12, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		amount float64
		avg    float64
		want   float64
	}{
		{
			name:   "no history never triggers regardless of amount",
			amount: 500000,
			avg:    0,
			want:   0,
		},
		{
			name:   "amount over five times a meaningful average",
			amount: 600,
			avg:    110,
			want:   1,
		},
		{
			name:   "tiny average is ignored",
			amount: 600,
			avg:    50,
			want:   0,
		},
		{
			name:   "exactly five times the average does not trigger",
			amount: 550,
			avg:    110,
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := models.TransactionRequest{Amount: tt.amount, PaymentAddress: "user@upi"}
			stats := models.HistoricalStats{AvgTransactionAmount: tt.avg}

			v := BuildFeatures(req, stats, now)
			assert.Equal(t, tt.want, v[featUnusualAmount])
		})
	}
}

func TestBuildFeatures_AvgFallsBackToAmount(t *testing.T) {
	now := time.Now()
	req := models.TransactionRequest{Amount: 1234, PaymentAddress: "new@upi"}

	v := BuildFeatures(req, models.HistoricalStats{}, now)

	assert.Equal(t, 1234.0, v[featAvgTransactionAmount])
	assert.Equal(t, 1234.0, v[featAmount])
}

func TestBuildFeatures_GeolocationFallback(t *testing.T) {
	now := time.Now()

	t.Run("zero coordinates use the fallback point", func(t *testing.T) {
		v := BuildFeatures(models.TransactionRequest{Amount: 100}, models.HistoricalStats{}, now)
		assert.Equal(t, fallbackLatitude, v[featLatitude])
		assert.Equal(t, fallbackLongitude, v[featLongitude])
	})

	t.Run("supplied coordinates pass through", func(t *testing.T) {
		req := models.TransactionRequest{Amount: 100, Latitude: 19.0760, Longitude: 72.8777}
		v := BuildFeatures(req, models.HistoricalStats{}, now)
		assert.Equal(t, 19.0760, v[featLatitude])
		assert.Equal(t, 72.8777, v[featLongitude])
	})
}

func TestBuildFeatures_TimeFields(t *testing.T) {
	// 2025-03-12 is a Wednesday; Monday=0 encoding makes that 2.
	now := time.Date(2025, time.March, 12, 3, 0, 0, 0, time.UTC)

	v := BuildFeatures(models.TransactionRequest{Amount: 100}, models.HistoricalStats{}, now)

	assert.Equal(t, 3.0, v[featHour])
	assert.Equal(t, 12.0, v[featDay])
	assert.Equal(t, 3.0, v[featMonth])
	assert.Equal(t, 2.0, v[featWeekday])
}

func TestBuildFeatures_HistoryAggregates(t *testing.T) {
	now := time.Now()
	stats := models.HistoricalStats{
		AvgTransactionAmount: 250.5,
		TransactionFrequency: 17,
		FailedAttempts:       4,
	}

	v := BuildFeatures(models.TransactionRequest{Amount: 300}, stats, now)

	assert.Equal(t, 250.5, v[featAvgTransactionAmount])
	assert.Equal(t, 17.0, v[featTransactionFrequency])
	assert.Equal(t, 4.0, v[featFailedAttempts])
}

func TestMondayWeekday(t *testing.T) {
	monday := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2025, time.March, 16, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, mondayWeekday(monday))
	assert.Equal(t, 6, mondayWeekday(sunday))
}
