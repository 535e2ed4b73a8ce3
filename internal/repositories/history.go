package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vigil/internal/models"

	"gorm.io/gorm"
)

// HistoryRepository implements the risk engine's two history lookups over
// the transactions table. Aggregates are recomputed fresh on every call;
// staleness is traded away for simplicity.
type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	if db == nil {
		panic("db is required")
	}
	return &HistoryRepository{db: db}
}

// GetHistoricalStats aggregates all past transactions for a payment
// address. An address with no history yields zero-valued stats, not an
// error.
func (r *HistoryRepository) GetHistoricalStats(ctx context.Context, paymentAddress string) (models.HistoricalStats, error) {
	var avg float64
	var count, failed int64

	row := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("upi_id = ?", paymentAddress).
		Select("COALESCE(AVG(amount), 0), COUNT(*), COALESCE(SUM(CASE WHEN is_fraud THEN 1 ELSE 0 END), 0)").
		Row()

	if err := row.Scan(&avg, &count, &failed); err != nil {
		return models.HistoricalStats{}, fmt.Errorf("failed to aggregate history: %w", err)
	}

	return models.HistoricalStats{
		AvgTransactionAmount: avg,
		TransactionFrequency: int(count),
		FailedAttempts:       int(failed),
	}, nil
}

// GetLastSuccessfulTransaction returns the location and timestamp of the
// most recent successful transaction for a payment address, or nil when
// none exists.
func (r *HistoryRepository) GetLastSuccessfulTransaction(ctx context.Context, paymentAddress string) (*models.LastKnownLocation, error) {
	var tx models.Transaction
	err := r.db.WithContext(ctx).
		Where("upi_id = ? AND status = ?", paymentAddress, models.StatusSuccess).
		Order("timestamp DESC").
		First(&tx).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last transaction: %w", err)
	}

	return &models.LastKnownLocation{
		Latitude:  tx.Latitude,
		Longitude: tx.Longitude,
		Timestamp: timestampOrNow(tx.Timestamp).Format(LocationTimestampLayout),
	}, nil
}

// LocationTimestampLayout is how stored timestamps are rendered for the
// velocity check's tolerant parser.
const LocationTimestampLayout = "2006-01-02 15:04:05"

// timestampOrNow guards against zero Timestamp columns on legacy rows.
func timestampOrNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}
