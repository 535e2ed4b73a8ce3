package models

import (
	"time"
)

// Transaction statuses
const (
	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED"
	StatusFraud   = "FRAUD"
)

// Transaction is the persisted payment record the risk providers aggregate
// over. The engine itself never writes these; the payment-processing caller
// owns persistence.
type Transaction struct {
	ID             uint    `gorm:"primarykey"`
	UserID         uint    `gorm:"index"`
	PaymentAddress string  `gorm:"column:upi_id;index;not null"`
	Amount         float64 `gorm:"not null"`
	Status         string  `gorm:"not null;default:'PENDING'"`
	IsFraud        bool    `gorm:"default:false"`
	RiskScore      int
	Reason         string
	Latitude       float64
	Longitude      float64
	DeviceID       string
	IPAddress      string
	Timestamp      time.Time `gorm:"index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
