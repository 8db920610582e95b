package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product describes one catalog entry.
type Product struct {
	ID          int64
	DisplayID   int64
	Name        string
	Image       string
	Category    string
	Description string
	NewPrice    decimal.Decimal
	OldPrice    decimal.Decimal
	Date        time.Time
	Available   bool
}
