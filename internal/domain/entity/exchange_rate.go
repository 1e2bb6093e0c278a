package entity

import (
	"github.com/shopspring/decimal"
)

// RateRecord is a published mid rate found for a requested date
type RateRecord struct {
	Currency      string          `json:"currency"`
	SearchedDate  string          `json:"searched_date"`
	EffectiveDate string          `json:"effective_date"`
	ExchangeRate  decimal.Decimal `json:"exchange_rate"`
}
