package models

import (
	"time"

	"github.com/google/uuid"
)

// Income transaction_type enums.
const (
	TransactionProjectIncome    = "project_income"
	TransactionCityContribution = "city_contribution"
	TransactionPlatformFee      = "platform_fee"
)

// IncomeTransaction is an append-only record of one recipient's cut of a
// distribution event. UserID is nil for city_contribution and platform_fee
// rows.
type IncomeTransaction struct {
	ID              uuid.UUID  `json:"id"`
	ProjectID       uuid.UUID  `json:"project_id"`
	UserID          *uuid.UUID `json:"user_id,omitempty"`
	Amount          float64    `json:"amount"`
	TransactionType string     `json:"transaction_type"`
	Description     string     `json:"description"`
	CreatedAt       time.Time  `json:"created_at"`
}
