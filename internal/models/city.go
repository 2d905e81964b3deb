package models

import (
	"time"

	"github.com/google/uuid"
)

// City project status enums.
const (
	CityProjectStatusProposed  = "proposed"
	CityProjectStatusApproved  = "approved"
	CityProjectStatusRejected  = "rejected"
	CityProjectStatusCompleted = "completed"
)

// CityFund is a location-keyed running balance of city-development
// contributions. AvailableAmount = TotalAmount - AllocatedAmount, maintained
// by the writers.
type CityFund struct {
	ID              uuid.UUID `json:"id"`
	Location        string    `json:"location"`
	TotalAmount     float64   `json:"total_amount"`
	AllocatedAmount float64   `json:"allocated_amount"`
	AvailableAmount float64   `json:"available_amount"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CityProject is a proposal for spending a fund, decided by community votes.
// VotesFor/VotesAgainst are derived counters recounted from the votes table
// by a background job; the vote rows are the source of truth.
type CityProject struct {
	ID              uuid.UUID `json:"id"`
	FundID          uuid.UUID `json:"fund_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	RequestedAmount float64   `json:"requested_amount"`
	AllocatedAmount float64   `json:"allocated_amount"`
	VotesFor        int       `json:"votes_for"`
	VotesAgainst    int       `json:"votes_against"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type Vote struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	CityProjectID uuid.UUID `json:"city_project_id"`
	Vote          bool      `json:"vote"`
	CreatedAt     time.Time `json:"created_at"`
}
