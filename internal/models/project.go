package models

import (
	"time"

	"github.com/google/uuid"
)

// Project status enums. Transitions are driven by the owner through the API;
// the core does not validate the state machine.
const (
	ProjectStatusPlanning  = "planning"
	ProjectStatusActive    = "active"
	ProjectStatusCompleted = "completed"
	ProjectStatusCancelled = "cancelled"
)

type Project struct {
	ID                uuid.UUID  `json:"id"`
	CreatorID         uuid.UUID  `json:"creator_id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Category          string     `json:"category"`
	Location          string     `json:"location"`
	RequiredSkills    []string   `json:"required_skills"`
	RequiredResources []string   `json:"required_resources"`
	EstimatedBudget   float64    `json:"estimated_budget"`
	ActualBudget      float64    `json:"actual_budget"`
	Status            string     `json:"status"`
	TotalIncome       float64    `json:"total_income"`
	StartDate         *time.Time `json:"start_date,omitempty"`
	EndDate           *time.Time `json:"end_date,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// ProjectMember links a profile to a project. ContributionPercentage is the
// member's weight when splitting the team share of an income event; the
// percentages of a project's members are not required to sum to 100.
type ProjectMember struct {
	ID                     uuid.UUID `json:"id"`
	ProjectID              uuid.UUID `json:"project_id"`
	UserID                 uuid.UUID `json:"user_id"`
	Role                   string    `json:"role"`
	ContributionPercentage float64   `json:"contribution_percentage"`
	JoinedAt               time.Time `json:"joined_at"`
}
