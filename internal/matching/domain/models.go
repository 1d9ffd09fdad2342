// Package domain holds the contractor-matching display types. The
// scoring engine itself is an external service; this module only
// consumes and formats its pre-computed results.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Component names the individual score facets the engine exposes.
type Component string

const (
	ComponentCompatibility Component = "compatibility"
	ComponentBudget        Component = "budget"
	ComponentLocation      Component = "location"
	ComponentPerformance   Component = "performance"
	ComponentAvailability  Component = "availability"
)

// Valid reports whether the component is one the engine serves.
func (c Component) Valid() bool {
	switch c {
	case ComponentCompatibility, ComponentBudget, ComponentLocation,
		ComponentPerformance, ComponentAvailability:
		return true
	}
	return false
}

// BadgeLevel is the color-coded quality band derived from a score.
type BadgeLevel string

const (
	BadgeHigh   BadgeLevel = "high"
	BadgeMedium BadgeLevel = "medium"
	BadgeLow    BadgeLevel = "low"
)

// Score is a formatted engine score ready for display.
type Score struct {
	Component      Component  `json:"component"`
	ContractorID   string     `json:"contractor_id"`
	EventID        string     `json:"event_id,omitempty"`
	Value          float64    `json:"value"`
	Badge          BadgeLevel `json:"badge"`
	Recommendation string     `json:"recommendation"`
	Cached         bool       `json:"cached"`
}

// Contractor is a summary row in contractor listings.
type Contractor struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Regions      []string `json:"regions"`
	OverallScore float64  `json:"overall_score"`
}

// RankingEntry is one row of the engine's ranked contractor list.
type RankingEntry struct {
	ContractorID string  `json:"contractor_id"`
	Rank         int     `json:"rank"`
	Score        float64 `json:"score"`
}

// InquiryInput is a user's message to a contractor.
type InquiryInput struct {
	ContractorID string `json:"contractor_id"`
	EventID      string `json:"event_id"`
	Message      string `json:"message"`
}

// Inquiry is the locally recorded copy of a forwarded inquiry.
type Inquiry struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID       snowflake.ID `gorm:"column:user_id;not null;index" json:"user_id"`
	ContractorID string       `gorm:"column:contractor_id;type:text;not null" json:"contractor_id"`
	EventID      string       `gorm:"column:event_id;type:text;not null;default:''" json:"event_id,omitempty"`
	Message      string       `gorm:"column:message;type:text;not null;default:''" json:"message"`
	Status       string       `gorm:"column:status;type:text;not null;default:'sent'" json:"status"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Inquiry) TableName() string { return "inquiries" }
