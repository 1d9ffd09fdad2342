// Package domain holds the pricing page types.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// TierCode identifies a subscription plan level.
type TierCode string

const (
	TierEssential TierCode = "essential"
	TierShowcase  TierCode = "showcase"
	TierSpotlight TierCode = "spotlight"
)

// Valid reports whether the code is a known plan level.
func (c TierCode) Valid() bool {
	return c == TierEssential || c == TierShowcase || c == TierSpotlight
}

// Tier is one subscription plan shown on the pricing page.
type Tier struct {
	ID                snowflake.ID   `gorm:"primaryKey" json:"id"`
	Code              TierCode       `gorm:"column:code;type:text;not null;uniqueIndex" json:"code"`
	Name              string         `gorm:"column:name;type:text;not null" json:"name"`
	MonthlyPriceCents int64          `gorm:"column:monthly_price_cents;not null;default:0" json:"monthly_price_cents"`
	AnnualPriceCents  int64          `gorm:"column:annual_price_cents;not null;default:0" json:"annual_price_cents"`
	Features          datatypes.JSON `gorm:"column:features;type:jsonb;not null;default:'[]'" json:"features"`
	Highlight         bool           `gorm:"column:highlight;not null;default:false" json:"highlight"`
	SortOrder         int            `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
	CreatedAt         time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Tier) TableName() string { return "pricing_tiers" }

// Testimonial is a pricing page quote.
type Testimonial struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Author    string       `gorm:"column:author;type:text;not null" json:"author"`
	Company   string       `gorm:"column:company;type:text;not null;default:''" json:"company"`
	Quote     string       `gorm:"column:quote;type:text;not null" json:"quote"`
	TierCode  TierCode     `gorm:"column:tier_code;type:text;not null;default:''" json:"tier_code,omitempty"`
	SortOrder int          `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Testimonial) TableName() string { return "testimonials" }

// FAQ is a pricing page question and answer.
type FAQ struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Question  string       `gorm:"column:question;type:text;not null" json:"question"`
	Answer    string       `gorm:"column:answer;type:text;not null" json:"answer"`
	SortOrder int          `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (FAQ) TableName() string { return "pricing_faqs" }
