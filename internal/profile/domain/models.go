// Package domain holds the profile and business-profile types.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// RoleType distinguishes event managers operating personally from
// those operating under a business.
type RoleType string

const (
	RolePersonal RoleType = "personal"
	RoleBusiness RoleType = "business"
	RoleUnset    RoleType = ""
)

// Valid reports whether the role is one of the known values.
func (r RoleType) Valid() bool {
	return r == RolePersonal || r == RoleBusiness
}

// Profile is the per-user personal profile.
type Profile struct {
	UserID      snowflake.ID `gorm:"column:user_id;primaryKey" json:"user_id"`
	FirstName   string       `gorm:"column:first_name;type:text;not null;default:''" json:"first_name"`
	LastName    string       `gorm:"column:last_name;type:text;not null;default:''" json:"last_name"`
	Phone       string       `gorm:"column:phone;type:text;not null;default:''" json:"phone"`
	Address     string       `gorm:"column:address;type:text;not null;default:''" json:"address"`
	LinkedinURL string       `gorm:"column:linkedin_url;type:text;not null;default:''" json:"linkedin_url,omitempty"`
	WebsiteURL  string       `gorm:"column:website_url;type:text;not null;default:''" json:"website_url,omitempty"`
	RoleType    RoleType     `gorm:"column:role_type;type:text;not null;default:''" json:"role_type"`
	PhotoURL    string       `gorm:"column:photo_url;type:text;not null;default:''" json:"photo_url"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Profile) TableName() string { return "profiles" }

// SocialLinks are the business profile's outbound links.
type SocialLinks struct {
	Website   string `json:"website"`
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	Linkedin  string `json:"linkedin"`
}

// BusinessProfile is the per-user business profile, collected only for
// business-role event managers.
type BusinessProfile struct {
	UserID          snowflake.ID      `gorm:"column:user_id;primaryKey" json:"user_id"`
	CompanyName     string            `gorm:"column:company_name;type:text;not null;default:''" json:"company_name"`
	Position        string            `gorm:"column:position;type:text;not null;default:''" json:"position"`
	BusinessAddress string            `gorm:"column:business_address;type:text;not null;default:''" json:"business_address"`
	NZBN            string            `gorm:"column:nzbn;type:text;not null;default:''" json:"nzbn"`
	Description     string            `gorm:"column:description;type:text;not null;default:''" json:"description"`
	ServiceAreas    datatypes.JSON    `gorm:"column:service_areas;type:jsonb;not null;default:'[]'" json:"service_areas"`
	SocialLinks     datatypes.JSONMap `gorm:"column:social_links;type:jsonb;not null;default:'{}'" json:"social_links"`
	CreatedAt       time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (BusinessProfile) TableName() string { return "business_profiles" }
