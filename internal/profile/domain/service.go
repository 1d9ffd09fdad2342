package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// ProfileInput carries the editable personal-profile fields.
type ProfileInput struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	LinkedinURL string `json:"linkedin_url"`
	WebsiteURL  string `json:"website_url"`
}

// BusinessProfileInput carries the editable business-profile fields.
type BusinessProfileInput struct {
	CompanyName     string      `json:"company_name"`
	Position        string      `json:"position"`
	BusinessAddress string      `json:"business_address"`
	NZBN            string      `json:"nzbn"`
	Description     string      `json:"description"`
	ServiceAreas    []string    `json:"service_areas"`
	SocialLinks     SocialLinks `json:"social_links"`
}

// Service exposes profile reads and writes.
type Service interface {
	GetProfile(ctx context.Context, userID snowflake.ID) (*Profile, error)
	SaveProfile(ctx context.Context, userID snowflake.ID, in ProfileInput) (*Profile, error)
	SetRoleType(ctx context.Context, userID snowflake.ID, role RoleType) error
	SetPhoto(ctx context.Context, userID snowflake.ID, photoURL string) error

	GetBusinessProfile(ctx context.Context, userID snowflake.ID) (*BusinessProfile, error)
	SaveBusinessProfile(ctx context.Context, userID snowflake.ID, in BusinessProfileInput) (*BusinessProfile, error)
}
