package domain

import (
	profiledomain "github.com/eventcrew/stagecrew/internal/profile/domain"
)

// PersonalInfo is the step 1 payload.
type PersonalInfo struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	LinkedinURL string `json:"linkedin_url,omitempty"`
	WebsiteURL  string `json:"website_url,omitempty"`
}

// BusinessInfo is the step 3 payload.
type BusinessInfo struct {
	CompanyName     string                    `json:"company_name"`
	Position        string                    `json:"position"`
	BusinessAddress string                    `json:"business_address"`
	NZBN            string                    `json:"nzbn"`
	Description     string                    `json:"description"`
	ServiceAreas    []string                  `json:"service_areas"`
	SocialLinks     profiledomain.SocialLinks `json:"social_links"`
}

// Data aggregates everything the wizard collects. RoleType stays ""
// until step 2 completes; once set to personal, BusinessInfo is never
// collected and keeps its zero value.
type Data struct {
	PersonalInfo PersonalInfo           `json:"personal_info"`
	RoleType     profiledomain.RoleType `json:"role_type"`
	BusinessInfo BusinessInfo           `json:"business_info"`
	ProfilePhoto string                 `json:"profile_photo"`
}

// Session is the wizard state handed to a client.
type Session struct {
	CurrentStep  Step `json:"current_step"`
	IsTeamMember bool `json:"is_team_member"`
	Data         Data `json:"data"`
}

// Progress is the stepper position shown to the user.
type Progress struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}
