// Package domain holds the event-manager onboarding wizard types and
// the pure step-sequencing logic.
package domain

import "strconv"

// Step identifies an onboarding wizard screen.
type Step int

const (
	StepPersonalInfo    Step = 1
	StepRoleSelection   Step = 2
	StepBusinessDetails Step = 3
	StepProfilePhoto    Step = 4
	StepTutorial        Step = 5

	// StepComplete is the virtual exit state; it is never persisted.
	StepComplete Step = 6
)

// Valid reports whether the step is one of the five wizard screens.
func (s Step) Valid() bool {
	return s >= StepPersonalInfo && s <= StepTutorial
}

func (s Step) String() string {
	switch s {
	case StepPersonalInfo:
		return "personal_info"
	case StepRoleSelection:
		return "role_selection"
	case StepBusinessDetails:
		return "business_details"
	case StepProfilePhoto:
		return "profile_photo"
	case StepTutorial:
		return "tutorial"
	case StepComplete:
		return "complete"
	default:
		return "step_" + strconv.Itoa(int(s))
	}
}

// ParseStep decodes a stored step index. Anything unparseable or out
// of range falls back to step 1 so a corrupt store never strands the
// wizard.
func ParseStep(raw string) Step {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return StepPersonalInfo
	}
	step := Step(n)
	if !step.Valid() {
		return StepPersonalInfo
	}
	return step
}

// Encode renders the step for the store.
func (s Step) Encode() string {
	return strconv.Itoa(int(s))
}
