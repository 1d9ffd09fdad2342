package domain

import (
	profiledomain "github.com/eventcrew/stagecrew/internal/profile/domain"
)

// Advance carries the inputs the transition function needs beyond the
// current step.
type Advance struct {
	IsTeamMember bool
	Role         profiledomain.RoleType
	PhotoURL     string
}

// Next returns the step that follows a successful completion of the
// current one. Team members skip role selection and business details
// entirely; a personal role skips business details.
func Next(step Step, ev Advance) (Step, error) {
	switch step {
	case StepPersonalInfo:
		if ev.IsTeamMember {
			return StepProfilePhoto, nil
		}
		return StepRoleSelection, nil
	case StepRoleSelection:
		switch ev.Role {
		case profiledomain.RoleBusiness:
			return StepBusinessDetails, nil
		case profiledomain.RolePersonal:
			return StepProfilePhoto, nil
		default:
			return step, ErrInvalidRole
		}
	case StepBusinessDetails:
		return StepProfilePhoto, nil
	case StepProfilePhoto:
		if ev.PhotoURL == "" {
			return step, ErrPhotoRequired
		}
		return StepTutorial, nil
	case StepTutorial:
		return StepComplete, nil
	default:
		return step, ErrInvalidStep
	}
}

// Prev returns the step for back navigation: a plain decrement, except
// that team members jump from the photo step straight back to step 1.
// A non-team personal-role user going back from the photo step lands
// on business details even though it was skipped forward; that
// asymmetry is inherited behavior existing clients rely on.
func Prev(step Step, isTeamMember bool) Step {
	if step <= StepPersonalInfo {
		return StepPersonalInfo
	}
	if isTeamMember && step == StepProfilePhoto {
		return StepPersonalInfo
	}
	return step - 1
}

// DisplayProgress maps the canonical step index onto the stepper shown
// to the user. Team members see a compressed three-step sequence that
// never reveals the skipped screens.
func DisplayProgress(step Step, isTeamMember bool) Progress {
	if !isTeamMember {
		current := int(step)
		if step == StepComplete {
			current = int(StepTutorial)
		}
		return Progress{Current: current, Total: 5}
	}

	switch {
	case step <= StepBusinessDetails:
		return Progress{Current: 1, Total: 3}
	case step == StepProfilePhoto:
		return Progress{Current: 2, Total: 3}
	default:
		return Progress{Current: 3, Total: 3}
	}
}

// ResolveTeamMembership reconciles the server membership check with
// the cached flag. server is nil when the check failed. The rule fails
// open toward the last known state: a cached true is honored even if
// the server now says false, and a failed check falls back to the
// cache. Only an explicit server false with no cached flag clears
// membership.
func ResolveTeamMembership(server *bool, cached bool) bool {
	if server != nil && *server {
		return true
	}
	return cached
}
