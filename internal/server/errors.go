package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	authdomain "github.com/eventcrew/stagecrew/internal/auth/domain"
	matchingdomain "github.com/eventcrew/stagecrew/internal/matching/domain"
	onboardingdomain "github.com/eventcrew/stagecrew/internal/onboarding/domain"
	pricingdomain "github.com/eventcrew/stagecrew/internal/pricing/domain"
	profiledomain "github.com/eventcrew/stagecrew/internal/profile/domain"
	teamdomain "github.com/eventcrew/stagecrew/internal/team/domain"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrInternal           = errors.New("internal_error")
	ErrNotFound           = errors.New("not_found")
	ErrInvalidRequest     = errors.New("invalid_request")
	ErrServiceUnavailable = errors.New("service_unavailable")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if field, code, ok := validationDetail(err); ok {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   field,
					Code:    code,
					Message: err.Error(),
				},
			},
		}
	}

	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidCredentials),
		errors.Is(err, authdomain.ErrSessionNotFound),
		errors.Is(err, authdomain.ErrSessionExpired),
		errors.Is(err, authdomain.ErrSessionRevoked):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, ErrForbidden),
		errors.Is(err, teamdomain.ErrForbidden):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}
	case errors.Is(err, ErrConflict),
		errors.Is(err, authdomain.ErrEmailTaken),
		errors.Is(err, teamdomain.ErrAlreadyMember),
		errors.Is(err, teamdomain.ErrInviteUsed),
		errors.Is(err, pricingdomain.ErrDuplicateTier),
		errors.Is(err, onboardingdomain.ErrWrongStep):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, teamdomain.ErrInviteExpired):
		return http.StatusGone, errorPayload{
			Type:    "invite_expired",
			Message: err.Error(),
		}
	case errors.Is(err, matchingdomain.ErrInquiryRateLimit):
		return http.StatusTooManyRequests, errorPayload{
			Type:    "rate_limited",
			Message: err.Error(),
		}
	case errors.Is(err, ErrServiceUnavailable),
		errors.Is(err, matchingdomain.ErrEngineUnavailable):
		return http.StatusServiceUnavailable, errorPayload{
			Type:    "service_unavailable",
			Message: "service unavailable",
		}
	case errors.Is(err, ErrInternal):
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

// validationDetail maps domain validation sentinels onto the (field, code)
// pair the error contract exposes to clients.
func validationDetail(err error) (string, string, bool) {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return "request", "invalid_request", true
	case errors.Is(err, profiledomain.ErrMissingRequired):
		return "profile", "missing_required", true
	case errors.Is(err, profiledomain.ErrInvalidRoleType):
		return "roleType", "invalid_role_type", true
	case errors.Is(err, profiledomain.ErrInvalidNZBN):
		return "nzbn", "invalid_nzbn", true
	case errors.Is(err, profiledomain.ErrUnknownServiceArea):
		return "serviceAreas", "unknown_service_area", true
	case errors.Is(err, onboardingdomain.ErrInvalidRole):
		return "role", "invalid_role", true
	case errors.Is(err, onboardingdomain.ErrPhotoRequired):
		return "photoUrl", "photo_required", true
	case errors.Is(err, onboardingdomain.ErrInvalidStep):
		return "step", "invalid_step", true
	case errors.Is(err, teamdomain.ErrInvalidRole):
		return "role", "invalid_role", true
	case errors.Is(err, teamdomain.ErrInvalidInviteEmail):
		return "email", "invalid_email", true
	case errors.Is(err, matchingdomain.ErrUnknownComponent):
		return "component", "unknown_component", true
	case errors.Is(err, matchingdomain.ErrInvalidInquiry):
		return "contractorId", "invalid_inquiry", true
	case errors.Is(err, pricingdomain.ErrInvalidTierCode):
		return "code", "invalid_tier_code", true
	default:
		return "", "", false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, authdomain.ErrNotFound),
		errors.Is(err, profiledomain.ErrNotFound),
		errors.Is(err, profiledomain.ErrBusinessNotFound),
		errors.Is(err, teamdomain.ErrMemberNotFound),
		errors.Is(err, teamdomain.ErrInviteNotFound),
		errors.Is(err, pricingdomain.ErrTierNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

// classifyErrorForLog feeds the request logger a stable (type, code) pair
// without leaking internal error text into log fields.
func classifyErrorForLog(err error) (string, string) {
	status, payload := mapError(err)
	code := payload.Type
	if len(payload.Errors) > 0 {
		code = payload.Errors[0].Code
	}
	switch {
	case status >= http.StatusInternalServerError:
		return "server", code
	default:
		return "client", code
	}
}
