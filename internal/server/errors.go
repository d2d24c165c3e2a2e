package server

import (
	"errors"
	"net/http"

	accessdomain "github.com/casetrail/casetrail/internal/access/domain"
	attachmentdomain "github.com/casetrail/casetrail/internal/attachment/domain"
	billingdomain "github.com/casetrail/casetrail/internal/billing/domain"
	brandingdomain "github.com/casetrail/casetrail/internal/branding/domain"
	capabilitydomain "github.com/casetrail/casetrail/internal/capability/domain"
	casedomain "github.com/casetrail/casetrail/internal/casefile/domain"
	caseworkdomain "github.com/casetrail/casetrail/internal/casework/domain"
	updatedomain "github.com/casetrail/casetrail/internal/caseupdate/domain"
	enforcementdomain "github.com/casetrail/casetrail/internal/enforcement/domain"
	invoicedomain "github.com/casetrail/casetrail/internal/invoice/domain"
	orgdomain "github.com/casetrail/casetrail/internal/organization/domain"
	picklistdomain "github.com/casetrail/casetrail/internal/picklist/domain"
	retainerdomain "github.com/casetrail/casetrail/internal/retainer/domain"
	subjectdomain "github.com/casetrail/casetrail/internal/subject/domain"
	"github.com/gin-gonic/gin"
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("conflict")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
	ErrInternal       = errors.New("internal_error")
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

func mapError(err error) (int, errorPayload) {
	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, accessdomain.ErrUnauthenticated):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	// A broken resource chain and a missing membership both read as
	// forbidden. Existence of another tenant's data never leaks through the
	// status code.
	case errors.Is(err, ErrForbidden),
		errors.Is(err, accessdomain.ErrForbidden),
		errors.Is(err, accessdomain.ErrNotAMember),
		errors.Is(err, accessdomain.ErrBrokenChain),
		errors.Is(err, orgdomain.ErrNotAMember),
		errors.Is(err, updatedomain.ErrImmutableLegacyUpdate):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}
	case errors.Is(err, ErrConflict),
		errors.Is(err, attachmentdomain.ErrDuplicateInCase):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: err.Error(),
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, casedomain.ErrNotFound),
		errors.Is(err, subjectdomain.ErrNotFound),
		errors.Is(err, attachmentdomain.ErrNotFound),
		errors.Is(err, updatedomain.ErrNotFound),
		errors.Is(err, billingdomain.ErrNotFound),
		errors.Is(err, invoicedomain.ErrNotFound),
		errors.Is(err, caseworkdomain.ErrNotFound),
		errors.Is(err, picklistdomain.ErrNotFound),
		errors.Is(err, brandingdomain.ErrNotFound):
		return true
	default:
		return false
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, billingdomain.ErrZeroAmount),
		errors.Is(err, retainerdomain.ErrZeroAmount),
		errors.Is(err, retainerdomain.ErrMissingInvoice),
		errors.Is(err, enforcementdomain.ErrInvalidTimeRange),
		errors.Is(err, enforcementdomain.ErrInvalidPageToken):
		return true
	default:
		// Service sentinels follow an invalid_* naming convention; anything
		// that does not match falls through to 500.
		return isInvalidSentinel(err)
	}
}

func isInvalidSentinel(err error) bool {
	for _, sentinel := range invalidSentinels {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

var invalidSentinels = []error{
	orgdomain.ErrInvalidName,
	orgdomain.ErrInvalidUser,
	orgdomain.ErrInvalidOrganization,
	orgdomain.ErrInvalidRole,
	capabilitydomain.ErrInvalidRole,
	capabilitydomain.ErrInvalidFeatureKey,
	capabilitydomain.ErrInvalidOrganization,
	casedomain.ErrInvalidOrganization,
	casedomain.ErrInvalidReference,
	casedomain.ErrInvalidTitle,
	casedomain.ErrInvalidStatus,
	casedomain.ErrInvalidBudget,
	casedomain.ErrInvalidID,
	subjectdomain.ErrInvalidOrganization,
	subjectdomain.ErrInvalidCase,
	subjectdomain.ErrInvalidName,
	subjectdomain.ErrInvalidSubjectType,
	subjectdomain.ErrInvalidID,
	attachmentdomain.ErrInvalidOrganization,
	attachmentdomain.ErrInvalidSubject,
	attachmentdomain.ErrInvalidFileName,
	attachmentdomain.ErrInvalidContentHash,
	attachmentdomain.ErrInvalidID,
	updatedomain.ErrInvalidOrganization,
	updatedomain.ErrInvalidCase,
	updatedomain.ErrInvalidTitle,
	updatedomain.ErrInvalidUpdateType,
	updatedomain.ErrInvalidID,
	billingdomain.ErrInvalidOrganization,
	billingdomain.ErrInvalidCase,
	billingdomain.ErrInvalidFinanceType,
	billingdomain.ErrInvalidBillingType,
	billingdomain.ErrInvalidPricingModel,
	billingdomain.ErrInvalidHours,
	billingdomain.ErrInvalidID,
	invoicedomain.ErrInvalidOrganization,
	invoicedomain.ErrInvalidCase,
	invoicedomain.ErrInvalidNumber,
	invoicedomain.ErrInvalidTotal,
	invoicedomain.ErrInvalidAmount,
	invoicedomain.ErrInvalidID,
	retainerdomain.ErrInvalidOrganization,
	retainerdomain.ErrInvalidCase,
	retainerdomain.ErrInvalidAmount,
	retainerdomain.ErrInvalidID,
	caseworkdomain.ErrInvalidOrganization,
	caseworkdomain.ErrInvalidCase,
	caseworkdomain.ErrInvalidName,
	caseworkdomain.ErrInvalidService,
	caseworkdomain.ErrInvalidPricingModel,
	caseworkdomain.ErrInvalidRate,
	caseworkdomain.ErrInvalidOccurredAt,
	picklistdomain.ErrInvalidOrganization,
	picklistdomain.ErrInvalidType,
	picklistdomain.ErrInvalidValue,
	picklistdomain.ErrInvalidStatusType,
	picklistdomain.ErrInvalidID,
	enforcementdomain.ErrInvalidOrganization,
	enforcementdomain.ErrInvalidActionType,
	brandingdomain.ErrInvalidOrganization,
	brandingdomain.ErrInvalidName,
}
