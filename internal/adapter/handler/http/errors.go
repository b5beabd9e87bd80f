package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"schoolhub/internal/domain/entity"
	domainErrors "schoolhub/internal/domain/errors"
	pkgErrors "schoolhub/pkg/errors"
)

// notFoundErrs map to 404 without logging noise.
var notFoundErrs = []error{
	domainErrors.ErrPlanNotFound,
	domainErrors.ErrSubscriptionNotFound,
	domainErrors.ErrInvoiceNotFound,
	domainErrors.ErrPaymentMethodNotFound,
	domainErrors.ErrSchoolNotFound,
	domainErrors.ErrStudentNotFound,
	domainErrors.ErrStaffNotFound,
	domainErrors.ErrClassNotFound,
	domainErrors.ErrSubjectNotFound,
	domainErrors.ErrAdmissionNotFound,
	domainErrors.ErrTicketNotFound,
}

// conflictErrs map to 409.
var conflictErrs = []error{
	domainErrors.ErrSchoolHasSubscription,
	domainErrors.ErrSubdomainTaken,
	domainErrors.ErrAdmissionAlreadyDecided,
	domainErrors.ErrInvoiceNotPayable,
}

// classify maps a domain error onto a shared error code. Anything
// unrecognized comes back as INTERNAL.
func classify(err error) string {
	for _, target := range notFoundErrs {
		if pkgErrors.Is(err, target) {
			return pkgErrors.ErrNotFound
		}
	}
	for _, target := range conflictErrs {
		if pkgErrors.Is(err, target) {
			return pkgErrors.ErrConflict
		}
	}

	var transitionErr *domainErrors.InvalidTransitionError
	if pkgErrors.As(err, &transitionErr) {
		return pkgErrors.ErrConflict
	}
	var validationErr *domainErrors.ValidationError
	if pkgErrors.As(err, &validationErr) {
		return pkgErrors.ErrInvalidArgument
	}
	if pkgErrors.Is(err, domainErrors.ErrInvalidBillingCycle) {
		return pkgErrors.ErrInvalidArgument
	}
	if pkgErrors.Is(err, domainErrors.ErrInvalidCredentials) || pkgErrors.Is(err, domainErrors.ErrAccountInactive) {
		return pkgErrors.ErrUnauthenticated
	}
	return pkgErrors.ErrInternal
}

// writeError translates domain errors into HTTP responses. Anything
// unrecognized is logged and returned as a 500 without leaking detail.
func writeError(c echo.Context, logger *zap.Logger, err error) error {
	code := classify(err)
	if code == pkgErrors.ErrInternal {
		logger.Error("request failed",
			zap.String("path", c.Request().URL.Path),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "internal server error",
			"code":  code,
		})
	}

	return c.JSON(pkgErrors.HTTPStatus(code), echo.Map{
		"error": err.Error(),
		"code":  code,
	})
}

// parseUUIDParam reads a UUID path parameter. A non-UUID value answers
// the request with a 400 and returns false.
func parseUUIDParam(c echo.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{
			"error": "invalid " + name,
			"code":  pkgErrors.ErrInvalidArgument,
		})
		return uuid.Nil, false
	}
	return id, true
}

// bindPagination reads page/limit query parameters.
func bindPagination(c echo.Context) *entity.PaginationParams {
	params := &entity.PaginationParams{}
	_ = c.Bind(params)
	params.Validate()
	return params
}
