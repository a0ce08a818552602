package service

import (
	"errors"
	"net/http"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/pkg/storeapi"
)

// upstreamError translates a store API failure into an AppError whose message
// can be shown to the visitor. action completes "Failed to ...".
func upstreamError(err error, action string) error {
	if errors.Is(err, storeapi.ErrUnavailable) {
		return appErrors.ServiceUnavailableError("The store is temporarily unavailable").WithError(err)
	}

	var apiErr *storeapi.APIError
	if !errors.As(err, &apiErr) {
		return appErrors.ThirdPartyError("Failed to " + action).WithError(err)
	}

	switch apiErr.StatusCode {
	case http.StatusUnauthorized:
		return appErrors.UnauthorizedError("Please sign in again").WithDetail(apiErr.Message).WithError(err)
	case http.StatusForbidden:
		return appErrors.ForbiddenError("You are not allowed to " + action).WithError(err)
	case http.StatusNotFound:
		return appErrors.NotFoundError("Not found").WithDetail(apiErr.Message).WithError(err)
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return appErrors.BadRequestError("Failed to " + action).WithDetail(apiErr.Message).WithError(err)
	case http.StatusTooManyRequests:
		return appErrors.TooManyRequestsError("Too many requests. Please try again later.").WithError(err)
	}

	if apiErr.StatusCode >= http.StatusInternalServerError {
		return appErrors.ThirdPartyError("Failed to " + action).WithError(err)
	}

	return appErrors.ThirdPartyError("Failed to " + action).WithDetail(apiErr.Message).WithError(err)
}
