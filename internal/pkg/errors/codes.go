package errors

import "net/http"

var (
	ErrVenueNotFound = New(
		"VENUE_NOT_FOUND",
		"Venue not found",
		http.StatusNotFound,
	)

	ErrOccupancyNotFound = New(
		"OCCUPANCY_NOT_FOUND",
		"Occupancy record not found for venue",
		http.StatusNotFound,
	)

	ErrAlertNotFound = New(
		"ALERT_NOT_FOUND",
		"Alert not found",
		http.StatusNotFound,
	)

	ErrCapacityExceeded = New(
		"CAPACITY_EXCEEDED",
		"Occupancy exceeds maximum venue capacity",
		http.StatusBadRequest,
	)

	ErrVendorNotFound = New(
		"VENDOR_NOT_FOUND",
		"Vendor not found",
		http.StatusNotFound,
	)

	ErrVendorBlocked = New(
		"VENDOR_BLOCKED",
		"Vendor is blocked and cannot request permits",
		http.StatusForbidden,
	)

	ErrRequestNotFound = New(
		"REQUEST_NOT_FOUND",
		"Permit request not found",
		http.StatusNotFound,
	)

	ErrInvalidState = New(
		"INVALID_STATE",
		"Permit request is not in a state that allows this transition",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrStorageError = New(
		"STORAGE_ERROR",
		"Storage operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
