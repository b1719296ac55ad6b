package errors

import (
	"fmt"
	"net/http"

	"go-shien/internal/shared/apperror"
)

var (
	ErrRunNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll run not found",
		http.StatusNotFound,
	)

	ErrRunNotDraft = apperror.New(
		apperror.CodeInvalidState,
		"only a draft payroll run can be confirmed",
		http.StatusConflict,
	)

	ErrRunNotConfirmed = apperror.New(
		apperror.CodeInvalidState,
		"only a confirmed payroll run can be marked as paid",
		http.StatusConflict,
	)

	ErrRunNotDeletable = apperror.New(
		apperror.CodeInvalidState,
		"only a draft payroll run can be deleted",
		http.StatusConflict,
	)

	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"period must be a calendar month in YYYY-MM format",
		http.StatusBadRequest,
	)
)

// ErrRunOverlap names the run that already covers the requested period so
// the caller can navigate to it instead of retrying.
func ErrRunOverlap(existingRunID string) *apperror.AppError {
	return apperror.New(
		apperror.CodeConflict,
		fmt.Sprintf("an overlapping payroll run already exists: %s", existingRunID),
		http.StatusConflict,
	)
}
