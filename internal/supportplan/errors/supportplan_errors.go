package errors

import (
	"net/http"

	"go-shien/internal/shared/apperror"
)

var (
	ErrPlanNotFound = apperror.New(
		apperror.CodeNotFound,
		"support plan not found",
		http.StatusNotFound,
	)

	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"status is invalid",
		http.StatusBadRequest,
	)

	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"period_end must not be before period_start",
		http.StatusBadRequest,
	)
)
