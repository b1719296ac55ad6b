package errors

import (
	"net/http"

	"go-shien/internal/shared/apperror"
)

var (
	ErrReportNotFound = apperror.New(
		apperror.CodeNotFound,
		"daily report not found",
		http.StatusNotFound,
	)

	ErrReportAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"a daily report already exists for this date",
		http.StatusConflict,
	)

	ErrInvalidMood = apperror.New(
		apperror.CodeInvalidInput,
		"mood is invalid",
		http.StatusBadRequest,
	)
)
