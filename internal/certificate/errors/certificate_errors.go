package errors

import (
	"net/http"

	"go-shien/internal/shared/apperror"
)

var (
	ErrCertificateNotFound = apperror.New(
		apperror.CodeNotFound,
		"certificate not found",
		http.StatusNotFound,
	)

	ErrInvalidCertificateType = apperror.New(
		apperror.CodeInvalidInput,
		"certificate_type is invalid",
		http.StatusBadRequest,
	)

	ErrInvalidValidityWindow = apperror.New(
		apperror.CodeInvalidInput,
		"valid_until must not be before valid_from",
		http.StatusBadRequest,
	)
)
