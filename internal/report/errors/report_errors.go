package errors

import (
	"net/http"

	"go-shien/internal/shared/apperror"
)

var ErrInvalidMonth = apperror.New(
	apperror.CodeInvalidInput,
	"month must use the YYYY-MM format",
	http.StatusBadRequest,
)
