package wageruleerrors

import (
	"net/http"

	"go-shien/internal/shared/apperror"
)

var (
	ErrRuleNotFound = apperror.New(
		apperror.CodeNotFound,
		"wage rule not found",
		http.StatusNotFound,
	)
	ErrInvalidCalculationType = apperror.New(
		apperror.CodeInvalidInput,
		"invalid calculation type, expected hourly/daily/piece_rate/mixed",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidValidityRange = apperror.New(
		apperror.CodeInvalidInput,
		"valid_from must be before or equal valid_until",
		http.StatusBadRequest,
	)
	ErrMissingRate = apperror.New(
		apperror.CodeInvalidInput,
		"hourly_rate or daily_rate is required for this calculation type",
		http.StatusBadRequest,
	)
	ErrInvalidPieceRates = apperror.New(
		apperror.CodeInvalidInput,
		"piece_rates must be an entry array or an object keyed by work type",
		http.StatusBadRequest,
	)
	ErrInvalidDeductions = apperror.New(
		apperror.CodeInvalidInput,
		"deductions must be a list of fixed/percentage specs",
		http.StatusBadRequest,
	)
	ErrInvalidClientID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid client id",
		http.StatusBadRequest,
	)
	ErrClientNotInOrganization = apperror.New(
		apperror.CodeInvalidInput,
		"client does not belong to this organization",
		http.StatusBadRequest,
	)
)
