package errors

import (
	"fmt"
	"net/http"

	"go-shien/internal/shared/apperror"
)

var (
	ErrSessionNotFound = apperror.New(
		apperror.CodeNotFound,
		"interview session not found",
		http.StatusNotFound,
	)

	ErrRecordingConsentRequired = apperror.New(
		apperror.CodeConflict,
		"recording consent has not been given for this session",
		http.StatusConflict,
	)

	ErrAIProcessingConsentRequired = apperror.New(
		apperror.CodeConflict,
		"AI processing consent has not been given for this session",
		http.StatusConflict,
	)

	ErrMetadataLocked = apperror.New(
		apperror.CodeInvalidState,
		"a completed or archived session no longer accepts edits",
		http.StatusConflict,
	)

	ErrNoMediaAsset = apperror.New(
		apperror.CodeInvalidState,
		"the session has no uploaded recording to transcribe",
		http.StatusConflict,
	)

	ErrTranscriptNotFound = apperror.New(
		apperror.CodeNotFound,
		"transcript not found",
		http.StatusNotFound,
	)

	ErrInvalidSessionType = apperror.New(
		apperror.CodeInvalidInput,
		"session_type is invalid",
		http.StatusBadRequest,
	)

	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"status is invalid",
		http.StatusBadRequest,
	)
)

// ErrIllegalTransition reports a target outside the current state's allowed
// set. The message carries both states so the caller can see what was
// attempted.
func ErrIllegalTransition(from, to string) *apperror.AppError {
	return apperror.New(
		apperror.CodeInvalidState,
		fmt.Sprintf("transition from %s to %s is not allowed", from, to),
		http.StatusConflict,
	)
}
