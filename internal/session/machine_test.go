package session_test

import (
	"testing"

	"go-shien/internal/session"
	sessionerrors "go-shien/internal/session/errors"

	"github.com/stretchr/testify/assert"
)

func consentedSession(status string) *session.InterviewSession {
	return &session.InterviewSession{
		Status:              status,
		RecordingConsent:    true,
		AIProcessingConsent: true,
	}
}

func TestTransition_Table(t *testing.T) {
	cases := []struct {
		from    string
		to      string
		allowed bool
	}{
		{session.StatusDraft, session.StatusScheduled, true},
		{session.StatusDraft, session.StatusRecording, true},
		{session.StatusDraft, session.StatusArchived, true},
		{session.StatusDraft, session.StatusTranscribing, false},
		{session.StatusScheduled, session.StatusRecording, true},
		{session.StatusScheduled, session.StatusDraft, true},
		{session.StatusScheduled, session.StatusCompleted, false},
		{session.StatusRecording, session.StatusTranscribing, true},
		{session.StatusRecording, session.StatusDraft, true},
		{session.StatusRecording, session.StatusArchived, false},
		{session.StatusTranscribing, session.StatusProcessing, true},
		{session.StatusTranscribing, session.StatusRecording, true},
		{session.StatusProcessing, session.StatusCompleted, true},
		{session.StatusProcessing, session.StatusTranscribing, true},
		{session.StatusCompleted, session.StatusArchived, true},
		{session.StatusCompleted, session.StatusDraft, false},
		{session.StatusCompleted, session.StatusRecording, false},
		{session.StatusArchived, session.StatusDraft, true},
		{session.StatusArchived, session.StatusScheduled, false},
	}

	for _, tc := range cases {
		t.Run(tc.from+"_to_"+tc.to, func(t *testing.T) {
			s := consentedSession(tc.from)
			err := session.Transition(s, tc.to)
			if tc.allowed {
				assert.NoError(t, err)
				assert.Equal(t, tc.to, s.Status)
			} else {
				assert.Error(t, err)
				assert.Equal(t, tc.from, s.Status, "status must not change on a rejected transition")
			}
		})
	}
}

func TestTransition_RecordingConsentGuard(t *testing.T) {
	s := consentedSession(session.StatusDraft)
	s.RecordingConsent = false

	err := session.Transition(s, session.StatusRecording)

	assert.ErrorIs(t, err, sessionerrors.ErrRecordingConsentRequired)
	assert.Equal(t, session.StatusDraft, s.Status)
}

func TestTransition_AIProcessingConsentGuard(t *testing.T) {
	s := consentedSession(session.StatusRecording)
	s.AIProcessingConsent = false

	err := session.Transition(s, session.StatusTranscribing)

	assert.ErrorIs(t, err, sessionerrors.ErrAIProcessingConsentRequired)
	assert.Equal(t, session.StatusRecording, s.Status)
}

func TestAutoAdvance_MediaUpload(t *testing.T) {
	t.Run("draft advances to recording", func(t *testing.T) {
		s := consentedSession(session.StatusDraft)
		assert.NoError(t, session.AdvanceOnMediaUpload(s))
		assert.Equal(t, session.StatusRecording, s.Status)
	})

	t.Run("scheduled advances to recording", func(t *testing.T) {
		s := consentedSession(session.StatusScheduled)
		assert.NoError(t, session.AdvanceOnMediaUpload(s))
		assert.Equal(t, session.StatusRecording, s.Status)
	})

	t.Run("already recording stays put", func(t *testing.T) {
		s := consentedSession(session.StatusRecording)
		assert.NoError(t, session.AdvanceOnMediaUpload(s))
		assert.Equal(t, session.StatusRecording, s.Status)
	})

	t.Run("consent guard still applies", func(t *testing.T) {
		s := consentedSession(session.StatusDraft)
		s.RecordingConsent = false
		assert.ErrorIs(t, session.AdvanceOnMediaUpload(s), sessionerrors.ErrRecordingConsentRequired)
		assert.Equal(t, session.StatusDraft, s.Status)
	})
}

func TestAutoAdvance_Transcribe(t *testing.T) {
	// draft → transcribing is illegal in the table, but the transcription
	// shortcut allows it when consent is present
	s := consentedSession(session.StatusDraft)
	assert.NoError(t, session.AdvanceOnTranscribe(s))
	assert.Equal(t, session.StatusTranscribing, s.Status)

	s = consentedSession(session.StatusDraft)
	s.AIProcessingConsent = false
	assert.ErrorIs(t, session.AdvanceOnTranscribe(s), sessionerrors.ErrAIProcessingConsentRequired)
	assert.Equal(t, session.StatusDraft, s.Status)
}

func TestAutoAdvance_SummarizeAndExtract(t *testing.T) {
	s := consentedSession(session.StatusTranscribing)
	assert.NoError(t, session.AdvanceOnSummarize(s))
	assert.Equal(t, session.StatusProcessing, s.Status)

	assert.NoError(t, session.AdvanceOnExtract(s))
	assert.Equal(t, session.StatusCompleted, s.Status)

	// extraction straight from transcribing also completes
	s = consentedSession(session.StatusTranscribing)
	assert.NoError(t, session.AdvanceOnExtract(s))
	assert.Equal(t, session.StatusCompleted, s.Status)

	// summarize outside transcribing does nothing
	s = consentedSession(session.StatusCompleted)
	assert.NoError(t, session.AdvanceOnSummarize(s))
	assert.Equal(t, session.StatusCompleted, s.Status)
}

func TestMetadataLocked(t *testing.T) {
	assert.False(t, session.MetadataLocked(consentedSession(session.StatusDraft)))
	assert.False(t, session.MetadataLocked(consentedSession(session.StatusProcessing)))
	assert.True(t, session.MetadataLocked(consentedSession(session.StatusCompleted)))
	assert.True(t, session.MetadataLocked(consentedSession(session.StatusArchived)))
}
