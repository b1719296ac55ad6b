package session

import sessionerrors "go-shien/internal/session/errors"

// transitions is the explicit workflow table. A requested transition whose
// target is not in the source's list is rejected with no state change.
var transitions = map[string][]string{
	StatusDraft:        {StatusScheduled, StatusRecording, StatusArchived},
	StatusScheduled:    {StatusRecording, StatusDraft, StatusArchived},
	StatusRecording:    {StatusTranscribing, StatusDraft},
	StatusTranscribing: {StatusProcessing, StatusRecording},
	StatusProcessing:   {StatusCompleted, StatusTranscribing},
	StatusCompleted:    {StatusArchived},
	StatusArchived:     {StatusDraft},
}

func canTransition(from, to string) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// checkConsent enforces the consent guards that apply to a target state no
// matter how it is reached, explicitly or by auto-advance.
func checkConsent(s *InterviewSession, to string) error {
	switch to {
	case StatusRecording:
		if !s.RecordingConsent {
			return sessionerrors.ErrRecordingConsentRequired
		}
	case StatusTranscribing, StatusProcessing:
		if !s.AIProcessingConsent {
			return sessionerrors.ErrAIProcessingConsentRequired
		}
	}
	return nil
}

// Transition applies an explicit status change request. The table and the
// consent guards must both pass.
func Transition(s *InterviewSession, to string) error {
	if !canTransition(s.Status, to) {
		return sessionerrors.ErrIllegalTransition(s.Status, to)
	}
	if err := checkConsent(s, to); err != nil {
		return err
	}
	s.Status = to
	return nil
}

// autoAdvance moves the session to target if its current status is one of
// from. Auto-advances are convenience shortcuts triggered by artifact
// operations: they skip the transition table but never the consent guards.
func autoAdvance(s *InterviewSession, target string, from ...string) error {
	eligible := false
	for _, f := range from {
		if s.Status == f {
			eligible = true
			break
		}
	}
	if !eligible {
		return nil
	}
	if err := checkConsent(s, target); err != nil {
		return err
	}
	s.Status = target
	return nil
}

// AdvanceOnMediaUpload auto-advances draft/scheduled sessions to recording
// when the first recording arrives.
func AdvanceOnMediaUpload(s *InterviewSession) error {
	return autoAdvance(s, StatusRecording, StatusDraft, StatusScheduled)
}

// AdvanceOnTranscribe auto-advances to transcribing when transcription is
// requested early in the workflow.
func AdvanceOnTranscribe(s *InterviewSession) error {
	return autoAdvance(s, StatusTranscribing, StatusRecording, StatusDraft, StatusScheduled)
}

// AdvanceOnSummarize auto-advances a transcribing session to processing.
func AdvanceOnSummarize(s *InterviewSession) error {
	return autoAdvance(s, StatusProcessing, StatusTranscribing)
}

// AdvanceOnExtract auto-advances to completed once extraction runs.
func AdvanceOnExtract(s *InterviewSession) error {
	return autoAdvance(s, StatusCompleted, StatusProcessing, StatusTranscribing)
}

// MetadataLocked reports whether content edits are blocked: completed and
// archived sessions only permit their remaining transitions.
func MetadataLocked(s *InterviewSession) bool {
	return s.Status == StatusCompleted || s.Status == StatusArchived
}

func ValidStatus(status string) bool {
	switch status {
	case StatusDraft, StatusScheduled, StatusRecording, StatusTranscribing,
		StatusProcessing, StatusCompleted, StatusArchived:
		return true
	default:
		return false
	}
}
