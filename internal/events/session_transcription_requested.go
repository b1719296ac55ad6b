package events

import "time"

const SessionTranscriptionRequestedTopic = "facility.session.transcription.requested.v1"

// SessionTranscriptionRequestedEvent is published when an interview session
// asks for a transcript of an uploaded recording.
type SessionTranscriptionRequestedEvent struct {
	EventType      string    `json:"event_type"`
	SessionID      string    `json:"session_id"`
	OrganizationID string    `json:"organization_id"`
	TranscriptID   string    `json:"transcript_id"`
	MediaAssetID   string    `json:"media_asset_id"`
	RequestedBy    string    `json:"requested_by"`
	OccurredAt     time.Time `json:"occurred_at"`
}
