package session

import "encoding/json"

type CreateSessionRequest struct {
	ClientID      string  `json:"client_id" binding:"required,uuid"`
	SessionDate   string  `json:"session_date" binding:"required"`
	SessionType   string  `json:"session_type" binding:"required"`
	Title         string  `json:"title" binding:"required"`
	Notes         *string `json:"notes"`
	SupportPlanID *string `json:"support_plan_id"`
}

type UpdateSessionRequest struct {
	SessionDate   string  `json:"session_date" binding:"required"`
	Title         string  `json:"title" binding:"required"`
	Notes         *string `json:"notes"`
	SupportPlanID *string `json:"support_plan_id"`
}

type TransitionRequest struct {
	To string `json:"to" binding:"required"`
}

type UpdateConsentsRequest struct {
	RecordingConsent    *bool `json:"recording_consent"`
	AIProcessingConsent *bool `json:"ai_processing_consent"`
}

type UploadMediaRequest struct {
	FileName    string `json:"file_name" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	StorageKey  string `json:"storage_key" binding:"required"`
	DurationSec *int   `json:"duration_sec"`
}

type CreateTranscriptRequest struct {
	MediaAssetID *string `json:"media_asset_id"`
	Language     string  `json:"language"`
}

type CreateSummaryRequest struct {
	TranscriptID *string `json:"transcript_id"`
	Content      string  `json:"content" binding:"required"`
}

type CreateExtractionRequest struct {
	TranscriptID *string         `json:"transcript_id"`
	Items        json.RawMessage `json:"items" binding:"required"`
}

type SessionResponse struct {
	ID                  string  `json:"id"`
	OrganizationID      string  `json:"organization_id"`
	ClientID            string  `json:"client_id"`
	SessionDate         string  `json:"session_date"`
	SessionType         string  `json:"session_type"`
	Title               string  `json:"title"`
	Notes               *string `json:"notes,omitempty"`
	Status              string  `json:"status"`
	RecordingConsent    bool    `json:"recording_consent"`
	AIProcessingConsent bool    `json:"ai_processing_consent"`
	SupportPlanID       *string `json:"support_plan_id,omitempty"`
	CreatedAt           string  `json:"created_at"`
}

type MediaAssetResponse struct {
	ID          string `json:"id"`
	SessionID   string `json:"session_id"`
	Version     int    `json:"version"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	StorageKey  string `json:"storage_key"`
	DurationSec *int   `json:"duration_sec,omitempty"`
	CreatedAt   string `json:"created_at"`
}

type TranscriptResponse struct {
	ID           string  `json:"id"`
	SessionID    string  `json:"session_id"`
	Version      int     `json:"version"`
	MediaAssetID *string `json:"media_asset_id,omitempty"`
	Status       string  `json:"status"`
	Content      *string `json:"content,omitempty"`
	Language     string  `json:"language"`
	CreatedAt    string  `json:"created_at"`
}

type SummaryResponse struct {
	ID           string  `json:"id"`
	SessionID    string  `json:"session_id"`
	Version      int     `json:"version"`
	TranscriptID *string `json:"transcript_id,omitempty"`
	Content      string  `json:"content"`
	CreatedAt    string  `json:"created_at"`
}

type ExtractionResponse struct {
	ID           string          `json:"id"`
	SessionID    string          `json:"session_id"`
	Version      int             `json:"version"`
	TranscriptID *string         `json:"transcript_id,omitempty"`
	Items        json.RawMessage `json:"items,omitempty"`
	CreatedAt    string          `json:"created_at"`
}
