package session

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Session statuses.
const (
	StatusDraft        = "draft"
	StatusScheduled    = "scheduled"
	StatusRecording    = "recording"
	StatusTranscribing = "transcribing"
	StatusProcessing   = "processing"
	StatusCompleted    = "completed"
	StatusArchived     = "archived"
)

// Session types.
const (
	TypeInterview  = "interview"
	TypeMonitoring = "monitoring"
	TypeAssessment = "assessment"
)

// InterviewSession is one recorded conversation with a client: an interview,
// a support-plan monitoring review, or an assessment. Consent flags gate what
// may happen to the recording; derived artifacts are versioned and
// append-only.
type InterviewSession struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"`
	ClientID       uuid.UUID `gorm:"type:uuid;not null;index"`
	SessionDate    time.Time `gorm:"type:date;not null"`
	SessionType    string    `gorm:"type:varchar(30);not null;default:'interview'"`
	Title          string    `gorm:"type:varchar(255);not null"`
	Notes          *string   `gorm:"type:text"`
	Status         string    `gorm:"type:varchar(20);not null;default:'draft';index"`

	RecordingConsent    bool `gorm:"not null;default:false"`
	AIProcessingConsent bool `gorm:"not null;default:false"`

	SupportPlanID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedByID   uuid.UUID  `gorm:"type:uuid;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (InterviewSession) TableName() string {
	return "interview_sessions"
}

func ValidSessionType(t string) bool {
	switch t {
	case TypeInterview, TypeMonitoring, TypeAssessment:
		return true
	default:
		return false
	}
}

// MediaAsset is one uploaded recording. Storage is by reference: the asset
// row carries the object key, not the bytes.
type MediaAsset struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionID      uuid.UUID `gorm:"type:uuid;not null;index:idx_media_session_version,unique"`
	Version        int       `gorm:"not null;index:idx_media_session_version,unique"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"`
	FileName       string    `gorm:"type:varchar(255);not null"`
	ContentType    string    `gorm:"type:varchar(100);not null"`
	StorageKey     string    `gorm:"type:varchar(500);not null"`
	DurationSec    *int      `gorm:"type:int"`
	UploadedByID   uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt      time.Time
}

func (MediaAsset) TableName() string {
	return "session_media_assets"
}

// Transcript statuses. pending rows are filled in by the transcription
// consumer.
const (
	TranscriptStatusPending   = "pending"
	TranscriptStatusCompleted = "completed"
	TranscriptStatusFailed    = "failed"
)

type Transcript struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_transcript_session_version,unique"`
	Version        int        `gorm:"not null;index:idx_transcript_session_version,unique"`
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null;index"`
	MediaAssetID   *uuid.UUID `gorm:"type:uuid"`
	Status         string     `gorm:"type:varchar(20);not null;default:'pending'"`
	Content        *string    `gorm:"type:text"`
	Language       string     `gorm:"type:varchar(10);not null;default:'ja'"`
	CreatedByID    uuid.UUID  `gorm:"type:uuid;not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Transcript) TableName() string {
	return "session_transcripts"
}

type AISummary struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_summary_session_version,unique"`
	Version        int        `gorm:"not null;index:idx_summary_session_version,unique"`
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null;index"`
	TranscriptID   *uuid.UUID `gorm:"type:uuid"`
	Content        string     `gorm:"type:text;not null"`
	CreatedByID    uuid.UUID  `gorm:"type:uuid;not null"`
	CreatedAt      time.Time
}

func (AISummary) TableName() string {
	return "session_ai_summaries"
}

type AIExtraction struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_extraction_session_version,unique"`
	Version        int        `gorm:"not null;index:idx_extraction_session_version,unique"`
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null;index"`
	TranscriptID   *uuid.UUID `gorm:"type:uuid"`
	// Items is structured output: action items, keywords, risk flags.
	Items       datatypes.JSON `gorm:"type:jsonb"`
	CreatedByID uuid.UUID      `gorm:"type:uuid;not null"`
	CreatedAt   time.Time
}

func (AIExtraction) TableName() string {
	return "session_ai_extractions"
}
