package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-shien/internal/events"
	"go-shien/internal/messaging/kafka"
	sessionerrors "go-shien/internal/session/errors"
	"go-shien/internal/shared/apperror"
	"go-shien/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

//go:generate mockgen -source=session_service.go -destination=mock/session_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, organizationID, actorID string, req CreateSessionRequest) (SessionResponse, error)
	GetAll(ctx context.Context, organizationID string) ([]SessionResponse, error)
	GetByClient(ctx context.Context, organizationID, clientID string) ([]SessionResponse, error)
	GetByID(ctx context.Context, organizationID, id string) (SessionResponse, error)
	Update(ctx context.Context, organizationID, id string, req UpdateSessionRequest) (SessionResponse, error)
	Delete(ctx context.Context, organizationID, id string) error

	Transition(ctx context.Context, organizationID, actorID, id string, req TransitionRequest) (SessionResponse, error)
	UpdateConsents(ctx context.Context, organizationID, id string, req UpdateConsentsRequest) (SessionResponse, error)

	UploadMedia(ctx context.Context, organizationID, actorID, id string, req UploadMediaRequest) (MediaAssetResponse, error)
	GetMediaAssets(ctx context.Context, organizationID, id string) ([]MediaAssetResponse, error)
	RequestTranscription(ctx context.Context, organizationID, actorID, id string, req CreateTranscriptRequest) (TranscriptResponse, error)
	CompleteTranscription(ctx context.Context, organizationID, transcriptID, content string) (TranscriptResponse, error)
	GetTranscripts(ctx context.Context, organizationID, id string) ([]TranscriptResponse, error)
	CreateSummary(ctx context.Context, organizationID, actorID, id string, req CreateSummaryRequest) (SummaryResponse, error)
	GetSummaries(ctx context.Context, organizationID, id string) ([]SummaryResponse, error)
	CreateExtraction(ctx context.Context, organizationID, actorID, id string, req CreateExtractionRequest) (ExtractionResponse, error)
	GetExtractions(ctx context.Context, organizationID, id string) ([]ExtractionResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("session.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("session.service")
	}
	return &service{db: db, repo: repo, outbox: outboxRepo, logger: l}
}

func (s *service) Create(
	ctx context.Context,
	organizationID, actorID string,
	req CreateSessionRequest,
) (SessionResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create session requested",
		zap.String("request_id", rid),
		zap.String("organization_id", organizationID),
		zap.String("client_id", req.ClientID),
		zap.String("session_type", req.SessionType),
	)

	if !ValidSessionType(req.SessionType) {
		return SessionResponse{}, sessionerrors.ErrInvalidSessionType
	}

	sessionDate, err := time.Parse("2006-01-02", req.SessionDate)
	if err != nil {
		return SessionResponse{}, apperror.InvalidField("session_date")
	}

	orgUUID, err := uuid.Parse(organizationID)
	if err != nil {
		return SessionResponse{}, apperror.InvalidField("organization_id")
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return SessionResponse{}, apperror.InvalidField("actor_id")
	}
	clientUUID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return SessionResponse{}, apperror.InvalidField("client_id")
	}

	sess := &InterviewSession{
		ID:             uuid.New(),
		OrganizationID: orgUUID,
		ClientID:       clientUUID,
		SessionDate:    sessionDate,
		SessionType:    req.SessionType,
		Title:          req.Title,
		Notes:          req.Notes,
		Status:         StatusDraft,
		CreatedByID:    actorUUID,
	}
	if req.SupportPlanID != nil {
		planUUID, err := uuid.Parse(*req.SupportPlanID)
		if err != nil {
			return SessionResponse{}, apperror.InvalidField("support_plan_id")
		}
		sess.SupportPlanID = &planUUID
	}

	if err := s.repo.Create(ctx, sess); err != nil {
		s.logger.Error("create session persist failed", zap.String("request_id", rid), zap.Error(err))
		return SessionResponse{}, err
	}

	return mapSessionToResponse(*sess), nil
}

func (s *service) GetAll(ctx context.Context, organizationID string) ([]SessionResponse, error) {
	rows, err := s.repo.FindAllByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return mapSessionsToResponse(rows), nil
}

func (s *service) GetByClient(ctx context.Context, organizationID, clientID string) ([]SessionResponse, error) {
	rows, err := s.repo.FindByClient(ctx, organizationID, clientID)
	if err != nil {
		return nil, err
	}
	return mapSessionsToResponse(rows), nil
}

func (s *service) GetByID(ctx context.Context, organizationID, id string) (SessionResponse, error) {
	sess, err := s.repo.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		return SessionResponse{}, err
	}
	return mapSessionToResponse(*sess), nil
}

// Update edits session metadata. Completed and archived sessions reject it.
func (s *service) Update(
	ctx context.Context,
	organizationID, id string,
	req UpdateSessionRequest,
) (SessionResponse, error) {
	sess, err := s.repo.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		return SessionResponse{}, err
	}
	if MetadataLocked(sess) {
		return SessionResponse{}, sessionerrors.ErrMetadataLocked
	}

	sessionDate, err := time.Parse("2006-01-02", req.SessionDate)
	if err != nil {
		return SessionResponse{}, apperror.InvalidField("session_date")
	}

	sess.SessionDate = sessionDate
	sess.Title = req.Title
	sess.Notes = req.Notes
	sess.SupportPlanID = nil
	if req.SupportPlanID != nil {
		planUUID, err := uuid.Parse(*req.SupportPlanID)
		if err != nil {
			return SessionResponse{}, apperror.InvalidField("support_plan_id")
		}
		sess.SupportPlanID = &planUUID
	}

	if err := s.repo.Update(ctx, sess); err != nil {
		return SessionResponse{}, err
	}
	return mapSessionToResponse(*sess), nil
}

func (s *service) Delete(ctx context.Context, organizationID, id string) error {
	sess, err := s.repo.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		return err
	}
	if MetadataLocked(sess) {
		return sessionerrors.ErrMetadataLocked
	}
	return s.repo.Delete(ctx, organizationID, id)
}

// Transition applies an explicit workflow move requested by staff.
func (s *service) Transition(
	ctx context.Context,
	organizationID, actorID, id string,
	req TransitionRequest,
) (SessionResponse, error) {
	if !ValidStatus(req.To) {
		return SessionResponse{}, sessionerrors.ErrInvalidStatus
	}

	sess, err := s.repo.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		return SessionResponse{}, err
	}

	from := sess.Status
	if err := Transition(sess, req.To); err != nil {
		return SessionResponse{}, err
	}

	if err := s.repo.Update(ctx, sess); err != nil {
		return SessionResponse{}, err
	}

	s.logger.Info("session transitioned",
		zap.String("session_id", sess.ID.String()),
		zap.String("from", from),
		zap.String("to", sess.Status),
		zap.String("actor_id", actorID),
	)

	return mapSessionToResponse(*sess), nil
}

// UpdateConsents flips consent flags. Each flag is independently settable;
// revoking consent does not rewind the status, it only blocks further
// consent-guarded operations.
func (s *service) UpdateConsents(
	ctx context.Context,
	organizationID, id string,
	req UpdateConsentsRequest,
) (SessionResponse, error) {
	sess, err := s.repo.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		return SessionResponse{}, err
	}
	if MetadataLocked(sess) {
		return SessionResponse{}, sessionerrors.ErrMetadataLocked
	}

	if req.RecordingConsent != nil {
		sess.RecordingConsent = *req.RecordingConsent
	}
	if req.AIProcessingConsent != nil {
		sess.AIProcessingConsent = *req.AIProcessingConsent
	}

	if err := s.repo.Update(ctx, sess); err != nil {
		return SessionResponse{}, err
	}
	return mapSessionToResponse(*sess), nil
}

// UploadMedia registers a recording and auto-advances a draft/scheduled
// session to recording. The recording consent guard applies even though the
// transition table is bypassed.
func (s *service) UploadMedia(
	ctx context.Context,
	organizationID, actorID, id string,
	req UploadMediaRequest,
) (MediaAssetResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return MediaAssetResponse{}, apperror.InvalidField("actor_id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return MediaAssetResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sess, err := qtx.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		return MediaAssetResponse{}, err
	}
	if MetadataLocked(sess) {
		return MediaAssetResponse{}, sessionerrors.ErrMetadataLocked
	}
	if !sess.RecordingConsent {
		return MediaAssetResponse{}, sessionerrors.ErrRecordingConsentRequired
	}

	version, err := qtx.NextMediaVersion(ctx, sess.ID.String())
	if err != nil {
		return MediaAssetResponse{}, err
	}

	asset := &MediaAsset{
		ID:             uuid.New(),
		SessionID:      sess.ID,
		Version:        version,
		OrganizationID: sess.OrganizationID,
		FileName:       req.FileName,
		ContentType:    req.ContentType,
		StorageKey:     req.StorageKey,
		DurationSec:    req.DurationSec,
		UploadedByID:   actorUUID,
	}
	if err := qtx.CreateMediaAsset(ctx, asset); err != nil {
		return MediaAssetResponse{}, err
	}

	if err := AdvanceOnMediaUpload(sess); err != nil {
		return MediaAssetResponse{}, err
	}
	if err := qtx.Update(ctx, sess); err != nil {
		return MediaAssetResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return MediaAssetResponse{}, err
	}

	return mapMediaToResponse(*asset), nil
}

func (s *service) GetMediaAssets(ctx context.Context, organizationID, id string) ([]MediaAssetResponse, error) {
	if _, err := s.repo.FindByIDAndOrganization(ctx, organizationID, id); err != nil {
		return nil, err
	}
	rows, err := s.repo.FindMediaAssets(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	out := make([]MediaAssetResponse, 0, len(rows))
	for _, a := range rows {
		out = append(out, mapMediaToResponse(a))
	}
	return out, nil
}

// RequestTranscription is a stub: it records a pending transcript version and
// announces the work through the outbox. The consumer fills the content in
// later.
func (s *service) RequestTranscription(
	ctx context.Context,
	organizationID, actorID, id string,
	req CreateTranscriptRequest,
) (TranscriptResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return TranscriptResponse{}, apperror.InvalidField("actor_id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TranscriptResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sess, err := qtx.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		return TranscriptResponse{}, err
	}
	if !sess.AIProcessingConsent {
		return TranscriptResponse{}, sessionerrors.ErrAIProcessingConsentRequired
	}

	assets, err := qtx.FindMediaAssets(ctx, organizationID, id)
	if err != nil {
		return TranscriptResponse{}, err
	}
	if len(assets) == 0 {
		return TranscriptResponse{}, sessionerrors.ErrNoMediaAsset
	}

	// default to the latest recording
	assetID := assets[len(assets)-1].ID
	if req.MediaAssetID != nil {
		parsed, err := uuid.Parse(*req.MediaAssetID)
		if err != nil {
			return TranscriptResponse{}, apperror.InvalidField("media_asset_id")
		}
		assetID = parsed
	}

	version, err := qtx.NextTranscriptVersion(ctx, sess.ID.String())
	if err != nil {
		return TranscriptResponse{}, err
	}

	language := req.Language
	if language == "" {
		language = "ja"
	}

	transcript := &Transcript{
		ID:             uuid.New(),
		SessionID:      sess.ID,
		Version:        version,
		OrganizationID: sess.OrganizationID,
		MediaAssetID:   &assetID,
		Status:         TranscriptStatusPending,
		Language:       language,
		CreatedByID:    actorUUID,
	}
	if err := qtx.CreateTranscript(ctx, transcript); err != nil {
		return TranscriptResponse{}, err
	}

	if err := AdvanceOnTranscribe(sess); err != nil {
		return TranscriptResponse{}, err
	}
	if err := qtx.Update(ctx, sess); err != nil {
		return TranscriptResponse{}, err
	}

	if s.outbox != nil {
		event := events.SessionTranscriptionRequestedEvent{
			EventType:      "session_transcription_requested",
			SessionID:      sess.ID.String(),
			OrganizationID: organizationID,
			TranscriptID:   transcript.ID.String(),
			MediaAssetID:   assetID.String(),
			RequestedBy:    actorID,
			OccurredAt:     time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return TranscriptResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:             uuid.NewString(),
			RequestID:      rid,
			OrganizationID: organizationID,
			AggregateType:  "interview_session",
			AggregateID:    sess.ID.String(),
			EventType:      event.EventType,
			Topic:          events.SessionTranscriptionRequestedTopic,
			Payload:        payload,
			Status:         kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("transcription outbox persist failed",
				zap.String("session_id", sess.ID.String()),
				zap.Error(err),
			)
			return TranscriptResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return TranscriptResponse{}, err
	}

	s.logger.Info("transcription requested",
		zap.String("request_id", rid),
		zap.String("session_id", sess.ID.String()),
		zap.Int("version", version),
	)

	return mapTranscriptToResponse(*transcript), nil
}

// CompleteTranscription fills a pending transcript with its text. The
// transcription consumer calls it when the requested job finishes; a
// transcript that is already completed is returned unchanged so redelivered
// messages stay harmless.
func (s *service) CompleteTranscription(ctx context.Context, organizationID, transcriptID, content string) (TranscriptResponse, error) {
	transcript, err := s.repo.FindTranscriptByID(ctx, organizationID, transcriptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TranscriptResponse{}, sessionerrors.ErrTranscriptNotFound
		}
		return TranscriptResponse{}, err
	}

	if transcript.Status == TranscriptStatusCompleted {
		return mapTranscriptToResponse(*transcript), nil
	}

	transcript.Status = TranscriptStatusCompleted
	transcript.Content = &content
	if err := s.repo.UpdateTranscript(ctx, transcript); err != nil {
		return TranscriptResponse{}, err
	}

	s.logger.Info("transcription completed",
		zap.String("transcript_id", transcript.ID.String()),
		zap.String("session_id", transcript.SessionID.String()),
		zap.Int("version", transcript.Version),
	)

	return mapTranscriptToResponse(*transcript), nil
}

func (s *service) GetTranscripts(ctx context.Context, organizationID, id string) ([]TranscriptResponse, error) {
	if _, err := s.repo.FindByIDAndOrganization(ctx, organizationID, id); err != nil {
		return nil, err
	}
	rows, err := s.repo.FindTranscripts(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	out := make([]TranscriptResponse, 0, len(rows))
	for _, t := range rows {
		out = append(out, mapTranscriptToResponse(t))
	}
	return out, nil
}

func (s *service) CreateSummary(
	ctx context.Context,
	organizationID, actorID, id string,
	req CreateSummaryRequest,
) (SummaryResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return SummaryResponse{}, apperror.InvalidField("actor_id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SummaryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sess, err := qtx.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		return SummaryResponse{}, err
	}
	if !sess.AIProcessingConsent {
		return SummaryResponse{}, sessionerrors.ErrAIProcessingConsentRequired
	}

	version, err := qtx.NextSummaryVersion(ctx, sess.ID.String())
	if err != nil {
		return SummaryResponse{}, err
	}

	summary := &AISummary{
		ID:             uuid.New(),
		SessionID:      sess.ID,
		Version:        version,
		OrganizationID: sess.OrganizationID,
		Content:        req.Content,
		CreatedByID:    actorUUID,
	}
	if req.TranscriptID != nil {
		parsed, err := uuid.Parse(*req.TranscriptID)
		if err != nil {
			return SummaryResponse{}, apperror.InvalidField("transcript_id")
		}
		summary.TranscriptID = &parsed
	}
	if err := qtx.CreateSummary(ctx, summary); err != nil {
		return SummaryResponse{}, err
	}

	if err := AdvanceOnSummarize(sess); err != nil {
		return SummaryResponse{}, err
	}
	if err := qtx.Update(ctx, sess); err != nil {
		return SummaryResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return SummaryResponse{}, err
	}

	return mapSummaryToResponse(*summary), nil
}

func (s *service) GetSummaries(ctx context.Context, organizationID, id string) ([]SummaryResponse, error) {
	if _, err := s.repo.FindByIDAndOrganization(ctx, organizationID, id); err != nil {
		return nil, err
	}
	rows, err := s.repo.FindSummaries(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	out := make([]SummaryResponse, 0, len(rows))
	for _, sm := range rows {
		out = append(out, mapSummaryToResponse(sm))
	}
	return out, nil
}

func (s *service) CreateExtraction(
	ctx context.Context,
	organizationID, actorID, id string,
	req CreateExtractionRequest,
) (ExtractionResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return ExtractionResponse{}, apperror.InvalidField("actor_id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ExtractionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sess, err := qtx.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		return ExtractionResponse{}, err
	}
	if !sess.AIProcessingConsent {
		return ExtractionResponse{}, sessionerrors.ErrAIProcessingConsentRequired
	}

	version, err := qtx.NextExtractionVersion(ctx, sess.ID.String())
	if err != nil {
		return ExtractionResponse{}, err
	}

	extraction := &AIExtraction{
		ID:             uuid.New(),
		SessionID:      sess.ID,
		Version:        version,
		OrganizationID: sess.OrganizationID,
		Items:          datatypes.JSON(req.Items),
		CreatedByID:    actorUUID,
	}
	if req.TranscriptID != nil {
		parsed, err := uuid.Parse(*req.TranscriptID)
		if err != nil {
			return ExtractionResponse{}, apperror.InvalidField("transcript_id")
		}
		extraction.TranscriptID = &parsed
	}
	if err := qtx.CreateExtraction(ctx, extraction); err != nil {
		return ExtractionResponse{}, err
	}

	if err := AdvanceOnExtract(sess); err != nil {
		return ExtractionResponse{}, err
	}
	if err := qtx.Update(ctx, sess); err != nil {
		return ExtractionResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ExtractionResponse{}, err
	}

	return mapExtractionToResponse(*extraction), nil
}

func (s *service) GetExtractions(ctx context.Context, organizationID, id string) ([]ExtractionResponse, error) {
	if _, err := s.repo.FindByIDAndOrganization(ctx, organizationID, id); err != nil {
		return nil, err
	}
	rows, err := s.repo.FindExtractions(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	out := make([]ExtractionResponse, 0, len(rows))
	for _, e := range rows {
		out = append(out, mapExtractionToResponse(e))
	}
	return out, nil
}

func mapSessionToResponse(s InterviewSession) SessionResponse {
	resp := SessionResponse{
		ID:                  s.ID.String(),
		OrganizationID:      s.OrganizationID.String(),
		ClientID:            s.ClientID.String(),
		SessionDate:         s.SessionDate.Format("2006-01-02"),
		SessionType:         s.SessionType,
		Title:               s.Title,
		Notes:               s.Notes,
		Status:              s.Status,
		RecordingConsent:    s.RecordingConsent,
		AIProcessingConsent: s.AIProcessingConsent,
		CreatedAt:           s.CreatedAt.Format(time.RFC3339),
	}
	if s.SupportPlanID != nil {
		v := s.SupportPlanID.String()
		resp.SupportPlanID = &v
	}
	return resp
}

func mapSessionsToResponse(rows []InterviewSession) []SessionResponse {
	out := make([]SessionResponse, 0, len(rows))
	for _, s := range rows {
		out = append(out, mapSessionToResponse(s))
	}
	return out
}

func mapMediaToResponse(a MediaAsset) MediaAssetResponse {
	return MediaAssetResponse{
		ID:          a.ID.String(),
		SessionID:   a.SessionID.String(),
		Version:     a.Version,
		FileName:    a.FileName,
		ContentType: a.ContentType,
		StorageKey:  a.StorageKey,
		DurationSec: a.DurationSec,
		CreatedAt:   a.CreatedAt.Format(time.RFC3339),
	}
}

func mapTranscriptToResponse(t Transcript) TranscriptResponse {
	resp := TranscriptResponse{
		ID:        t.ID.String(),
		SessionID: t.SessionID.String(),
		Version:   t.Version,
		Status:    t.Status,
		Content:   t.Content,
		Language:  t.Language,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
	}
	if t.MediaAssetID != nil {
		v := t.MediaAssetID.String()
		resp.MediaAssetID = &v
	}
	return resp
}

func mapSummaryToResponse(s AISummary) SummaryResponse {
	resp := SummaryResponse{
		ID:        s.ID.String(),
		SessionID: s.SessionID.String(),
		Version:   s.Version,
		Content:   s.Content,
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
	}
	if s.TranscriptID != nil {
		v := s.TranscriptID.String()
		resp.TranscriptID = &v
	}
	return resp
}

func mapExtractionToResponse(e AIExtraction) ExtractionResponse {
	resp := ExtractionResponse{
		ID:        e.ID.String(),
		SessionID: e.SessionID.String(),
		Version:   e.Version,
		Items:     json.RawMessage(e.Items),
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
	}
	if e.TranscriptID != nil {
		v := e.TranscriptID.String()
		resp.TranscriptID = &v
	}
	return resp
}
