package session_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"go-shien/internal/events"
	"go-shien/internal/messaging/kafka"
	"go-shien/internal/session"
	sessionerrors "go-shien/internal/session/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeSessionRepository struct {
	withTxFn                func(tx *sql.Tx) session.Repository
	createFn                func(ctx context.Context, s *session.InterviewSession) error
	findAllFn               func(ctx context.Context, organizationID string) ([]session.InterviewSession, error)
	findByClientFn          func(ctx context.Context, organizationID, clientID string) ([]session.InterviewSession, error)
	findByIDFn              func(ctx context.Context, organizationID, id string) (*session.InterviewSession, error)
	updateFn                func(ctx context.Context, s *session.InterviewSession) error
	deleteFn                func(ctx context.Context, organizationID, id string) error
	createMediaAssetFn      func(ctx context.Context, a *session.MediaAsset) error
	findMediaAssetsFn       func(ctx context.Context, organizationID, sessionID string) ([]session.MediaAsset, error)
	nextMediaVersionFn      func(ctx context.Context, sessionID string) (int, error)
	createTranscriptFn      func(ctx context.Context, t *session.Transcript) error
	findTranscriptsFn       func(ctx context.Context, organizationID, sessionID string) ([]session.Transcript, error)
	findTranscriptByIDFn    func(ctx context.Context, organizationID, id string) (*session.Transcript, error)
	updateTranscriptFn      func(ctx context.Context, t *session.Transcript) error
	nextTranscriptVersionFn func(ctx context.Context, sessionID string) (int, error)
	createSummaryFn         func(ctx context.Context, s *session.AISummary) error
	findSummariesFn         func(ctx context.Context, organizationID, sessionID string) ([]session.AISummary, error)
	nextSummaryVersionFn    func(ctx context.Context, sessionID string) (int, error)
	createExtractionFn      func(ctx context.Context, e *session.AIExtraction) error
	findExtractionsFn       func(ctx context.Context, organizationID, sessionID string) ([]session.AIExtraction, error)
	nextExtractionVersionFn func(ctx context.Context, sessionID string) (int, error)
}

func (f *fakeSessionRepository) WithTx(tx *sql.Tx) session.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeSessionRepository) Create(ctx context.Context, s *session.InterviewSession) error {
	if f.createFn != nil {
		return f.createFn(ctx, s)
	}
	return nil
}

func (f *fakeSessionRepository) FindAllByOrganization(ctx context.Context, organizationID string) ([]session.InterviewSession, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, organizationID)
	}
	return nil, nil
}

func (f *fakeSessionRepository) FindByClient(ctx context.Context, organizationID, clientID string) ([]session.InterviewSession, error) {
	if f.findByClientFn != nil {
		return f.findByClientFn(ctx, organizationID, clientID)
	}
	return nil, nil
}

func (f *fakeSessionRepository) FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*session.InterviewSession, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, organizationID, id)
	}
	return nil, nil
}

func (f *fakeSessionRepository) Update(ctx context.Context, s *session.InterviewSession) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, s)
	}
	return nil
}

func (f *fakeSessionRepository) Delete(ctx context.Context, organizationID, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, organizationID, id)
	}
	return nil
}

func (f *fakeSessionRepository) CreateMediaAsset(ctx context.Context, a *session.MediaAsset) error {
	if f.createMediaAssetFn != nil {
		return f.createMediaAssetFn(ctx, a)
	}
	return nil
}

func (f *fakeSessionRepository) FindMediaAssets(ctx context.Context, organizationID, sessionID string) ([]session.MediaAsset, error) {
	if f.findMediaAssetsFn != nil {
		return f.findMediaAssetsFn(ctx, organizationID, sessionID)
	}
	return nil, nil
}

func (f *fakeSessionRepository) NextMediaVersion(ctx context.Context, sessionID string) (int, error) {
	if f.nextMediaVersionFn != nil {
		return f.nextMediaVersionFn(ctx, sessionID)
	}
	return 1, nil
}

func (f *fakeSessionRepository) CreateTranscript(ctx context.Context, t *session.Transcript) error {
	if f.createTranscriptFn != nil {
		return f.createTranscriptFn(ctx, t)
	}
	return nil
}

func (f *fakeSessionRepository) FindTranscripts(ctx context.Context, organizationID, sessionID string) ([]session.Transcript, error) {
	if f.findTranscriptsFn != nil {
		return f.findTranscriptsFn(ctx, organizationID, sessionID)
	}
	return nil, nil
}

func (f *fakeSessionRepository) FindTranscriptByID(ctx context.Context, organizationID, id string) (*session.Transcript, error) {
	if f.findTranscriptByIDFn != nil {
		return f.findTranscriptByIDFn(ctx, organizationID, id)
	}
	return nil, nil
}

func (f *fakeSessionRepository) UpdateTranscript(ctx context.Context, t *session.Transcript) error {
	if f.updateTranscriptFn != nil {
		return f.updateTranscriptFn(ctx, t)
	}
	return nil
}

func (f *fakeSessionRepository) NextTranscriptVersion(ctx context.Context, sessionID string) (int, error) {
	if f.nextTranscriptVersionFn != nil {
		return f.nextTranscriptVersionFn(ctx, sessionID)
	}
	return 1, nil
}

func (f *fakeSessionRepository) CreateSummary(ctx context.Context, s *session.AISummary) error {
	if f.createSummaryFn != nil {
		return f.createSummaryFn(ctx, s)
	}
	return nil
}

func (f *fakeSessionRepository) FindSummaries(ctx context.Context, organizationID, sessionID string) ([]session.AISummary, error) {
	if f.findSummariesFn != nil {
		return f.findSummariesFn(ctx, organizationID, sessionID)
	}
	return nil, nil
}

func (f *fakeSessionRepository) NextSummaryVersion(ctx context.Context, sessionID string) (int, error) {
	if f.nextSummaryVersionFn != nil {
		return f.nextSummaryVersionFn(ctx, sessionID)
	}
	return 1, nil
}

func (f *fakeSessionRepository) CreateExtraction(ctx context.Context, e *session.AIExtraction) error {
	if f.createExtractionFn != nil {
		return f.createExtractionFn(ctx, e)
	}
	return nil
}

func (f *fakeSessionRepository) FindExtractions(ctx context.Context, organizationID, sessionID string) ([]session.AIExtraction, error) {
	if f.findExtractionsFn != nil {
		return f.findExtractionsFn(ctx, organizationID, sessionID)
	}
	return nil, nil
}

func (f *fakeSessionRepository) NextExtractionVersion(ctx context.Context, sessionID string) (int, error) {
	if f.nextExtractionVersionFn != nil {
		return f.nextExtractionVersionFn(ctx, sessionID)
	}
	return 1, nil
}

type fakeOutboxRepository struct {
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type sessionServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service session.Service
	repo    *fakeSessionRepository
	outbox  *fakeOutboxRepository
}

func setupSessionServiceTest(t *testing.T) *sessionServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeSessionRepository{}
	outbox := &fakeOutboxRepository{}
	svc := session.NewServiceWithOutbox(db, repo, outbox)

	return &sessionServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo, outbox: outbox}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func storedSession(organizationID string, status string) *session.InterviewSession {
	return &session.InterviewSession{
		ID:                  uuid.New(),
		OrganizationID:      uuid.MustParse(organizationID),
		ClientID:            uuid.New(),
		SessionDate:         time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC),
		SessionType:         session.TypeInterview,
		Title:               "monthly check-in",
		Status:              status,
		RecordingConsent:    true,
		AIProcessingConsent: true,
	}
}

func TestSessionService_Update_LockedWhenCompleted(t *testing.T) {
	ctx := context.Background()
	organizationID := uuid.New().String()

	deps := setupSessionServiceTest(t)
	defer deps.db.Close()

	deps.repo.findByIDFn = func(ctx context.Context, orgID, id string) (*session.InterviewSession, error) {
		return storedSession(organizationID, session.StatusCompleted), nil
	}

	_, err := deps.service.Update(ctx, organizationID, uuid.New().String(), session.UpdateSessionRequest{
		SessionDate: "2025-09-11",
		Title:       "edited",
	})

	assert.ErrorIs(t, err, sessionerrors.ErrMetadataLocked)
}

func TestSessionService_Transition(t *testing.T) {
	ctx := context.Background()
	organizationID := uuid.New().String()

	t.Run("legal transition persists", func(t *testing.T) {
		deps := setupSessionServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, orgID, id string) (*session.InterviewSession, error) {
			return storedSession(organizationID, session.StatusDraft), nil
		}

		var saved *session.InterviewSession
		deps.repo.updateFn = func(ctx context.Context, s *session.InterviewSession) error {
			saved = s
			return nil
		}

		resp, err := deps.service.Transition(ctx, organizationID, uuid.New().String(), uuid.New().String(), session.TransitionRequest{To: session.StatusScheduled})

		assert.NoError(t, err)
		assert.Equal(t, session.StatusScheduled, resp.Status)
		assert.Equal(t, session.StatusScheduled, saved.Status)
	})

	t.Run("illegal transition leaves state untouched", func(t *testing.T) {
		deps := setupSessionServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, orgID, id string) (*session.InterviewSession, error) {
			return storedSession(organizationID, session.StatusCompleted), nil
		}
		deps.repo.updateFn = func(ctx context.Context, s *session.InterviewSession) error {
			t.Fatal("a rejected transition must not be persisted")
			return nil
		}

		_, err := deps.service.Transition(ctx, organizationID, uuid.New().String(), uuid.New().String(), session.TransitionRequest{To: session.StatusDraft})

		assert.Error(t, err)
	})
}

func TestSessionService_UploadMedia(t *testing.T) {
	ctx := context.Background()
	organizationID := uuid.New().String()
	actorID := uuid.New().String()

	t.Run("first upload advances draft to recording", func(t *testing.T) {
		deps := setupSessionServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		sess := storedSession(organizationID, session.StatusDraft)
		deps.repo.findByIDFn = func(ctx context.Context, orgID, id string) (*session.InterviewSession, error) {
			return sess, nil
		}

		resp, err := deps.service.UploadMedia(ctx, organizationID, actorID, sess.ID.String(), session.UploadMediaRequest{
			FileName:    "interview.m4a",
			ContentType: "audio/mp4",
			StorageKey:  "sessions/interview.m4a",
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, resp.Version)
		assert.Equal(t, session.StatusRecording, sess.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("upload without recording consent is rejected", func(t *testing.T) {
		deps := setupSessionServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		sess := storedSession(organizationID, session.StatusDraft)
		sess.RecordingConsent = false
		deps.repo.findByIDFn = func(ctx context.Context, orgID, id string) (*session.InterviewSession, error) {
			return sess, nil
		}

		_, err := deps.service.UploadMedia(ctx, organizationID, actorID, sess.ID.String(), session.UploadMediaRequest{
			FileName:    "interview.m4a",
			ContentType: "audio/mp4",
			StorageKey:  "sessions/interview.m4a",
		})

		assert.ErrorIs(t, err, sessionerrors.ErrRecordingConsentRequired)
		assert.Equal(t, session.StatusDraft, sess.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestSessionService_RequestTranscription(t *testing.T) {
	ctx := context.Background()
	organizationID := uuid.New().String()
	actorID := uuid.New().String()

	t.Run("creates pending version and announces the request", func(t *testing.T) {
		deps := setupSessionServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		sess := storedSession(organizationID, session.StatusRecording)
		assetID := uuid.New()
		deps.repo.findByIDFn = func(ctx context.Context, orgID, id string) (*session.InterviewSession, error) {
			return sess, nil
		}
		deps.repo.findMediaAssetsFn = func(ctx context.Context, orgID, sessionID string) ([]session.MediaAsset, error) {
			return []session.MediaAsset{{ID: assetID, SessionID: sess.ID, Version: 1}}, nil
		}
		deps.repo.nextTranscriptVersionFn = func(ctx context.Context, sessionID string) (int, error) {
			return 3, nil
		}

		var published kafka.OutboxEvent
		deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			published = event
			return nil
		}

		resp, err := deps.service.RequestTranscription(ctx, organizationID, actorID, sess.ID.String(), session.CreateTranscriptRequest{})

		assert.NoError(t, err)
		assert.Equal(t, 3, resp.Version)
		assert.Equal(t, session.TranscriptStatusPending, resp.Status)
		assert.Equal(t, session.StatusTranscribing, sess.Status)
		assert.Equal(t, events.SessionTranscriptionRequestedTopic, published.Topic)

		var event events.SessionTranscriptionRequestedEvent
		assert.NoError(t, json.Unmarshal(published.Payload, &event))
		assert.Equal(t, assetID.String(), event.MediaAssetID)
		assert.Equal(t, resp.ID, event.TranscriptID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("rejected without AI processing consent", func(t *testing.T) {
		deps := setupSessionServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		sess := storedSession(organizationID, session.StatusRecording)
		sess.AIProcessingConsent = false
		deps.repo.findByIDFn = func(ctx context.Context, orgID, id string) (*session.InterviewSession, error) {
			return sess, nil
		}

		_, err := deps.service.RequestTranscription(ctx, organizationID, actorID, sess.ID.String(), session.CreateTranscriptRequest{})

		assert.ErrorIs(t, err, sessionerrors.ErrAIProcessingConsentRequired)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("rejected without a recording", func(t *testing.T) {
		deps := setupSessionServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		sess := storedSession(organizationID, session.StatusRecording)
		deps.repo.findByIDFn = func(ctx context.Context, orgID, id string) (*session.InterviewSession, error) {
			return sess, nil
		}

		_, err := deps.service.RequestTranscription(ctx, organizationID, actorID, sess.ID.String(), session.CreateTranscriptRequest{})

		assert.ErrorIs(t, err, sessionerrors.ErrNoMediaAsset)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestSessionService_CreateExtraction_Completes(t *testing.T) {
	ctx := context.Background()
	organizationID := uuid.New().String()
	actorID := uuid.New().String()

	deps := setupSessionServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)

	sess := storedSession(organizationID, session.StatusProcessing)
	deps.repo.findByIDFn = func(ctx context.Context, orgID, id string) (*session.InterviewSession, error) {
		return sess, nil
	}

	resp, err := deps.service.CreateExtraction(ctx, organizationID, actorID, sess.ID.String(), session.CreateExtractionRequest{
		Items: json.RawMessage(`{"action_items":["follow up next week"]}`),
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, resp.Version)
	assert.Equal(t, session.StatusCompleted, sess.Status)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}
