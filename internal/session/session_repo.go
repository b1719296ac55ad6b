package session

import (
	"context"
	"database/sql"

	"go-shien/internal/shared/connection"
	"go-shien/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=session_repo.go -destination=mock/session_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	Create(ctx context.Context, s *InterviewSession) error
	FindAllByOrganization(ctx context.Context, organizationID string) ([]InterviewSession, error)
	FindByClient(ctx context.Context, organizationID, clientID string) ([]InterviewSession, error)
	FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*InterviewSession, error)
	Update(ctx context.Context, s *InterviewSession) error
	Delete(ctx context.Context, organizationID, id string) error

	CreateMediaAsset(ctx context.Context, a *MediaAsset) error
	FindMediaAssets(ctx context.Context, organizationID, sessionID string) ([]MediaAsset, error)
	NextMediaVersion(ctx context.Context, sessionID string) (int, error)

	CreateTranscript(ctx context.Context, t *Transcript) error
	FindTranscripts(ctx context.Context, organizationID, sessionID string) ([]Transcript, error)
	FindTranscriptByID(ctx context.Context, organizationID, id string) (*Transcript, error)
	UpdateTranscript(ctx context.Context, t *Transcript) error
	NextTranscriptVersion(ctx context.Context, sessionID string) (int, error)

	CreateSummary(ctx context.Context, s *AISummary) error
	FindSummaries(ctx context.Context, organizationID, sessionID string) ([]AISummary, error)
	NextSummaryVersion(ctx context.Context, sessionID string) (int, error)

	CreateExtraction(ctx context.Context, e *AIExtraction) error
	FindExtractions(ctx context.Context, organizationID, sessionID string) ([]AIExtraction, error)
	NextExtractionVersion(ctx context.Context, sessionID string) (int, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.GORMTx(tx)}
}

func (r *repository) Create(ctx context.Context, s *InterviewSession) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindAllByOrganization(ctx context.Context, organizationID string) ([]InterviewSession, error) {
	var rows []InterviewSession
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Order("session_date DESC, created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByClient(ctx context.Context, organizationID, clientID string) ([]InterviewSession, error) {
	var rows []InterviewSession
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("client_id = ?", clientID).
		Order("session_date DESC, created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*InterviewSession, error) {
	var s InterviewSession
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("id = ?", id).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) Update(ctx context.Context, s *InterviewSession) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *repository) Delete(ctx context.Context, organizationID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("id = ?", id).
		Delete(&InterviewSession{}).Error
}

func (r *repository) CreateMediaAsset(ctx context.Context, a *MediaAsset) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindMediaAssets(ctx context.Context, organizationID, sessionID string) ([]MediaAsset, error) {
	var rows []MediaAsset
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("session_id = ?", sessionID).
		Order("version ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) NextMediaVersion(ctx context.Context, sessionID string) (int, error) {
	return r.nextVersion(ctx, &MediaAsset{}, sessionID)
}

func (r *repository) CreateTranscript(ctx context.Context, t *Transcript) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) FindTranscripts(ctx context.Context, organizationID, sessionID string) ([]Transcript, error) {
	var rows []Transcript
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("session_id = ?", sessionID).
		Order("version ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindTranscriptByID(ctx context.Context, organizationID, id string) (*Transcript, error) {
	var t Transcript
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("id = ?", id).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) UpdateTranscript(ctx context.Context, t *Transcript) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *repository) NextTranscriptVersion(ctx context.Context, sessionID string) (int, error) {
	return r.nextVersion(ctx, &Transcript{}, sessionID)
}

func (r *repository) CreateSummary(ctx context.Context, s *AISummary) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindSummaries(ctx context.Context, organizationID, sessionID string) ([]AISummary, error) {
	var rows []AISummary
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("session_id = ?", sessionID).
		Order("version ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) NextSummaryVersion(ctx context.Context, sessionID string) (int, error) {
	return r.nextVersion(ctx, &AISummary{}, sessionID)
}

func (r *repository) CreateExtraction(ctx context.Context, e *AIExtraction) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindExtractions(ctx context.Context, organizationID, sessionID string) ([]AIExtraction, error) {
	var rows []AIExtraction
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("session_id = ?", sessionID).
		Order("version ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) NextExtractionVersion(ctx context.Context, sessionID string) (int, error) {
	return r.nextVersion(ctx, &AIExtraction{}, sessionID)
}

// nextVersion allocates the next per-session version. The unique index on
// (session_id, version) turns a lost race into an insert error rather than a
// silent overwrite.
func (r *repository) nextVersion(ctx context.Context, model any, sessionID string) (int, error) {
	var current sql.NullInt64
	err := r.db.WithContext(ctx).
		Model(model).
		Where("session_id = ?", sessionID).
		Select("MAX(version)").
		Scan(&current).Error
	if err != nil {
		return 0, err
	}
	return int(current.Int64) + 1, nil
}
