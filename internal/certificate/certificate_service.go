package certificate

import (
	"context"
	"database/sql"
	"time"

	certerrors "go-shien/internal/certificate/errors"
	"go-shien/internal/shared/apperror"
	"go-shien/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=certificate_service.go -destination=mock/certificate_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, organizationID string, req CreateCertificateRequest) (CertificateResponse, error)
	GetAll(ctx context.Context, organizationID string) ([]CertificateResponse, error)
	GetByClient(ctx context.Context, organizationID, clientID string) ([]CertificateResponse, error)
	GetByID(ctx context.Context, organizationID, id string) (CertificateResponse, error)
	Update(ctx context.Context, organizationID, id string, req UpdateCertificateRequest) (CertificateResponse, error)
	Delete(ctx context.Context, organizationID, id string) error
	ExpiryReport(ctx context.Context, organizationID string) (ExpiryReportResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("certificate.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("certificate.service")
	}
	return &service{db: db, repo: repo, logger: l, now: time.Now}
}

func (s *service) Create(
	ctx context.Context,
	organizationID string,
	req CreateCertificateRequest,
) (CertificateResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create certificate requested",
		zap.String("request_id", rid),
		zap.String("organization_id", organizationID),
		zap.String("certificate_type", req.CertificateType),
	)

	orgUUID, err := uuid.Parse(organizationID)
	if err != nil {
		return CertificateResponse{}, apperror.InvalidField("organization_id")
	}
	clientUUID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return CertificateResponse{}, apperror.InvalidField("client_id")
	}

	cert := &Certificate{
		ID:             uuid.New(),
		OrganizationID: orgUUID,
		ClientID:       clientUUID,
		Number:         req.Number,
		Notes:          req.Notes,
	}
	if err := applyCertificateFields(cert, req.CertificateType, req.ValidFrom, req.ValidUntil, s.now()); err != nil {
		return CertificateResponse{}, err
	}

	if err := s.repo.Create(ctx, cert); err != nil {
		s.logger.Error("create certificate persist failed", zap.String("request_id", rid), zap.Error(err))
		return CertificateResponse{}, err
	}

	return s.mapToResponse(*cert), nil
}

func (s *service) GetAll(ctx context.Context, organizationID string) ([]CertificateResponse, error) {
	rows, err := s.repo.FindAllByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return s.mapToListResponse(rows), nil
}

func (s *service) GetByClient(ctx context.Context, organizationID, clientID string) ([]CertificateResponse, error) {
	rows, err := s.repo.FindByClient(ctx, organizationID, clientID)
	if err != nil {
		return nil, err
	}
	return s.mapToListResponse(rows), nil
}

func (s *service) GetByID(ctx context.Context, organizationID, id string) (CertificateResponse, error) {
	cert, err := s.repo.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		return CertificateResponse{}, err
	}
	return s.mapToResponse(*cert), nil
}

func (s *service) Update(
	ctx context.Context,
	organizationID, id string,
	req UpdateCertificateRequest,
) (CertificateResponse, error) {
	cert, err := s.repo.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		return CertificateResponse{}, err
	}

	cert.Number = req.Number
	cert.Notes = req.Notes
	if err := applyCertificateFields(cert, req.CertificateType, req.ValidFrom, req.ValidUntil, s.now()); err != nil {
		return CertificateResponse{}, err
	}

	if err := s.repo.Update(ctx, cert); err != nil {
		return CertificateResponse{}, err
	}
	return s.mapToResponse(*cert), nil
}

func (s *service) Delete(ctx context.Context, organizationID, id string) error {
	if _, err := s.repo.FindByIDAndOrganization(ctx, organizationID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, organizationID, id)
}

// ExpiryReport buckets everything ending within 90 days into the three
// bands, classifying against today rather than trusting the stored status.
func (s *service) ExpiryReport(ctx context.Context, organizationID string) (ExpiryReportResponse, error) {
	today := s.now()
	cutoff := today.AddDate(0, 0, 90)

	rows, err := s.repo.FindExpiringBy(ctx, organizationID, cutoff)
	if err != nil {
		return ExpiryReportResponse{}, err
	}

	report := ExpiryReportResponse{
		GeneratedAt:  today.UTC().Format(time.RFC3339),
		Expired:      []CertificateResponse{},
		ExpiringSoon: []CertificateResponse{},
		Within90Days: []CertificateResponse{},
	}
	for _, cert := range rows {
		resp := s.mapToResponse(cert)
		switch resp.Status {
		case StatusExpired:
			report.Expired = append(report.Expired, resp)
		case StatusExpiringSoon:
			report.ExpiringSoon = append(report.ExpiringSoon, resp)
		case StatusWithin90Days:
			report.Within90Days = append(report.Within90Days, resp)
		}
	}
	return report, nil
}

// applyCertificateFields validates type and dates and stamps the write-time
// status.
func applyCertificateFields(cert *Certificate, certType, validFrom, validUntil string, now time.Time) error {
	if !ValidCertificateType(certType) {
		return certerrors.ErrInvalidCertificateType
	}
	from, err := time.Parse("2006-01-02", validFrom)
	if err != nil {
		return apperror.InvalidField("valid_from")
	}
	until, err := time.Parse("2006-01-02", validUntil)
	if err != nil {
		return apperror.InvalidField("valid_until")
	}
	if until.Before(from) {
		return certerrors.ErrInvalidValidityWindow
	}

	cert.CertificateType = certType
	cert.ValidFrom = from
	cert.ValidUntil = until
	cert.Status = Classify(now, until)
	return nil
}

func (s *service) mapToResponse(c Certificate) CertificateResponse {
	return CertificateResponse{
		ID:              c.ID.String(),
		OrganizationID:  c.OrganizationID.String(),
		ClientID:        c.ClientID.String(),
		CertificateType: c.CertificateType,
		Number:          c.Number,
		ValidFrom:       c.ValidFrom.Format("2006-01-02"),
		ValidUntil:      c.ValidUntil.Format("2006-01-02"),
		Status:          Classify(s.now(), c.ValidUntil),
		Notes:           c.Notes,
	}
}

func (s *service) mapToListResponse(rows []Certificate) []CertificateResponse {
	out := make([]CertificateResponse, 0, len(rows))
	for _, c := range rows {
		out = append(out, s.mapToResponse(c))
	}
	return out
}
