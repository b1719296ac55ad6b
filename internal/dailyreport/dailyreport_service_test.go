package dailyreport_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"go-shien/internal/dailyreport"
	reporterrors "go-shien/internal/dailyreport/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeDailyReportRepository struct {
	createFn        func(ctx context.Context, r *dailyreport.DailyReport) error
	findByDateFn    func(ctx context.Context, organizationID, clientID string, date time.Time) (*dailyreport.DailyReport, error)
	findByPeriodFn  func(ctx context.Context, organizationID, clientID string, from, to time.Time) ([]dailyreport.DailyReport, error)
	findByOrgDateFn func(ctx context.Context, organizationID string, date time.Time) ([]dailyreport.DailyReport, error)
	findByIDFn      func(ctx context.Context, organizationID, id string) (*dailyreport.DailyReport, error)
	updateFn        func(ctx context.Context, r *dailyreport.DailyReport) error
}

func (f *fakeDailyReportRepository) WithTx(tx *sql.Tx) dailyreport.Repository { return f }

func (f *fakeDailyReportRepository) Create(ctx context.Context, r *dailyreport.DailyReport) error {
	if f.createFn != nil {
		return f.createFn(ctx, r)
	}
	return nil
}

func (f *fakeDailyReportRepository) FindByClientAndDate(ctx context.Context, organizationID, clientID string, date time.Time) (*dailyreport.DailyReport, error) {
	if f.findByDateFn != nil {
		return f.findByDateFn(ctx, organizationID, clientID, date)
	}
	return nil, nil
}

func (f *fakeDailyReportRepository) FindByClientAndPeriod(ctx context.Context, organizationID, clientID string, from, to time.Time) ([]dailyreport.DailyReport, error) {
	if f.findByPeriodFn != nil {
		return f.findByPeriodFn(ctx, organizationID, clientID, from, to)
	}
	return nil, nil
}

func (f *fakeDailyReportRepository) FindByOrganizationAndDate(ctx context.Context, organizationID string, date time.Time) ([]dailyreport.DailyReport, error) {
	if f.findByOrgDateFn != nil {
		return f.findByOrgDateFn(ctx, organizationID, date)
	}
	return nil, nil
}

func (f *fakeDailyReportRepository) FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*dailyreport.DailyReport, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, organizationID, id)
	}
	return nil, errors.New("not configured")
}

func (f *fakeDailyReportRepository) Update(ctx context.Context, r *dailyreport.DailyReport) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, r)
	}
	return nil
}

func TestDailyReportService_Create(t *testing.T) {
	organizationID := uuid.NewString()
	clientID := uuid.NewString()
	ctx := context.Background()

	t.Run("first report of the day succeeds", func(t *testing.T) {
		repo := &fakeDailyReportRepository{}
		svc := dailyreport.NewService(nil, repo)

		var created *dailyreport.DailyReport
		repo.createFn = func(ctx context.Context, r *dailyreport.DailyReport) error {
			created = r
			return nil
		}

		resp, err := svc.Create(ctx, organizationID, clientID, dailyreport.CreateDailyReportRequest{
			ReportDate: "2026-08-21",
			Mood:       dailyreport.MoodGood,
		})

		assert.NoError(t, err)
		assert.Equal(t, dailyreport.MoodGood, resp.Mood)
		assert.Equal(t, clientID, created.ClientID.String())
	})

	t.Run("a second report for the same date is a conflict", func(t *testing.T) {
		repo := &fakeDailyReportRepository{
			findByDateFn: func(ctx context.Context, orgID, cID string, date time.Time) (*dailyreport.DailyReport, error) {
				return &dailyreport.DailyReport{ID: uuid.New()}, nil
			},
		}
		svc := dailyreport.NewService(nil, repo)

		_, err := svc.Create(ctx, organizationID, clientID, dailyreport.CreateDailyReportRequest{
			ReportDate: "2026-08-21",
			Mood:       dailyreport.MoodNormal,
		})

		assert.ErrorIs(t, err, reporterrors.ErrReportAlreadyExists)
	})

	t.Run("unknown mood is rejected", func(t *testing.T) {
		svc := dailyreport.NewService(nil, &fakeDailyReportRepository{})

		_, err := svc.Create(ctx, organizationID, clientID, dailyreport.CreateDailyReportRequest{
			ReportDate: "2026-08-21",
			Mood:       "ecstatic",
		})

		assert.ErrorIs(t, err, reporterrors.ErrInvalidMood)
	})
}

func TestDailyReportService_Comment(t *testing.T) {
	organizationID := uuid.NewString()
	staffID := uuid.NewString()
	ctx := context.Background()

	report := &dailyreport.DailyReport{
		ID:         uuid.New(),
		ClientID:   uuid.New(),
		ReportDate: time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC),
		Mood:       dailyreport.MoodBad,
	}
	repo := &fakeDailyReportRepository{
		findByIDFn: func(ctx context.Context, orgID, id string) (*dailyreport.DailyReport, error) {
			return report, nil
		},
	}
	svc := dailyreport.NewService(nil, repo)

	resp, err := svc.Comment(ctx, organizationID, staffID, report.ID.String(), dailyreport.CommentRequest{
		Comment: "様子を見て声かけします",
	})

	assert.NoError(t, err)
	assert.NotNil(t, resp.StaffComment)
	assert.Equal(t, "様子を見て声かけします", *resp.StaffComment)
	assert.Equal(t, staffID, *resp.CommentedByID)
}
