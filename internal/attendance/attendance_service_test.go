package attendance_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-shien/internal/attendance"
	attendanceerrors "go-shien/internal/attendance/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeAttendanceRepository struct {
	createReportFn      func(ctx context.Context, a *attendance.AttendanceReport) error
	findReportFn        func(ctx context.Context, organizationID, clientID string, date time.Time) (*attendance.AttendanceReport, error)
	findReportsFn       func(ctx context.Context, organizationID, clientID string, from, to time.Time) ([]attendance.AttendanceReport, error)
	updateReportFn      func(ctx context.Context, a *attendance.AttendanceReport) error
	upsertFn            func(ctx context.Context, c *attendance.AttendanceConfirmation) error
	findByPeriodFn      func(ctx context.Context, organizationID string, from, to time.Time) ([]attendance.AttendanceConfirmation, error)
	findByClientPerioFn func(ctx context.Context, organizationID, clientID string, from, to time.Time) ([]attendance.AttendanceConfirmation, error)
}

func (f *fakeAttendanceRepository) WithTx(tx *sql.Tx) attendance.Repository { return f }

func (f *fakeAttendanceRepository) CreateReport(ctx context.Context, a *attendance.AttendanceReport) error {
	if f.createReportFn != nil {
		return f.createReportFn(ctx, a)
	}
	return nil
}

func (f *fakeAttendanceRepository) FindReportByClientAndDate(ctx context.Context, organizationID, clientID string, date time.Time) (*attendance.AttendanceReport, error) {
	if f.findReportFn != nil {
		return f.findReportFn(ctx, organizationID, clientID, date)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttendanceRepository) FindReportsByClientAndPeriod(ctx context.Context, organizationID, clientID string, from, to time.Time) ([]attendance.AttendanceReport, error) {
	if f.findReportsFn != nil {
		return f.findReportsFn(ctx, organizationID, clientID, from, to)
	}
	return nil, nil
}

func (f *fakeAttendanceRepository) UpdateReport(ctx context.Context, a *attendance.AttendanceReport) error {
	if f.updateReportFn != nil {
		return f.updateReportFn(ctx, a)
	}
	return nil
}

func (f *fakeAttendanceRepository) UpsertConfirmation(ctx context.Context, c *attendance.AttendanceConfirmation) error {
	if f.upsertFn != nil {
		return f.upsertFn(ctx, c)
	}
	return nil
}

func (f *fakeAttendanceRepository) FindConfirmationsByPeriod(ctx context.Context, organizationID string, from, to time.Time) ([]attendance.AttendanceConfirmation, error) {
	if f.findByPeriodFn != nil {
		return f.findByPeriodFn(ctx, organizationID, from, to)
	}
	return nil, nil
}

func (f *fakeAttendanceRepository) FindConfirmationsByClientAndPeriod(ctx context.Context, organizationID, clientID string, from, to time.Time) ([]attendance.AttendanceConfirmation, error) {
	if f.findByClientPerioFn != nil {
		return f.findByClientPerioFn(ctx, organizationID, clientID, from, to)
	}
	return nil, nil
}

type attendanceServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	repo    *fakeAttendanceRepository
	service attendance.Service
}

func setupAttendanceServiceTest(t *testing.T) *attendanceServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	repo := &fakeAttendanceRepository{}

	return &attendanceServiceDeps{
		db:      db,
		sqlMock: sqlMock,
		repo:    repo,
		service: attendance.NewService(db, repo),
	}
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

func TestAttendanceService_CheckIn(t *testing.T) {
	organizationID := uuid.NewString()
	clientID := uuid.NewString()
	ctx := context.Background()

	t.Run("first check-in of the day succeeds", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		var created *attendance.AttendanceReport
		deps.repo.createReportFn = func(ctx context.Context, a *attendance.AttendanceReport) error {
			created = a
			return nil
		}

		resp, err := deps.service.CheckIn(ctx, organizationID, clientID, attendance.CheckInRequest{})

		assert.NoError(t, err)
		assert.Equal(t, clientID, resp.ClientID)
		assert.NotNil(t, created)
		assert.Nil(t, created.CheckOutTime)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("second check-in on the same date is rejected", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findReportFn = func(ctx context.Context, orgID, cID string, date time.Time) (*attendance.AttendanceReport, error) {
			return &attendance.AttendanceReport{ID: uuid.New()}, nil
		}

		_, err := deps.service.CheckIn(ctx, organizationID, clientID, attendance.CheckInRequest{})

		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedIn)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestAttendanceService_CheckOut(t *testing.T) {
	organizationID := uuid.NewString()
	clientID := uuid.NewString()
	ctx := context.Background()

	t.Run("stamps the open report", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		open := &attendance.AttendanceReport{
			ID:             uuid.New(),
			OrganizationID: uuid.MustParse(organizationID),
			ClientID:       uuid.MustParse(clientID),
			CheckInTime:    time.Now().UTC().Add(-4 * time.Hour),
		}
		deps.repo.findReportFn = func(ctx context.Context, orgID, cID string, date time.Time) (*attendance.AttendanceReport, error) {
			return open, nil
		}

		resp, err := deps.service.CheckOut(ctx, organizationID, clientID, attendance.CheckOutRequest{})

		assert.NoError(t, err)
		assert.NotNil(t, resp.CheckOutTime)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("without a check-in it fails", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.CheckOut(ctx, organizationID, clientID, attendance.CheckOutRequest{})

		assert.ErrorIs(t, err, attendanceerrors.ErrNoCheckIn)
	})

	t.Run("double check-out is rejected", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		done := time.Now().UTC()
		deps.repo.findReportFn = func(ctx context.Context, orgID, cID string, date time.Time) (*attendance.AttendanceReport, error) {
			return &attendance.AttendanceReport{ID: uuid.New(), CheckOutTime: &done}, nil
		}

		_, err := deps.service.CheckOut(ctx, organizationID, clientID, attendance.CheckOutRequest{})

		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedOut)
	})
}

func TestAttendanceService_Confirm(t *testing.T) {
	organizationID := uuid.NewString()
	staffID := uuid.NewString()
	clientID := uuid.NewString()
	ctx := context.Background()

	t.Run("valid confirmation is upserted", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		var saved *attendance.AttendanceConfirmation
		deps.repo.upsertFn = func(ctx context.Context, c *attendance.AttendanceConfirmation) error {
			saved = c
			return nil
		}

		minutes := 360
		resp, err := deps.service.Confirm(ctx, organizationID, staffID, attendance.ConfirmRequest{
			ClientID:       clientID,
			AttendanceDate: "2026-08-03",
			Status:         attendance.StatusLate,
			ActualMinutes:  &minutes,
		})

		assert.NoError(t, err)
		assert.Equal(t, attendance.StatusLate, resp.Status)
		assert.Equal(t, staffID, saved.ConfirmedByID.String())
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("unknown status is rejected before the tx", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Confirm(ctx, organizationID, staffID, attendance.ConfirmRequest{
			ClientID:       clientID,
			AttendanceDate: "2026-08-03",
			Status:         "vacation",
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidStatus)
	})

	t.Run("check-out before check-in is rejected", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		in := "2026-08-03T15:00:00Z"
		out := "2026-08-03T09:00:00Z"
		_, err := deps.service.Confirm(ctx, organizationID, staffID, attendance.ConfirmRequest{
			ClientID:       clientID,
			AttendanceDate: "2026-08-03",
			Status:         attendance.StatusPresent,
			CheckInTime:    &in,
			CheckOutTime:   &out,
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidTimeRange)
	})
}

func TestAttendanceService_GetConfirmations(t *testing.T) {
	organizationID := uuid.NewString()
	ctx := context.Background()

	t.Run("month bounds cover the whole calendar month", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByPeriodFn = func(ctx context.Context, orgID string, from, to time.Time) ([]attendance.AttendanceConfirmation, error) {
			assert.Equal(t, "2026-02-01", from.Format("2006-01-02"))
			assert.Equal(t, "2026-02-28", to.Format("2006-01-02"))
			return nil, nil
		}

		_, err := deps.service.GetConfirmations(ctx, organizationID, "", "2026-02")
		assert.NoError(t, err)
	})

	t.Run("bad month format is rejected", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.GetConfirmations(ctx, organizationID, "", "Feb 2026")
		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidMonthFormat)
	})
}
