package report

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"strconv"
	"time"

	"go-shien/internal/attendance"
	"go-shien/internal/payroll"
	reporterrors "go-shien/internal/report/errors"

	"go.uber.org/zap"
)

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	MonthlyAttendanceCSV(ctx context.Context, organizationID, month string) ([]byte, string, error)
	PayrollRunCSV(ctx context.Context, organizationID, runID string) ([]byte, string, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	payroll payroll.Service
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, payrollService payroll.Service, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{db: db, repo: repo, payroll: payrollService, logger: l}
}

type attendanceTally struct {
	attended   int
	absent     int
	late       int
	leaveEarly int
	minutes    int64
}

// MonthlyAttendanceCSV aggregates staff confirmations per active client for
// one calendar month. Self-declared reports are never counted here.
func (s *service) MonthlyAttendanceCSV(ctx context.Context, organizationID, month string) ([]byte, string, error) {
	from, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, "", reporterrors.ErrInvalidMonth
	}
	to := from.AddDate(0, 1, -1)

	clients, err := s.repo.ListActiveClients(ctx, organizationID)
	if err != nil {
		return nil, "", err
	}
	confirmations, err := s.repo.FindConfirmationsByPeriod(ctx, organizationID, from, to)
	if err != nil {
		return nil, "", err
	}

	byClient := make(map[string]*attendanceTally, len(clients))
	for _, c := range confirmations {
		t := byClient[c.ClientID.String()]
		if t == nil {
			t = &attendanceTally{}
			byClient[c.ClientID.String()] = t
		}
		switch c.Status {
		case attendance.StatusPresent:
			t.attended++
		case attendance.StatusLate:
			t.attended++
			t.late++
		case attendance.StatusLeaveEarly:
			t.attended++
			t.leaveEarly++
		case attendance.StatusAbsent:
			t.absent++
		}
		t.minutes += confirmedMinutes(c)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{
		"client_number", "client_name", "days_attended", "days_absent",
		"days_late", "days_leave_early", "total_minutes",
	})
	for _, cl := range clients {
		t := byClient[cl.ID.String()]
		if t == nil {
			t = &attendanceTally{}
		}
		_ = w.Write([]string{
			cl.ClientNumber,
			cl.Name,
			strconv.Itoa(t.attended),
			strconv.Itoa(t.absent),
			strconv.Itoa(t.late),
			strconv.Itoa(t.leaveEarly),
			strconv.FormatInt(t.minutes, 10),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}

	s.logger.Info("monthly attendance report generated",
		zap.String("organization_id", organizationID),
		zap.String("month", month),
		zap.Int("clients", len(clients)),
	)

	filename := "attendance-" + month + ".csv"
	return buf.Bytes(), filename, nil
}

// PayrollRunCSV reuses the payroll export so both download paths emit the
// same columns for the same run.
func (s *service) PayrollRunCSV(ctx context.Context, organizationID, runID string) ([]byte, string, error) {
	return s.payroll.ExportCSV(ctx, organizationID, runID)
}

func confirmedMinutes(c attendance.AttendanceConfirmation) int64 {
	if !attendance.CountsAsAttended(c.Status) {
		return 0
	}
	if c.ActualMinutes != nil && *c.ActualMinutes > 0 {
		return int64(*c.ActualMinutes)
	}
	if c.CheckInTime != nil && c.CheckOutTime != nil && c.CheckOutTime.After(*c.CheckInTime) {
		return int64(c.CheckOutTime.Sub(*c.CheckInTime) / time.Minute)
	}
	return 0
}
