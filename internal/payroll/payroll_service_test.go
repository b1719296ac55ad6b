package payroll_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"go-shien/internal/attendance"
	"go-shien/internal/events"
	"go-shien/internal/messaging/kafka"
	"go-shien/internal/payroll"
	payrollerrors "go-shien/internal/payroll/errors"
	"go-shien/internal/wagerule"
	"go-shien/internal/worklog"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakePayrollRepository struct {
	withTxFn             func(tx *sql.Tx) payroll.Repository
	createRunFn          func(ctx context.Context, run *payroll.PayrollRun) error
	createLineFn         func(ctx context.Context, line *payroll.PayrollLine) error
	findOverlappingRunFn func(ctx context.Context, organizationID string, periodStart, periodEnd time.Time) (*payroll.PayrollRun, error)
	findAllFn            func(ctx context.Context, organizationID string) ([]payroll.PayrollRun, error)
	findByIDFn           func(ctx context.Context, organizationID, id string) (*payroll.PayrollRun, error)
	findLinesByRunFn     func(ctx context.Context, organizationID, runID string) ([]payroll.PayrollLine, error)
	findLineByIDFn       func(ctx context.Context, organizationID, lineID string) (*payroll.PayrollLine, error)
	findClientRefFn      func(ctx context.Context, organizationID, clientID string) (*payroll.ClientRef, error)
	updateRunFn          func(ctx context.Context, run *payroll.PayrollRun) error
	deleteRunFn          func(ctx context.Context, organizationID, id string) error
	listActiveClientsFn  func(ctx context.Context, organizationID string) ([]payroll.ClientRef, error)
	findConfirmationsFn  func(ctx context.Context, organizationID, clientID string, from, to time.Time) ([]attendance.AttendanceConfirmation, error)
	findWorkLogsFn       func(ctx context.Context, organizationID, clientID string, from, to time.Time) ([]worklog.WorkLog, error)
	findWageRulesFn      func(ctx context.Context, organizationID, clientID string) ([]wagerule.WageRule, error)
}

func (f *fakePayrollRepository) WithTx(tx *sql.Tx) payroll.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakePayrollRepository) CreateRun(ctx context.Context, run *payroll.PayrollRun) error {
	if f.createRunFn != nil {
		return f.createRunFn(ctx, run)
	}
	return nil
}

func (f *fakePayrollRepository) CreateLine(ctx context.Context, line *payroll.PayrollLine) error {
	if f.createLineFn != nil {
		return f.createLineFn(ctx, line)
	}
	return nil
}

func (f *fakePayrollRepository) FindOverlappingRun(ctx context.Context, organizationID string, periodStart, periodEnd time.Time) (*payroll.PayrollRun, error) {
	if f.findOverlappingRunFn != nil {
		return f.findOverlappingRunFn(ctx, organizationID, periodStart, periodEnd)
	}
	return nil, nil
}

func (f *fakePayrollRepository) FindAllByOrganization(ctx context.Context, organizationID string) ([]payroll.PayrollRun, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, organizationID)
	}
	return nil, nil
}

func (f *fakePayrollRepository) FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*payroll.PayrollRun, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, organizationID, id)
	}
	return nil, nil
}

func (f *fakePayrollRepository) FindLinesByRun(ctx context.Context, organizationID, runID string) ([]payroll.PayrollLine, error) {
	if f.findLinesByRunFn != nil {
		return f.findLinesByRunFn(ctx, organizationID, runID)
	}
	return nil, nil
}

func (f *fakePayrollRepository) FindLineByID(ctx context.Context, organizationID, lineID string) (*payroll.PayrollLine, error) {
	if f.findLineByIDFn != nil {
		return f.findLineByIDFn(ctx, organizationID, lineID)
	}
	return nil, nil
}

func (f *fakePayrollRepository) FindClientRef(ctx context.Context, organizationID, clientID string) (*payroll.ClientRef, error) {
	if f.findClientRefFn != nil {
		return f.findClientRefFn(ctx, organizationID, clientID)
	}
	return nil, nil
}

func (f *fakePayrollRepository) UpdateRun(ctx context.Context, run *payroll.PayrollRun) error {
	if f.updateRunFn != nil {
		return f.updateRunFn(ctx, run)
	}
	return nil
}

func (f *fakePayrollRepository) DeleteRun(ctx context.Context, organizationID, id string) error {
	if f.deleteRunFn != nil {
		return f.deleteRunFn(ctx, organizationID, id)
	}
	return nil
}

func (f *fakePayrollRepository) ListActiveClients(ctx context.Context, organizationID string) ([]payroll.ClientRef, error) {
	if f.listActiveClientsFn != nil {
		return f.listActiveClientsFn(ctx, organizationID)
	}
	return nil, nil
}

func (f *fakePayrollRepository) FindConfirmations(ctx context.Context, organizationID, clientID string, from, to time.Time) ([]attendance.AttendanceConfirmation, error) {
	if f.findConfirmationsFn != nil {
		return f.findConfirmationsFn(ctx, organizationID, clientID, from, to)
	}
	return nil, nil
}

func (f *fakePayrollRepository) FindWorkLogs(ctx context.Context, organizationID, clientID string, from, to time.Time) ([]worklog.WorkLog, error) {
	if f.findWorkLogsFn != nil {
		return f.findWorkLogsFn(ctx, organizationID, clientID, from, to)
	}
	return nil, nil
}

func (f *fakePayrollRepository) FindWageRules(ctx context.Context, organizationID, clientID string) ([]wagerule.WageRule, error) {
	if f.findWageRulesFn != nil {
		return f.findWageRulesFn(ctx, organizationID, clientID)
	}
	return nil, nil
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

type payrollServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service payroll.Service
	repo    *fakePayrollRepository
	outbox  *fakeOutboxRepository
}

func setupPayrollServiceTest(t *testing.T) *payrollServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakePayrollRepository{}
	outbox := &fakeOutboxRepository{}
	svc := payroll.NewServiceWithOutbox(db, repo, outbox)

	return &payrollServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo, outbox: outbox}
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

func TestPayrollService_CreateRun(t *testing.T) {
	ctx := context.Background()
	organizationID := uuid.New().String()
	actorID := uuid.New().String()
	clientA := uuid.New()
	clientB := uuid.New()

	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)

	deps.repo.listActiveClientsFn = func(ctx context.Context, orgID string) ([]payroll.ClientRef, error) {
		return []payroll.ClientRef{
			{ID: clientA, ClientNumber: "CL-000001", Name: "Client A"},
			{ID: clientB, ClientNumber: "CL-000002", Name: "Client B"},
		}, nil
	}
	deps.repo.findConfirmationsFn = func(ctx context.Context, orgID, clientID string, from, to time.Time) ([]attendance.AttendanceConfirmation, error) {
		// client B never attended, so it must not get a line
		if clientID == clientB.String() {
			return nil, nil
		}
		return []attendance.AttendanceConfirmation{
			{ClientID: clientA, AttendanceDate: from, Status: attendance.StatusPresent},
		}, nil
	}
	hourly := int64(1000)
	deps.repo.findWageRulesFn = func(ctx context.Context, orgID, clientID string) ([]wagerule.WageRule, error) {
		return []wagerule.WageRule{{
			ID:              uuid.New(),
			CalculationType: wagerule.CalcHourly,
			HourlyRate:      &hourly,
			ValidFrom:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			IsDefault:       true,
		}}, nil
	}

	var createdLines []payroll.PayrollLine
	deps.repo.createLineFn = func(ctx context.Context, line *payroll.PayrollLine) error {
		createdLines = append(createdLines, *line)
		return nil
	}

	resp, err := deps.service.CreateRun(ctx, organizationID, actorID, payroll.CreateRunRequest{Period: "2025-09"})

	assert.NoError(t, err)
	assert.Equal(t, payroll.StatusDraft, resp.Run.Status)
	assert.Equal(t, "2025-09-01", resp.Run.PeriodStart)
	assert.Equal(t, "2025-09-30", resp.Run.PeriodEnd)
	assert.Len(t, resp.Lines, 1)
	assert.Len(t, createdLines, 1)
	assert.Equal(t, clientA, createdLines[0].ClientID)
	assert.Equal(t, int64(8000), createdLines[0].NetAmount)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_CreateRun_OverlapRejected(t *testing.T) {
	ctx := context.Background()
	organizationID := uuid.New().String()
	actorID := uuid.New().String()
	existingID := uuid.New()

	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, false)
	deps.repo.findOverlappingRunFn = func(ctx context.Context, orgID string, start, end time.Time) (*payroll.PayrollRun, error) {
		return &payroll.PayrollRun{ID: existingID}, nil
	}

	_, err := deps.service.CreateRun(ctx, organizationID, actorID, payroll.CreateRunRequest{Period: "2025-09"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), existingID.String())
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_CreateRun_InvalidPeriod(t *testing.T) {
	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	_, err := deps.service.CreateRun(context.Background(), uuid.New().String(), uuid.New().String(), payroll.CreateRunRequest{Period: "September 2025"})

	assert.ErrorIs(t, err, payrollerrors.ErrInvalidPeriod)
}

func TestPayrollService_Confirm(t *testing.T) {
	ctx := context.Background()
	organizationID := uuid.New().String()
	actorID := uuid.New().String()
	runID := uuid.New()

	t.Run("draft run is confirmed and announced", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDFn = func(ctx context.Context, orgID, id string) (*payroll.PayrollRun, error) {
			return &payroll.PayrollRun{
				ID:             runID,
				OrganizationID: uuid.MustParse(organizationID),
				PeriodStart:    time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
				PeriodEnd:      time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC),
				Status:         payroll.StatusDraft,
			}, nil
		}

		var published kafka.OutboxEvent
		deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			published = event
			return nil
		}

		resp, err := deps.service.Confirm(ctx, organizationID, actorID, runID.String())

		assert.NoError(t, err)
		assert.Equal(t, payroll.StatusConfirmed, resp.Status)
		assert.NotNil(t, resp.ConfirmedBy)
		assert.Equal(t, events.PayrollRunConfirmedTopic, published.Topic)

		var event events.PayrollRunConfirmedEvent
		assert.NoError(t, json.Unmarshal(published.Payload, &event))
		assert.Equal(t, runID.String(), event.RunID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("confirmed run is rejected", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDFn = func(ctx context.Context, orgID, id string) (*payroll.PayrollRun, error) {
			return &payroll.PayrollRun{ID: runID, Status: payroll.StatusConfirmed}, nil
		}

		_, err := deps.service.Confirm(ctx, organizationID, actorID, runID.String())

		assert.ErrorIs(t, err, payrollerrors.ErrRunNotDraft)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestPayrollService_MarkPaid(t *testing.T) {
	ctx := context.Background()
	organizationID := uuid.New().String()
	actorID := uuid.New().String()
	runID := uuid.New()

	t.Run("confirmed run is marked paid", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDFn = func(ctx context.Context, orgID, id string) (*payroll.PayrollRun, error) {
			return &payroll.PayrollRun{ID: runID, Status: payroll.StatusConfirmed}, nil
		}

		resp, err := deps.service.MarkPaid(ctx, organizationID, actorID, runID.String())

		assert.NoError(t, err)
		assert.Equal(t, payroll.StatusPaid, resp.Status)
		assert.NotNil(t, resp.PaidAt)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("draft run cannot be paid", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDFn = func(ctx context.Context, orgID, id string) (*payroll.PayrollRun, error) {
			return &payroll.PayrollRun{ID: runID, Status: payroll.StatusDraft}, nil
		}

		_, err := deps.service.MarkPaid(ctx, organizationID, actorID, runID.String())

		assert.ErrorIs(t, err, payrollerrors.ErrRunNotConfirmed)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestPayrollService_Delete_OnlyDraft(t *testing.T) {
	ctx := context.Background()
	organizationID := uuid.New().String()
	runID := uuid.New()

	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, false)
	deps.repo.findByIDFn = func(ctx context.Context, orgID, id string) (*payroll.PayrollRun, error) {
		return &payroll.PayrollRun{ID: runID, Status: payroll.StatusPaid}, nil
	}

	err := deps.service.Delete(ctx, organizationID, runID.String())

	assert.ErrorIs(t, err, payrollerrors.ErrRunNotDeletable)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_GetPayslip(t *testing.T) {
	ctx := context.Background()
	organizationID := uuid.New().String()
	runID := uuid.New()
	lineID := uuid.New()
	clientID := uuid.New()

	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	deps.repo.findByIDFn = func(ctx context.Context, orgID, id string) (*payroll.PayrollRun, error) {
		return &payroll.PayrollRun{
			ID:          runID,
			PeriodStart: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
			PeriodEnd:   time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC),
			Status:      payroll.StatusConfirmed,
		}, nil
	}
	deps.repo.findLineByIDFn = func(ctx context.Context, orgID, id string) (*payroll.PayrollLine, error) {
		return &payroll.PayrollLine{ID: lineID, RunID: runID, ClientID: clientID, NetAmount: 8010}, nil
	}
	deps.repo.findClientRefFn = func(ctx context.Context, orgID, id string) (*payroll.ClientRef, error) {
		return &payroll.ClientRef{ID: clientID, ClientNumber: "CL-000001", Name: "Client A"}, nil
	}

	pdf, filename, err := deps.service.GetPayslip(ctx, organizationID, runID.String(), lineID.String())

	assert.NoError(t, err)
	assert.Equal(t, "payslip-CL-000001-2025-09.pdf", filename)
	assert.Contains(t, string(pdf), "8010 JPY")
}
