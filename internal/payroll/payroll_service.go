package payroll

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"strconv"
	"time"

	"go-shien/internal/events"
	"go-shien/internal/messaging/kafka"
	payrollerrors "go-shien/internal/payroll/errors"
	"go-shien/internal/shared/apperror"
	"go-shien/internal/shared/contextutil"
	"go-shien/internal/wagerule"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	CreateRun(ctx context.Context, organizationID, actorID string, req CreateRunRequest) (PayrollRunDetailResponse, error)
	GetAll(ctx context.Context, organizationID string) ([]PayrollRunResponse, error)
	GetByID(ctx context.Context, organizationID, id string) (PayrollRunDetailResponse, error)
	Confirm(ctx context.Context, organizationID, actorID, id string) (PayrollRunResponse, error)
	MarkPaid(ctx context.Context, organizationID, actorID, id string) (PayrollRunResponse, error)
	Delete(ctx context.Context, organizationID, id string) error
	GetPayslip(ctx context.Context, organizationID, runID, lineID string) ([]byte, string, error)
	ExportCSV(ctx context.Context, organizationID, runID string) ([]byte, string, error)
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
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{db: db, repo: repo, outbox: outboxRepo, logger: l}
}

// CreateRun computes a full payroll batch for one calendar month. The overlap
// check, the run row, and every line are written in one transaction so a
// failed computation leaves nothing behind and two concurrent creations
// cannot both land on the same period.
func (s *service) CreateRun(
	ctx context.Context,
	organizationID, actorID string,
	req CreateRunRequest,
) (PayrollRunDetailResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create payroll run requested",
		zap.String("request_id", rid),
		zap.String("organization_id", organizationID),
		zap.String("period", req.Period),
	)

	periodStart, periodEnd, err := parsePeriod(req.Period)
	if err != nil {
		return PayrollRunDetailResponse{}, payrollerrors.ErrInvalidPeriod
	}

	orgUUID, err := uuid.Parse(organizationID)
	if err != nil {
		return PayrollRunDetailResponse{}, apperror.InvalidField("organization_id")
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return PayrollRunDetailResponse{}, apperror.InvalidField("actor_id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create payroll run begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollRunDetailResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindOverlappingRun(ctx, organizationID, periodStart, periodEnd)
	if err != nil {
		return PayrollRunDetailResponse{}, err
	}
	if existing != nil {
		return PayrollRunDetailResponse{}, payrollerrors.ErrRunOverlap(existing.ID.String())
	}

	run := &PayrollRun{
		ID:             uuid.New(),
		OrganizationID: orgUUID,
		PeriodStart:    periodStart,
		PeriodEnd:      periodEnd,
		Status:         StatusCalculating,
		CreatedByID:    actorUUID,
	}
	if err := qtx.CreateRun(ctx, run); err != nil {
		s.logger.Error("create payroll run persist failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollRunDetailResponse{}, err
	}

	clients, err := qtx.ListActiveClients(ctx, organizationID)
	if err != nil {
		return PayrollRunDetailResponse{}, err
	}

	lines := make([]PayrollLine, 0, len(clients))
	for _, cl := range clients {
		line, err := s.computeClientLine(ctx, qtx, run, cl)
		if err != nil {
			s.logger.Error("compute payroll line failed",
				zap.String("request_id", rid),
				zap.String("client_id", cl.ID.String()),
				zap.Error(err),
			)
			return PayrollRunDetailResponse{}, err
		}
		if line == nil {
			continue
		}
		if err := qtx.CreateLine(ctx, line); err != nil {
			return PayrollRunDetailResponse{}, err
		}
		lines = append(lines, *line)
	}

	run.Status = StatusDraft
	if err := qtx.UpdateRun(ctx, run); err != nil {
		return PayrollRunDetailResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create payroll run commit failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollRunDetailResponse{}, err
	}

	s.logger.Info("payroll run created",
		zap.String("request_id", rid),
		zap.String("run_id", run.ID.String()),
		zap.Int("line_count", len(lines)),
	)

	return PayrollRunDetailResponse{
		Run:   mapRunToResponse(*run, lines),
		Lines: mapLinesToResponse(lines),
	}, nil
}

// computeClientLine gathers one client's period inputs and prices them. A nil
// line means the client had no attended days.
func (s *service) computeClientLine(ctx context.Context, qtx Repository, run *PayrollRun, cl ClientRef) (*PayrollLine, error) {
	organizationID := run.OrganizationID.String()
	clientID := cl.ID.String()

	confirmations, err := qtx.FindConfirmations(ctx, organizationID, clientID, run.PeriodStart, run.PeriodEnd)
	if err != nil {
		return nil, err
	}
	logs, err := qtx.FindWorkLogs(ctx, organizationID, clientID, run.PeriodStart, run.PeriodEnd)
	if err != nil {
		return nil, err
	}
	rules, err := qtx.FindWageRules(ctx, organizationID, clientID)
	if err != nil {
		return nil, err
	}

	rule := wagerule.Resolve(rules, clientID, run.PeriodStart, run.PeriodEnd)

	result, err := ComputeLine(rule, confirmations, logs)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}

	breakdown, err := json.Marshal(result.Breakdown)
	if err != nil {
		return nil, err
	}

	return &PayrollLine{
		ID:               uuid.New(),
		RunID:            run.ID,
		OrganizationID:   run.OrganizationID,
		ClientID:         cl.ID,
		WorkDays:         result.WorkDays,
		TotalMinutes:     result.TotalMinutes,
		BaseAmount:       result.BaseAmount,
		PieceAmount:      result.PieceAmount,
		DeductionsAmount: result.DeductionsAmount,
		NetAmount:        result.NetAmount,
		Breakdown:        datatypes.JSON(breakdown),
	}, nil
}

func (s *service) GetAll(ctx context.Context, organizationID string) ([]PayrollRunResponse, error) {
	runs, err := s.repo.FindAllByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	out := make([]PayrollRunResponse, 0, len(runs))
	for _, r := range runs {
		out = append(out, mapRunToResponse(r, nil))
	}
	return out, nil
}

func (s *service) GetByID(ctx context.Context, organizationID, id string) (PayrollRunDetailResponse, error) {
	run, err := s.repo.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		return PayrollRunDetailResponse{}, err
	}
	lines, err := s.repo.FindLinesByRun(ctx, organizationID, id)
	if err != nil {
		return PayrollRunDetailResponse{}, err
	}
	return PayrollRunDetailResponse{
		Run:   mapRunToResponse(*run, lines),
		Lines: mapLinesToResponse(lines),
	}, nil
}

// Confirm freezes a draft run and announces it for payslip generation.
func (s *service) Confirm(ctx context.Context, organizationID, actorID, id string) (PayrollRunResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return PayrollRunResponse{}, apperror.InvalidField("actor_id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollRunResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	run, err := qtx.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		return PayrollRunResponse{}, err
	}
	if run.Status != StatusDraft {
		return PayrollRunResponse{}, payrollerrors.ErrRunNotDraft
	}

	now := time.Now().UTC()
	run.Status = StatusConfirmed
	run.ConfirmedByID = &actorUUID
	run.ConfirmedAt = &now
	if err := qtx.UpdateRun(ctx, run); err != nil {
		return PayrollRunResponse{}, err
	}

	if s.outbox != nil {
		event := events.PayrollRunConfirmedEvent{
			EventType:      "payroll_run_confirmed",
			RunID:          run.ID.String(),
			OrganizationID: organizationID,
			PeriodStart:    run.PeriodStart.Format("2006-01-02"),
			PeriodEnd:      run.PeriodEnd.Format("2006-01-02"),
			ConfirmedBy:    actorID,
			OccurredAt:     now,
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return PayrollRunResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:             uuid.NewString(),
			RequestID:      rid,
			OrganizationID: organizationID,
			AggregateType:  "payroll_run",
			AggregateID:    run.ID.String(),
			EventType:      event.EventType,
			Topic:          events.PayrollRunConfirmedTopic,
			Payload:        payload,
			Status:         kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("confirm payroll run outbox persist failed",
				zap.String("run_id", run.ID.String()),
				zap.Error(err),
			)
			return PayrollRunResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return PayrollRunResponse{}, err
	}

	s.logger.Info("payroll run confirmed",
		zap.String("request_id", rid),
		zap.String("run_id", run.ID.String()),
	)

	return mapRunToResponse(*run, nil), nil
}

func (s *service) MarkPaid(ctx context.Context, organizationID, actorID, id string) (PayrollRunResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollRunResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	run, err := qtx.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		return PayrollRunResponse{}, err
	}
	if run.Status != StatusConfirmed {
		return PayrollRunResponse{}, payrollerrors.ErrRunNotConfirmed
	}

	now := time.Now().UTC()
	run.Status = StatusPaid
	run.PaidAt = &now
	if err := qtx.UpdateRun(ctx, run); err != nil {
		return PayrollRunResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PayrollRunResponse{}, err
	}

	s.logger.Info("payroll run marked paid",
		zap.String("run_id", run.ID.String()),
		zap.String("actor_id", actorID),
	)

	return mapRunToResponse(*run, nil), nil
}

// Delete removes a run while it is still a draft. Confirmed and paid runs
// are part of the payment record and stay.
func (s *service) Delete(ctx context.Context, organizationID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	run, err := qtx.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		return err
	}
	if run.Status != StatusDraft {
		return payrollerrors.ErrRunNotDeletable
	}

	if err := qtx.DeleteRun(ctx, organizationID, id); err != nil {
		return err
	}

	return tx.Commit()
}

// GetPayslip renders one line of a run as a downloadable PDF. It returns the
// document bytes and a suggested filename.
func (s *service) GetPayslip(ctx context.Context, organizationID, runID, lineID string) ([]byte, string, error) {
	run, err := s.repo.FindByIDAndOrganization(ctx, organizationID, runID)
	if err != nil {
		return nil, "", err
	}

	line, err := s.repo.FindLineByID(ctx, organizationID, lineID)
	if err != nil {
		return nil, "", err
	}
	if line.RunID != run.ID {
		return nil, "", payrollerrors.ErrRunNotFound
	}

	ref, err := s.repo.FindClientRef(ctx, organizationID, line.ClientID.String())
	if err != nil {
		return nil, "", err
	}

	pdf, err := BuildPayslipPDF(*run, *line, ref.Name)
	if err != nil {
		return nil, "", err
	}

	filename := "payslip-" + ref.ClientNumber + "-" + run.PeriodStart.Format("2006-01") + ".pdf"
	return pdf, filename, nil
}

// ExportCSV flattens a run's lines into a CSV document, one row per client.
func (s *service) ExportCSV(ctx context.Context, organizationID, runID string) ([]byte, string, error) {
	run, err := s.repo.FindByIDAndOrganization(ctx, organizationID, runID)
	if err != nil {
		return nil, "", err
	}
	lines, err := s.repo.FindLinesByRun(ctx, organizationID, runID)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"client_number", "client_name", "work_days", "total_minutes", "base_amount", "piece_amount", "deductions_amount", "net_amount"})
	for _, l := range lines {
		ref, err := s.repo.FindClientRef(ctx, organizationID, l.ClientID.String())
		if err != nil {
			return nil, "", err
		}
		_ = w.Write([]string{
			ref.ClientNumber,
			ref.Name,
			strconv.Itoa(l.WorkDays),
			strconv.Itoa(l.TotalMinutes),
			strconv.FormatInt(l.BaseAmount, 10),
			strconv.FormatInt(l.PieceAmount, 10),
			strconv.FormatInt(l.DeductionsAmount, 10),
			strconv.FormatInt(l.NetAmount, 10),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}

	filename := "payroll-" + run.PeriodStart.Format("2006-01") + ".csv"
	return buf.Bytes(), filename, nil
}

// parsePeriod expands "YYYY-MM" into the month's first and last day.
func parsePeriod(period string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01", period)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end := start.AddDate(0, 1, -1)
	return start, end, nil
}

func mapRunToResponse(r PayrollRun, lines []PayrollLine) PayrollRunResponse {
	resp := PayrollRunResponse{
		ID:             r.ID.String(),
		OrganizationID: r.OrganizationID.String(),
		PeriodStart:    r.PeriodStart.Format("2006-01-02"),
		PeriodEnd:      r.PeriodEnd.Format("2006-01-02"),
		Status:         r.Status,
		CreatedBy:      r.CreatedByID.String(),
		CreatedAt:      r.CreatedAt.Format(time.RFC3339),
	}
	if r.ConfirmedByID != nil {
		v := r.ConfirmedByID.String()
		resp.ConfirmedBy = &v
	}
	if r.ConfirmedAt != nil {
		v := r.ConfirmedAt.Format(time.RFC3339)
		resp.ConfirmedAt = &v
	}
	if r.PaidAt != nil {
		v := r.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &v
	}
	if lines != nil {
		resp.LineCount = len(lines)
		var total int64
		for _, l := range lines {
			total += l.NetAmount
		}
		resp.TotalNet = total
	}
	return resp
}

func mapLinesToResponse(lines []PayrollLine) []PayrollLineResponse {
	out := make([]PayrollLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, PayrollLineResponse{
			ID:               l.ID.String(),
			RunID:            l.RunID.String(),
			ClientID:         l.ClientID.String(),
			WorkDays:         l.WorkDays,
			TotalMinutes:     l.TotalMinutes,
			BaseAmount:       l.BaseAmount,
			PieceAmount:      l.PieceAmount,
			DeductionsAmount: l.DeductionsAmount,
			NetAmount:        l.NetAmount,
			Breakdown:        json.RawMessage(l.Breakdown),
		})
	}
	return out
}
