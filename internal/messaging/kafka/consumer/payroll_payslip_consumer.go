package consumer

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"go-shien/internal/events"
	"go-shien/internal/payroll"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumePayrollRunConfirmed renders a payslip PDF for every line of a
// confirmed run and drops the files into outputDir.
func ConsumePayrollRunConfirmed(
	ctx context.Context,
	reader *kafkago.Reader,
	payrollService payroll.Service,
	outputDir string,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payroll_payslip")
	log.Info("payroll payslip consumer started", zap.String("output_dir", outputDir))

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payroll payslip consumer stopped")
				return
			}
			log.Error("fetch payroll run confirmed message failed", zap.Error(err))
			continue
		}

		var event events.PayrollRunConfirmedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode payroll run confirmed event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := renderRunPayslips(ctx, payrollService, outputDir, event, log); err != nil {
			log.Error("render payslips failed",
				zap.String("run_id", event.RunID),
				zap.String("organization_id", event.OrganizationID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit payroll run confirmed message failed", zap.Error(err))
			continue
		}

		log.Info("payslips rendered for confirmed run",
			zap.String("run_id", event.RunID),
			zap.String("organization_id", event.OrganizationID),
		)
	}
}

func renderRunPayslips(
	ctx context.Context,
	payrollService payroll.Service,
	outputDir string,
	event events.PayrollRunConfirmedEvent,
	logger *zap.Logger,
) error {
	detail, err := payrollService.GetByID(ctx, event.OrganizationID, event.RunID)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}

	for _, line := range detail.Lines {
		pdf, filename, err := payrollService.GetPayslip(ctx, event.OrganizationID, event.RunID, line.ID)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(outputDir, filename), pdf, 0o644); err != nil {
			return err
		}
		logger.Info("payslip written",
			zap.String("line_id", line.ID),
			zap.String("file", filename),
		)
	}

	return nil
}
