package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-shien/internal/events"
	"go-shien/internal/messaging/kafka/consumer"
	"go-shien/internal/payroll"
	"go-shien/internal/session"
	"go-shien/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	payslipDir := os.Getenv("PAYSLIP_OUTPUT_DIR")
	if payslipDir == "" {
		payslipDir = "payslips"
	}

	payrollRepo := payroll.NewRepository(gormDB)
	payrollService := payroll.NewService(sqlDB, payrollRepo)
	sessionRepo := session.NewRepository(gormDB)
	sessionService := session.NewService(sqlDB, sessionRepo)

	payslipReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.PayrollRunConfirmedTopic,
		GroupID:        "go-shien-payslip",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer payslipReader.Close()

	transcriptionReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.SessionTranscriptionRequestedTopic,
		GroupID:        "go-shien-transcription",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer transcriptionReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumePayrollRunConfirmed(ctx, payslipReader, payrollService, payslipDir, logger)
	go consumer.ConsumeSessionTranscriptionRequested(ctx, transcriptionReader, sessionService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
