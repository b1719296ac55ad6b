package app

import (
	"database/sql"
	"path/filepath"

	"go-shien/internal/attendance"
	"go-shien/internal/auth"
	"go-shien/internal/certificate"
	"go-shien/internal/client"
	"go-shien/internal/dailyreport"
	"go-shien/internal/messaging/kafka"
	"go-shien/internal/payroll"
	"go-shien/internal/rbac"
	"go-shien/internal/rbac/infra"
	"go-shien/internal/report"
	"go-shien/internal/session"
	"go-shien/internal/shared/counter"
	"go-shien/internal/supportplan"
	"go-shien/internal/wagerule"
	"go-shien/internal/worklog"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	certificateRepo := certificate.NewRepository(gormDB)
	clientRepo := client.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	dailyReportRepo := dailyreport.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	payrollRepo := payroll.NewRepository(gormDB)
	reportRepo := report.NewRepository(gormDB)
	sessionRepo := session.NewRepository(gormDB)
	supportPlanRepo := supportplan.NewRepository(gormDB)
	wageRuleRepo := wagerule.NewRepository(gormDB)
	workLogRepo := worklog.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	authService := auth.NewService(authRepo, rbacService)
	attendanceService := attendance.NewService(db, attendanceRepo)
	certificateService := certificate.NewService(db, certificateRepo)
	clientService := client.NewService(db, clientRepo, counterRepo, rdb)
	dailyReportService := dailyreport.NewService(db, dailyReportRepo)
	payrollService := payroll.NewServiceWithOutbox(db, payrollRepo, outboxRepo)
	reportService := report.NewService(db, reportRepo, payrollService)
	sessionService := session.NewServiceWithOutbox(db, sessionRepo, outboxRepo)
	supportPlanService := supportplan.NewService(db, supportPlanRepo)
	wageRuleService := wagerule.NewService(db, wageRuleRepo)
	workLogService := worklog.NewService(db, workLogRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	certificateHandler := certificate.NewHandler(certificateService)
	clientHandler := client.NewHandler(clientService)
	dailyReportHandler := dailyreport.NewHandler(dailyReportService)
	payrollHandler := payroll.NewHandlerWithRedis(payrollService, rdb)
	rbacHandler := rbac.NewHandler(rbacService)
	reportHandler := report.NewHandler(reportService)
	sessionHandler := session.NewHandler(sessionService)
	supportPlanHandler := supportplan.NewHandler(supportPlanService)
	wageRuleHandler := wagerule.NewHandler(wageRuleService)
	workLogHandler := worklog.NewHandler(workLogService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
		certificate.RegisterRoutes(api, certificateHandler, rbacService)
		client.RegisterRoutes(api, clientHandler, rbacService)
		dailyreport.RegisterRoutes(api, dailyReportHandler, rbacService)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, rdb)
		report.RegisterRoutes(api, reportHandler, rbacService)
		session.RegisterRoutes(api, sessionHandler, rbacService)
		supportplan.RegisterRoutes(api, supportPlanHandler, rbacService)
		wagerule.RegisterRoutes(api, wageRuleHandler, rbacService)
		worklog.RegisterRoutes(api, workLogHandler, rbacService)
	}

	rbac.RegisterRoutes(router, rbacHandler)

	return nil
}
