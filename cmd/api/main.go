package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/zeez-dotcom/test-2-hr-sub003/internal/config"
	appHTTP "github.com/zeez-dotcom/test-2-hr-sub003/internal/handler/http"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/pkg/cron"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/pkg/database"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/pkg/email"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/pkg/jwt"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/pkg/sse"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/repository/postgresql"
	coverageService "github.com/zeez-dotcom/test-2-hr-sub003/internal/service/coverage"
	leaveService "github.com/zeez-dotcom/test-2-hr-sub003/internal/service/leave"
	notificationService "github.com/zeez-dotcom/test-2-hr-sub003/internal/service/notification"
	payrollService "github.com/zeez-dotcom/test-2-hr-sub003/internal/service/payroll"
	vacationService "github.com/zeez-dotcom/test-2-hr-sub003/internal/service/vacation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := database.NewPostgreSQLDB(context.Background(), cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	loanRepo := postgresql.NewLoanRepository(db)
	eventRepo := postgresql.NewEventRepository(db)
	vacationRepo := postgresql.NewVacationRepository(db)
	policyRepo := postgresql.NewPolicyRepository(db)
	balanceRepo := postgresql.NewBalanceRepository(db)
	runRepo := postgresql.NewPayrollRunRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)
	mailer := email.NewSender(cfg.SMTP)
	hub := sse.NewHub()

	notifier := notificationService.NewNotificationService(
		notificationRepo, employeeRepo, mailer, hub, notificationService.Config{}, logger)
	defer notifier.Close()

	ledger := leaveService.NewLedgerService(policyRepo, balanceRepo, logger)
	payrollSvc := payrollService.NewPayrollService(
		runRepo, employeeRepo, vacationRepo, eventRepo, loanRepo, notifier, cfg.Payroll, logger)
	vacationSvc := vacationService.NewVacationService(
		vacationRepo, employeeRepo, loanRepo, ledger, notifier, logger)
	coverageSvc := coverageService.NewCoverageService(
		vacationRepo, employeeRepo, departmentRepo, cfg.Coverage)

	scheduler := cron.NewScheduler()
	cron.RegisterApprovalReminderJob(scheduler, 6*time.Hour, 48*time.Hour, vacationRepo, notifier)
	scheduler.Start()
	defer scheduler.Stop()

	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	vacationHandler := appHTTP.NewVacationHandler(vacationSvc)
	leaveBalanceHandler := appHTTP.NewLeaveBalanceHandler(ledger)
	coverageHandler := appHTTP.NewCoverageHandler(coverageSvc)
	notificationHandler := appHTTP.NewNotificationHandler(notifier)

	router := appHTTP.NewRouter(
		cfg.App,
		jwtService,
		payrollHandler,
		vacationHandler,
		leaveBalanceHandler,
		coverageHandler,
		notificationHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
