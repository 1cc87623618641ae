package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/loomhr/leave-backend-go/internal/config"
	appHTTP "github.com/loomhr/leave-backend-go/internal/handler/http"
	"github.com/loomhr/leave-backend-go/internal/pkg/cron"
	"github.com/loomhr/leave-backend-go/internal/pkg/database"
	"github.com/loomhr/leave-backend-go/internal/pkg/jwt"
	"github.com/loomhr/leave-backend-go/internal/pkg/sse"
	"github.com/loomhr/leave-backend-go/internal/repository/postgresql"
	eligibilityService "github.com/loomhr/leave-backend-go/internal/service/eligibility"
	leaveService "github.com/loomhr/leave-backend-go/internal/service/leave"
	notificationService "github.com/loomhr/leave-backend-go/internal/service/notification"
	slaService "github.com/loomhr/leave-backend-go/internal/service/sla"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		os.Exit(1)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	performanceRepo := postgresql.NewPerformanceRepository(db)
	timeTrackingRepo := postgresql.NewTimeTrackingRepository(db)
	behaviorNoteRepo := postgresql.NewBehaviorNoteRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	slaConfigRepo := postgresql.NewSLAConfigRepository(db)
	slaMetricRepo := postgresql.NewSLAMetricRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	hub := sse.NewHub()
	notifService := notificationService.NewNotificationService(notificationRepo, hub, notificationService.Config{
		BatchSize:     cfg.Notifier.BatchSize,
		FlushInterval: cfg.Notifier.FlushInterval,
		WorkerCount:   cfg.Notifier.WorkerCount,
		QueueSize:     cfg.Notifier.QueueSize,
	})

	slaConfigSvc := slaService.NewConfigService(slaConfigRepo)
	slaTrackerSvc := slaService.NewTrackerService(slaMetricRepo, slaConfigSvc)
	leaveSvc := leaveService.NewService(
		leaveRequestRepo,
		employeeRepo,
		userRepo,
		slaTrackerSvc,
		notifService,
		postgresql.TxRunner(db),
	)
	eligibilitySvc := eligibilityService.NewService(
		employeeRepo,
		performanceRepo,
		timeTrackingRepo,
		behaviorNoteRepo,
		leaveRequestRepo,
	)

	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	slaHandler := appHTTP.NewSLAHandler(slaConfigSvc, slaTrackerSvc)
	eligibilityHandler := appHTTP.NewEligibilityHandler(eligibilitySvc)
	notificationHandler := appHTTP.NewNotificationHandler(notifService, jwtService)

	router := appHTTP.NewRouter(
		jwtService,
		cfg.App.AllowedOrigins,
		leaveHandler,
		slaHandler,
		eligibilityHandler,
		notificationHandler,
	)

	scheduler := cron.NewScheduler()
	slaJobs := cron.NewSLAJobs(slaMetricRepo, userRepo, slaConfigSvc, notifService)
	slaJobs.RegisterJobs(scheduler, cfg.SLAJob.CheckInterval)
	scheduler.Start()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.App.Port, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down")

	scheduler.Stop()
	notifService.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
}
