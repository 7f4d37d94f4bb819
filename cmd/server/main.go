// @title        GST IMS API
// @version      1.0
// @description  Invoice Management System reconciliation and portal sync API
// @BasePath     /api/v1

// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"gstims/internal/config"
	"gstims/internal/email/noop"
	"gstims/internal/email/ses"
	"gstims/internal/handler"
	"gstims/internal/notify"
	"gstims/internal/port"
	"gstims/internal/portal/gsp"
	"gstims/internal/recon"
	"gstims/internal/repository/postgres"
	"gstims/internal/router"
	"gstims/internal/service"
	s3storage "gstims/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	inwardRepo := postgres.NewInwardSupplyRepo(db)
	purchaseRepo := postgres.NewPurchaseInvoiceRepo(db)
	returnLogRepo := postgres.NewReturnLogRepo(db)
	integrationRepo := postgres.NewIntegrationRequestRepo(db)
	userRepo := postgres.NewUserRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Email delivery
	var emailSender port.EmailSender
	if cfg.Email.Provider == "ses" {
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	} else {
		emailSender = noop.NewNoopSender()
	}
	notifier := notify.NewEmailNotifier(emailSender, cfg.Notify.Recipients)

	// Background task queue
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	queue := service.NewTaskQueue(&cfg.Queue)
	go queue.Start(ctx, cfg.Queue.Concurrency)

	// Portal client and services
	portalClient := gsp.NewClient(&cfg.Portal)
	reconciler := recon.NewMatcher(inwardRepo, purchaseRepo)

	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	reconSvc := service.NewReconService(inwardRepo, purchaseRepo, returnLogRepo, reconciler)
	actionSvc := service.NewActionService(inwardRepo)
	batcher := service.NewUploadBatcher(inwardRepo)
	syncSvc := service.NewSyncService(inwardRepo, returnLogRepo, integrationRepo, batcher, portalClient, queue, notifier)
	exportSvc := service.NewExportService(reconSvc, s3Client, cfg.S3)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	imsH := handler.NewIMSHandler(reconSvc, actionSvc)
	syncH := handler.NewSyncHandler(syncSvc)
	exportH := handler.NewExportHandler(exportSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, authSvc, authH, imsH, syncH, exportH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Println("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
