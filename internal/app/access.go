package app

import (
	"context"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"access-service/internal/auth"
	"access-service/internal/config"
	"access-service/internal/messaging/notifier"
	"access-service/internal/repository"
	"access-service/internal/service"
)

func Run(cfg config.Config, logger *zap.SugaredLogger) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// repo and notifier outlive the audit loop so in-flight writes and
	// queued messages can drain on shutdown.
	delayedCtx, delayedCancel := context.WithCancel(context.Background())
	delayedWg := &sync.WaitGroup{}

	repo, err := repository.NewMongoRepository(delayedCtx, logger, delayedWg, cfg.MongoDB)
	if err != nil {
		logger.Fatalw("failed to create repository", "error", err)
	}

	notif := notifier.NewKafkaNotifier(delayedCtx, delayedWg, logger, cfg.Kafka)

	svc := service.NewPermissionService(logger, repo, notif, cfg.Audit.Workers)

	runAuditLoop(ctx, logger, svc, cfg.Audit)
	logger.Info("shutting down")

	logger.Info("shutting down delayed services")
	delayedCancel()
	delayedWg.Wait()
}

// runAuditLoop reconciles every user's permission ledger against their role
// baseline on the configured interval. Blocks until ctx is canceled.
func runAuditLoop(ctx context.Context, logger *zap.SugaredLogger, svc service.Service, cfg config.AuditConfig) {
	if cfg.Interval <= 0 {
		logger.Info("permission audit disabled")
		<-ctx.Done()
		return
	}

	logger.Infow("running permission audits", "interval", cfg.Interval, "removeExtra", cfg.RemoveExtra)

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runAudit(ctx, logger, svc, cfg.RemoveExtra)
		}
	}
}

func runAudit(ctx context.Context, logger *zap.SugaredLogger, svc service.Service, removeExtra bool) {
	batch, err := svc.SyncAllUsers(auth.WithSystemActor(ctx), removeExtra)
	if err != nil {
		logger.Errorw("permission audit failed", "error", err)
		return
	}

	var granted, revoked, failed int
	for _, result := range batch.Results {
		if !result.Succeeded() {
			failed++
			logger.Errorw("failed to sync user", "userId", result.UserId, "error", result.Error)
			continue
		}
		granted += len(result.Sync.Granted)
		revoked += len(result.Sync.Revoked)
	}

	logger.Infow("permission audit complete",
		"users", len(batch.Results), "granted", granted, "revoked", revoked, "failed", failed)
}
