package main

import (
	"context"
	"fmt"
	"log"
	"time"

	dig_container "github.com/AnnonDomini/Exam-Bombers-V1/apps/api/di/dig"
	echoapi "github.com/AnnonDomini/Exam-Bombers-V1/apps/api/echo"
	"github.com/AnnonDomini/Exam-Bombers-V1/core"
	"github.com/AnnonDomini/Exam-Bombers-V1/core/session"
)

const sessionPurgeInterval = time.Hour

func startWithDig() {
	c := dig_container.New()

	must(c.Invoke(func(
		conf *core.Config,
		apiLogger core.Logger,
		sessionSvc session.Service,
		server *echoapi.Server,
	) {
		defer func() { _ = apiLogger.Sync() }()

		// =========================================================================
		// Initialize App

		apiLogger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
		defer apiLogger.Info("Application stopped")

		// =========================================================================
		// Purge expired sessions

		purgeCtx, stopPurge := context.WithCancel(context.Background())
		defer stopPurge()
		go purgeSessions(purgeCtx, sessionSvc, apiLogger)

		// =========================================================================
		// Start API Service

		go func() {
			server.Start()
		}()

		// =========================================================================
		// Shutdown

		select {
		case err := <-server.Errors():
			apiLogger.Fatal(fmt.Sprintf("server error: %v", err), err)

		case sig := <-server.ShutdownSignal():
			apiLogger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

			// give outstanding requests a deadline for completion
			ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
			defer cancel()

			// asking listener to shut down and shed load
			if err := server.Shutdown(ctx); err != nil {
				apiLogger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

				if err = server.Close(); err != nil {
					apiLogger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
				}
			}
		}
	}))
}

func purgeSessions(ctx context.Context, svc session.Service, logger core.Logger) {
	ticker := time.NewTicker(sessionPurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := svc.Purge()
			if err != nil {
				logger.Error(fmt.Sprintf("purging sessions: %v", err), err)
				continue
			}
			if n > 0 {
				logger.Debug(fmt.Sprintf("purged %d expired sessions", n))
			}
		}
	}
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
