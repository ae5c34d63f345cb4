package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/reimbursement-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/reimbursement-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/reimbursement-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/reimbursement-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/reimbursement-backend-go/internal/repository"
	serviceAuth "github.com/cmlabs-hris/reimbursement-backend-go/internal/service/auth"
	serviceReimbursement "github.com/cmlabs-hris/reimbursement-backend-go/internal/service/reimbursement"
	serviceUser "github.com/cmlabs-hris/reimbursement-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := appHTTP.NewLogger(cfg.App)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := repository.Open(ctx, cfg)
	if err != nil {
		slog.Error("Error connecting to database", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	jwtService := jwt.NewJWTService(cfg.Session.Secret, cfg.Session.Expiration, cfg.Session.CookieSecure)

	userService := serviceUser.NewUserService(store.Transactor, store.Users, store.Reimbursements, store.Sessions)
	reimbursementService := serviceReimbursement.NewReimbursementService(store.Reimbursements, store.Users)
	authService := serviceAuth.NewAuthService(userService, store.Users, store.Sessions, jwtService)

	authHandler := appHTTP.NewAuthHandler(jwtService, authService)
	userHandler := appHTTP.NewUserHandler(userService)
	reimbursementHandler := appHTTP.NewReimbursementHandler(reimbursementService)

	router := appHTTP.NewRouter(
		cfg.App,
		logger,
		jwtService,
		authService,
		authHandler,
		userHandler,
		reimbursementHandler,
	)

	scheduler := cron.NewScheduler()
	cron.NewSessionJobs(store.Sessions, cfg.Session.PruneInterval).RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
	}()

	slog.Info("Server running", "addr", srv.Addr, "driver", cfg.Database.Driver)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
	}
}
