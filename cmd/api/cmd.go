package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GregMSThompson/ledger-backend/internal/bootstrap"
	"github.com/GregMSThompson/ledger-backend/internal/config"
	"github.com/GregMSThompson/ledger-backend/internal/handlers"
	"github.com/GregMSThompson/ledger-backend/internal/live"
	"github.com/GregMSThompson/ledger-backend/internal/response"
	"github.com/GregMSThompson/ledger-backend/internal/router"
	"github.com/GregMSThompson/ledger-backend/internal/services"
	"github.com/GregMSThompson/ledger-backend/internal/store"
)

const shutdownTimeout = 10 * time.Second

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(ctx, cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// stores
	ustore := store.NewUserStore(bs.Firestore)
	cstore := store.NewCategoryStore(bs.Firestore)
	astore := store.NewAccountStore(bs.Firestore)
	tstore := store.NewTransactionStore(bs.Firestore)
	rstore := store.NewRecurringStore(bs.Firestore)
	istore := store.NewInstallmentStore(bs.Firestore)

	// services
	userv := services.NewUserService(ustore)
	cserv := services.NewCategoryService(cstore)
	aserv := services.NewAccountService(astore, tstore)
	tserv := services.NewTransactionService(tstore, astore, cserv, cfg.Limit)
	pserv := services.NewPlannerService(rstore, istore, astore)
	sserv := services.NewSummaryService(astore, tstore, cserv, cfg.Location)

	// live feed
	hub := live.NewHub(astore, tstore)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.Auth = bs.Firebase
	deps.UserSvc = userv
	deps.CategorySvc = cserv
	deps.AccountSvc = aserv
	deps.LedgerSvc = tserv
	deps.PlannerSvc = pserv
	deps.SummarySvc = sserv
	deps.LiveFeed = hub

	// router
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		bs.Log.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			exitOnError("server start failed", err, bs.Log)
		}
	}()

	<-ctx.Done()
	bs.Log.Info("shutting down")

	// closing the hub disconnects every client, which closes their sessions
	if err := hub.Close(); err != nil {
		bs.Log.Warn("failed to close live hub", "error", err)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		bs.Log.Error("server shutdown failed", "error", err)
	}
}
