package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/GregMSThompson/ledger-backend/internal/handlers"
	"github.com/GregMSThompson/ledger-backend/internal/middleware"
)

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()

	lm := middleware.NewLoggerMiddleware(deps.Log)
	am := middleware.NewMiddleware(deps.Auth)

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(lm.LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	ush := handlers.NewUserHandlers(deps)
	cth := handlers.NewCategoryHandlers(deps)
	ach := handlers.NewAccountHandlers(deps)
	txh := handlers.NewTransactionHandlers(deps)
	plh := handlers.NewPlannerHandlers(deps)
	smh := handlers.NewSummaryHandlers(deps)

	r.Group(func(r chi.Router) {
		r.Use(am.FirebaseAuth)

		r.Mount("/users", ush.UserRoutes())
		r.Mount("/categories", cth.CategoryRoutes())
		r.Mount("/accounts", ach.AccountRoutes())
		r.Mount("/transactions", txh.TransactionRoutes())
		r.Mount("/transfers", txh.TransferRoutes())
		r.Mount("/recurring", plh.RecurringRoutes())
		r.Mount("/installments", plh.InstallmentRoutes())
		r.Get("/summary", smh.GetSummary)
		r.Get("/ws", smh.Live)
	})
	return r
}
