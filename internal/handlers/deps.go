package handlers

import (
	"log/slog"

	"github.com/GregMSThompson/ledger-backend/internal/middleware"
	"github.com/GregMSThompson/ledger-backend/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	Auth            middleware.TokenVerifier
	UserSvc         UserService
	CategorySvc     CategoryService
	AccountSvc      AccountService
	LedgerSvc       LedgerService
	PlannerSvc      PlannerService
	SummarySvc      SummaryService
	LiveFeed        LiveFeed
}
