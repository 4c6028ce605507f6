package handlers

import (
	"context"
	"net/http"

	"github.com/GregMSThompson/ledger-backend/internal/dto"
	"github.com/GregMSThompson/ledger-backend/internal/middleware"
	"github.com/GregMSThompson/ledger-backend/internal/response"
	"github.com/GregMSThompson/ledger-backend/pkg/logger"
)

type SummaryService interface {
	GetSummary(ctx context.Context, uid string) (dto.SummaryResponse, error)
}

// LiveFeed upgrades the request to a websocket that streams ledger snapshots.
type LiveFeed interface {
	Serve(w http.ResponseWriter, r *http.Request, uid string) error
}

type summaryHandlers struct {
	ResponseHandler response.ResponseHandler
	SummarySvc      SummaryService
	LiveFeed        LiveFeed
}

func NewSummaryHandlers(deps *Deps) *summaryHandlers {
	return &summaryHandlers{
		ResponseHandler: deps.ResponseHandler,
		SummarySvc:      deps.SummarySvc,
		LiveFeed:        deps.LiveFeed,
	}
}

func (h *summaryHandlers) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.SummarySvc.GetSummary(r.Context(), middleware.UID(r.Context()))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, summary)
}

// Live hands the connection to the websocket feed. The feed answers its own
// failures, so they are only logged here.
func (h *summaryHandlers) Live(w http.ResponseWriter, r *http.Request) {
	if err := h.LiveFeed.Serve(w, r, middleware.UID(r.Context())); err != nil {
		logger.FromContext(r.Context()).Warn("live feed not served", "error", err)
	}
}
