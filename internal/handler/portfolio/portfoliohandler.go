package portfoliohandler

import (
	"context"
	"net/http"

	"github.com/Nik-Luchok/finance/internal/domain"
	"github.com/Nik-Luchok/finance/internal/handler/middleware"
	"github.com/Nik-Luchok/finance/internal/web"
	"github.com/Nik-Luchok/finance/pkg/logger"
)

type PortfolioService interface {
	Portfolio(ctx context.Context, userID int64) (*domain.Portfolio, error)
	History(ctx context.Context, userID int64) ([]domain.Transaction, error)
}

type PortfolioHandler struct {
	srv      PortfolioService
	renderer *web.Renderer
}

func New(srv PortfolioService, renderer *web.Renderer) *PortfolioHandler {
	return &PortfolioHandler{
		srv:      srv,
		renderer: renderer,
	}
}

func (h *PortfolioHandler) Index(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	portfolio, err := h.srv.Portfolio(r.Context(), userID)
	if err != nil {
		logger.Log.Error("error while building portfolio", logger.Int64("user_id", userID), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.renderer.Render(w, "index.html", web.PageData{Flash: web.PopFlash(w, r), Data: portfolio})
}

func (h *PortfolioHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	transactions, err := h.srv.History(r.Context(), userID)
	if err != nil {
		logger.Log.Error("error while fetching history", logger.Int64("user_id", userID), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.renderer.Render(w, "history.html", web.PageData{Flash: web.PopFlash(w, r), Data: transactions})
}
