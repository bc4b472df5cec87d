package tradehandler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Nik-Luchok/finance/internal/domain"
	"github.com/Nik-Luchok/finance/internal/handler/middleware"
	"github.com/Nik-Luchok/finance/internal/web"
	"github.com/Nik-Luchok/finance/pkg/logger"
)

type TradingService interface {
	Buy(ctx context.Context, userID int64, symbol, number string) (*domain.Quote, int64, error)
	Sell(ctx context.Context, userID int64, symbol, number string) (*domain.Quote, int64, error)
	HeldSymbols(ctx context.Context, userID int64) ([]domain.Holding, error)
}

type TradeHandler struct {
	srv      TradingService
	renderer *web.Renderer
}

func New(srv TradingService, renderer *web.Renderer) *TradeHandler {
	return &TradeHandler{
		srv:      srv,
		renderer: renderer,
	}
}

func (h *TradeHandler) BuyPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, "buy.html", web.PageData{Flash: web.PopFlash(w, r)})
}

func (h *TradeHandler) Buy(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		logger.Log.Warn("error while parsing buy form", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	symbol := r.PostFormValue("symbol")
	number := r.PostFormValue("number")

	q, quantity, err := h.srv.Buy(r.Context(), userID, symbol, number)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptySymbol):
			web.SetFlash(w, "Type something in Symbol field to buy")
		case errors.Is(err, domain.ErrInvalidShareCount):
			web.SetFlash(w, "Shares must be a positive integer, starting from 1")
		case errors.Is(err, domain.ErrSymbolNotFound):
			web.SetFlash(w, fmt.Sprintf("No company found with: %s", symbol))
		case errors.Is(err, domain.ErrInsufficientFunds):
			web.SetFlash(w, "Transaction declined: not enough cash in the wallet")
		default:
			logger.Log.Error("error while buying",
				logger.Int64("user_id", userID),
				logger.String("symbol", symbol),
				logger.Error(err),
			)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	web.SetFlash(w, fmt.Sprintf("Bought %d shares of %s", quantity, q.Symbol))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *TradeHandler) SellPage(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	holdings, err := h.srv.HeldSymbols(r.Context(), userID)
	if err != nil {
		logger.Log.Error("error while fetching holdings", logger.Int64("user_id", userID), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.renderer.Render(w, "sell.html", web.PageData{Flash: web.PopFlash(w, r), Data: holdings})
}

func (h *TradeHandler) Sell(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		logger.Log.Warn("error while parsing sell form", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	symbol := r.PostFormValue("symbol")
	number := r.PostFormValue("number")

	q, quantity, err := h.srv.Sell(r.Context(), userID, symbol, number)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidShareCount):
			web.SetFlash(w, "Number must be a positive integer")
		case errors.Is(err, domain.ErrEmptySymbol):
			web.SetFlash(w, "Select stock symbol")
		case errors.Is(err, domain.ErrNoHolding):
			web.SetFlash(w, fmt.Sprintf("You don't have %s shares", symbol))
		case errors.Is(err, domain.ErrInsufficientShares):
			web.SetFlash(w, fmt.Sprintf("You don't have such amount of %s", symbol))
		default:
			logger.Log.Error("error while selling",
				logger.Int64("user_id", userID),
				logger.String("symbol", symbol),
				logger.Error(err),
			)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	web.SetFlash(w, fmt.Sprintf("You sold %d of %s stocks", quantity, q.Symbol))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
