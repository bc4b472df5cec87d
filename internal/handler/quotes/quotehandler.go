package quotehandler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Nik-Luchok/finance/internal/domain"
	"github.com/Nik-Luchok/finance/internal/web"
	"github.com/Nik-Luchok/finance/pkg/logger"
)

type QuoteService interface {
	Quote(ctx context.Context, symbol string) (*domain.Quote, error)
}

type QuoteHandler struct {
	srv      QuoteService
	renderer *web.Renderer
}

func New(srv QuoteService, renderer *web.Renderer) *QuoteHandler {
	return &QuoteHandler{
		srv:      srv,
		renderer: renderer,
	}
}

func (h *QuoteHandler) QuotePage(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, "quote.html", web.PageData{Flash: web.PopFlash(w, r)})
}

func (h *QuoteHandler) Quote(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		logger.Log.Warn("error while parsing quote form", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	symbol := r.PostFormValue("symbol")

	q, err := h.srv.Quote(r.Context(), symbol)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptySymbol):
			web.SetFlash(w, "Type in Symbol field to search")
		case errors.Is(err, domain.ErrSymbolNotFound):
			web.SetFlash(w, fmt.Sprintf("No company found with: %s", symbol))
		default:
			logger.Log.Error("error while looking up quote", logger.String("symbol", symbol), logger.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		http.Redirect(w, r, "/quote", http.StatusSeeOther)
		return
	}

	h.renderer.Render(w, "quoted.html", web.PageData{Data: q})
}
