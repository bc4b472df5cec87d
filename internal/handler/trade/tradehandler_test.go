package tradehandler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Nik-Luchok/finance/internal/domain"
	"github.com/Nik-Luchok/finance/internal/handler/middleware"
	"github.com/Nik-Luchok/finance/internal/web"
)

type fakeTradingService struct {
	buyErr  error
	sellErr error

	gotSymbol string
	gotNumber string
}

func (f *fakeTradingService) Buy(_ context.Context, _ int64, symbol, number string) (*domain.Quote, int64, error) {
	f.gotSymbol, f.gotNumber = symbol, number
	if f.buyErr != nil {
		return nil, 0, f.buyErr
	}
	return &domain.Quote{Symbol: strings.ToUpper(symbol), Price: decimal.NewFromInt(100)}, 10, nil
}

func (f *fakeTradingService) Sell(_ context.Context, _ int64, symbol, number string) (*domain.Quote, int64, error) {
	f.gotSymbol, f.gotNumber = symbol, number
	if f.sellErr != nil {
		return nil, 0, f.sellErr
	}
	return &domain.Quote{Symbol: strings.ToUpper(symbol), Price: decimal.NewFromInt(100)}, 10, nil
}

func (f *fakeTradingService) HeldSymbols(_ context.Context, _ int64) ([]domain.Holding, error) {
	return []domain.Holding{{UserID: 1, Symbol: "NFLX", Shares: 10}}, nil
}

func postForm(t *testing.T, handler http.HandlerFunc, path string, form url.Values, authed bool) *httptest.ResponseRecorder {
	t.Helper()

	request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if authed {
		request = request.WithContext(middleware.WithUserID(request.Context(), 1))
	}

	recorder := httptest.NewRecorder()
	handler(recorder, request)
	return recorder
}

func flashMessage(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()

	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == "flash" && cookie.MaxAge >= 0 {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request.AddCookie(cookie)
			return web.PopFlash(httptest.NewRecorder(), request)
		}
	}
	return ""
}

func newTestHandler(t *testing.T, srv TradingService) *TradeHandler {
	t.Helper()

	renderer, err := web.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	return New(srv, renderer)
}

func TestTradeHandler_Buy(t *testing.T) {
	srv := &fakeTradingService{}
	h := newTestHandler(t, srv)

	recorder := postForm(t, h.Buy, "/buy", url.Values{"symbol": {"nflx"}, "number": {"10"}}, true)

	if recorder.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusSeeOther)
	}
	if got := recorder.Header().Get("Location"); got != "/" {
		t.Errorf("redirect = %q, want /", got)
	}
	if srv.gotSymbol != "nflx" || srv.gotNumber != "10" {
		t.Errorf("service got (%q, %q), want (nflx, 10)", srv.gotSymbol, srv.gotNumber)
	}
	if got := flashMessage(t, recorder); got != "Bought 10 shares of NFLX" {
		t.Errorf("flash = %q", got)
	}
}

func TestTradeHandler_Buy_Rejections(t *testing.T) {
	testCases := []struct {
		name      string
		err       error
		wantFlash string
	}{
		{name: "insufficient funds", err: domain.ErrInsufficientFunds, wantFlash: "Transaction declined: not enough cash in the wallet"},
		{name: "unknown symbol", err: domain.ErrSymbolNotFound, wantFlash: "No company found with: nflx"},
		{name: "bad share count", err: domain.ErrInvalidShareCount, wantFlash: "Shares must be a positive integer, starting from 1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestHandler(t, &fakeTradingService{buyErr: tc.err})

			recorder := postForm(t, h.Buy, "/buy", url.Values{"symbol": {"nflx"}, "number": {"10"}}, true)

			if recorder.Code != http.StatusSeeOther {
				t.Fatalf("status = %d, want %d", recorder.Code, http.StatusSeeOther)
			}
			if got := flashMessage(t, recorder); got != tc.wantFlash {
				t.Errorf("flash = %q, want %q", got, tc.wantFlash)
			}
		})
	}
}

func TestTradeHandler_Buy_InternalError(t *testing.T) {
	h := newTestHandler(t, &fakeTradingService{buyErr: domain.ErrLedgerInconsistent})

	recorder := postForm(t, h.Buy, "/buy", url.Values{"symbol": {"nflx"}, "number": {"10"}}, true)

	if recorder.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusInternalServerError)
	}
}

func TestTradeHandler_Buy_Unauthenticated(t *testing.T) {
	h := newTestHandler(t, &fakeTradingService{})

	recorder := postForm(t, h.Buy, "/buy", url.Values{"symbol": {"nflx"}, "number": {"10"}}, false)

	if recorder.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusSeeOther)
	}
	if got := recorder.Header().Get("Location"); got != "/login" {
		t.Errorf("redirect = %q, want /login", got)
	}
}

func TestTradeHandler_Sell(t *testing.T) {
	srv := &fakeTradingService{}
	h := newTestHandler(t, srv)

	recorder := postForm(t, h.Sell, "/sell", url.Values{"symbol": {"nflx"}, "number": {"10"}}, true)

	if recorder.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusSeeOther)
	}
	if got := flashMessage(t, recorder); got != "You sold 10 of NFLX stocks" {
		t.Errorf("flash = %q", got)
	}
}

func TestTradeHandler_Sell_LedgerInconsistencyIs500(t *testing.T) {
	h := newTestHandler(t, &fakeTradingService{sellErr: domain.ErrLedgerInconsistent})

	recorder := postForm(t, h.Sell, "/sell", url.Values{"symbol": {"nflx"}, "number": {"10"}}, true)

	if recorder.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusInternalServerError)
	}
}
