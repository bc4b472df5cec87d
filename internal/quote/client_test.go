package quote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Nik-Luchok/finance/internal/domain"
)

func TestClient_Lookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("function"); got != "GLOBAL_QUOTE" {
			t.Errorf("function = %q, want GLOBAL_QUOTE", got)
		}
		if got := r.URL.Query().Get("symbol"); got != "nflx" {
			t.Errorf("symbol = %q, want nflx", got)
		}
		if got := r.URL.Query().Get("apikey"); got != "key123" {
			t.Errorf("apikey = %q, want key123", got)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Global Quote": {"01. symbol": "NFLX", "05. price": "1191.3400"}}`))
	}))
	defer server.Close()

	client := New(server.URL, "key123")

	q, err := client.Lookup(context.Background(), "nflx")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if q.Symbol != "NFLX" {
		t.Errorf("symbol = %q, want NFLX", q.Symbol)
	}
	if want := decimal.RequireFromString("1191.34"); !q.Price.Equal(want) {
		t.Errorf("price = %v, want %v", q.Price, want)
	}
}

func TestClient_Lookup_NotFound(t *testing.T) {
	testCases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "empty quote payload",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"Global Quote": {}}`))
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`not json`))
			},
		},
		{
			name: "upstream error status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
		},
		{
			name: "unparseable price",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"Global Quote": {"01. symbol": "X", "05. price": "n/a"}}`))
			},
		},
		{
			name: "non-positive price",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"Global Quote": {"01. symbol": "X", "05. price": "0"}}`))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(tc.handler)
			defer server.Close()

			client := New(server.URL, "key123")

			_, err := client.Lookup(context.Background(), "X")
			if !errors.Is(err, domain.ErrSymbolNotFound) {
				t.Fatalf("Lookup() error = %v, want ErrSymbolNotFound", err)
			}
		})
	}
}

func TestClient_Lookup_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from now on

	client := New(server.URL, "key123")

	_, err := client.Lookup(context.Background(), "X")
	if !errors.Is(err, domain.ErrSymbolNotFound) {
		t.Fatalf("Lookup() error = %v, want ErrSymbolNotFound", err)
	}
}
