package app

import (
	"github.com/go-chi/chi/v5"

	"github.com/Nik-Luchok/finance/internal/handler/middleware"
	portfoliohandler "github.com/Nik-Luchok/finance/internal/handler/portfolio"
	quotehandler "github.com/Nik-Luchok/finance/internal/handler/quotes"
	tradehandler "github.com/Nik-Luchok/finance/internal/handler/trade"
	userhandler "github.com/Nik-Luchok/finance/internal/handler/user"
	"github.com/Nik-Luchok/finance/internal/postgres"
	"github.com/Nik-Luchok/finance/internal/quote"
	"github.com/Nik-Luchok/finance/internal/service"
	"github.com/Nik-Luchok/finance/internal/web"
)

func (app *App) Router() (*chi.Mux, error) {
	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.WithNoStore)

	p := postgres.New(app.DB)
	quotes := quote.New(app.Config.QuoteAPIURL, app.Config.QuoteAPIKey)

	userService := service.NewUserService(p, app.Config)
	userHandler := userhandler.New(userService, renderer)

	tradingService := service.NewTradingService(p, quotes)
	tradeHandler := tradehandler.New(tradingService, renderer)
	portfolioHandler := portfoliohandler.New(tradingService, renderer)
	quoteHandler := quotehandler.New(tradingService, renderer)

	r.Get("/register", userHandler.RegisterPage)
	r.Post("/register", userHandler.Register)
	r.Get("/login", userHandler.LoginPage)
	r.Post("/login", userHandler.Login)
	r.Get("/logout", userHandler.Logout)

	r.Group(func(r chi.Router) {
		r.Use(middleware.WithAuth(app.Config))

		r.Get("/", portfolioHandler.Index)
		r.Get("/history", portfolioHandler.History)
		r.Get("/quote", quoteHandler.QuotePage)
		r.Post("/quote", quoteHandler.Quote)
		r.Get("/buy", tradeHandler.BuyPage)
		r.Post("/buy", tradeHandler.Buy)
		r.Get("/sell", tradeHandler.SellPage)
		r.Post("/sell", tradeHandler.Sell)
	})

	return r, nil
}
