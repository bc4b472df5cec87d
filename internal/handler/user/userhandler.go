package userhandler

import (
	"context"
	"errors"
	"net/http"

	"github.com/Nik-Luchok/finance/internal/domain"
	"github.com/Nik-Luchok/finance/internal/handler/middleware"
	"github.com/Nik-Luchok/finance/internal/web"
	"github.com/Nik-Luchok/finance/pkg/logger"
)

type UserService interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (string, error)
}

type UserHandler struct {
	srv      UserService
	renderer *web.Renderer
}

func New(srv UserService, renderer *web.Renderer) *UserHandler {
	return &UserHandler{
		srv:      srv,
		renderer: renderer,
	}
}

func (uh *UserHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	uh.renderer.Render(w, "register.html", web.PageData{Flash: web.PopFlash(w, r)})
}

func (uh *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		logger.Log.Warn("error while parsing register form", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	confirmation := r.PostFormValue("confirmation")

	switch {
	case username == "":
		web.SetFlash(w, "Please enter the username")
	case password == "":
		web.SetFlash(w, "Please enter the password")
	case confirmation == "":
		web.SetFlash(w, "Please confirm your password")
	case password != confirmation:
		web.SetFlash(w, "Passwords don't match")
	default:
		err := uh.srv.Register(r.Context(), username, password)
		if err != nil {
			if errors.Is(err, domain.ErrUserExists) {
				web.SetFlash(w, "Sorry, this username is already taken, choose another one")
				http.Redirect(w, r, "/register", http.StatusSeeOther)
				return
			}

			logger.Log.Error("error while registering user", logger.String("username", username), logger.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		web.SetFlash(w, "Registered, now log in")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/register", http.StatusSeeOther)
}

func (uh *UserHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	uh.renderer.Render(w, "login.html", web.PageData{Flash: web.PopFlash(w, r)})
}

func (uh *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		logger.Log.Warn("error while parsing login form", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	if username == "" {
		web.SetFlash(w, "Please provide username")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if password == "" {
		web.SetFlash(w, "Please provide password")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	token, err := uh.srv.Login(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, domain.ErrIncorrectCredentials) {
			web.SetFlash(w, "Invalid username or password")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		logger.Log.Error("error while logging in", logger.String("username", username), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	middleware.SetSession(w, token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (uh *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSession(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
