package controllers

import (
	"net/http"

	"github.com/gookit/validate"
	"zoodash/internal/poller"
	"zoodash/internal/providers"
	"zoodash/internal/session"
	"zoodash/internal/structures"
	"zoodash/internal/views"
)

type AuthController struct {
	logger    providers.Logger
	store     session.StoreInterface
	resources *poller.Resources
	gate      *Gate
	appName   string
}

func NewAuthController(conf *structures.Config, logger providers.Logger, store session.StoreInterface, resources *poller.Resources, gate *Gate) *AuthController {
	return &AuthController{
		logger:    logger,
		store:     store,
		resources: resources,
		gate:      gate,
		appName:   conf.AppName,
	}
}

type loginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

func (ac *AuthController) ShowLogin(w http.ResponseWriter, r *http.Request) {
	if ac.store.State() == session.StateAuthenticated && ac.gate.Authorized(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	ac.render(w, http.StatusOK, "")
}

func (ac *AuthController) DoLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	form := loginForm{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}
	if v := validate.Struct(&form); !v.Validate() {
		ac.render(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	if err := ac.store.Login(r.Context(), form.Username, form.Password); err != nil {
		ac.logger.Warnf(providers.TypePost, "Login failed for %s: %s", form.Username, err)
		ac.render(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	ac.gate.Issue(w)
	ac.resources.LoadSessionScoped(r.Context())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (ac *AuthController) DoLogout(w http.ResponseWriter, r *http.Request) {
	ac.gate.Revoke(w, r)
	ac.store.Logout(r.Context())
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (ac *AuthController) render(w http.ResponseWriter, status int, errMsg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := views.RenderLogin(w, views.LoginData{AppName: ac.appName, Error: errMsg}); err != nil {
		ac.logger.Errorf(providers.TypeGet, "Login page render failed: %s", err)
	}
}
