package auth

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/stockroom/pkg/httpx"
	"github.com/ghuser/stockroom/pkg/logger"
	"github.com/ghuser/stockroom/pkg/validator"
)

// HomePath is where a successful login lands.
const HomePath = "/api/items"

// LoginRequest is accepted as JSON or as an urlencoded form.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Routes mounts the unguarded login and logout endpoints on r.
func Routes(r chi.Router, gate *Gate, log logger.Logger) {
	r.Get(LoginPath, LoginPageHandler(gate))
	r.Post(LoginPath, LoginHandler(gate, log))
	r.Get("/logout", LogoutHandler(gate, log))
	r.Post("/logout", LogoutHandler(gate, log))
}

// LoginForm describes how to log in. It is what anonymous callers land on
// after being redirected by the guard.
type LoginForm struct {
	Method string   `json:"method"`
	Action string   `json:"action"`
	Fields []string `json:"fields"`
}

// LoginPageHandler godoc
// @Summary      Login form
// @Description  Describes the login request. An authenticated session is sent home instead.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  LoginForm
// @Success      303
// @Router       /login [get]
func LoginPageHandler(gate *Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if gate.Decide(r).Allow {
			httpx.Redirect(w, r, HomePath)
			return
		}
		httpx.JSON(w, http.StatusOK, LoginForm{
			Method: http.MethodPost,
			Action: LoginPath,
			Fields: []string{"username", "password"},
		})
	}
}

// LoginHandler godoc
// @Summary      Log in
// @Description  Authenticates the browser session with the operator credential.
// @Tags         auth
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        body  body  LoginRequest  true  "Operator credential"
// @Success      303
// @Failure      401  {object}  map[string]string
// @Failure      422  {object}  map[string]any
// @Router       /login [post]
func LoginHandler(gate *Gate, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := validator.ValidateRequest[LoginRequest](w, r)
		if !ok {
			return
		}
		if err := gate.Login(w, r, req.Username, req.Password); err != nil {
			if errors.Is(err, ErrAuthRejected) {
				log.InfoContext(r.Context(), "login rejected")
				httpx.JSONError(w, http.StatusUnauthorized, err.Error())
				return
			}
			log.ErrorContext(r.Context(), "login failed", "error", err)
			httpx.JSONError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
			return
		}
		log.InfoContext(r.Context(), "operator logged in", "operator", req.Username)
		httpx.Redirect(w, r, HomePath)
	}
}

// LogoutHandler godoc
// @Summary      Log out
// @Tags         auth
// @Success      303
// @Router       /logout [get]
// @Router       /logout [post]
func LogoutHandler(gate *Gate, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := gate.Logout(w, r); err != nil {
			log.ErrorContext(r.Context(), "logout failed", "error", err)
		}
		httpx.Redirect(w, r, LoginPath)
	}
}
