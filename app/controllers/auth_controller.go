package controllers

import (
	"errors"
	"net/http"

	"github.com/groovecrate/vinylstore/app/services"
	"github.com/groovecrate/vinylstore/pkg/bind"
	"github.com/groovecrate/vinylstore/pkg/response"
	"github.com/groovecrate/vinylstore/pkg/session"
)

// AuthController handles login and logout.
type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

type loginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login checks credentials and, on success, sets the session cookie and
// returns a bearer token for non-browser clients. Missing fields are 400;
// bad credentials are 401 with no hint of which part was wrong.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	res, err := c.auth.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.Error(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		respondError(w, err)
		return
	}

	c.auth.Sessions().Write(w, res.Session)
	response.Success(w, map[string]interface{}{
		"email": res.Session.Email,
		"token": res.Token,
	})
}

// Logout revokes the caller's session and clears the cookie. Safe to call
// without a session.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(session.CookieName); err == nil {
		if err := c.auth.Logout(r.Context(), cookie.Value); err != nil {
			respondError(w, err)
			return
		}
	}

	c.auth.Sessions().Clear(w)
	response.Message(w, "Logged out")
}
