package handlers

import (
	"net/http"

	"github.com/vedran77/chirp/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var input service.SignupInput
	if !decodeBody(w, r, &input) {
		return
	}

	token, err := h.authService.Signup(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, "signup", err)
		return
	}

	writeOK(w, http.StatusOK, map[string]any{"token": token})
}

func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var input service.SigninInput
	if !decodeBody(w, r, &input) {
		return
	}

	res, err := h.authService.Signin(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, "signin", err)
		return
	}

	writeOK(w, http.StatusOK, map[string]any{
		"token":     res.Token,
		"username":  res.Username,
		"firstName": res.FirstName,
	})
}
