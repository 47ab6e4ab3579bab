package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/edrone/storefront/internal/auth"
)

type AuthHandler struct {
	session *auth.Session
}

func NewAuthHandler(session *auth.Session) *AuthHandler {
	return &AuthHandler{session: session}
}

type LoginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequestDTO struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	err := h.session.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, auth.ErrEmptyCredentials) {
		respondError(w, http.StatusBadRequest, "invalid_credentials", err.Error())
		return
	}
	if err != nil {
		log.Printf("login failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "could not persist session")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "logged_in"})
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	err := h.session.Signup(r.Context(), req.Email, req.Password, req.ConfirmPassword)
	if errors.Is(err, auth.ErrEmptyCredentials) || errors.Is(err, auth.ErrPasswordMismatch) {
		respondError(w, http.StatusBadRequest, "invalid_credentials", err.Error())
		return
	}
	if err != nil {
		log.Printf("signup failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "could not persist session")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"status": "logged_in"})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.session.Logout(r.Context()); err != nil {
		log.Printf("logout failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "could not clear session")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}
