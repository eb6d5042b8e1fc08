package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/athleteone/athleteone/internal/auth/domain"
	"github.com/athleteone/athleteone/internal/auth/service"
	"github.com/athleteone/athleteone/pkg/httpx"
	"github.com/athleteone/athleteone/pkg/slogx"
)

// authPayload is the login and signup success payload.
type authPayload struct {
	User    *domain.User    `json:"user"`
	Session *domain.Session `json:"session"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	httpx.NoCache(w)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	fe := fieldErrors{}
	validateEmail(fe, req.Email)
	validateLoginPassword(fe, req.Password)
	if !fe.ok() {
		httpx.WriteError(w, http.StatusBadRequest, fe.message())
		return
	}

	session, user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		h.metrics.Logins.WithLabelValues("rejected").Inc()
		httpx.WriteError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	case err != nil:
		h.metrics.Logins.WithLabelValues("error").Inc()
		h.internalError(w, r, "login failed", err)
		return
	}

	h.metrics.Logins.WithLabelValues("ok").Inc()
	httpx.WriteData(w, http.StatusOK, authPayload{User: user, Session: session})
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

func (h *handlers) signup(w http.ResponseWriter, r *http.Request) {
	httpx.NoCache(w)

	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	fe := fieldErrors{}
	validateEmail(fe, req.Email)
	validateNewPassword(fe, req.Password)
	validateName(fe, req.Name)
	validateRole(fe, req.Role)
	if !fe.ok() {
		httpx.WriteError(w, http.StatusBadRequest, fe.message())
		return
	}

	session, user, err := h.auth.Signup(r.Context(), service.SignupParams{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     domain.Role(req.Role),
	})
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		h.metrics.Signups.WithLabelValues("conflict").Inc()
		httpx.WriteError(w, http.StatusConflict, "User with this email already exists")
		return
	case err != nil:
		h.metrics.Signups.WithLabelValues("error").Inc()
		h.internalError(w, r, "signup failed", err)
		return
	}

	h.metrics.Signups.WithLabelValues("ok").Inc()
	httpx.WriteData(w, http.StatusCreated, authPayload{User: user, Session: session})
}

// logout acknowledges the request. Sessions are stateless tokens, so
// there is nothing to revoke server-side; the client discards its copy.
func (h *handlers) logout(w http.ResponseWriter, r *http.Request) {
	httpx.NoCache(w)
	httpx.WriteMessage(w, http.StatusOK, "Logged out successfully")
}

type refreshRequest struct {
	Role string `json:"role"`
}

func (h *handlers) refresh(w http.ResponseWriter, r *http.Request) {
	httpx.NoCache(w)

	claims, ok := httpx.ClaimsFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	// The role body is optional; an empty body keeps the current role.
	var req refreshRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}
	if req.Role != "" && !domain.ValidRole(req.Role) {
		httpx.WriteError(w, http.StatusBadRequest, "Role must be either athlete or coach")
		return
	}

	session, _, err := h.auth.Refresh(r.Context(), claims, domain.Role(req.Role))
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		h.metrics.Refreshes.WithLabelValues("unknown_user").Inc()
		httpx.WriteError(w, http.StatusUnauthorized, "User not found")
		return
	case errors.Is(err, service.ErrRoleNotHeld):
		h.metrics.Refreshes.WithLabelValues("role_denied").Inc()
		httpx.WriteError(w, http.StatusForbidden, "Role not available for this account")
		return
	case err != nil:
		h.metrics.Refreshes.WithLabelValues("error").Inc()
		h.internalError(w, r, "refresh failed", err)
		return
	}

	h.metrics.Refreshes.WithLabelValues("ok").Inc()
	httpx.WriteData(w, http.StatusOK, session)
}

func (h *handlers) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	slogx.FromContext(r.Context()).Error(msg, "err", err)
	httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
}
