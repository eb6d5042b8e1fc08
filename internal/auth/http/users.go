package http

import (
	"errors"
	"net/http"

	"github.com/athleteone/athleteone/internal/auth/service"
	"github.com/athleteone/athleteone/pkg/httpx"
)

func (h *handlers) getUser(w http.ResponseWriter, r *http.Request) {
	httpx.NoCache(w)

	user, err := h.auth.GetUser(r.Context(), r.PathValue("userId"))
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		httpx.WriteError(w, http.StatusNotFound, "User not found")
		return
	case err != nil:
		h.internalError(w, r, "user lookup failed", err)
		return
	}

	httpx.WriteData(w, http.StatusOK, user)
}
