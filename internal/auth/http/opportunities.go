package http

import (
	"net/http"
	"strconv"

	"github.com/athleteone/athleteone/internal/auth/domain"
	"github.com/athleteone/athleteone/pkg/httpx"
)

func (h *handlers) listOpportunities(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.OpportunityFilter{
		Sport: q.Get("sport"),
		Level: q.Get("level"),
	}
	if v := q.Get("page"); v != "" {
		filter.Page, _ = strconv.Atoi(v)
	}
	if v := q.Get("limit"); v != "" {
		filter.Limit, _ = strconv.Atoi(v)
	}

	page, err := h.opportunities.List(r.Context(), filter)
	if err != nil {
		h.internalError(w, r, "opportunity listing failed", err)
		return
	}

	httpx.WriteData(w, http.StatusOK, page)
}
