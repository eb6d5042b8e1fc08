package service

import (
	"context"
	"fmt"

	"github.com/athleteone/athleteone/internal/auth/domain"
	"github.com/athleteone/athleteone/internal/auth/store"
)

// Opportunities serves the listings catalog.
type Opportunities struct {
	store store.Store
}

func NewOpportunities(st store.Store) *Opportunities {
	return &Opportunities{store: st}
}

// OpportunityPage is one page of listings plus paging metadata.
type OpportunityPage struct {
	Items      []domain.Opportunity `json:"items"`
	Total      int64                `json:"total"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
	TotalPages int                  `json:"totalPages"`
}

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// List returns a filtered, paginated page of listings. Out-of-range
// paging values are clamped rather than rejected.
func (o *Opportunities) List(ctx context.Context, filter domain.OpportunityFilter) (*OpportunityPage, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	items, total, err := o.store.Opportunities().List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list opportunities: %w", err)
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &OpportunityPage{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}
