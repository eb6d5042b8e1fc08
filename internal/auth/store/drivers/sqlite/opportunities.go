package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/athleteone/athleteone/internal/auth/domain"
	"github.com/athleteone/athleteone/internal/auth/store"
)

type opportunityStore struct {
	q queryer
}

var _ store.OpportunityStore = (*opportunityStore)(nil)

const opportunityColumns = `id, title, sport, level, location, description, requirements, posted_by, posted_at, deadline`

func (s *opportunityStore) Create(ctx context.Context, opp *domain.Opportunity) error {
	reqs, err := json.Marshal(opp.Requirements)
	if err != nil {
		return fmt.Errorf("sqlite: encode requirements: %w", err)
	}

	_, err = s.q.ExecContext(ctx, `
		INSERT INTO opportunities (`+opportunityColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		opp.ID,
		opp.Title,
		opp.Sport,
		opp.Level,
		opp.Location,
		opp.Description,
		string(reqs),
		opp.PostedBy,
		opp.PostedAt.UnixMilli(),
		opp.Deadline.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("sqlite: create opportunity: %w", mapConstraintErr(err))
	}
	return nil
}

func (s *opportunityStore) List(ctx context.Context, filter domain.OpportunityFilter) ([]domain.Opportunity, int64, error) {
	where := " WHERE 1=1"
	args := []any{}
	if filter.Sport != "" {
		// Sport matches on substring, case-insensitively, so
		// "swim" finds "Swimming". Level is an exact enum match.
		where += " AND lower(sport) LIKE '%' || lower(?) || '%'"
		args = append(args, filter.Sport)
	}
	if filter.Level != "" {
		where += " AND level = ?"
		args = append(args, filter.Level)
	}

	var total int64
	if err := s.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM opportunities`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("sqlite: count opportunities: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	args = append(args, limit, (page-1)*limit)

	rows, err := s.q.QueryContext(ctx, `
		SELECT `+opportunityColumns+` FROM opportunities`+where+`
		ORDER BY posted_at DESC LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("sqlite: list opportunities: %w", err)
	}
	defer rows.Close()

	opps := []domain.Opportunity{}
	for rows.Next() {
		var (
			o                  domain.Opportunity
			reqs               string
			postedAt, deadline int64
		)
		if err := rows.Scan(
			&o.ID, &o.Title, &o.Sport, &o.Level, &o.Location,
			&o.Description, &reqs, &o.PostedBy, &postedAt, &deadline,
		); err != nil {
			return nil, 0, fmt.Errorf("sqlite: scan opportunity: %w", err)
		}
		if err := json.Unmarshal([]byte(reqs), &o.Requirements); err != nil {
			return nil, 0, fmt.Errorf("sqlite: decode requirements: %w", err)
		}
		o.PostedAt = time.UnixMilli(postedAt).UTC()
		o.Deadline = time.UnixMilli(deadline).UTC()
		opps = append(opps, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("sqlite: list opportunities: %w", err)
	}
	return opps, total, nil
}

func (s *opportunityStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM opportunities`).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite: count opportunities: %w", err)
	}
	return n, nil
}
