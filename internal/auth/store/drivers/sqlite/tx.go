package sqlite

import (
	"database/sql"

	"github.com/athleteone/athleteone/internal/auth/store"
)

type tx struct {
	q *sql.Tx
}

var _ store.Tx = (*tx)(nil)

func (t *tx) Users() store.UserStore {
	return &userStore{q: t.q}
}

func (t *tx) Opportunities() store.OpportunityStore {
	return &opportunityStore{q: t.q}
}
