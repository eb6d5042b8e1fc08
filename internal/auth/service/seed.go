package service

import (
	"context"
	"fmt"
	"time"

	"github.com/athleteone/athleteone/internal/auth/domain"
	"github.com/athleteone/athleteone/internal/auth/store"
	"github.com/athleteone/athleteone/pkg/cryptox"
	"github.com/athleteone/athleteone/pkg/slogx"
)

// demoPassword is the shared password for all seeded demo accounts.
// Seeds are for local development and demos only.
const demoPassword = "password123"

// SeedDemoData populates the demo accounts and listings when the
// database is empty. Idempotent: a non-empty users table means a
// previous boot already seeded (or real users exist) and nothing runs.
func SeedDemoData(ctx context.Context, st store.Store) error {
	log := slogx.FromContext(ctx)

	n, err := st.Users().Count(ctx)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if n > 0 {
		return nil
	}

	hash, err := cryptox.HashPassword(demoPassword)
	if err != nil {
		return fmt.Errorf("seed: hash demo password: %w", err)
	}

	now := time.Now().UTC()
	users := []*domain.User{
		{
			ID:               "user-1",
			Email:            "john.athlete@example.com",
			Name:             "John Smith",
			Roles:            []domain.Role{domain.RoleAthlete},
			ActiveRole:       domain.RoleAthlete,
			ProfileCompleted: true,
		},
		{
			ID:               "user-2",
			Email:            "sarah.coach@example.com",
			Name:             "Sarah Johnson",
			Roles:            []domain.Role{domain.RoleCoach},
			ActiveRole:       domain.RoleCoach,
			ProfileCompleted: true,
		},
		{
			ID:               "user-3",
			Email:            "mike.dual@example.com",
			Name:             "Mike Wilson",
			Roles:            []domain.Role{domain.RoleAthlete, domain.RoleCoach},
			ActiveRole:       domain.RoleAthlete,
			ProfileCompleted: true,
		},
	}

	opportunities := []*domain.Opportunity{
		{
			ID:           "opp-1",
			Title:        "College Basketball Scholarship",
			Sport:        "Basketball",
			Level:        "collegiate",
			Location:     "California, USA",
			Description:  "Full scholarship opportunity for talented basketball players",
			Requirements: []string{"Minimum GPA 3.0", "State-level competition experience"},
			PostedBy:     "user-2",
			PostedAt:     now,
			Deadline:     time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:           "opp-2",
			Title:        "Professional Soccer Training Camp",
			Sport:        "Soccer",
			Level:        "professional",
			Location:     "Texas, USA",
			Description:  "Intensive training camp for aspiring professional soccer players",
			Requirements: []string{"Age 18-25", "Regional competition experience"},
			PostedBy:     "user-2",
			PostedAt:     now.Add(time.Second),
			Deadline:     time.Date(2026, 11, 30, 0, 0, 0, 0, time.UTC),
		},
	}

	err = st.WithTx(ctx, func(tx store.Tx) error {
		for _, u := range users {
			u.PasswordHash = hash
			u.CreatedAt = now
			u.UpdatedAt = now
			if err := tx.Users().Create(ctx, u); err != nil {
				return fmt.Errorf("seed user %s: %w", u.ID, err)
			}
		}
		for _, o := range opportunities {
			if err := tx.Opportunities().Create(ctx, o); err != nil {
				return fmt.Errorf("seed opportunity %s: %w", o.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	log.Info("demo data seeded", "users", len(users), "opportunities", len(opportunities))
	return nil
}
