package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/athleteone/athleteone/internal/auth/domain"
	"github.com/athleteone/athleteone/internal/auth/store"
	sqlitestore "github.com/athleteone/athleteone/internal/auth/store/drivers/sqlite"
	"github.com/athleteone/athleteone/pkg/cryptox"
	"github.com/athleteone/athleteone/pkg/jwtx"
)

const testIssuer = "athleteone-auth-test"

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func newTestAuth(t *testing.T) (*Auth, store.Store) {
	t.Helper()
	cryptox.SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	st, err := sqlitestore.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	signer := jwtx.NewHS256Signer(testIssuer, testSecret)
	return NewAuth(st, signer, time.Hour), st
}

func signupTestUser(t *testing.T, auth *Auth, email string, role domain.Role) *domain.User {
	t.Helper()
	_, user, err := auth.Signup(context.Background(), SignupParams{
		Email:    email,
		Password: "Correct1!",
		Name:     "Test User",
		Role:     role,
	})
	require.NoError(t, err)
	return user
}

func TestLogin(t *testing.T) {
	auth, _ := newTestAuth(t)
	ctx := context.Background()

	signupTestUser(t, auth, "a@example.com", domain.RoleAthlete)

	session, user, err := auth.Login(ctx, "a@example.com", "Correct1!")
	require.NoError(t, err)
	require.Equal(t, user.ID, session.UserID)
	require.Equal(t, domain.RoleAthlete, session.Role)
	require.NotEmpty(t, session.Token)
	require.True(t, session.ExpiresAt.After(time.Now()))

	// Wrong password and unknown email produce the same error.
	_, _, err = auth.Login(ctx, "a@example.com", "Wrong1!aa")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = auth.Login(ctx, "nobody@example.com", "Correct1!")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginDefaultSessionExpiry(t *testing.T) {
	_, st := newTestAuth(t)
	ctx := context.Background()

	// A zero TTL falls back to the 7-day default.
	auth := NewAuth(st, jwtx.NewHS256Signer(testIssuer, testSecret), 0)
	signupTestUser(t, auth, "week@example.com", domain.RoleAthlete)

	session, _, err := auth.Login(ctx, "week@example.com", "Correct1!")
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(jwtx.DefaultSessionTTL), session.ExpiresAt, 5*time.Second)
}

func TestSignupDuplicateEmail(t *testing.T) {
	auth, st := newTestAuth(t)
	ctx := context.Background()

	signupTestUser(t, auth, "dup@example.com", domain.RoleAthlete)
	before, err := st.Users().Count(ctx)
	require.NoError(t, err)

	_, _, err = auth.Signup(ctx, SignupParams{
		Email:    "dup@example.com",
		Password: "Another1!",
		Name:     "Other User",
		Role:     domain.RoleCoach,
	})
	require.ErrorIs(t, err, ErrEmailTaken)

	// The rejected signup left no record behind.
	after, err := st.Users().Count(ctx)
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestSignupNewAccountShape(t *testing.T) {
	auth, _ := newTestAuth(t)

	session, user, err := auth.Signup(context.Background(), SignupParams{
		Email:    "new@example.com",
		Password: "Correct1!",
		Name:     "New User",
		Role:     domain.RoleCoach,
	})
	require.NoError(t, err)

	require.Equal(t, []domain.Role{domain.RoleCoach}, user.Roles)
	require.Equal(t, domain.RoleCoach, user.ActiveRole)
	require.False(t, user.ProfileCompleted)
	require.NotEmpty(t, user.PasswordHash)
	require.Equal(t, user.ID, session.UserID)
}

func TestRefreshKeepsRole(t *testing.T) {
	auth, _ := newTestAuth(t)
	ctx := context.Background()

	user := signupTestUser(t, auth, "a@example.com", domain.RoleAthlete)

	claims := &jwtx.Claims{UserID: user.ID, Role: string(domain.RoleAthlete)}
	session, refreshed, err := auth.Refresh(ctx, claims, "")
	require.NoError(t, err)
	require.Equal(t, domain.RoleAthlete, session.Role)
	require.Equal(t, user.ID, refreshed.ID)
}

func TestRefreshSwitchesRole(t *testing.T) {
	auth, st := newTestAuth(t)
	ctx := context.Background()

	user := signupTestUser(t, auth, "dual@example.com", domain.RoleAthlete)

	// Grant the second role directly in the store.
	stored, err := st.Users().GetByID(ctx, user.ID)
	require.NoError(t, err)
	stored.Roles = append(stored.Roles, domain.RoleCoach)
	require.NoError(t, st.Users().Update(ctx, stored))

	claims := &jwtx.Claims{UserID: user.ID, Role: string(domain.RoleAthlete)}
	session, _, err := auth.Refresh(ctx, claims, domain.RoleCoach)
	require.NoError(t, err)
	require.Equal(t, domain.RoleCoach, session.Role)

	// The switch persists.
	after, err := st.Users().GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleCoach, after.ActiveRole)
}

func TestRefreshRejectsUnheldRole(t *testing.T) {
	auth, _ := newTestAuth(t)
	ctx := context.Background()

	user := signupTestUser(t, auth, "solo@example.com", domain.RoleAthlete)

	claims := &jwtx.Claims{UserID: user.ID, Role: string(domain.RoleAthlete)}
	_, _, err := auth.Refresh(ctx, claims, domain.RoleCoach)
	require.ErrorIs(t, err, ErrRoleNotHeld)
}

func TestRefreshUnknownUser(t *testing.T) {
	auth, _ := newTestAuth(t)

	claims := &jwtx.Claims{UserID: "ghost", Role: string(domain.RoleAthlete)}
	_, _, err := auth.Refresh(context.Background(), claims, "")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetUser(t *testing.T) {
	auth, _ := newTestAuth(t)
	ctx := context.Background()

	user := signupTestUser(t, auth, "a@example.com", domain.RoleAthlete)

	got, err := auth.GetUser(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "a@example.com", got.Email)

	_, err = auth.GetUser(ctx, "ghost")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestSeedDemoData(t *testing.T) {
	auth, st := newTestAuth(t)
	ctx := context.Background()

	require.NoError(t, SeedDemoData(ctx, st))

	// Demo credentials work.
	session, user, err := auth.Login(ctx, "john.athlete@example.com", "password123")
	require.NoError(t, err)
	require.Equal(t, "user-1", user.ID)
	require.Equal(t, domain.RoleAthlete, session.Role)

	dual, err := st.Users().GetByID(ctx, "user-3")
	require.NoError(t, err)
	require.ElementsMatch(t, []domain.Role{domain.RoleAthlete, domain.RoleCoach}, dual.Roles)

	// Second call is a no-op.
	require.NoError(t, SeedDemoData(ctx, st))
	n, err := st.Users().Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 3, n)
}
