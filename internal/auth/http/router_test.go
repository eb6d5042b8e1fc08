package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/athleteone/athleteone/internal/auth/service"
	sqlitestore "github.com/athleteone/athleteone/internal/auth/store/drivers/sqlite"
	"github.com/athleteone/athleteone/internal/metrics"
	"github.com/athleteone/athleteone/pkg/cryptox"
	"github.com/athleteone/athleteone/pkg/jwtx"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

type testEnv struct {
	server *httptest.Server
	signer *jwtx.HS256Signer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cryptox.SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	st, err := sqlitestore.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, service.SeedDemoData(t.Context(), st))

	signer := jwtx.NewHS256Signer("athleteone-auth-test", testSecret)
	verifier := jwtx.NewHS256Verifier("athleteone-auth-test", testSecret)

	router := NewRouter(RouterConfig{
		Auth:          service.NewAuth(st, signer, time.Hour),
		Opportunities: service.NewOpportunities(st),
		Verifier:      verifier,
		RefreshGrace:  30 * 24 * time.Hour,
		Metrics:       metrics.New(),
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		CORSOrigins:   []string{"http://localhost:3000"},
		Ping:          st.Ping,
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return &testEnv{server: server, signer: signer}
}

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) (int, apiResponse) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var parsed apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp.StatusCode, parsed
}

type sessionPayload struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type authData struct {
	User struct {
		ID               string   `json:"id"`
		Email            string   `json:"email"`
		Name             string   `json:"name"`
		Roles            []string `json:"roles"`
		Role             string   `json:"role"`
		ProfileCompleted bool     `json:"profileCompleted"`
	} `json:"user"`
	Session sessionPayload `json:"session"`
}

func TestLoginEndpoint(t *testing.T) {
	env := newTestEnv(t)

	status, resp := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "john.athlete@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, status)
	require.True(t, resp.Success)

	var data authData
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.Equal(t, "user-1", data.User.ID)
	require.Equal(t, "athlete", data.Session.Role)
	require.Equal(t, "user-1", data.Session.UserID)
	require.NotEmpty(t, data.Session.Token)
	require.True(t, data.Session.ExpiresAt.After(time.Now()))

	// The password hash never leaks.
	require.NotContains(t, string(resp.Data), "password")
	require.NotContains(t, string(resp.Data), "argon2")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)

	status, resp := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "john.athlete@example.com",
		"password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, status)
	require.False(t, resp.Success)
	require.Equal(t, "Invalid email or password", resp.Error)

	// Unknown email yields an identical response.
	status2, resp2 := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "password123",
	})
	require.Equal(t, status, status2)
	require.Equal(t, resp.Error, resp2.Error)
}

func TestLoginValidation(t *testing.T) {
	env := newTestEnv(t)

	status, resp := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "not-an-email",
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.Contains(t, resp.Error, "valid email")
	require.Contains(t, resp.Error, "Password is required")
}

func TestSignupEndpoint(t *testing.T) {
	env := newTestEnv(t)

	body := map[string]string{
		"email":    "a@b.com",
		"password": "Abcdef1!",
		"name":     "A B",
		"role":     "athlete",
	}
	status, resp := env.do(t, http.MethodPost, "/api/auth/signup", "", body)
	require.Equal(t, http.StatusCreated, status)

	var data authData
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.Equal(t, []string{"athlete"}, data.User.Roles)
	require.Equal(t, "athlete", data.Session.Role)
	require.False(t, data.User.ProfileCompleted)

	// The new credentials immediately work for login.
	status, _ = env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "a@b.com",
		"password": "Abcdef1!",
	})
	require.Equal(t, http.StatusOK, status)

	// Re-registering the same email conflicts.
	status, resp = env.do(t, http.MethodPost, "/api/auth/signup", "", body)
	require.Equal(t, http.StatusConflict, status)
	require.Equal(t, "User with this email already exists", resp.Error)
}

func TestSignupValidation(t *testing.T) {
	env := newTestEnv(t)

	status, resp := env.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email":    "weak@example.com",
		"password": "short",
		"name":     "X",
		"role":     "wizard",
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.Contains(t, resp.Error, "at least 8 characters")
	require.Contains(t, resp.Error, "at least 2 characters")
	require.Contains(t, resp.Error, "athlete or coach")
}

func TestBearerMiddleware(t *testing.T) {
	env := newTestEnv(t)

	// Missing token.
	status, resp := env.do(t, http.MethodGet, "/api/users/user-1", "", nil)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "Access token required", resp.Error)

	// Invalid token.
	status, resp = env.do(t, http.MethodGet, "/api/users/user-1", "garbage", nil)
	require.Equal(t, http.StatusForbidden, status)
	require.Equal(t, "Invalid or expired token", resp.Error)
}

func TestGetUserEndpoint(t *testing.T) {
	env := newTestEnv(t)
	token, _, err := env.signer.Sign("user-1", "athlete", time.Hour)
	require.NoError(t, err)

	status, resp := env.do(t, http.MethodGet, "/api/users/user-2", token, nil)
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, string(resp.Data), "sarah.coach@example.com")
	require.NotContains(t, string(resp.Data), "argon2")

	status, resp = env.do(t, http.MethodGet, "/api/users/ghost", token, nil)
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "User not found", resp.Error)
}

func TestRefreshEndpoint(t *testing.T) {
	env := newTestEnv(t)

	// An expired token still refreshes inside the grace window.
	expired := jwtx.NewHS256Signer("athleteone-auth-test", testSecret)
	token, _, err := expired.Sign("user-1", "athlete", -time.Hour)
	require.NoError(t, err)

	status, resp := env.do(t, http.MethodPost, "/api/auth/refresh", token, nil)
	require.Equal(t, http.StatusOK, status)

	var session sessionPayload
	require.NoError(t, json.Unmarshal(resp.Data, &session))
	require.Equal(t, "user-1", session.UserID)
	require.Equal(t, "athlete", session.Role)
	require.True(t, session.ExpiresAt.After(time.Now()))
}

func TestRefreshRoleSwitch(t *testing.T) {
	env := newTestEnv(t)
	token, _, err := env.signer.Sign("user-3", "athlete", time.Hour)
	require.NoError(t, err)

	// user-3 holds both roles.
	status, resp := env.do(t, http.MethodPost, "/api/auth/refresh", token, map[string]string{"role": "coach"})
	require.Equal(t, http.StatusOK, status)

	var session sessionPayload
	require.NoError(t, json.Unmarshal(resp.Data, &session))
	require.Equal(t, "coach", session.Role)

	// user-1 does not hold coach.
	token, _, err = env.signer.Sign("user-1", "athlete", time.Hour)
	require.NoError(t, err)
	status, resp = env.do(t, http.MethodPost, "/api/auth/refresh", token, map[string]string{"role": "coach"})
	require.Equal(t, http.StatusForbidden, status)
	require.False(t, resp.Success)
}

func TestRefreshUnknownUser(t *testing.T) {
	env := newTestEnv(t)
	token, _, err := env.signer.Sign("deleted-user", "athlete", time.Hour)
	require.NoError(t, err)

	status, resp := env.do(t, http.MethodPost, "/api/auth/refresh", token, nil)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "User not found", resp.Error)
}

func TestLogoutEndpoint(t *testing.T) {
	env := newTestEnv(t)
	token, _, err := env.signer.Sign("user-1", "athlete", time.Hour)
	require.NoError(t, err)

	status, resp := env.do(t, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, status)
	require.True(t, resp.Success)
	require.Equal(t, "Logged out successfully", resp.Message)

	// Logout without a token is still a 401 from the middleware.
	status, _ = env.do(t, http.MethodPost, "/api/auth/logout", "", nil)
	require.Equal(t, http.StatusUnauthorized, status)
}

func TestOpportunitiesEndpoint(t *testing.T) {
	env := newTestEnv(t)
	token, _, err := env.signer.Sign("user-1", "athlete", time.Hour)
	require.NoError(t, err)

	status, resp := env.do(t, http.MethodGet, "/api/opportunities", token, nil)
	require.Equal(t, http.StatusOK, status)

	var page struct {
		Items []map[string]any `json:"items"`
		Total int64            `json:"total"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &page))
	require.EqualValues(t, 2, page.Total)

	// Sport filter matches substrings case-insensitively.
	status, resp = env.do(t, http.MethodGet, "/api/opportunities?sport=basket", token, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(resp.Data, &page))
	require.EqualValues(t, 1, page.Total)
	require.Equal(t, "College Basketball Scholarship", page.Items[0]["title"])
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t)

	status, resp := env.do(t, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.True(t, resp.Success)
	require.Contains(t, string(resp.Data), "ok")
}
