// Package service holds the auth business logic, between the HTTP
// handlers and the store.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/athleteone/athleteone/internal/auth/domain"
	"github.com/athleteone/athleteone/internal/auth/store"
	"github.com/athleteone/athleteone/pkg/cryptox"
	"github.com/athleteone/athleteone/pkg/idx"
	"github.com/athleteone/athleteone/pkg/jwtx"
	"github.com/athleteone/athleteone/pkg/slogx"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong
	// password. Callers must not distinguish the two.
	ErrInvalidCredentials = errors.New("service: invalid credentials")

	// ErrEmailTaken is returned when signing up with a registered email.
	ErrEmailTaken = errors.New("service: email already registered")

	// ErrUserNotFound is returned for lookups of nonexistent accounts.
	ErrUserNotFound = errors.New("service: user not found")

	// ErrRoleNotHeld is returned when a session requests a role the
	// account does not hold.
	ErrRoleNotHeld = errors.New("service: role not held by account")
)

// Auth implements login, signup, session refresh and account lookup.
type Auth struct {
	store      store.Store
	signer     jwtx.Signer
	sessionTTL time.Duration
}

func NewAuth(st store.Store, signer jwtx.Signer, sessionTTL time.Duration) *Auth {
	if sessionTTL <= 0 {
		sessionTTL = jwtx.DefaultSessionTTL
	}
	return &Auth{
		store:      st,
		signer:     signer,
		sessionTTL: sessionTTL,
	}
}

// Login verifies credentials and issues a session bound to the user's
// active role.
func (a *Auth) Login(ctx context.Context, email, password string) (*domain.Session, *domain.User, error) {
	log := slogx.FromContext(ctx)

	user, err := a.store.Users().GetByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		// Hash anyway so response timing does not reveal whether the
		// email is registered.
		_, _ = cryptox.HashPassword(password)
		return nil, nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, nil, fmt.Errorf("login: %w", err)
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Info("login rejected", "user_id", user.ID)
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("login: verify password: %w", err)
	}

	session, err := a.issueSession(user.ID, user.ActiveRole)
	if err != nil {
		return nil, nil, fmt.Errorf("login: %w", err)
	}

	log.Info("login succeeded", "user_id", user.ID, "role", user.ActiveRole)
	return session, user, nil
}

// SignupParams is the validated input for account creation.
type SignupParams struct {
	Email    string
	Password string
	Name     string
	Role     domain.Role
}

// Signup creates an account and issues its first session. A duplicate
// email fails with ErrEmailTaken; the store's unique index backs this
// even under concurrent signups.
func (a *Auth) Signup(ctx context.Context, params SignupParams) (*domain.Session, *domain.User, error) {
	log := slogx.FromContext(ctx)

	hash, err := cryptox.HashPassword(params.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("signup: hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:               "user-" + idx.New().String(),
		Email:            params.Email,
		Name:             params.Name,
		Roles:            []domain.Role{params.Role},
		ActiveRole:       params.Role,
		ProfileCompleted: false,
		PasswordHash:     hash,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := a.store.Users().Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, nil, ErrEmailTaken
		}
		return nil, nil, fmt.Errorf("signup: %w", err)
	}

	session, err := a.issueSession(user.ID, user.ActiveRole)
	if err != nil {
		return nil, nil, fmt.Errorf("signup: %w", err)
	}

	log.Info("account created", "user_id", user.ID, "role", user.ActiveRole)
	return session, user, nil
}

// Refresh issues a fresh session for the identity in verified claims.
// When newRole is non-empty the account must hold that role, and the
// new session plus the account's active role switch to it. Identity
// always comes from the claims, never from the request body.
func (a *Auth) Refresh(ctx context.Context, claims *jwtx.Claims, newRole domain.Role) (*domain.Session, *domain.User, error) {
	log := slogx.FromContext(ctx)

	user, err := a.store.Users().GetByID(ctx, claims.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil, ErrUserNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("refresh: %w", err)
	}

	role := user.ActiveRole
	if newRole != "" {
		if !user.HasRole(newRole) {
			return nil, nil, ErrRoleNotHeld
		}
		role = newRole
	}

	if role != user.ActiveRole {
		user.ActiveRole = role
		user.UpdatedAt = time.Now().UTC()
		if err := a.store.Users().Update(ctx, user); err != nil {
			return nil, nil, fmt.Errorf("refresh: persist role switch: %w", err)
		}
		log.Info("active role switched", "user_id", user.ID, "role", role)
	}

	session, err := a.issueSession(user.ID, role)
	if err != nil {
		return nil, nil, fmt.Errorf("refresh: %w", err)
	}
	return session, user, nil
}

// GetUser returns the account with the given ID.
func (a *Auth) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := a.store.Users().GetByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (a *Auth) issueSession(userID string, role domain.Role) (*domain.Session, error) {
	token, expiresAt, err := a.signer.Sign(userID, string(role), a.sessionTTL)
	if err != nil {
		return nil, fmt.Errorf("issue session: %w", err)
	}
	return &domain.Session{
		Token:     token,
		UserID:    userID,
		Role:      role,
		ExpiresAt: expiresAt,
	}, nil
}
