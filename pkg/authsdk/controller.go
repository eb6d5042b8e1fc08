package authsdk

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrSuperseded is returned when a login or signup result arrives after
// a newer operation has already changed the controller's state. The
// late result is discarded.
var ErrSuperseded = errors.New("authsdk: operation superseded")

// ErrNotAuthenticated guards operations that need a live session.
var ErrNotAuthenticated = errors.New("authsdk: not authenticated")

// Controller is the single source of truth for client auth state. It
// mediates between the API client and the credential cache, and runs
// the reduce state machine. Safe for concurrent use.
type Controller struct {
	client *Client
	cache  *CredentialCache
	now    func() time.Time

	mu       sync.Mutex
	snap     Snapshot
	seq      uint64
	onChange func(Snapshot)

	stopCh chan struct{}
	doneCh chan struct{}
}

// ControllerOption customizes a Controller.
type ControllerOption func(*Controller)

// WithClock overrides the controller's time source. For tests.
func WithClock(now func() time.Time) ControllerOption {
	return func(c *Controller) { c.now = now }
}

// NewController restores state from the cache. A cached session that is
// missing, expired or mismatched yields Anonymous and a cleared cache,
// even when a valid-looking cached user is present.
func NewController(client *Client, cache *CredentialCache, opts ...ControllerOption) (*Controller, error) {
	c := &Controller{
		client: client,
		cache:  cache,
		now:    time.Now,
		snap:   Snapshot{State: StateAnonymous},
	}
	for _, opt := range opts {
		opt(c)
	}

	user, session, err := cache.Load(c.now())
	if err != nil {
		return nil, err
	}
	if user != nil && session != nil {
		c.snap = Snapshot{State: StateAuthenticated, User: user, Session: session}
	}
	return c, nil
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

// OnChange registers a callback invoked after every state transition,
// outside the controller's lock. One callback at a time.
func (c *Controller) OnChange(fn func(Snapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

// apply runs the reducer and notifies the listener. Callers must not
// hold the lock.
func (c *Controller) apply(ev event) Snapshot {
	c.mu.Lock()
	c.snap = reduce(c.snap, ev)
	snap := c.snap
	fn := c.onChange
	c.mu.Unlock()

	if fn != nil {
		fn(snap)
	}
	return snap
}

// Login authenticates and, on success, persists the credentials and
// transitions to Authenticated. On failure the state becomes Errored
// and the error is returned for the caller to display.
func (c *Controller) Login(ctx context.Context, creds LoginCredentials) error {
	seq := c.begin()
	result, err := c.client.Login(ctx, creds)
	return c.finish(seq, result, err)
}

// Signup registers an account; otherwise identical to Login.
func (c *Controller) Signup(ctx context.Context, data SignupData) error {
	seq := c.begin()
	result, err := c.client.Signup(ctx, data)
	return c.finish(seq, result, err)
}

// begin bumps the sequence number and enters Authenticating.
func (c *Controller) begin() uint64 {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.mu.Unlock()

	c.apply(evAttemptStarted{})
	return seq
}

// finish applies an attempt's outcome unless a newer operation has
// started since, in which case the result is dropped. The staleness
// check, the cache writes and the state commit all happen inside one
// critical section, so a concurrent Logout either supersedes the whole
// outcome or serializes strictly after it.
func (c *Controller) finish(seq uint64, result *AuthResult, err error) error {
	c.mu.Lock()
	if seq != c.seq {
		c.mu.Unlock()
		return ErrSuperseded
	}

	if err == nil {
		if cacheErr := c.cache.SaveUser(result.User); cacheErr != nil {
			err = cacheErr
		} else if cacheErr := c.cache.SaveSession(result.Session); cacheErr != nil {
			err = cacheErr
		}
	}

	if err != nil {
		c.snap = reduce(c.snap, evAttemptFailed{err: err})
	} else {
		c.snap = reduce(c.snap, evAttemptSucceeded{user: result.User, session: result.Session})
	}
	snap := c.snap
	fn := c.onChange
	c.mu.Unlock()

	if fn != nil {
		fn(snap)
	}
	return err
}

// Logout calls the server best-effort, then unconditionally clears the
// cache and transitions to Anonymous. A failed network call never
// leaves credentials behind.
func (c *Controller) Logout(ctx context.Context) error {
	c.mu.Lock()
	c.seq++ // invalidate any in-flight login/signup
	token := ""
	if c.snap.Session != nil {
		token = c.snap.Session.Token
	}
	c.mu.Unlock()

	if token != "" {
		_ = c.client.Logout(ctx, token)
	}

	clearErr := c.cache.Clear()
	c.apply(evSignedOut{})
	return clearErr
}

// SwitchRole asks the server for a session bound to the new role. When
// the account does not hold the role, the call is a no-op and the state
// is unchanged. The server remains authoritative: a stale local roles
// list still cannot obtain an unauthorized session.
func (c *Controller) SwitchRole(ctx context.Context, role Role) error {
	c.mu.Lock()
	snap := c.snap
	c.mu.Unlock()

	if !snap.Authenticated() {
		return ErrNotAuthenticated
	}
	if snap.Session.Role == role || !snap.User.HasRole(role) {
		return nil
	}

	session, err := c.client.Refresh(ctx, snap.Session.Token, role)
	if err != nil {
		return err
	}

	if err := c.cache.SaveSession(session); err != nil {
		return err
	}
	c.apply(evSessionRenewed{session: session})
	return nil
}

// Refresh exchanges the current session for a fresh one and persists
// it. Callers wanting the expiry-driven variant use the session keeper.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	snap := c.snap
	c.mu.Unlock()

	if !snap.Authenticated() {
		return ErrNotAuthenticated
	}

	session, err := c.client.Refresh(ctx, snap.Session.Token, "")
	if err != nil {
		return err
	}

	if err := c.cache.SaveSession(session); err != nil {
		return err
	}
	c.apply(evSessionRenewed{session: session})
	return nil
}
