package authsdk

import (
	"context"
	"time"
)

// refreshBuffer is how far before expiry the keeper renews a session,
// so a request issued just before the tick never races the deadline.
const refreshBuffer = 30 * time.Second

// StartSessionKeeper runs a background loop that keeps the session
// fresh: on every tick, an authenticated session at or near expiry is
// refreshed, and a failed refresh forces logout so the UI never sits on
// dead credentials. Call StopSessionKeeper to shut it down.
func (c *Controller) StartSessionKeeper(interval time.Duration) {
	c.mu.Lock()
	if c.stopCh != nil {
		c.mu.Unlock()
		return
	}
	c.stopCh = make(chan struct{})
	c.doneCh = make(chan struct{})
	stopCh, doneCh := c.stopCh, c.doneCh
	c.mu.Unlock()

	go func() {
		defer close(doneCh)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				c.keepAlive()
			}
		}
	}()
}

// StopSessionKeeper stops the background loop and waits for it to exit.
func (c *Controller) StopSessionKeeper() {
	c.mu.Lock()
	stopCh, doneCh := c.stopCh, c.doneCh
	c.stopCh, c.doneCh = nil, nil
	c.mu.Unlock()

	if stopCh == nil {
		return
	}
	close(stopCh)
	<-doneCh
}

func (c *Controller) keepAlive() {
	c.mu.Lock()
	snap := c.snap
	now := c.now()
	c.mu.Unlock()

	if !snap.Authenticated() {
		return
	}
	if now.Add(refreshBuffer).Before(snap.Session.ExpiresAt) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	if err := c.Refresh(ctx); err != nil {
		// Dead session; drop it rather than keep retrying forever.
		_ = c.Logout(ctx)
	}
}
