// @license
// Copyright (C) 2024  Tynobi Company
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package webuntis

import (
	"context"
	"time"

	"github.com/Tynobi-Company/webuntis-headless/logger"
	"github.com/hako/durafmt"
)

// authParams is the JSON-RPC authenticate parameter block.
type authParams struct {
	User     string `json:"user"`
	Password string `json:"password"`
}

// EnsureSession returns the live session, authenticating first if none
// exists. Concurrent callers without a session share a single authenticate
// call and observe the same resulting session. Authentication failures leave
// the client without a session.
func (c *Client) EnsureSession(ctx context.Context) (*Session, error) {
	c.mu.Lock()
	if c.session != nil {
		sess := c.session
		c.mu.Unlock()

		return sess, nil
	}
	c.mu.Unlock()

	sess, err, _ := c.authGroup.Do("authenticate", func() (any, error) {
		// a racing caller may have authenticated in the meantime
		c.mu.Lock()
		if c.session != nil {
			sess := c.session
			c.mu.Unlock()

			return sess, nil
		}
		c.mu.Unlock()

		return c.authenticate(ctx)
	})
	if err != nil {
		return nil, err
	}

	return sess.(*Session), nil
}

// CurrentSession returns a copy of the live session, or false when none
// exists.
func (c *Client) CurrentSession() (Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return Session{}, false
	}

	return *c.session, true
}

// Logout invalidates the server-side session and unconditionally drops the
// local one, stopping its expiry timer. The logout call error, if any, is
// returned after the local state is already cleared. Logging out without a
// session is a no-op.
func (c *Client) Logout(ctx context.Context) error {
	if _, ok := c.CurrentSession(); !ok {
		return nil
	}

	err := c.rpcRequest(ctx, "logout", nil, nil)

	c.mu.Lock()
	c.stopExpiryLocked()
	c.session = nil
	c.mu.Unlock()

	logger.Debug().Msg("Logged out, session dropped")

	return err
}

// authenticate performs the JSON-RPC authenticate call, caches the session,
// then asks the backend for its latest import time and schedules the session
// to expire after now minus that timestamp. An older data snapshot means a
// sooner forced re-authentication. If the follow-up call fails the
// half-established session is dropped so no partial session ever survives.
func (c *Client) authenticate(ctx context.Context) (*Session, error) {
	c.mu.Lock()
	user, password := c.username, c.password
	// random User-Agent per session dialog
	c.userAgent = randomUserAgent()
	c.mu.Unlock()

	var sess Session
	if err := c.rpcRequest(ctx, "authenticate", authParams{User: user, Password: password}, &sess); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.session = &sess
	c.mu.Unlock()

	logger.Debug().Msgf("Authenticated as person %v (type %v, klasse %v)", sess.PersonID, sess.PersonType, sess.KlasseID)

	var latest int64
	if err := c.rpcRequest(ctx, "getLatestImportTime", nil, &latest); err != nil {
		c.mu.Lock()
		c.session = nil
		c.mu.Unlock()

		return nil, err
	}

	c.scheduleExpiry(&sess, time.Since(time.UnixMilli(latest)))

	return &sess, nil
}

// scheduleExpiry replaces the one-shot expiry timer with one that clears the
// given session after delay. A zero or negative delay fires immediately; the
// backend reporting a very recent or future import time force-expires the
// session right away. The callback only clears the session it was armed for,
// never a newer one.
func (c *Client) scheduleExpiry(sess *Session, delay time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopExpiryLocked()

	logger.Debug().Msgf("Session scheduled to expire in %v", durafmt.Parse(delay).LimitFirstN(2))

	c.expiry = time.AfterFunc(delay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		if c.session == sess {
			c.session = nil
			c.expiry = nil

			logger.Debug().Msg("Session expired, next request re-authenticates")
		}
	})
}

// stopExpiryLocked stops and forgets the pending expiry timer. Caller holds
// c.mu.
func (c *Client) stopExpiryLocked() {
	if c.expiry != nil {
		c.expiry.Stop()
		c.expiry = nil
	}
}
