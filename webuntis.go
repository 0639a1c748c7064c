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

// Package webuntis is a headless client for the WebUntis school-information
// backend. It manages a single cookie-based server session per Client, talks
// JSON-RPC 2.0 and the REST-style API through one request path and exposes
// typed timetable and calendar-entry operations.
package webuntis

import (
	"net/http"
	"sync"
	"time"

	"github.com/Tynobi-Company/webuntis-headless/config"
	"github.com/corpix/uarand"
	"golang.org/x/sync/singleflight"
)

const (
	Timeout  = 60 * time.Second                                                                                                  // site can get really slow sometimes
	ChromeUA = "Mozilla/5.0 (Linux; Android 10; K) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Mobile Safari/537.36" // ChromeUA is a user agent string mimicking Chrome on Android.
)

// Client structure holds backend configuration, the live session and all HTTP
// Client related fields. A zero Client is not usable; construct one with New
// or NewFromConfig.
type Client struct {
	httpClient *http.Client

	mu       sync.Mutex
	baseHost string
	school   string
	username string
	password string

	session *Session
	expiry  *time.Timer

	authGroup singleflight.Group
	userAgent string
}

// New creates a new *Client with the default HTTP timeout and no backend
// configuration. Host, school, username and password are set afterwards with
// the corresponding setters.
func New() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: Timeout,
		},
		userAgent: ChromeUA,
	}
}

// NewFromConfig creates a new *Client pre-populated from a loaded
// configuration, optionally overriding the default HTTP timeout.
func NewFromConfig(cfg config.Config) *Client {
	c := New()
	c.baseHost = cfg.BaseHost
	c.school = cfg.School
	c.username = cfg.Username
	c.password = cfg.Password

	if cfg.Timeout > 0 {
		c.httpClient.Timeout = time.Duration(cfg.Timeout) * time.Second
	}

	return c
}

// SetBaseHost sets the backend hostname (without scheme), visible to every
// subsequent request. No validation is performed; a bad host surfaces when a
// request is attempted.
func (c *Client) SetBaseHost(host string) {
	c.mu.Lock()
	c.baseHost = host
	c.mu.Unlock()
}

// SetSchool sets the school identifier used in the JSON-RPC endpoint query
// and the schoolname cookie.
func (c *Client) SetSchool(school string) {
	c.mu.Lock()
	c.school = school
	c.mu.Unlock()
}

// SetUsername sets the username used by the authenticate call.
func (c *Client) SetUsername(username string) {
	c.mu.Lock()
	c.username = username
	c.mu.Unlock()
}

// SetPassword sets the password used by the authenticate call.
func (c *Client) SetPassword(password string) {
	c.mu.Lock()
	c.password = password
	c.mu.Unlock()
}

// CloseConnections closes all idle connections on the underlying transport.
func (c *Client) CloseConnections() {
	c.httpClient.CloseIdleConnections()
}

// randomUserAgent returns a random User-Agent string with uarand, falling
// back to the fixed Chrome one.
func randomUserAgent() string {
	if ua := uarand.GetRandom(); ua != "" {
		return ua
	}

	return ChromeUA
}
