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
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/Tynobi-Company/webuntis-headless/logger"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Route is the REST-style API route category under /WebUntis/api.
type Route string

const (
	RoutePublic Route = "public"
	RouteREST   Route = "rest"
	RouteToken  Route = "token"
)

// authScheme selects how a REST-style request authenticates itself.
type authScheme int

const (
	authCookie authScheme = iota
	authBearer
)

var (
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrNoCookie         = errors.New("no session cookie available")
	ErrRPC              = errors.New("JSON-RPC error")
)

// rpcEnvelope is the outgoing JSON-RPC 2.0 request envelope.
type rpcEnvelope struct {
	ID      string `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
	JSONRPC string `json:"jsonrpc"`
}

// rpcResponse is the incoming JSON-RPC 2.0 response envelope; Result stays
// raw so callers decide the shape.
type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      string          `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// BuildCookie derives the two-pair cookie header value from the current
// school and session. It returns ErrNoCookie while either is absent; the
// value is recomputed per request and never cached.
func (c *Client) BuildCookie() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.school == "" || c.session == nil {
		return "", fmt.Errorf("%w", ErrNoCookie)
	}

	schoolname := base64.StdEncoding.EncodeToString([]byte(c.school))

	return fmt.Sprintf("JSESSIONID=%s; schoolname=%s", c.session.SessionID, schoolname), nil
}

// GetJwtToken fetches a fresh bearer token through the cookie-authenticated
// token/new endpoint. The token is short-lived by backend contract and is
// requested anew for every token-authenticated call.
func (c *Client) GetJwtToken(ctx context.Context) (string, error) {
	var token string
	if err := c.apiRequest(ctx, http.MethodGet, RouteToken, "new", nil, authCookie, &token); err != nil {
		return "", err
	}

	return token, nil
}

// rpcRequest POSTs a JSON-RPC 2.0 envelope to jsonrpc.do and decodes the
// result member into out. The session cookie is attached when one exists,
// but no session is established first: authenticate, logout and
// getLatestImportTime must be callable before a session exists. A JSON-RPC
// error member is returned as an ErrRPC-wrapped error.
func (c *Client) rpcRequest(ctx context.Context, method string, params, out any) error {
	c.mu.Lock()
	host, school, ua := c.baseHost, c.school, c.userAgent
	c.mu.Unlock()

	if params == nil {
		params = struct{}{}
	}

	body, err := json.Marshal(rpcEnvelope{
		ID:      uuid.NewString(),
		Method:  method,
		Params:  params,
		JSONRPC: "2.0",
	})
	if err != nil {
		return err
	}

	u := url.URL{
		Scheme:   "https",
		Host:     host,
		Path:     "/WebUntis/jsonrpc.do",
		RawQuery: url.Values{"school": {school}}.Encode(),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", ua)

	// cookie is optional on the JSON-RPC path
	if cookie, err := c.BuildCookie(); err == nil {
		req.Header.Set("Cookie", cookie)
	}

	logger.Debug().Msgf("JSON-RPC request %v to %v", method, u.Redacted())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			return err
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %v", ErrUnexpectedStatus, resp.StatusCode)
	}

	var envelope rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return err
	}

	// drain rest of the body
	io.Copy(io.Discard, resp.Body) //nolint:errcheck

	if envelope.Error != nil {
		return fmt.Errorf("%w: %v (code %v)", ErrRPC, envelope.Error.Message, envelope.Error.Code)
	}

	if out != nil && len(envelope.Result) > 0 {
		return json.Unmarshal(envelope.Result, out)
	}

	return nil
}

// apiRequest sends one REST-style request under /WebUntis/api/{route}/{path}
// and decodes the JSON response body into out, or reads it verbatim when out
// is a *string. A session is always established first; authentication is the
// session cookie by default or a freshly fetched bearer token. Non-2xx
// statuses and transport failures propagate unmodified, without retry.
func (c *Client) apiRequest(ctx context.Context, httpMethod string, route Route, path string, query url.Values, auth authScheme, out any) error {
	if _, err := c.EnsureSession(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	host, ua := c.baseHost, c.userAgent
	c.mu.Unlock()

	u := url.URL{
		Scheme: "https",
		Host:   host,
		Path:   fmt.Sprintf("/WebUntis/api/%s/%s", route, path),
	}
	if query != nil {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, httpMethod, u.String(), nil)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", ua)

	switch auth {
	case authBearer:
		token, err := c.GetJwtToken(ctx)
		if err != nil {
			return err
		}

		req.Header.Set("Authorization", "Bearer "+token)
	default:
		cookie, err := c.BuildCookie()
		if err != nil {
			return err
		}

		req.Header.Set("Cookie", cookie)
	}

	logger.Debug().Msgf("API request %v %v", httpMethod, u.Redacted())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			return err
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: %v", ErrUnexpectedStatus, resp.StatusCode)
	}

	if out == nil {
		// drain rest of the body
		io.Copy(io.Discard, resp.Body) //nolint:errcheck

		return nil
	}

	// token/new answers with the raw token string instead of JSON
	if raw, ok := out.(*string); ok {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		*raw = string(body)

		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
