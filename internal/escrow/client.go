// Package escrow is a typed client for the Emagn escrow marketplace REST API.
// It covers authentication, categories and their attribute schemas, and
// transactions with their attached attribute values. Credentials are passed
// explicitly on every authenticated call; the package keeps no global token
// state.
package escrow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const defaultTimeout = 30 * time.Second

// Credentials carries the bearer token for one authenticated call. The zero
// value means "unauthenticated" and will surface an AuthError from the server
// on protected endpoints.
type Credentials struct {
	Token string
}

// Client talks to the Emagn API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates a client for the API at baseURL. A nil httpClient gets a
// default with a 30 second timeout.
func NewClient(baseURL string, httpClient *http.Client, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		log:        log,
	}
}

// do executes one request against the API: it marshals body (when non-nil),
// attaches headers and the bearer token, maps failure modes onto the error
// taxonomy and decodes the response into out (when non-nil).
func (c *Client) do(ctx context.Context, creds Credentials, method, path string, query url.Values, body, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if creds.Token != "" {
		req.Header.Set("Authorization", "Bearer "+creds.Token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("API request")

	if resp.StatusCode >= 400 {
		return errorFromResponse(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorFromResponse maps a non-2xx response onto the error taxonomy, pulling
// the server message out of the usual {"error": ...} / {"message": ...}
// envelopes.
func errorFromResponse(resp *http.Response) error {
	message := serverMessage(resp.Body)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return &AuthError{Message: message}
	case http.StatusNotFound:
		resource := resourceFromPath(resp.Request.URL.Path)
		return &NotFoundError{Resource: resource}
	default:
		return &ServerError{Status: resp.StatusCode, Message: message}
	}
}

func serverMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 64<<10))
	if err != nil {
		return ""
	}

	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil {
		if envelope.Error != "" {
			return envelope.Error
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}
	return strings.TrimSpace(string(data))
}

// resourceFromPath derives a human entity name from an API path, e.g.
// /api/transactions/42 -> "transaction".
func resourceFromPath(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	name := "resource"
	for _, seg := range segments {
		switch seg {
		case "categories":
			name = "category"
		case "attributes":
			name = "attribute"
		case "transactions":
			name = "transaction"
		}
	}
	return name
}

func pagingQuery(opts ListOptions) url.Values {
	query := url.Values{}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		query.Set("offset", strconv.Itoa(opts.Offset))
	}
	return query
}
