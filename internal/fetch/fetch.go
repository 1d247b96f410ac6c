// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package fetch downloads command-not-found.com pages and other remote documents.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/matt-FFFFFF/how-install/internal/ctxlog"
)

const (
	// DefaultBaseURL is the lookup site that install commands are extracted from.
	DefaultBaseURL = "https://command-not-found.com"
	// DefaultTimeout bounds a single HTTP request.
	DefaultTimeout = 30 * time.Second

	userAgent = "how-install"
)

// maxBodySize is the largest response body accepted.
var maxBodySize int64 = 8 * 1024 * 1024

var (
	// ErrFetch is returned when a request could not be completed.
	ErrFetch = errors.New("failed to fetch")
	// ErrEmptyCommand is returned when Page is called without a command name.
	ErrEmptyCommand = errors.New("command name is empty")
	// ErrResponseTooLarge is returned when a body exceeds the size limit.
	ErrResponseTooLarge = errors.New("response too large")
)

// Response is a fetched document.
type Response struct {
	URL        string
	StatusCode int
	Body       []byte
}

// OK reports whether the status code is 2xx.
func (r Response) OK() bool {
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

// Client fetches documents over HTTP.
type Client struct {
	baseURL string
	http    *retryablehttp.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the site that Page queries.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.HTTPClient.Timeout = d
		}
	}
}

// WithRetries enables retrying failed requests n times. The default is no retries.
func WithRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.http.RetryMax = n
		}
	}
}

// New creates a Client.
func New(opts ...Option) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 0
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.Logger = nil
	rc.HTTPClient.Timeout = DefaultTimeout
	// A 4xx or 5xx page is still a page; only transport errors fail.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	c := &Client{
		baseURL: DefaultBaseURL,
		http:    rc,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// PageURL returns the lookup URL for command.
func (c *Client) PageURL(command string) string {
	return c.baseURL + "/" + url.PathEscape(command)
}

// Page fetches the lookup page for command and returns its markup.
// The status code is not checked: a page for an unknown command simply has no install blocks.
func (c *Client) Page(ctx context.Context, command string) ([]byte, error) {
	if command == "" {
		return nil, ErrEmptyCommand
	}

	res, err := c.Get(ctx, c.PageURL(command))
	if err != nil {
		return nil, err
	}

	if !res.OK() {
		ctxlog.Warn(ctx, "lookup page returned unexpected status", "url", res.URL, "status", res.StatusCode)
	}

	return res.Body, nil
}

// Get performs a GET request and returns the body regardless of status code.
func (c *Client) Get(ctx context.Context, u string) (Response, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Response{}, fmt.Errorf("%w %s: %w", ErrFetch, u, err)
	}

	req.Header.Set("User-Agent", userAgent)

	ctxlog.Debug(ctx, "fetching", "url", u)

	resp, err := c.http.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("%w %s: %w", ErrFetch, u, err)
	}

	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return Response{}, fmt.Errorf("%w %s: reading body: %w", ErrFetch, u, err)
	}

	if int64(len(body)) > maxBodySize {
		return Response{}, fmt.Errorf("%w %s: %w: more than %d bytes", ErrFetch, u, ErrResponseTooLarge, maxBodySize)
	}

	ctxlog.Debug(ctx, "fetched", "url", u, "status", resp.StatusCode, "bytes", len(body))

	return Response{URL: u, StatusCode: resp.StatusCode, Body: body}, nil
}
