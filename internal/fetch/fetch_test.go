// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageURL(t *testing.T) {
	c := New()
	assert.Equal(t, "https://command-not-found.com/jq", c.PageURL("jq"))

	c = New(WithBaseURL("http://localhost:8080/"))
	assert.Equal(t, "http://localhost:8080/a%2Fb", c.PageURL("a/b"))
}

func TestPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/jq", r.URL.Path)
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte("<html>jq</html>"))
	}))
	defer srv.Close()

	body, err := New(WithBaseURL(srv.URL)).Page(context.Background(), "jq")
	require.NoError(t, err)
	assert.Equal(t, "<html>jq</html>", string(body))
}

func TestPage_EmptyCommand(t *testing.T) {
	_, err := New().Page(context.Background(), "")
	require.ErrorIs(t, err, ErrEmptyCommand)
}

func TestPage_NotFoundStatusStillReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("<html>no such command</html>"))
	}))
	defer srv.Close()

	body, err := New(WithBaseURL(srv.URL)).Page(context.Background(), "nope")
	require.NoError(t, err)
	assert.Contains(t, string(body), "no such command")
}

func TestGet_BodySizeLimit(t *testing.T) {
	stubs := gostub.Stub(&maxBodySize, int64(8))
	defer stubs.Reset()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.URL.Path[1:]))
	}))
	defer srv.Close()

	c := New(WithBaseURL(srv.URL))

	body, err := c.Page(context.Background(), "exactly8")
	require.NoError(t, err)
	assert.Equal(t, "exactly8", string(body))

	body, err = c.Page(context.Background(), "ninebytes")
	require.ErrorIs(t, err, ErrFetch)
	require.ErrorIs(t, err, ErrResponseTooLarge)
	assert.Nil(t, body)
}

func TestGet_Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := New()

	res, err := c.Get(context.Background(), srv.URL+"/present")
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Equal(t, "ok", string(res.Body))

	res, err = c.Get(context.Background(), srv.URL+"/missing")
	require.NoError(t, err)
	assert.False(t, res.OK())
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestGet_NoRetriesByDefault(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	res, err := New().Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, res.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGet_WithRetries(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		_, _ = w.Write([]byte("finally"))
	}))
	defer srv.Close()

	c := New(WithRetries(2))
	c.http.RetryWaitMin = time.Millisecond
	c.http.RetryWaitMax = time.Millisecond

	res, err := c.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "finally", string(res.Body))
	assert.Equal(t, int32(3), calls.Load())
}

func TestGet_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	u := srv.URL
	srv.Close()

	_, err := New().Get(context.Background(), u)
	require.ErrorIs(t, err, ErrFetch)
}

func TestWithTimeout(t *testing.T) {
	c := New(WithTimeout(5 * time.Second))
	assert.Equal(t, 5*time.Second, c.http.HTTPClient.Timeout)

	c = New(WithTimeout(0))
	assert.Equal(t, DefaultTimeout, c.http.HTTPClient.Timeout)
}
