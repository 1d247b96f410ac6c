// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package notes shows a short usage summary for a command from the tldr-pages project.
package notes

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/matt-FFFFFF/how-install/internal/ctxlog"
	"github.com/matt-FFFFFF/how-install/internal/fetch"
)

const (
	// DefaultBaseURL serves raw tldr pages laid out as <platform>/<command>.md.
	DefaultBaseURL = "https://raw.githubusercontent.com/tldr-pages/tldr/main/pages"
	pageExt        = ".md"
)

// DefaultPlatforms are the tldr page directories that are searched, in order.
var DefaultPlatforms = []string{"common", "linux"}

// Getter fetches a URL.
type Getter interface {
	Get(ctx context.Context, u string) (fetch.Response, error)
}

// Source looks up tldr pages.
type Source struct {
	getter    Getter
	baseURL   string
	platforms []string
}

// New creates a Source. Empty baseURL or platforms select the defaults.
func New(getter Getter, baseURL string, platforms []string) *Source {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	if len(platforms) == 0 {
		platforms = DefaultPlatforms
	}

	return &Source{
		getter:    getter,
		baseURL:   strings.TrimRight(baseURL, "/"),
		platforms: platforms,
	}
}

// Lookup returns the raw page for command from the first platform that has one.
// The boolean is false when no platform has a page.
func (s *Source) Lookup(ctx context.Context, command string) (string, bool, error) {
	for _, p := range s.platforms {
		u := s.baseURL + "/" + url.PathEscape(p) + "/" + url.PathEscape(strings.ToLower(command)) + pageExt

		res, err := s.getter.Get(ctx, u)
		if err != nil {
			return "", false, err
		}

		if res.OK() {
			return string(res.Body), true, nil
		}

		ctxlog.Debug(ctx, "no tldr page", "platform", p, "status", res.StatusCode)
	}

	return "", false, nil
}

// Show writes the usage notes for command to w. It reports whether a page was found.
func (s *Source) Show(ctx context.Context, w io.Writer, command string) (bool, error) {
	page, ok, err := s.Lookup(ctx, command)
	if err != nil || !ok {
		return false, err
	}

	_, err = io.WriteString(w, Render(w, page))

	return true, err
}
