// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package resolver picks the install command that applies to a platform from an install index.
package resolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/matt-FFFFFF/how-install/internal/ctxlog"
	"github.com/matt-FFFFFF/how-install/internal/distro"
	"github.com/matt-FFFFFF/how-install/internal/osrelease"
)

const sudo = "sudo "

// ErrNotFound is matched by every *NotFoundError.
var ErrNotFound = errors.New("install command not found")

// NotFoundError reports that no alias matched the platform.
// Exactly one of Distro and OSDescription is set.
type NotFoundError struct {
	Command       string
	Distro        distro.Distro
	OSDescription string
}

func (e *NotFoundError) Error() string {
	if e.Distro.Valid() {
		return fmt.Sprintf("%s not found for %s", e.Command, e.Distro)
	}

	return fmt.Sprintf("failed to find install command for %q on OS %q", e.Command, e.OSDescription)
}

// Is lets errors.Is(err, ErrNotFound) match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Index is the read side of an install index.
type Index interface {
	Command() string
	Lookup(alias string) (string, bool)
}

// Platform describes which OS to install for. Use Override or Detected to build one.
type Platform struct {
	distro   distro.Distro
	detected osrelease.Info
}

// Override returns a platform that only matches the canonical name of d.
func Override(d distro.Distro) Platform {
	return Platform{distro: d}
}

// Detected returns a platform that matches the local OS release fields.
func Detected(info osrelease.Info) Platform {
	return Platform{detected: info}
}

// IsOverride reports whether the platform was chosen explicitly.
func (p Platform) IsOverride() bool {
	return p.distro.Valid()
}

// Candidates returns the aliases tried against the index, in priority order.
func (p Platform) Candidates() []string {
	if p.IsOverride() {
		return []string{p.distro.String()}
	}

	return []string{p.detected.Name, p.detected.PrettyName, p.detected.ID}
}

func (p Platform) String() string {
	if p.IsOverride() {
		return p.distro.String()
	}

	return p.detected.PrettyName
}

// Resolve returns the install command for platform. The first candidate that is present
// in the index wins. Matching is exact and case-sensitive.
func Resolve(ctx context.Context, idx Index, platform Platform) (string, error) {
	logger := ctxlog.Logger(ctx).With("command", idx.Command())

	for _, alias := range platform.Candidates() {
		if alias == "" {
			continue
		}

		if cmd, ok := idx.Lookup(alias); ok {
			logger.Debug("resolved install command", "alias", alias, "install", cmd)
			return cmd, nil
		}

		logger.Debug("alias not in index", "alias", alias)
	}

	nf := &NotFoundError{Command: idx.Command()}
	if platform.IsOverride() {
		nf.Distro = platform.distro
	} else {
		nf.OSDescription = platform.detected.PrettyName
	}

	return "", nf
}

// SudoPrefix returns the prefix needed to run an install command with elevated privileges.
func SudoPrefix(isRoot bool) string {
	if isRoot {
		return ""
	}

	return sudo
}

// WithPrivilege prepends SudoPrefix to command.
func WithPrivilege(command string, isRoot bool) string {
	return SudoPrefix(isRoot) + command
}
