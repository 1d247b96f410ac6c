// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package osrelease reads the local operating system identification from os-release(5).
package osrelease

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/how-install/internal/ctxlog"
	"github.com/spf13/afero"
	"gopkg.in/ini.v1"
)

const (
	keyName       = "NAME"
	keyPrettyName = "PRETTY_NAME"
	keyID         = "ID"
)

var (
	// ErrOSInfoUnavailable is returned when the OS release information cannot be determined.
	ErrOSInfoUnavailable = errors.New("failed to get Linux OS release info")
	// ErrMissingField is returned for each required key that is absent or empty.
	ErrMissingField = errors.New("missing os-release field")
)

// Paths are the os-release locations, tried in order.
var Paths = []string{"/etc/os-release", "/usr/lib/os-release"}

// FsFactory is a function that returns an afero filesystem.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// Info is the subset of os-release used to match install commands.
type Info struct {
	Name       string // NAME, e.g. "Ubuntu"
	PrettyName string // PRETTY_NAME, e.g. "Ubuntu 24.04 LTS"
	ID         string // ID, e.g. "ubuntu"
}

// Detect reads the first os-release file that exists.
func Detect(ctx context.Context) (Info, error) {
	afs := FsFactory()

	for _, p := range Paths {
		b, err := afero.ReadFile(afs, p)
		if errors.Is(err, fs.ErrNotExist) {
			ctxlog.Debug(ctx, "os-release not found", "path", p)
			continue
		}

		if err != nil {
			return Info{}, errors.Join(ErrOSInfoUnavailable, err)
		}

		info, err := Parse(b)
		if err != nil {
			return Info{}, fmt.Errorf("%w: %s: %w", ErrOSInfoUnavailable, p, err)
		}

		ctxlog.Debug(ctx, "detected os", "path", p, "name", info.Name, "pretty_name", info.PrettyName, "id", info.ID)

		return info, nil
	}

	return Info{}, fmt.Errorf("%w: none of %v exist", ErrOSInfoUnavailable, Paths)
}

// Parse decodes os-release content. All of NAME, PRETTY_NAME and ID must be present.
func Parse(b []byte) (Info, error) {
	f, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:       true,
		UnescapeValueDoubleQuotes: true,
	}, b)
	if err != nil {
		return Info{}, err
	}

	sec := f.Section(ini.DefaultSection)
	info := Info{
		Name:       sec.Key(keyName).String(),
		PrettyName: sec.Key(keyPrettyName).String(),
		ID:         sec.Key(keyID).String(),
	}

	var result *multierror.Error

	for _, kv := range []struct{ key, value string }{
		{keyName, info.Name},
		{keyPrettyName, info.PrettyName},
		{keyID, info.ID},
	} {
		if kv.value == "" {
			result = multierror.Append(result, fmt.Errorf("%w: %s", ErrMissingField, kv.key))
		}
	}

	return info, result.ErrorOrNil()
}
