// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-getter/v2"
	"github.com/matt-FFFFFF/how-install/internal/ctxlog"
	"github.com/spf13/afero"
)

const (
	appDir   = "how-install"
	fileName = "config.yaml"
)

// ErrGetConfigFile is returned when a configuration source cannot be retrieved.
var ErrGetConfigFile = errors.New("failed to get config file")

// FsFactory is a function that returns an afero filesystem.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// UserConfigDir returns the base directory for DefaultPath.
var UserConfigDir = os.UserConfigDir

// DefaultPath returns the location of the per-user configuration file.
func DefaultPath() (string, error) {
	dir, err := UserConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, appDir, fileName), nil
}

// Load reads configuration from src, a go-getter source. If src is empty the
// per-user file is read, and defaults are returned when it does not exist.
func Load(ctx context.Context, src string) (*Config, error) {
	if src != "" {
		b, err := getURL(ctx, src)
		if err != nil {
			return nil, err
		}

		ctxlog.Debug(ctx, "loaded config", "source", src)

		return Parse(b)
	}

	path, err := DefaultPath()
	if err != nil {
		ctxlog.Debug(ctx, "no user config directory", "error", err)
		return Default(), nil
	}

	b, err := afero.ReadFile(FsFactory(), path)
	if errors.Is(err, fs.ErrNotExist) {
		ctxlog.Debug(ctx, "no config file, using defaults", "path", path)
		return Default(), nil
	}

	if err != nil {
		return nil, errors.Join(ErrGetConfigFile, err)
	}

	ctxlog.Debug(ctx, "loaded config", "source", path)

	return Parse(b)
}

// getURL reads the config file at src, a go-getter source such as a local path or an
// https URL. A repository source names the file after a "//" separator, e.g.
// git::https://github.com/org/dotfiles//how-install/config.yaml?ref=main.
func getURL(ctx context.Context, src string) ([]byte, error) {
	if src == "" {
		return nil, ErrGetConfigFile
	}

	tmpDir, err := os.MkdirTemp("", "how-install-getter-*")
	if err != nil {
		return nil, errors.Join(ErrGetConfigFile, err)
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Join(ErrGetConfigFile, err)
	}

	req := &getter.Request{
		Src:     src,
		Dst:     filepath.Join(tmpDir, fileName),
		Pwd:     wd,
		GetMode: getter.ModeFile,
		Copy:    true,
	}

	repo, file := getter.SourceDirSubdir(src)
	if file != "" {
		file = filepath.FromSlash(file)
		if !filepath.IsLocal(file) {
			return nil, fmt.Errorf("%w: %q is not a path inside %s", ErrGetConfigFile, file, repo)
		}

		req.Src = repo
		req.Dst = filepath.Join(tmpDir, "src")
		req.GetMode = getter.ModeDir
	}

	client := getter.Client{
		DisableSymlinks: true,
	}

	res, err := client.Get(ctx, req)
	if err != nil {
		return nil, errors.Join(ErrGetConfigFile, err)
	}

	path := res.Dst
	if file != "" {
		path = filepath.Join(res.Dst, file)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrGetConfigFile, err)
	}

	return b, nil
}
