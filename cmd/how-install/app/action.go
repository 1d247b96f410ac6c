// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/matt-FFFFFF/how-install/internal/config"
	"github.com/matt-FFFFFF/how-install/internal/confirm"
	"github.com/matt-FFFFFF/how-install/internal/ctxlog"
	"github.com/matt-FFFFFF/how-install/internal/distro"
	"github.com/matt-FFFFFF/how-install/internal/fetch"
	"github.com/matt-FFFFFF/how-install/internal/installindex"
	"github.com/matt-FFFFFF/how-install/internal/notes"
	"github.com/matt-FFFFFF/how-install/internal/osrelease"
	"github.com/matt-FFFFFF/how-install/internal/privilege"
	"github.com/matt-FFFFFF/how-install/internal/resolver"
	"github.com/matt-FFFFFF/how-install/internal/shell"
	"github.com/urfave/cli/v3"
)

// Collaborators that touch the host. Tests replace them.
var (
	detectOS = osrelease.Detect
	isRoot   = privilege.IsRoot
	ask      = confirm.Ask
	runShell = func(ctx context.Context, line string) (int, error) {
		c, err := shell.New(ctx, line)
		if err != nil {
			return -1, err
		}

		return c.Run(ctx)
	}
)

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg(cmdArg)
	logger := ctxlog.Logger(ctx).With("cmd", name)

	if name == "" {
		logger.Error("Please provide the name of a command to look up.")
		return cli.Exit(cliExitStr, 1)
	}

	cfg, err := config.Load(ctx, cmd.String(configFlag))
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to load configuration: %s", err.Error()))
		return cli.Exit(cliExitStr, 1)
	}

	applyLogLevel(cfg)

	client := fetch.New(
		fetch.WithBaseURL(cfg.BaseURL),
		fetch.WithTimeout(cfg.TimeoutDuration()),
		fetch.WithRetries(cfg.Retries),
	)

	page, err := client.Page(ctx, name)
	if err != nil {
		logger.Error(err.Error())
		return cli.Exit(cliExitStr, 1)
	}

	idx, err := installindex.Extract(ctx, bytes.NewReader(page), name)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to read %s: %s", client.PageURL(name), err.Error()))
		return cli.Exit(cliExitStr, 1)
	}

	if cmd.Bool(listFlag) {
		return writeIndex(cmd.Writer, idx)
	}

	platform, err := platformFor(ctx, cmd, cfg)
	if err != nil {
		logger.Error(err.Error())
		return cli.Exit(cliExitStr, 1)
	}

	install, err := resolver.Resolve(ctx, idx, platform)
	if err != nil {
		if errors.Is(err, resolver.ErrNotFound) {
			return cli.Exit(err.Error(), 1)
		}

		logger.Error(err.Error())

		return cli.Exit(cliExitStr, 1)
	}

	line := resolver.WithPrivilege(install, isRoot())

	if !cmd.Bool(noTLDRFlag) && !cfg.NoTLDR {
		src := notes.New(client, cfg.NotesURL, cfg.NotesPlatforms)
		if _, err := src.Show(ctx, cmd.ErrWriter, name); err != nil {
			logger.Warn("Failed to show usage notes", "error", err)
		}
	}

	header := lipgloss.NewRenderer(cmd.ErrWriter).NewStyle().Bold(true).Render("INSTALL")
	fmt.Fprint(cmd.ErrWriter, header+"\n  ") //nolint:errcheck
	fmt.Fprintln(cmd.Writer, line)           //nolint:errcheck

	if !cmd.Bool(yesFlag) && !(cmd.Bool(installFlag) && ask(ctx, fmt.Sprintf("Install %s using the above command?", name))) {
		return nil
	}

	code, err := runShell(ctx, line)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to run install command: %s", err.Error()))
		return cli.Exit(cliExitStr, 1)
	}

	if code != 0 {
		return cli.Exit(cliExitStr, code)
	}

	return nil
}

// platformFor prefers --distro, then the configured distro, then the local OS.
func platformFor(ctx context.Context, cmd *cli.Command, cfg *config.Config) (resolver.Platform, error) {
	if s := cmd.String(distroFlag); s != "" {
		d, err := distro.Parse(s)
		if err != nil {
			return resolver.Platform{}, err
		}

		return resolver.Override(d), nil
	}

	if d, ok := cfg.DistroOverride(); ok {
		return resolver.Override(d), nil
	}

	info, err := detectOS(ctx)
	if err != nil {
		return resolver.Platform{}, err
	}

	return resolver.Detected(info), nil
}

func writeIndex(w io.Writer, idx *installindex.Index) error {
	for _, alias := range idx.Aliases() {
		c, _ := idx.Lookup(alias)
		if _, err := fmt.Fprintf(w, "%s\t%s\n", alias, c); err != nil {
			return cli.Exit(err.Error(), 1)
		}
	}

	return nil
}

// applyLogLevel uses the configured level unless the environment already sets one.
func applyLogLevel(cfg *config.Config) {
	if cfg.LogLevel == "" || os.Getenv(ctxlog.LevelEnvVar()) != "" {
		return
	}

	if level, ok := ctxlog.ParseLevel(cfg.LogLevel); ok {
		ctxlog.LevelVar.Set(level)
	}
}
