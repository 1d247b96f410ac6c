// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the how-install command-line interface (CLI).
package main

import (
	"context"
	"fmt"
	"os"

	howinstall "github.com/matt-FFFFFF/how-install"
	"github.com/matt-FFFFFF/how-install/cmd/how-install/app"
	"github.com/matt-FFFFFF/how-install/internal/ctxlog"
	"github.com/matt-FFFFFF/how-install/internal/signalbroker"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)
	defer cancel()

	sigCh := signalbroker.New(ctx)

	go signalbroker.Watch(ctx, sigCh, cancel)

	rootCmd := app.New()
	rootCmd.Writer = os.Stdout
	rootCmd.ErrWriter = os.Stderr
	rootCmd.Version = fmt.Sprintf("%s (commit: %s)", howinstall.Version, howinstall.Commit)

	err := rootCmd.Run(ctx, os.Args) // Exit codes are handled by the cli framework

	if ctx.Err() != nil {
		ctxlog.Logger(ctx).Error("command terminated due to cancellation", "error", ctx.Err())
		os.Exit(1)
	}

	if err != nil {
		ctxlog.Logger(ctx).Error("command execution failed", "error", err)
		os.Exit(1)
	}
}
