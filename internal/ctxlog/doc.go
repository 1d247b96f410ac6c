// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog provides a context-aware logger for how-install.
// It uses the slog package for structured logging and supports different log levels.
//
// Logs are written to stderr so that stdout only ever carries the resolved install command.
// The default is a pretty console handler to format the log messages in a human-readable way.
package ctxlog
