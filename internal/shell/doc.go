// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package shell runs a resolved install command through the user's shell.
//
// The command is passed to `bash -c` when bash is on the PATH, falling back to $SHELL and
// then /bin/sh. On Windows cmd.exe /C is used. The child inherits stdio, receives any
// terminating signal the parent gets and is killed when the same signal arrives twice or
// when the context is cancelled.
package shell
