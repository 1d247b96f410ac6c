// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build !windows

package privilege

import "golang.org/x/sys/unix"

// IsRoot reports whether the effective user id is 0.
func IsRoot() bool {
	return unix.Geteuid() == 0
}
