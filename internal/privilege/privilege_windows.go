// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build windows

package privilege

import "golang.org/x/sys/windows"

// IsRoot reports whether the process token is elevated.
func IsRoot() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}
