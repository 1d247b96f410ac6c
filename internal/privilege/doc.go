// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package privilege reports whether the current process already runs with superuser rights.
package privilege
