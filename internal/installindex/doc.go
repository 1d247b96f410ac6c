// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package installindex turns a command-not-found.com page into a lookup table of install commands.
//
// Every visible `.command-install` block on the page describes how to install the queried
// command on one platform. A block is keyed by up to three aliases: the human readable name in
// its `dt` element, its optional `data-os` attribute and the suffix of its `install-*` class.
// Aliases are exact, case-sensitive strings. When two blocks share an alias the block that
// appears later in the document wins.
//
// A block without a `dt` or `dd` element makes the whole page malformed and extraction fails.
// A block without an `install-*` class is ignored.
package installindex
