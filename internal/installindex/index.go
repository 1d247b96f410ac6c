// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package installindex

import (
	"context"
	"io"
	"maps"
	"slices"

	"github.com/matt-FFFFFF/how-install/internal/ctxlog"
)

// Index maps aliases to install commands for a single queried command.
// It is read-only once built.
type Index struct {
	command  string
	commands map[string]string
}

// New builds an index from entries. Entries are applied in order, so a later
// entry replaces the command of an earlier one that shares an alias.
func New(command string, entries []Entry) *Index {
	idx := &Index{
		command:  command,
		commands: make(map[string]string, len(entries)*3), //nolint:mnd
	}

	for _, e := range entries {
		for _, alias := range e.Aliases() {
			idx.commands[alias] = e.Command
		}
	}

	return idx
}

// Extract parses a command-not-found.com page for command and builds its index.
func Extract(ctx context.Context, r io.Reader, command string) (*Index, error) {
	logger := ctxlog.Logger(ctx).With("command", command)

	entries, err := ParseEntries(r)
	if err != nil {
		return nil, err
	}

	for _, e := range entries {
		logger.Debug("install block",
			"name", e.DisplayName,
			"os", e.OSAttribute,
			"platform", e.PlatformID,
			"install", e.Command,
		)
	}

	idx := New(command, entries)
	logger.Debug("built install index", "blocks", len(entries), "aliases", idx.Len())

	return idx, nil
}

// Command returns the command name that the index was built for.
func (i *Index) Command() string {
	if i == nil {
		return ""
	}

	return i.command
}

// Lookup returns the install command stored under alias. Matching is exact.
func (i *Index) Lookup(alias string) (string, bool) {
	if i == nil {
		return "", false
	}

	c, ok := i.commands[alias]

	return c, ok
}

// Len returns the number of aliases in the index.
func (i *Index) Len() int {
	if i == nil {
		return 0
	}

	return len(i.commands)
}

// Aliases returns all aliases in lexical order.
func (i *Index) Aliases() []string {
	if i == nil {
		return nil
	}

	return slices.Sorted(maps.Keys(i.commands))
}
