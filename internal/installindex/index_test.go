// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package installindex

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func block(classes, dataOS, inner string) string {
	attr := ""
	if dataOS != "" {
		attr = ` data-os="` + dataOS + `"`
	}

	return `<div class="` + classes + `"` + attr + `><dl>` + inner + `</dl></div>`
}

func page(blocks ...string) *strings.Reader {
	return strings.NewReader("<html><body>" + strings.Join(blocks, "\n") + "</body></html>")
}

func TestExtract_Fixture(t *testing.T) {
	f, err := os.Open("testdata/jq.html")
	require.NoError(t, err)

	defer f.Close() //nolint:errcheck

	idx, err := Extract(context.Background(), f, "jq")
	require.NoError(t, err)
	assert.Equal(t, "jq", idx.Command())

	tests := []struct {
		alias string
		want  string
	}{
		{alias: "Debian", want: "apt-get install jq"},
		{alias: "debian", want: "apt-get install jq"},
		{alias: "Ubuntu", want: "apt-get install jq"},
		{alias: "apk", want: ""},
		{alias: "alpine", want: "apk add jq"},
		{alias: "Arch Linux", want: "pacman -S jq"},
		{alias: "arch", want: "pacman -S jq"},
		{alias: "fedora", want: "dnf install jq"},
		{alias: "Fedora", want: "dnf install jq"},
		{alias: "docker", want: "docker run cmd.cat/jq jq"},
		{alias: "Docker", want: "docker run cmd.cat/jq jq"},
	}

	for _, tt := range tests {
		t.Run(tt.alias, func(t *testing.T) {
			got, ok := idx.Lookup(tt.alias)
			assert.Equal(t, tt.want != "", ok)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("hidden block is not indexed", func(t *testing.T) {
		for _, alias := range []string{"CentOS", "centos"} {
			_, ok := idx.Lookup(alias)
			assert.False(t, ok, alias)
		}
	})

	t.Run("block without install class is not indexed", func(t *testing.T) {
		_, ok := idx.Lookup("Windows")
		assert.False(t, ok)
	})

	t.Run("lookup is case sensitive", func(t *testing.T) {
		_, ok := idx.Lookup("DEBIAN")
		assert.False(t, ok)
		_, ok = idx.Lookup("arch linux")
		assert.False(t, ok)
	})
}

func TestExtract_AtMostThreeAliasesPerBlock(t *testing.T) {
	idx, err := Extract(context.Background(), page(
		block("command-install install-a", "A-os", "<dt>A</dt><dd>a</dd>"),
		block("command-install install-b", "", "<dt>B</dt><dd>b</dd>"),
		block("command-install install-c", "C-os", "<dt>C</dt><dd>c</dd>"),
	), "x")
	require.NoError(t, err)

	assert.LessOrEqual(t, idx.Len(), 3*3)
	assert.Equal(t, []string{"A", "A-os", "B", "C", "C-os", "a", "b", "c"}, idx.Aliases())
}

func TestExtract_EmptyOSAttributeIsNeverAKey(t *testing.T) {
	idx, err := Extract(context.Background(), page(
		`<div class="command-install install-a" data-os=""><dl><dt>A</dt><dd>a</dd></dl></div>`,
		block("command-install install-b", "", "<dt>B</dt><dd>b</dd>"),
	), "x")
	require.NoError(t, err)

	_, ok := idx.Lookup("")
	assert.False(t, ok)
	assert.Equal(t, 4, idx.Len())
}

func TestExtract_LastWriteWins(t *testing.T) {
	idx, err := Extract(context.Background(), page(
		block("command-install install-ubuntu", "Ubuntu", "<dt>Ubuntu</dt><dd>apt install foo</dd>"),
		block("command-install install-snap", "Ubuntu", "<dt>Snap</dt><dd>snap install foo</dd>"),
	), "foo")
	require.NoError(t, err)

	got, ok := idx.Lookup("Ubuntu")
	require.True(t, ok)
	assert.Equal(t, "snap install foo", got)

	got, ok = idx.Lookup("ubuntu")
	require.True(t, ok)
	assert.Equal(t, "apt install foo", got, "aliases only set by the first block keep its command")
}

func TestExtract_NoPlatformIDContributesNothing(t *testing.T) {
	idx, err := Extract(context.Background(), page(
		block("command-install", "Gentoo", "<dt>Gentoo</dt><dd>emerge foo</dd>"),
		block("command-install install-", "Void", "<dt>Void</dt><dd>xbps-install foo</dd>"),
		block("command-install other-class", "Nix", "<dt>Nix</dt>"),
	), "foo")
	require.NoError(t, err)
	assert.Equal(t, 0, idx.Len())
}

func TestExtract_FirstInstallClassIsUsed(t *testing.T) {
	idx, err := Extract(context.Background(), page(
		block("row command-install install-raspbian install-debian", "", "<dt>Raspbian</dt><dd>apt-get install foo</dd>"),
	), "foo")
	require.NoError(t, err)

	_, ok := idx.Lookup("raspbian")
	assert.True(t, ok)

	_, ok = idx.Lookup("debian")
	assert.False(t, ok)
}

func TestExtract_BareInstallClassIsPassedOver(t *testing.T) {
	idx, err := Extract(context.Background(), page(
		block("command-install install- install-void", "", "<dt>Void</dt><dd>xbps-install foo</dd>"),
	), "foo")
	require.NoError(t, err)

	got, ok := idx.Lookup("void")
	require.True(t, ok)
	assert.Equal(t, "xbps-install foo", got)

	_, ok = idx.Lookup("")
	assert.False(t, ok)
}

func TestExtract_DisplayNameIsLastTextNode(t *testing.T) {
	idx, err := Extract(context.Background(), page(
		block("command-install install-kali", "",
			"<dt>ignored <span>also ignored</span>  Kali Linux  </dt><dd> apt-get install foo \n</dd>"),
	), "foo")
	require.NoError(t, err)

	got, ok := idx.Lookup("Kali Linux")
	require.True(t, ok)
	assert.Equal(t, "apt-get install foo", got)
}

func TestExtract_CommandConcatenatesText(t *testing.T) {
	idx, err := Extract(context.Background(), page(
		block("command-install install-fedora", "", "<dt>Fedora</dt><dd><b>dnf</b> install <i>foo</i></dd>"),
	), "foo")
	require.NoError(t, err)

	got, _ := idx.Lookup("fedora")
	assert.Equal(t, "dnf install foo", got)
}

func TestExtract_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input *strings.Reader
	}{
		{
			name:  "missing dt",
			input: page(block("command-install install-a", "", "<dd>a</dd>")),
		},
		{
			name:  "dt without text",
			input: page(block("command-install install-a", "", "<dt><i></i></dt><dd>a</dd>")),
		},
		{
			name:  "missing dt on block that would be skipped",
			input: page(block("command-install", "", "<dd>a</dd>")),
		},
		{
			name:  "missing dd",
			input: page(block("command-install install-a", "", "<dt>A</dt>")),
		},
		{
			name: "one bad block aborts everything",
			input: page(
				block("command-install install-a", "", "<dt>A</dt><dd>a</dd>"),
				block("command-install install-b", "", "<dt>B</dt>"),
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, err := Extract(context.Background(), tt.input, "foo")
			require.ErrorIs(t, err, ErrMalformedDocument)
			assert.Nil(t, idx)
		})
	}
}

func TestExtract_NoBlocks(t *testing.T) {
	idx, err := Extract(context.Background(), strings.NewReader("<html><body><p>not found</p></body></html>"), "foo")
	require.NoError(t, err)
	assert.Equal(t, 0, idx.Len())
	assert.Empty(t, idx.Aliases())
}

func TestNilIndex(t *testing.T) {
	var idx *Index

	_, ok := idx.Lookup("x")
	assert.False(t, ok)
	assert.Equal(t, 0, idx.Len())
	assert.Nil(t, idx.Aliases())
}

func TestEntry_Aliases(t *testing.T) {
	assert.Equal(t, []string{"Ubuntu", "ubuntu"}, Entry{DisplayName: "Ubuntu", PlatformID: "ubuntu"}.Aliases())
	assert.Equal(t, []string{"Arch Linux", "Arch", "arch"},
		Entry{DisplayName: "Arch Linux", OSAttribute: "Arch", PlatformID: "arch"}.Aliases())
}
