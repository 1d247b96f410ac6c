// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package installindex

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const (
	blockSelector   = ".command-install:not(.d-none)"
	nameSelector    = "dt"
	commandSelector = "dd"
	osAttribute     = "data-os"
	platformPrefix  = "install-"
)

var (
	// ErrParseDocument is returned when the markup cannot be read.
	ErrParseDocument = errors.New("failed to parse document")
	// ErrMalformedDocument is returned when an install block lacks a required element.
	ErrMalformedDocument = errors.New("malformed document")
)

// Entry is a single install instruction block found on the page.
type Entry struct {
	DisplayName string // e.g. "Ubuntu"
	OSAttribute string // data-os attribute, may be empty
	PlatformID  string // suffix of the install-* class, e.g. "docker"
	Command     string // the shell command, trimmed
}

// Aliases returns the non-empty keys that this entry is indexed under, in insertion order.
func (e Entry) Aliases() []string {
	aliases := make([]string, 0, 3)

	for _, a := range []string{e.DisplayName, e.OSAttribute, e.PlatformID} {
		if a != "" {
			aliases = append(aliases, a)
		}
	}

	return aliases
}

// ParseEntries reads markup and returns the visible install blocks in document order.
// Blocks without a platform identifier are skipped.
func ParseEntries(r io.Reader) ([]Entry, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, errors.Join(ErrParseDocument, err)
	}

	var (
		entries []Entry
		errBlk  error
	)

	doc.Find(blockSelector).EachWithBreak(func(i int, block *goquery.Selection) bool {
		e, ok, err := parseBlock(block)
		if err != nil {
			errBlk = fmt.Errorf("%w: install block %d: %w", ErrMalformedDocument, i, err)
			return false
		}

		if ok {
			entries = append(entries, e)
		}

		return true
	})

	if errBlk != nil {
		return nil, errBlk
	}

	return entries, nil
}

// parseBlock returns false if the block carries no install-* class.
// The name is read before the class list, so a block without a <dt> is
// malformed even if it would have been skipped.
func parseBlock(block *goquery.Selection) (Entry, bool, error) {
	var e Entry

	dt := block.Find(nameSelector).First()
	if dt.Length() == 0 {
		return e, false, fmt.Errorf("missing <%s> element", nameSelector)
	}

	name, ok := lastText(dt.Nodes[0])
	if !ok {
		return e, false, fmt.Errorf("<%s> element has no text", nameSelector)
	}

	e.DisplayName = strings.TrimSpace(name)
	e.OSAttribute, _ = block.Attr(osAttribute)

	var found bool

	e.PlatformID, found = platformID(block)
	if !found {
		return e, false, nil
	}

	dd := block.Find(commandSelector).First()
	if dd.Length() == 0 {
		return e, false, fmt.Errorf("missing <%s> element", commandSelector)
	}

	e.Command = strings.TrimSpace(dd.Text())

	return e, true, nil
}

func platformID(block *goquery.Selection) (string, bool) {
	class, _ := block.Attr("class")
	for _, c := range strings.Fields(class) {
		if id, ok := strings.CutPrefix(c, platformPrefix); ok && id != "" {
			return id, true
		}
	}

	return "", false
}

// lastText returns the last text node below n in document order.
func lastText(n *html.Node) (string, bool) {
	var (
		last  string
		found bool
	)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				last, found = c.Data, true
				continue
			}

			walk(c)
		}
	}
	walk(n)

	return last, found
}
