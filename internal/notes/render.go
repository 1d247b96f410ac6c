// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package notes

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	indentDescription = "  "
	indentExample     = "  "
	indentCode        = "      "
	placeholderOpen   = "{{"
	placeholderClose  = "}}"
)

type styles struct {
	header      lipgloss.Style
	description lipgloss.Style
	example     lipgloss.Style
	code        lipgloss.Style
	placeholder lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)

	return styles{
		header:      r.NewStyle().Bold(true),
		description: r.NewStyle(),
		example:     r.NewStyle().Foreground(lipgloss.Color("2")),
		code:        r.NewStyle().Foreground(lipgloss.Color("1")),
		placeholder: r.NewStyle().Foreground(lipgloss.Color("1")).Underline(true),
	}
}

// Render formats a tldr markdown page for the terminal that w writes to.
// The title line is replaced by a TLDR header.
func Render(w io.Writer, page string) string {
	st := newStyles(w)

	var sb strings.Builder

	sb.WriteString(st.header.Render("TLDR"))
	sb.WriteString("\n")

	for _, line := range strings.Split(page, "\n") {
		line = strings.TrimRight(line, " \t\r")

		switch {
		case strings.HasPrefix(line, "# "):
			continue
		case strings.HasPrefix(line, "> "):
			sb.WriteString(indentDescription)
			sb.WriteString(st.description.Render(strings.TrimPrefix(line, "> ")))
		case strings.HasPrefix(line, "- "):
			sb.WriteString(indentExample)
			sb.WriteString(st.example.Render(line))
		case strings.HasPrefix(line, "`") && strings.HasSuffix(line, "`") && len(line) > 1:
			sb.WriteString(indentCode)
			sb.WriteString(renderCode(st, line[1:len(line)-1]))
		default:
			sb.WriteString(line)
		}

		sb.WriteString("\n")
	}

	return sb.String()
}

// renderCode highlights {{placeholders}} and strips their braces.
func renderCode(st styles, code string) string {
	var sb strings.Builder

	for code != "" {
		start := strings.Index(code, placeholderOpen)
		if start < 0 {
			sb.WriteString(st.code.Render(code))
			break
		}

		end := strings.Index(code[start:], placeholderClose)
		if end < 0 {
			sb.WriteString(st.code.Render(code))
			break
		}

		end += start

		if start > 0 {
			sb.WriteString(st.code.Render(code[:start]))
		}

		sb.WriteString(st.placeholder.Render(code[start+len(placeholderOpen) : end]))
		code = code[end+len(placeholderClose):]
	}

	return sb.String()
}
