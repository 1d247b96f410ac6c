// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package confirm asks the user a yes/no question on the terminal.
package confirm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/matt-FFFFFF/how-install/internal/ctxlog"
	"github.com/peterh/liner"
	"golang.org/x/term"
)

// Prompter reads a line of input after showing a prompt.
type Prompter interface {
	Prompt(prompt string) (string, error)
	Close() error
}

// PrompterFactory returns the line reader used by Ask.
var PrompterFactory = func() Prompter {
	l := liner.NewLiner()
	l.SetCtrlCAborts(true)

	return l
}

// IsInteractive reports whether stdout is a terminal.
var IsInteractive = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Ask asks question and returns the answer. An empty answer means yes.
// Without a terminal, on Ctrl-C or on end of input the answer is no.
func Ask(ctx context.Context, question string) bool {
	if !IsInteractive() {
		ctxlog.Info(ctx, "not a terminal, declining install")
		return false
	}

	p := PrompterFactory()
	defer p.Close() //nolint:errcheck

	prompt := fmt.Sprintf("%s [Y/n] ", question)

	for {
		input, err := p.Prompt(prompt)
		if err != nil {
			if !errors.Is(err, liner.ErrPromptAborted) {
				ctxlog.Debug(ctx, "prompt failed", "error", err)
			}

			return false
		}

		if answer, ok := parse(input); ok {
			return answer
		}
	}
}

func parse(input string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", "y", "yes":
		return true, true
	case "n", "no":
		return false, true
	default:
		return false, false
	}
}
