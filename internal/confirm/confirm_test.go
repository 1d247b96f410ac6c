// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package confirm

import (
	"context"
	"io"
	"testing"

	"github.com/peterh/liner"
	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/assert"
)

type scripted struct {
	answers []string
	err     error
	prompts []string
	closed  bool
}

func (s *scripted) Prompt(p string) (string, error) {
	s.prompts = append(s.prompts, p)

	if len(s.answers) == 0 {
		return "", s.err
	}

	a := s.answers[0]
	s.answers = s.answers[1:]

	return a, nil
}

func (s *scripted) Close() error {
	s.closed = true
	return nil
}

func stubPrompter(t *testing.T, interactive bool, p *scripted) {
	t.Helper()

	stubs := gostub.Stub(&IsInteractive, func() bool { return interactive })
	stubs.Stub(&PrompterFactory, func() Prompter { return p })
	t.Cleanup(stubs.Reset)
}

func TestAsk(t *testing.T) {
	tests := []struct {
		name    string
		answers []string
		err     error
		want    bool
		prompts int
	}{
		{name: "default is yes", answers: []string{""}, want: true, prompts: 1},
		{name: "yes", answers: []string{"Y"}, want: true, prompts: 1},
		{name: "no", answers: []string{" no "}, want: false, prompts: 1},
		{name: "reprompts on junk", answers: []string{"maybe", "y"}, want: true, prompts: 2},
		{name: "ctrl-c declines", err: liner.ErrPromptAborted, want: false, prompts: 1},
		{name: "eof declines", err: io.EOF, want: false, prompts: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &scripted{answers: tt.answers, err: tt.err}
			stubPrompter(t, true, p)

			got := Ask(context.Background(), "Install jq using the above command?")
			assert.Equal(t, tt.want, got)
			assert.Len(t, p.prompts, tt.prompts)
			assert.Equal(t, "Install jq using the above command? [Y/n] ", p.prompts[0])
			assert.True(t, p.closed)
		})
	}
}

func TestAsk_NotInteractive(t *testing.T) {
	p := &scripted{answers: []string{"y"}}
	stubPrompter(t, false, p)

	assert.False(t, Ask(context.Background(), "Install?"))
	assert.Empty(t, p.prompts, "prompt must not be shown without a terminal")
}
