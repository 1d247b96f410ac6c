// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package app contains the how-install command line interface.
package app

import (
	"context"
	"strings"

	"github.com/matt-FFFFFF/how-install/internal/distro"
	"github.com/urfave/cli/v3"
)

const (
	cmdArg      = "cmd"
	installFlag = "install"
	yesFlag     = "yes"
	noTLDRFlag  = "no-tldr"
	distroFlag  = "distro"
	configFlag  = "config"
	listFlag    = "list"
	cliExitStr  = ""
)

const description = `A CLI for helping find how to install a given command.

The install command for the current operating system is printed to stdout,
prefixed with sudo unless already running as root. Usage notes and headings
are printed to stderr so the output can be piped into a shell.

Credit to:
   - https://tldr.sh for descriptions
   - https://command-not-found.com/ for command install information`

// New returns the root command.
func New() *cli.Command {
	return &cli.Command{
		Name:        "how-install",
		Usage:       "find how to install a given command",
		UsageText:   "how-install [options] CMD",
		Description: description,
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name:      cmdArg,
				UsageText: "CMD",
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    installFlag,
				Aliases: []string{"i"},
				Usage:   "Run install command",
			},
			&cli.BoolFlag{
				Name:    yesFlag,
				Aliases: []string{"y"},
				Usage:   "Automatically run install command without prompting",
			},
			&cli.BoolFlag{
				Name:  noTLDRFlag,
				Usage: "Don't output TLDR info about the given command",
			},
			&cli.StringFlag{
				Name:  distroFlag,
				Usage: "OS to install for, one of " + distroValues(),
				Validator: func(s string) error {
					_, err := distro.Parse(s)
					return err
				},
				OnlyOnce: true,
			},
			&cli.StringFlag{
				Name: configFlag,
				Usage: "Configuration file to use. " +
					"Supports Hashicorp's go-getter syntax for fetching files from various sources.",
				TakesFile: true,
				OnlyOnce:  true,
			},
			&cli.BoolFlag{
				Name:  listFlag,
				Usage: "Print every alias found on the lookup page and its install command, then exit",
			},
		},
		Action:                actionFunc,
		OnUsageError:          usageError,
		Copyright:             "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
		EnableShellCompletion: true,
	}
}

func distroValues() string {
	return strings.Join(distro.FlagValues(), ", ")
}

// usageError reports bad flags without printing help, which would go to stdout.
func usageError(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return cli.Exit(err.Error(), 1)
}
