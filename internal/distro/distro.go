// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package distro defines the fixed set of distributions that can be selected with --distro.
package distro

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDistro is returned when a name does not match any known distribution.
var ErrUnknownDistro = errors.New("unknown distro")

// Distro is a distribution that the user can explicitly install for.
type Distro int

// Known distributions. The zero value is not a valid distribution.
const (
	Debian Distro = iota + 1
	Ubuntu
	Alpine
	Arch
	Kali
	CentOS
	Fedora
	Raspbian
	Docker
)

type names struct {
	flag    string // lower-case value accepted on the command line
	display string // canonical string looked up in the install index
}

var distros = map[Distro]names{
	Debian:   {flag: "debian", display: "Debian"},
	Ubuntu:   {flag: "ubuntu", display: "Ubuntu"},
	Alpine:   {flag: "alpine", display: "Alpine"},
	Arch:     {flag: "arch", display: "Arch"},
	Kali:     {flag: "kali", display: "Kali"},
	CentOS:   {flag: "centos", display: "CentOS"},
	Fedora:   {flag: "fedora", display: "Fedora"},
	Raspbian: {flag: "raspbian", display: "Raspbian"},
	Docker:   {flag: "docker", display: "Docker"},
}

// All returns every known distribution in declaration order.
func All() []Distro {
	return []Distro{Debian, Ubuntu, Alpine, Arch, Kali, CentOS, Fedora, Raspbian, Docker}
}

// FlagValues returns the accepted --distro values in declaration order.
func FlagValues() []string {
	all := All()
	out := make([]string, len(all))

	for i, d := range all {
		out[i] = distros[d].flag
	}

	return out
}

// Parse returns the distribution for name. Matching is case-insensitive.
func Parse(name string) (Distro, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, d := range All() {
		if distros[d].flag == n {
			return d, nil
		}
	}

	return 0, fmt.Errorf("%w: %q, must be one of %s", ErrUnknownDistro, name, strings.Join(FlagValues(), ", "))
}

// String returns the canonical display string, e.g. "CentOS".
// Index lookups use this value verbatim.
func (d Distro) String() string {
	if n, ok := distros[d]; ok {
		return n.display
	}

	return fmt.Sprintf("Distro(%d)", int(d))
}

// FlagValue returns the lower-case command line spelling of d.
func (d Distro) FlagValue() string {
	return distros[d].flag
}

// Valid reports whether d is one of the known distributions.
func (d Distro) Valid() bool {
	_, ok := distros[d]
	return ok
}
