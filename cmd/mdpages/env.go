package main

import (
	"io"
	"os"
	"time"

	"golang.org/x/term"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer

	// Interactive is set when stderr is a terminal. It enables the progress
	// line and colored reports.
	Interactive bool
	// Width is the terminal width in columns, 0 when unknown.
	Width int
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	env := &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	fd := int(os.Stderr.Fd()) // #nosec G115 -- file descriptors fit in int
	if term.IsTerminal(fd) {
		env.Interactive = true
		if w, _, err := term.GetSize(fd); err == nil {
			env.Width = w
		}
	}
	return env
}
