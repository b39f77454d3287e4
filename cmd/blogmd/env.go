package main

import (
	"io"
	"os"
	"time"

	"github.com/alnah/go-blogmd"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, and the converter pool factory.
type Environment struct {
	Now    func() time.Time
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// NewPool builds the converter pool used by render --page, export and
	// read time estimation. Tests swap it for a fake.
	NewPool func(size int, opts ...blogmd.Option) Pool
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		NewPool: newConverterPool,
	}
}
