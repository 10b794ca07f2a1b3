package main

import (
	"io"
	"os"
	"time"

	mdexport "github.com/alnah/go-mdexport"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer

	// Exporter replaces the headless browser when set.
	Exporter mdexport.Exporter
	// Host replaces the home directory and workspace lookup when set.
	Host mdexport.Host
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}
