// Package logging provides the small per-subsystem prefixed loggers
// used throughout oxwm.
package logging

import (
	"log"
	"os"
)

// New returns a *log.Logger prefixed with "[name] ".
func New(name string) *log.Logger {
	return log.New(os.Stderr, "["+name+"] ", log.LstdFlags)
}
