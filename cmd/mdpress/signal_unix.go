//go:build !windows

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// notifyContext derives a context canceled on SIGINT or SIGTERM, so an
// in-flight build or serve loop unwinds through the normal error path and
// the browser gets torn down. The returned stop releases the signal handler.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
