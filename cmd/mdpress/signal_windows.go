//go:build windows

package main

import (
	"context"
	"os"
	"os/signal"
)

// notifyContext derives a context canceled on interrupt, so an in-flight
// build or serve loop unwinds through the normal error path and the browser
// gets torn down. SIGTERM does not exist on Windows, so interrupt is the
// only trigger here. The returned stop releases the signal handler.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt)
}
