// Command navurl parses, resolves and rewrites location references
// the way the view layer does.
//
// Usage:
//
//	navurl parse [--base URL] [--resolve] [--json] REF...
//	navurl resolve --base URL REF...
//	navurl query [--set KEY=VALUE]... [--del KEY]... REF
//	navurl encode TEXT...
//	navurl decode TEXT...
//	navurl validate REF...
//
// Relative references are resolved against $NAVURL_LOCATION
// or the working directory when no base is given.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := newRootCmd(os.Getenv).ExecuteContext(ctx)
	cancel()
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, "navurl:", err)
	if errors.Is(err, errInvalid) {
		os.Exit(1)
	}
	os.Exit(2)
}
