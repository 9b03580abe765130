// glinski-engine is a stdio driver for the hexagonal chess session server: it
// reads one wire message per line from stdin, runs it through the session
// registry and dispatcher, and writes every reply as one JSON line to stdout.
// It behaves as a single connected client, the way morlock's UCI driver
// simulates a single engine session over stdio.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/seekerror/build"
	"github.com/seekerror/logw"

	"github.com/corvid-games/glinski/pkg/protocol"
	"github.com/corvid-games/glinski/pkg/session"
)

var version = build.NewVersion(0, 1, 0)

func main() {
	flag.Parse()
	ctx := context.Background()

	logw.Infof(ctx, "Starting glinski-engine %v", version)

	reg := session.NewRegistry()
	d := protocol.NewDispatcher(reg)

	replies := make(chan []byte, 16)
	go writeReplies(ctx, replies)

	tx := session.Transmitter(replies)
	readRequests(ctx, os.Stdin, d, tx)
}

// readRequests reads one wire message per line from r and dispatches each.
func readRequests(ctx context.Context, r *os.File, d *protocol.Dispatcher, tx session.Transmitter) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		logw.Debugf(ctx, "<< %v", scanner.Text())
		d.Dispatch(ctx, scanner.Bytes(), tx)
	}
}

// writeReplies writes every dispatched reply as one JSON line to stdout.
func writeReplies(ctx context.Context, replies <-chan []byte) {
	for msg := range replies {
		logw.Debugf(ctx, ">> %v", msg)
		_, _ = fmt.Fprintln(os.Stdout, string(msg))
	}
}
