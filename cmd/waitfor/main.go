package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func init() {
	log.SetFormatter(&log.JSONFormatter{})
	log.SetOutput(os.Stdout)
}

var (
	addrs    = flag.String("addrs", "localhost:5432", "comma separated host:port list that must accept TCP connections")
	attempts = flag.Int("attempts", 20, "connection attempts per address")
	interval = flag.Duration("interval", time.Second, "pause between attempts")
)

// waitFor dials addr until it accepts a connection or attempts run out.
func waitFor(ctx context.Context, addr string, attempts int, interval time.Duration) error {
	var dialer net.Dialer
	var lastErr error
	for i := 0; i < attempts; i++ {
		dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		conn, err := dialer.DialContext(dialCtx, "tcp", addr)
		cancel()
		if err == nil {
			_ = conn.Close()
			log.WithField("addr", addr).Info("tcp connection available")
			return nil
		}
		lastErr = err
		log.WithError(err).WithField("addr", addr).Debug("connection not yet available")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
	return fmt.Errorf("no tcp connection on %s after %d attempts: %w", addr, attempts, lastErr)
}

func main() {
	flag.Parse()

	g, ctx := errgroup.WithContext(context.Background())
	for _, addr := range strings.Split(*addrs, ",") {
		addr = strings.TrimSpace(addr)
		if addr == "" {
			continue
		}
		g.Go(func() error { return waitFor(ctx, addr, *attempts, *interval) })
	}
	if err := g.Wait(); err != nil {
		log.WithError(err).Fatal("dependencies unavailable")
	}
}
