// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The wiiscan command discovers nearby Wii Remotes, claims each one in
// discovery order and prints the input reports it sends.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/kortschak/wiimote"
)

func main() {
	reports := flag.Int("n", 10, "input reports to dump per device")
	timeout := flag.Duration("timeout", time.Second, "per-read timeout")
	verbose := flag.Bool("v", false, "log scan diagnostics")
	flag.Parse()
	if *verbose {
		wiimote.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	scanner := newScanner()
	defer scanner.Cleanup()

	n := scanner.Scan(ctx)
	fmt.Printf("found %d wiimote(s)\n", n)

	for {
		dev, ok := scanner.Next()
		if !ok {
			break
		}
		fmt.Printf("%s:\n", dev.Identifier())
		dump(ctx, dev, *reports, *timeout)
		dev.Close()
	}
}

func dump(ctx context.Context, dev wiimote.Transport, reports int, timeout time.Duration) {
	buf := make([]byte, 32)
	for i := 0; i < reports; i++ {
		if ctx.Err() != nil {
			return
		}
		n, err := dev.ReadTimeout(buf, timeout)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read failed: %v\n", err)
			return
		}
		if n == 0 {
			continue
		}
		fmt.Printf("  %x\n", buf[:n])
	}
}
