// Command sehttpd is a small, single-threaded, event-driven HTTP/1.x
// static file server.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hfyeh/sehttpd/internal/config"
	"github.com/hfyeh/sehttpd/internal/logging"
	"github.com/hfyeh/sehttpd/pkg/sehttpd/reactor"
)

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "usage: sehttpd [-p port] [-r web-root]")
		os.Exit(1)
	}

	// SIGPIPE would otherwise kill the process on a write to a peer that
	// already reset the connection; write errors are handled via the
	// return code instead, so it's ignored process-wide.
	signal.Ignore(syscall.SIGPIPE)

	r, err := reactor.New(cfg.Port, cfg.WebRoot)
	if err != nil {
		logging.Fatal(err)
	}

	r.Run()
}
