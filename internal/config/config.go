// Package config parses the server's command-line flags into a Config.
package config

import (
	"flag"
	"fmt"
	"strconv"
)

const (
	defaultPort    = 8081
	defaultWebRoot = "./www"
)

// Config holds the listen port and document root the reactor needs.
type Config struct {
	Port    int
	WebRoot string
}

// Parse parses args (normally os.Args[1:]) into a Config. An out-of-range
// or non-numeric -p falls back to defaultPort rather than failing; an
// unrecognized flag is a hard failure, reported as err with a usage
// message already written to fs's output.
func Parse(args []string) (Config, error) {
	fs := flag.NewFlagSet("sehttpd", flag.ContinueOnError)

	port := fs.String("p", strconv.Itoa(defaultPort), "listen port")
	root := fs.String("r", defaultWebRoot, "web root directory")

	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	p, err := strconv.Atoi(*port)
	if err != nil || p <= 0 || p > 65535 {
		p = defaultPort
	}
	cfg := Config{Port: p, WebRoot: *root}
	return cfg, nil
}
