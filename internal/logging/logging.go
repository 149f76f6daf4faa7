// Package logging provides the server's structured event log: one JSON
// object per line on stdout, one field per event attribute.
package logging

import (
	"encoding/json"
	"log"
	"os"
	"time"
)

// Entry is one structured log line.
type Entry struct {
	Time  string `json:"time"`
	Event string `json:"event"`
	FD    int    `json:"fd,omitempty"`
	Path  string `json:"path,omitempty"`
	Error string `json:"error,omitempty"`
}

var out = os.Stdout

// Accept logs a newly accepted connection.
func Accept(fd int) {
	write(Entry{Event: "accept", FD: fd})
}

// Request logs a successfully dispatched request.
func Request(fd int, path string) {
	write(Entry{Event: "request", FD: fd, Path: path})
}

// PeerError logs a connection closed due to a peer-originated or parse
// error — these are expected traffic, not operational failures, so they're
// logged rather than surfaced.
func PeerError(fd int, err error) {
	write(Entry{Event: "peer_error", FD: fd, Error: err.Error()})
}

// Timeout logs an idle connection closed by the timer queue.
func Timeout(fd int) {
	write(Entry{Event: "timeout", FD: fd})
}

// Fatal logs an unrecoverable error and aborts the process — allocation
// failure, ring buffer overflow, or reactor setup failure.
func Fatal(err error) {
	write(Entry{Event: "fatal", Error: err.Error()})
	log.Fatal(err)
}

func write(e Entry) {
	e.Time = time.Now().UTC().Format(time.RFC3339)
	enc := json.NewEncoder(out)
	if err := enc.Encode(e); err != nil {
		log.Printf("logging: failed to write entry: %v", err)
	}
}
