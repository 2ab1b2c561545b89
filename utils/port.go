package utils

import (
	"fmt"
	"net"
)

// CheckListenAddr verifies that addr (host:port) can be bound right now.
// Used as a preflight before daemonizing a server, where a bind failure
// in the detached child would otherwise go unseen.
func CheckListenAddr(addr string) error {
	Verbose("Checking listen address %s", addr)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("cannot listen on %s: %w", addr, err)
	}

	return listener.Close()
}
