package utils

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// PingService checks if a TCP service accepts connections at host:port
func PingService(host string, port int, timeout time.Duration) error {
	if host == "" {
		return fmt.Errorf("no host configured")
	}

	address := net.JoinHostPort(host, strconv.Itoa(port))

	conn, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", address, err)
	}
	defer conn.Close()

	return nil
}

// PingSMTP checks if the SMTP relay is reachable
func PingSMTP(host string, port int) error {
	return PingService(host, port, 1500*time.Millisecond)
}
