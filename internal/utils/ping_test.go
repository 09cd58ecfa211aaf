package utils

import (
	"net"
	"testing"
	"time"
)

func TestPingService(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to listen: %v", err)
	}
	addr := ln.Addr().(*net.TCPAddr)

	if err := PingService("127.0.0.1", addr.Port, time.Second); err != nil {
		t.Errorf("Expected reachable listener, got %v", err)
	}

	ln.Close()
	if err := PingService("127.0.0.1", addr.Port, time.Second); err == nil {
		t.Error("Expected error after listener closed")
	}

	if err := PingService("", 25, time.Second); err == nil {
		t.Error("Expected error for empty host")
	}
}
