package valkey

import (
	"testing"
	"time"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if opts.Addr != "localhost:6379" {
		t.Errorf("Addr = %q, want %q", opts.Addr, "localhost:6379")
	}
	if opts.ConnectTimeout != 3*time.Second {
		t.Errorf("ConnectTimeout = %v, want %v", opts.ConnectTimeout, 3*time.Second)
	}
	if opts.ReadTimeout != 2*time.Second || opts.WriteTimeout != 2*time.Second {
		t.Errorf("Read/WriteTimeout = %v/%v, want 2s", opts.ReadTimeout, opts.WriteTimeout)
	}
	if opts.PoolSize != 10 || opts.MinIdleConns != 2 {
		t.Errorf("pool = %d/%d, want 10/2", opts.PoolSize, opts.MinIdleConns)
	}
	if opts.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", opts.MaxRetries)
	}
}

func TestOptionsBuilders(t *testing.T) {
	opts := DefaultOptions().
		WithHostPort("valkey", 6380).
		WithPassword("secret").
		WithTimeouts(time.Second, 2*time.Second, 3*time.Second).
		WithPool(4, 1)

	if opts.Addr != "valkey:6380" {
		t.Errorf("Addr = %q, want %q", opts.Addr, "valkey:6380")
	}
	if opts.Password != "secret" {
		t.Errorf("Password = %q", opts.Password)
	}
	if opts.ConnectTimeout != time.Second || opts.ReadTimeout != 2*time.Second || opts.WriteTimeout != 3*time.Second {
		t.Errorf("timeouts = %v/%v/%v", opts.ConnectTimeout, opts.ReadTimeout, opts.WriteTimeout)
	}
	if opts.PoolSize != 4 || opts.MinIdleConns != 1 {
		t.Errorf("pool = %d/%d", opts.PoolSize, opts.MinIdleConns)
	}
}

func TestBuildAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"localhost", 6379, "localhost:6379"},
		{"10.0.0.5", 6380, "10.0.0.5:6380"},
		{"::1", 6379, "[::1]:6379"},
	}
	for _, tt := range tests {
		if got := BuildAddr(tt.host, tt.port); got != tt.want {
			t.Errorf("BuildAddr(%q, %d) = %q, want %q", tt.host, tt.port, got, tt.want)
		}
	}
}
