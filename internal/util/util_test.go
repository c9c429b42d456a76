package util

import (
	"net"
	"testing"
)

func TestFormatTonnes(t *testing.T) {
	t.Parallel()

	cases := map[float64]string{
		0:           "0.00",
		65.23:       "65.23",
		1234.5:      "1,234.50",
		1234567.891: "1,234,567.89",
		-9876.5:     "-9,876.50",
	}
	for in, want := range cases {
		if got := FormatTonnes(in); got != want {
			t.Errorf("FormatTonnes(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestFindAvailablePort_SkipsBusyPort(t *testing.T) {
	ln, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	busy := ln.Addr().(*net.TCPAddr).Port

	port, err := FindAvailablePort(busy, 20)
	if err != nil {
		t.Fatalf("find port: %v", err)
	}
	if port == busy {
		t.Fatalf("returned busy port %d", busy)
	}
}
