package server_test

import (
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/JaimeStill/doc-convert/internal/config"
	"github.com/JaimeStill/doc-convert/internal/server"
	"github.com/JaimeStill/doc-convert/pkg/lifecycle"
	"github.com/JaimeStill/doc-convert/pkg/logging"
)

func testConfig(port int) *config.ServerConfig {
	return &config.ServerConfig{
		Host:            "127.0.0.1",
		Port:            port,
		ReadTimeout:     "5s",
		WriteTimeout:    "5s",
		ShutdownTimeout: "5s",
	}
}

func TestStart_ServerResponds(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("test response"))
	})

	// port 0 binds an ephemeral port
	sys := server.New(testConfig(0), handler, logging.Discard())
	lc := lifecycle.New()

	if err := sys.Start(lc); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	resp, err := http.Get("http://" + sys.Addr())
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if string(body) != "test response" {
		t.Errorf("body = %q, want %q", body, "test response")
	}

	if err := lc.Shutdown(5 * time.Second); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	if _, err := http.Get("http://" + sys.Addr()); err == nil {
		t.Error("server still accepting requests after shutdown")
	}
}

func TestStart_PortInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	port := ln.Addr().(*net.TCPAddr).Port
	sys := server.New(testConfig(port), http.NotFoundHandler(), logging.Discard())

	if err := sys.Start(lifecycle.New()); err == nil {
		t.Error("Start() error = nil, want error for port in use")
	}
}
