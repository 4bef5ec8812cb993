package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// healthURL maps a ws:// endpoint to the server's /healthz URL.
func healthURL(endpoint string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "wss":
		u.Scheme = "https"
	default:
		u.Scheme = "http"
	}
	u.Path = "/healthz"
	u.RawQuery = ""
	return u.String(), nil
}

// probeServer reports whether the server behind endpoint answers /healthz.
func probeServer(endpoint string) bool {
	target, err := healthURL(endpoint)
	if err != nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return false
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// ensureServer starts a local wschatd listening on the endpoint's port when
// nothing answers there yet.
func ensureServer(endpoint string, logger *zap.Logger) error {
	if probeServer(endpoint) {
		return nil
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return err
	}
	logger.Info("server not running, starting wschatd", zap.String("endpoint", endpoint))
	if err := startServer(":" + u.Port()); err != nil {
		return fmt.Errorf("start wschatd: %w", err)
	}
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		if probeServer(endpoint) {
			return nil
		}
		time.Sleep(300 * time.Millisecond)
	}
	return fmt.Errorf("wschatd did not become ready at %s", endpoint)
}

func startServer(listen string) error {
	executable, err := os.Executable()
	if err != nil {
		return err
	}
	wschatd := filepath.Join(filepath.Dir(executable), "wschatd")
	if _, err := os.Stat(wschatd); err != nil {
		wschatd = "wschatd"
	}

	cmd := exec.Command(wschatd, "--listen", listen)
	return cmd.Start()
}
