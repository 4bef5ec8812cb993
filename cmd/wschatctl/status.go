package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/matheus3301/wschat/internal/daemon"
	"github.com/matheus3301/wschat/internal/lock"
	"github.com/matheus3301/wschat/internal/paths"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a local wschatd is running",
	RunE:  runStatus,
}

type statusLine struct {
	Running     bool   `json:"running"`
	PID         int    `json:"pid,omitempty"`
	Endpoint    string `json:"endpoint,omitempty"`
	Healthy     bool   `json:"healthy"`
	Connections int    `json:"connections"`
}

func runStatus(cmd *cobra.Command, _ []string) error {
	var out statusLine
	info, err := lock.Read(paths.BaseDir(), daemon.LockName)
	switch {
	case errors.Is(err, lock.ErrNotRunning):
	case err != nil:
		return err
	default:
		out.Running = true
		out.PID = info.PID
		out.Endpoint = daemon.EndpointURL(info.Addr)
		out.Healthy, out.Connections = health(cmd.Context(), info.Addr)
	}

	if flagJSON {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(out)
	}
	if !out.Running {
		fmt.Fprintln(cmd.OutOrStdout(), "wschatd: not running")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wschatd: running (pid %d)\nendpoint: %s\nhealthy: %v\nconnections: %d\n",
		out.PID, out.Endpoint, out.Healthy, out.Connections)
	return nil
}

func health(ctx context.Context, addr string) (bool, int) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	url := "http" + daemon.EndpointURL(addr)[len("ws"):] + "/healthz"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, 0
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false, 0
	}
	defer resp.Body.Close()
	var body struct {
		Connections int `json:"connections"`
	}
	if resp.StatusCode != http.StatusOK || json.NewDecoder(resp.Body).Decode(&body) != nil {
		return false, 0
	}
	return true, body.Connections
}
