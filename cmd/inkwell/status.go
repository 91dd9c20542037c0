// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/inkwell/inkwell/internal/config"
)

// ServerStatus holds the probed health of a running Inkwell server.
type ServerStatus struct {
	Addr  string `json:"addr"`
	Live  bool   `json:"live"`
	Ready bool   `json:"ready"`
	Error string `json:"error,omitempty"`
}

// statusConfig holds configuration for the status command.
type statusConfig struct {
	metricsAddr string
	jsonOutput  bool
}

// newStatusCmd creates the status subcommand with all flags configured.
func newStatusCmd() *cobra.Command {
	cfg := &statusConfig{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show status of a running Inkwell server",
		Long:  `Probe the health endpoints of a running Inkwell server and report liveness and readiness.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.metricsAddr, "metrics-addr", config.DefaultMetricsAddr, "metrics/health HTTP address to probe")
	cmd.Flags().BoolVar(&cfg.jsonOutput, "json", false, "output status as JSON")

	return cmd
}

// runStatus executes the status command.
func runStatus(cmd *cobra.Command, cfg *statusConfig) error {
	status := probeServerStatus(cfg.metricsAddr, &http.Client{Timeout: 3 * time.Second})

	var output string
	if cfg.jsonOutput {
		raw, err := json.MarshalIndent(status, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format JSON: %w", err)
		}
		output = string(raw)
	} else {
		output = formatStatusTable(status)
	}

	cmd.Println(output)
	return nil
}

// probeServerStatus queries the liveness and readiness endpoints.
func probeServerStatus(addr string, client *http.Client) ServerStatus {
	status := ServerStatus{Addr: addr}

	live, err := probeEndpoint(client, addr, "/healthz/liveness")
	if err != nil {
		status.Error = err.Error()
		return status
	}
	status.Live = live

	ready, err := probeEndpoint(client, addr, "/healthz/readiness")
	if err != nil {
		status.Error = err.Error()
		return status
	}
	status.Ready = ready

	return status
}

func probeEndpoint(client *http.Client, addr, path string) (bool, error) {
	resp, err := client.Get("http://" + addr + path)
	if err != nil {
		return false, err
	}
	defer func() { _ = resp.Body.Close() }()
	return resp.StatusCode == http.StatusOK, nil
}

// formatStatusTable renders the status as an aligned text table.
func formatStatusTable(status ServerStatus) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "ADDR\tLIVE\tREADY\tERROR")
	errText := status.Error
	if errText == "" {
		errText = "-"
	}
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		status.Addr, yesNo(status.Live), yesNo(status.Ready), errText)

	_ = w.Flush()
	return strings.TrimRight(sb.String(), "\n")
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
