// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell/inkwell/internal/observability"
)

func startObservability(t *testing.T, ready bool) string {
	t.Helper()

	server := observability.NewServer("127.0.0.1:0", func() bool { return ready })
	_, err := server.Start()
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Stop(ctx)
	})
	return server.Addr()
}

func TestProbeServerStatus_LiveAndReady(t *testing.T) {
	addr := startObservability(t, true)

	status := probeServerStatus(addr, &http.Client{Timeout: 2 * time.Second})

	assert.Equal(t, addr, status.Addr)
	assert.True(t, status.Live)
	assert.True(t, status.Ready)
	assert.Empty(t, status.Error)
}

func TestProbeServerStatus_LiveButNotReady(t *testing.T) {
	addr := startObservability(t, false)

	status := probeServerStatus(addr, &http.Client{Timeout: 2 * time.Second})

	assert.True(t, status.Live)
	assert.False(t, status.Ready)
	assert.Empty(t, status.Error)
}

func TestProbeServerStatus_Unreachable(t *testing.T) {
	// Reserved port with nothing listening.
	status := probeServerStatus("127.0.0.1:1", &http.Client{Timeout: time.Second})

	assert.False(t, status.Live)
	assert.False(t, status.Ready)
	assert.NotEmpty(t, status.Error)
}

func TestStatusCommand_JSONOutput(t *testing.T) {
	addr := startObservability(t, true)

	cmd := newStatusCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--metrics-addr", addr, "--json"})

	require.NoError(t, cmd.Execute())

	var status ServerStatus
	require.NoError(t, json.Unmarshal(buf.Bytes(), &status))
	assert.True(t, status.Live)
	assert.True(t, status.Ready)
}

func TestStatusCommand_TableOutput(t *testing.T) {
	addr := startObservability(t, true)

	cmd := newStatusCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--metrics-addr", addr})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "ADDR")
	assert.Contains(t, output, addr)
	assert.Contains(t, output, "yes")
}

func TestFormatStatusTable_ShowsError(t *testing.T) {
	table := formatStatusTable(ServerStatus{
		Addr:  "127.0.0.1:9100",
		Error: "connection refused",
	})

	assert.Contains(t, table, "connection refused")
	assert.Contains(t, table, "no")
}
