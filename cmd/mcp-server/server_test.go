package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshaffer321/finhelp-go/internal/config"
	"github.com/eshaffer321/finhelp-go/internal/log"
	"github.com/eshaffer321/finhelp-go/internal/tools"
	"github.com/eshaffer321/finhelp-go/internal/transport"
	"github.com/eshaffer321/finhelp-go/internal/types"
	"github.com/eshaffer321/finhelp-go/pkg/finhelp"
)

func newTestServer(t *testing.T) *mcp.Server {
	t.Helper()
	client, err := finhelp.NewClient(&finhelp.ClientOptions{
		Now: func() time.Time { return time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	return newServer(client, log.Discard(), tools.Defaults{})
}

// TestServerInitialization verifies that the server can initialize without panicking
// This catches jsonschema validation errors and other startup issues
func TestServerInitialization(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("Server initialization panicked: %v", r)
		}
	}()

	server := newTestServer(t)
	assert.NotNil(t, server)
}

func TestHealthEndpoint(t *testing.T) {
	handler := newHTTPHandler(newTestServer(t), log.Discard())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, types.HealthPath, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, types.ServerName, body["name"])

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, types.HealthPath, nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestStreamableHTTP_EndToEnd(t *testing.T) {
	httpServer := httptest.NewServer(newHTTPHandler(newTestServer(t), log.Discard()))
	defer httpServer.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	remote := transport.NewHTTPTransport(&transport.Options{BaseURL: httpServer.URL})
	require.NoError(t, remote.Ping(ctx))

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint:   remote.Endpoint(),
		HTTPClient: remote.Client(),
	}, nil)
	require.NoError(t, err)
	defer session.Close()

	res, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name: tools.NameLembreteEmprestimo,
		Arguments: map[string]any{
			"next_payment_date":          "2025-07-11",
			"minimum_installment_amount": 1200,
			"installments_outstanding":   36,
			"interest_rate":              0.018,
			"extra_amount":               100,
		},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	data, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)

	var out tools.LembreteEmprestimoOutput
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, 10, out.DaysToDue)
	assert.Equal(t, 86.71, out.EstimatedInterestSaved)
}

func TestSentryOptions(t *testing.T) {
	cfg := config.Default()
	assert.Nil(t, sentryOptions(&cfg))

	cfg.Sentry.DSN = "https://key@sentry.example.com/1"
	cfg.Sentry.Environment = "staging"
	opts := sentryOptions(&cfg)
	require.NotNil(t, opts)
	assert.Equal(t, "staging", opts.Environment)
	assert.Equal(t, "finhelp-go@"+types.Version, opts.Release)
}
