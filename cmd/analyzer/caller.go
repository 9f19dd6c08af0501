package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pkg/errors"

	"github.com/eshaffer321/finhelp-go/internal/config"
	"github.com/eshaffer321/finhelp-go/internal/log"
	"github.com/eshaffer321/finhelp-go/internal/tools"
	"github.com/eshaffer321/finhelp-go/internal/transport"
	"github.com/eshaffer321/finhelp-go/internal/types"
	"github.com/eshaffer321/finhelp-go/pkg/finhelp"
)

// ToolCaller calls one MCP tool and decodes its structured result into out
type ToolCaller interface {
	Call(ctx context.Context, name string, args any, out any) error
}

// sessionCaller calls tools over an MCP client session
type sessionCaller struct {
	session *mcp.ClientSession
}

func (c *sessionCaller) Call(ctx context.Context, name string, args any, out any) error {
	res, err := c.session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		return errors.Wrapf(err, "calling %s", name)
	}

	if res.IsError {
		return fmt.Errorf("%s: %s", name, resultText(res))
	}

	data, err := json.Marshal(res.StructuredContent)
	if err != nil {
		return errors.Wrapf(err, "encoding %s result", name)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrapf(err, "decoding %s result", name)
	}

	return nil
}

func resultText(res *mcp.CallToolResult) string {
	var parts []string
	for _, c := range res.Content {
		if text, ok := c.(*mcp.TextContent); ok {
			parts = append(parts, text.Text)
		}
	}
	if len(parts) == 0 {
		return "tool returned an error"
	}
	return strings.Join(parts, "; ")
}

var analyzerImpl = &mcp.Implementation{Name: "finhelp-analyzer", Version: types.Version}

// connectLocal runs the tools in-process behind an in-memory MCP session
func connectLocal(ctx context.Context, cfg *config.Config, logger *log.Logger) (*mcp.ClientSession, func(), error) {
	client, err := finhelp.NewClient(&finhelp.ClientOptions{Logger: logger.WithComponent(log.ComponentApp)})
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to initialize finhelp client")
	}

	server := mcp.NewServer(&mcp.Implementation{Name: types.ServerName, Version: types.Version}, nil)
	tools.Register(server, tools.NewHandlers(client, logger, tools.Defaults{
		WindowDays:   cfg.Anomaly.WindowDays,
		ThresholdPct: cfg.Anomaly.ThresholdPct,
	}))

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	if err != nil {
		return nil, nil, errors.Wrap(err, "starting in-process server")
	}

	session, err := mcp.NewClient(analyzerImpl, nil).Connect(ctx, clientTransport, nil)
	if err != nil {
		_ = serverSession.Close()
		return nil, nil, errors.Wrap(err, "connecting to in-process server")
	}

	return session, func() {
		_ = session.Close()
		_ = serverSession.Close()
		client.Close()
	}, nil
}

// connectRemote checks the server's health and opens a streamable HTTP session
func connectRemote(ctx context.Context, cfg *config.Config, logger *log.Logger) (*mcp.ClientSession, func(), error) {
	remote := transport.NewHTTPTransport(&transport.Options{
		BaseURL:     cfg.Analyzer.ServerURL,
		Timeout:     cfg.Analyzer.Timeout.Duration,
		RetryConfig: cfg.Analyzer.Retry(),
		Logger:      logger.WithComponent(log.ComponentTransport),
	})

	if err := remote.Ping(ctx); err != nil {
		return nil, nil, errors.Wrapf(err, "server at %s is not healthy", cfg.Analyzer.ServerURL)
	}

	session, err := mcp.NewClient(analyzerImpl, nil).Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint:   remote.Endpoint(),
		HTTPClient: remote.Client(),
	}, nil)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "connecting to %s", remote.Endpoint())
	}

	return session, func() { _ = session.Close() }, nil
}
