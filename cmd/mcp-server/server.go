package main

import (
	"encoding/json"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/eshaffer321/finhelp-go/internal/log"
	"github.com/eshaffer321/finhelp-go/internal/tools"
	"github.com/eshaffer321/finhelp-go/internal/types"
	"github.com/eshaffer321/finhelp-go/pkg/finhelp"
)

// newServer creates the MCP server with all tools registered
func newServer(client *finhelp.Client, logger *log.Logger, defaults tools.Defaults) *mcp.Server {
	impl := &mcp.Implementation{
		Name:    types.ServerName,
		Version: types.Version,
	}

	server := mcp.NewServer(impl, nil)
	tools.Register(server, tools.NewHandlers(client, logger, defaults))

	return server
}

// newHTTPHandler serves the streamable MCP endpoint next to a health check
func newHTTPHandler(server *mcp.Server, logger *log.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.Handle(types.MCPPath, mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil))

	mux.HandleFunc(types.HealthPath, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]string{
			"status":  "ok",
			"name":    types.ServerName,
			"version": types.Version,
		}); err != nil {
			logger.Warn("failed to write health response", log.FieldError, err.Error())
		}
	})

	return mux
}
