// Package mcpserver exposes structured generation as tools on a Model
// Context Protocol server.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deepnoodle-ai/structure/log"
	"github.com/deepnoodle-ai/structure/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	ToolStructure       = "structure"
	ToolTranslateSchema = "translate_schema"
)

// Generator produces structured output for a translated schema.
type Generator interface {
	Generate(ctx context.Context, m *schema.Model, prompt, modelID string) (string, error)
}

// Options configure a Server.
type Options struct {
	Name    string
	Version string

	// DefaultModel is used when a call has no model argument. An empty
	// value leaves the choice to the Generator.
	DefaultModel string

	Logger log.Logger
}

// Server serves the structure tools.
type Server struct {
	generator    Generator
	defaultModel string
	logger       log.Logger
	mcp          *server.MCPServer
}

// New returns a Server with its tools registered.
func New(generator Generator, opts Options) *Server {
	if opts.Name == "" {
		opts.Name = "structure"
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}
	if opts.Logger == nil {
		opts.Logger = log.NewNullLogger()
	}
	s := &Server{
		generator:    generator,
		defaultModel: opts.DefaultModel,
		logger:       opts.Logger,
		mcp: server.NewMCPServer(opts.Name, opts.Version,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
	}

	s.mcp.AddTool(mcp.NewTool(ToolStructure,
		mcp.WithDescription("Generate JSON that matches a schema. The schema is YAML or JSON text, "+
			"either {Name: {field: type}} or a JSON Schema object with title, properties and required."),
		mcp.WithString("prompt", mcp.Required(), mcp.Description("Content to extract structured data from")),
		mcp.WithString("schema", mcp.Required(), mcp.Description("Schema description as YAML or JSON text")),
		mcp.WithString("model", mcp.Description("Model identifier, for example gpt-4o")),
		mcp.WithTitleAnnotation("Structured output"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	), s.handleStructure)

	s.mcp.AddTool(mcp.NewTool(ToolTranslateSchema,
		mcp.WithDescription("Translate a schema description into the JSON Schema sent to the model."),
		mcp.WithString("schema", mcp.Required(), mcp.Description("Schema description as YAML or JSON text")),
		mcp.WithTitleAnnotation("Translate schema"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	), s.handleTranslateSchema)

	return s
}

// MCPServer returns the underlying server, for use with other transports.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// ServeStdio serves requests on stdin and stdout until the input closes or
// the process is interrupted.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) handleStructure(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prompt, err := request.RequireString("prompt")
	if err != nil {
		return toolError(err), nil
	}
	m, err := modelFromArgument(request)
	if err != nil {
		return toolError(err), nil
	}
	modelID := request.GetString("model", s.defaultModel)

	s.logger.Debug("structure tool called", "schema", m.Name, "model", modelID)

	out, err := s.generator.Generate(ctx, m, prompt, modelID)
	if err != nil {
		s.logger.Warn("structure tool failed", "model", modelID, "error", err)
		return toolError(err), nil
	}
	return mcp.NewToolResultText(out), nil
}

func (s *Server) handleTranslateSchema(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m, err := modelFromArgument(request)
	if err != nil {
		return toolError(err), nil
	}
	data, err := json.MarshalIndent(m.JSONSchema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode schema: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// toolError reports a failure in the same form the command line prints it.
func toolError(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError("Error: " + err.Error())
}

func modelFromArgument(request mcp.CallToolRequest) (*schema.Model, error) {
	text, err := request.RequireString("schema")
	if err != nil {
		return nil, err
	}
	desc, err := schema.Parse([]byte(text))
	if err != nil {
		return nil, err
	}
	return schema.Translate(desc)
}
