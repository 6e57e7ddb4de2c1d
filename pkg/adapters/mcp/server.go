// Package mcp exposes the framework as a Model Context Protocol server, so
// agents can list and invoke action nodes as tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	orchestron "github.com/orchestron-dev/orchestron"
	"github.com/orchestron-dev/orchestron/internal/runtime"
	"github.com/orchestron-dev/orchestron/pkg/domain"
)

// Server wraps a Framework and exposes it as an MCP server.
type Server struct {
	fw        *orchestron.Framework
	mcpServer *server.MCPServer
}

// NewServer creates the MCP server and registers one tool per node plus a
// run_chain tool. Tool schemas are derived from the node descriptors.
func NewServer(fw *orchestron.Framework) *Server {
	s := &Server{
		fw:        fw,
		mcpServer: server.NewMCPServer("orchestron-mcp", strings.TrimSpace(orchestron.Version)),
	}
	s.registerNodeTools()
	s.registerChainTool()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerNodeTools() {
	for _, desc := range s.fw.Descriptors() {
		name := desc.Name
		opts := []mcp.ToolOption{mcp.WithDescription(desc.Description)}
		for _, p := range desc.Parameters {
			opts = append(opts, paramOption(p))
		}

		s.mcpServer.AddTool(mcp.NewTool(name, opts...),
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				res := s.fw.Run(ctx, name, request.GetArguments())
				return toolResult(res), nil
			})
	}
}

// paramOption maps one descriptor parameter onto the tool's input schema.
func paramOption(p domain.ParameterSpec) mcp.ToolOption {
	propOpts := []mcp.PropertyOption{mcp.Description(p.Description)}
	if p.Required {
		propOpts = append(propOpts, mcp.Required())
	}

	switch p.Type {
	case domain.TypeInt:
		return mcp.WithNumber(p.Name, propOpts...)
	case domain.TypeList:
		return mcp.WithArray(p.Name, propOpts...)
	case domain.TypeDict:
		return mcp.WithObject(p.Name, propOpts...)
	default:
		return mcp.WithString(p.Name, propOpts...)
	}
}

func (s *Server) registerChainTool() {
	names := make([]string, 0)
	for _, c := range s.fw.Chains() {
		names = append(names, c.Name)
	}

	tool := mcp.NewTool("run_chain",
		mcp.WithDescription(fmt.Sprintf("Run a registered node chain. Available: %s", strings.Join(names, ", "))),
		mcp.WithString("chain", mcp.Required(), mcp.Description("Name of the chain to run")),
	)

	s.mcpServer.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		chain, err := request.RequireString("chain")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		res, err := s.fw.RunChain(ctx, chain)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		jsonBytes, _ := json.Marshal(res)
		if res.Status != runtime.ChainSucceeded {
			return mcp.NewToolResultError(string(jsonBytes)), nil
		}
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("orchestron://nodes", "Registered Node Catalog",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.fw.Descriptors())
		if err != nil {
			return nil, fmt.Errorf("failed to encode descriptors: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "orchestron://nodes",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})

	s.mcpServer.AddResource(mcp.NewResource("orchestron://chains", "Registered Chain Definitions",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.fw.Chains())
		if err != nil {
			return nil, fmt.Errorf("failed to encode chains: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "orchestron://chains",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

// toolResult renders a node outcome: success payload as JSON text, failures
// as MCP tool errors carrying the failure kind.
func toolResult(res domain.Result) *mcp.CallToolResult {
	if res.OK {
		jsonBytes, _ := json.Marshal(res.Payload)
		return mcp.NewToolResultText(string(jsonBytes))
	}
	return mcp.NewToolResultError(fmt.Sprintf("[%s] %s", res.Failure.Kind, res.Failure.Message))
}
