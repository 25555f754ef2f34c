// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the bingo card tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/apperr"
	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/card"
	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/cardservice"
	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/catalog"
	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/share"
)

// Server wraps the MCP server with the card tools.
type Server struct {
	mcp   *server.MCPServer
	svc   *cardservice.Service
	codec *share.Codec
}

// New creates a new MCP server with all card tools registered.
func New(svc *cardservice.Service, codec *share.Codec) *Server {
	s := &Server{svc: svc, codec: codec}

	s.mcp = server.NewMCPServer(
		"Buzzword Bingo",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("build_card",
		mcp.WithDescription("Build a bingo card from a title and a list of terms and make it the current card. "+
			"At least 24 unique non-empty terms are required (5x5 grid with a free center space)."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Card title, 3-100 characters")),
		mcp.WithString("terms", mcp.Required(), mcp.Description("Terms, one per line (at least 24 unique)")),
		mcp.WithString("free_space_icon", mcp.Description("Optional free-space icon key (default star)")),
		mcp.WithString("free_space_image", mcp.Description("Optional free-space image URL (absolute)")),
	), s.buildCard)

	s.mcp.AddTool(mcp.NewTool("get_current_card",
		mcp.WithDescription("Return the current card as JSON, including its 25-slot arrangement."),
	), s.getCurrentCard)

	s.mcp.AddTool(mcp.NewTool("randomize_card",
		mcp.WithDescription("Deal a fresh random arrangement for the current card."),
	), s.randomizeCard)

	s.mcp.AddTool(mcp.NewTool("generate_variants",
		mcp.WithDescription("Generate N independent arrangements of the current card for printing unique cards. N must be 1-50."),
		mcp.WithNumber("count", mcp.Required(), mcp.Description("Number of variants (1-50)")),
	), s.generateVariants)

	s.mcp.AddTool(mcp.NewTool("encode_share",
		mcp.WithDescription("Encode the current card into a shareable play-mode URL."),
	), s.encodeShare)

	s.mcp.AddTool(mcp.NewTool("decode_share",
		mcp.WithDescription("Decode a share token (the data= query value of a share URL) into its card payload."),
		mcp.WithString("token", mcp.Required(), mcp.Description("URL-safe share token")),
	), s.decodeShare)

	s.mcp.AddTool(mcp.NewTool("list_icons",
		mcp.WithDescription("List the available free-space icons."),
	), s.listIcons)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) buildCard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rawTerms, err := req.RequireString("terms")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	in := card.Input{
		Title: title,
		Terms: strings.Split(rawTerms, "\n"),
	}
	if icon, err := req.RequireString("free_space_icon"); err == nil {
		in.FreeSpaceIcon = icon
	}
	if img, err := req.RequireString("free_space_image"); err == nil {
		in.FreeSpaceImage = img
	}

	c, err := s.svc.Create(in)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(c)
}

func (s *Server) getCurrentCard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c := s.svc.Current()
	if c == nil {
		return mcp.NewToolResultError(apperr.ErrNoCard.Error()), nil
	}
	return jsonResult(c)
}

func (s *Server) randomizeCard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, err := s.svc.Randomize()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(c)
}

func (s *Server) generateVariants(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	count, err := req.RequireInt("count")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	vs, err := s.svc.RequestVariants(ctx, count)
	if err != nil {
		if errors.Is(err, apperr.ErrCancelled) {
			return mcp.NewToolResultText("variant generation cancelled"), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(vs)
}

func (s *Server) encodeShare(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c := s.svc.Current()
	if c == nil {
		return mcp.NewToolResultError(apperr.ErrNoCard.Error()), nil
	}
	link, err := s.codec.ShareURL(c, true)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(link), nil
}

func (s *Server) decodeShare(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	token, err := req.RequireString("token")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	payload, err := share.Decode(token)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(payload)
}

func (s *Server) listIcons(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(catalog.Icons())
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}
