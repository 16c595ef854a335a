package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/mockweb/internal/generator"
	"github.com/ziadkadry99/mockweb/internal/synth"
)

type firstRand struct{}

func (firstRand) IntN(int) int { return 0 }

func newTestServer() *Server {
	return NewServer(generator.New(generator.Options{
		Synth: synth.New(firstRand{}),
		Clock: generator.NopClock{},
	}))
}

// extractText gets the text content from a CallToolResult.
func extractText(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		name     string
		tool     mcp.Tool
		wantName string
	}{
		{"generate_website", generateWebsiteTool, "generate_website"},
		{"classify_description", classifyDescriptionTool, "classify_description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tool.Name != tt.wantName {
				t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
			}
			if tt.tool.Description == "" {
				t.Error("tool description should not be empty")
			}
		})
	}
}

func TestNewServer(t *testing.T) {
	srv := newTestServer()
	if srv == nil {
		t.Fatal("NewServer returned nil")
	}
	if srv.mcp == nil {
		t.Fatal("MCP server not initialized")
	}
	if srv.gen == nil {
		t.Error("generator not set")
	}
}

func TestHandleGenerateWebsite(t *testing.T) {
	srv := newTestServer()
	ctx := context.Background()

	t.Run("all files", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"description": "Página para mi empresa de consultoría",
		}

		result, err := srv.handleGenerateWebsite(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
		text := extractText(result)
		for _, want := range []string{"modern template", "## index.html", "## style.css", "## script.js", "Página para mi..."} {
			if !strings.Contains(text, want) {
				t.Errorf("output missing %q", want)
			}
		}
	})

	t.Run("single language", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"description": "Sitio minimalista",
			"language":    "css",
		}

		result, err := srv.handleGenerateWebsite(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
		if text := extractText(result); strings.Contains(text, "## index.html") || !strings.Contains(text, "{") {
			t.Errorf("expected only CSS, got %q", text)
		}
	})

	t.Run("invalid language", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"description": "Sitio",
			"language":    "go",
		}

		result, _ := srv.handleGenerateWebsite(ctx, req)
		if !result.IsError {
			t.Error("expected error for unknown language")
		}
	})

	t.Run("empty description", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"description": "   ",
		}

		result, _ := srv.handleGenerateWebsite(ctx, req)
		if !result.IsError {
			t.Error("expected error for empty description")
		}
	})

	t.Run("missing description", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{}

		result, err := srv.handleGenerateWebsite(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for missing description")
		}
	})
}

func TestHandleClassifyDescription(t *testing.T) {
	srv := newTestServer()
	ctx := context.Background()

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{
		"description": "Portfolio de mi negocio",
	}

	result, err := srv.handleClassifyDescription(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %v", result.Content)
	}

	text := extractText(result)
	for _, want := range []string{"Template: creative", "Theme: empresariales", "Services (business):", "- Consultoría"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}
