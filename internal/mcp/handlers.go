package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/mockweb/internal/classify"
	"github.com/ziadkadry99/mockweb/internal/generator"
	"github.com/ziadkadry99/mockweb/internal/templates"
)

// handleGenerateWebsite runs the generator and returns the sources.
func (s *Server) handleGenerateWebsite(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	description, err := request.RequireString("description")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: description"), nil
	}

	var only templates.Language
	if raw := request.GetString("language", ""); raw != "" {
		only, err = templates.ParseLanguage(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	b, err := s.gen.Generate(ctx, description, nil)
	if errors.Is(err, generator.ErrEmptyInput) {
		return mcp.NewToolResultError("description must not be empty"), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("generation failed: %v", err)), nil
	}
	if b == nil {
		return mcp.NewToolResultError("a generation is already in progress, try again shortly"), nil
	}

	if only != "" {
		return mcp.NewToolResultText(b.Source(only)), nil
	}
	return mcp.NewToolResultText(formatBundle(b)), nil
}

// handleClassifyDescription reports the classification of a description.
func (s *Server) handleClassifyDescription(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	description, err := request.RequireString("description")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: description"), nil
	}

	r := classify.Classify(description)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Template: %s\n", r.Template)
	fmt.Fprintf(&sb, "Theme: %s\n", r.Theme)
	fmt.Fprintf(&sb, "Services (%s):\n", r.Bucket.Kind)
	for _, svc := range r.Bucket.Services {
		fmt.Fprintf(&sb, "- %s\n", svc.Name)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// formatBundle renders all three sources as fenced Markdown blocks.
func formatBundle(b *templates.Bundle) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Website (%s template)\n", b.Template)
	for _, lang := range templates.Languages {
		fmt.Fprintf(&sb, "\n## %s\n\n```%s\n%s\n```\n", lang.FileName(), lang, strings.TrimRight(b.Source(lang), "\n"))
	}
	return sb.String()
}

