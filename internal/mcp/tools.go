package mcp

import "github.com/mark3labs/mcp-go/mcp"

// generateWebsiteTool defines the generate_website MCP tool.
var generateWebsiteTool = mcp.NewTool("generate_website",
	mcp.WithDescription("Generate a static website (HTML, CSS and JavaScript) from a short free-text description. Descriptions are matched against Spanish keywords."),
	mcp.WithString("description",
		mcp.Required(),
		mcp.Description("What the website is for, e.g. \"Página para mi empresa de consultoría\""),
	),
	mcp.WithString("language",
		mcp.Description("Return only this file instead of all three"),
		mcp.Enum("html", "css", "js"),
	),
)

// classifyDescriptionTool defines the classify_description MCP tool.
var classifyDescriptionTool = mcp.NewTool("classify_description",
	mcp.WithDescription("Show which template, theme label and service bucket a description maps to, without generating anything."),
	mcp.WithString("description",
		mcp.Required(),
		mcp.Description("The website description to classify"),
	),
)
