package mcp

import "github.com/mark3labs/mcp-go/mcp"

func extractFileTool() mcp.Tool {
	return mcp.NewTool("extract_file",
		mcp.WithDescription("Extract imports, exports, decorator configuration, and resolved type references from a TypeScript or JavaScript file"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the source file"),
		),
	)
}

func extractSourceTool() mcp.Tool {
	return mcp.NewTool("extract_source",
		mcp.WithDescription("Extract metadata from in-memory source text without touching the filesystem"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Virtual path used for language detection and import resolution"),
		),
		mcp.WithString("source",
			mcp.Required(),
			mcp.Description("Source text to analyze"),
		),
	)
}

func decodeLiteralTool() mcp.Tool {
	return mcp.NewTool("decode_literal",
		mcp.WithDescription("Decode a literal expression (object, array, string, number, boolean) into a JSON value; non-literal expressions come back as opaque placeholders"),
		mcp.WithString("source",
			mcp.Required(),
			mcp.Description("A single expression, e.g. { tag: 'my-button', shadow: true }"),
		),
	)
}

func resolveTypeTool() mcp.Tool {
	return mcp.NewTool("resolve_type",
		mcp.WithDescription("Resolve where a type referenced in a file is declared: an imported module, the file itself, or the global scope"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the source file referencing the type"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Type name as written in the file"),
		),
	)
}
