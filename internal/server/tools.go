package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and pixel type.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},

		// Shredding
		{
			Name:        "image_shred",
			Description: "Cut an image into equal-width vertical strips, shuffle them and write the result. Returns the output path and the shuffle order (order[i] is the original index of the strip now at position i).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the source image"),
					"strip_width": map[string]interface{}{
						"type":        "integer",
						"description": "Strip width in pixels; must divide the image width. Omit to pick one of 4, 8, 12, 16, 10, 7, 14, 21",
					},
					"output_path": pathProperty("Where to write the shredded image. Default <name>.shredded.png"),
					"seed": map[string]interface{}{
						"type":        "integer",
						"description": "Shuffle seed. Default from the server config, else the clock",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_unshred",
			Description: "Restore the strip order of a shredded image. Detects the strip width unless one is given, writes the reconstruction and returns the strip order, seam distances and detection statistics. The left-to-right orientation of the result is not guaranteed.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the shredded image"),
					"strip_width": map[string]interface{}{
						"type":        "integer",
						"description": "Known strip width in pixels. 0 or omitted means detect it",
						"default":     0,
					},
					"output_path": pathProperty("Where to write the reconstruction. Default <name>.reconstructed.<ext>, or .png for JPEG and GIF input"),
					"return_image": map[string]interface{}{
						"type":        "boolean",
						"description": "Also return the reconstruction as base64-encoded PNG",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_detect_strip_width",
			Description: "Detect the strip width of a shredded image from the color discontinuities between adjacent columns. Reports the winning boundary, the threshold it passed at and the boundary distance statistics.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the shredded image"),
				},
				"required": []string{"path"},
			},
		},

		// Analysis Helpers
		{
			Name:        "image_compare",
			Description: "Compare two images of the same size pixel by pixel. With strip_width, also reports whether the second image is the first with its strips in exactly reversed order.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":       pathProperty("Absolute path to the first image"),
					"other_path": pathProperty("Absolute path to the second image"),
					"strip_width": map[string]interface{}{
						"type":        "integer",
						"description": "Strip width for the reversed-order check. 0 disables it",
						"default":     0,
					},
				},
				"required": []string{"path", "other_path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return reply(req, map[string]interface{}{
		"tools": GetToolDefinitions(),
	})
}
