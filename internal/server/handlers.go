package server

import (
	"encoding/json"
	"fmt"
	"image"
	"log"
	"math/rand"
	"time"

	"github.com/ironsheep/image-unshred/internal/batch"
	"github.com/ironsheep/image-unshred/internal/imaging"
	"github.com/ironsheep/image-unshred/internal/shred"
	"github.com/ironsheep/image-unshred/internal/unshred"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_unshred").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}

	return reply(req, map[string]interface{}{
		"content": []map[string]interface{}{
			{
				"type": "text",
				"text": mustMarshalJSON(result),
			},
		},
	})
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies defaults from the server configuration
//  3. Loads images from cache as needed
//  4. Calls into the imaging, shred or unshred packages
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Shredding
	case "image_shred":
		return s.handleImageShred(args)
	case "image_unshred":
		return s.handleImageUnshred(args)
	case "image_detect_strip_width":
		return s.handleImageDetectStripWidth(args)

	// Analysis Helpers
	case "image_compare":
		return s.handleImageCompare(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response. An empty data is omitted.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	e := &MCPError{Code: code, Message: message}
	if data != "" {
		e.Data = data
	}
	return &MCPResponse{JSONRPC: "2.0", ID: id, Error: e}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// save writes img to path and drops any cached copy of path.
func (s *Server) save(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return err
	}
	s.cache.Evict(path)
	return nil
}

// seed returns requested, or the configured seed, or the clock.
func (s *Server) seed(requested *int64) int64 {
	switch {
	case requested != nil:
		return *requested
	case s.cfg.Seed != 0:
		return s.cfg.Seed
	}
	return time.Now().UnixNano()
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Shredding Handlers ===

type imageShredArgs struct {
	Path       string `json:"path"`
	StripWidth int    `json:"strip_width"`
	OutputPath string `json:"output_path"`
	Seed       *int64 `json:"seed"`
}

// ShredResult is returned by image_shred.
type ShredResult struct {
	OutputPath string `json:"output_path"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	StripWidth int    `json:"strip_width"`
	Strips     int    `json:"strips"`
	Order      []int  `json:"order"`
	Seed       int64  `json:"seed"`
}

func (s *Server) handleImageShred(args json.RawMessage) (interface{}, error) {
	var a imageShredArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	seed := s.seed(a.Seed)
	rng := rand.New(rand.NewSource(seed))
	if a.StripWidth == 0 {
		a.StripWidth, err = shred.ChooseWidth(img.Bounds().Dx(), rng)
		if err != nil {
			return nil, err
		}
	}

	res, err := shred.Shred(img, a.StripWidth, rng)
	if err != nil {
		return nil, err
	}

	if a.OutputPath == "" {
		a.OutputPath = imaging.DerivedPath(imaging.LosslessPath(a.Path), batch.TagShredded)
	}
	if err := s.save(res.Image, a.OutputPath); err != nil {
		return nil, err
	}
	if s.cfg.Debug() {
		log.Printf("Shredded %s into %d strips (seed %d)", a.Path, len(res.Order), seed)
	}

	b := res.Image.Bounds()
	return &ShredResult{
		OutputPath: a.OutputPath,
		Width:      b.Dx(),
		Height:     b.Dy(),
		StripWidth: res.StripWidth,
		Strips:     len(res.Order),
		Order:      res.Order,
		Seed:       seed,
	}, nil
}

type imageUnshredArgs struct {
	Path        string `json:"path"`
	StripWidth  int    `json:"strip_width"`
	OutputPath  string `json:"output_path"`
	ReturnImage bool   `json:"return_image"`
}

// UnshredResult is returned by image_unshred.
type UnshredResult struct {
	OutputPath string `json:"output_path"`
	*unshred.Result
	ElapsedMS int64                 `json:"elapsed_ms"`
	Image     *imaging.EncodedImage `json:"image,omitempty"`
}

func (s *Server) handleImageUnshred(args json.RawMessage) (interface{}, error) {
	var a imageUnshredArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.StripWidth < 0 {
		return nil, fmt.Errorf("strip_width must not be negative, got %d", a.StripWidth)
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	opts := s.cfg.UnshredOptions()
	if a.StripWidth > 0 {
		opts.StripWidth = a.StripWidth
	}

	start := time.Now()
	res, err := unshred.Reconstruct(img, opts)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)
	if res.Fallback {
		log.Printf("No strip boundary detected in %s; using default strip width %d", a.Path, res.StripWidth)
	}

	if a.OutputPath == "" {
		a.OutputPath = imaging.DerivedPath(imaging.LosslessPath(a.Path), batch.TagReconstructed)
	}
	if err := s.save(res.Image, a.OutputPath); err != nil {
		return nil, err
	}

	out := &UnshredResult{
		OutputPath: a.OutputPath,
		Result:     res,
		ElapsedMS:  elapsed.Milliseconds(),
	}
	if a.ReturnImage {
		out.Image, err = imaging.EncodePNGBase64(res.Image)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// StripWidthResult is returned by image_detect_strip_width.
type StripWidthResult struct {
	*unshred.Detection
	ImageWidth int    `json:"image_width"`
	Strips     int    `json:"strips"`
	Warning    string `json:"warning,omitempty"`
}

func (s *Server) handleImageDetectStripWidth(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", unshred.ErrInvalidDimensions, b.Dx(), b.Dy())
	}

	raster := unshred.NewRaster(img)
	det, err := unshred.DetectWidth(raster, s.cfg.DetectOptions())
	if err != nil {
		return nil, err
	}
	return &StripWidthResult{
		Detection:  det,
		ImageWidth: raster.Width(),
		Strips:     raster.Width() / det.Width,
		Warning:    det.Reason,
	}, nil
}

// === Analysis Helper Handlers ===

type imageCompareArgs struct {
	Path       string `json:"path"`
	OtherPath  string `json:"other_path"`
	StripWidth int    `json:"strip_width"`
}

func (s *Server) handleImageCompare(args json.RawMessage) (interface{}, error) {
	var a imageCompareArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	first, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	second, err := s.cache.Load(a.OtherPath)
	if err != nil {
		return nil, err
	}
	if a.StripWidth > 0 {
		return imaging.CompareStrips(first, second, a.StripWidth)
	}
	return imaging.Compare(first, second)
}
