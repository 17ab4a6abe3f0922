// Package server implements the MCP (Model Context Protocol) server for the
// unshredder.
//
// This package provides a JSON-RPC 2.0 server that exposes shredding,
// reconstruction and comparison through the MCP protocol, so an MCP client
// can shred an image, put it back together and check the result.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Shredding:
//   - image_shred: Cut into shuffled strips and write the result
//   - image_unshred: Restore the strip order and write the result
//   - image_detect_strip_width: Report the detected strip width
//
// Analysis Helpers:
//   - image_compare: Pixel comparison, optionally allowing a reversed strip order
//
// # Image Caching
//
// The server keeps decoded images in memory keyed by path. A path is evicted
// whenever a tool writes an image to it, so a later call never sees a stale
// copy.
//
// # Configuration
//
// Defaults for the strip width, the detection schedule and the shuffle seed
// come from a config.Config passed to New.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	srv := server.New(cfg)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
