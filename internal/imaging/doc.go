// Package imaging handles image files for the unshredder.
//
// It loads and caches decoded images, reports file metadata, writes results
// back to disk, derives output file names, and compares two images pixel by
// pixel. The reconstruction itself lives in package unshred; this package
// only moves pixels between files and memory.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner. Images
// produced by this package have zero-origin bounds.
//
// # Formats
//
// Decoding and encoding go through github.com/disintegration/imaging, which
// supports PNG, JPEG, GIF, TIFF and BMP. The output format is chosen from the
// file extension.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. All other functions are
// stateless.
//
// # Error Handling
//
// Functions return wrapped errors for:
//   - File I/O errors during loading or saving
//   - Unsupported or unrecognised file extensions
//   - Images of different dimensions passed to Compare
package imaging
