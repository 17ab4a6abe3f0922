// Package unshred reconstructs images whose vertical strips have been cut and
// shuffled.
//
// The package takes a decoded image whose columns were split into equal-width
// strips and permuted, and recovers the most plausible left-to-right order by
// matching the colors along abutting strip edges. No metadata about the original
// order is required.
//
// # Pipeline
//
// A call to Reconstruct runs these stages in order:
//
//  1. Normalisation: the input is copied into a zero-origin Raster of packed
//     24-bit pixels.
//  2. Width: an explicit strip width is validated, otherwise DetectWidth infers
//     one from column-to-column color jumps.
//  3. Extraction: the raster is cut into Strips, each carrying an EdgeProfile
//     for its leftmost and rightmost column.
//  4. Sequencing: a Sequencer greedily grows an order from strip 0, extending
//     at whichever end has the closer match.
//  5. Compositing: the strips are copied into a new image in sequence order.
//
// # Color Model
//
// Edges are compared in the chroma plane only. Each pixel is converted to
// Y/U/V using the BT.601 full-range transform, and the distance between two
// pixels is the Euclidean distance of their (U, V) components. Luma is left
// out so that shading changes across a cut do not dominate the match.
//
// # Orientation
//
// The greedy sequencer has no absolute anchor. A reconstruction may come out
// mirrored (strip order reversed) when that order explains the edges equally
// well. Callers that know the original can check both orientations.
//
// # Thread Safety
//
// Reconstruct, DetectWidth and Composite are pure functions of their inputs and
// may be called concurrently on different images. A Sequencer must not be
// shared between goroutines.
package unshred
