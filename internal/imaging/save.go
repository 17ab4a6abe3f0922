package imaging

import (
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
)

// Save encodes img to path, choosing the format from the file extension.
// JPEG output uses quality 95.
func Save(img image.Image, path string) error {
	if !IsSupported(path) {
		return fmt.Errorf("unsupported output format for %s", path)
	}
	if err := imaging.Save(img, path, imaging.JPEGQuality(95)); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

// DerivedPath inserts tag before the extension of path:
//
//	DerivedPath("dir/photo.png", "shredded") == "dir/photo.shredded.png"
//
// A path without an extension gets the tag as its extension.
func DerivedPath(path, tag string) string {
	base, ext := baseAndExt(path)
	return base + "." + tag + ext
}

// LosslessPath returns path unchanged unless it names a format that does not
// store pixels exactly (JPEG, or GIF with its 256-color palette), in which
// case the extension is replaced with ".png". Intermediate files that must
// survive a pixel-exact comparison are written through this.
func LosslessPath(path string) string {
	switch FormatName(path) {
	case "jpeg", "gif":
		base, _ := baseAndExt(path)
		return base + ".png"
	}
	return path
}

// IsDerived reports whether path looks like a file written by DerivedPath
// with one of the given tags.
func IsDerived(path string, tags ...string) bool {
	base, _ := baseAndExt(path)
	for _, tag := range tags {
		if strings.HasSuffix(base, "."+tag) {
			return true
		}
	}
	return false
}
