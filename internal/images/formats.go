package images

import (
	"path/filepath"
	"slices"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var supportedExtensions = []string{
	".png",
	".jpg",
	".jpeg",
	".gif",
	".bmp",
	".tif",
	".tiff",
	".webp",
}

// IsSupported reports whether filename carries an accepted image extension.
// The check is case-insensitive and looks only at the final extension.
func IsSupported(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return slices.Contains(supportedExtensions, ext)
}

// SupportedExtensions returns the accepted image extensions.
func SupportedExtensions() []string {
	return slices.Clone(supportedExtensions)
}
