package render

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// Save writes img to path in the format implied by the file extension (png,
// jpg, gif, tif or bmp).
func Save(path string, img image.Image) error {
	if _, err := imaging.FormatFromFilename(path); err != nil {
		return fmt.Errorf("unsupported image format %q", strings.TrimPrefix(filepath.Ext(path), "."))
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}
