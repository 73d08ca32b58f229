package service

import (
	"path/filepath"
	"strings"
)

const defaultImageExt = ".png"

// ImageExtension picks the catalog extension for an uploaded file name:
// the lower-cased suffix reduced to [a-z0-9], or ".png" when nothing is left.
func ImageExtension(filename string) string {
	base := filepath.Base(strings.ReplaceAll(strings.TrimSpace(filename), "\\", "/"))
	ext := filepath.Ext(base)
	if ext == "" || ext == base {
		// no suffix, or a dotfile such as ".png"
		return defaultImageExt
	}
	var b strings.Builder
	for _, r := range strings.ToLower(ext[1:]) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return defaultImageExt
	}
	return "." + b.String()
}
