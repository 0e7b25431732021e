package imaging

import (
	"fmt"

	"github.com/h2non/filetype"
)

// Allowed image types, sniffed from magic bytes rather than a
// client-supplied Content-Type or file extension.
var allowedImageMIMEs = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// video containers eligible for first-frame extraction
var videoMIMEs = map[string]bool{
	"video/mp4":        true,
	"video/mpeg":       true,
	"video/quicktime":  true,
	"video/x-msvideo":  true,
	"video/webm":       true,
	"video/x-matroska": true,
}

// Sniff returns the MIME type detected from the data's magic bytes
func Sniff(data []byte) (string, error) {
	t, err := filetype.Match(data)
	if err != nil {
		return "", fmt.Errorf("sniff type: %w", err)
	}
	if t == filetype.Unknown {
		return "", fmt.Errorf("unrecognized file type")
	}
	return t.MIME.Value, nil
}

// IsVideo reports whether the data is a video container we can extract a
// frame from
func IsVideo(data []byte) bool {
	mime, err := Sniff(data)
	return err == nil && videoMIMEs[mime]
}

// ValidateImage sniffs the data and returns its MIME type, rejecting
// anything outside the supported image set.
func ValidateImage(data []byte) (string, error) {
	mime, err := Sniff(data)
	if err != nil {
		return "", fmt.Errorf("unsupported file type. Allowed: JPEG, PNG, WebP, GIF")
	}
	if !allowedImageMIMEs[mime] {
		return "", fmt.Errorf("unsupported file type: %s. Allowed: JPEG, PNG, WebP, GIF", mime)
	}
	return mime, nil
}
