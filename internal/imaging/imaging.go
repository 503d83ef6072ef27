// Package imaging implements the admin image ingestion pipeline: candidate
// files are decoded, downsampled to a maximum width, re-encoded as compressed
// JPEG previews, and accumulated into a bounded list until form submission.
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"strings"

	"github.com/nfnt/resize"

	_ "image/gif"
	_ "image/png"
)

const (
	// MaxPreviewWidth is the width cap applied to accepted images. Wider
	// images are scaled down proportionally; narrower ones are never upscaled.
	MaxPreviewWidth = 800

	// JPEGQuality is the fixed quality used when re-encoding previews.
	JPEGQuality = 80

	// DefaultMaxImages bounds the preview list when no per-section cap applies.
	DefaultMaxImages = 10
)

const dataURIPrefix = "data:image/jpeg;base64,"

// IsImageContentType reports whether the given MIME type is an image type.
func IsImageContentType(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}

// IsDataURI reports whether the string is an embedded data URI rather than
// a remote URL.
func IsDataURI(s string) bool {
	return strings.HasPrefix(s, "data:")
}

// EncodePreview decodes an image, scales it down to MaxPreviewWidth when
// wider, and re-encodes it as a JPEG data URI at fixed quality.
func EncodePreview(r io.Reader) (string, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	if img.Bounds().Dx() > MaxPreviewWidth {
		img = resize.Resize(MaxPreviewWidth, 0, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return "", fmt.Errorf("encode jpeg: %w", err)
	}

	return dataURIPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeDataURI converts an embedded preview back into raw JPEG bytes for
// upload. Remote URLs are not valid input.
func DecodeDataURI(s string) ([]byte, error) {
	if !IsDataURI(s) {
		return nil, fmt.Errorf("not a data URI")
	}
	idx := strings.Index(s, ",")
	if idx < 0 {
		return nil, fmt.Errorf("malformed data URI: missing payload separator")
	}
	data, err := base64.StdEncoding.DecodeString(s[idx+1:])
	if err != nil {
		return nil, fmt.Errorf("decode data URI payload: %w", err)
	}
	return data, nil
}

// File is one candidate in an accept batch.
type File struct {
	Name        string
	ContentType string
	Data        io.Reader
}

// Accept processes candidate files in input order and appends the resulting
// previews to the current list. Non-image files and undecodable files are
// skipped silently. Acceptance stops once the list reaches max entries;
// remaining candidates are ignored. When onUpdate is non-nil it is invoked
// after every accepted file, so partial batches surface incrementally.
func Accept(files []File, current []string, max int, onUpdate func([]string)) []string {
	if max <= 0 {
		max = DefaultMaxImages
	}

	previews := current
	for _, f := range files {
		if len(previews) >= max {
			break
		}
		if !IsImageContentType(f.ContentType) {
			continue
		}
		preview, err := EncodePreview(f.Data)
		if err != nil {
			continue
		}
		previews = append(previews, preview)
		if onUpdate != nil {
			onUpdate(previews)
		}
	}
	return previews
}

// RemoveAt removes exactly the entry at index i, shifting later entries down
// by one. Out-of-range indices leave the list unchanged.
func RemoveAt(previews []string, i int) []string {
	if i < 0 || i >= len(previews) {
		return previews
	}
	return append(previews[:i:i], previews[i+1:]...)
}
